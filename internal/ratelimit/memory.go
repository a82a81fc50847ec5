package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter provides an in-process implementation for development and
// tests when Redis is not available. Windows reset on process restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	window  time.Duration
	max     int
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter creates an in-memory limiter allowing max requests per
// window.
func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		window:  window,
		max:     max,
	}
}

func (m *MemoryLimiter) Close() error {
	return nil
}

// Allow counts the request against the identifier's current window.
func (m *MemoryLimiter) Allow(ctx context.Context, identifier string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	entry, ok := m.entries[identifier]
	if !ok || entry.resetAt.Before(now) {
		entry = &memoryEntry{resetAt: now.Add(m.window)}
		m.entries[identifier] = entry
	}
	entry.count++

	remaining := m.max - entry.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   entry.count <= m.max,
		Remaining: remaining,
		ResetAt:   entry.resetAt,
	}, nil
}
