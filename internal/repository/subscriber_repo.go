package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/models"
)

// subscriberRepo is the concrete implementation of SubscriberRepository
type subscriberRepo struct {
	db *database.DB
}

// NewSubscriberRepo creates a new subscriber repository
func NewSubscriberRepo(db *database.DB) SubscriberRepository {
	return &subscriberRepo{db: db}
}

// Create inserts a new subscriber
func (r *subscriberRepo) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, is_active, source, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		sub.ID, sub.Email, sub.IsActive, sub.Source,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// GetByEmail returns the subscriber with the given email, or ErrNotFound
func (r *subscriberRepo) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, is_active, source, created_at
		 FROM newsletter_subscribers WHERE email = $1`, email,
	).Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.Source, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber by email: %w", err)
	}
	return &sub, nil
}

// ListActive returns all active subscribers
func (r *subscriberRepo) ListActive(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, is_active, source, created_at
		 FROM newsletter_subscribers WHERE is_active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*models.NewsletterSubscriber
	for rows.Next() {
		var sub models.NewsletterSubscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.Source, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}
