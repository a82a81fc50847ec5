package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber is an email address opted into updates. Email is
// unique; subscribing an existing address is a no-op success.
type NewsletterSubscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailType identifies the kind of newsletter email sent.
type EmailType string

const (
	EmailTypeWelcome      EmailType = "welcome"
	EmailTypeWeeklyDigest EmailType = "weekly_digest"
)

// SentEmailRecord tracks one email dispatch to one subscriber. The union of
// ArticleSlugs across a subscriber's records is the "already seen" set used
// to keep digests free of repeats. Records are never mutated or deleted.
type SentEmailRecord struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	EmailType    EmailType `json:"email_type"`
	ArticleSlugs []string  `json:"article_slugs"`
	SentAt       time.Time `json:"sent_at"`
}
