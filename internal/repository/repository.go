package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ContentRepository defines the interface for content item data operations.
//
// Deleting a canonical item does not cascade to its translations; orphaned
// translation rows keep their dangling source_id and are simply never
// matched by FindTranslation again.
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	Update(ctx context.Context, item *models.ContentItem) error
	UpdateTranslatedFields(ctx context.Context, id int64, fields *models.TranslatedFields) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	GetBySlug(ctx context.Context, slug string, lang models.Language) (*models.ContentItem, error)
	// ListCanonical returns original-language items ordered by id.
	// limit <= 0 means unbounded.
	ListCanonical(ctx context.Context, publishedOnly bool, limit int) ([]*models.ContentItem, error)
	// FindTranslation returns the translation of the given canonical item
	// in the given language, or ErrNotFound.
	FindTranslation(ctx context.Context, sourceID int64, lang models.Language) (*models.ContentItem, error)
	// LatestPublished returns up to n published items in lang, newest first.
	LatestPublished(ctx context.Context, lang models.Language, n int) ([]*models.ContentItem, error)
	ListPublished(ctx context.Context, lang models.Language, limit, offset int) ([]*models.ContentItem, error)
}

// SubscriberRepository defines the interface for newsletter subscriber operations
type SubscriberRepository interface {
	Create(ctx context.Context, sub *models.NewsletterSubscriber) error
	GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	ListActive(ctx context.Context) ([]*models.NewsletterSubscriber, error)
}

// SentEmailRepository defines the interface for sent-email tracking
type SentEmailRepository interface {
	Create(ctx context.Context, rec *models.SentEmailRecord) error
	// SlugsSentTo returns the union of article slugs across all records
	// for the given subscriber.
	SlugsSentTo(ctx context.Context, subscriberID uuid.UUID) (map[string]bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content    ContentRepository
	Subscriber SubscriberRepository
	SentEmail  SentEmailRepository
}

// New creates all repositories backed by the given database
func New(db *database.DB) *Repositories {
	return &Repositories{
		Content:    NewContentRepo(db),
		Subscriber: NewSubscriberRepo(db),
		SentEmail:  NewSentEmailRepo(db),
	}
}
