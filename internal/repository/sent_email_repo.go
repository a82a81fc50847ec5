package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/models"
)

// sentEmailRepo is the concrete implementation of SentEmailRepository
type sentEmailRepo struct {
	db *database.DB
}

// NewSentEmailRepo creates a new sent-email repository
func NewSentEmailRepo(db *database.DB) SentEmailRepository {
	return &sentEmailRepo{db: db}
}

// Create inserts a new sent-email record
func (r *sentEmailRepo) Create(ctx context.Context, rec *models.SentEmailRecord) error {
	query := `
		INSERT INTO newsletter_emails_sent (id, subscriber_id, email_type, article_slugs, sent_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING sent_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.SubscriberID, rec.EmailType, pq.Array(rec.ArticleSlugs),
	).Scan(&rec.SentAt)
	if err != nil {
		return fmt.Errorf("insert sent email record: %w", err)
	}
	return nil
}

// SlugsSentTo returns every article slug ever sent to the subscriber
func (r *sentEmailRepo) SlugsSentTo(ctx context.Context, subscriberID uuid.UUID) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT article_slugs FROM newsletter_emails_sent WHERE subscriber_id = $1`,
		subscriberID)
	if err != nil {
		return nil, fmt.Errorf("query sent slugs: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var slugs pq.StringArray
		if err := rows.Scan(&slugs); err != nil {
			return nil, fmt.Errorf("scan sent slugs: %w", err)
		}
		for _, s := range slugs {
			seen[s] = true
		}
	}
	return seen, rows.Err()
}
