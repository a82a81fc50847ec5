package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homemadechefs/chefcms/internal/email"
	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
)

const (
	// welcomeArticleCount is how many recent articles a welcome email embeds.
	welcomeArticleCount = 3
	// digestArticleCount is how many unseen articles a digest embeds.
	digestArticleCount = 3
	// digestPoolSize is how many recent published canonical articles the
	// digest considers before filtering out already-sent slugs. Unsent
	// articles older than this window are never surfaced.
	digestPoolSize = 20
)

// Service runs the notification pipeline: welcome emails on subscribe and
// weekly digests over all active subscribers.
type Service struct {
	subscribers repository.SubscriberRepository
	sentEmails  repository.SentEmailRepository
	content     repository.ContentRepository
	sender      email.Sender
	baseURL     string
}

// NewService creates a newsletter service
func NewService(
	subscribers repository.SubscriberRepository,
	sentEmails repository.SentEmailRepository,
	content repository.ContentRepository,
	sender email.Sender,
	baseURL string,
) *Service {
	return &Service{
		subscribers: subscribers,
		sentEmails:  sentEmails,
		content:     content,
		sender:      sender,
		baseURL:     baseURL,
	}
}

// SubscribeResult reports the outcome of a subscribe call.
type SubscribeResult struct {
	AlreadySubscribed bool
	Subscriber        *models.NewsletterSubscriber
}

// DigestStats summarizes one weekly digest run.
type DigestStats struct {
	TotalSubscribers int `json:"total_subscribers"`
	EmailsSent       int `json:"emails_sent"`
	EmailsFailed     int `json:"emails_failed"`
}

// Subscribe registers an email address and sends the welcome email with the
// latest published articles. Subscribing an existing address is a no-op
// success. The subscriber row is kept even when the welcome email fails;
// that asymmetry is deliberate, the subscription itself succeeded.
func (s *Service) Subscribe(ctx context.Context, emailAddr string) (*SubscribeResult, error) {
	log := logger.Get()

	existing, err := s.subscribers.GetByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing subscriber: %w", err)
	}
	if existing != nil {
		log.Info().Str("email", emailAddr).Msg("Already subscribed")
		return &SubscribeResult{AlreadySubscribed: true, Subscriber: existing}, nil
	}

	sub := &models.NewsletterSubscriber{
		ID:       uuid.New(),
		Email:    emailAddr,
		IsActive: true,
		Source:   "website",
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscriber: %w", err)
	}

	articles, err := s.content.LatestPublished(ctx, models.CanonicalLanguage, welcomeArticleCount)
	if err != nil {
		return nil, fmt.Errorf("fetch latest articles: %w", err)
	}

	body, err := email.RenderWelcome(articles, s.baseURL)
	if err != nil {
		return nil, err
	}
	if err := s.sender.Send(ctx, emailAddr, email.WelcomeSubject, body); err != nil {
		return nil, fmt.Errorf("send welcome email: %w", err)
	}

	if err := s.recordSent(ctx, sub.ID, models.EmailTypeWelcome, articles); err != nil {
		log.Error().Err(err).Str("email", emailAddr).Msg("Failed to record welcome email")
	}

	log.Info().
		Str("email", emailAddr).
		Int("articles", len(articles)).
		Msg("Subscriber created and welcome email sent")

	return &SubscribeResult{Subscriber: sub}, nil
}

// SendWeeklyDigest sends each active subscriber a digest of published
// canonical articles not yet sent to them. One subscriber's failure never
// aborts the batch; the run always completes and reports aggregate counts.
func (s *Service) SendWeeklyDigest(ctx context.Context) (*DigestStats, error) {
	log := logger.Get()

	subscribers, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}

	stats := &DigestStats{TotalSubscribers: len(subscribers)}
	log.Info().Int("subscribers", len(subscribers)).Msg("Starting weekly digest run")

	for _, sub := range subscribers {
		if err := s.sendDigestTo(ctx, sub); err != nil {
			if errors.Is(err, errNothingToSend) {
				log.Info().Str("email", sub.Email).Msg("No new articles, skipping")
				continue
			}
			log.Error().Err(err).Str("email", sub.Email).Msg("Digest failed")
			stats.EmailsFailed++
			continue
		}
		stats.EmailsSent++
		log.Info().Str("email", sub.Email).Msg("Digest sent")
	}

	log.Info().
		Int("sent", stats.EmailsSent).
		Int("failed", stats.EmailsFailed).
		Msg("Weekly digest run complete")

	return stats, nil
}

// errNothingToSend marks a subscriber who has already seen every candidate
// article; not a failure.
var errNothingToSend = errors.New("no unseen articles")

func (s *Service) sendDigestTo(ctx context.Context, sub *models.NewsletterSubscriber) error {
	seen, err := s.sentEmails.SlugsSentTo(ctx, sub.ID)
	if err != nil {
		return fmt.Errorf("fetch sent slugs: %w", err)
	}

	pool, err := s.content.LatestPublished(ctx, models.CanonicalLanguage, digestPoolSize)
	if err != nil {
		return fmt.Errorf("fetch article pool: %w", err)
	}

	var fresh []*models.ContentItem
	for _, a := range pool {
		if seen[a.Slug] {
			continue
		}
		fresh = append(fresh, a)
		if len(fresh) == digestArticleCount {
			break
		}
	}
	if len(fresh) == 0 {
		return errNothingToSend
	}

	body, err := email.RenderDigest(fresh, s.baseURL)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, sub.Email, email.DigestSubject(time.Now()), body); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	return s.recordSent(ctx, sub.ID, models.EmailTypeWeeklyDigest, fresh)
}

func (s *Service) recordSent(ctx context.Context, subscriberID uuid.UUID, emailType models.EmailType, articles []*models.ContentItem) error {
	slugs := make([]string, 0, len(articles))
	for _, a := range articles {
		slugs = append(slugs, a.Slug)
	}
	return s.sentEmails.Create(ctx, &models.SentEmailRecord{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		EmailType:    emailType,
		ArticleSlugs: slugs,
	})
}
