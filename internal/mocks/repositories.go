package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
)

// MockContentRepository is an in-memory implementation of ContentRepository
type MockContentRepository struct {
	Items       map[int64]*models.ContentItem
	NextID      int64
	ListError   error
	CreateError error
	UpdateError error
	// UpdateFieldErrors fails UpdateTranslatedFields for the given row IDs.
	UpdateFieldErrors map[int64]error
	UpdateCalls       int
	CreateCalls       int
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{
		Items:             make(map[int64]*models.ContentItem),
		NextID:            1,
		UpdateFieldErrors: make(map[int64]error),
	}
}

// Seed adds an item, assigning its ID, and returns it
func (m *MockContentRepository) Seed(item *models.ContentItem) *models.ContentItem {
	item.ID = m.NextID
	m.NextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = item.CreatedAt
	m.Items[item.ID] = item
	return item
}

func (m *MockContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.Items {
		if existing.Slug == item.Slug && existing.Language == item.Language {
			return fmt.Errorf("duplicate slug %q for language %s", item.Slug, item.Language)
		}
		if item.SourceID != nil && existing.SourceID != nil &&
			*existing.SourceID == *item.SourceID && existing.Language == item.Language {
			return fmt.Errorf("duplicate translation for source %d language %s", *item.SourceID, item.Language)
		}
	}
	m.Seed(item)
	return nil
}

func (m *MockContentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	item.UpdatedAt = time.Now()
	m.Items[item.ID] = item
	return nil
}

func (m *MockContentRepository) UpdateTranslatedFields(ctx context.Context, id int64, fields *models.TranslatedFields) error {
	m.UpdateCalls++
	if err := m.UpdateFieldErrors[id]; err != nil {
		return err
	}
	item, ok := m.Items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if fields.Title != nil {
		item.Title = *fields.Title
	}
	if fields.Excerpt != nil {
		item.Excerpt = *fields.Excerpt
	}
	if fields.Body != nil {
		item.Body = *fields.Body
	}
	if fields.MetaTitle != nil {
		item.MetaTitle = fields.MetaTitle
	}
	if fields.MetaDescription != nil {
		item.MetaDescription = fields.MetaDescription
	}
	item.UpdatedAt = time.Now()
	return nil
}

func (m *MockContentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Items, id)
	return nil
}

func (m *MockContentRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (m *MockContentRepository) GetBySlug(ctx context.Context, slug string, lang models.Language) (*models.ContentItem, error) {
	for _, item := range m.Items {
		if item.Slug == slug && item.Language == lang {
			return item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockContentRepository) ListCanonical(ctx context.Context, publishedOnly bool, limit int) ([]*models.ContentItem, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var items []*models.ContentItem
	for _, item := range m.Items {
		if item.SourceID != nil || item.Language != models.CanonicalLanguage {
			continue
		}
		if publishedOnly && !item.IsPublished {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MockContentRepository) FindTranslation(ctx context.Context, sourceID int64, lang models.Language) (*models.ContentItem, error) {
	for _, item := range m.Items {
		if item.SourceID != nil && *item.SourceID == sourceID && item.Language == lang {
			return item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockContentRepository) LatestPublished(ctx context.Context, lang models.Language, n int) ([]*models.ContentItem, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var items []*models.ContentItem
	for _, item := range m.Items {
		if item.Language != lang || !item.IsPublished || item.SourceID != nil {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		ti, tj := items[i].PublishedAt, items[j].PublishedAt
		if ti == nil || tj == nil {
			return items[i].ID > items[j].ID
		}
		return ti.After(*tj)
	})
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

func (m *MockContentRepository) ListPublished(ctx context.Context, lang models.Language, limit, offset int) ([]*models.ContentItem, error) {
	items, err := m.LatestPublished(ctx, lang, 0)
	if err != nil {
		return nil, err
	}
	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// MockSubscriberRepository is an in-memory implementation of SubscriberRepository
type MockSubscriberRepository struct {
	Subscribers map[string]*models.NewsletterSubscriber
	CreateError error
}

func NewMockSubscriberRepository() *MockSubscriberRepository {
	return &MockSubscriberRepository{
		Subscribers: make(map[string]*models.NewsletterSubscriber),
	}
}

func (m *MockSubscriberRepository) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.Subscribers[sub.Email]; ok {
		return fmt.Errorf("duplicate email %q", sub.Email)
	}
	sub.CreatedAt = time.Now()
	m.Subscribers[sub.Email] = sub
	return nil
}

func (m *MockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	sub, ok := m.Subscribers[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return sub, nil
}

func (m *MockSubscriberRepository) ListActive(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	var subs []*models.NewsletterSubscriber
	for _, sub := range m.Subscribers {
		if sub.IsActive {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Email < subs[j].Email })
	return subs, nil
}

// MockSentEmailRepository is an in-memory implementation of SentEmailRepository
type MockSentEmailRepository struct {
	Records     []*models.SentEmailRecord
	CreateError error
}

func NewMockSentEmailRepository() *MockSentEmailRepository {
	return &MockSentEmailRepository{}
}

func (m *MockSentEmailRepository) Create(ctx context.Context, rec *models.SentEmailRecord) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	rec.SentAt = time.Now()
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MockSentEmailRepository) SlugsSentTo(ctx context.Context, subscriberID uuid.UUID) (map[string]bool, error) {
	seen := make(map[string]bool)
	for _, rec := range m.Records {
		if rec.SubscriberID != subscriberID {
			continue
		}
		for _, slug := range rec.ArticleSlugs {
			seen[slug] = true
		}
	}
	return seen, nil
}

// MockTranslator translates by prefixing the target language, so tests can
// assert on the output deterministically.
type MockTranslator struct {
	// FailSubstrings makes Translate fail for any text containing one of
	// these substrings.
	FailSubstrings []string
	Calls          int
}

func (m *MockTranslator) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	m.Calls++
	for _, sub := range m.FailSubstrings {
		if strings.Contains(text, sub) {
			return "", fmt.Errorf("provider error translating %q", sub)
		}
	}
	return fmt.Sprintf("[%s] %s", target, text), nil
}

// MockSender records sent emails and can be made to fail.
type MockSender struct {
	Sent      []SentMail
	SendError error
	// FailFor makes Send fail only for specific recipients.
	FailFor map[string]error
}

// SentMail is one recorded dispatch.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

func NewMockSender() *MockSender {
	return &MockSender{FailFor: make(map[string]error)}
}

func (m *MockSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendError != nil {
		return m.SendError
	}
	if err := m.FailFor[to]; err != nil {
		return err
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}
