package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/mocks"
	"github.com/homemadechefs/chefcms/internal/models"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Level: "disabled"})
	m.Run()
}

// seedArticles creates n published canonical articles, newest last in slug
// order: article-n has the most recent publish date.
func seedArticles(repo *mocks.MockContentRepository, n int) []*models.ContentItem {
	var items []*models.ContentItem
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		published := base.AddDate(0, 0, i)
		items = append(items, repo.Seed(&models.ContentItem{
			Kind:        models.KindBlog,
			Slug:        fmt.Sprintf("article-%d", i+1),
			Language:    models.LanguageEnglish,
			Title:       fmt.Sprintf("Recipe %d", i+1),
			Excerpt:     fmt.Sprintf("Excerpt %d", i+1),
			Body:        "<p>body</p>",
			Category:    "cooking",
			IsPublished: true,
			PublishedAt: &published,
		}))
	}
	return items
}

func newTestService() (*Service, *mocks.MockSubscriberRepository, *mocks.MockSentEmailRepository, *mocks.MockContentRepository, *mocks.MockSender) {
	subs := mocks.NewMockSubscriberRepository()
	sent := mocks.NewMockSentEmailRepository()
	content := mocks.NewMockContentRepository()
	sender := mocks.NewMockSender()
	svc := NewService(subs, sent, content, sender, "https://homemadechefs.com")
	return svc, subs, sent, content, sender
}

func TestSubscribeFresh(t *testing.T) {
	svc, subs, sent, content, sender := newTestService()
	seedArticles(content, 5)

	result, err := svc.Subscribe(context.Background(), "chef@example.com")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if result.AlreadySubscribed {
		t.Error("fresh subscribe flagged as already subscribed")
	}
	if len(subs.Subscribers) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", len(subs.Subscribers))
	}

	if len(sender.Sent) != 1 {
		t.Fatalf("expected 1 email dispatch, got %d", len(sender.Sent))
	}
	mail := sender.Sent[0]
	if mail.To != "chef@example.com" {
		t.Errorf("welcome sent to %q", mail.To)
	}
	if mail.Subject != "Welcome to Homemade Chefs!" {
		t.Errorf("unexpected subject %q", mail.Subject)
	}

	// The welcome record holds the three newest slugs.
	if len(sent.Records) != 1 {
		t.Fatalf("expected 1 sent-email record, got %d", len(sent.Records))
	}
	rec := sent.Records[0]
	if rec.EmailType != models.EmailTypeWelcome {
		t.Errorf("unexpected email type %q", rec.EmailType)
	}
	want := []string{"article-5", "article-4", "article-3"}
	if diff := cmp.Diff(want, rec.ArticleSlugs); diff != "" {
		t.Errorf("welcome slugs mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscribeIsIdempotent(t *testing.T) {
	svc, subs, _, content, sender := newTestService()
	seedArticles(content, 3)

	if _, err := svc.Subscribe(context.Background(), "chef@example.com"); err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}
	result, err := svc.Subscribe(context.Background(), "chef@example.com")
	if err != nil {
		t.Fatalf("second subscribe failed: %v", err)
	}

	if !result.AlreadySubscribed {
		t.Error("expected AlreadySubscribed on repeat")
	}
	if len(subs.Subscribers) != 1 {
		t.Errorf("expected 1 subscriber, got %d", len(subs.Subscribers))
	}
	// No second welcome email.
	if len(sender.Sent) != 1 {
		t.Errorf("expected 1 email total, got %d", len(sender.Sent))
	}
}

func TestSubscribeKeepsRowWhenWelcomeFails(t *testing.T) {
	svc, subs, _, content, sender := newTestService()
	seedArticles(content, 3)
	sender.SendError = errors.New("provider down")

	if _, err := svc.Subscribe(context.Background(), "chef@example.com"); err == nil {
		t.Fatal("expected error when welcome email fails")
	}
	if len(subs.Subscribers) != 1 {
		t.Errorf("subscriber row should survive the failed welcome, got %d rows", len(subs.Subscribers))
	}
}

func subscribe(t *testing.T, subs *mocks.MockSubscriberRepository, emailAddr string) *models.NewsletterSubscriber {
	t.Helper()
	sub := &models.NewsletterSubscriber{
		ID:       uuid.New(),
		Email:    emailAddr,
		IsActive: true,
		Source:   "website",
	}
	if err := subs.Create(context.Background(), sub); err != nil {
		t.Fatalf("seed subscriber: %v", err)
	}
	return sub
}

func TestWeeklyDigestExcludesAlreadySent(t *testing.T) {
	svc, subs, sent, content, sender := newTestService()
	seedArticles(content, 6)
	sub := subscribe(t, subs, "chef@example.com")

	// Newest three already went out with a previous digest.
	if err := sent.Create(context.Background(), &models.SentEmailRecord{
		ID:           uuid.New(),
		SubscriberID: sub.ID,
		EmailType:    models.EmailTypeWeeklyDigest,
		ArticleSlugs: []string{"article-6", "article-5", "article-4"},
	}); err != nil {
		t.Fatalf("seed sent record: %v", err)
	}

	stats, err := svc.SendWeeklyDigest(context.Background())
	if err != nil {
		t.Fatalf("SendWeeklyDigest failed: %v", err)
	}
	if stats.EmailsSent != 1 || stats.EmailsFailed != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if len(sender.Sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.Sent))
	}
	body := sender.Sent[0].Body
	for _, title := range []string{"Recipe 3", "Recipe 2", "Recipe 1"} {
		if !strings.Contains(body, title) {
			t.Errorf("digest missing %q", title)
		}
	}
	for _, title := range []string{"Recipe 6", "Recipe 5", "Recipe 4"} {
		if strings.Contains(body, title) {
			t.Errorf("digest repeats already-sent %q", title)
		}
	}

	// The record union now covers all six slugs.
	seen, err := sent.SlugsSentTo(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("SlugsSentTo failed: %v", err)
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 seen slugs, got %d", len(seen))
	}
}

func TestWeeklyDigestSkipsExhaustedSubscriber(t *testing.T) {
	svc, subs, sent, content, sender := newTestService()
	articles := seedArticles(content, 3)
	sub := subscribe(t, subs, "chef@example.com")

	slugs := make([]string, len(articles))
	for i, a := range articles {
		slugs[i] = a.Slug
	}
	if err := sent.Create(context.Background(), &models.SentEmailRecord{
		ID:           uuid.New(),
		SubscriberID: sub.ID,
		EmailType:    models.EmailTypeWeeklyDigest,
		ArticleSlugs: slugs,
	}); err != nil {
		t.Fatalf("seed sent record: %v", err)
	}

	stats, err := svc.SendWeeklyDigest(context.Background())
	if err != nil {
		t.Fatalf("SendWeeklyDigest failed: %v", err)
	}

	// Nothing new to send is a skip, not a failure.
	if stats.EmailsSent != 0 || stats.EmailsFailed != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(sender.Sent) != 0 {
		t.Errorf("no email expected, got %d", len(sender.Sent))
	}
}

func TestWeeklyDigestContinuesPastFailures(t *testing.T) {
	svc, subs, _, content, sender := newTestService()
	seedArticles(content, 4)
	subscribe(t, subs, "a@example.com")
	subscribe(t, subs, "b@example.com")
	subscribe(t, subs, "c@example.com")
	sender.FailFor = map[string]error{"b@example.com": errors.New("mailbox full")}

	stats, err := svc.SendWeeklyDigest(context.Background())
	if err != nil {
		t.Fatalf("SendWeeklyDigest failed: %v", err)
	}

	if stats.TotalSubscribers != 3 {
		t.Errorf("expected 3 subscribers, got %d", stats.TotalSubscribers)
	}
	if stats.EmailsSent != 2 {
		t.Errorf("expected 2 sent, got %d", stats.EmailsSent)
	}
	if stats.EmailsFailed != 1 {
		t.Errorf("expected 1 failed, got %d", stats.EmailsFailed)
	}
}

func TestWeeklyDigestCapsAtThreeArticles(t *testing.T) {
	svc, subs, sent, content, _ := newTestService()
	seedArticles(content, 10)
	sub := subscribe(t, subs, "chef@example.com")

	if _, err := svc.SendWeeklyDigest(context.Background()); err != nil {
		t.Fatalf("SendWeeklyDigest failed: %v", err)
	}

	if len(sent.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sent.Records))
	}
	rec := sent.Records[0]
	if rec.SubscriberID != sub.ID {
		t.Error("record attributed to wrong subscriber")
	}
	want := []string{"article-10", "article-9", "article-8"}
	if diff := cmp.Diff(want, rec.ArticleSlugs); diff != "" {
		t.Errorf("digest slugs mismatch (-want +got):\n%s", diff)
	}
}
