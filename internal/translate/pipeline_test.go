package translate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/mocks"
	"github.com/homemadechefs/chefcms/internal/models"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Level: "disabled"})
	m.Run()
}

func strPtr(s string) *string { return &s }

func seedCanonical(repo *mocks.MockContentRepository, n int) []*models.ContentItem {
	var items []*models.ContentItem
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		published := base.AddDate(0, 0, i)
		items = append(items, repo.Seed(&models.ContentItem{
			Kind:            models.KindBlog,
			Slug:            fmt.Sprintf("post-%d", i+1),
			Language:        models.LanguageEnglish,
			Title:           fmt.Sprintf("Title %d", i+1),
			Excerpt:         fmt.Sprintf("Excerpt %d", i+1),
			Body:            fmt.Sprintf("<p>Body %d</p>", i+1),
			MetaTitle:       strPtr(fmt.Sprintf("Meta %d", i+1)),
			MetaDescription: strPtr(fmt.Sprintf("Meta description %d", i+1)),
			Category:        "cooking",
			IsPublished:     true,
			PublishedAt:     &published,
		}))
	}
	return items
}

func seedPlaceholder(repo *mocks.MockContentRepository, src *models.ContentItem, lang models.Language) *models.ContentItem {
	sourceID := src.ID
	return repo.Seed(&models.ContentItem{
		Kind:        src.Kind,
		Slug:        fmt.Sprintf("%s-%s", src.Slug, lang),
		Language:    lang,
		Title:       src.Title,
		Excerpt:     src.Excerpt,
		Body:        src.Body,
		IsPublished: src.IsPublished,
		PublishedAt: src.PublishedAt,
		SourceID:    &sourceID,
	})
}

func TestRunRefreshUpdatesExistingTranslation(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	src := seedCanonical(repo, 1)[0]
	placeholder := seedPlaceholder(repo, src, models.LanguageDutch)

	tr := &mocks.MockTranslator{}
	p := New(repo, tr, 0)

	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageDutch},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stats := report.Stats[models.LanguageDutch]
	if stats.Translated != 1 || stats.Failed != 0 || stats.Skipped != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	got := repo.Items[placeholder.ID]
	if got.Title != "[nl] Title 1" {
		t.Errorf("expected translated title, got %q", got.Title)
	}
	if got.Body != "[nl] <p>Body 1</p>" {
		t.Errorf("expected translated body, got %q", got.Body)
	}
	if got.MetaTitle == nil || *got.MetaTitle != "[nl] Meta 1" {
		t.Errorf("expected translated meta title, got %v", got.MetaTitle)
	}
}

func TestRunRefreshIsIdempotent(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	src := seedCanonical(repo, 1)[0]
	seedPlaceholder(repo, src, models.LanguageDutch)

	p := New(repo, &mocks.MockTranslator{}, 0)
	opts := Options{Languages: []models.Language{models.LanguageDutch}}

	for i := 0; i < 2; i++ {
		if _, err := p.Run(context.Background(), opts); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}

	// Exactly one Dutch row for the canonical item after both runs.
	count := 0
	var dutch *models.ContentItem
	for _, item := range repo.Items {
		if item.SourceID != nil && *item.SourceID == src.ID && item.Language == models.LanguageDutch {
			count++
			dutch = item
		}
	}
	if count != 1 {
		t.Fatalf("expected 1 Dutch translation row, got %d", count)
	}
	// Second run re-translates the canonical text, not the translation.
	if dutch.Title != "[nl] Title 1" {
		t.Errorf("expected fresh translation after re-run, got %q", dutch.Title)
	}
}

func TestRunRefreshSkipsWithoutPlaceholder(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	seedCanonical(repo, 1)

	p := New(repo, &mocks.MockTranslator{}, 0)
	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageFrench},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stats := report.Stats[models.LanguageFrench]
	if stats.Skipped != 1 || stats.Translated != 0 {
		t.Errorf("expected 1 skipped, got %+v", stats)
	}
	if len(repo.Items) != 1 {
		t.Errorf("refresh mode must not create rows, have %d", len(repo.Items))
	}
}

func TestRunDryRunHasNoSideEffects(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	src := seedCanonical(repo, 2)[0]
	seedPlaceholder(repo, src, models.LanguageDutch)

	before := make(map[int64]models.ContentItem, len(repo.Items))
	for id, item := range repo.Items {
		before[id] = *item
	}

	p := New(repo, &mocks.MockTranslator{}, 0)
	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageDutch},
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Entries) == 0 {
		t.Error("dry run should still produce a per-item report")
	}
	if repo.UpdateCalls != 0 || repo.CreateCalls != 0 {
		t.Errorf("dry run must not write: updates=%d creates=%d", repo.UpdateCalls, repo.CreateCalls)
	}
	if len(repo.Items) != len(before) {
		t.Fatalf("row count changed: %d != %d", len(repo.Items), len(before))
	}
	for id, want := range before {
		if diff := cmp.Diff(want, *repo.Items[id]); diff != "" {
			t.Errorf("row %d changed during dry run (-want +got):\n%s", id, diff)
		}
	}
}

func TestRunRespectsLimitAndLanguage(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	srcs := seedCanonical(repo, 10)
	for _, src := range srcs {
		seedPlaceholder(repo, src, models.LanguageDutch)
		seedPlaceholder(repo, src, models.LanguageFrench)
	}

	p := New(repo, &mocks.MockTranslator{}, 0)
	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageDutch},
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := report.Stats[models.LanguageDutch].Translated; got != 2 {
		t.Errorf("expected 2 translated, got %d", got)
	}
	if _, ok := report.Stats[models.LanguageFrench]; ok {
		t.Error("French should not be processed")
	}

	// Only the first two posts (by id) touched, Dutch only.
	for _, src := range srcs[2:] {
		nl, _ := repo.FindTranslation(context.Background(), src.ID, models.LanguageDutch)
		if nl.Title != src.Title {
			t.Errorf("post %s beyond limit was translated", src.Slug)
		}
	}
	for _, src := range srcs {
		fr, _ := repo.FindTranslation(context.Background(), src.ID, models.LanguageFrench)
		if fr.Title != src.Title {
			t.Errorf("French translation of %s was touched", src.Slug)
		}
	}
}

func TestRunFieldFailureIsAllOrNothing(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	src := seedCanonical(repo, 1)[0]
	placeholder := seedPlaceholder(repo, src, models.LanguageDutch)
	originalTitle := placeholder.Title

	tr := &mocks.MockTranslator{FailSubstrings: []string{"Meta description 1"}}
	p := New(repo, tr, 0)

	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageDutch},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stats := report.Stats[models.LanguageDutch]
	if stats.Failed != 1 || stats.Translated != 0 {
		t.Errorf("expected 1 failed, got %+v", stats)
	}
	if repo.UpdateCalls != 0 {
		t.Errorf("no write should happen on field failure, got %d updates", repo.UpdateCalls)
	}
	if got := repo.Items[placeholder.ID].Title; got != originalTitle {
		t.Errorf("placeholder was partially updated: %q", got)
	}
}

func TestRunStoreFailureCountsAsItemFailure(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	srcs := seedCanonical(repo, 2)
	bad := seedPlaceholder(repo, srcs[0], models.LanguageDutch)
	seedPlaceholder(repo, srcs[1], models.LanguageDutch)
	repo.UpdateFieldErrors[bad.ID] = errors.New("write failed")

	p := New(repo, &mocks.MockTranslator{}, 0)
	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageDutch},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stats := report.Stats[models.LanguageDutch]
	if stats.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", stats.Failed)
	}
	// The batch continues past the failure.
	if stats.Translated != 1 {
		t.Errorf("expected 1 translated, got %d", stats.Translated)
	}
}

func TestRunCreateModeInsertsMissingRows(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	src := seedCanonical(repo, 1)[0]

	p := New(repo, &mocks.MockTranslator{}, 0)
	report, err := p.Run(context.Background(), Options{
		Languages: []models.Language{models.LanguageFrench},
		Mode:      ModeCreate,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := report.Stats[models.LanguageFrench].Created; got != 1 {
		t.Fatalf("expected 1 created, got %d", got)
	}

	fr, err := repo.FindTranslation(context.Background(), src.ID, models.LanguageFrench)
	if err != nil {
		t.Fatalf("translation row not created: %v", err)
	}
	if fr.Slug != "post-1-fr" {
		t.Errorf("unexpected slug %q", fr.Slug)
	}
	if fr.Title != "[fr] Title 1" {
		t.Errorf("unexpected title %q", fr.Title)
	}
	if fr.Category != src.Category || fr.Kind != src.Kind {
		t.Error("non-text fields should be copied from the canonical item")
	}
	if fr.SourceID == nil || *fr.SourceID != src.ID {
		t.Error("source_id should point at the canonical item")
	}
}

func TestRunTopLevelFetchFailure(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	repo.ListError = errors.New("connection refused")

	p := New(repo, &mocks.MockTranslator{}, 0)
	if _, err := p.Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error when canonical fetch fails")
	}
}

func TestCreatePlaceholders(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	srcs := seedCanonical(repo, 3)
	// One Dutch placeholder already exists.
	seedPlaceholder(repo, srcs[0], models.LanguageDutch)

	p := New(repo, nil, 0)
	report, err := p.CreatePlaceholders(context.Background(), nil)
	if err != nil {
		t.Fatalf("CreatePlaceholders failed: %v", err)
	}

	nl := report.Stats[models.LanguageDutch]
	if nl.Created != 2 || nl.Skipped != 1 {
		t.Errorf("unexpected Dutch stats: %+v", nl)
	}
	fr := report.Stats[models.LanguageFrench]
	if fr.Created != 3 || fr.Skipped != 0 {
		t.Errorf("unexpected French stats: %+v", fr)
	}

	// Placeholders carry the canonical text as a stand-in.
	row, err := repo.FindTranslation(context.Background(), srcs[1].ID, models.LanguageFrench)
	if err != nil {
		t.Fatalf("placeholder not found: %v", err)
	}
	if row.Title != srcs[1].Title || row.Body != srcs[1].Body {
		t.Error("placeholder should copy canonical text")
	}
}

func TestCreatePlaceholdersIsIdempotent(t *testing.T) {
	repo := mocks.NewMockContentRepository()
	seedCanonical(repo, 2)

	p := New(repo, nil, 0)
	if _, err := p.CreatePlaceholders(context.Background(), nil); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	report, err := p.CreatePlaceholders(context.Background(), nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for lang, stats := range report.Stats {
		if stats.Created != 0 {
			t.Errorf("%s: second run created %d rows", lang, stats.Created)
		}
		if stats.Skipped != 2 {
			t.Errorf("%s: expected 2 skipped, got %d", lang, stats.Skipped)
		}
	}
}
