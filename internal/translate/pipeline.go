package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
)

// Translator is the external translation provider surface the pipeline
// depends on. Satisfied by *ai.Client.
type Translator interface {
	Translate(ctx context.Context, text string, target models.Language) (string, error)
}

// Mode selects how the pipeline handles a canonical item with no existing
// translation row. It is always chosen explicitly by the caller.
type Mode int

const (
	// ModeRefresh updates translation rows an editor has already created
	// (placeholders included) and skips items without one.
	ModeRefresh Mode = iota
	// ModeCreate inserts a new translation row when none exists, copying
	// the canonical item's non-text columns. Used by the one-shot
	// migration path.
	ModeCreate
)

// Options configures one batch run.
type Options struct {
	// Languages to produce; defaults to all target languages.
	Languages []models.Language
	// Limit caps the number of canonical items processed; <= 0 is unbounded.
	Limit int
	// DryRun computes and reports translations without writing anything.
	DryRun bool
	// Fields to translate; defaults to DefaultFields.
	Fields []FieldSpec
	Mode   Mode
}

// Pipeline produces or refreshes translated content items by calling the
// translation provider field by field. Provider calls are strictly
// sequential with a fixed pause after each one to stay under the provider's
// request-rate ceiling.
type Pipeline struct {
	content    repository.ContentRepository
	translator Translator
	throttle   time.Duration
}

// New creates a translation pipeline. throttle is the pause inserted after
// every provider call; pass 0 to disable (tests).
func New(content repository.ContentRepository, translator Translator, throttle time.Duration) *Pipeline {
	return &Pipeline{
		content:    content,
		translator: translator,
		throttle:   throttle,
	}
}

// Run executes one batch. It returns an error only when the initial fetch
// of canonical items fails; per-item failures are tallied in the report and
// the batch always completes its full iteration. Re-running is safe: only
// existing rows are updated (or creation no-ops on rows that now exist).
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Report, error) {
	log := logger.Get()

	langs := opts.Languages
	if len(langs) == 0 {
		langs = models.TargetLanguages()
	}
	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields()
	}

	items, err := p.content.ListCanonical(ctx, true, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch canonical items: %w", err)
	}

	log.Info().
		Int("items", len(items)).
		Bool("dry_run", opts.DryRun).
		Msg("Starting translation batch")

	report := NewReport(langs, opts.DryRun)

	for _, lang := range langs {
		stats := report.Stats[lang]

		for i, item := range items {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			log.Info().
				Str("language", string(lang)).
				Str("slug", item.Slug).
				Int("index", i+1).
				Int("total", len(items)).
				Msg("Processing item")

			translated, err := p.translateItem(ctx, item, lang, fields)
			if err != nil {
				log.Error().
					Err(err).
					Str("language", string(lang)).
					Str("slug", item.Slug).
					Msg("Translation failed")
				stats.Failed++
				continue
			}

			if opts.DryRun {
				report.AddEntry(lang, item, translated)
				stats.Translated++
				continue
			}

			if err := p.persist(ctx, item, lang, translated, opts.Mode, stats); err != nil {
				log.Error().
					Err(err).
					Str("language", string(lang)).
					Str("slug", item.Slug).
					Msg("Failed to save translation")
			}
		}
	}

	return report, nil
}

// translateItem translates every non-empty field of one item. Any field
// failure aborts the whole item so partial translations are never written.
func (p *Pipeline) translateItem(ctx context.Context, item *models.ContentItem, lang models.Language, fields []FieldSpec) (*models.TranslatedFields, error) {
	out := &models.TranslatedFields{}

	for _, field := range fields {
		text := field.Get(item)
		if text == "" {
			continue
		}

		translated, err := p.translator.Translate(ctx, text, lang)
		if err != nil {
			return nil, fmt.Errorf("translate %s: %w", field.Name, err)
		}
		field.Apply(out, translated)

		if err := p.pause(ctx); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (p *Pipeline) persist(ctx context.Context, item *models.ContentItem, lang models.Language, translated *models.TranslatedFields, mode Mode, stats *LangStats) error {
	existing, err := p.content.FindTranslation(ctx, item.ID, lang)

	switch {
	case err == nil:
		if err := p.content.UpdateTranslatedFields(ctx, existing.ID, translated); err != nil {
			stats.Failed++
			return err
		}
		stats.Translated++
		return nil

	case errors.Is(err, repository.ErrNotFound):
		if mode == ModeRefresh {
			// No placeholder to refresh; an editor has to create the
			// translation row first.
			stats.Skipped++
			logger.Get().Warn().
				Str("language", string(lang)).
				Str("slug", item.Slug).
				Msg("No existing translation found, skipping")
			return nil
		}

		row := placeholderFrom(item, lang)
		applyTranslated(row, translated)
		if err := p.content.Create(ctx, row); err != nil {
			stats.Failed++
			return err
		}
		stats.Created++
		return nil

	default:
		stats.Failed++
		return err
	}
}

// pause sleeps the configured throttle, aborting early on cancellation.
func (p *Pipeline) pause(ctx context.Context) error {
	if p.throttle <= 0 {
		return nil
	}
	timer := time.NewTimer(p.throttle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// placeholderFrom copies a canonical item into a new translation row for
// lang, with source-language text as a stand-in. The slug gets a language
// suffix so the (slug, language) pair stays unique per locale prefix.
func placeholderFrom(item *models.ContentItem, lang models.Language) *models.ContentItem {
	sourceID := item.ID
	return &models.ContentItem{
		Kind:            item.Kind,
		Slug:            fmt.Sprintf("%s-%s", item.Slug, lang),
		Language:        lang,
		Title:           item.Title,
		Excerpt:         item.Excerpt,
		Body:            item.Body,
		HeroImage:       item.HeroImage,
		MetaTitle:       item.MetaTitle,
		MetaDescription: item.MetaDescription,
		Category:        item.Category,
		Tags:            item.Tags,
		AuthorName:      item.AuthorName,
		IsPublished:     item.IsPublished,
		PublishedAt:     item.PublishedAt,
		SourceID:        &sourceID,
	}
}

func applyTranslated(row *models.ContentItem, f *models.TranslatedFields) {
	if f.Title != nil {
		row.Title = *f.Title
	}
	if f.Excerpt != nil {
		row.Excerpt = *f.Excerpt
	}
	if f.Body != nil {
		row.Body = *f.Body
	}
	if f.MetaTitle != nil {
		row.MetaTitle = f.MetaTitle
	}
	if f.MetaDescription != nil {
		row.MetaDescription = f.MetaDescription
	}
}
