package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
)

// PlaceholderStats counts the outcome of placeholder creation for one
// language.
type PlaceholderStats struct {
	Created int
	Skipped int
	Failed  int
}

// PlaceholderReport summarizes one CreatePlaceholders run.
type PlaceholderReport struct {
	Languages []models.Language
	Stats     map[models.Language]*PlaceholderStats
}

// CreatePlaceholders inserts a translation row for every canonical item and
// target language that does not have one yet, with the canonical text as a
// stand-in until the translation pipeline refreshes it. Items that already
// have a row are skipped, so re-running is safe.
func (p *Pipeline) CreatePlaceholders(ctx context.Context, languages []models.Language) (*PlaceholderReport, error) {
	log := logger.Get()

	langs := languages
	if len(langs) == 0 {
		langs = models.TargetLanguages()
	}

	items, err := p.content.ListCanonical(ctx, false, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch canonical items: %w", err)
	}

	log.Info().Int("items", len(items)).Msg("Creating translation placeholders")

	report := &PlaceholderReport{
		Languages: langs,
		Stats:     make(map[models.Language]*PlaceholderStats, len(langs)),
	}
	for _, lang := range langs {
		report.Stats[lang] = &PlaceholderStats{}
	}

	for _, item := range items {
		for _, lang := range langs {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			stats := report.Stats[lang]

			_, err := p.content.FindTranslation(ctx, item.ID, lang)
			switch {
			case err == nil:
				stats.Skipped++
				continue
			case errors.Is(err, repository.ErrNotFound):
				// fall through to create
			default:
				log.Error().
					Err(err).
					Str("language", string(lang)).
					Str("slug", item.Slug).
					Msg("Placeholder lookup failed")
				stats.Failed++
				continue
			}

			row := placeholderFrom(item, lang)
			if err := p.content.Create(ctx, row); err != nil {
				log.Error().
					Err(err).
					Str("language", string(lang)).
					Str("slug", item.Slug).
					Msg("Placeholder creation failed")
				stats.Failed++
				continue
			}

			log.Info().
				Str("language", string(lang)).
				Str("slug", row.Slug).
				Msg("Created placeholder")
			stats.Created++
		}
	}

	return report, nil
}
