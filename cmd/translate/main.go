// Command translate refreshes machine translations for all published
// canonical content. It only updates translation rows that already exist;
// placeholders are created separately (see cmd/placeholders).
//
// Usage:
//
//	translate [--dry-run] [--limit=N] [--lang=nl|fr]
//
// The run exits 0 even when individual items fail; only a failure to fetch
// the canonical items before processing starts exits non-zero.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/homemadechefs/chefcms/internal/ai"
	"github.com/homemadechefs/chefcms/internal/config"
	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
	"github.com/homemadechefs/chefcms/internal/translate"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "compute translations without writing to the database")
	limit := flag.Int("limit", 0, "cap on the number of canonical items processed (0 = all)")
	lang := flag.String("lang", "", "restrict to one target language (nl or fr; default both)")
	flag.Parse()

	cfg := config.Load()

	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: true,
	})
	log := logger.Get()

	var languages []models.Language
	if *lang != "" {
		parsed, err := models.ParseLanguage(*lang)
		if err != nil || parsed == models.CanonicalLanguage {
			log.Fatal().Str("lang", *lang).Msg("Invalid target language, expected nl or fr")
		}
		languages = []models.Language{parsed}
	}

	db, err := database.New(cfg, *log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	content := repository.NewContentRepo(db)
	translator := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	pipeline := translate.New(content, translator, cfg.TranslateThrottle)

	log.Info().
		Bool("dry_run", *dryRun).
		Int("limit", *limit).
		Msg("Starting translation batch")

	report, err := pipeline.Run(context.Background(), translate.Options{
		Languages: languages,
		Limit:     *limit,
		DryRun:    *dryRun,
		Mode:      translate.ModeRefresh,
	})
	if err != nil {
		log.Error().Err(err).Msg("Translation batch aborted")
		os.Exit(1)
	}

	report.Log(log)
	if *dryRun {
		for _, entry := range report.Entries {
			log.Info().
				Str("language", string(entry.Language)).
				Str("slug", entry.Slug).
				Str("title", entry.Title).
				Msg("Dry run result")
		}
		log.Info().Msg("This was a dry run. Run without --dry-run to save translations.")
	}
}
