// Command placeholders creates translation rows for every canonical
// content item that does not have one yet, copying the English text as a
// stand-in until the translation pipeline refreshes it. It is a one-shot
// migration tool; existing rows are skipped, so re-running is safe.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/homemadechefs/chefcms/internal/config"
	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
	"github.com/homemadechefs/chefcms/internal/translate"
)

func main() {
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
	// No translator needed; placeholders copy the source text as-is.
	pipeline := translate.New(content, nil, 0)

	report, err := pipeline.CreatePlaceholders(context.Background(), languages)
	if err != nil {
		log.Error().Err(err).Msg("Placeholder creation aborted")
		os.Exit(1)
	}

	for _, l := range report.Languages {
		s := report.Stats[l]
		log.Info().
			Str("language", string(l)).
			Int("created", s.Created).
			Int("skipped", s.Skipped).
			Int("failed", s.Failed).
			Msg("Placeholder summary")
	}
}
