package translate

import (
	"github.com/rs/zerolog"

	"github.com/homemadechefs/chefcms/internal/models"
)

// LangStats counts outcomes for one target language in a batch run.
// Translated covers both updated rows and, in create mode, the text applied
// to freshly created rows (Created counts those separately).
type LangStats struct {
	Translated int
	Created    int
	Skipped    int
	Failed     int
}

// Entry records one dry-run result so the operator can inspect what would
// have been written.
type Entry struct {
	Language models.Language
	Slug     string
	Title    string
}

// Report aggregates the outcome of one batch run.
type Report struct {
	DryRun    bool
	Languages []models.Language
	Stats     map[models.Language]*LangStats
	Entries   []Entry
}

// NewReport creates an empty report covering the given languages
func NewReport(langs []models.Language, dryRun bool) *Report {
	stats := make(map[models.Language]*LangStats, len(langs))
	for _, lang := range langs {
		stats[lang] = &LangStats{}
	}
	return &Report{
		DryRun:    dryRun,
		Languages: langs,
		Stats:     stats,
	}
}

// AddEntry records a dry-run result for one item
func (r *Report) AddEntry(lang models.Language, item *models.ContentItem, f *models.TranslatedFields) {
	title := item.Title
	if f.Title != nil {
		title = *f.Title
	}
	r.Entries = append(r.Entries, Entry{
		Language: lang,
		Slug:     item.Slug,
		Title:    title,
	})
}

// TotalTranslated sums translated counts across languages
func (r *Report) TotalTranslated() int {
	n := 0
	for _, s := range r.Stats {
		n += s.Translated
	}
	return n
}

// TotalFailed sums failure counts across languages
func (r *Report) TotalFailed() int {
	n := 0
	for _, s := range r.Stats {
		n += s.Failed
	}
	return n
}

// Log writes a per-language summary of the run
func (r *Report) Log(log *zerolog.Logger) {
	for _, lang := range r.Languages {
		s := r.Stats[lang]
		log.Info().
			Str("language", string(lang)).
			Int("translated", s.Translated).
			Int("created", s.Created).
			Int("skipped", s.Skipped).
			Int("failed", s.Failed).
			Bool("dry_run", r.DryRun).
			Msg("Translation summary")
	}
}
