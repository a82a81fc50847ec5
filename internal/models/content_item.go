package models

import (
	"fmt"
	"time"
)

// Language is a supported content language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageDutch   Language = "nl"
	LanguageFrench  Language = "fr"
)

// CanonicalLanguage is the language content is authored in. Translations
// are always derived from it.
const CanonicalLanguage = LanguageEnglish

// TargetLanguages returns the languages the translation pipeline can
// produce, in processing order.
func TargetLanguages() []Language {
	return []Language{LanguageDutch, LanguageFrench}
}

// ParseLanguage validates a language code from user input.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEnglish, LanguageDutch, LanguageFrench:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// DisplayName returns the English name of the language, as used in
// translation prompts.
func (l Language) DisplayName() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageDutch:
		return "Dutch"
	case LanguageFrench:
		return "French"
	}
	return string(l)
}

// ContentKind distinguishes blog posts from learning pages. Both share the
// same table and translation lifecycle.
type ContentKind string

const (
	KindBlog     ContentKind = "blog"
	KindLearning ContentKind = "learning"
)

// ContentItem is one language-specific version of a piece of content.
// Canonical items have a nil SourceID; translations point back at the
// canonical item's ID. At most one translation exists per
// (source_id, language) pair.
type ContentItem struct {
	ID              int64       `json:"id"`
	Kind            ContentKind `json:"kind"`
	Slug            string      `json:"slug"`
	Language        Language    `json:"language"`
	Title           string      `json:"title"`
	Excerpt         string      `json:"excerpt"`
	Body            string      `json:"body"`
	HeroImage       *string     `json:"hero_image,omitempty"`
	MetaTitle       *string     `json:"meta_title,omitempty"`
	MetaDescription *string     `json:"meta_description,omitempty"`
	Category        string      `json:"category"`
	Tags            []string    `json:"tags,omitempty"`
	AuthorName      string      `json:"author_name"`
	IsPublished     bool        `json:"is_published"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	SourceID        *int64      `json:"source_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsCanonical reports whether the item is an original-language row rather
// than a translation.
func (c *ContentItem) IsCanonical() bool {
	return c.SourceID == nil
}
