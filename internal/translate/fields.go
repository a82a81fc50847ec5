package translate

import (
	"github.com/homemadechefs/chefcms/internal/models"
)

// FieldSpec describes one translatable field of a content item: how to read
// it from the source row and how to place the translation. Using typed
// accessors instead of string-keyed lookups means a field list can only
// name fields that actually exist.
type FieldSpec struct {
	Name  string
	Get   func(*models.ContentItem) string
	Apply func(*models.TranslatedFields, string)
}

// DefaultFields returns the fields translated per item, in call order.
// Fields that are empty on the source are skipped at run time.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{
			Name: "title",
			Get:  func(c *models.ContentItem) string { return c.Title },
			Apply: func(f *models.TranslatedFields, v string) {
				f.Title = &v
			},
		},
		{
			Name: "excerpt",
			Get:  func(c *models.ContentItem) string { return c.Excerpt },
			Apply: func(f *models.TranslatedFields, v string) {
				f.Excerpt = &v
			},
		},
		{
			Name: "body",
			Get:  func(c *models.ContentItem) string { return c.Body },
			Apply: func(f *models.TranslatedFields, v string) {
				f.Body = &v
			},
		},
		{
			Name: "meta_title",
			Get: func(c *models.ContentItem) string {
				if c.MetaTitle == nil {
					return ""
				}
				return *c.MetaTitle
			},
			Apply: func(f *models.TranslatedFields, v string) {
				f.MetaTitle = &v
			},
		},
		{
			Name: "meta_description",
			Get: func(c *models.ContentItem) string {
				if c.MetaDescription == nil {
					return ""
				}
				return *c.MetaDescription
			},
			Apply: func(f *models.TranslatedFields, v string) {
				f.MetaDescription = &v
			},
		},
	}
}

// FieldsByName resolves a list of field names against DefaultFields.
// Unknown names are an error at the call site, not a silent no-op.
func FieldsByName(names []string) ([]FieldSpec, error) {
	all := DefaultFields()
	byName := make(map[string]FieldSpec, len(all))
	for _, f := range all {
		byName[f.Name] = f
	}

	var out []FieldSpec
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, &UnknownFieldError{Name: name}
		}
		out = append(out, f)
	}
	return out, nil
}

// UnknownFieldError reports a field name that is not translatable.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return "unknown translatable field: " + e.Name
}
