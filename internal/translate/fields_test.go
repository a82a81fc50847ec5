package translate

import (
	"errors"
	"testing"

	"github.com/homemadechefs/chefcms/internal/models"
)

func TestDefaultFieldsRoundTrip(t *testing.T) {
	meta := "Meta"
	metaDesc := "Meta description"
	item := &models.ContentItem{
		Title:           "Title",
		Excerpt:         "Excerpt",
		Body:            "<p>Body</p>",
		MetaTitle:       &meta,
		MetaDescription: &metaDesc,
	}

	out := &models.TranslatedFields{}
	for _, f := range DefaultFields() {
		got := f.Get(item)
		if got == "" {
			t.Errorf("field %s read empty from a fully populated item", f.Name)
			continue
		}
		f.Apply(out, got)
	}

	if out.Title == nil || *out.Title != "Title" {
		t.Error("title not applied")
	}
	if out.MetaDescription == nil || *out.MetaDescription != "Meta description" {
		t.Error("meta description not applied")
	}
}

func TestDefaultFieldsNilMeta(t *testing.T) {
	item := &models.ContentItem{Title: "Title"}
	for _, f := range DefaultFields() {
		switch f.Name {
		case "meta_title", "meta_description":
			if got := f.Get(item); got != "" {
				t.Errorf("field %s should read empty when unset, got %q", f.Name, got)
			}
		}
	}
}

func TestFieldsByName(t *testing.T) {
	fields, err := FieldsByName([]string{"title", "body"})
	if err != nil {
		t.Fatalf("FieldsByName failed: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "title" || fields[1].Name != "body" {
		t.Errorf("unexpected fields: %v", fieldNames(fields))
	}
}

func TestFieldsByNameUnknown(t *testing.T) {
	_, err := FieldsByName([]string{"title", "author_name"})
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldError, got %T", err)
	}
	if unknown.Name != "author_name" {
		t.Errorf("unexpected field name %q", unknown.Name)
	}
}

func fieldNames(fields []FieldSpec) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
