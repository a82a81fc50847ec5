package models

// TranslatedFields carries the machine-translated text for one content item.
// A nil field was not translated (empty on the source) and is left unchanged
// when the translation row is refreshed.
type TranslatedFields struct {
	Title           *string `json:"title,omitempty"`
	Excerpt         *string `json:"excerpt,omitempty"`
	Body            *string `json:"body,omitempty"`
	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
}

// IsEmpty reports whether no field was translated.
func (f *TranslatedFields) IsEmpty() bool {
	return f.Title == nil && f.Excerpt == nil && f.Body == nil &&
		f.MetaTitle == nil && f.MetaDescription == nil
}
