package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMeta reports a metadata entry without both a key and a value.
var ErrInvalidMeta = errors.New("invalid page metadata")

// MetaKind distinguishes the document title from named meta tags.
type MetaKind int

const (
	// KindTitle renders as <title>.
	KindTitle MetaKind = iota + 1
	// KindNamed renders as <meta name="..." content="...">.
	KindNamed
)

// Meta is a single document head entry. The zero value is invalid; build
// entries with Title or Named.
type Meta struct {
	kind    MetaKind
	name    string
	content string
}

// MetaFunc produces the head entries of a page. It takes no input and must
// not have side effects.
type MetaFunc func() []Meta

// Title returns a title entry.
func Title(text string) Meta {
	return Meta{kind: KindTitle, name: "title", content: text}
}

// Named returns a name/content entry such as a description.
func Named(name, content string) Meta {
	return Meta{kind: KindNamed, name: name, content: content}
}

// Kind reports whether m is a title or a named entry.
func (m Meta) Kind() MetaKind { return m.kind }

// Name is "title" for title entries and the meta name otherwise.
func (m Meta) Name() string { return m.name }

// Content is the title text or the meta content.
func (m Meta) Content() string { return m.content }

// IsTitle reports whether m is a title entry. Templates use it to pick the tag.
func (m Meta) IsTitle() bool { return m.kind == KindTitle }

// Validate returns ErrInvalidMeta when m lacks a key or a value.
func (m Meta) Validate() error {
	switch m.kind {
	case KindTitle:
		if strings.TrimSpace(m.content) == "" {
			return fmt.Errorf("%w: empty title", ErrInvalidMeta)
		}
	case KindNamed:
		if strings.TrimSpace(m.name) == "" {
			return fmt.Errorf("%w: missing name", ErrInvalidMeta)
		}
		if strings.TrimSpace(m.content) == "" {
			return fmt.Errorf("%w: %s has no content", ErrInvalidMeta, m.name)
		}
	default:
		return fmt.Errorf("%w: zero value", ErrInvalidMeta)
	}
	return nil
}

// MarshalJSON encodes title entries as {"title":...} and named entries as
// {"name":...,"content":...}.
func (m Meta) MarshalJSON() ([]byte, error) {
	if m.kind == KindTitle {
		return json.Marshal(struct {
			Title string `json:"title"`
		}{m.content})
	}
	return json.Marshal(struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}{m.name, m.content})
}

// ValidateMeta checks every entry and requires at least one.
func ValidateMeta(entries []Meta) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidMeta)
	}
	for i, m := range entries {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// TitleOf returns the content of the first title entry, or "".
func TitleOf(entries []Meta) string {
	for _, m := range entries {
		if m.IsTitle() {
			return m.content
		}
	}
	return ""
}
