package models

import (
	"path/filepath"
	"strings"
)

// TemplateMeta holds the optional metadata a template declares about itself,
// either in a YAML frontmatter block (text templates) or in a sidecar file
// next to the document (Word templates).
type TemplateMeta struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Calendar marks the template as one whose emails come with a calendar
	// meeting invitation. Replaces the old convention of sniffing the file
	// name for an "Online_Interview" marker.
	Calendar bool `yaml:"calendar,omitempty"`
}

// IsZero reports whether no metadata was declared at all.
func (m TemplateMeta) IsZero() bool {
	return m == TemplateMeta{}
}

// Template is a single email template loaded from the template directory.
// Immutable once loaded; a selection change reloads it from disk.
type Template struct {
	FileName string // base name within the template directory
	FilePath string // absolute path on disk
	Content  string // document text, paragraphs joined by newlines
	Meta     TemplateMeta
}

// DisplayName returns the human-facing name for the template: the declared
// metadata name if present, otherwise the file name with its extension
// removed and underscores turned into spaces.
func (t Template) DisplayName() string {
	if t.Meta.Name != "" {
		return t.Meta.Name
	}
	name := strings.TrimSuffix(t.FileName, filepath.Ext(t.FileName))
	return strings.ReplaceAll(name, "_", " ")
}

// Implement list.Item interface for the bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return t.DisplayName()
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	return t.DisplayName()
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	if t.Meta.Description != "" {
		return t.Meta.Description
	}
	if t.Meta.Calendar {
		return "Email + calendar invitation"
	}
	return "Email template"
}

// ParsedTemplate is the parsed form of a template's content: a subject line,
// the remaining body, and the distinct placeholder names in first-occurrence
// order. Derived purely from the raw text.
type ParsedTemplate struct {
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	Placeholders []string `json:"placeholders"`
}
