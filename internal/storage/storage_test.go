package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writeTemplate(t *testing.T, s *Storage, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.TemplateDir(), name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestListTemplatesSkipsNonTemplates(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Job_Offer.md", "Subject: Offer\nBody")
	writeTemplate(t, s, "Notes.txt", "plain notes")
	writeTemplate(t, s, ".hidden.md", "hidden")
	writeTemplate(t, s, "~$Job_Offer.docx", "office lock file")
	writeTemplate(t, s, "readme.pdf", "unsupported")
	writeTemplate(t, s, "Notes.txt.meta.yaml", "calendar: true")
	if err := os.Mkdir(filepath.Join(s.TemplateDir(), "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 {
		t.Fatalf("got %d templates, want 2", len(templates))
	}
	// Sorted by file name.
	if templates[0].FileName != "Job_Offer.md" || templates[1].FileName != "Notes.txt" {
		t.Errorf("unexpected order: %s, %s", templates[0].FileName, templates[1].FileName)
	}
}

func TestListTemplatesSkipsCorruptFiles(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Good.md", "Subject: Ok\nBody")
	writeTemplate(t, s, "Corrupt.docx", "not a zip archive")

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 1 || templates[0].FileName != "Good.md" {
		t.Fatalf("corrupt template must be skipped, got %d templates", len(templates))
	}
}

func TestLoadTemplateInlineMeta(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Invite.md", "---\ncalendar: true\nname: Invite\n---\nSubject: Hi\nBody")

	tpl, err := s.LoadTemplate("Invite.md")
	if err != nil {
		t.Fatal(err)
	}
	if !tpl.Meta.Calendar || tpl.Meta.Name != "Invite" {
		t.Errorf("meta = %+v", tpl.Meta)
	}
	if tpl.Content != "Subject: Hi\nBody" {
		t.Errorf("content = %q", tpl.Content)
	}
	if tpl.FilePath != filepath.Join(s.TemplateDir(), "Invite.md") {
		t.Errorf("path = %q", tpl.FilePath)
	}
}

func TestLoadTemplateSidecarMeta(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Interview.txt", "Subject: Interview\nBody")
	writeTemplate(t, s, "Interview.txt.meta.yaml", "calendar: true\ndescription: Invitation\n")

	tpl, err := s.LoadTemplate("Interview.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !tpl.Meta.Calendar || tpl.Meta.Description != "Invitation" {
		t.Errorf("meta = %+v", tpl.Meta)
	}
}

func TestLoadTemplateInlineMetaBeatsSidecar(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Both.md", "---\nname: Inline\n---\nBody")
	writeTemplate(t, s, "Both.md.meta.yaml", "name: Sidecar\ncalendar: true\n")

	tpl, err := s.LoadTemplate("Both.md")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Meta.Name != "Inline" || tpl.Meta.Calendar {
		t.Errorf("inline metadata must win over the sidecar, got %+v", tpl.Meta)
	}
}

func TestLoadTemplateLegacyMarker(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Online_Interview.txt", "Subject: Interview\nBody")

	tpl, err := s.LoadTemplate("Online_Interview.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !tpl.Meta.Calendar {
		t.Error("legacy marker file name must imply the calendar capability")
	}
}

func TestLoadTemplateMetaDisablesLegacyMarker(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Online_Interview.md", "---\nname: Plain email\n---\nBody")

	tpl, err := s.LoadTemplate("Online_Interview.md")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Meta.Calendar {
		t.Error("declared metadata without calendar must override the legacy marker")
	}
}

func TestLoadTemplateBadSidecar(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Bad.txt", "Body")
	writeTemplate(t, s, "Bad.txt.meta.yaml", ": [not yaml")

	if _, err := s.LoadTemplate("Bad.txt"); err == nil {
		t.Error("invalid sidecar must return an error")
	}
}

func TestInitLibrary(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "templates")
	s, err := NewStorage(root)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.InitLibrary(); err != nil {
		t.Fatal(err)
	}
	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 {
		t.Fatalf("got %d starter templates, want 2", len(templates))
	}

	var foundCalendar bool
	for _, tpl := range templates {
		if tpl.Meta.Calendar {
			foundCalendar = true
		}
	}
	if !foundCalendar {
		t.Error("starter set must include a calendar-capable template")
	}
}

func TestInitLibraryLeavesExistingAlone(t *testing.T) {
	s := newTestStorage(t)
	writeTemplate(t, s, "Mine.md", "Subject: Mine\nBody")

	if err := s.InitLibrary(); err != nil {
		t.Fatal(err)
	}
	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 1 || templates[0].FileName != "Mine.md" {
		t.Errorf("init must not add starters to a non-empty library, got %d templates", len(templates))
	}
}
