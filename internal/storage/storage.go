// Package storage scans and loads the template directory. Templates are
// read-only once loaded; the directory is rescanned on demand rather than
// watched.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mfaraji/templink/internal/docreader"
	"github.com/mfaraji/templink/internal/models"
)

// sidecarSuffix names the optional metadata file next to a template, e.g.
// Online_Interview.docx.meta.yaml.
const sidecarSuffix = ".meta.yaml"

// legacyCalendarMarker is the historical file-name convention for calendar
// templates, honored only when a template declares no metadata at all.
const legacyCalendarMarker = "Online_Interview"

// Storage handles all file system access for the template library.
type Storage struct {
	rootPath string
}

// NewStorage creates a storage rooted at rootPath, defaulting to
// ~/.templink/templates when rootPath is empty.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".templink", "templates")
	}
	return &Storage{rootPath: rootPath}, nil
}

// TemplateDir returns the root path of the template library.
func (s *Storage) TemplateDir() string {
	return s.rootPath
}

// InitLibrary creates the template directory and, when it holds no
// templates yet, writes a pair of starter templates.
func (s *Storage) InitLibrary() error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create template directory %s: %w", s.rootPath, err)
	}

	names, err := s.templateFiles()
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}

	for name, content := range starterTemplates {
		path := filepath.Join(s.rootPath, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write starter template %s: %w", name, err)
		}
	}
	return nil
}

// templateFiles returns the sorted template file names in the library,
// skipping dotfiles, Office lock files (~$...) and metadata sidecars.
func (s *Storage) templateFiles() ([]string, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory %s: %w", s.rootPath, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.HasSuffix(name, sidecarSuffix) {
			continue
		}
		if !docreader.Supported(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListTemplates loads every template in the library. A template that fails
// to load is skipped with a warning so one corrupt document does not hide
// the rest.
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	names, err := s.templateFiles()
	if err != nil {
		return nil, err
	}

	var templates []*models.Template
	for _, name := range names {
		tpl, err := s.LoadTemplate(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load template %s: %v\n", name, err)
			continue
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// LoadTemplate reads one template by file name and resolves its metadata:
// inline frontmatter first, then a sidecar file, then the legacy file-name
// convention.
func (s *Storage) LoadTemplate(name string) (*models.Template, error) {
	path := filepath.Join(s.rootPath, name)

	content, meta, err := docreader.Read(path)
	if err != nil {
		return nil, err
	}

	if meta.IsZero() {
		if sidecar, ok, err := readSidecar(path); err != nil {
			return nil, err
		} else if ok {
			meta = sidecar
		}
	}
	if meta.IsZero() && strings.Contains(name, legacyCalendarMarker) {
		meta.Calendar = true
	}

	return &models.Template{
		FileName: name,
		FilePath: path,
		Content:  content,
		Meta:     meta,
	}, nil
}

// readSidecar loads <path>.meta.yaml when it exists.
func readSidecar(path string) (models.TemplateMeta, bool, error) {
	var meta models.TemplateMeta

	raw, err := os.ReadFile(path + sidecarSuffix)
	if os.IsNotExist(err) {
		return meta, false, nil
	}
	if err != nil {
		return meta, false, fmt.Errorf("failed to read template metadata: %w", err)
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, false, fmt.Errorf("failed to parse template metadata: %w", err)
	}
	return meta, true, nil
}

// starterTemplates seed a fresh library so the tool is usable immediately
// after --init.
var starterTemplates = map[string]string{
	"Job_Offer.md": `---
description: Offer letter follow-up email
---
Subject: Your offer from {Company_Name}

Dear {Candidate_Name},

We are delighted to offer you the position of {Role}.
Please find the details attached, and feel free to reach out with any questions.

Best regards,
{Your_Name}
`,
	"Online_Interview.md": `---
description: Interview invitation with calendar meeting
calendar: true
---
Subject: Interview invitation - {Role}

Dear {Candidate_Name},

Thank you for applying for the {Role} position.
We would like to invite you to an online interview.

Best regards,
{Your_Name}
`,
}
