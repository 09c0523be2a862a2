// Package docreader is the document loader for the template pipeline: given
// a file path it returns the document's text as ordered non-empty paragraphs
// joined by newlines, plus any metadata declared inside the document.
package docreader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	docx "github.com/fumiama/go-docx"
	"gopkg.in/yaml.v3"

	"github.com/mfaraji/templink/internal/models"
)

// Extensions lists the template file extensions the loader understands.
var Extensions = []string{".docx", ".md", ".txt"}

// Supported reports whether the loader can read files with the given name.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Read loads a template document. Word documents carry no inline metadata;
// text templates may start with a YAML frontmatter block which is stripped
// from the returned content. A corrupt or missing file yields an error, not
// a crash.
func Read(path string) (string, models.TemplateMeta, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		content, err := readDocx(path)
		return content, models.TemplateMeta{}, err
	case ".md", ".txt":
		return readText(path)
	default:
		return "", models.TemplateMeta{}, fmt.Errorf("unsupported template format %q", filepath.Ext(path))
	}
}

// readDocx extracts paragraph text from a Word document, skipping empty
// paragraphs and anything that is not a paragraph (tables, images).
func readDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat document: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := p.String()
		if strings.TrimSpace(text) == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// readText loads a plain-text or markdown template, parsing and stripping an
// optional YAML frontmatter block delimited by "---" lines.
func readText(path string) (string, models.TemplateMeta, error) {
	var meta models.TemplateMeta

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", meta, fmt.Errorf("failed to read template: %w", err)
	}

	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if rest, ok := strings.CutPrefix(content, "---\n"); ok {
		front, body, ok := strings.Cut(rest, "\n---")
		if ok {
			if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
				return "", models.TemplateMeta{}, fmt.Errorf("failed to parse template metadata: %w", err)
			}
			content = strings.TrimPrefix(body, "\n")
		}
	}
	return content, meta, nil
}
