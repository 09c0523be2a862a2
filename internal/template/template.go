// Package template implements the text side of the template-to-link
// pipeline: splitting raw document text into subject and body, finding
// {Name} placeholders, and substituting user-supplied values.
package template

import (
	"regexp"
	"strings"

	"github.com/mfaraji/templink/internal/models"
)

const subjectMarker = "subject:"

// placeholderPattern matches a {Name} token. Names must not contain braces,
// so nested or unbalanced braces never form a token.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Parse splits raw template text into a subject and a body. The first line
// whose trimmed, case-folded form starts with "subject:" supplies the
// subject (text after the first colon, trimmed) and is excluded from the
// body; every other line keeps its original order. A missing marker is not
// an error: the subject is empty and the whole input becomes the body.
func Parse(raw string) (subject, body string) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	found := false
	bodyLines := make([]string, 0, len(lines))
	for _, line := range lines {
		if !found && strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), subjectMarker) {
			_, after, _ := strings.Cut(line, ":")
			subject = strings.TrimSpace(after)
			found = true
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	return subject, body
}

// ParseTemplate parses a loaded template into its derived form: subject,
// body, and the placeholder names found across both.
func ParseTemplate(t *models.Template) models.ParsedTemplate {
	subject, body := Parse(t.Content)
	return models.ParsedTemplate{
		Subject:      subject,
		Body:         body,
		Placeholders: ExtractPlaceholders(t.Content),
	}
}

// ExtractPlaceholders returns the distinct placeholder names in text, in
// first-occurrence order. Names are exact: case-sensitive and with inner
// whitespace preserved. No matches yields an empty result, not an error.
func ExtractPlaceholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if name := m[1]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Substitute replaces every {name} token that has a mapping in values.
// The text is scanned once, left to right, so substituted values are never
// re-scanned for further tokens. Names missing from values stay in the text
// verbatim; values without a matching token are ignored.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(text, "{") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			b.WriteString(text)
			break
		}
		end := strings.IndexByte(text[open+1:], '}')
		if end < 0 {
			b.WriteString(text)
			break
		}
		end += open + 1

		name := text[open+1 : end]
		if inner := strings.LastIndexByte(name, '{'); inner >= 0 {
			// Unbalanced opening braces; the token, if any, starts at the
			// innermost one.
			b.WriteString(text[:open+1+inner])
			text = text[open+1+inner:]
			continue
		}

		b.WriteString(text[:open])
		if value, ok := values[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(text[open : end+1])
		}
		text = text[end+1:]
	}
	return b.String()
}
