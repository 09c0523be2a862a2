// Package service is the orchestration layer shared by the TUI, CLI and
// HTTP surfaces: it loads templates, parses them, substitutes field values
// and produces the compose deep links. Every operation is a pure function
// of its inputs; the service holds only the storage handle.
package service

import (
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	apperrors "github.com/mfaraji/templink/internal/errors"
	"github.com/mfaraji/templink/internal/models"
	"github.com/mfaraji/templink/internal/outlook"
	"github.com/mfaraji/templink/internal/storage"
	"github.com/mfaraji/templink/internal/template"
)

// Service exposes the template-to-link pipeline over a template library.
type Service struct {
	storage *storage.Storage
}

// NewService creates a service over the template directory; an empty dir
// uses the default library location.
func NewService(templateDir string) (*Service, error) {
	store, err := storage.NewStorage(templateDir)
	if err != nil {
		return nil, apperrors.StorageError("failed to initialize template storage", err)
	}
	return &Service{storage: store}, nil
}

// InitLibrary creates the template directory with starter templates.
func (s *Service) InitLibrary() error {
	if err := s.storage.InitLibrary(); err != nil {
		return apperrors.StorageError("failed to initialize template library", err)
	}
	return nil
}

// TemplateDir returns the template library path.
func (s *Service) TemplateDir() string {
	return s.storage.TemplateDir()
}

// ListTemplates returns every readable template in the library.
func (s *Service) ListTemplates() ([]*models.Template, error) {
	templates, err := s.storage.ListTemplates()
	if err != nil {
		return nil, apperrors.StorageError("failed to list templates", err)
	}
	return templates, nil
}

// GetTemplate loads a template by file name. The extension may be omitted;
// the display name is accepted too.
func (s *Service) GetTemplate(name string) (*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	for _, tpl := range templates {
		if tpl.FileName == name || tpl.DisplayName() == name {
			return tpl, nil
		}
		if strings.TrimSuffix(tpl.FileName, filepath.Ext(tpl.FileName)) == name {
			return tpl, nil
		}
	}
	return nil, apperrors.NotFoundError("template", name)
}

// SearchTemplates fuzzy-matches the query against template display names.
// An empty query returns all templates.
func (s *Service) SearchTemplates(query string) ([]*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return templates, nil
	}

	names := make([]string, len(templates))
	for i, tpl := range templates {
		names[i] = tpl.DisplayName()
	}

	var matched []*models.Template
	for _, m := range fuzzy.Find(query, names) {
		matched = append(matched, templates[m.Index])
	}
	return matched, nil
}

// Parse returns the derived form of a template: subject, body and the
// ordered placeholder set.
func (s *Service) Parse(tpl *models.Template) models.ParsedTemplate {
	return template.ParseTemplate(tpl)
}

// Render substitutes values into the template's subject and body. For a
// calendar-capable template with a meeting link set, the meeting details
// block is appended to the body so the email and the invitation agree.
func (s *Service) Render(tpl *models.Template, values map[string]string, meeting *models.MeetingDetails) models.RenderedEmail {
	parsed := template.ParseTemplate(tpl)

	email := models.RenderedEmail{
		Subject: template.Substitute(parsed.Subject, values),
		Body:    template.Substitute(parsed.Body, values),
	}
	if tpl.Meta.Calendar && meeting != nil && meeting.Link != "" {
		email.Body += meeting.Block()
	}
	return email
}

// MailLink builds the mail-compose deep link for a rendered email.
func (s *Service) MailLink(email models.RenderedEmail, rcpt models.Recipients) string {
	return outlook.BuildMailLink(email.Subject, email.Body, rcpt.To, rcpt.CC, rcpt.BCC)
}

// CalendarLink builds the calendar-compose deep link. It requires the
// template to declare the calendar capability and the meeting to carry a
// start time and attendee; otherwise the action is unavailable. An empty
// location falls back to the meeting link, then the platform name.
func (s *Service) CalendarLink(tpl *models.Template, email models.RenderedEmail, meeting models.MeetingDetails, location string) (string, error) {
	if !tpl.Meta.Calendar {
		return "", apperrors.ValidationError(
			"template does not support calendar invitations",
			"declare calendar: true in the template metadata to enable them")
	}
	if !meeting.Ready() {
		return "", apperrors.ValidationError(
			"meeting details are incomplete",
			"a start time, duration and attendee email are required")
	}
	if location == "" {
		location = meeting.Location()
	}
	return outlook.BuildCalendarLink(email.Subject, email.Body, meeting.Attendee,
		meeting.Start, meeting.End(), location), nil
}
