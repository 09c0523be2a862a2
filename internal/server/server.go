// Package server exposes the template-to-link pipeline over HTTP as a small
// JSON API, so shortcuts and scripts can generate compose links without the
// terminal UI.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/mfaraji/templink/internal/errors"
	"github.com/mfaraji/templink/internal/models"
	"github.com/mfaraji/templink/internal/service"
)

// URLServer provides HTTP endpoints for link generation.
type URLServer struct {
	service *service.Service
	port    int
}

// NewURLServer creates a new URL server instance.
func NewURLServer(svc *service.Service, port int) *URLServer {
	return &URLServer{service: svc, port: port}
}

// Start begins serving HTTP requests.
func (s *URLServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.route)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/help", s.handleHelp)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("URL server starting on http://localhost%s", addr)
	log.Printf("API endpoints available:")
	log.Printf("  GET  http://localhost%s/templates - list templates", addr)
	log.Printf("  GET  http://localhost%s/templates/{name} - parsed template", addr)
	log.Printf("  POST http://localhost%s/render - render with values", addr)
	log.Printf("  POST http://localhost%s/link/mail - mail compose link", addr)
	log.Printf("  POST http://localhost%s/link/calendar - calendar compose link", addr)
	log.Printf("  GET  http://localhost%s/help - API documentation", addr)

	return http.ListenAndServe(addr, mux)
}

// route dispatches requests by path prefix.
func (s *URLServer) route(w http.ResponseWriter, r *http.Request) {
	// Allow cross-origin requests so browser shortcuts can call the API.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.SplitN(path, "/", 2)

	switch parts[0] {
	case "templates":
		if len(parts) == 2 && parts[1] != "" {
			s.handleGetTemplate(w, r, parts[1])
			return
		}
		s.handleListTemplates(w, r)
	case "render":
		s.handleRender(w, r)
	case "link":
		if len(parts) != 2 {
			s.writeError(w, apperrors.NotFoundError("endpoint", r.URL.Path))
			return
		}
		switch parts[1] {
		case "mail":
			s.handleMailLink(w, r)
		case "calendar":
			s.handleCalendarLink(w, r)
		default:
			s.writeError(w, apperrors.NotFoundError("endpoint", r.URL.Path))
		}
	default:
		s.writeError(w, apperrors.NotFoundError("endpoint", r.URL.Path))
	}
}

func (s *URLServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "templink-url-server",
	})
}

func (s *URLServer) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, apperrors.ValidationError("templates only supports GET", ""))
		return
	}

	templates, err := s.service.ListTemplates()
	if err != nil {
		s.writeError(w, err)
		return
	}

	type entry struct {
		File     string `json:"file"`
		Name     string `json:"name"`
		Calendar bool   `json:"calendar"`
	}
	entries := make([]entry, 0, len(templates))
	for _, tpl := range templates {
		entries = append(entries, entry{tpl.FileName, tpl.DisplayName(), tpl.Meta.Calendar})
	}
	s.writeSuccess(w, entries)
}

func (s *URLServer) handleGetTemplate(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		s.writeError(w, apperrors.ValidationError("templates only supports GET", ""))
		return
	}

	tpl, err := s.service.GetTemplate(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeSuccess(w, map[string]any{
		"file":     tpl.FileName,
		"name":     tpl.DisplayName(),
		"calendar": tpl.Meta.Calendar,
		"parsed":   s.service.Parse(tpl),
	})
}

// meetingRequest mirrors models.MeetingDetails with wire-friendly fields.
type meetingRequest struct {
	Date     string `json:"date"`     // YYYY-MM-DD
	Start    string `json:"start"`    // HH:MM
	Duration int    `json:"duration"` // minutes
	Platform string `json:"platform"`
	Link     string `json:"link"`
	Attendee string `json:"attendee"`
}

// toDetails converts the wire form to MeetingDetails, applying the standard
// defaults for omitted fields.
func (m *meetingRequest) toDetails() (models.MeetingDetails, error) {
	meeting := models.DefaultMeetingDetails()
	if m == nil {
		return meeting, nil
	}
	if m.Duration != 0 {
		meeting.Duration = m.Duration
	}
	if m.Platform != "" {
		meeting.Platform = models.Platform(m.Platform)
	}
	meeting.Link = m.Link
	meeting.Attendee = m.Attendee

	day := meeting.Start
	if m.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", m.Date, time.Local)
		if err != nil {
			return meeting, apperrors.ValidationError(
				fmt.Sprintf("invalid meeting date %q", m.Date), "expected YYYY-MM-DD")
		}
		day = parsed
	}
	clock := "10:00"
	if m.Start != "" {
		clock = m.Start
	}
	t, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return meeting, apperrors.ValidationError(
			fmt.Sprintf("invalid meeting start %q", m.Start), "expected HH:MM")
	}
	meeting.Start = time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, time.Local)
	return meeting, nil
}

// linkRequest is the body for /render and /link endpoints.
type linkRequest struct {
	Template string            `json:"template"`
	Values   map[string]string `json:"values"`
	To       string            `json:"to"`
	CC       string            `json:"cc"`
	BCC      string            `json:"bcc"`
	Meeting  *meetingRequest   `json:"meeting"`
	Location string            `json:"location"`
}

func (s *URLServer) decodeRequest(w http.ResponseWriter, r *http.Request) (*linkRequest, bool) {
	if r.Method != http.MethodPost {
		s.writeError(w, apperrors.ValidationError("endpoint only supports POST", ""))
		return nil, false
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.ValidationError("invalid JSON body", err.Error()))
		return nil, false
	}
	if req.Template == "" {
		s.writeError(w, apperrors.ValidationError("template is required", ""))
		return nil, false
	}
	return &req, true
}

// render runs the shared part of the POST endpoints: load the template,
// resolve meeting details, substitute values.
func (s *URLServer) render(w http.ResponseWriter, req *linkRequest) (*models.Template, models.RenderedEmail, models.MeetingDetails, bool) {
	tpl, err := s.service.GetTemplate(req.Template)
	if err != nil {
		s.writeError(w, err)
		return nil, models.RenderedEmail{}, models.MeetingDetails{}, false
	}

	meeting, err := req.Meeting.toDetails()
	if err != nil {
		s.writeError(w, err)
		return nil, models.RenderedEmail{}, models.MeetingDetails{}, false
	}

	var meetingPtr *models.MeetingDetails
	if tpl.Meta.Calendar && req.Meeting != nil {
		meetingPtr = &meeting
	}
	email := s.service.Render(tpl, req.Values, meetingPtr)
	return tpl, email, meeting, true
}

func (s *URLServer) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	_, email, _, ok := s.render(w, req)
	if !ok {
		return
	}
	s.writeSuccess(w, email)
}

func (s *URLServer) handleMailLink(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	_, email, _, ok := s.render(w, req)
	if !ok {
		return
	}

	link := s.service.MailLink(email, models.Recipients{To: req.To, CC: req.CC, BCC: req.BCC})
	s.writeSuccess(w, map[string]string{"link": link})
}

func (s *URLServer) handleCalendarLink(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	tpl, email, meeting, ok := s.render(w, req)
	if !ok {
		return
	}

	link, err := s.service.CalendarLink(tpl, email, meeting, req.Location)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSuccess(w, map[string]string{"link": link})
}

// response is the JSON envelope for all API replies.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (s *URLServer) writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response{Success: true, Data: data})
}

func (s *URLServer) writeError(w http.ResponseWriter, err error) {
	resp := response{Success: false, Error: err.Error()}
	if appErr, ok := apperrors.GetAppError(err); ok {
		resp.Code = string(appErr.Code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.HTTPStatus(err))
	json.NewEncoder(w).Encode(resp)
}

func (s *URLServer) handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, `templink URL server

GET  /health                 health check
GET  /templates              list templates (file, name, calendar capability)
GET  /templates/{name}       one template with its parsed subject, body and
                             placeholder names
POST /render                 {"template": "...", "values": {"Name": "..."},
                             "meeting": {...}} -> rendered subject and body
POST /link/mail              render request plus "to"/"cc"/"bcc" ->
                             {"link": mail compose deep link}
POST /link/calendar          render request plus "meeting" and optional
                             "location" -> {"link": calendar compose deep link}

Meeting object: {"date": "YYYY-MM-DD", "start": "HH:MM", "duration": 60,
"platform": "Microsoft Teams", "link": "https://...", "attendee": "a@b.com"}.
Omitted meeting fields default to one week out, 10:00, 60 minutes, Teams.
`)
}
