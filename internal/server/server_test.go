package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfaraji/templink/internal/service"
)

func newTestServer(t *testing.T) *URLServer {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"Job_Offer.md": "Subject: Offer for {Role}\nDear {Name},\nWelcome.",
		"Online_Interview.md": `---
calendar: true
---
Subject: Interview - {Role}

Dear {Name},
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	svc, err := service.NewService(dir)
	if err != nil {
		t.Fatal(err)
	}
	return NewURLServer(svc, 0)
}

func doRequest(t *testing.T, s *URLServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	s.route(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestListTemplates(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/templates", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	entries, ok := resp.Data.([]any)
	if !ok || len(entries) != 2 {
		t.Fatalf("data = %v", resp.Data)
	}
}

func TestGetTemplate(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/templates/Job_Offer.md", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	if data["file"] != "Job_Offer.md" {
		t.Errorf("file = %v", data["file"])
	}
	parsed := data["parsed"].(map[string]any)
	if parsed["subject"] != "Offer for {Role}" {
		t.Errorf("subject = %v", parsed["subject"])
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/templates/Missing.md", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Success || resp.Code != "NOT_FOUND" {
		t.Errorf("response = %+v", resp)
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/render",
		`{"template": "Job_Offer.md", "values": {"Role": "Engineer", "Name": "Ada"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	if data["subject"] != "Offer for Engineer" {
		t.Errorf("subject = %v", data["subject"])
	}
	if data["body"] != "Dear Ada,\nWelcome." {
		t.Errorf("body = %v", data["body"])
	}
}

func TestRenderRequiresTemplate(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/render", `{"values": {}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestRenderRejectsGet(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/render", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestMailLink(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/link/mail",
		`{"template": "Job_Offer.md", "values": {"Role": "Engineer", "Name": "Ada"}, "to": "ada@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	link := resp.Data.(map[string]any)["link"].(string)
	if !strings.HasPrefix(link, "https://outlook.office.com/mail/deeplink/compose?subject=Offer%20for%20Engineer") {
		t.Errorf("link = %q", link)
	}
	if !strings.Contains(link, "&to=ada%40example.com") {
		t.Errorf("link = %q", link)
	}
}

func TestCalendarLink(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/link/calendar",
		`{"template": "Online_Interview.md", "values": {"Role": "Engineer"},
		  "meeting": {"date": "2026-09-01", "start": "14:00", "duration": 45,
		              "link": "https://teams.microsoft.com/l/x", "attendee": "ada@example.com"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	link := resp.Data.(map[string]any)["link"].(string)
	if !strings.Contains(link, "startdt=2026-09-01T14%3A00%3A00") {
		t.Errorf("link = %q", link)
	}
	if !strings.Contains(link, "enddt=2026-09-01T14%3A45%3A00") {
		t.Errorf("link = %q", link)
	}
}

func TestCalendarLinkRejectsPlainTemplate(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/link/calendar",
		`{"template": "Job_Offer.md", "meeting": {"attendee": "a@b.com"}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/nope", "/link/fax", "/link"} {
		w := doRequest(t, s, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodOptions, "/templates", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
}
