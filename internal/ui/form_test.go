package ui

import (
	"testing"
	"time"

	"github.com/mfaraji/templink/internal/models"
)

func TestNewComposeFormFields(t *testing.T) {
	f := NewComposeForm([]string{"Candidate_Name", "Role"}, false)

	// Placeholders in order, then To/CC/BCC, no calendar fields.
	if len(f.fields) != 5 {
		t.Fatalf("got %d fields, want 5", len(f.fields))
	}
	if f.fields[0].name != "Candidate_Name" || f.fields[1].name != "Role" {
		t.Errorf("placeholder order: %s, %s", f.fields[0].name, f.fields[1].name)
	}
	if f.fields[0].label != "Candidate Name" {
		t.Errorf("label = %q, underscores must become spaces", f.fields[0].label)
	}
}

func TestNewComposeFormCalendarFields(t *testing.T) {
	f := NewComposeForm([]string{"Role"}, true)

	// 1 placeholder + 3 recipients + 6 meeting fields.
	if len(f.fields) != 10 {
		t.Fatalf("got %d fields, want 10", len(f.fields))
	}

	meeting := f.Meeting()
	if meeting == nil {
		t.Fatal("calendar form must produce meeting details")
	}
	if meeting.Duration != models.DefaultDuration {
		t.Errorf("duration = %d", meeting.Duration)
	}
	if meeting.Platform != models.PlatformTeams {
		t.Errorf("platform = %q", meeting.Platform)
	}
	if meeting.Start.Hour() != 10 {
		t.Errorf("default start hour = %d, want 10", meeting.Start.Hour())
	}
	wantDay := time.Now().AddDate(0, 0, 7)
	if meeting.Start.YearDay() != wantDay.YearDay() {
		t.Errorf("default date = %v, want one week out", meeting.Start)
	}
}

func TestComposeFormValues(t *testing.T) {
	f := NewComposeForm([]string{"Name", "Role"}, false)
	f.fields[0].input.SetValue("Ada")

	values := f.Values()
	if values["Name"] != "Ada" {
		t.Errorf("values = %v", values)
	}
	if _, ok := values["Role"]; !ok {
		t.Error("empty placeholders must still be present in the value map")
	}
}

func TestComposeFormRecipients(t *testing.T) {
	f := NewComposeForm(nil, true)
	for i := range f.fields {
		switch f.fields[i].kind {
		case fieldCC:
			f.fields[i].input.SetValue(" cc@x.com ")
		case fieldAttendee:
			f.fields[i].input.SetValue("cand@x.com")
		}
	}

	rcpt := f.Recipients()
	if rcpt.CC != "cc@x.com" {
		t.Errorf("cc = %q, want trimmed value", rcpt.CC)
	}
	if rcpt.To != "cand@x.com" {
		t.Errorf("to = %q, attendee must fill an empty To", rcpt.To)
	}
}

func TestMeetingNilForPlainTemplates(t *testing.T) {
	f := NewComposeForm([]string{"Name"}, false)
	if f.Meeting() != nil {
		t.Error("non-calendar forms must not produce meeting details")
	}
}

func TestMeetingUnparseableDate(t *testing.T) {
	f := NewComposeForm(nil, true)
	for i := range f.fields {
		if f.fields[i].kind == fieldDate {
			f.fields[i].input.SetValue("next tuesday")
		}
	}

	meeting := f.Meeting()
	if meeting == nil {
		t.Fatal("meeting details expected")
	}
	if !meeting.Start.IsZero() {
		t.Errorf("unparseable date must leave a zero start, got %v", meeting.Start)
	}
	if meeting.Ready() {
		t.Error("meeting with zero start must not be ready")
	}
}
