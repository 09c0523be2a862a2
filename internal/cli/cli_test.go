package cli

import (
	"testing"
	"time"

	"github.com/mfaraji/templink/internal/models"
)

func TestParseOptions(t *testing.T) {
	positional, opts, err := parseOptions([]string{
		"Job_Offer.md",
		"--var", "Name=Ada",
		"--var", "Role=Senior Engineer",
		"--to", "ada@example.com",
		"--format", "json",
		"--copy",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(positional) != 1 || positional[0] != "Job_Offer.md" {
		t.Errorf("positional = %v", positional)
	}
	if opts.vars["Name"] != "Ada" || opts.vars["Role"] != "Senior Engineer" {
		t.Errorf("vars = %v", opts.vars)
	}
	if opts.to != "ada@example.com" || opts.format != "json" || !opts.copy {
		t.Errorf("opts = %+v", opts)
	}
}

func TestParseOptionsInterleaved(t *testing.T) {
	positional, opts, err := parseOptions([]string{
		"--date", "2026-09-01", "Online_Interview.md", "--start", "14:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(positional) != 1 || positional[0] != "Online_Interview.md" {
		t.Errorf("positional = %v", positional)
	}
	if opts.date != "2026-09-01" || opts.start != "14:00" {
		t.Errorf("opts = %+v", opts)
	}
}

func TestParseOptionsValueInVar(t *testing.T) {
	// Only the first = separates name from value.
	_, opts, err := parseOptions([]string{"--var", "Link=https://x.com/?a=b"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.vars["Link"] != "https://x.com/?a=b" {
		t.Errorf("vars = %v", opts.vars)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing value", []string{"--to"}},
		{"bad var", []string{"--var", "noequals"}},
		{"bad duration", []string{"--duration", "soon"}},
		{"unknown flag", []string{"--frobnicate", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseOptions(tt.args); err == nil {
				t.Errorf("parseOptions(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestParseOptionsDefaults(t *testing.T) {
	_, opts, err := parseOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.format != "text" {
		t.Errorf("format = %q", opts.format)
	}
	if opts.duration != models.DefaultDuration {
		t.Errorf("duration = %d", opts.duration)
	}
	if opts.platform != string(models.PlatformTeams) {
		t.Errorf("platform = %q", opts.platform)
	}
}

func TestMeetingDetails(t *testing.T) {
	opts := &options{
		date:     "2026-09-01",
		start:    "14:30",
		duration: 45,
		platform: "Zoom",
		meeting:  "https://zoom.us/j/123",
		attendee: "ada@example.com",
	}

	meeting, err := opts.meetingDetails()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 9, 1, 14, 30, 0, 0, time.Local)
	if !meeting.Start.Equal(want) {
		t.Errorf("start = %v, want %v", meeting.Start, want)
	}
	if meeting.Duration != 45 || meeting.Platform != models.PlatformZoom {
		t.Errorf("meeting = %+v", meeting)
	}
	if !meeting.Ready() {
		t.Error("fully specified meeting must be ready")
	}
}

func TestMeetingDetailsDefaults(t *testing.T) {
	opts := &options{duration: models.DefaultDuration, platform: string(models.PlatformTeams)}

	meeting, err := opts.meetingDetails()
	if err != nil {
		t.Fatal(err)
	}
	wantDay := time.Now().AddDate(0, 0, 7)
	if meeting.Start.YearDay() != wantDay.YearDay() {
		t.Errorf("default date = %v, want one week out", meeting.Start)
	}
	if meeting.Start.Hour() != 10 || meeting.Start.Minute() != 0 {
		t.Errorf("default time = %v, want 10:00", meeting.Start)
	}
}

func TestMeetingDetailsBadInput(t *testing.T) {
	if _, err := (&options{date: "tomorrow"}).meetingDetails(); err == nil {
		t.Error("bad date must error")
	}
	if _, err := (&options{start: "2pm"}).meetingDetails(); err == nil {
		t.Error("bad start time must error")
	}
}
