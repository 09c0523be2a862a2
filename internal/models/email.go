package models

import (
	"fmt"
	"time"
)

// Platform identifies where an online meeting is hosted.
type Platform string

const (
	PlatformTeams      Platform = "Microsoft Teams"
	PlatformZoom       Platform = "Zoom"
	PlatformGoogleMeet Platform = "Google Meet"
	PlatformOther      Platform = "Other"
)

// Platforms lists the selectable meeting platforms in display order.
var Platforms = []Platform{PlatformTeams, PlatformZoom, PlatformGoogleMeet, PlatformOther}

// Durations lists the selectable meeting lengths in minutes.
var Durations = []int{30, 45, 60, 90, 120}

// DefaultDuration is the preselected meeting length in minutes.
const DefaultDuration = 60

// MeetingDetails describes the meeting attached to a calendar-capable
// template. Start carries both the date and the local start time.
type MeetingDetails struct {
	Start    time.Time `json:"start"`
	Duration int       `json:"duration"` // minutes
	Platform Platform  `json:"platform"`
	Link     string    `json:"link"`
	Attendee string    `json:"attendee"`
}

// DefaultMeetingDetails returns the form defaults: one week out, 10:00
// local time, an hour on Teams.
func DefaultMeetingDetails() MeetingDetails {
	day := time.Now().AddDate(0, 0, 7)
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.Local)
	return MeetingDetails{
		Start:    start,
		Duration: DefaultDuration,
		Platform: PlatformTeams,
	}
}

// End derives the meeting end time from the start and duration.
func (m MeetingDetails) End() time.Time {
	return m.Start.Add(time.Duration(m.Duration) * time.Minute)
}

// Ready reports whether enough detail is present to generate a calendar
// invitation: a start time and an attendee. Absence is not an error; the
// calendar action is simply not offered.
func (m MeetingDetails) Ready() bool {
	return !m.Start.IsZero() && m.Duration > 0 && m.Attendee != ""
}

// Location returns the meeting location for the invitation: the meeting
// link when set, otherwise the platform name.
func (m MeetingDetails) Location() string {
	if m.Link != "" {
		return m.Link
	}
	return string(m.Platform)
}

// Block formats the details as the fixed text block appended to the email
// body when a meeting link has been provided.
func (m MeetingDetails) Block() string {
	return fmt.Sprintf("\n\n📅 Interview Details:\nDate: %s\nTime: %s - %s\nPlatform: %s\nMeeting Link: %s",
		m.Start.Format("January 02, 2006"),
		m.Start.Format("03:04 PM"),
		m.End().Format("03:04 PM"),
		m.Platform,
		m.Link)
}

// Recipients holds the optional recipient fields for a mail compose link.
type Recipients struct {
	To  string `json:"to,omitempty"`
	CC  string `json:"cc,omitempty"`
	BCC string `json:"bcc,omitempty"`
}

// RenderedEmail is the final subject and body after placeholder substitution
// and, for calendar templates with a meeting link, the appended meeting
// block. Derived on every interaction, never stored.
type RenderedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
