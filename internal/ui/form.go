package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfaraji/templink/internal/models"
)

// fieldKind tells the form what a field's value feeds into.
type fieldKind int

const (
	fieldPlaceholder fieldKind = iota
	fieldTo
	fieldCC
	fieldBCC
	fieldDate
	fieldStart
	fieldDuration
	fieldPlatform
	fieldMeetingLink
	fieldAttendee
)

// field is one entry in the compose form: either a free-text input or a
// fixed choice cycled with the left/right keys.
type field struct {
	kind     fieldKind
	name     string // placeholder name, for fieldPlaceholder
	label    string
	input    textinput.Model
	choices  []string // non-empty marks a choice field
	selected int
}

func (f *field) isChoice() bool {
	return len(f.choices) > 0
}

// ComposeForm collects placeholder values, recipients and, for
// calendar-capable templates, the meeting details. The field sequence is
// built from the template's placeholder list in first-occurrence order, so
// the layout is stable across render cycles.
type ComposeForm struct {
	fields   []field
	focused  int
	calendar bool
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = width
	return in
}

// NewComposeForm builds the form for a template's placeholders. calendar
// adds the meeting detail fields with their defaults: one week out, 10:00,
// an hour on Teams.
func NewComposeForm(placeholders []string, calendar bool) *ComposeForm {
	f := &ComposeForm{calendar: calendar}

	for _, name := range placeholders {
		f.fields = append(f.fields, field{
			kind:  fieldPlaceholder,
			name:  name,
			label: strings.ReplaceAll(name, "_", " "),
			input: newInput("Enter "+strings.ToLower(strings.ReplaceAll(name, "_", " ")), 40),
		})
	}

	f.fields = append(f.fields,
		field{kind: fieldTo, label: "To", input: newInput("recipient@example.com", 40)},
		field{kind: fieldCC, label: "CC", input: newInput("cc@example.com", 40)},
		field{kind: fieldBCC, label: "BCC", input: newInput("bcc@example.com", 40)},
	)

	if calendar {
		defaults := models.DefaultMeetingDetails()

		dateInput := newInput("YYYY-MM-DD", 20)
		dateInput.SetValue(defaults.Start.Format("2006-01-02"))
		startInput := newInput("HH:MM", 20)
		startInput.SetValue(defaults.Start.Format("15:04"))

		durations := make([]string, len(models.Durations))
		defaultDuration := 0
		for i, minutes := range models.Durations {
			durations[i] = fmt.Sprintf("%d minutes", minutes)
			if minutes == defaults.Duration {
				defaultDuration = i
			}
		}
		platforms := make([]string, len(models.Platforms))
		for i, p := range models.Platforms {
			platforms[i] = string(p)
		}

		f.fields = append(f.fields,
			field{kind: fieldDate, label: "Interview date", input: dateInput},
			field{kind: fieldStart, label: "Start time", input: startInput},
			field{kind: fieldDuration, label: "Duration", choices: durations, selected: defaultDuration},
			field{kind: fieldPlatform, label: "Platform", choices: platforms},
			field{kind: fieldMeetingLink, label: "Meeting link", input: newInput("https://teams.microsoft.com/l/meetup-join/...", 50)},
			field{kind: fieldAttendee, label: "Candidate email", input: newInput("candidate@example.com", 40)},
		)
	}

	f.fields[0].input.Focus()
	return f
}

// Update handles form navigation and input editing.
func (f *ComposeForm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "tab", "enter", "down":
		f.nextField()
		return nil
	case "shift+tab", "up":
		f.prevField()
		return nil
	case "left", "right":
		if cur := &f.fields[f.focused]; cur.isChoice() {
			if keyMsg.String() == "left" {
				cur.selected = (cur.selected + len(cur.choices) - 1) % len(cur.choices)
			} else {
				cur.selected = (cur.selected + 1) % len(cur.choices)
			}
			return nil
		}
	}

	cur := &f.fields[f.focused]
	if cur.isChoice() {
		return nil
	}
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return cmd
}

func (f *ComposeForm) nextField() {
	f.blur()
	f.focused = (f.focused + 1) % len(f.fields)
	f.focus()
}

func (f *ComposeForm) prevField() {
	f.blur()
	f.focused = (f.focused + len(f.fields) - 1) % len(f.fields)
	f.focus()
}

func (f *ComposeForm) blur() {
	if cur := &f.fields[f.focused]; !cur.isChoice() {
		cur.input.Blur()
	}
}

func (f *ComposeForm) focus() {
	if cur := &f.fields[f.focused]; !cur.isChoice() {
		cur.input.Focus()
	}
}

// Values returns the current placeholder values keyed by placeholder name.
// Empty values are included so the preview shows exactly what the link
// would contain.
func (f *ComposeForm) Values() map[string]string {
	values := make(map[string]string)
	for i := range f.fields {
		if f.fields[i].kind == fieldPlaceholder {
			values[f.fields[i].name] = f.fields[i].input.Value()
		}
	}
	return values
}

// Recipients returns the current to/cc/bcc values.
func (f *ComposeForm) Recipients() models.Recipients {
	var rcpt models.Recipients
	for i := range f.fields {
		value := strings.TrimSpace(f.fields[i].input.Value())
		switch f.fields[i].kind {
		case fieldTo:
			rcpt.To = value
		case fieldCC:
			rcpt.CC = value
		case fieldBCC:
			rcpt.BCC = value
		}
	}
	// The calendar attendee doubles as the default mail recipient.
	if rcpt.To == "" {
		if meeting := f.Meeting(); meeting != nil {
			rcpt.To = meeting.Attendee
		}
	}
	return rcpt
}

// Meeting returns the current meeting details, or nil for templates without
// the calendar capability. An unparseable date or time yields a zero start,
// which keeps the calendar action unavailable rather than erroring.
func (f *ComposeForm) Meeting() *models.MeetingDetails {
	if !f.calendar {
		return nil
	}

	meeting := models.MeetingDetails{Duration: models.DefaultDuration}
	var date, clock string
	for i := range f.fields {
		fld := &f.fields[i]
		switch fld.kind {
		case fieldDate:
			date = strings.TrimSpace(fld.input.Value())
		case fieldStart:
			clock = strings.TrimSpace(fld.input.Value())
		case fieldDuration:
			minutes, _, _ := strings.Cut(fld.choices[fld.selected], " ")
			if n, err := strconv.Atoi(minutes); err == nil {
				meeting.Duration = n
			}
		case fieldPlatform:
			meeting.Platform = models.Platform(fld.choices[fld.selected])
		case fieldMeetingLink:
			meeting.Link = strings.TrimSpace(fld.input.Value())
		case fieldAttendee:
			meeting.Attendee = strings.TrimSpace(fld.input.Value())
		}
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return &meeting
	}
	t, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return &meeting
	}
	meeting.Start = time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, time.Local)
	return &meeting
}

// View renders the form fields with the focused one highlighted.
func (f *ComposeForm) View() string {
	var b strings.Builder
	for i := range f.fields {
		fld := &f.fields[i]

		label := StyleLabel.Render(fld.label + ":")
		if i == f.focused {
			label = StyleFocused.Render(fld.label + ":")
		}

		var value string
		if fld.isChoice() {
			arrows := "   "
			if i == f.focused {
				arrows = " ◀ "
			}
			value = fmt.Sprintf("%s%s%s", arrows, fld.choices[fld.selected], strings.Replace(arrows, "◀", "▶", 1))
		} else {
			value = fld.input.View()
		}

		fmt.Fprintf(&b, "%s %s\n", label, value)
	}
	return b.String()
}
