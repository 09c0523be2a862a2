// Package ui is the interactive form host: a bubbletea program that walks
// the user from template selection through field entry to the generated
// compose links. All state lives in the model; the pipeline itself is
// recomputed from the current field snapshot on every interaction.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfaraji/templink/internal/browser"
	"github.com/mfaraji/templink/internal/clipboard"
	"github.com/mfaraji/templink/internal/models"
	"github.com/mfaraji/templink/internal/service"
)

// ViewMode identifies the current screen.
type ViewMode int

const (
	pickerView ViewMode = iota
	composeView
	errorView
)

// KeyMap defines the key bindings for the compose view.
type KeyMap struct {
	CopyMail     key.Binding
	CopyCalendar key.Binding
	OpenMail     key.Binding
	Back         key.Binding
	Quit         key.Binding
}

var keys = KeyMap{
	CopyMail: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "copy mail link"),
	),
	CopyCalendar: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "copy calendar link"),
	),
	OpenMail: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "open in browser"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Model is the top-level bubbletea model.
type Model struct {
	service *service.Service

	mode ViewMode
	list list.Model
	form *ComposeForm

	selected *models.Template
	parsed   models.ParsedTemplate

	// Derived on every interaction from the current field snapshot.
	email        models.RenderedEmail
	mailLink     string
	calendarLink string
	calendarErr  error

	loadErr   error
	statusMsg string

	width  int
	height int
}

// NewModel creates the TUI model, loading the template list up front.
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	templates, err := svc.ListTemplates()
	if err != nil {
		return nil, err
	}

	items := make([]list.Item, len(templates))
	for i, tpl := range templates {
		items[i] = *tpl
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = "Email Templates"
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)

	return &Model{
		service: svc,
		mode:    pickerView,
		list:    l,
	}, nil
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

type clearStatusMsg struct{}

// clearStatusCmd clears the status line after a short delay.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case pickerView:
			return m.updatePicker(msg)
		case composeView:
			return m.updateCompose(msg)
		case errorView:
			m.mode = pickerView
			m.loadErr = nil
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(models.Template); ok {
				return m.selectTemplate(item.FileName)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selectTemplate reloads the chosen template from disk and opens the
// compose form. A load failure shows a message for that selection instead
// of a partial preview.
func (m Model) selectTemplate(fileName string) (tea.Model, tea.Cmd) {
	tpl, err := m.service.GetTemplate(fileName)
	if err != nil {
		m.loadErr = err
		m.mode = errorView
		return m, nil
	}

	m.selected = tpl
	m.parsed = m.service.Parse(tpl)
	m.form = NewComposeForm(m.parsed.Placeholders, tpl.Meta.Calendar)
	m.mode = composeView
	m.refresh()
	return m, nil
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.mode = pickerView
		m.statusMsg = ""
		return m, nil

	case key.Matches(msg, keys.CopyMail):
		return m.copyLink(m.mailLink, "Mail link copied to clipboard!")

	case key.Matches(msg, keys.CopyCalendar):
		if m.calendarLink == "" {
			m.statusMsg = "Calendar link unavailable: fill in meeting details and candidate email"
			if m.calendarErr != nil {
				m.statusMsg = "Calendar link unavailable: " + m.calendarErr.Error()
			}
			return m, clearStatusCmd()
		}
		return m.copyLink(m.calendarLink, "Calendar link copied to clipboard!")

	case key.Matches(msg, keys.OpenMail):
		if err := browser.Open(m.mailLink); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "Opening mail compose in browser..."
		}
		return m, clearStatusCmd()
	}

	cmd := m.form.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) copyLink(link, success string) (tea.Model, tea.Cmd) {
	if err := clipboard.Copy(link); err != nil {
		m.statusMsg = err.Error()
	} else {
		m.statusMsg = success
	}
	return m, clearStatusCmd()
}

// refresh recomputes the rendered email and both deep links from the
// current form snapshot.
func (m *Model) refresh() {
	values := m.form.Values()
	meeting := m.form.Meeting()

	m.email = m.service.Render(m.selected, values, meeting)
	m.mailLink = m.service.MailLink(m.email, m.form.Recipients())

	m.calendarLink, m.calendarErr = "", nil
	if meeting != nil {
		m.calendarLink, m.calendarErr = m.service.CalendarLink(m.selected, m.email, *meeting, "")
	}
}

// View satisfies tea.Model.
func (m Model) View() string {
	switch m.mode {
	case composeView:
		return m.renderComposeView()
	case errorView:
		return m.renderErrorView()
	default:
		return m.renderPickerView()
	}
}

func (m Model) renderPickerView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("templink"))
	b.WriteString(StyleMuted.Render("  Outlook deep links from email templates"))
	b.WriteString("\n\n")
	b.WriteString(m.list.View())
	return b.String()
}

func (m Model) renderComposeView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.selected.DisplayName()))
	if m.selected.Meta.Calendar {
		b.WriteString(StyleMuted.Render("  (with calendar invitation)"))
	}
	b.WriteString("\n\n")

	if len(m.parsed.Placeholders) == 0 {
		b.WriteString(StyleMuted.Render("This template has no placeholders."))
		b.WriteString("\n")
	}
	b.WriteString(m.form.View())
	b.WriteString("\n")

	b.WriteString(m.renderPreview())
	b.WriteString("\n")

	actions := []string{
		keys.CopyMail.Help().Key + " " + keys.CopyMail.Help().Desc,
		keys.OpenMail.Help().Key + " " + keys.OpenMail.Help().Desc,
	}
	if m.selected.Meta.Calendar {
		calendarHelp := keys.CopyCalendar.Help().Key + " " + keys.CopyCalendar.Help().Desc
		if m.calendarLink == "" {
			calendarHelp = StyleDisabled.Render(calendarHelp + " (needs meeting details)")
		}
		actions = append(actions, calendarHelp)
	}
	actions = append(actions, keys.Back.Help().Key+" "+keys.Back.Help().Desc)
	b.WriteString(StyleHelp.Render(strings.Join(actions, " • ")))

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(StyleStatus.Render(m.statusMsg))
	}
	return b.String()
}

// renderPreview shows exactly the subject and body that the links will
// carry, truncated to fit the window.
func (m Model) renderPreview() string {
	subject := m.email.Subject
	if subject == "" {
		subject = StyleMuted.Render("(no subject)")
	}

	body := m.email.Body
	maxLines := m.height - len(m.form.fields) - 12
	if maxLines < 4 {
		maxLines = 4
	}
	lines := strings.Split(body, "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], "…")
	}
	body = strings.Join(lines, "\n")

	content := StyleSubtitle.Render("Subject: ") + subject + "\n\n" + body
	width := m.width - 4
	if width < 20 {
		width = 76
	}
	return StylePreview.Width(width).Render(content)
}

func (m Model) renderErrorView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("templink"))
	b.WriteString("\n\n")
	b.WriteString(StyleError.Render("Error reading template"))
	b.WriteString("\n\n")
	if m.loadErr != nil {
		b.WriteString(fmt.Sprintf("%v\n\n", m.loadErr))
	}
	b.WriteString(StyleHelp.Render("press any key to return to the template list"))
	return b.String()
}
