// Package cli provides the headless command-line interface: listing and
// inspecting templates, rendering them with values, and generating the
// Outlook compose deep links.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mfaraji/templink/internal/browser"
	"github.com/mfaraji/templink/internal/clipboard"
	apperrors "github.com/mfaraji/templink/internal/errors"
	"github.com/mfaraji/templink/internal/models"
	"github.com/mfaraji/templink/internal/service"
)

// CLI dispatches command-line invocations to the service layer.
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance.
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and prints the result.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "list", "ls":
		return c.listTemplates(rest)
	case "show":
		return c.showTemplate(rest)
	case "placeholders":
		return c.listPlaceholders(rest)
	case "render":
		return c.renderTemplate(rest)
	case "link":
		return c.mailLink(rest)
	case "calendar":
		return c.calendarLink(rest)
	case "help":
		return c.printUsage()
	default:
		return apperrors.ValidationError(
			fmt.Sprintf("unknown command: %s", command),
			"run 'templink help' for the command list")
	}
}

// options holds the flags shared across commands. Positional args and
// flag/value pairs may be interleaved in any order.
type options struct {
	format   string
	vars     map[string]string
	to       string
	cc       string
	bcc      string
	date     string
	start    string
	duration int
	platform string
	meeting  string
	attendee string
	location string
	copy     bool
	open     bool
}

func parseOptions(args []string) ([]string, *options, error) {
	opts := &options{
		format:   "text",
		vars:     make(map[string]string),
		duration: models.DefaultDuration,
		platform: string(models.PlatformTeams),
	}

	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}

		switch arg {
		case "--copy":
			opts.copy = true
			continue
		case "--open":
			opts.open = true
			continue
		}

		if i+1 >= len(args) {
			return nil, nil, apperrors.ValidationError(
				fmt.Sprintf("flag %s requires a value", arg), "")
		}
		i++
		value := args[i]

		switch arg {
		case "--format":
			opts.format = value
		case "--var":
			name, val, ok := strings.Cut(value, "=")
			if !ok {
				return nil, nil, apperrors.ValidationError(
					fmt.Sprintf("invalid --var %q", value), "expected name=value")
			}
			opts.vars[name] = val
		case "--to":
			opts.to = value
		case "--cc":
			opts.cc = value
		case "--bcc":
			opts.bcc = value
		case "--date":
			opts.date = value
		case "--start":
			opts.start = value
		case "--duration":
			minutes, err := strconv.Atoi(value)
			if err != nil {
				return nil, nil, apperrors.ValidationError(
					fmt.Sprintf("invalid --duration %q", value), "expected minutes")
			}
			opts.duration = minutes
		case "--platform":
			opts.platform = value
		case "--meeting-link":
			opts.meeting = value
		case "--attendee":
			opts.attendee = value
		case "--location":
			opts.location = value
		default:
			return nil, nil, apperrors.ValidationError(
				fmt.Sprintf("unknown flag: %s", arg), "")
		}
	}
	return positional, opts, nil
}

// meetingDetails builds MeetingDetails from the parsed flags, starting from
// the form defaults.
func (o *options) meetingDetails() (models.MeetingDetails, error) {
	meeting := models.DefaultMeetingDetails()
	meeting.Duration = o.duration
	meeting.Platform = models.Platform(o.platform)
	meeting.Link = o.meeting
	meeting.Attendee = o.attendee

	day := meeting.Start
	if o.date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", o.date, time.Local)
		if err != nil {
			return meeting, apperrors.ValidationError(
				fmt.Sprintf("invalid --date %q", o.date), "expected YYYY-MM-DD")
		}
		day = parsed
	}
	clock := "10:00"
	if o.start != "" {
		clock = o.start
	}
	t, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return meeting, apperrors.ValidationError(
			fmt.Sprintf("invalid --start %q", o.start), "expected HH:MM")
	}
	meeting.Start = time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0, time.Local)
	return meeting, nil
}

func (c *CLI) listTemplates(args []string) error {
	_, opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	templates, err := c.service.ListTemplates()
	if err != nil {
		return err
	}

	if opts.format == "json" {
		type entry struct {
			File     string `json:"file"`
			Name     string `json:"name"`
			Calendar bool   `json:"calendar"`
		}
		entries := make([]entry, 0, len(templates))
		for _, tpl := range templates {
			entries = append(entries, entry{tpl.FileName, tpl.DisplayName(), tpl.Meta.Calendar})
		}
		return printJSON(entries)
	}

	if len(templates) == 0 {
		fmt.Printf("No templates found in %s\n", c.service.TemplateDir())
		fmt.Println("Run 'templink --init' to create starter templates.")
		return nil
	}
	for _, tpl := range templates {
		marker := ""
		if tpl.Meta.Calendar {
			marker = "  [calendar]"
		}
		fmt.Printf("%-30s %s%s\n", tpl.FileName, tpl.DisplayName(), marker)
	}
	return nil
}

func (c *CLI) showTemplate(args []string) error {
	positional, opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return apperrors.ValidationError("show requires a template name", "")
	}

	tpl, err := c.service.GetTemplate(positional[0])
	if err != nil {
		return err
	}
	parsed := c.service.Parse(tpl)

	if opts.format == "json" {
		return printJSON(map[string]any{
			"file":     tpl.FileName,
			"name":     tpl.DisplayName(),
			"calendar": tpl.Meta.Calendar,
			"parsed":   parsed,
		})
	}

	fmt.Printf("Template: %s (%s)\n", tpl.DisplayName(), tpl.FileName)
	if tpl.Meta.Calendar {
		fmt.Println("Capability: calendar invitation")
	}
	fmt.Printf("Subject: %s\n", parsed.Subject)
	if len(parsed.Placeholders) > 0 {
		fmt.Printf("Placeholders: %s\n", strings.Join(parsed.Placeholders, ", "))
	}
	fmt.Printf("\n%s\n", parsed.Body)
	return nil
}

func (c *CLI) listPlaceholders(args []string) error {
	positional, opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return apperrors.ValidationError("placeholders requires a template name", "")
	}

	tpl, err := c.service.GetTemplate(positional[0])
	if err != nil {
		return err
	}
	parsed := c.service.Parse(tpl)

	if opts.format == "json" {
		return printJSON(parsed.Placeholders)
	}
	for _, name := range parsed.Placeholders {
		fmt.Println(name)
	}
	return nil
}

func (c *CLI) renderTemplate(args []string) error {
	positional, opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return apperrors.ValidationError("render requires a template name", "")
	}

	tpl, err := c.service.GetTemplate(positional[0])
	if err != nil {
		return err
	}

	var meeting *models.MeetingDetails
	if tpl.Meta.Calendar && opts.meeting != "" {
		m, err := opts.meetingDetails()
		if err != nil {
			return err
		}
		meeting = &m
	}
	email := c.service.Render(tpl, opts.vars, meeting)

	if opts.format == "json" {
		return printJSON(email)
	}
	fmt.Printf("Subject: %s\n\n%s\n", email.Subject, email.Body)
	return nil
}

func (c *CLI) mailLink(args []string) error {
	positional, opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return apperrors.ValidationError("link requires a template name", "")
	}

	tpl, err := c.service.GetTemplate(positional[0])
	if err != nil {
		return err
	}

	var meeting *models.MeetingDetails
	if tpl.Meta.Calendar && opts.meeting != "" {
		m, err := opts.meetingDetails()
		if err != nil {
			return err
		}
		meeting = &m
	}
	email := c.service.Render(tpl, opts.vars, meeting)
	link := c.service.MailLink(email, models.Recipients{To: opts.to, CC: opts.cc, BCC: opts.bcc})

	return c.emitLink(link, opts)
}

func (c *CLI) calendarLink(args []string) error {
	positional, opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return apperrors.ValidationError("calendar requires a template name", "")
	}

	tpl, err := c.service.GetTemplate(positional[0])
	if err != nil {
		return err
	}

	meeting, err := opts.meetingDetails()
	if err != nil {
		return err
	}
	email := c.service.Render(tpl, opts.vars, &meeting)

	link, err := c.service.CalendarLink(tpl, email, meeting, opts.location)
	if err != nil {
		return err
	}
	return c.emitLink(link, opts)
}

func (c *CLI) emitLink(link string, opts *options) error {
	if opts.format == "json" {
		if err := printJSON(map[string]string{"link": link}); err != nil {
			return err
		}
	} else {
		fmt.Println(link)
	}

	if opts.copy {
		if err := clipboard.Copy(link); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Copied to clipboard!")
		}
	}
	if opts.open {
		if err := browser.Open(link); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to encode output")
	}
	fmt.Println(string(data))
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Print(`templink - Outlook deep links from email templates

USAGE:
    templink <command> [options]

COMMANDS:
    list, ls              List templates in the library
    show <name>           Show a template's subject, body and placeholders
    placeholders <name>   List a template's placeholder names
    render <name>         Render a template with values
    link <name>           Generate the mail compose deep link
    calendar <name>       Generate the calendar compose deep link
    help                  Show this help

OPTIONS:
    --format text|json    Output format (default: text)
    --var name=value      Placeholder value (repeatable)
    --to, --cc, --bcc     Recipients for the mail link
    --date YYYY-MM-DD     Meeting date (default: one week out)
    --start HH:MM         Meeting start time (default: 10:00)
    --duration <minutes>  Meeting length (default: 60)
    --platform <name>     Meeting platform (default: Microsoft Teams)
    --meeting-link <url>  Meeting join link
    --attendee <email>    Attendee email for the calendar link
    --location <text>     Override the invitation location
    --copy                Copy the generated link to the clipboard
    --open                Open the generated link in the browser

EXAMPLES:
    templink list
    templink show Online_Interview.md
    templink render Job_Offer.md --var Candidate_Name=Ada --var Role=Engineer
    templink link Job_Offer.md --var Candidate_Name=Ada --to ada@example.com --copy
    templink calendar Online_Interview.md --var Role=Engineer \
        --date 2026-09-01 --start 14:00 --attendee ada@example.com \
        --meeting-link https://teams.microsoft.com/l/meetup-join/abc
`)
	return nil
}
