package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfaraji/templink/internal/cli"
	"github.com/mfaraji/templink/internal/config"
	"github.com/mfaraji/templink/internal/server"
	"github.com/mfaraji/templink/internal/service"
	"github.com/mfaraji/templink/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Print(`templink - Outlook deep links from email templates

Turns a directory of email templates (.docx, .md, .txt) into ready-to-send
Outlook Web compose links, and calendar invitation links for templates that
declare the calendar capability.

USAGE:
    templink [OPTIONS] [COMMAND]

OPTIONS:
    --help      Show this help information
    --version   Print version information
    --init      Create the template directory with starter templates
    --serve     Start the JSON API server
    --port      Port for the API server (default: 8080)
    --dir       Template directory (default: ~/.templink/templates)

COMMANDS:
    (no command)   Start interactive TUI mode
    list, ls       List templates
    show <name>    Show a template's subject, body and placeholders
    render <name>  Render a template with --var values
    link <name>    Generate the mail compose deep link
    calendar <name> Generate the calendar compose deep link
    help           Show CLI command help

STORAGE:
    Default directory: ~/.templink/templates
    Override with: TEMPLINK_DIR=<path> or --dir

Placeholders use {Name} tokens. Templates may declare metadata in a YAML
frontmatter block (.md/.txt) or a <file>.meta.yaml sidecar (.docx):
name, description, and calendar: true for interview-style templates.
`)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	var showVersion bool
	var showHelp bool
	var initLib bool
	var serve bool
	var port int
	var dir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&initLib, "init", false, "Create the template directory with starter templates")
	flag.BoolVar(&serve, "serve", false, "Start the JSON API server")
	flag.IntVar(&port, "port", cfg.Port, "Port for the API server")
	flag.StringVar(&dir, "dir", cfg.TemplateDir, "Template directory")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("templink version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing template library:", err)
			os.Exit(1)
		}
		fmt.Printf("Initialized template library in %s\n", svc.TemplateDir())
		return
	}

	if serve {
		srv := server.NewURLServer(svc, port)
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting URL server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// CLI mode when arguments are present.
	if args := flag.Args(); len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No arguments: interactive TUI mode.
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
