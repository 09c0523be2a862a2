// Package clipboard copies generated deep links to the system clipboard by
// shelling out to the platform utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// linuxTools lists the clipboard utilities tried in order on Linux.
var linuxTools = [][]string{
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"wl-copy"},
}

// Copy places text on the system clipboard.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return run(text, "pbcopy")
	case "windows":
		return run(text, "cmd", "/c", "clip")
	case "linux":
		return copyLinux(text)
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
}

func copyLinux(text string) error {
	var lastErr error
	for _, tool := range linuxTools {
		if !available(tool[0]) {
			continue
		}
		if err := run(text, tool[0], tool[1:]...); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", tool[0], err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no clipboard utility found; install xclip, xsel or wl-clipboard")
}

func run(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Available reports whether a clipboard utility can be used on this system.
func Available() bool {
	switch runtime.GOOS {
	case "darwin":
		return available("pbcopy")
	case "windows":
		return true
	case "linux":
		for _, tool := range linuxTools {
			if available(tool[0]) {
				return true
			}
		}
	}
	return false
}
