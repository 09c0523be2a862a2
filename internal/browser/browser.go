// Package browser opens deep links in the system's default browser. The
// tool itself performs no network I/O; the compose view is entirely the
// provider's.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches url in the default browser.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("xdg-open not found; copy the link and open it manually")
		}
		return exec.Command("xdg-open", url).Start()
	default:
		return fmt.Errorf("cannot open a browser on %s", runtime.GOOS)
	}
}
