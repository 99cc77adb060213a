package export

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL for the user.
type Opener interface {
	Open(rawURL string) error
}

// BrowserOpener opens URLs with the platform's default handler.
type BrowserOpener struct{}

// Open launches the default browser without waiting for it.
func (BrowserOpener) Open(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
