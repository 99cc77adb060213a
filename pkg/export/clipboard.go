package export

import (
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// OSC52Clipboard copies through the terminal using the OSC 52 escape
// sequence, which also works over SSH.
type OSC52Clipboard struct {
	W      io.Writer
	tmux   bool
	screen bool
}

// NewOSC52Clipboard creates a clipboard writing to w, wrapping the sequence
// for tmux or screen when running inside one.
func NewOSC52Clipboard(w io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{
		W:      w,
		tmux:   os.Getenv("TMUX") != "",
		screen: strings.HasPrefix(os.Getenv("TERM"), "screen"),
	}
}

// Copy writes text to the terminal clipboard.
func (c *OSC52Clipboard) Copy(text string) error {
	seq := osc52.New(text)
	switch {
	case c.tmux:
		seq = seq.Tmux()
	case c.screen:
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(c.W)
	return err
}
