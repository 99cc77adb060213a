package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line on stderr while an export renders.
type Spinner struct {
	w      io.Writer
	parent context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once

	mu  sync.Mutex
	msg string
}

// startSpinner starts animating msg until Stop is called or ctx ends.
func startSpinner(ctx context.Context, msg string) *Spinner {
	return startSpinnerOn(ctx, os.Stderr, msg)
}

func startSpinnerOn(ctx context.Context, w io.Writer, msg string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	s := &Spinner{w: w, parent: ctx, cancel: cancel, exited: make(chan struct{}), msg: msg}
	go s.run(inner)
	return s
}

func (s *Spinner) run(ctx context.Context) {
	defer close(s.exited)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.msg))
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
}

// Stop halts the animation and blanks the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(s.cancel)
	<-s.exited
}

// Succeed stops the spinner and prints msg as a success line.
func (s *Spinner) Succeed(msg string) {
	s.Stop()
	printSuccess("%s", msg)
}

// Fail stops the spinner and prints msg as an error line.
func (s *Spinner) Fail(msg string) {
	s.Stop()
	printError("%s", msg)
}

// SetMessage replaces the text next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
}

// Cancelled reports whether the spinner's parent context ended.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
