package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// safeBuffer is a bytes.Buffer guarded for the spinner goroutine.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerAnimatesMessage(t *testing.T) {
	var out safeBuffer
	s := startSpinnerOn(context.Background(), &out, "Rendering Table 5...")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "Rendering Table 5...") {
		t.Errorf("output %q missing message", out.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var out safeBuffer
	s := startSpinnerOn(context.Background(), &out, "first")
	s.SetMessage("second message")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "second message") {
		t.Errorf("output %q missing updated message", out.String())
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinnerOn(ctx, &safeBuffer{}, "waiting")
	cancel()

	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit after cancel")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancel")
	}
	s.Stop()
}

func TestSpinnerStopIdempotent(t *testing.T) {
	s := startSpinnerOn(context.Background(), &safeBuffer{}, "x")
	s.Stop()
	s.Stop()
}

func TestSpinnerConcurrentStop(t *testing.T) {
	s := startSpinnerOn(context.Background(), &safeBuffer{}, "x")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()
}
