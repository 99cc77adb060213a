package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopCompositeHooks{}
	p.OnCompositeStart(ctx, "rec-1")
	p.OnCompositeComplete(ctx, "rec-1", 2048, time.Second, nil)
	p.OnLogoSkipped(ctx, "rec-1", "https://cdn.example/logo.png", errors.New("404"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "qr")
	c.OnCacheMiss(ctx, "img")
	c.OnCacheSet(ctx, "qr", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.qrserver.com", "/v1/create-qr-code/")
	h.OnResponse(ctx, "GET", "api.qrserver.com", "/v1/create-qr-code/", 200, time.Second)
	h.OnError(ctx, "GET", "api.qrserver.com", "/v1/create-qr-code/", nil)
}

type countingCompositeHooks struct {
	NoopCompositeHooks
	skipped int
}

func (h *countingCompositeHooks) OnLogoSkipped(context.Context, string, string, error) { h.skipped++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Composite().(NoopCompositeHooks); !ok {
		t.Error("Composite() should return NoopCompositeHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &countingCompositeHooks{}
	SetCompositeHooks(custom)
	Composite().OnLogoSkipped(context.Background(), "r", "l", nil)
	if custom.skipped != 1 {
		t.Errorf("custom hook not invoked: %d", custom.skipped)
	}

	SetCompositeHooks(nil)
	if Composite() != custom {
		t.Error("SetCompositeHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Composite().(NoopCompositeHooks); !ok {
		t.Error("Reset() should restore NoopCompositeHooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Composite().OnCompositeStart(ctx, "rec-9")
	Composite().OnLogoSkipped(ctx, "rec-9", "logo.png", errors.New("decode failed"))
	Cache().OnCacheHit(ctx, "qr")
	HTTP().OnResponse(ctx, "GET", "host", "/p", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"composite started", "rec-9", "logo skipped", "cache hit", "http response"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
