package qrserver

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/menulink/pkg/cache"
	"github.com/matzehuels/menulink/pkg/integrations"
)

func TestRendererURL(t *testing.T) {
	r := NewRendererWithClient(integrations.NewClient(nil, "qr", 0, nil), "", -1)

	got := r.URL("https://m.example/restaurant/R1/menu?table=5&category=C9", 400)
	want := DefaultEndpoint +
		"?size=400x400&data=https%3A%2F%2Fm.example%2Frestaurant%2FR1%2Fmenu%3Ftable%3D5%26category%3DC9&margin=0"
	if got != want {
		t.Errorf("URL() =\n%s\nwant\n%s", got, want)
	}
}

func TestRendererURLEscapesSpaces(t *testing.T) {
	r := NewRendererWithClient(integrations.NewClient(nil, "qr", 0, nil), "http://qr.local/gen?fmt=png", 2)

	got := r.URL("a b", 10)
	if got != "http://qr.local/gen?fmt=png&size=10x10&data=a%20b&margin=2" {
		t.Errorf("URL() = %s", got)
	}
}

func TestPreviewURL(t *testing.T) {
	r := NewRendererWithClient(integrations.NewClient(nil, "qr", 0, nil), "", 0)
	if !strings.Contains(r.PreviewURL("x"), "size=300x300") {
		t.Errorf("PreviewURL() = %s, want 300px raster", r.PreviewURL("x"))
	}
}

func TestRendererFetch(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	img.SetGray(0, 0, color.Gray{Y: 0})
	var body bytes.Buffer
	png.Encode(&body, img)

	var hits atomic.Int32
	var gotSize, gotData string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotSize = r.URL.Query().Get("size")
		gotData = r.URL.Query().Get("data")
		w.Header().Set("Content-Type", "image/png")
		w.Write(body.Bytes())
	}))
	defer srv.Close()

	fc, _ := cache.NewFileCache(t.TempDir())
	defer fc.Close()
	client := integrations.NewClient(fc, "qr", time.Hour, nil).WithHTTPClient(srv.Client())
	r := NewRendererWithClient(client, srv.URL+"/", 0)

	link := "https://m.example/restaurant/R1/menu?table=5&item=I 3"
	for range 2 {
		got, err := r.Fetch(context.Background(), link, 40)
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if got.Bounds().Dx() != 40 {
			t.Errorf("width = %d, want 40", got.Bounds().Dx())
		}
	}
	if gotSize != "40x40" {
		t.Errorf("size param = %q", gotSize)
	}
	if gotData != link {
		t.Errorf("data param = %q, want %q", gotData, link)
	}
	if hits.Load() != 1 {
		t.Errorf("renderer hit %d times, want 1", hits.Load())
	}
}

func TestRendererFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("size") == "10x10" {
			w.Write([]byte("<html>not a png</html>"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := integrations.NewClient(nil, "qr", 0, nil).WithHTTPClient(srv.Client())
	r := NewRendererWithClient(client, srv.URL, 0)
	ctx := context.Background()

	if _, err := r.Fetch(ctx, "x", 10); err == nil {
		t.Error("Fetch() should fail on undecodable body")
	}
	if _, err := r.Fetch(ctx, "x", 20); !integrations.IsNotFound(err) {
		t.Errorf("Fetch() error = %v, want not found", err)
	}
	if _, err := r.Fetch(ctx, "x", 0); err == nil {
		t.Error("Fetch() should reject size 0")
	}
}

func TestRendererRetriesAfterBadBody(t *testing.T) {
	var body bytes.Buffer
	png.Encode(&body, image.NewGray(image.Rect(0, 0, 20, 20)))

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Write([]byte("<html>upstream error</html>"))
			return
		}
		w.Write(body.Bytes())
	}))
	defer srv.Close()

	fc, _ := cache.NewFileCache(t.TempDir())
	defer fc.Close()
	client := integrations.NewClient(fc, "qr", time.Hour, nil).WithHTTPClient(srv.Client())
	r := NewRendererWithClient(client, srv.URL, 0)
	ctx := context.Background()

	if _, err := r.Fetch(ctx, "https://m.example/x", 20); err == nil {
		t.Fatal("first Fetch() should fail on an HTML body")
	}
	for i := range 2 {
		if _, err := r.Fetch(ctx, "https://m.example/x", 20); err != nil {
			t.Fatalf("Fetch() #%d error: %v", i+2, err)
		}
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
}

func TestRendererEndpointInCacheKey(t *testing.T) {
	var body bytes.Buffer
	png.Encode(&body, image.NewGray(image.Rect(0, 0, 10, 10)))
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(body.Bytes())
	}))
	defer srv.Close()

	fc, _ := cache.NewFileCache(t.TempDir())
	defer fc.Close()
	client := integrations.NewClient(fc, "qr", time.Hour, nil).WithHTTPClient(srv.Client())
	ctx := context.Background()

	for _, ep := range []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/a"} {
		if _, err := NewRendererWithClient(client, ep, 0).Fetch(ctx, "same link", 10); err != nil {
			t.Fatalf("Fetch(%s) error: %v", ep, err)
		}
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times, want one per endpoint", got)
	}
}

// ttlRecorder remembers the TTL passed to Set.
type ttlRecorder struct {
	cache.NullCache
	ttl time.Duration
}

func (c *ttlRecorder) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttl = ttl
	return nil
}

func TestNewRendererOptions(t *testing.T) {
	var body bytes.Buffer
	png.Encode(&body, image.NewGray(image.Rect(0, 0, 10, 10)))
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write(body.Bytes())
	}))
	defer srv.Close()

	rec := &ttlRecorder{}
	r := NewRenderer(rec, Options{
		Endpoint:    srv.URL,
		Margin:      -1,
		PreviewSize: 180,
		Timeout:     time.Second,
		CacheTTL:    2 * time.Hour,
	})

	if got := r.PreviewURL("x"); !strings.Contains(got, "size=180x180") || !strings.HasSuffix(got, "margin=0") {
		t.Errorf("PreviewURL() = %s", got)
	}
	if _, err := r.Fetch(context.Background(), "x", 10); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if rec.ttl != 2*time.Hour {
		t.Errorf("cached for %v, want 2h", rec.ttl)
	}
	if !strings.HasPrefix(ua, "menulink/") {
		t.Errorf("User-Agent = %q", ua)
	}

	d := NewRenderer(&ttlRecorder{}, Options{})
	if d.Endpoint() != DefaultEndpoint || !strings.Contains(d.PreviewURL("x"), "size=300x300") {
		t.Errorf("zero Options: endpoint %s preview %s", d.Endpoint(), d.PreviewURL("x"))
	}
}
