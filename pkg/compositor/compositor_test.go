package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/raster"
)

var red = color.RGBA{R: 0xFF, A: 0xFF}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

type fakeQR struct {
	err   error
	mu    sync.Mutex
	calls []string
}

func (f *fakeQR) Fetch(_ context.Context, data string, size int) (image.Image, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s@%d", data, size))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return solid(size, size, color.Black), nil
}

type fakeImages struct {
	err error
}

func (f *fakeImages) FetchImage(context.Context, string) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return solid(16, 16, red), nil
}

func testRecord() *link.Record {
	return &link.Record{
		ID:         "rec-1",
		Scope:      link.ScopeCategory,
		Target:     &link.Target{ID: "C9", DisplayName: "Drinks"},
		TableLabel: "5",
		URL:        "https://m.example/restaurant/R1/menu?table=5&category=C9",
		Name:       "Drinks (Table 5)",
		Title:      "Table 5 - Drinks",
	}
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img
}

func isColor(c color.Color, want color.Color) bool {
	r1, g1, b1, a1 := c.RGBA()
	r2, g2, b2, a2 := want.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestLayoutGeometry(t *testing.T) {
	l := DefaultLayout()
	w, h := l.Canvas()
	if w != 440 || h != 520 {
		t.Errorf("Canvas() = %dx%d, want 440x520", w, h)
	}
	if got := l.TitleBand(); got != image.Rect(0, 20, 440, 80) {
		t.Errorf("TitleBand() = %v", got)
	}
	if got := l.QRRect(); got != image.Rect(20, 100, 420, 500) {
		t.Errorf("QRRect() = %v", got)
	}
	if got := l.LogoBackdrop(); got != image.Rect(170, 250, 270, 350) {
		t.Errorf("LogoBackdrop() = %v", got)
	}
	if got := l.LogoRect(); got != image.Rect(180, 260, 260, 340) {
		t.Errorf("LogoRect() = %v", got)
	}
}

func TestLayoutValidateAndSetDefaults(t *testing.T) {
	var l Layout
	if err := l.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero layout: %v", err)
	}
	if l.QRSize != DefaultQRSize || l.TitleColor == nil {
		t.Errorf("defaults not applied: %+v", l)
	}

	tests := []struct {
		name string
		l    Layout
	}{
		{"negative padding", Layout{Padding: -1}},
		{"logo larger than QR", Layout{QRSize: 50, LogoSize: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.l.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCompositeWithoutLogo(t *testing.T) {
	qr := &fakeQR{}
	c := New(qr, &fakeImages{}, nil)

	data, err := c.Composite(context.Background(), testRecord(), "")
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}
	img := decode(t, data)

	if b := img.Bounds(); b.Dx() != 440 || b.Dy() != 520 {
		t.Fatalf("bounds = %v, want 440x520", b)
	}
	if len(qr.calls) != 1 || qr.calls[0] != testRecord().URL+"@400" {
		t.Errorf("QR fetch calls = %v", qr.calls)
	}

	checks := []struct {
		name string
		x, y int
		want color.Color
	}{
		{"top-left corner", 0, 0, color.White},
		{"bottom-right corner", 439, 519, color.White},
		{"gap between title and QR", 220, 90, color.White},
		{"QR top-left", 25, 105, color.Black},
		{"QR center", 220, 300, color.Black},
		{"bottom padding", 220, 510, color.White},
	}
	for _, ck := range checks {
		if got := img.At(ck.x, ck.y); !isColor(got, ck.want) {
			t.Errorf("%s (%d,%d) = %v, want %v", ck.name, ck.x, ck.y, got, ck.want)
		}
	}

	if !hasInk(img, image.Rect(0, 20, 440, 80)) {
		t.Error("title band has no text pixels")
	}
}

func hasInk(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !isColor(img.At(x, y), color.White) {
				return true
			}
		}
	}
	return false
}

func TestCompositeWithLogo(t *testing.T) {
	c := New(&fakeQR{}, &fakeImages{}, nil)

	data, err := c.Composite(context.Background(), testRecord(), "https://cdn.example/logo.png")
	if err != nil {
		t.Fatalf("Composite() error: %v", err)
	}
	img := decode(t, data)

	if got := img.At(220, 300); !isColor(got, red) {
		t.Errorf("logo center = %v, want red", got)
	}
	if got := img.At(175, 255); !isColor(got, color.White) {
		t.Errorf("logo backdrop = %v, want white", got)
	}
	if got := img.At(25, 105); !isColor(got, color.Black) {
		t.Errorf("QR outside logo = %v, want black", got)
	}
}

func TestCompositeLogoSoftFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	c := New(&fakeQR{}, &fakeImages{err: fmt.Errorf("404")}, logger)

	data, err := c.Composite(context.Background(), testRecord(), "https://cdn.example/missing.png")
	if err != nil {
		t.Fatalf("Composite() should succeed without logo, got %v", err)
	}
	img := decode(t, data)
	if got := img.At(220, 300); !isColor(got, color.Black) {
		t.Errorf("QR center = %v, want black (no logo drawn)", got)
	}
	if !bytes.Contains(logs.Bytes(), []byte("logo skipped")) {
		t.Errorf("expected warning, got %q", logs.String())
	}
}

func TestCompositeQRFailure(t *testing.T) {
	c := New(&fakeQR{err: fmt.Errorf("connection refused")}, &fakeImages{}, nil)

	data, err := c.Composite(context.Background(), testRecord(), "logo.png")
	if !errors.Is(err, errors.ErrCodeFetchFailed) {
		t.Fatalf("error = %v, want FETCH_FAILED", err)
	}
	if data != nil {
		t.Errorf("data = %d bytes, want nil", len(data))
	}
}

func TestCompositeSurfaceFailure(t *testing.T) {
	c := New(&fakeQR{}, nil, nil)
	c.NewSurface = func(int, int) (raster.Surface, error) {
		return nil, fmt.Errorf("no canvas")
	}

	_, err := c.Composite(context.Background(), testRecord(), "")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestCompositeEncodeFailure(t *testing.T) {
	rec := &recordingSurface{encodeErr: fmt.Errorf("encoder missing")}
	c := New(&fakeQR{}, nil, nil)
	c.NewSurface = func(int, int) (raster.Surface, error) { return rec, nil }

	data, err := c.Composite(context.Background(), testRecord(), "")
	if !errors.Is(err, errors.ErrCodeUnsupported) || data != nil {
		t.Errorf("Composite() = %d bytes, %v; want nil, UNSUPPORTED", len(data), err)
	}
}

func TestCompositeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	qr := &fakeQR{}
	c := New(qr, nil, nil)

	data, err := c.Composite(ctx, testRecord(), "")
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("error = %v, want CANCELED", err)
	}
	if data != nil || len(qr.calls) != 0 {
		t.Errorf("canceled call produced output or fetched QR")
	}
}

func TestCompositeNilRecord(t *testing.T) {
	_, err := New(&fakeQR{}, nil, nil).Composite(context.Background(), nil, "")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

// recordingSurface logs draw operations in order.
type recordingSurface struct {
	ops       []string
	encodeErr error
}

func (s *recordingSurface) Size() (int, int) { return 440, 520 }

func (s *recordingSurface) FillRect(r image.Rectangle, _ color.Color) {
	s.ops = append(s.ops, "fill "+r.String())
}

func (s *recordingSurface) DrawImage(_ image.Image, dst image.Rectangle, smooth bool) {
	s.ops = append(s.ops, fmt.Sprintf("image %s smooth=%t", dst, smooth))
}

func (s *recordingSurface) DrawCenteredText(text string, band image.Rectangle, _ raster.TextStyle) error {
	s.ops = append(s.ops, "text "+text+" "+band.String())
	return nil
}

func (s *recordingSurface) EncodePNG(w io.Writer) error {
	s.ops = append(s.ops, "encode")
	if s.encodeErr != nil {
		return s.encodeErr
	}
	_, err := w.Write([]byte("png"))
	return err
}

func TestCompositeStepOrder(t *testing.T) {
	surface := &recordingSurface{}
	c := New(&fakeQR{}, &fakeImages{}, nil)
	c.NewSurface = func(w, h int) (raster.Surface, error) {
		if w != 440 || h != 520 {
			t.Errorf("factory called with %dx%d", w, h)
		}
		return surface, nil
	}

	if _, err := c.Composite(context.Background(), testRecord(), "logo.png"); err != nil {
		t.Fatalf("Composite() error: %v", err)
	}

	want := []string{
		"fill (0,0)-(440,520)",
		"image (20,100)-(420,500) smooth=false",
		"fill (170,250)-(270,350)",
		"image (180,260)-(260,340) smooth=true",
		"text Table 5 - Drinks (0,20)-(440,80)",
		"encode",
	}
	if len(surface.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", surface.ops, want)
	}
	for i := range want {
		if surface.ops[i] != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, surface.ops[i], want[i])
		}
	}
}

func TestCompositeConcurrent(t *testing.T) {
	c := New(&fakeQR{}, &fakeImages{}, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := testRecord()
			rec.ID = fmt.Sprintf("rec-%d", i)
			rec.Title = fmt.Sprintf("Table %d", i)
			data, err := c.Composite(context.Background(), rec, "logo.png")
			if err == nil && len(data) == 0 {
				err = fmt.Errorf("empty output")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Composite() error: %v", err)
		}
	}
}
