package qrserver

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/menulink/pkg/buildinfo"
	"github.com/matzehuels/menulink/pkg/cache"
	"github.com/matzehuels/menulink/pkg/integrations"
)

const (
	// DefaultEndpoint is the public goqr.me API.
	DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

	// ExportSize is the raster size requested for downloaded images.
	ExportSize = 400

	// PreviewSize is the raster size shown on screen.
	PreviewSize = 300

	// DefaultMargin is the quiet zone, in modules, requested around the code.
	DefaultMargin = 0

	// DefaultCacheTTL is how long fetched rasters stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Options configures [NewRenderer]. Zero values select the defaults; a
// negative Margin selects [DefaultMargin].
type Options struct {
	Endpoint    string
	Margin      int
	PreviewSize int
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// Renderer fetches QR rasters for arbitrary text.
type Renderer struct {
	client      *integrations.Client
	endpoint    string
	margin      int
	previewSize int
}

// NewRenderer creates a Renderer whose fetches are cached in c.
func NewRenderer(c cache.Cache, opts Options) *Renderer {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	client := integrations.NewClient(c, "qrserver", ttl, map[string]string{
		"Accept":     "image/png",
		"User-Agent": buildinfo.UserAgent(),
	}).WithHTTPClient(integrations.NewHTTPClientWithTimeout(opts.Timeout))
	return NewRendererWithClient(client, opts.Endpoint, opts.Margin).WithPreviewSize(opts.PreviewSize)
}

// NewRendererWithClient creates a Renderer on top of an existing client. An
// empty endpoint selects [DefaultEndpoint]; a negative margin selects
// [DefaultMargin].
func NewRendererWithClient(client *integrations.Client, endpoint string, margin int) *Renderer {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if margin < 0 {
		margin = DefaultMargin
	}
	return &Renderer{client: client, endpoint: endpoint, margin: margin, previewSize: PreviewSize}
}

// WithPreviewSize sets the on-screen raster size. Non-positive sizes keep
// [PreviewSize].
func (r *Renderer) WithPreviewSize(n int) *Renderer {
	if n > 0 {
		r.previewSize = n
	}
	return r
}

// Endpoint returns the configured endpoint.
func (r *Renderer) Endpoint() string { return r.endpoint }

// URL returns the request URL for data at size pixels square. Parameters are
// always emitted in size, data, margin order.
func (r *Renderer) URL(data string, size int) string {
	var b strings.Builder
	b.WriteString(r.endpoint)
	if strings.Contains(r.endpoint, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	n := strconv.Itoa(size)
	b.WriteString("size=" + n + "x" + n)
	b.WriteString("&data=" + escape(data))
	b.WriteString("&margin=" + strconv.Itoa(r.margin))
	return b.String()
}

// PreviewURL returns the URL of the on-screen preview raster for data.
func (r *Renderer) PreviewURL(data string) string {
	return r.URL(data, r.previewSize)
}

// Fetch downloads and decodes the QR raster for data.
func (r *Renderer) Fetch(ctx context.Context, data string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid QR size %d", size)
	}
	key := r.client.Keyer().QRKey(r.endpoint, data, size, r.margin)
	img, err := r.client.CachedImage(ctx, "qr", key, r.URL(data, size))
	if err != nil {
		return nil, fmt.Errorf("fetch QR raster: %w", err)
	}
	return img, nil
}
