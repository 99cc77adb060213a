package compositor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/observability"
	"github.com/matzehuels/menulink/pkg/raster"
)

// QRSource renders a QR raster for data at size pixels square.
type QRSource interface {
	Fetch(ctx context.Context, data string, size int) (image.Image, error)
}

// ImageSource loads an image from a URL or local path.
type ImageSource interface {
	FetchImage(ctx context.Context, ref string) (image.Image, error)
}

// Compositor turns records into branded PNGs.
//
// The Compositor is stateless apart from its collaborators, so multiple
// goroutines can share one.
type Compositor struct {
	QR         QRSource
	Images     ImageSource
	NewSurface raster.Factory
	Layout     Layout
	Logger     *log.Logger
}

// New creates a compositor with the default layout and gg surfaces.
// If logger is nil, output is discarded.
func New(qr QRSource, images ImageSource, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Compositor{
		QR:         qr,
		Images:     images,
		NewSurface: raster.NewGGSurface,
		Layout:     DefaultLayout(),
		Logger:     logger,
	}
}

// Composite renders rec and returns the PNG bytes. logoRef may be empty.
func (c *Compositor) Composite(ctx context.Context, rec *link.Record, logoRef string) (data []byte, err error) {
	if rec == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "record is required")
	}
	if c.QR == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no QR source configured")
	}
	layout := c.Layout
	if err := layout.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid layout")
	}
	logger := c.logger()

	hooks := observability.Composite()
	hooks.OnCompositeStart(ctx, rec.ID)
	start := time.Now()
	defer func() {
		hooks.OnCompositeComplete(ctx, rec.ID, len(data), time.Since(start), err)
	}()

	// Step 1: allocate
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	factory := c.NewSurface
	if factory == nil {
		factory = raster.NewGGSurface
	}
	w, h := layout.Canvas()
	surface, err := factory(w, h)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "allocate %dx%d surface", w, h)
	}

	// Step 2: background
	surface.FillRect(image.Rect(0, 0, w, h), color.White)

	// Step 3: QR raster
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	qr, err := c.QR.Fetch(ctx, rec.URL, layout.QRSize)
	if err != nil {
		if cerr := checkCanceled(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, err, "fetch QR for %s", rec.URL)
	}

	// Step 4: draw QR
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	surface.DrawImage(qr, layout.QRRect(), false)

	// Step 5: optional logo
	if logoRef != "" {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}
		c.drawLogo(ctx, surface, layout, rec.ID, logoRef, logger)
	}

	// Step 6: title
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	style := raster.TextStyle{
		Size:    layout.TitleFontSize,
		MinSize: layout.TitleMinFontSize,
		Color:   layout.TitleColor,
	}
	if err := surface.DrawCenteredText(rec.Title, layout.TitleBand(), style); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "draw title")
	}

	// Step 7: encode
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "encode PNG")
	}

	logger.Debug("composited", "record", rec.ID, "bytes", buf.Len(), "duration", time.Since(start))
	return buf.Bytes(), nil
}

func (c *Compositor) drawLogo(ctx context.Context, s raster.Surface, layout Layout, recordID, ref string, logger *log.Logger) {
	if c.Images == nil {
		logger.Warn("logo skipped: no image source", "logo", ref)
		observability.Composite().OnLogoSkipped(ctx, recordID, ref, nil)
		return
	}
	logo, err := c.Images.FetchImage(ctx, ref)
	if err != nil {
		logger.Warn("logo skipped", "logo", ref, "err", err)
		observability.Composite().OnLogoSkipped(ctx, recordID, ref, err)
		return
	}
	s.FillRect(layout.LogoBackdrop(), color.White)
	s.DrawImage(logo, layout.LogoRect(), true)
}

func (c *Compositor) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

func checkCanceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "composite canceled")
	}
	return nil
}
