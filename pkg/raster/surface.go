package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/matzehuels/menulink/pkg/fonts"
)

// Surface is a fixed-size RGBA canvas.
type Surface interface {
	// Size returns the canvas dimensions in pixels.
	Size() (width, height int)

	// FillRect paints r with a solid color.
	FillRect(r image.Rectangle, c color.Color)

	// DrawImage scales img into dst. Smooth selects bilinear filtering;
	// otherwise nearest-neighbor keeps hard edges (QR modules).
	DrawImage(img image.Image, dst image.Rectangle, smooth bool)

	// DrawCenteredText draws a single line centered in band.
	DrawCenteredText(text string, band image.Rectangle, style TextStyle) error

	// EncodePNG serializes the canvas as PNG.
	EncodePNG(w io.Writer) error
}

// Factory allocates a new surface. Each call must return an independent canvas.
type Factory func(width, height int) (Surface, error)

// TextStyle controls title rendering.
type TextStyle struct {
	Size    float64     // font size in pixels
	MinSize float64     // smallest size tried when shrinking to fit; 0 disables shrinking
	Color   color.Color // foreground
}

// GGSurface implements Surface with fogleman/gg.
type GGSurface struct {
	dc *gg.Context
}

// NewGGSurface allocates a gg-backed surface. It satisfies [Factory].
func NewGGSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return &GGSurface{dc: gg.NewContext(width, height)}, nil
}

// Size returns the canvas dimensions.
func (s *GGSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// FillRect paints r with c.
func (s *GGSurface) FillRect(r image.Rectangle, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	s.dc.Fill()
}

// DrawImage scales img into dst and composites it over the canvas.
func (s *GGSurface) DrawImage(img image.Image, dst image.Rectangle, smooth bool) {
	if img == nil || dst.Empty() {
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	s.dc.DrawImage(scaled, dst.Min.X, dst.Min.Y)
}

// DrawCenteredText draws text centered in band using the embedded bold font.
// When MinSize is set, the font shrinks until the text fits the band width.
func (s *GGSurface) DrawCenteredText(text string, band image.Rectangle, style TextStyle) error {
	size := style.Size
	if size <= 0 {
		size = 24
	}
	for {
		face, err := fonts.BoldFace(size)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		s.dc.SetFontFace(face)
		w, _ := s.dc.MeasureString(text)
		if style.MinSize <= 0 || w <= float64(band.Dx()) || size <= style.MinSize {
			break
		}
		size--
	}

	fg := style.Color
	if fg == nil {
		fg = color.Black
	}
	s.dc.SetColor(fg)
	cx := float64(band.Min.X) + float64(band.Dx())/2
	cy := float64(band.Min.Y) + float64(band.Dy())/2
	s.dc.DrawStringAnchored(text, cx, cy, 0.5, 0.5)
	return nil
}

// EncodePNG writes the canvas as PNG.
func (s *GGSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Ensure GGSurface implements Surface.
var _ Surface = (*GGSurface)(nil)
