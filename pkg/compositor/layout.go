package compositor

import (
	"fmt"
	"image"
	"image/color"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultQRSize is the edge length of the QR region in pixels.
	DefaultQRSize = 400

	// DefaultPadding separates the canvas edge, title band and QR region.
	DefaultPadding = 20

	// DefaultTitleHeight is the height of the title band.
	DefaultTitleHeight = 60

	// DefaultLogoSize is the edge length of the branding logo.
	DefaultLogoSize = 80

	// DefaultLogoPadding is the white margin around the logo.
	DefaultLogoPadding = 10

	// DefaultTitleFontSize is the starting font size for the title.
	DefaultTitleFontSize = 24.0

	// DefaultTitleMinFontSize is the smallest size tried for long titles.
	DefaultTitleMinFontSize = 12.0
)

// TitleColor is the dark foreground used for titles (#1F2937).
var TitleColor = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}

// Layout holds the canvas geometry. Zero fields take their defaults.
type Layout struct {
	QRSize      int
	Padding     int
	TitleHeight int
	LogoSize    int
	LogoPadding int

	TitleFontSize    float64
	TitleMinFontSize float64
	TitleColor       color.Color
}

// DefaultLayout returns the standard print layout.
func DefaultLayout() Layout {
	return Layout{
		QRSize:           DefaultQRSize,
		Padding:          DefaultPadding,
		TitleHeight:      DefaultTitleHeight,
		LogoSize:         DefaultLogoSize,
		LogoPadding:      DefaultLogoPadding,
		TitleFontSize:    DefaultTitleFontSize,
		TitleMinFontSize: DefaultTitleMinFontSize,
		TitleColor:       TitleColor,
	}
}

// ValidateAndSetDefaults fills zero fields and rejects negative ones.
func (l *Layout) ValidateAndSetDefaults() error {
	if l.QRSize < 0 || l.Padding < 0 || l.TitleHeight < 0 || l.LogoSize < 0 || l.LogoPadding < 0 {
		return fmt.Errorf("layout dimensions must not be negative")
	}
	d := DefaultLayout()
	if l.QRSize == 0 {
		l.QRSize = d.QRSize
	}
	if l.Padding == 0 {
		l.Padding = d.Padding
	}
	if l.TitleHeight == 0 {
		l.TitleHeight = d.TitleHeight
	}
	if l.LogoSize == 0 {
		l.LogoSize = d.LogoSize
	}
	if l.LogoPadding == 0 {
		l.LogoPadding = d.LogoPadding
	}
	if l.TitleFontSize <= 0 {
		l.TitleFontSize = d.TitleFontSize
	}
	if l.TitleMinFontSize <= 0 {
		l.TitleMinFontSize = d.TitleMinFontSize
	}
	if l.TitleColor == nil {
		l.TitleColor = d.TitleColor
	}
	if l.LogoSize+2*l.LogoPadding > l.QRSize {
		return fmt.Errorf("logo (%d + 2×%d) does not fit the %dpx QR", l.LogoSize, l.LogoPadding, l.QRSize)
	}
	return nil
}

// Canvas returns the output dimensions.
func (l Layout) Canvas() (width, height int) {
	return l.QRSize + 2*l.Padding, l.QRSize + l.TitleHeight + 3*l.Padding
}

// TitleBand is the region the title is centered in.
func (l Layout) TitleBand() image.Rectangle {
	w, _ := l.Canvas()
	return image.Rect(0, l.Padding, w, l.Padding+l.TitleHeight)
}

// QRRect is the region the QR raster is scaled into.
func (l Layout) QRRect() image.Rectangle {
	top := 2*l.Padding + l.TitleHeight
	return image.Rect(l.Padding, top, l.Padding+l.QRSize, top+l.QRSize)
}

// LogoBackdrop is the white square drawn under the logo.
func (l Layout) LogoBackdrop() image.Rectangle {
	return centered(l.QRRect(), l.LogoSize+2*l.LogoPadding)
}

// LogoRect is the region the logo is scaled into.
func (l Layout) LogoRect() image.Rectangle {
	return centered(l.QRRect(), l.LogoSize)
}

func centered(outer image.Rectangle, size int) image.Rectangle {
	x := outer.Min.X + (outer.Dx()-size)/2
	y := outer.Min.Y + (outer.Dy()-size)/2
	return image.Rect(x, y, x+size, y+size)
}
