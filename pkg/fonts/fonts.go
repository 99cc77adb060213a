// Package fonts provides the embedded typeface used to print code titles.
//
// The Go Bold font ships inside golang.org/x/image, so titles render the same
// on every host without relying on installed system fonts.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// FontFamily is the display name of the title font.
const FontFamily = "Go Bold"

// Parsed font, computed once on first access.
var (
	boldFont     *truetype.Font
	boldFontErr  error
	boldFontOnce sync.Once
)

// BoldTTF returns the raw TTF data.
func BoldTTF() []byte {
	return gobold.TTF
}

// Bold returns the parsed bold font. The result is cached after first use.
func Bold() (*truetype.Font, error) {
	boldFontOnce.Do(func() {
		boldFont, boldFontErr = truetype.Parse(gobold.TTF)
	})
	return boldFont, boldFontErr
}

// BoldFace returns a bold face at the given point size (72 DPI, so points
// equal pixels).
func BoldFace(size float64) (font.Face, error) {
	f, err := Bold()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
