// Package raster provides a headless drawing surface for compositing
// printable QR images.
//
// A [Surface] offers the three primitives the compositor needs (fill a
// rectangle, draw an image scaled into a rectangle, draw a line of text
// centered in a band) plus PNG serialization. [NewGGSurface] implements it on
// top of github.com/fogleman/gg; tests and alternative backends can supply
// their own [Factory].
package raster
