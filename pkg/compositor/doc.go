// Package compositor renders a deep-link record into a printable PNG.
//
// # Pipeline
//
// [Compositor.Composite] runs a fixed sequence on a freshly allocated canvas:
//
//  1. Allocate the surface (QRSize+2·Padding wide, QRSize+TitleHeight+3·Padding tall)
//  2. Fill it white
//  3. Fetch the QR raster for the record URL (must succeed)
//  4. Draw the QR below the title band
//  5. Optionally fetch the branding logo and draw it on a white square
//     centered on the QR (a failed logo is logged and skipped)
//  6. Draw the record title centered in the title band
//  7. Encode the canvas as PNG
//
// Each step overlays the previous one, so the order never changes. The
// context is checked between steps; a cancelled call returns a CANCELED
// error and no bytes.
//
// # Concurrency
//
// A Compositor holds no per-call state. Concurrent Composite calls each own
// their surface and may complete in any order.
package compositor
