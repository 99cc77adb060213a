// Package qrserver renders QR code rasters through a goqr.me-compatible HTTP
// endpoint.
//
// The renderer requests
//
//	{endpoint}?size={n}x{n}&data={escaped link}&margin={m}
//
// and decodes the PNG response. Responses are cached by endpoint, link, size
// and margin, so re-exporting the same record does not hit the network. Only
// bodies that decode as images are cached.
package qrserver
