// Package pkg provides the core libraries for menulink table codes.
//
// # Overview
//
// menulink turns a restaurant table (optionally narrowed to one menu category
// or item) into a deep link, and exports that link as a branded PNG QR code.
// The pkg directory is organized into these areas:
//
//  1. [link] - Deep-link records and the deterministic encoder
//  2. [registry] - In-memory, most-recent-first record store
//  3. [compositor] - QR + logo + title compositing into a PNG
//  4. [export] - Download, clipboard and browser preview actions
//  5. [integrations] - Shared HTTP client, image fetching, QR rendering service
//
// Supporting packages: [cache] (file, Redis and null backends for fetched
// rasters), [config] (TOML configuration), [restaurant] (restaurant context
// and menu catalog), [raster] and [fonts] (drawing surface), [observability]
// (lifecycle hooks), [errors] (coded errors) and [api] (HTTP server).
//
// # Architecture
//
// The typical data flow:
//
//	restaurant.Context + table label + link.Target
//	         ↓
//	    [link] Encoder (URL, name, title)
//	         ↓
//	    [registry] (most recent first)
//	         ↓
//	    [compositor] (QR raster from [integrations/qrserver], logo, title)
//	         ↓
//	    [export] qr-{slug}.png / clipboard / browser
//
// # Quick Start
//
//	enc := link.NewEncoder("https://menu.example.com")
//	rec, _ := enc.Encode("R1", link.ScopeCategory, "5", &link.Target{ID: "C9", DisplayName: "Drinks"})
//
//	qr := qrserver.NewRenderer(cache.NewNullCache(), qrserver.Options{})
//	comp := compositor.New(qr, integrations.NewClient(nil, "logo", time.Hour, nil), nil)
//	png, _ := comp.Composite(ctx, rec, "logo.png")
//
// # Testing
//
//	go test ./pkg/...
//
// [link]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/link
// [registry]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/registry
// [compositor]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/compositor
// [export]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/export
// [integrations]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/integrations
// [integrations/qrserver]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/integrations/qrserver
// [cache]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/config
// [restaurant]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/restaurant
// [raster]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/raster
// [fonts]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/errors
// [api]: https://pkg.go.dev/github.com/matzehuels/menulink/pkg/api
package pkg
