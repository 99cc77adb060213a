// Package integrations provides the HTTP plumbing shared by menulink's
// remote collaborators.
//
// # Overview
//
// The [Client] type wraps an [http.Client] with:
//   - default request headers
//   - retry with exponential backoff on network errors and 5xx responses
//   - response caching via [cache.Cache] (file, redis or none)
//   - status mapping (404 to [ErrNotFound], 429 to a rate-limit error)
//
// Collaborators live in subpackages:
//
//   - [qrserver]: renders QR rasters for deep links over HTTP
//
// # Images
//
// [Client.FetchImage] loads branding logos from http(s) URLs or local paths
// and decodes PNG, JPEG, GIF and WebP:
//
//	client := integrations.NewClient(c, "logo", 24*time.Hour, nil)
//	img, err := client.FetchImage(ctx, "https://cdn.example.com/logo.webp")
//
// [qrserver]: github.com/matzehuels/menulink/pkg/integrations/qrserver
// [cache.Cache]: github.com/matzehuels/menulink/pkg/cache.Cache
package integrations
