package integrations

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	// Decoders for logo formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// FetchImage loads and decodes an image from an http(s) URL or a local file
// path. Remote bodies are cached under the image key for ref. Supported
// formats are PNG, JPEG, GIF and WebP.
func (c *Client) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	if IsRemote(ref) {
		return c.CachedImage(ctx, "img", c.keyer.ImageKey(ref), ref)
	}
	data, err := os.ReadFile(strings.TrimPrefix(ref, "file://"))
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

// CachedImage fetches and decodes the image at rawURL, caching the body under
// key. A body that does not decode is never stored, so the next call goes back
// to the server. An undecodable entry already in the cache is evicted.
func (c *Client) CachedImage(ctx context.Context, keyType, key, rawURL string) (image.Image, error) {
	var fresh image.Image
	data, err := c.Cached(ctx, keyType, key, false, func() ([]byte, error) {
		body, err := c.Fetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if fresh, err = DecodeImage(body); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		return fresh, nil
	}
	img, err := DecodeImage(data)
	if err != nil {
		c.cache.Delete(ctx, key)
		return nil, err
	}
	return img, nil
}

// DecodeImage decodes raw bytes in any registered image format.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
