package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer generates cache keys for fetched resources.
type Keyer interface {
	// HTTPKey names a raw HTTP response body.
	HTTPKey(namespace, key string) string

	// QRKey names a QR raster rendered by endpoint for data at size pixels
	// with margin.
	QRKey(endpoint, data string, size, margin int) string

	// ImageKey names a decoded-from-source image such as a logo.
	ImageKey(ref string) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:{namespace}:{key}".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// QRKey hashes the rendering service, the link and the rendering parameters.
func (DefaultKeyer) QRKey(endpoint, data string, size, margin int) string {
	return hashKey("qr", endpoint, data, size, margin)
}

// ImageKey hashes the image reference.
func (DefaultKeyer) ImageKey(ref string) string {
	return hashKey("img", ref)
}

// ScopedKeyer wraps a Keyer with a prefix, e.g. one namespace per restaurant.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) QRKey(endpoint, data string, size, margin int) string {
	return k.prefix + k.inner.QRKey(endpoint, data, size, margin)
}

func (k *ScopedKeyer) ImageKey(ref string) string {
	return k.prefix + k.inner.ImageKey(ref)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "prefix:" followed by the hash of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
