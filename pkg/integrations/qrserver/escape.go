package qrserver

import (
	"net/url"
	"strings"
)

// escape percent-encodes data for the query string. Spaces become %20 rather
// than '+', which some renderers embed literally.
func escape(data string) string {
	return strings.ReplaceAll(url.QueryEscape(data), "+", "%20")
}
