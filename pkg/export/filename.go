package export

import "strings"

// Slug lower-cases s and replaces every rune outside [a-z0-9] with '-'.
// Runs are not collapsed, so "Table 5 - Drinks" becomes "table-5---drinks".
func Slug(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, strings.ToLower(s))
}

// Filename returns the download filename for a record title.
func Filename(title string) string {
	return "qr-" + Slug(title) + ".png"
}
