package errors

import (
	"strings"
	"unicode"
)

const (
	maxRestaurantIDLength = 128
	maxTableLabelLength   = 64
)

// ValidateRestaurantID validates a restaurant identifier used in deep-link paths.
//
// Rules:
//   - Not empty after trimming whitespace
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateRestaurantID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "restaurant id is required")
	}
	if len(id) > maxRestaurantIDLength {
		return New(ErrCodeInvalidInput, "restaurant id too long (max %d characters)", maxRestaurantIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "restaurant id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "restaurant id cannot contain path separators")
	}
	return nil
}

// ValidateTableLabel validates a table label. Surrounding whitespace is
// ignored; reserved URL characters are allowed because the encoder escapes them.
func ValidateTableLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return New(ErrCodeInvalidInput, "table label is required")
	}
	if len(label) > maxTableLabelLength {
		return New(ErrCodeInvalidInput, "table label too long (max %d characters)", maxTableLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "table label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output directory or file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
