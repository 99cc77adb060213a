package errors

import (
	"strings"
	"testing"
)

func TestValidateRestaurantID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "R1", false},
		{"valid slug", "la-piazza", false},
		{"valid uuid", "3f0a2b4c-1d2e-4f5a-9b8c-7d6e5f4a3b2c", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"control char", "r\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRestaurantID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRestaurantID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateRestaurantID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateTableLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"number", "5", false},
		{"padded", "  12  ", false},
		{"reserved chars", "A&B=1?#", false},
		{"unicode", "Terrasse 3", false},

		{"empty", "", true},
		{"whitespace only", " \t ", true},
		{"too long", strings.Repeat("x", 65), true},
		{"newline inside", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTableLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTableLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/codes", false},
		{"absolute", "/tmp/codes", false},

		{"empty", "", true},
		{"null byte", "out\x00dir", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://menu.example.com/restaurant/R1/menu?table=5", false},
		{"http", "http://localhost:8080", false},

		{"empty", "", true},
		{"relative", "/restaurant/R1/menu?table=5", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
