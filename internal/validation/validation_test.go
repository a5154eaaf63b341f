package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantErr error
	}{
		{"simple", "Paris", 100, "Paris", nil},
		{"trimmed", "  Paris  ", 100, "Paris", nil},
		{"with comma", "Paris, TX", 100, "Paris, TX", nil},
		{"hyphenated", "Stratford-upon-Avon", 100, "Stratford-upon-Avon", nil},
		{"apostrophe", "Martha's Vineyard", 100, "Martha's Vineyard", nil},
		{"abbreviation", "St. Louis", 100, "St. Louis", nil},
		{"unicode", "Zürich", 100, "Zürich", nil},
		{"empty", "", 100, "", ErrCityEmpty},
		{"whitespace only", "   ", 100, "", ErrCityEmpty},
		{"too long", strings.Repeat("a", 101), 100, "", ErrCityTooLong},
		{"max length disabled", strings.Repeat("a", 500), 0, strings.Repeat("a", 500), nil},
		{"control chars", "Paris\x00", 100, "", ErrCityInvalidChars},
		{"injection-ish", "Paris;drop", 100, "", ErrCityInvalidChars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCity(tt.input, tt.maxLen)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateCity(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateCity(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateCity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
