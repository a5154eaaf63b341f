package validation

import (
	"errors"
	"strings"
	"unicode"
)

// ErrCityEmpty is returned when the city is empty or whitespace-only after trim.
var ErrCityEmpty = errors.New("city is required")

// ErrCityTooLong is returned when the city name exceeds the maximum length.
var ErrCityTooLong = errors.New("city name too long")

// ErrCityInvalidChars is returned when the city name contains disallowed characters.
var ErrCityInvalidChars = errors.New("city name contains invalid characters")

// ValidateCity trims the input, enforces the maximum length (maxLen in runes,
// 0 disables the check), and restricts to characters that occur in place
// names: letters (Unicode), digits, space, comma, hyphen, apostrophe, period.
// Returns the trimmed string.
func ValidateCity(input string, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrCityEmpty
	}
	if maxLen > 0 && len(r) > maxLen {
		return "", ErrCityTooLong
	}
	for _, c := range r {
		if !isAllowedCityRune(c) {
			return "", ErrCityInvalidChars
		}
	}
	return s, nil
}

func isAllowedCityRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '\'', '.':
		return true
	}
	return false
}
