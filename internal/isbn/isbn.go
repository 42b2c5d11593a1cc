package isbn

import (
	"errors"
	"strings"
)

// ErrInvalid is returned when the input cannot be parsed as an ISBN.
var ErrInvalid = errors.New("invalid isbn")

// Canonicalize strips separators from a human-typed ISBN-10 or ISBN-13,
// validates the check digit and returns the canonical form used as the
// inventory key. Canonical input passes through unchanged.
func Canonicalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X':
			b.WriteRune(r)
		case r == '-' || r == ' ':
			// separators are allowed anywhere
		default:
			return "", ErrInvalid
		}
	}

	s := b.String()
	switch len(s) {
	case 10:
		if !validISBN10(s) {
			return "", ErrInvalid
		}
	case 13:
		if strings.ContainsRune(s, 'X') || !validISBN13(s) {
			return "", ErrInvalid
		}
	default:
		return "", ErrInvalid
	}
	return s, nil
}

// validISBN10 checks the weighted mod-11 sum. 'X' is only legal as the
// check digit.
func validISBN10(s string) bool {
	sum := 0
	for i, r := range s {
		v := int(r - '0')
		if r == 'X' {
			if i != 9 {
				return false
			}
			v = 10
		}
		sum += (10 - i) * v
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for i, r := range s {
		v := int(r - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}
