// Package phone normalizes Korean phone numbers to the canonical form used as
// the lead dedup key: digits only, domestic format ("01012345678").
package phone

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize reduces a phone number to its canonical dedup key.
// "010-1234-5678", "01012345678" and "+82 10 1234 5678" all map to
// "01012345678". Full-width digits (common in copy-pasted form input) are
// folded to ASCII first. Returns "" when no digits remain.
func Normalize(raw string) string {
	folded := width.Fold.String(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	// International prefixes: 0082..., 82... -> domestic 0...
	if strings.HasPrefix(digits, "0082") {
		digits = "0" + digits[4:]
	} else if strings.HasPrefix(digits, "82") && len(digits) >= 10 {
		digits = "0" + digits[2:]
	}
	return digits
}

// Valid reports whether the normalized number looks like a Korean mobile or
// landline number (9 to 11 digits, leading zero).
func Valid(normalized string) bool {
	if len(normalized) < 9 || len(normalized) > 11 {
		return false
	}
	return strings.HasPrefix(normalized, "0")
}
