package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader canonicalizes a header cell for schema matching:
// lowercase, diacritics stripped, every run of characters outside
// [a-z0-9_] replaced with a single underscore, and leading/trailing
// underscores trimmed.
//
// Runes listed in extra survive both the diacritic stripping and the
// underscore replacement, so a schema can declare e.g. "ñ" as significant.
func NormalizeHeader(h, extra string) string {
	s := stripDiacritics(strings.ToLower(strings.TrimSpace(h)), extra)

	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, r := range s {
		keep := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') ||
			strings.ContainsRune(extra, r)
		if !keep {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}

	return strings.Trim(b.String(), "_")
}

// stripDiacritics removes combining marks after NFD decomposition.
// Runes in keep are passed through without decomposition, so characters
// like 'ñ' are not reduced to their base letter.
func stripDiacritics(s, keep string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if keep != "" && strings.ContainsRune(keep, r) {
			b.WriteRune(r)
			continue
		}
		for _, dr := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, dr) {
				continue
			}
			b.WriteRune(dr)
		}
	}

	return b.String()
}
