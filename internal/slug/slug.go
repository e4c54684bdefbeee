// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	separators = regexp.MustCompile(`[\s-]+`)
)

// Make turns text into a lowercase, hyphenated slug. Accents are folded to
// their base letter and every other non-alphanumeric character is dropped,
// so distinct inputs may share a slug ("Go!" and "Go?" are both "go").
// Hyphens count as word separators, which keeps Make(Make(s)) == Make(s).
// Make never fails; empty input yields "".
func Make(text string) string {
	if text == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)))
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	stripped = disallowed.ReplaceAllString(stripped, "")
	stripped = separators.ReplaceAllString(stripped, " ")
	stripped = strings.TrimSpace(stripped)
	return strings.ToLower(strings.ReplaceAll(stripped, " ", "-"))
}
