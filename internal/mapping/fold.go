// Package mapping holds the lookup tables that translate the manager's
// spreadsheet spellings into canonical codes and back.
package mapping

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	stateSuffixRe = regexp.MustCompile(`\s*-\s*rs$`)
)

// stripDiacritics decomposes s (NFD) and drops the combining marks.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cityKey is the lookup form of a city spelling: lower-cased, whitespace
// collapsed, "- RS" suffix removed, accents stripped.
func cityKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = stateSuffixRe.ReplaceAllString(s, "")
	return stripDiacritics(strings.TrimSpace(s))
}

func motiveKey(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = whitespaceRe.ReplaceAllString(s, " ")
	return stripDiacritics(s)
}

var nonCodeRe = regexp.MustCompile(`[^A-Z0-9_]+`)

// CityCode derives a canonical city code from a display name:
// "São Leopoldo" becomes SAO_LEOPOLDO.
func CityCode(name string) string {
	s := strings.ToUpper(stripDiacritics(strings.TrimSpace(name)))
	s = whitespaceRe.ReplaceAllString(s, "_")
	s = nonCodeRe.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}
