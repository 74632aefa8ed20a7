package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD, drops combining marks, recomposes.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize case-folds, strips diacritics and collapses all whitespace
// runs to single spaces. OCR output is noisy about both case and
// accents, so matching happens entirely in this normalized space.
func Normalize(s string) string {
	s = strings.ToLower(s)

	if out, _, err := transform.String(stripDiacritics, s); err == nil {
		s = out
	}

	return strings.Join(strings.Fields(s), " ")
}
