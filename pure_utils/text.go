package pure_utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents removes diacritics: "Région" -> "Region".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// CleanCell trims a cell and collapses inner whitespace runs (including non breaking spaces) to one space.
func CleanCell(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\u00a0' || r == '\u202f'
	}), " ")
}

// NormalizeLabel is the comparison form of a header or name cell: cleaned, upper case, without accents.
func NormalizeLabel(s string) string {
	return strings.ToUpper(FoldAccents(CleanCell(s)))
}

// Slugify turns a display name into a storage key: lower case, accents folded, non alphanumeric
// characters removed.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(FoldAccents(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
