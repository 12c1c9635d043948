package session

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MatchTerm compares a written term with the expected one, ignoring
// whitespace, punctuation, letter case and full-width forms.
func MatchTerm(want, got string) bool {
	w := foldTerm(want)
	return w != "" && w == foldTerm(got)
}

func foldTerm(s string) string {
	s = width.Narrow.String(norm.NFC.String(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
