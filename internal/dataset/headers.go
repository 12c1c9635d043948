package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Columns holds the resolved column index for each semantic role. A role
// that is absent from the header resolves to -1.
type Columns struct {
	Term                 int
	Pronunciation        int
	Meaning              int
	ExampleTerm          int
	ExamplePronunciation int
	ExampleTranslation   int
}

// Valid reports whether the header names a term column.
func (c Columns) Valid() bool {
	return c.Term >= 0
}

const (
	roleNone = iota
	roleTerm
	rolePronunciation
	roleMeaning
	roleExample
	roleTranslation
)

// headerAliases maps a normalized header name to its role. Vietnamese names
// come first; the English dialect is accepted for sheets without them.
var headerAliases = map[string]int{
	"tu moi":        roleTerm,
	"hanzi":         roleTerm,
	"word":          roleTerm,
	"term":          roleTerm,
	"phien am":      rolePronunciation,
	"pinyin":        rolePronunciation,
	"pronunciation": rolePronunciation,
	"giai thich":    roleMeaning,
	"meaning":       roleMeaning,
	"explanation":   roleMeaning,
	"dich":          roleTranslation,
	"translation":   roleTranslation,
}

var examplePrefixes = []string{"vi du", "example"}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader lowercases a header cell, strips diacritics, collapses
// internal whitespace and trims it. "Phiên  Âm " becomes "phien am".
func NormalizeHeader(s string) string {
	s = strings.ToLower(s)
	folded, _, err := transform.String(foldMarks, s)
	if err == nil {
		s = folded
	}
	s = strings.Map(func(r rune) rune {
		if r == 'đ' {
			return 'd'
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func headerRole(name string) int {
	if role, ok := headerAliases[name]; ok {
		return role
	}
	for _, p := range examplePrefixes {
		if strings.HasPrefix(name, p) {
			return roleExample
		}
	}
	return roleNone
}

// ResolveHeaders maps header cells to column roles. The first pronunciation
// column belongs to the term. When several pronunciation columns exist, the
// example pronunciation is the first one to the right of the example column,
// or the last one when no such column exists.
func ResolveHeaders(header []string) Columns {
	cols := Columns{-1, -1, -1, -1, -1, -1}
	var pron []int

	for i, cell := range header {
		switch headerRole(NormalizeHeader(cell)) {
		case roleTerm:
			if cols.Term < 0 {
				cols.Term = i
			}
		case rolePronunciation:
			pron = append(pron, i)
		case roleMeaning:
			if cols.Meaning < 0 {
				cols.Meaning = i
			}
		case roleExample:
			if cols.ExampleTerm < 0 {
				cols.ExampleTerm = i
			}
		case roleTranslation:
			if cols.ExampleTranslation < 0 {
				cols.ExampleTranslation = i
			}
		}
	}

	if len(pron) > 0 {
		cols.Pronunciation = pron[0]
	}
	if len(pron) > 1 {
		cols.ExamplePronunciation = pron[len(pron)-1]
		for _, p := range pron[1:] {
			if p > cols.ExampleTerm && cols.ExampleTerm >= 0 {
				cols.ExamplePronunciation = p
				break
			}
		}
	}
	return cols
}
