package dataset

import (
	"regexp"
	"strings"
)

var (
	triadIndex    = regexp.MustCompile(`^\d+[.\x{3002}\x{FF0E}\x{3001}\x{FF61}]?\s*(.+)$`)
	parenthesized = regexp.MustCompile(`^[(（](.+)[)）]$`)
)

// ParseTriads builds items from numbered three-line groups: term, then
// pronunciation (optionally parenthesized), then translation. Blank lines
// between the parts are ignored. After an accepted triad the scan resumes
// past its translation line; an index line that does not complete a triad
// is counted as dropped and the scan moves on by one line.
func ParseTriads(text string) Dataset {
	lines := splitLines(text)
	for i := range lines {
		lines[i] = trimLine(lines[i])
	}

	nextNonEmpty := func(start int) (int, string) {
		for j := start; j < len(lines); j++ {
			if lines[j] != "" {
				return j, lines[j]
			}
		}
		return len(lines), ""
	}

	var (
		items  []SpeakingItem
		report Report
	)
	for i := 0; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		m := triadIndex.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		report.Input++

		term := strings.TrimSpace(m[1])
		pi, pron := nextNonEmpty(i + 1)
		ti, translation := nextNonEmpty(pi + 1)
		if pm := parenthesized.FindStringSubmatch(pron); pm != nil {
			pron = strings.TrimSpace(pm[1])
		}

		if term == "" || pron == "" || translation == "" {
			report.Dropped++
			continue
		}
		items = append(items, SpeakingItem{Term: term, Pronunciation: pron, Translation: translation})
		i = ti
	}
	report.Parsed = len(items)
	return fromItems(KindTranslationTriad, items, report)
}
