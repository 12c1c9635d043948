package dataset

import (
	"regexp"
	"strings"
	"unicode"
)

const toneLetters = "A-Za-zāáǎàēéěèīíǐìōóǒòūúǔùǖǘǚǜüÜĀÁǍÀĒÉĚÈĪÍǏÌŌÓǑÒŪÚǓÙǕǗǙǛ"

// speakingLine matches "<n>. <term> <pronunciation>". The term is the
// shortest prefix after which only romanized text remains.
var speakingLine = regexp.MustCompile(
	`^\d+\.\s+(.+?)\s+([` + toneLetters + `\s'’\-\?\!\.,;:？！。，、；：“”‘’"（）【】《》]+?)\s*$`,
)

// cjkPunct is removed from pronunciations wherever it appears.
const cjkPunct = "？?！。，、；：“”‘’\"（）【】《》"

// ParseSpeaking builds items from numbered "term pronunciation" lines.
// Lines that do not match are counted as dropped.
func ParseSpeaking(text string) Dataset {
	var (
		items  []SpeakingItem
		report Report
	)
	for _, line := range splitLines(text) {
		line = trimLine(line)
		if line == "" {
			continue
		}
		report.Input++

		m := speakingLine.FindStringSubmatch(line)
		if m == nil {
			report.Dropped++
			continue
		}
		item := SpeakingItem{
			Term:          cleanTerm(m[1]),
			Pronunciation: cleanPronunciation(m[2]),
		}
		if item.Term == "" || item.Pronunciation == "" {
			report.Dropped++
			continue
		}
		items = append(items, item)
	}
	report.Parsed = len(items)
	return fromItems(KindSpeakingLine, items, report)
}

// cleanTerm keeps Han characters, CJK and full-width punctuation, digits and
// whitespace.
func cleanTerm(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(unicode.Han, r),
			unicode.IsDigit(r),
			unicode.IsSpace(r),
			r >= 0x3000 && r <= 0x303f,
			r >= 0xff00 && r <= 0xffef:
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}

// cleanPronunciation drops CJK punctuation and trailing sentence
// punctuation, keeping apostrophes and hyphens inside words.
func cleanPronunciation(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(cjkPunct, r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimRight(s, " \t.,;:!")
	return strings.Join(strings.Fields(s), " ")
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func trimLine(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "\ufeff"))
}
