// Package grammar parses grammar notes into parts, subsections and
// flashcards.
package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTitle names the single part produced for notes without structure.
const DefaultTitle = "Nội dung"

// Part is a top-level heading such as "PHẦN 1: ..." or "Bài 16".
type Part struct {
	Title string
	Subs  []Subsection
}

// Subsection is a numbered item within a part, with its raw body lines.
type Subsection struct {
	Title string
	Lines []string
}

var numbered = regexp.MustCompile(`^\s*(\d+)\.\s*(.*)`)

func partPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `\s*(\d+)[:：\s]*(.*)`)
}

// ParseSections splits notes into parts introduced by label followed by a
// number, and numbered subsections ("1. ..."). Lines before the first part
// heading go to an implicit part; text with no lines at all becomes a single
// DefaultTitle part.
func ParseSections(text, label string) []Part {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.ReplaceAll(l, "\u00a0", " ")
	}

	var partRe *regexp.Regexp
	if label != "" {
		partRe = partPattern(label)
	}

	var (
		parts []Part
		cur   *Part
		sub   *Subsection
	)
	flushSub := func() {
		if sub != nil {
			cur.Subs = append(cur.Subs, *sub)
			sub = nil
		}
	}
	flushPart := func() {
		if cur != nil {
			flushSub()
			parts = append(parts, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		if partRe != nil && partRe.MatchString(line) {
			flushPart()
			cur = &Part{Title: strings.TrimSpace(line)}
			continue
		}
		if m := numbered.FindStringSubmatch(line); m != nil {
			if cur == nil {
				cur = &Part{Title: fmt.Sprintf("%s 1", label)}
			}
			flushSub()
			sub = &Subsection{Title: m[1] + ". " + m[2]}
			continue
		}
		if cur == nil {
			cur = &Part{Title: DefaultTitle}
		}
		if sub == nil {
			sub = &Subsection{}
		}
		sub.Lines = append(sub.Lines, line)
	}
	flushPart()

	if len(parts) == 0 {
		parts = append(parts, Part{
			Title: DefaultTitle,
			Subs:  []Subsection{{Lines: lines}},
		})
	}
	return parts
}

// BlockKind distinguishes prose from example lists.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockExample
)

// Block is a renderable chunk of a subsection body.
type Block struct {
	Kind BlockKind

	// Text is the joined paragraph, or the Chinese part of an example.
	Text string

	// Translation is set for examples written as "中文 (bản dịch)".
	Translation string
}

var (
	bullet      = regexp.MustCompile(`^\s*[•◦*\-]`)
	bulletTrim  = regexp.MustCompile(`^\s*[•◦*\-]\s*`)
	exampleLine = regexp.MustCompile(`^(.*?)\s*\((.*?)\)\s*$`)
)

// Blocks groups the body by blank lines. A group whose lines are all
// bulleted yields one example block per line; any other group is joined
// into one paragraph.
func (s Subsection) Blocks() []Block {
	var (
		groups [][]string
		cur    []string
	)
	for _, l := range s.Lines {
		if strings.TrimSpace(l) == "" {
			if len(cur) > 0 {
				groups = append(groups, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}

	var blocks []Block
	for _, g := range groups {
		if !allBulleted(g) {
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.Join(g, " ")})
			continue
		}
		for _, l := range g {
			cleaned := strings.TrimSpace(bulletTrim.ReplaceAllString(l, ""))
			b := Block{Kind: BlockExample, Text: cleaned}
			if m := exampleLine.FindStringSubmatch(cleaned); m != nil {
				b.Text = strings.TrimSpace(m[1])
				b.Translation = strings.TrimSpace(m[2])
			}
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func allBulleted(lines []string) bool {
	for _, l := range lines {
		if !bullet.MatchString(l) {
			return false
		}
	}
	return true
}

// Text returns the subsection title and body as plain text.
func (s Subsection) Text() string {
	var b strings.Builder
	b.WriteString(s.Title)
	for _, l := range s.Lines {
		b.WriteByte('\n')
		b.WriteString(l)
	}
	return b.String()
}
