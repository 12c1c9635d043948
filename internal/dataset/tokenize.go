package dataset

import "strings"

// Tokenize splits comma-separated text into rows of raw fields.
//
// Fields may be wrapped in double quotes to carry commas and newlines; a
// doubled quote inside a quoted field is a literal quote. A quote seen
// outside a quoted field switches into quoted mode even mid-field. Carriage
// returns are dropped, an unterminated quote runs to end of input, and rows
// whose fields are all blank are discarded. Tokenize never fails.
func Tokenize(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
				continue
			}
			field.WriteRune(c)
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\n':
			endRow()
		case '\r':
		default:
			field.WriteRune(c)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	out := rows[:0]
	for _, r := range rows {
		if !blankRow(r) {
			out = append(out, r)
		}
	}
	return out
}

func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
