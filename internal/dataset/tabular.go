package dataset

import "strings"

// ParseTabular tokenizes comma-separated text and builds records from it.
// A leading byte order mark is ignored.
func ParseTabular(text string) Dataset {
	return BuildTabular(Tokenize(strings.TrimPrefix(text, "\ufeff")))
}

// BuildTabular builds records from tokenized rows. The first row is the
// header. Data rows with an empty term are dropped; missing cells read as
// empty strings. A header without a term column yields no records.
func BuildTabular(rows [][]string) Dataset {
	ds := Dataset{Kind: KindTabular, Records: []Record{}}
	if len(rows) == 0 {
		return ds
	}

	cols := ResolveHeaders(rows[0])
	data := rows[1:]
	ds.Report.Input = len(data)
	if !cols.Valid() {
		ds.Report.Dropped = len(data)
		return ds
	}

	for _, row := range data {
		rec := Record{
			Term:                 cell(row, cols.Term),
			Pronunciation:        cell(row, cols.Pronunciation),
			Meaning:              cell(row, cols.Meaning),
			ExampleTerm:          cell(row, cols.ExampleTerm),
			ExamplePronunciation: cell(row, cols.ExamplePronunciation),
			ExampleTranslation:   cell(row, cols.ExampleTranslation),
		}
		if rec.Term == "" {
			ds.Report.Dropped++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	ds.Report.Parsed = len(ds.Records)
	return ds
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
