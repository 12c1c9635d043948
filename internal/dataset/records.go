package dataset

import "strings"

// Kind identifies the text dialect a dataset was built from.
type Kind string

const (
	KindTabular          Kind = "tabular"
	KindSpeakingLine     Kind = "speaking"
	KindTranslationTriad Kind = "translation"
	KindGrammar          Kind = "grammar"
)

// Record is one vocabulary entry. Only Term is guaranteed non-empty.
type Record struct {
	Term                 string `json:"term" yaml:"term"`
	Pronunciation        string `json:"pronunciation" yaml:"pronunciation"`
	Meaning              string `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	ExampleTerm          string `json:"example_term,omitempty" yaml:"example_term,omitempty"`
	ExamplePronunciation string `json:"example_pronunciation,omitempty" yaml:"example_pronunciation,omitempty"`
	ExampleTranslation   string `json:"example_translation,omitempty" yaml:"example_translation,omitempty"`
}

// Quizzable reports whether the record can be the answer of a pronunciation
// question.
func (r Record) Quizzable() bool {
	return strings.TrimSpace(r.Term) != "" && strings.TrimSpace(r.Pronunciation) != ""
}

// SpeakingItem is a sentence with its pronunciation and, for triads, a
// translation.
type SpeakingItem struct {
	Term          string `json:"term"`
	Pronunciation string `json:"pronunciation"`
	Translation   string `json:"translation,omitempty"`
}

// ToRecord converts the item into the canonical record shape. The
// translation becomes the record meaning.
func (s SpeakingItem) ToRecord() Record {
	return Record{
		Term:          s.Term,
		Pronunciation: s.Pronunciation,
		Meaning:       s.Translation,
	}
}

// Report counts what a builder consumed. Input is the number of candidate
// rows or index lines seen, Dropped those that produced no record.
type Report struct {
	Input   int `json:"input"`
	Parsed  int `json:"parsed"`
	Dropped int `json:"dropped"`
}

// Dataset is the result of building records from one source.
type Dataset struct {
	Kind    Kind           `json:"kind"`
	Records []Record       `json:"records"`
	Items   []SpeakingItem `json:"items,omitempty"`
	Report  Report         `json:"report"`
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Quizzable returns the records eligible as quiz answers, in order.
func (d Dataset) Quizzable() []Record {
	out := make([]Record, 0, len(d.Records))
	for _, r := range d.Records {
		if r.Quizzable() {
			out = append(out, r)
		}
	}
	return out
}

func fromItems(kind Kind, items []SpeakingItem, report Report) Dataset {
	records := make([]Record, len(items))
	for i, it := range items {
		records[i] = it.ToRecord()
	}
	return Dataset{Kind: kind, Records: records, Items: items, Report: report}
}
