package session

import (
	"fmt"
	"strings"

	"github.com/abhisek/hanzidrill/internal/dataset"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle           Phase = iota // No dataset loaded
	PhaseReady                       // Dataset loaded, no question shown
	PhaseAwaitingAnswer              // Question shown, zero or more wrong attempts
	PhaseAnswered                    // Correct answer confirmed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswered:
		return "answered"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Mode selects what is prompted and what the learner has to produce.
type Mode int

const (
	ModeQuiz        Mode = iota // Prompt term, choose pronunciation
	ModeEasy                    // Prompt meaning, choose term
	ModeHard                    // Prompt meaning and pronunciation, write term and a sentence
	ModeTranslation             // Prompt translation, write the Chinese and a sentence
)

var modeNames = map[Mode]string{
	ModeQuiz:        "quiz",
	ModeEasy:        "easy",
	ModeHard:        "hard",
	ModeTranslation: "translation",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// HasChoices reports whether questions in this mode are multiple choice.
func (m Mode) HasChoices() bool {
	return m == ModeQuiz || m == ModeEasy
}

// ParseMode maps a mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// eligible reports whether a record can be asked in mode m.
func (m Mode) eligible(r dataset.Record) bool {
	switch m {
	case ModeEasy, ModeHard, ModeTranslation:
		return r.Quizzable() && strings.TrimSpace(r.Meaning) != ""
	default:
		return r.Quizzable()
	}
}

// Part is one independently validated piece of a written answer.
type Part int

const (
	PartTerm     Part = iota // Writing the term itself
	PartSentence             // Writing a sentence that uses the term
)

func (p Part) String() string {
	if p == PartTerm {
		return "term"
	}
	return "sentence"
}

// Question is the active prompt. It is owned by the session and mutated
// only through Session methods.
type Question struct {
	// Index is the position of Record in the session's eligible records.
	Index  int
	Record dataset.Record
	Mode   Mode

	// Prompt is the primary text shown to the learner; Secondary is an
	// optional second line (the pronunciation in hard mode).
	Prompt    string
	Secondary string

	// Answer is the expected choice or term.
	Answer string

	// Choices is set in choice modes.
	Choices []string

	// Attempts counts wrong submissions for this question.
	Attempts int

	disabled map[string]bool
	parts    map[Part]bool
}

// Disabled reports whether a choice was already rejected.
func (q *Question) Disabled(choice string) bool {
	return q.disabled[choice]
}

// Available returns the choices that can still be submitted.
func (q *Question) Available() []string {
	out := make([]string, 0, len(q.Choices))
	for _, c := range q.Choices {
		if !q.disabled[c] {
			out = append(out, c)
		}
	}
	return out
}

// PartDone reports whether a written part has been accepted.
func (q *Question) PartDone(p Part) bool {
	return q.parts[p]
}

// Parts lists the parts required in written modes.
func (q *Question) Parts() []Part {
	if q.Mode.HasChoices() {
		return nil
	}
	return []Part{PartTerm, PartSentence}
}

func (q *Question) complete() bool {
	for _, p := range q.Parts() {
		if !q.parts[p] {
			return false
		}
	}
	return true
}

func newQuestion(idx int, r dataset.Record, mode Mode) *Question {
	q := &Question{
		Index:    idx,
		Record:   r,
		Mode:     mode,
		disabled: make(map[string]bool),
		parts:    make(map[Part]bool),
	}
	switch mode {
	case ModeQuiz:
		q.Prompt = r.Term
		q.Answer = strings.TrimSpace(r.Pronunciation)
	case ModeEasy:
		q.Prompt = r.Meaning
		q.Answer = strings.TrimSpace(r.Term)
	case ModeHard:
		q.Prompt = r.Meaning
		q.Secondary = r.Pronunciation
		q.Answer = r.Term
	case ModeTranslation:
		q.Prompt = r.Meaning
		q.Answer = r.Term
	}
	return q
}
