// Package session holds the per-learner question state machine. It has no
// I/O; adapters drive it and render what it exposes.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/quiz"
)

var (
	// ErrEmptyDataset is returned when no record is eligible for the mode.
	ErrEmptyDataset = quiz.ErrEmptyDataset

	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current phase.
	ErrInvalidTransition = errors.New("session: invalid transition")

	// ErrChoiceDisabled is returned when a rejected choice is submitted again.
	ErrChoiceDisabled = errors.New("session: choice already rejected")

	// ErrUnknownChoice is returned for a choice that is not on offer.
	ErrUnknownChoice = errors.New("session: unknown choice")
)

// Session tracks one learner working through one dataset.
type Session struct {
	mode    Mode
	rng     quiz.Rand
	all     []dataset.Record
	records []dataset.Record

	phase     Phase
	current   *Question
	lastIndex int
	correct   int
	total     int
	startedAt time.Time
	now       func() time.Time
}

// New creates an idle session. A nil rng uses the global source.
func New(mode Mode, rng quiz.Rand) *Session {
	if rng == nil {
		rng = quiz.DefaultRand
	}
	return &Session{
		mode:      mode,
		rng:       rng,
		phase:     PhaseIdle,
		lastIndex: -1,
		now:       time.Now,
	}
}

// Load replaces the dataset and resets counters. Records not eligible for
// the current mode are filtered out; if none remain the session goes idle
// and ErrEmptyDataset is returned.
func (s *Session) Load(records []dataset.Record) error {
	s.all = records
	return s.reset()
}

// SetMode switches mode and resets counters as a reload would.
func (s *Session) SetMode(m Mode) error {
	s.mode = m
	if s.all == nil {
		return nil
	}
	return s.reset()
}

func (s *Session) reset() error {
	s.records = s.records[:0]
	for _, r := range s.all {
		if s.mode.eligible(r) {
			s.records = append(s.records, r)
		}
	}
	s.current = nil
	s.lastIndex = -1
	s.correct = 0
	s.total = 0
	s.startedAt = s.now()

	if len(s.records) == 0 {
		s.phase = PhaseIdle
		return ErrEmptyDataset
	}
	s.phase = PhaseReady
	return nil
}

// RenderNext picks the next record and builds its question. It is valid in
// Ready and Answered. When choices cannot be built the phase is left
// unchanged and ErrInsufficientDistractors is returned.
func (s *Session) RenderNext() (*Question, error) {
	if s.phase != PhaseReady && s.phase != PhaseAnswered {
		return nil, fmt.Errorf("render next in %s: %w", s.phase, ErrInvalidTransition)
	}
	return s.next()
}

// Skip replaces an unanswered question without scoring it. The skipped
// record is not picked again immediately.
func (s *Session) Skip() (*Question, error) {
	if s.phase != PhaseAwaitingAnswer {
		return nil, fmt.Errorf("skip in %s: %w", s.phase, ErrInvalidTransition)
	}
	prev := s.current
	s.lastIndex = prev.Index
	q, err := s.next()
	if err != nil {
		return prev, err
	}
	return q, nil
}

func (s *Session) next() (*Question, error) {
	idx, err := quiz.PickNext(len(s.records), s.lastIndex, s.rng)
	if err != nil {
		return nil, err
	}
	q := newQuestion(idx, s.records[idx], s.mode)

	switch s.mode {
	case ModeQuiz:
		q.Choices, err = quiz.BuildChoices(s.records, q.Answer, s.rng)
	case ModeEasy:
		q.Choices, err = quiz.BuildChoicesBy(s.records, q.Answer, termOf, s.rng)
	}
	if err != nil {
		return nil, err
	}

	s.current = q
	s.phase = PhaseAwaitingAnswer
	return q, nil
}

func termOf(r dataset.Record) string { return r.Term }

// Submit answers a multiple-choice question. A wrong choice is disabled for
// the rest of the question and counted as an attempt. A correct choice moves
// the session to Answered and scores the question.
func (s *Session) Submit(choice string) (bool, error) {
	if s.phase != PhaseAwaitingAnswer || !s.mode.HasChoices() {
		return false, fmt.Errorf("submit in %s/%s: %w", s.phase, s.mode, ErrInvalidTransition)
	}
	q := s.current
	if !contains(q.Choices, choice) {
		return false, ErrUnknownChoice
	}
	if q.disabled[choice] {
		return false, ErrChoiceDisabled
	}

	if choice != q.Answer {
		q.Attempts++
		q.disabled[choice] = true
		return false, nil
	}
	s.answer()
	return true, nil
}

// SubmitTerm checks a written term against the expected one with MatchTerm
// and records the result for PartTerm.
func (s *Session) SubmitTerm(text string) (bool, error) {
	if s.current == nil {
		return false, fmt.Errorf("submit term in %s: %w", s.phase, ErrInvalidTransition)
	}
	ok := MatchTerm(s.current.Answer, text)
	if _, err := s.SubmitPart(PartTerm, ok); err != nil {
		return false, err
	}
	return ok, nil
}

// SubmitPart records the validation result of one written part. A part that
// was accepted once stays accepted. The question is answered when every
// part has been accepted; the returned bool reports that.
func (s *Session) SubmitPart(p Part, ok bool) (bool, error) {
	if s.phase != PhaseAwaitingAnswer || s.mode.HasChoices() {
		return false, fmt.Errorf("submit %s in %s/%s: %w", p, s.phase, s.mode, ErrInvalidTransition)
	}
	q := s.current
	if !ok {
		if !q.parts[p] {
			q.Attempts++
		}
		return false, nil
	}
	q.parts[p] = true
	if !q.complete() {
		return false, nil
	}
	s.answer()
	return true, nil
}

func (s *Session) answer() {
	s.phase = PhaseAnswered
	s.total++
	s.correct++
	s.lastIndex = s.current.Index
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// Current returns the active question, or nil before the first render.
func (s *Session) Current() *Question { return s.current }

// Attempts returns the wrong submissions made on the active question.
func (s *Session) Attempts() int {
	if s.current == nil {
		return 0
	}
	return s.current.Attempts
}

// Score returns the correct and total counters.
func (s *Session) Score() (correct, total int) { return s.correct, s.total }

// Len returns the number of eligible records.
func (s *Session) Len() int { return len(s.records) }

// LastIndex returns the index that the next pick avoids.
func (s *Session) LastIndex() int { return s.lastIndex }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
