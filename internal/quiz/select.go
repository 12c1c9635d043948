// Package quiz picks the next question and builds its answer choices.
package quiz

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/hanzidrill/internal/dataset"
)

// ChoiceCount is the number of options shown for a question.
const ChoiceCount = 4

var (
	// ErrEmptyDataset is returned when there is nothing to pick from.
	ErrEmptyDataset = errors.New("quiz: dataset has no quizzable records")

	// ErrInsufficientDistractors is returned when fewer than three distinct
	// alternatives exist for a question.
	ErrInsufficientDistractors = errors.New("quiz: need at least 4 distinct answers")
)

// Rand is the randomness the engine needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the math/rand/v2 global source.
var DefaultRand Rand = globalRand{}

// PickNext chooses an index in [0, n). When n > 1 it never returns last.
// Draws are uniform over the n-1 allowed indices. Only the immediately
// preceding index is avoided.
func PickNext(n, last int, rng Rand) (int, error) {
	switch {
	case n <= 0:
		return -1, ErrEmptyDataset
	case n == 1:
		return 0, nil
	}
	if rng == nil {
		rng = DefaultRand
	}
	i := rng.IntN(n)
	if i == last {
		i = (i + 1 + rng.IntN(n-1)) % n
	}
	return i, nil
}

// BuildChoices returns four shuffled pronunciations: correct once plus three
// distinct distractors taken from the other records.
func BuildChoices(records []dataset.Record, correct string, rng Rand) ([]string, error) {
	return BuildChoicesBy(records, correct, func(r dataset.Record) string { return r.Pronunciation }, rng)
}

// BuildChoicesBy is BuildChoices over an arbitrary record field. Candidate
// values are trimmed; empty values and values equal to correct are never
// distractors.
func BuildChoicesBy(records []dataset.Record, correct string, key func(dataset.Record) string, rng Rand) ([]string, error) {
	if rng == nil {
		rng = DefaultRand
	}
	correct = strings.TrimSpace(correct)

	seen := map[string]bool{correct: true}
	var pool []string
	for _, r := range records {
		v := strings.TrimSpace(key(r))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		pool = append(pool, v)
	}
	if len(pool) < ChoiceCount-1 {
		return nil, ErrInsufficientDistractors
	}

	shuffle(pool, rng)
	choices := append(pool[:ChoiceCount-1:ChoiceCount-1], correct)
	shuffle(choices, rng)
	return choices, nil
}

// shuffle is a Fisher-Yates shuffle driven by rng.
func shuffle(s []string, rng Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
