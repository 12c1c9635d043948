package session

import (
	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/quiz"
)

// Drill walks through speaking items for read-aloud practice. It moves
// sequentially with wrap-around, or randomly without immediate repeats.
type Drill struct {
	items  []dataset.SpeakingItem
	index  int
	random bool
	rng    quiz.Rand
}

// NewDrill starts a sequential drill at the first item.
func NewDrill(items []dataset.SpeakingItem, rng quiz.Rand) (*Drill, error) {
	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}
	if rng == nil {
		rng = quiz.DefaultRand
	}
	return &Drill{items: items, rng: rng}, nil
}

// Current returns the item under the cursor.
func (d *Drill) Current() dataset.SpeakingItem {
	return d.items[d.index]
}

// Position returns the 1-based cursor position and the item count.
func (d *Drill) Position() (int, int) {
	return d.index + 1, len(d.items)
}

// Next advances the cursor.
func (d *Drill) Next() dataset.SpeakingItem {
	if d.random {
		d.index, _ = quiz.PickNext(len(d.items), d.index, d.rng)
	} else {
		d.index = (d.index + 1) % len(d.items)
	}
	return d.Current()
}

// Prev moves the cursor back one item, wrapping to the end.
func (d *Drill) Prev() dataset.SpeakingItem {
	d.index = (d.index - 1 + len(d.items)) % len(d.items)
	return d.Current()
}

// ToggleRandom flips between sequential and random order and reports the
// new setting.
func (d *Drill) ToggleRandom() bool {
	d.random = !d.random
	return d.random
}

// Random reports whether the drill is in random order.
func (d *Drill) Random() bool {
	return d.random
}
