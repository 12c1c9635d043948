package grammar

import (
	"regexp"
	"strings"
)

// Card is a flashcard: a Chinese phrase and its translation.
type Card struct {
	Front string
	Back  string
}

var cardPattern = regexp.MustCompile(`([\x{4e00}-\x{9fff}\x{3400}-\x{4dbf}\s，。！？、a-zA-Z0-9]+?)\s*\(([^)]+)\)`)

// ExtractCards finds every "中文 (translation)" pair in text, in order.
func ExtractCards(text string) []Card {
	var cards []Card
	for _, m := range cardPattern.FindAllStringSubmatch(text, -1) {
		front := strings.TrimSpace(m[1])
		back := strings.TrimSpace(m[2])
		if front != "" && back != "" {
			cards = append(cards, Card{Front: front, Back: back})
		}
	}
	return cards
}

// Deck is a cursor over cards with a flip state.
type Deck struct {
	cards   []Card
	index   int
	flipped bool
}

// NewDeck creates a deck positioned at the first card.
func NewDeck(cards []Card) *Deck {
	return &Deck{cards: cards}
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Current returns the card under the cursor. ok is false for an empty deck.
func (d *Deck) Current() (c Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[d.index], true
}

// Index returns the zero-based cursor position.
func (d *Deck) Index() int { return d.index }

// Flipped reports whether the back of the current card is shown.
func (d *Deck) Flipped() bool { return d.flipped }

// Flip toggles the back of the current card.
func (d *Deck) Flip() { d.flipped = !d.flipped }

// Next moves to the following card, wrapping, and hides the back.
func (d *Deck) Next() {
	if len(d.cards) == 0 {
		return
	}
	d.index = (d.index + 1) % len(d.cards)
	d.flipped = false
}

// Prev moves to the preceding card, wrapping, and hides the back.
func (d *Deck) Prev() {
	if len(d.cards) == 0 {
		return
	}
	d.index = (d.index - 1 + len(d.cards)) % len(d.cards)
	d.flipped = false
}
