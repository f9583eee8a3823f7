// Package deck deals prompt and response cards from session-scoped,
// reshuffling draw piles.
package deck

import (
	"fmt"
	"slices"

	"github.com/luca-patrignani/cards-against/domain/card"
)

// pile holds the fixed pool of one kind and its draw pile.
type pile struct {
	original  []card.Card
	remaining []card.Card
}

// Deck is the session-scoped card manager. It is not safe for concurrent
// use: the game's control goroutine is its only caller.
type Deck struct {
	piles map[card.Kind]*pile
	intn  func(n int) int
}

// Option configures a Deck.
type Option func(Deck) Deck

// WithIntn replaces the randomness used by the shuffle. intn(n) must
// return a uniformly distributed integer in [0, n).
func WithIntn(intn func(n int) int) Option {
	return func(d Deck) Deck {
		d.intn = intn
		return d
	}
}

// New builds a deck from the catalog cards, partitioned by kind. Both
// draw piles start shuffled.
func New(cards []card.Card, opts ...Option) *Deck {
	d := Deck{piles: make(map[card.Kind]*pile, 2)}
	for _, opt := range opts {
		d = opt(d)
	}
	if d.intn == nil {
		d.intn = streamIntn(suite.RandomStream())
	}
	prompts, responses := card.Partition(cards)
	d.piles[card.Prompt] = &pile{original: prompts}
	d.piles[card.Response] = &pile{original: responses}
	for _, p := range d.piles {
		d.refill(p)
	}
	return &d
}

// Draw pops count cards of the given kind from the end of the draw pile.
// When the pile runs out in the middle of a draw it is refilled from the
// full pool in a fresh random order and drawing continues.
//
// Draw panics if count is negative or larger than the pool: asking for
// more cards than exist is a programming error.
func (d *Deck) Draw(kind card.Kind, count int) []card.Card {
	p, ok := d.piles[kind]
	if !ok {
		panic(fmt.Sprintf("deck: unknown card kind %q", string(kind)))
	}
	if count < 0 || count > len(p.original) {
		panic(fmt.Sprintf("deck: cannot draw %d %s cards from a pool of %d", count, kind, len(p.original)))
	}
	drawn := make([]card.Card, 0, count)
	for range count {
		if len(p.remaining) == 0 {
			d.refill(p)
		}
		last := len(p.remaining) - 1
		drawn = append(drawn, p.remaining[last])
		p.remaining = p.remaining[:last]
	}
	return drawn
}

// Size returns the number of cards of a kind in the full pool.
func (d *Deck) Size(kind card.Kind) int {
	if p, ok := d.piles[kind]; ok {
		return len(p.original)
	}
	return 0
}

// Remaining returns the number of cards of a kind left before a reshuffle.
func (d *Deck) Remaining(kind card.Kind) int {
	if p, ok := d.piles[kind]; ok {
		return len(p.remaining)
	}
	return 0
}

func (d *Deck) refill(p *pile) {
	p.remaining = slices.Clone(p.original)
	shuffle(p.remaining, d.intn)
}
