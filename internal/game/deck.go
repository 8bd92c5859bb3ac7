package game

import rand "math/rand/v2"

// Deck hands out cards to the dealer. Cards are drawn with replacement.
type Deck interface {
	Draw() Card
}

// RandomDeck draws a figure three times in ten and a uniform 1..7 otherwise.
type RandomDeck struct {
	rng *rand.Rand
}

// NewRandomDeck creates a deck backed by rng.
func NewRandomDeck(rng *rand.Rand) *RandomDeck {
	return &RandomDeck{rng: rng}
}

// Draw returns the next card.
func (d *RandomDeck) Draw() Card {
	if d.rng.IntN(10) < figureOdds {
		return FigureCard
	}
	return Card(MinPip + d.rng.IntN(MaxPip-MinPip+1))
}

// StackedDeck deals a fixed sequence of cards, then figures once it runs dry.
type StackedDeck struct {
	cards []Card
	next  int
}

// NewStackedDeck creates a deck that deals cards in order.
func NewStackedDeck(cards ...Card) *StackedDeck {
	return &StackedDeck{cards: cards}
}

// Draw returns the next stacked card.
func (d *StackedDeck) Draw() Card {
	if d.next >= len(d.cards) {
		return FigureCard
	}
	c := d.cards[d.next]
	d.next++
	return c
}

// Remaining returns how many stacked cards have not been dealt.
func (d *StackedDeck) Remaining() int {
	return len(d.cards) - d.next
}
