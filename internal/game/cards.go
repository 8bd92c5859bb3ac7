package game

import (
	"math"
	"strconv"
)

const (
	// FigureCard is the value of every face card.
	FigureCard Card = 0.5

	// MinPip and MaxPip bound the numbered cards.
	MinPip = 1
	MaxPip = 7

	// MaxScore is the highest total a player can hold without busting.
	MaxScore = 7.5

	// Rounds is the dealing budget: no player is ever dealt more cards.
	Rounds = 3

	// MaxPlayers caps the table size.
	MaxPlayers = 10

	// figureOdds out of ten draws produce a figure card.
	figureOdds = 3
)

// Card is the strength of a dealt card. It travels as a float32.
type Card float32

// Valid reports whether c is a figure or a whole number between MinPip and MaxPip.
func (c Card) Valid() bool {
	if c == FigureCard {
		return true
	}
	f := float64(c)
	return f >= MinPip && f <= MaxPip && f == math.Trunc(f)
}

// IsFigure reports whether c is a face card.
func (c Card) IsFigure() bool {
	return c == FigureCard
}

func (c Card) String() string {
	return strconv.FormatFloat(float64(c), 'f', 1, 32)
}

// FormatScore renders a score the way cards are rendered.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
