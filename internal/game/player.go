package game

import (
	"errors"
	"fmt"
)

var (
	// ErrPlayerFinished is returned when a card reaches a player that already stood or busted.
	ErrPlayerFinished = errors.New("player already finished")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Player is the dealer's record of one seat.
type Player struct {
	ID     int
	Score  float64
	Status Status
	Cards  []Card
}

// NewPlayer seats a player with an empty hand.
func NewPlayer(id int) *Player {
	return &Player{ID: id, Status: Playing}
}

// Accept records a delivered card and the decision the player answered with.
// Going over MaxScore busts the player whatever the decision said.
func (p *Player) Accept(card Card, decision Status) error {
	if p.Status.Terminal() {
		return fmt.Errorf("player %d: %w", p.ID, ErrPlayerFinished)
	}
	if !decision.Valid() {
		return fmt.Errorf("player %d: %w: %d", p.ID, ErrInvalidStatus, decision)
	}

	p.Cards = append(p.Cards, card)
	p.Score += float64(card)

	if p.Score > MaxScore {
		p.Status = Busted
		return nil
	}
	p.Status = decision
	return nil
}

// Finish forces a terminal status on a player still in the hand.
// It reports whether the status changed.
func (p *Player) Finish(status Status) bool {
	if p.Status.Terminal() || !status.Terminal() {
		return false
	}
	p.Status = status
	return true
}

// IsActive returns true if the player can still be dealt a card
func (p *Player) IsActive() bool {
	return p.Status == Playing && len(p.Cards) < Rounds
}

// Qualifies reports whether the player can win the table.
func (p *Player) Qualifies() bool {
	return p.Status == Standing && p.Score <= MaxScore
}

// Clone returns a copy that shares nothing with p.
func (p *Player) Clone() Player {
	c := *p
	c.Cards = append([]Card(nil), p.Cards...)
	return c
}

func (p *Player) String() string {
	return fmt.Sprintf("player %d (%s, %s)", p.ID, FormatScore(p.Score), p.Status)
}
