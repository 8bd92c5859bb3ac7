package dealer

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout marks a read or write that ran past the configured timeout.
	ErrTimeout = errors.New("timed out")

	// ErrCardMismatch is returned when a player echoes a card it was not dealt.
	ErrCardMismatch = errors.New("echoed card does not match dealt card")

	// ErrPlayerCount is returned for a table outside 1..game.MaxPlayers.
	ErrPlayerCount = errors.New("invalid number of players")
)

// SetupError is returned when the table cannot be seated. Nothing has been
// dealt when it happens.
type SetupError struct {
	PlayerID int
	Err      error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("seat player %d: %v", e.PlayerID, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ProtocolError describes an exchange with one player that failed mid-game.
// The player is forced out; the game goes on.
type ProtocolError struct {
	PlayerID int
	Round    int
	Op       string
	Err      error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("player %d round %d: %s: %v", e.PlayerID, e.Round, e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
