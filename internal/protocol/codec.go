// Package protocol defines the fixed-size frames exchanged between the dealer
// and a player actor.
//
// A card frame is four bytes holding a little-endian IEEE-754 float32. A
// decision frame is DecisionSize bytes holding one of the tokens "jugando",
// "plantado" or "abandonado", padded with NUL bytes. Frames carry no length or
// type prefix: each side knows what it expects next.
package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/lox/sevenandahalf/internal/game"
)

const (
	// CardSize is the width of a card frame.
	CardSize = 4

	// DecisionSize is the width of a decision frame.
	DecisionSize = 16
)

// Decision tokens as they appear on the wire.
const (
	TokenPlaying  = "jugando"
	TokenStanding = "plantado"
	TokenBusted   = "abandonado"
)

var (
	ErrMalformedDecision = errors.New("malformed decision")
	ErrInvalidCard       = errors.New("invalid card")
)

// Token returns the wire token for a status.
func Token(s game.Status) (string, error) {
	switch s {
	case game.Playing:
		return TokenPlaying, nil
	case game.Standing:
		return TokenStanding, nil
	case game.Busted:
		return TokenBusted, nil
	default:
		return "", fmt.Errorf("%w: status %d has no token", ErrMalformedDecision, s)
	}
}

// ParseToken maps a wire token back to a status.
func ParseToken(token string) (game.Status, error) {
	switch token {
	case TokenPlaying:
		return game.Playing, nil
	case TokenStanding:
		return game.Standing, nil
	case TokenBusted:
		return game.Busted, nil
	default:
		return 0, fmt.Errorf("%w: unknown token %q", ErrMalformedDecision, token)
	}
}

// EncodeCard packs a card into a frame.
func EncodeCard(c game.Card) [CardSize]byte {
	var buf [CardSize]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(c)))
	return buf
}

// DecodeCard unpacks a card frame and checks the value is one the deck can produce.
func DecodeCard(frame []byte) (game.Card, error) {
	if len(frame) != CardSize {
		return 0, fmt.Errorf("%w: frame is %d bytes, want %d", ErrInvalidCard, len(frame), CardSize)
	}
	c := game.Card(math.Float32frombits(binary.LittleEndian.Uint32(frame)))
	if !c.Valid() {
		return 0, fmt.Errorf("%w: value %v", ErrInvalidCard, float32(c))
	}
	return c, nil
}

// EncodeDecision packs a status into a NUL-padded frame.
func EncodeDecision(s game.Status) ([DecisionSize]byte, error) {
	var buf [DecisionSize]byte
	token, err := Token(s)
	if err != nil {
		return buf, err
	}
	copy(buf[:], token)
	return buf, nil
}

// DecodeDecision unpacks a decision frame. The token must be followed only by
// NUL padding.
func DecodeDecision(frame []byte) (game.Status, error) {
	if len(frame) != DecisionSize {
		return 0, fmt.Errorf("%w: frame is %d bytes, want %d", ErrMalformedDecision, len(frame), DecisionSize)
	}
	token := frame
	if i := bytes.IndexByte(frame, 0); i >= 0 {
		token = frame[:i]
		if len(bytes.Trim(frame[i:], "\x00")) != 0 {
			return 0, fmt.Errorf("%w: data after padding", ErrMalformedDecision)
		}
	}
	return ParseToken(string(token))
}

// WriteCard writes one card frame.
func WriteCard(w io.Writer, c game.Card) error {
	frame := EncodeCard(c)
	_, err := w.Write(frame[:])
	return err
}

// ReadCard reads one card frame. A stream closed on a frame boundary returns
// io.EOF; a stream closed mid-frame returns io.ErrUnexpectedEOF.
func ReadCard(r io.Reader) (game.Card, error) {
	var frame [CardSize]byte
	if _, err := io.ReadFull(r, frame[:]); err != nil {
		return 0, err
	}
	return DecodeCard(frame[:])
}

// WriteDecision writes one decision frame.
func WriteDecision(w io.Writer, s game.Status) error {
	frame, err := EncodeDecision(s)
	if err != nil {
		return err
	}
	_, err = w.Write(frame[:])
	return err
}

// ReadDecision reads one decision frame with the same EOF rules as ReadCard.
func ReadDecision(r io.Reader) (game.Status, error) {
	var frame [DecisionSize]byte
	if _, err := io.ReadFull(r, frame[:]); err != nil {
		return 0, err
	}
	return DecodeDecision(frame[:])
}
