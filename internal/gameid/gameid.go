// Package gameid generates sortable game identifiers: a UUIDv7 written as 26
// characters of Crockford base32, the same shape TypeID uses.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// RandSource supplies the random part of an ID. *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator builds IDs from a clock and a source of randomness.
type Generator struct {
	clock quartz.Clock
	src   RandSource
}

// NewGenerator creates a generator. A nil src reads from crypto/rand.
func NewGenerator(clock quartz.Clock, src RandSource) *Generator {
	return &Generator{clock: clock, src: src}
}

// Generate creates an ID from the wall clock and crypto/rand.
func Generate() string {
	return NewGenerator(quartz.NewReal(), nil).Generate()
}

// Generate creates a new ID.
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

// uuid lays out a UUIDv7: 48 bits of Unix milliseconds, version 7, variant
// 10, random everywhere else.
func (g *Generator) uuid() [16]byte {
	var u [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], ms)
	copy(u[:6], ts[2:])

	if g.src != nil {
		for i := 6; i < 16; i++ {
			u[i] = byte(g.src.IntN(256))
		}
	} else if _, err := rand.Read(u[6:]); err != nil {
		panic("gameid: crypto/rand failed: " + err.Error())
	}

	u[6] = (u[6] & 0x0f) | 0x70
	u[8] = (u[8] & 0x3f) | 0x80
	return u
}

// encode writes the 128 bits as 26 base32 digits, most significant first.
// The 130-bit field has two leading zero bits, so the first digit is 0-7.
func encode(u [16]byte) string {
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])

	var out [Length]byte
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
