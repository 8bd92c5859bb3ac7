package protocol

import (
	"bytes"
	"io"
	"testing"

	"github.com/lox/sevenandahalf/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardFrame(t *testing.T) {
	frame := EncodeCard(game.FigureCard)
	// 0.5 is 0x3f000000 in IEEE-754, little-endian on the wire.
	assert.Equal(t, [CardSize]byte{0x00, 0x00, 0x00, 0x3f}, frame)

	c, err := DecodeCard(frame[:])
	require.NoError(t, err)
	assert.Equal(t, game.FigureCard, c)
}

func TestDecodeCardRejectsImpossibleValues(t *testing.T) {
	for _, bad := range []game.Card{0, 2.5, 8, -3} {
		frame := EncodeCard(bad)
		_, err := DecodeCard(frame[:])
		assert.ErrorIs(t, err, ErrInvalidCard, "value %v", bad)
	}

	_, err := DecodeCard([]byte{1, 2})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestDecisionFrame(t *testing.T) {
	tests := []struct {
		status game.Status
		token  string
	}{
		{game.Playing, "jugando"},
		{game.Standing, "plantado"},
		{game.Busted, "abandonado"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			frame, err := EncodeDecision(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.token, string(bytes.TrimRight(frame[:], "\x00")))
			assert.Len(t, frame, DecisionSize)

			got, err := DecodeDecision(frame[:])
			require.NoError(t, err)
			assert.Equal(t, tt.status, got)
		})
	}
}

func TestDecodeDecisionMalformed(t *testing.T) {
	pad := func(s string) []byte {
		b := make([]byte, DecisionSize)
		copy(b, s)
		return b
	}

	tests := []struct {
		name  string
		frame []byte
	}{
		{"unknown token", pad("retirado")},
		{"empty", pad("")},
		{"garbage after padding", append(append(pad("plantado")[:9], 'x'), make([]byte, DecisionSize-10)...)},
		{"short frame", []byte("jugando")},
		{"prefix only", pad("planta")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDecision(tt.frame)
			assert.ErrorIs(t, err, ErrMalformedDecision)
		})
	}
}

func TestEncodeDecisionUnknownStatus(t *testing.T) {
	_, err := EncodeDecision(game.Status(7))
	assert.ErrorIs(t, err, ErrMalformedDecision)
}

func TestStreamOrdering(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDecision(&buf, game.Playing))
	require.NoError(t, WriteCard(&buf, 4))
	require.NoError(t, WriteDecision(&buf, game.Standing))
	assert.Equal(t, DecisionSize*2+CardSize, buf.Len())

	s, err := ReadDecision(&buf)
	require.NoError(t, err)
	assert.Equal(t, game.Playing, s)

	c, err := ReadCard(&buf)
	require.NoError(t, err)
	assert.Equal(t, game.Card(4), c)

	s, err = ReadDecision(&buf)
	require.NoError(t, err)
	assert.Equal(t, game.Standing, s)

	_, err = ReadDecision(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestShortReads(t *testing.T) {
	_, err := ReadCard(bytes.NewReader([]byte{0, 0}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadDecision(bytes.NewReader([]byte("planta")))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadCard(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}
