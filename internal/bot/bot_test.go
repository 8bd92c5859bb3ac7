package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestNew(t *testing.T) {
	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			b, err := New(name, randutil.New(1), quietLogger())
			require.NoError(t, err)
			assert.True(t, b.MakeDecision(1).Valid())
		})
	}

	_, err := New("martingale", randutil.New(1), quietLogger())
	assert.Error(t, err)
}

func TestRandBotSpreadsDecisions(t *testing.T) {
	b := NewRandBot(randutil.New(42), quietLogger())

	counts := make(map[game.Status]int)
	const draws = 3000
	for range draws {
		counts[b.MakeDecision(2)]++
	}

	for _, s := range []game.Status{game.Playing, game.Standing, game.Busted} {
		assert.InDelta(t, draws/3, counts[s], draws/10, "status %s", s)
	}
}

func TestStandBot(t *testing.T) {
	b := NewStandBot(quietLogger())
	assert.Equal(t, game.Standing, b.MakeDecision(0.5))
	assert.Equal(t, game.Standing, b.MakeDecision(7.5))
}

func TestThresholdBot(t *testing.T) {
	b := NewThresholdBot(5, quietLogger())
	assert.Equal(t, game.Playing, b.MakeDecision(4.5))
	assert.Equal(t, game.Standing, b.MakeDecision(5))
	assert.Equal(t, game.Standing, b.MakeDecision(7))
}

func TestFunc(t *testing.T) {
	var seen []float64
	b := Func(func(score float64) game.Status {
		seen = append(seen, score)
		return game.Busted
	})
	assert.Equal(t, game.Busted, b.MakeDecision(3))
	assert.Equal(t, []float64{3}, seen)
}
