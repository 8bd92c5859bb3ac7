package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
)

// Strategy names accepted by New.
const (
	StrategyRandom    = "random"
	StrategyStand     = "stand"
	StrategyThreshold = "threshold"
)

// Bot decides what a player does with a score it is still allowed to keep.
// It is only consulted while the score is at or under game.MaxScore.
type Bot interface {
	MakeDecision(score float64) game.Status
}

// Func adapts a plain function to the Bot interface.
type Func func(score float64) game.Status

func (f Func) MakeDecision(score float64) game.Status { return f(score) }

// Strategies lists the built-in strategies.
func Strategies() []string {
	return []string{StrategyRandom, StrategyStand, StrategyThreshold}
}

// New creates a built-in bot. rng must not be shared with another actor.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	switch strategy {
	case StrategyRandom, "":
		return NewRandBot(rng, logger), nil
	case StrategyStand:
		return NewStandBot(logger), nil
	case StrategyThreshold:
		return NewThresholdBot(DefaultStandAt, logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
