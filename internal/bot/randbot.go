package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
)

// RandBot stands, keeps playing or walks away with equal odds.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(score float64) game.Status {
	var decision game.Status
	switch r.rng.IntN(3) {
	case 0:
		decision = game.Standing
	case 1:
		decision = game.Playing
	default:
		decision = game.Busted
	}
	r.logger.Debug("rand-bot decision", "score", score, "decision", decision)
	return decision
}
