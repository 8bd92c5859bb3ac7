package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
)

// DefaultStandAt is the score from which ThresholdBot stops asking for cards.
const DefaultStandAt = 5.0

// ThresholdBot keeps playing below a score and stands from it on.
type ThresholdBot struct {
	standAt float64
	logger  *log.Logger
}

// NewThresholdBot creates a bot that stands once score reaches standAt.
func NewThresholdBot(standAt float64, logger *log.Logger) *ThresholdBot {
	return &ThresholdBot{standAt: standAt, logger: logger}
}

func (b *ThresholdBot) MakeDecision(score float64) game.Status {
	if score < b.standAt {
		b.logger.Debug("threshold-bot asking for another card", "score", score, "standAt", b.standAt)
		return game.Playing
	}
	b.logger.Debug("threshold-bot standing", "score", score, "standAt", b.standAt)
	return game.Standing
}
