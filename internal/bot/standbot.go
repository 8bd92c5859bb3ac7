package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
)

// StandBot stands on the first card it keeps.
type StandBot struct {
	logger *log.Logger
}

// NewStandBot creates a new StandBot instance
func NewStandBot(logger *log.Logger) *StandBot {
	return &StandBot{logger: logger}
}

func (s *StandBot) MakeDecision(score float64) game.Status {
	s.logger.Debug("stand-bot standing", "score", score)
	return game.Standing
}
