package dealer

import (
	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
)

// Monitor observes a game as the dealer runs it. Calls arrive from the dealer
// goroutine, in order.
type Monitor interface {
	// OnGameStart is called once every seat has an actor.
	OnGameStart(gameID string, players int)

	// OnCardDealt is called after a card reached a player's channel.
	OnCardDealt(round, playerID int, card game.Card)

	// OnDecision is called with the player's record after its answer was
	// applied. decision is what the player sent; player.Status may differ when
	// the score forced a bust.
	OnDecision(round int, player game.Player, decision game.Status)

	// OnPlayerError is called when an exchange with a player failed.
	OnPlayerError(err *ProtocolError)

	// OnGameComplete is called after every actor has finished.
	OnGameComplete(result *Result)
}

// NopMonitor ignores every event.
type NopMonitor struct{}

func (NopMonitor) OnGameStart(string, int)                 {}
func (NopMonitor) OnCardDealt(int, int, game.Card)         {}
func (NopMonitor) OnDecision(int, game.Player, game.Status) {}
func (NopMonitor) OnPlayerError(*ProtocolError)            {}
func (NopMonitor) OnGameComplete(*Result)                  {}

// MultiMonitor fans events out to several monitors in order.
type MultiMonitor []Monitor

func (m MultiMonitor) OnGameStart(gameID string, players int) {
	for _, mon := range m {
		mon.OnGameStart(gameID, players)
	}
}

func (m MultiMonitor) OnCardDealt(round, playerID int, card game.Card) {
	for _, mon := range m {
		mon.OnCardDealt(round, playerID, card)
	}
}

func (m MultiMonitor) OnDecision(round int, player game.Player, decision game.Status) {
	for _, mon := range m {
		mon.OnDecision(round, player, decision)
	}
}

func (m MultiMonitor) OnPlayerError(err *ProtocolError) {
	for _, mon := range m {
		mon.OnPlayerError(err)
	}
}

func (m MultiMonitor) OnGameComplete(result *Result) {
	for _, mon := range m {
		mon.OnGameComplete(result)
	}
}

// LogMonitor writes every event to a structured logger.
type LogMonitor struct {
	logger *log.Logger
}

// NewLogMonitor creates a monitor that logs under the "table" prefix.
func NewLogMonitor(logger *log.Logger) *LogMonitor {
	return &LogMonitor{logger: logger.WithPrefix("table")}
}

func (l *LogMonitor) OnGameStart(gameID string, players int) {
	l.logger.Info("Game starting", "game", gameID, "players", players)
}

func (l *LogMonitor) OnCardDealt(round, playerID int, card game.Card) {
	l.logger.Debug("Card dealt", "round", round, "player", playerID, "card", card)
}

func (l *LogMonitor) OnDecision(round int, player game.Player, decision game.Status) {
	l.logger.Debug("Decision received",
		"round", round,
		"player", player.ID,
		"decision", decision,
		"status", player.Status,
		"score", game.FormatScore(player.Score))
}

func (l *LogMonitor) OnPlayerError(err *ProtocolError) {
	l.logger.Debug("Player error reported", "player", err.PlayerID, "round", err.Round, "op", err.Op)
}

func (l *LogMonitor) OnGameComplete(result *Result) {
	if result.HasWinner() {
		l.logger.Info("Game complete",
			"game", result.GameID,
			"winner", result.Winner.ID,
			"score", game.FormatScore(result.Winner.Score))
		return
	}
	l.logger.Info("Game complete", "game", result.GameID, "winner", "none")
}
