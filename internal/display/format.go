package display

import (
	"fmt"

	"github.com/lox/sevenandahalf/internal/dealer"
	"github.com/lox/sevenandahalf/internal/game"
)

// Plain-text renderings of game events. The printer and the TUI style these
// same lines.

func HeaderLine(gameID string, players int) string {
	return fmt.Sprintf("=== Seven and a half: %d players (game %s) ===", players, gameID)
}

func RoundLine(round int) string {
	return fmt.Sprintf("--- Round %d ---", round)
}

func CardLine(playerID int, card game.Card) string {
	return fmt.Sprintf("Player %d receives %s", playerID, card)
}

// DecisionLine describes what a player answered. When the score overrode the
// answer the forced status is shown too.
func DecisionLine(player game.Player, decision game.Status) string {
	line := fmt.Sprintf("Player %d: %s (score %s)", player.ID, decision, game.FormatScore(player.Score))
	if player.Status != decision {
		line += fmt.Sprintf(", forced %s", player.Status)
	}
	return line
}

func ErrorLine(err *dealer.ProtocolError) string {
	return fmt.Sprintf("Player %d forced out: %v", err.PlayerID, err.Err)
}

func SummaryLine(player game.Player) string {
	return fmt.Sprintf("Player %d: score = %s, status = %s", player.ID, game.FormatScore(player.Score), player.Status)
}

func WinnerLine(outcome game.Outcome) string {
	if !outcome.HasWinner() {
		return "No winner"
	}
	return fmt.Sprintf("Winner: player %d with %s", outcome.Winner.ID, game.FormatScore(outcome.Winner.Score))
}
