package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/sevenandahalf/internal/dealer"
	"github.com/lox/sevenandahalf/internal/game"
)

// Monitor forwards dealer events into a running program. Send blocks until
// the program takes the message and returns at once after it has exited.
type Monitor struct {
	send func(tea.Msg)
}

// NewMonitor creates a monitor that feeds program.
func NewMonitor(program *tea.Program) *Monitor {
	return &Monitor{send: program.Send}
}

func (m *Monitor) OnGameStart(gameID string, players int) {
	m.send(GameStartMsg{GameID: gameID, Players: players})
}

func (m *Monitor) OnCardDealt(round, playerID int, card game.Card) {
	m.send(CardDealtMsg{Round: round, PlayerID: playerID, Card: card})
}

func (m *Monitor) OnDecision(round int, player game.Player, decision game.Status) {
	m.send(DecisionMsg{Round: round, Player: player, Decision: decision})
}

func (m *Monitor) OnPlayerError(err *dealer.ProtocolError) {
	m.send(PlayerErrorMsg{Err: err})
}

func (m *Monitor) OnGameComplete(result *dealer.Result) {
	m.send(GameCompleteMsg{Result: result})
}

var _ dealer.Monitor = (*Monitor)(nil)
