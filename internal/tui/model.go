// Package tui shows a running game in a bubbletea program: a scrolling event
// log, a sidebar with every seat, and a status line.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/dealer"
	"github.com/lox/sevenandahalf/internal/display"
	"github.com/lox/sevenandahalf/internal/game"
)

const sidebarWidth = 28

// Messages delivered by Monitor.
type (
	GameStartMsg struct {
		GameID  string
		Players int
	}

	CardDealtMsg struct {
		Round    int
		PlayerID int
		Card     game.Card
	}

	DecisionMsg struct {
		Round    int
		Player   game.Player
		Decision game.Status
	}

	PlayerErrorMsg struct {
		Err *dealer.ProtocolError
	}

	GameCompleteMsg struct {
		Result *dealer.Result
	}
)

// TUIModel is the bubbletea model for one game.
type TUIModel struct {
	logger *log.Logger
	styles display.Styles

	logViewport viewport.Model

	gameID   string
	round    int
	players  []game.Player
	gameLog  []string
	plainLog []string
	result   *dealer.Result

	width       int
	height      int
	quitting    bool
	initialized bool
}

// NewTUIModel creates an empty model. It fills in as messages arrive.
func NewTUIModel(logger *log.Logger) *TUIModel {
	// Properly sized when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &TUIModel{
		logger:      logger.WithPrefix("tui"),
		styles:      display.NewStyles(lipgloss.DefaultRenderer()),
		logViewport: vp,
	}
}

func (m *TUIModel) Init() tea.Cmd {
	return nil
}

func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "pgup", "b":
			m.logViewport.HalfPageUp()
		case "pgdown", "f":
			m.logViewport.HalfPageDown()
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}
		return m, nil

	case GameStartMsg:
		m.gameID = msg.GameID
		m.round = 0
		m.players = make([]game.Player, msg.Players)
		for i := range m.players {
			m.players[i] = *game.NewPlayer(i + 1)
		}
		m.addLogEntry(m.styles.Header, display.HeaderLine(msg.GameID, msg.Players))

	case CardDealtMsg:
		if msg.Round != m.round {
			m.round = msg.Round
			m.addLogEntry(m.styles.Round, display.RoundLine(msg.Round))
		}
		m.addLogEntry(m.styles.Card, display.CardLine(msg.PlayerID, msg.Card))

	case DecisionMsg:
		m.setPlayer(msg.Player)
		m.addLogEntry(m.styles.Status(msg.Player.Status), display.DecisionLine(msg.Player, msg.Decision))

	case PlayerErrorMsg:
		m.addLogEntry(m.styles.Error, display.ErrorLine(msg.Err))

	case GameCompleteMsg:
		m.result = msg.Result
		for _, p := range msg.Result.Players {
			m.setPlayer(p)
		}
		if msg.Result.HasWinner() {
			m.addLogEntry(m.styles.Winner, display.WinnerLine(msg.Result.Outcome))
		} else {
			m.addLogEntry(m.styles.NoWinner, display.WinnerLine(msg.Result.Outcome))
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ActiveBorderColor).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PaneBorderColor).
		Width(sidebarWidth).
		Height(m.logViewport.Height).
		Render(m.renderSidebar())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, m.renderStatus())
}

// resize fits the log pane to the window, leaving room for borders, the
// sidebar and the status line.
func (m *TUIModel) resize() {
	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = max(1, m.height-3)

	if !m.initialized && m.logViewport.Width > 1 && m.logViewport.Height > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}
}

func (m *TUIModel) renderSidebar() string {
	var content strings.Builder
	content.WriteString(SidebarTitleStyle.Render("Seats"))
	content.WriteString("\n\n")
	for _, p := range m.players {
		line := fmt.Sprintf("P%-2d %4s  %s", p.ID, game.FormatScore(p.Score), p.Status)
		content.WriteString(m.styles.Status(p.Status).Render(line))
		content.WriteString("\n")
	}
	return content.String()
}

func (m *TUIModel) renderStatus() string {
	var status string
	switch {
	case m.result != nil:
		status = "Game over • ↑↓ scroll • q to quit"
	case m.round > 0:
		status = fmt.Sprintf("Round %d of %d • ↑↓ scroll • q to quit", m.round, game.Rounds)
	default:
		status = "Seating players • q to quit"
	}
	return HelpStyle.Render(status)
}

func (m *TUIModel) setPlayer(p game.Player) {
	if p.ID < 1 || p.ID > len(m.players) {
		return
	}
	m.players[p.ID-1] = p
}

// addLogEntry appends a line and keeps the newest line in view.
func (m *TUIModel) addLogEntry(style lipgloss.Style, entry string) {
	m.plainLog = append(m.plainLog, entry)
	m.gameLog = append(m.gameLog, style.Render(entry))
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the log lines without styling.
func (m *TUIModel) Log() []string {
	return m.plainLog
}

// Seats returns the latest known state of every seat.
func (m *TUIModel) Seats() []game.Player {
	return m.players
}

// Result returns the finished game, or nil while it is running.
func (m *TUIModel) Result() *dealer.Result {
	return m.result
}
