// Package display prints a game to a terminal or a plain stream.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/sevenandahalf/internal/dealer"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/muesli/termenv"
)

// Styles used for each kind of line.
type Styles struct {
	Header   lipgloss.Style
	Round    lipgloss.Style
	Card     lipgloss.Style
	Playing  lipgloss.Style
	Standing lipgloss.Style
	Busted   lipgloss.Style
	Error    lipgloss.Style
	Winner   lipgloss.Style
	NoWinner lipgloss.Style
}

// NewStyles builds the palette on r, so colours follow r's profile.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Round: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Card: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Playing: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Standing: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Busted: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		NoWinner: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Status picks the style for a player status.
func (s Styles) Status(status game.Status) lipgloss.Style {
	switch status {
	case game.Standing:
		return s.Standing
	case game.Busted:
		return s.Busted
	default:
		return s.Playing
	}
}

// Printer implements dealer.Monitor by writing one line per event.
type Printer struct {
	writer io.Writer
	styles Styles
	round  int
}

// NewPrinter creates a printer. Plain output never carries escape codes;
// pretty output uses whatever the writer's terminal supports.
func NewPrinter(writer io.Writer, pretty bool) *Printer {
	if writer == nil {
		writer = os.Stdout
	}
	renderer := lipgloss.NewRenderer(writer)
	if !pretty {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		writer: writer,
		styles: NewStyles(renderer),
	}
}

func (p *Printer) println(style lipgloss.Style, line string) {
	fmt.Fprintln(p.writer, style.Render(line))
}

func (p *Printer) OnGameStart(gameID string, players int) {
	p.round = 0
	p.println(p.styles.Header, HeaderLine(gameID, players))
}

func (p *Printer) OnCardDealt(round, playerID int, card game.Card) {
	if round != p.round {
		p.round = round
		p.println(p.styles.Round, RoundLine(round))
	}
	p.println(p.styles.Card, CardLine(playerID, card))
}

func (p *Printer) OnDecision(_ int, player game.Player, decision game.Status) {
	p.println(p.styles.Status(player.Status), DecisionLine(player, decision))
}

func (p *Printer) OnPlayerError(err *dealer.ProtocolError) {
	p.println(p.styles.Error, ErrorLine(err))
}

func (p *Printer) OnGameComplete(result *dealer.Result) {
	fmt.Fprintln(p.writer)
	for _, player := range result.Players {
		p.println(p.styles.Status(player.Status), SummaryLine(player))
	}
	if result.HasWinner() {
		p.println(p.styles.Winner, WinnerLine(result.Outcome))
	} else {
		p.println(p.styles.NoWinner, WinnerLine(result.Outcome))
	}
}

var _ dealer.Monitor = (*Printer)(nil)
