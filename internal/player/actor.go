// Package player runs one seat of the table as an independent actor. The actor
// owns its score and talks to the dealer only through its transport.Conn.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/bot"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/protocol"
	"github.com/lox/sevenandahalf/internal/transport"
)

// Actor plays one hand: read a card, add it up, answer, repeat until done.
type Actor struct {
	id     int
	conn   transport.Conn
	bot    bot.Bot
	logger *log.Logger
}

// New creates an actor for seat id. The actor takes ownership of conn and
// closes it when Run returns.
func New(id int, conn transport.Conn, b bot.Bot, logger *log.Logger) *Actor {
	return &Actor{
		id:     id,
		conn:   conn,
		bot:    b,
		logger: logger.WithPrefix("player").With("player", id),
	}
}

// ID returns the seat number.
func (a *Actor) ID() int { return a.id }

// Run plays until the actor stands, busts, or the dealer closes the channel.
// A dealer close is a normal end of hand. Any other I/O failure ends the actor
// with an error; nothing is sent back to report it.
func (a *Actor) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = a.conn.Close() })
	defer stop()
	defer func() { _ = a.conn.Close() }()

	var score float64
	for {
		card, err := protocol.ReadCard(a.conn)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				a.logger.Debug("No more cards", "score", game.FormatScore(score))
				return nil
			}
			return fmt.Errorf("player %d: read card: %w", a.id, err)
		}
		score += float64(card)
		a.logger.Debug("Received card", "card", card, "score", game.FormatScore(score))

		if score > game.MaxScore {
			a.logger.Debug("Over the limit", "score", game.FormatScore(score))
			return a.send(game.Busted, card)
		}

		decision := a.bot.MakeDecision(score)
		if !decision.Valid() {
			return fmt.Errorf("player %d: bot returned invalid decision %d", a.id, decision)
		}
		if err := a.send(decision, card); err != nil {
			return err
		}
		if decision.Terminal() {
			return nil
		}
	}
}

// send writes a decision frame. Playing is followed by the card being kept.
func (a *Actor) send(decision game.Status, card game.Card) error {
	if err := protocol.WriteDecision(a.conn, decision); err != nil {
		return fmt.Errorf("player %d: write decision: %w", a.id, err)
	}
	a.logger.Debug("Sent decision", "decision", decision)
	if decision != game.Playing {
		return nil
	}
	if err := protocol.WriteCard(a.conn, card); err != nil {
		return fmt.Errorf("player %d: write card: %w", a.id, err)
	}
	return nil
}
