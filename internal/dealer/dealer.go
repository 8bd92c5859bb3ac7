// Package dealer runs the table: it seats one actor per player, deals the
// rounds, collects every decision and settles the game.
//
// The dealer is the only code that sees every seat. It reaches a player only
// through that player's transport.Conn and never shares state with an actor.
package dealer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/gameid"
	"github.com/lox/sevenandahalf/internal/protocol"
	"github.com/lox/sevenandahalf/internal/transport"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds each exchange with a player.
	DefaultTimeout = 5 * time.Second
)

// aLongTimeAgo is a deadline that has already passed.
var aLongTimeAgo = time.Unix(1, 0)

// Runner is a launched player actor.
type Runner interface {
	Run(ctx context.Context) error
}

// SpawnFunc builds the actor for a seat around its end of the channel.
type SpawnFunc func(id int, conn transport.Conn) Runner

// Config holds the table settings.
type Config struct {
	Players int

	// Timeout bounds every read or write on a player's channel. Zero waits
	// forever.
	Timeout time.Duration
}

// Result is the settled game.
type Result struct {
	game.Outcome

	GameID string

	// ActorErr is the first error an actor exited with, if any.
	ActorErr error
}

// seat is the dealer's slot for one player.
type seat struct {
	player  *game.Player
	conn    transport.Conn
	dealt   game.Card
	pending bool

	closeOnce sync.Once
}

func (s *seat) close() {
	s.closeOnce.Do(func() { _ = s.conn.Close() })
}

// Dealer runs one game.
type Dealer struct {
	config    Config
	transport transport.Transport
	deck      game.Deck
	spawn     SpawnFunc
	clock     quartz.Clock
	monitor   Monitor
	logger    *log.Logger
	gameID    string

	seats []*seat
}

// Option configures a Dealer.
type Option func(*Dealer)

// WithClock sets the clock that drives timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(d *Dealer) { d.clock = clock }
}

// WithMonitor sets the game observer.
func WithMonitor(m Monitor) Option {
	return func(d *Dealer) { d.monitor = m }
}

// WithGameID overrides the generated game ID.
func WithGameID(id string) Option {
	return func(d *Dealer) { d.gameID = id }
}

// New creates a dealer for a table of config.Players seats.
func New(config Config, tr transport.Transport, deck game.Deck, spawn SpawnFunc, logger *log.Logger, opts ...Option) (*Dealer, error) {
	if config.Players < 1 || config.Players > game.MaxPlayers {
		return nil, fmt.Errorf("%w: %d (want 1-%d)", ErrPlayerCount, config.Players, game.MaxPlayers)
	}

	d := &Dealer{
		config:    config,
		transport: tr,
		deck:      deck,
		spawn:     spawn,
		clock:     quartz.NewReal(),
		monitor:   NopMonitor{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.gameID == "" {
		d.gameID = gameid.Generate()
	}
	d.logger = logger.WithPrefix("dealer").With("game", d.gameID)
	return d, nil
}

// GameID returns the identifier of this game.
func (d *Dealer) GameID() string { return d.gameID }

// Players returns a snapshot of every seat in id order.
func (d *Dealer) Players() []game.Player {
	players := make([]game.Player, len(d.seats))
	for i, s := range d.seats {
		players[i] = s.player.Clone()
	}
	return players
}

// Run plays a full game. It returns an error only when the table could not be
// seated or ctx was cancelled; player failures are settled inside the game.
func (d *Dealer) Run(ctx context.Context) (*Result, error) {
	var actors errgroup.Group

	if err := d.seatPlayers(ctx, &actors); err != nil {
		d.logger.Error("Failed to seat players", "error", err)
		d.closeAll()
		_ = actors.Wait()
		return nil, err
	}

	stop := context.AfterFunc(ctx, d.closeAll)
	defer stop()

	d.monitor.OnGameStart(d.gameID, len(d.seats))

	for round := 1; round <= game.Rounds; round++ {
		if d.DealRound(round) == 0 {
			break
		}
		d.CollectDecisions(round)
	}
	d.exhaustBudget()

	d.closeAll()
	actorErr := actors.Wait()
	if actorErr != nil {
		d.logger.Warn("Player actor failed", "error", actorErr)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Outcome:  game.Tally(d.Players()),
		GameID:   d.gameID,
		ActorErr: actorErr,
	}
	d.monitor.OnGameComplete(result)
	return result, nil
}

// seatPlayers opens every channel and starts every actor before any card is dealt.
func (d *Dealer) seatPlayers(ctx context.Context, actors *errgroup.Group) error {
	d.seats = make([]*seat, 0, d.config.Players)
	for id := 1; id <= d.config.Players; id++ {
		dealerEnd, playerEnd, err := d.transport.Open(ctx)
		if err != nil {
			return &SetupError{PlayerID: id, Err: err}
		}

		d.seats = append(d.seats, &seat{player: game.NewPlayer(id), conn: dealerEnd})

		actor := d.spawn(id, playerEnd)
		actors.Go(func() error {
			return actor.Run(ctx)
		})
		d.logger.Debug("Seated player", "player", id, "transport", d.transport.Name())
	}
	return nil
}

// DealRound sends one card to every player still in the hand at the start of
// the round, in id order, and returns how many cards went out. Players who
// stood or busted are skipped.
func (d *Dealer) DealRound(round int) int {
	dealt := 0
	for _, s := range d.seats {
		s.pending = false
		if !s.player.IsActive() {
			continue
		}

		card := d.deck.Draw()
		err := d.guard(s, func() error {
			return protocol.WriteCard(s.conn, card)
		})
		if err != nil {
			d.fail(s, round, "deal card", err)
			continue
		}

		s.dealt = card
		s.pending = true
		dealt++
		d.logger.Debug("Dealt card", "round", round, "player", s.player.ID, "card", card)
		d.monitor.OnCardDealt(round, s.player.ID, card)
	}
	return dealt
}

// CollectDecisions reads one decision from every player dealt a card this
// round, in id order. A player who keeps playing also echoes the card back.
func (d *Dealer) CollectDecisions(round int) {
	for _, s := range d.seats {
		if !s.pending {
			continue
		}
		s.pending = false

		var decision game.Status
		err := d.guard(s, func() error {
			var err error
			decision, err = protocol.ReadDecision(s.conn)
			if err != nil {
				return err
			}
			if decision != game.Playing {
				return nil
			}
			echo, err := protocol.ReadCard(s.conn)
			if err != nil {
				return err
			}
			if echo != s.dealt {
				return fmt.Errorf("%w: got %s, dealt %s", ErrCardMismatch, echo, s.dealt)
			}
			return nil
		})
		if err != nil {
			d.fail(s, round, "collect decision", err)
			continue
		}

		if err := s.player.Accept(s.dealt, decision); err != nil {
			d.fail(s, round, "apply decision", err)
			continue
		}
		if s.player.Status.Terminal() {
			s.close()
		}

		d.logger.Debug("Collected decision",
			"round", round,
			"player", s.player.ID,
			"decision", decision,
			"status", s.player.Status,
			"score", game.FormatScore(s.player.Score))
		d.monitor.OnDecision(round, s.player.Clone(), decision)
	}
}

// exhaustBudget stands every player still asking for cards once the rounds
// are spent.
func (d *Dealer) exhaustBudget() {
	for _, s := range d.seats {
		if s.player.Finish(game.Standing) {
			d.logger.Debug("Round budget exhausted, standing", "player", s.player.ID, "score", game.FormatScore(s.player.Score))
			s.close()
		}
	}
}

// fail forces a player out after a failed exchange. The score stays as it was
// before the round.
func (d *Dealer) fail(s *seat, round int, op string, err error) {
	perr := &ProtocolError{PlayerID: s.player.ID, Round: round, Op: op, Err: err}
	d.logger.Error("Player forced out", "player", s.player.ID, "round", round, "op", op, "error", err)
	s.player.Finish(game.Busted)
	s.close()
	d.monitor.OnPlayerError(perr)
}

// guard runs one exchange under the configured timeout. When the timer fires
// the channel deadline is moved into the past, which unblocks the pending read
// or write.
func (d *Dealer) guard(s *seat, exchange func() error) error {
	if d.config.Timeout <= 0 {
		return exchange()
	}

	var (
		mu      sync.Mutex
		done    bool
		expired bool
	)
	timer := d.clock.AfterFunc(d.config.Timeout, func() {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		expired = true
		_ = s.conn.SetDeadline(aLongTimeAgo)
	}, "dealer", "exchange")

	err := exchange()
	timer.Stop()

	mu.Lock()
	done = true
	timedOut := expired
	mu.Unlock()

	if timedOut {
		_ = s.conn.SetDeadline(time.Time{})
		if err != nil {
			return fmt.Errorf("%w after %s: %v", ErrTimeout, d.config.Timeout, err)
		}
	}
	return err
}

func (d *Dealer) closeAll() {
	for _, s := range d.seats {
		s.close()
	}
}
