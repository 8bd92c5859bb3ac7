package dealer

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/bot"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/player"
	"github.com/lox/sevenandahalf/internal/protocol"
	"github.com/lox/sevenandahalf/internal/transport"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

// spawnBots seats real actors, asking botFor which bot each seat plays.
func spawnBots(botFor func(id int) bot.Bot) SpawnFunc {
	return func(id int, conn transport.Conn) Runner {
		return player.New(id, conn, botFor(id), quietLogger())
	}
}

func everyone(b func() bot.Bot) func(int) bot.Bot {
	return func(int) bot.Bot { return b() }
}

func standers() SpawnFunc {
	return spawnBots(everyone(func() bot.Bot { return bot.NewStandBot(quietLogger()) }))
}

// actorCount wraps a SpawnFunc and counts launched and finished actors.
type actorCount struct {
	started  atomic.Int32
	finished atomic.Int32
}

func (c *actorCount) wrap(spawn SpawnFunc) SpawnFunc {
	return func(id int, conn transport.Conn) Runner {
		r := spawn(id, conn)
		return runnerFunc(func(ctx context.Context) error {
			c.started.Add(1)
			defer c.finished.Add(1)
			return r.Run(ctx)
		})
	}
}

// recorder is a Monitor that keeps every event.
type recorder struct {
	mu        sync.Mutex
	started   int
	dealt     map[int][]game.Card
	decisions map[int][]game.Status
	errors    []*ProtocolError
	result    *Result
}

func newRecorder() *recorder {
	return &recorder{dealt: make(map[int][]game.Card), decisions: make(map[int][]game.Status)}
}

func (r *recorder) OnGameStart(string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recorder) OnCardDealt(_ int, id int, card game.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dealt[id] = append(r.dealt[id], card)
}

func (r *recorder) OnDecision(_ int, p game.Player, decision game.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions[p.ID] = append(r.decisions[p.ID], decision)
}

func (r *recorder) OnPlayerError(err *ProtocolError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recorder) OnGameComplete(result *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = result
}

// flakyTransport fails the nth Open.
type flakyTransport struct {
	transport.Transport
	failAt int
	calls  int
}

var errNoSeats = errors.New("no more seats")

func (f *flakyTransport) Open(ctx context.Context) (transport.Conn, transport.Conn, error) {
	f.calls++
	if f.calls == f.failAt {
		return nil, nil, errNoSeats
	}
	return f.Transport.Open(ctx)
}

// stall reads the first card and never answers. It returns once the dealer
// hangs up.
func stall(conn transport.Conn) Runner {
	return runnerFunc(func(ctx context.Context) error {
		defer conn.Close()
		if _, err := protocol.ReadCard(conn); err != nil {
			return err
		}
		if _, err := protocol.ReadCard(conn); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	})
}

// scripted answers every card with raw frames from reply.
func scripted(conn transport.Conn, reply func(card game.Card) [][]byte) Runner {
	return runnerFunc(func(ctx context.Context) error {
		defer conn.Close()
		for {
			card, err := protocol.ReadCard(conn)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			for _, frame := range reply(card) {
				if _, err := conn.Write(frame); err != nil {
					return err
				}
			}
		}
	})
}

func decisionFrame(t *testing.T, s game.Status) []byte {
	t.Helper()
	frame, err := protocol.EncodeDecision(s)
	require.NoError(t, err)
	return frame[:]
}

func cardFrame(c game.Card) []byte {
	frame := protocol.EncodeCard(c)
	return frame[:]
}

func newDealer(t *testing.T, cfg Config, tr transport.Transport, deck game.Deck, spawn SpawnFunc, opts ...Option) *Dealer {
	t.Helper()
	d, err := New(cfg, tr, deck, spawn, quietLogger(), opts...)
	require.NoError(t, err)
	return d
}
