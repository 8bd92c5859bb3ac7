package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenandahalf/internal/game"
	"github.com/lox/sevenandahalf/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func openTransport(t *testing.T, name string) Transport {
	t.Helper()
	tr, err := New(name, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	assert.Equal(t, name, tr.Name())
	return tr
}

func TestNewUnknown(t *testing.T) {
	_, err := New("carrier-pigeon", testLogger())
	require.ErrorIs(t, err, ErrUnknownTransport)
}

func TestNewDefaultsToPipe(t *testing.T) {
	tr, err := New("", testLogger())
	require.NoError(t, err)
	assert.Equal(t, Pipe, tr.Name())
}

func TestTransportsCarryFrames(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tr := openTransport(t, name)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			dealer, player, err := tr.Open(ctx)
			require.NoError(t, err)
			defer dealer.Close()

			done := make(chan error, 1)
			go func() {
				defer player.Close()
				for {
					card, err := protocol.ReadCard(player)
					if errors.Is(err, io.EOF) {
						done <- nil
						return
					}
					if err != nil {
						done <- err
						return
					}
					if err := protocol.WriteDecision(player, game.Playing); err != nil {
						done <- err
						return
					}
					if err := protocol.WriteCard(player, card); err != nil {
						done <- err
						return
					}
				}
			}()

			for _, card := range []game.Card{3, game.FigureCard, 7} {
				require.NoError(t, protocol.WriteCard(dealer, card))

				status, err := protocol.ReadDecision(dealer)
				require.NoError(t, err)
				assert.Equal(t, game.Playing, status)

				echo, err := protocol.ReadCard(dealer)
				require.NoError(t, err)
				assert.Equal(t, card, echo)
			}

			require.NoError(t, dealer.Close())
			select {
			case err := <-done:
				require.NoError(t, err, "player should see a clean EOF when the dealer closes")
			case <-ctx.Done():
				t.Fatal("player never saw the dealer close")
			}
		})
	}
}

func TestTransportsHonourDeadlines(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tr := openTransport(t, name)
			dealer, player, err := tr.Open(context.Background())
			require.NoError(t, err)
			defer dealer.Close()
			defer player.Close()

			require.NoError(t, dealer.SetDeadline(time.Now().Add(20*time.Millisecond)))
			_, err = protocol.ReadDecision(dealer)
			require.Error(t, err)

			var netErr net.Error
			if errors.As(err, &netErr) {
				assert.True(t, netErr.Timeout())
			}
		})
	}
}

func TestTransportsAreIsolated(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tr := openTransport(t, name)
			d1, p1, err := tr.Open(context.Background())
			require.NoError(t, err)
			d2, p2, err := tr.Open(context.Background())
			require.NoError(t, err)
			defer func() {
				for _, c := range []Conn{d1, p1, d2, p2} {
					_ = c.Close()
				}
			}()

			go func() { _ = protocol.WriteCard(d2, 2) }()
			go func() { _ = protocol.WriteCard(d1, 1) }()

			c1, err := protocol.ReadCard(p1)
			require.NoError(t, err)
			c2, err := protocol.ReadCard(p2)
			require.NoError(t, err)

			assert.Equal(t, game.Card(1), c1)
			assert.Equal(t, game.Card(2), c2)
		})
	}
}

func TestOpenHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewPipe().Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
