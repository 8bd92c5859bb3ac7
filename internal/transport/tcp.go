package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
)

// TCPTransport links both ends with a loopback TCP connection. The dealer keeps
// the accepted side, the player gets the dialled side.
type TCPTransport struct {
	ln     net.Listener
	logger *log.Logger
}

type accepted struct {
	conn net.Conn
	err  error
}

// NewTCP listens on an ephemeral loopback port.
func NewTCP(logger *log.Logger) (*TCPTransport, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	logger.Debug("Listening for seats", "transport", TCP, "addr", ln.Addr())
	return &TCPTransport{ln: ln, logger: logger.WithPrefix("tcp")}, nil
}

func (t *TCPTransport) Name() string { return TCP }

// Addr returns the listening address.
func (t *TCPTransport) Addr() net.Addr { return t.ln.Addr() }

// Open dials the listener and pairs the dialled connection with the accepted one.
func (t *TCPTransport) Open(ctx context.Context) (Conn, Conn, error) {
	acceptCh := make(chan accepted, 1)
	go func() {
		c, err := t.ln.Accept()
		acceptCh <- accepted{conn: c, err: err}
	}()

	var d net.Dialer
	player, err := d.DialContext(ctx, "tcp", t.ln.Addr().String())
	if err != nil {
		return nil, nil, fmt.Errorf("dial seat: %w", err)
	}

	select {
	case a := <-acceptCh:
		if a.err != nil {
			_ = player.Close()
			return nil, nil, fmt.Errorf("accept seat: %w", a.err)
		}
		t.logger.Debug("Seat connected", "local", a.conn.LocalAddr(), "remote", a.conn.RemoteAddr())
		return a.conn, player, nil
	case <-ctx.Done():
		_ = player.Close()
		go func() {
			if a := <-acceptCh; a.conn != nil {
				_ = a.conn.Close()
			}
		}()
		return nil, nil, ctx.Err()
	}
}

// Close stops accepting seats. Open channels stay usable.
func (t *TCPTransport) Close() error {
	return t.ln.Close()
}
