package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write the close frame to the peer
	writeWait = time.Second

	seatPath = "/seat"
)

// WebSocketTransport links both ends with a loopback websocket. Each frame the
// protocol writes becomes one binary message.
type WebSocketTransport struct {
	ln       net.Listener
	srv      *http.Server
	upgrader websocket.Upgrader
	dialer   websocket.Dialer
	accepted chan *websocket.Conn
	done     chan struct{}
	once     sync.Once
	logger   *log.Logger
}

// NewWebSocket starts an HTTP server on an ephemeral loopback port that
// upgrades every request on the seat path.
func NewWebSocket(logger *log.Logger) (*WebSocketTransport, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	t := &WebSocketTransport{
		ln: ln,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64,
			WriteBufferSize: 64,
		},
		dialer: websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
			ReadBufferSize:   64,
			WriteBufferSize:  64,
		},
		accepted: make(chan *websocket.Conn),
		done:     make(chan struct{}),
		logger:   logger.WithPrefix("websocket"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(seatPath, t.handleSeat)
	t.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := t.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("Seat server stopped", "error", err)
		}
	}()

	t.logger.Debug("Listening for seats", "addr", ln.Addr())
	return t, nil
}

func (t *WebSocketTransport) Name() string { return WebSocket }

// URL returns the address players dial.
func (t *WebSocketTransport) URL() string {
	return "ws://" + t.ln.Addr().String() + seatPath
}

func (t *WebSocketTransport) handleSeat(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.Error("Failed to upgrade seat", "error", err)
		return
	}

	select {
	case t.accepted <- conn:
	case <-t.done:
		_ = conn.Close()
	}
}

// Open dials the seat endpoint and pairs the client side with the upgraded
// server side.
func (t *WebSocketTransport) Open(ctx context.Context) (Conn, Conn, error) {
	player, _, err := t.dialer.DialContext(ctx, t.URL(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("dial seat: %w", err)
	}

	select {
	case dealer := <-t.accepted:
		return newWSConn(dealer), newWSConn(player), nil
	case <-ctx.Done():
		_ = player.Close()
		return nil, nil, ctx.Err()
	case <-t.done:
		_ = player.Close()
		return nil, nil, net.ErrClosed
	}
}

// Close shuts the seat server down. Upgraded connections are hijacked and
// stay open until their owners close them.
func (t *WebSocketTransport) Close() error {
	var err error
	t.once.Do(func() {
		close(t.done)
		err = t.srv.Close()
	})
	return err
}

// wsConn presents a websocket as a byte stream. Reads continue across message
// boundaries so fixed-size frames decode the same as on a pipe.
type wsConn struct {
	conn      *websocket.Conn
	reader    io.Reader
	closeOnce sync.Once
	closeErr  error
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.reader == nil {
			_, r, err := c.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			c.reader = r
		}

		n, err := c.reader.Read(p)
		if errors.Is(err, io.EOF) {
			c.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.conn.SetReadDeadline(t); err != nil {
		return err
	}
	return c.conn.SetWriteDeadline(t)
}

// Close sends a normal close frame, best effort, then drops the connection.
func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
