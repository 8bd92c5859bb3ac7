// Package transport opens the private channel that links the dealer to one
// player actor. Every transport stays on the local machine; they only differ
// in what carries the bytes.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Transport names accepted by New.
const (
	Pipe      = "pipe"
	TCP       = "tcp"
	WebSocket = "websocket"
)

var ErrUnknownTransport = errors.New("unknown transport")

// Conn is one end of a seat's channel: an ordered byte stream with deadlines.
type Conn interface {
	io.ReadWriteCloser

	// SetDeadline bounds pending and future reads and writes. The zero time
	// clears it.
	SetDeadline(t time.Time) error
}

// Transport builds channels. Open is called once per seat, before the actor
// for that seat starts.
type Transport interface {
	Name() string
	Open(ctx context.Context) (dealer Conn, player Conn, err error)
	Close() error
}

// Names lists the supported transports.
func Names() []string {
	return []string{Pipe, TCP, WebSocket}
}

// New creates the transport registered under name.
func New(name string, logger *log.Logger) (Transport, error) {
	switch name {
	case Pipe, "":
		return NewPipe(), nil
	case TCP:
		return NewTCP(logger)
	case WebSocket:
		return NewWebSocket(logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, name)
	}
}
