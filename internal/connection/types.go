package connection

import (
	"context"
	"encoding/json"
	"time"
)

// State is the lifecycle state of the supervisor's channel.
type State int

const (
	// StateIdle is the state before the first Connect call.
	StateIdle State = iota

	// StateConnecting means a dial is in flight.
	StateConnecting

	// StateOpen means the socket is live and frames flow.
	StateOpen

	// StateClosed means the last socket closed and a reconnect may be
	// pending.
	StateClosed

	// StateTerminal means no further reconnect will happen: terminal
	// close code, attempts exhausted, or Teardown.
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateTerminal:
		return "terminal"
	}
	return "unknown"
}

// Message is one parsed inbound frame. Payload is opaque; its shape is
// defined per type by the server contract.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher receives every well-formed inbound Message.
type Dispatcher interface {
	Dispatch(msg Message)
}

// Socket is one live transport attempt. A fresh Socket is dialed per
// connect cycle and never reused.
type Socket interface {
	// ReadMessage blocks until the next frame or a read failure.
	ReadMessage() ([]byte, error)

	// WriteMessage writes one text frame.
	WriteMessage(data []byte) error

	// Close sends a close frame with the given code and closes the
	// underlying transport.
	Close(code int) error
}

// Dialer opens Sockets. The production implementation wraps
// gorilla/websocket; tests substitute fakes.
type Dialer interface {
	Dial(ctx context.Context, url string) (Socket, error)
}

// Config configures a Supervisor.
type Config struct {
	// APIURL is the backend HTTP(S) origin; the scheme is rewritten to
	// ws/wss and EventsPath appended.
	APIURL string

	// EventsPath is the events endpoint path (default "/ws/events").
	EventsPath string

	// HandshakeTimeout bounds the dial (default 10s).
	HandshakeTimeout time.Duration

	// WriteTimeout is the write deadline for outbound frames (default 5s).
	WriteTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.EventsPath == "" {
		c.EventsPath = "/ws/events"
	}
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 5 * time.Second
	}
}
