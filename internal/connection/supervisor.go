package connection

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opsboard/eventsync/internal/auth"
	"github.com/opsboard/eventsync/internal/reconnect"
)

// stopper is the cancellable half of a pending reconnect timer.
type stopper interface {
	Stop() bool
}

// afterFunc schedules f after d. Tests substitute a fake to drive a
// simulated clock.
type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Supervisor owns the lifecycle of one logical event channel: at most
// one live socket, one pending reconnect timer, and the attempt
// counter. All mutation goes through this type.
type Supervisor struct {
	cfg        Config
	policy     reconnect.Policy
	tokens     auth.TokenSource
	dialer     Dialer
	dispatcher Dispatcher
	logger     *slog.Logger

	after afterFunc

	mu            sync.Mutex
	state         State
	sock          Socket
	attempts      int
	lastCloseCode int
	retryTimer    stopper
	tornDown      bool

	// gen is bumped on every fresh connect cycle and on Teardown.
	// Deferred work (socket callbacks, the reconnect timer) captures
	// the generation it was scheduled under and no-ops on mismatch, so
	// a stale socket's late events never mutate current state.
	gen uint64
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithPolicy overrides the default reconnect policy.
func WithPolicy(p reconnect.Policy) Option {
	return func(s *Supervisor) { s.policy = p }
}

// WithDialer overrides the transport used to open sockets.
func WithDialer(d Dialer) Option {
	return func(s *Supervisor) { s.dialer = d }
}

// NewSupervisor creates a Supervisor. tokens may be nil when the
// backend accepts anonymous channels; dispatcher receives every
// well-formed inbound frame.
func NewSupervisor(cfg Config, tokens auth.TokenSource, dispatcher Dispatcher, logger *slog.Logger, opts ...Option) *Supervisor {
	cfg.applyDefaults()

	if logger == nil {
		logger = slog.Default()
	}

	s := &Supervisor{
		cfg:        cfg,
		policy:     reconnect.Default(),
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger.With("session_id", uuid.NewString()),
		after:      realAfterFunc,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.dialer == nil {
		s.dialer = &WebSocketDialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
			WriteTimeout:     cfg.WriteTimeout,
		}
	}

	return s
}

// Connect opens a fresh socket. It is a no-op while a dial is in flight
// or the channel is already open, and after Teardown. The token source
// is read here; rotation only takes effect on the next connect cycle.
func (s *Supervisor) Connect() {
	s.mu.Lock()
	if s.tornDown || s.state == StateConnecting || s.state == StateOpen {
		s.mu.Unlock()
		return
	}

	// Supersede any pending retry so at most one cycle is in flight.
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}

	var token string
	if s.tokens != nil {
		token = s.tokens.Token()
	}

	url, err := BuildURL(s.cfg.APIURL, s.cfg.EventsPath, token)
	if err != nil {
		s.state = StateTerminal
		s.mu.Unlock()
		s.logger.Error("invalid events url", "api_url", s.cfg.APIURL, "error", err)
		return
	}

	s.state = StateConnecting
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.logger.Debug("connecting", "authenticated", token != "")

	go s.dial(gen, url)
}

// dial runs the handshake for one connect cycle.
func (s *Supervisor) dial(gen uint64, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HandshakeTimeout)
	defer cancel()

	sock, err := s.dialer.Dial(ctx, url)

	s.mu.Lock()
	if s.tornDown || gen != s.gen {
		s.mu.Unlock()
		if err == nil {
			sock.Close(reconnect.CodeNormalClosure)
		}
		return
	}

	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("dial failed", "error", err)
		// A failed handshake behaves like an abnormal close.
		s.handleClose(gen, reconnect.CodeAbnormalClosure)
		return
	}

	s.sock = sock
	s.state = StateOpen
	s.attempts = 0
	s.mu.Unlock()

	s.logger.Info("channel open")

	go s.readLoop(gen, sock)
}

// readLoop pumps frames off one socket until it dies.
func (s *Supervisor) readLoop(gen uint64, sock Socket) {
	for {
		data, err := sock.ReadMessage()
		if err != nil {
			s.handleClose(gen, closeCodeFromError(err))
			return
		}
		s.handleMessage(gen, data)
	}
}

// handleMessage parses one raw frame and dispatches it. Malformed
// frames are dropped and logged; they never take the supervisor down.
func (s *Supervisor) handleMessage(gen uint64, raw []byte) {
	s.mu.Lock()
	live := !s.tornDown && gen == s.gen
	s.mu.Unlock()
	if !live {
		return
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.logger.Warn("dropping malformed frame", "error", err)
		return
	}
	if msg.Type == "" || msg.Payload == nil {
		s.logger.Warn("dropping frame without type or payload")
		return
	}

	s.dispatcher.Dispatch(msg)
}

// handleClose records the close and consults the reconnect policy.
func (s *Supervisor) handleClose(gen uint64, code int) {
	s.mu.Lock()
	if s.tornDown || gen != s.gen {
		s.mu.Unlock()
		return
	}

	s.state = StateClosed
	s.lastCloseCode = code
	s.sock = nil

	if !s.policy.ShouldReconnect(code, s.attempts) {
		s.state = StateTerminal
		attempts := s.attempts
		s.mu.Unlock()
		s.logger.Info("channel closed for good", "code", code, "attempts", attempts)
		return
	}

	s.attempts++
	delay := s.policy.NextDelay(s.attempts)
	s.retryTimer = s.after(delay, func() { s.retryConnect(gen) })
	attempt := s.attempts
	s.mu.Unlock()

	s.logger.Warn("channel closed, reconnecting",
		"code", code,
		"attempt", attempt,
		"delay", delay,
	)
}

// retryConnect fires when the reconnect timer elapses.
func (s *Supervisor) retryConnect(gen uint64) {
	s.mu.Lock()
	if s.tornDown || gen != s.gen || s.state != StateClosed {
		s.mu.Unlock()
		return
	}
	s.retryTimer = nil
	s.mu.Unlock()

	s.Connect()
}

// envelope is the outbound frame shape.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Send writes one frame, fire-and-forget: while the channel is not open
// the message is silently dropped, and write failures are logged only.
// The subsequent close event owns the state transition.
func (s *Supervisor) Send(eventType string, payload any) {
	s.mu.Lock()
	sock := s.sock
	open := s.state == StateOpen && sock != nil
	s.mu.Unlock()
	if !open {
		return
	}

	data, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		s.logger.Warn("dropping unmarshalable outbound frame", "type", eventType, "error", err)
		return
	}

	if err := sock.WriteMessage(data); err != nil {
		s.logger.Warn("send failed", "type", eventType, "error", err)
	}
}

// Teardown makes the supervisor inert: it cancels any pending reconnect
// timer, closes the live socket with the normal-closure code, and bumps
// the generation so any in-flight callback from the just-closed socket
// is a no-op even if it fires after this returns.
func (s *Supervisor) Teardown() {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		return
	}
	s.tornDown = true
	s.gen++
	s.state = StateTerminal

	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}

	sock := s.sock
	s.sock = nil
	s.mu.Unlock()

	if sock != nil {
		sock.Close(reconnect.CodeNormalClosure)
	}

	s.logger.Debug("supervisor torn down")
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns the consecutive unsuccessful reconnect count. It is
// reset to zero on every successful open.
func (s *Supervisor) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// LastCloseCode returns the close code of the most recent close, or 0
// if the channel has never closed. Together with Attempts it lets a
// caller distinguish attempt exhaustion from a terminal-code close.
func (s *Supervisor) LastCloseCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCloseCode
}
