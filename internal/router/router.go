// Package router maps inbound event types to cache invalidations.
//
// The table is open: new event families are added by registration, not
// by touching the dispatch loop. Unknown event types are tolerated
// silently so the server can ship new events ahead of client deploys.
package router

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/opsboard/eventsync/internal/cache"
	"github.com/opsboard/eventsync/internal/connection"
)

// Handler processes one message of a registered type.
type Handler interface {
	Handle(msg connection.Message)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(connection.Message)

func (f HandlerFunc) Handle(msg connection.Message) { f(msg) }

// Router dispatches inbound messages to registered handlers and cache
// invalidations. Registration happens during wiring, before the channel
// opens; the table is read-only once Dispatch starts.
type Router struct {
	sink   cache.Invalidator
	logger *slog.Logger

	keys     map[string][]string // event type → cache keys, unique per type
	handlers map[string][]Handler

	mu         sync.Mutex
	dispatched int64
	unknown    int64
}

// Stats contains runtime counters.
type Stats struct {
	Dispatched int64
	Unknown    int64
}

// New creates a Router with an empty table.
func New(sink cache.Invalidator, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		sink:     sink,
		logger:   logger,
		keys:     make(map[string][]string),
		handlers: make(map[string][]Handler),
	}
}

// RegisterKeys binds an event type to cache keys to invalidate.
// Duplicate keys for the same type are ignored.
func (r *Router) RegisterKeys(eventType string, keys ...string) {
	for _, key := range keys {
		if slices.Contains(r.keys[eventType], key) {
			continue
		}
		r.keys[eventType] = append(r.keys[eventType], key)
	}
}

// Register binds an event type to an arbitrary handler.
func (r *Router) Register(eventType string, h Handler) {
	r.handlers[eventType] = append(r.handlers[eventType], h)
}

// RegisterFunc binds an event type to a handler function.
func (r *Router) RegisterFunc(eventType string, fn func(connection.Message)) {
	r.Register(eventType, HandlerFunc(fn))
}

// RegisterDefaults installs the baseline board event table.
func (r *Router) RegisterDefaults() {
	r.RegisterKeys("ticket_updated", "tickets")
	r.RegisterKeys("ticket_created", "tickets")
	r.RegisterKeys("agent_updated", "agents")
	r.RegisterKeys("agent_created", "agents")
}

// Dispatch routes one message. Unregistered types do nothing.
func (r *Router) Dispatch(msg connection.Message) {
	keys, keyed := r.keys[msg.Type]
	handlers, handled := r.handlers[msg.Type]

	if !keyed && !handled {
		r.mu.Lock()
		r.unknown++
		r.mu.Unlock()
		r.logger.Debug("skipping event type", "type", msg.Type)
		return
	}

	for _, key := range keys {
		r.sink.Invalidate(key)
	}
	for _, h := range handlers {
		h.Handle(msg)
	}

	r.mu.Lock()
	r.dispatched++
	r.mu.Unlock()
}

// Stats returns current counters.
func (r *Router) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Dispatched: r.dispatched,
		Unknown:    r.unknown,
	}
}
