package protocol

import (
	"errors"
	"sync"

	"github.com/luca-patrignani/cards-against/domain/player"
)

// Handler receives a decoded message from a peer.
type Handler func(from player.Player, env Envelope)

// Router dispatches inbound frames to at most one handler per event.
type Router struct {
	mu       sync.RWMutex
	handlers map[Event]Handler
}

func NewRouter() *Router {
	return &Router{handlers: make(map[Event]Handler)}
}

// Handle registers h for event, replacing any previous handler. A nil h
// removes the handler.
func (r *Router) Handle(event Event, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, event)
		return
	}
	r.handlers[event] = h
}

// Registered reports whether a handler is active for event.
func (r *Router) Registered(event Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[event]
	return ok
}

// Dispatch decodes data and runs the matching handler. Unknown events and
// events without a handler are ignored. A malformed frame is returned as
// an error and no handler runs.
func (r *Router) Dispatch(from player.Player, data []byte) error {
	env, err := Decode(data)
	if errors.Is(err, ErrUnknownEvent) {
		return nil
	}
	if err != nil {
		return err
	}
	r.mu.RLock()
	h, ok := r.handlers[env.Message.Event()]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	h(from, env)
	return nil
}
