// internal/dispatch/registry.go
package dispatch

import (
	"sync"

	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/types"
)

// Handler reacts to one event on one connection. Errors are logged by the
// bus, not returned to the publisher.
type Handler func(connID types.ConnID, ev irc.Event) error

// Registry routes events to handlers by event kind. A handler subscribed
// to KindAll sees every event.
type Registry struct {
	mu       sync.RWMutex
	handlers map[irc.EventKind]map[types.SubscriptionID]Handler
	kinds    map[types.SubscriptionID]irc.EventKind
}

// KindAll subscribes a handler to every event kind.
const KindAll irc.EventKind = "*"

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[irc.EventKind]map[types.SubscriptionID]Handler),
		kinds:    make(map[types.SubscriptionID]irc.EventKind),
	}
}

// Subscribe adds a handler for the given kind and returns its subscription
// id for later removal.
func (r *Registry) Subscribe(kind irc.EventKind, handler Handler) types.SubscriptionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := types.NewSubscriptionID()
	if r.handlers[kind] == nil {
		r.handlers[kind] = make(map[types.SubscriptionID]Handler)
	}
	r.handlers[kind][id] = handler
	r.kinds[id] = kind
	return id
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (r *Registry) Unsubscribe(id types.SubscriptionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind, ok := r.kinds[id]
	if !ok {
		return
	}
	delete(r.handlers[kind], id)
	delete(r.kinds, id)
}

// HandlersFor returns the handlers subscribed to the given kind plus the
// KindAll subscribers, in no particular order.
func (r *Registry) HandlersFor(kind irc.EventKind) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handler, 0, len(r.handlers[kind])+len(r.handlers[KindAll]))
	for _, h := range r.handlers[kind] {
		out = append(out, h)
	}
	for _, h := range r.handlers[KindAll] {
		out = append(out, h)
	}
	return out
}
