// internal/dispatch/bus.go
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/types"
)

const defaultMaxConcurrent = 8

// Bus fans events out to subscribers. Publish is non-blocking: events land
// on the publishing connection's FIFO lane and handlers run on the lane's
// goroutine, so handlers for one connection always observe events in
// arrival order.
type Bus struct {
	registry *Registry
	queue    *Queue
}

// NewBus creates a Bus. maxConcurrent optionally caps cross-connection
// delivery parallelism (default 8).
func NewBus(maxConcurrent ...int64) *Bus {
	limit := int64(defaultMaxConcurrent)
	if len(maxConcurrent) > 0 && maxConcurrent[0] > 0 {
		limit = maxConcurrent[0]
	}

	b := &Bus{
		registry: NewRegistry(),
		queue:    NewQueue(limit),
	}
	b.queue.SetDeliver(b.fanOut)
	return b
}

// Start begins delivering published events. Must be called before Publish.
func (b *Bus) Start(ctx context.Context) {
	b.queue.Start(ctx)
}

// Stop drains the lanes and waits for in-flight handlers.
func (b *Bus) Stop() {
	b.queue.Stop()
}

// Subscribe registers a handler for the given event kind. Use KindAll to
// observe everything.
func (b *Bus) Subscribe(kind irc.EventKind, handler Handler) types.SubscriptionID {
	return b.registry.Subscribe(kind, handler)
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(id types.SubscriptionID) {
	b.registry.Unsubscribe(id)
}

// Publish enqueues an event for delivery. Events with no subscribers are
// dropped silently.
func (b *Bus) Publish(connID types.ConnID, ev irc.Event) {
	if err := b.queue.Enqueue(&Delivery{ConnID: connID, Event: ev}); err != nil {
		slog.Warn("event dropped", "conn_id", string(connID), "kind", string(ev.Kind()), "error", err)
	}
}

// WaitIdle blocks until all in-flight deliveries have finished, or the
// timeout expires.
func (b *Bus) WaitIdle(timeout time.Duration) bool {
	return b.queue.WaitIdle(timeout)
}

func (b *Bus) fanOut(d *Delivery) error {
	var last error
	for _, h := range b.registry.HandlersFor(d.Event.Kind()) {
		if err := h(d.ConnID, d.Event); err != nil {
			last = err
		}
	}
	return last
}
