// internal/dispatch/queue.go
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/types"
)

// Delivery is one event waiting to be handed to subscribers.
type Delivery struct {
	ConnID types.ConnID
	Event  irc.Event
}

// Queue manages per-connection lanes with a global concurrency semaphore.
// Each connection gets its own FIFO channel (lane) so that events from a
// connection are delivered in arrival order, while the semaphore limits
// the total number of concurrent deliveries across all connections.
type Queue struct {
	lanes     map[types.ConnID]chan *Delivery
	semaphore *semaphore.Weighted
	deliver   func(*Delivery) error
	active    atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.RWMutex
}

// NewQueue creates a Queue that allows up to maxConcurrent deliveries to
// execute simultaneously across all connection lanes.
func NewQueue(maxConcurrent int64) *Queue {
	return &Queue{
		lanes:     make(map[types.ConnID]chan *Delivery),
		semaphore: semaphore.NewWeighted(maxConcurrent),
	}
}

// Start initialises the queue's context. Must be called before Enqueue.
func (q *Queue) Start(ctx context.Context) {
	q.ctx, q.cancel = context.WithCancel(ctx)
}

// Stop cancels the queue context, closes all lanes, and waits for in-flight
// deliveries to finish.
func (q *Queue) Stop() {
	if q.cancel != nil {
		q.cancel()
	}
	q.mu.Lock()
	for _, lane := range q.lanes {
		close(lane)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

// Enqueue adds a delivery to the connection's lane, creating the lane (and
// its goroutine) on first use. Returns an error if the lane's buffer is
// full.
func (q *Queue) Enqueue(d *Delivery) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	lane, exists := q.lanes[d.ConnID]
	if !exists {
		lane = make(chan *Delivery, 100)
		q.lanes[d.ConnID] = lane
		q.wg.Add(1)
		go q.processLane(d.ConnID, lane)
	}

	select {
	case lane <- d:
		return nil
	default:
		return fmt.Errorf("queue full for connection %s", d.ConnID)
	}
}

// processLane drains a single connection lane, acquiring a semaphore slot
// before invoking deliver synchronously. This ensures strict FIFO ordering
// within a connection while the semaphore limits cross-connection
// parallelism.
func (q *Queue) processLane(connID types.ConnID, lane chan *Delivery) {
	defer q.wg.Done()
	for {
		select {
		case d, ok := <-lane:
			if !ok {
				return
			}
			if err := q.semaphore.Acquire(q.ctx, 1); err != nil {
				return
			}
			if q.deliver != nil {
				q.active.Add(1)
				if err := q.deliver(d); err != nil {
					slog.Error("event delivery failed", "conn_id", string(connID), "kind", string(d.Event.Kind()), "error", err)
				}
				q.active.Add(-1)
			}
			q.semaphore.Release(1)
		case <-q.ctx.Done():
			return
		}
	}
}

// WaitIdle blocks until no deliveries are actively in flight, or the
// timeout expires. Returns true if idle, false if timed out.
func (q *Queue) WaitIdle(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if q.active.Load() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// SetDeliver sets the function invoked for each dequeued delivery.
func (q *Queue) SetDeliver(fn func(*Delivery) error) {
	q.deliver = fn
}
