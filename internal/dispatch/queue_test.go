package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/ircwire/internal/irc"
	"github.com/user/ircwire/internal/types"
)

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue(2)
	ctx := context.Background()
	queue.Start(ctx)
	defer queue.Stop()

	var running int32
	var maxSeen int32

	queue.deliver = func(d *Delivery) error {
		current := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&maxSeen)
			if current <= old || atomic.CompareAndSwapInt32(&maxSeen, old, current) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}

	for i := 0; i < 5; i++ {
		d := &Delivery{
			ConnID: types.ConnID(fmt.Sprintf("conn-%d", i)),
			Event:  irc.Ping{Target: "irc.example.net"},
		}
		if err := queue.Enqueue(d); err != nil {
			t.Fatal(err)
		}
	}

	time.Sleep(500 * time.Millisecond)

	if m := atomic.LoadInt32(&maxSeen); m > 2 {
		t.Errorf("expected max 2 concurrent, saw %d", m)
	}
}

func TestQueueDeliverCalled(t *testing.T) {
	queue := NewQueue(1)
	ctx := context.Background()
	queue.Start(ctx)
	defer queue.Stop()

	var delivered int32

	queue.SetDeliver(func(d *Delivery) error {
		atomic.AddInt32(&delivered, 1)
		return nil
	})

	d := &Delivery{
		ConnID: types.ConnID("test-conn"),
		Event:  irc.Raw{Line: "PING :srv"},
	}
	if err := queue.Enqueue(d); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&delivered) != 1 {
		t.Errorf("expected 1 delivery, got %d", delivered)
	}
}

func TestQueueSameConnOrdering(t *testing.T) {
	queue := NewQueue(1)
	ctx := context.Background()
	queue.Start(ctx)
	defer queue.Stop()

	var mu sync.Mutex
	var order []string
	done := make(chan struct{})

	queue.SetDeliver(func(d *Delivery) error {
		mu.Lock()
		order = append(order, d.Event.(irc.Message).Text)
		n := len(order)
		mu.Unlock()
		if n == 3 {
			close(done)
		}
		return nil
	})

	connID := types.ConnID("same-conn")
	for i := 0; i < 3; i++ {
		d := &Delivery{
			ConnID: connID,
			Event:  irc.Message{Source: "a", Target: "#x", Text: fmt.Sprintf("%d", i)},
		}
		if err := queue.Enqueue(d); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for deliveries")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if want := fmt.Sprintf("%d", i); v != want {
			t.Errorf("expected order[%d] = %s, got %s", i, want, v)
		}
	}
}

func TestQueueNoDeliverFunc(t *testing.T) {
	queue := NewQueue(1)
	ctx := context.Background()
	queue.Start(ctx)
	defer queue.Stop()

	// Enqueue without setting a deliver func -- should not panic
	d := &Delivery{
		ConnID: types.ConnID("no-deliver"),
		Event:  irc.Quit{Source: "a"},
	}
	if err := queue.Enqueue(d); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
}
