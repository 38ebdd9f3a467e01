package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcher_ExecutesEnqueuedCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)

	var mu sync.Mutex
	ran := make(map[string]bool)
	done := make(chan struct{}, 3)

	for _, key := range []string{"a", "b", "c"} {
		key := key
		d.Enqueue(SideCall{
			Key: key,
			Op:  "test",
			Run: func(context.Context) error {
				mu.Lock()
				ran[key] = true
				mu.Unlock()
				done <- struct{}{}
				return nil
			},
		})
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("side call %d never ran", i)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, key := range []string{"a", "b", "c"} {
		if !ran[key] {
			t.Fatalf("call %q did not run", key)
		}
	}
}

func TestDispatcher_SameKeyStaysOrdered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, zerolog.Nop())
	d.Start(ctx)

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 0; i < 20; i++ {
		i := i
		d.Enqueue(SideCall{
			Key: "property:42",
			Op:  "test",
			Run: func(context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				if i == 19 {
					close(done)
				}
				return nil
			},
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("calls did not drain")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, got := range order {
		if got != i {
			t.Fatalf("same-key calls ran out of order: %v", order)
		}
	}
}

func TestDispatcher_FailedCallIsDroppedQuietly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, zerolog.Nop())
	d.Start(ctx)

	done := make(chan struct{})
	d.Enqueue(SideCall{
		Key: "x",
		Op:  "boom",
		Run: func(context.Context) error { return errors.New("peer down") },
	})
	d.Enqueue(SideCall{
		Key: "x",
		Op:  "after",
		Run: func(context.Context) error {
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("a failed call must not stop the worker")
	}
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	// Never started: the single worker drains nothing, so the buffer
	// fills and the overflow call must return immediately.
	d := NewDispatcher(1, zerolog.Nop())

	for i := 0; i < channelBuffer; i++ {
		d.Enqueue(SideCall{Key: "k", Op: "fill", Run: func(context.Context) error { return nil }})
	}

	returned := make(chan struct{})
	go func() {
		d.Enqueue(SideCall{Key: "k", Op: "overflow", Run: func(context.Context) error { return nil }})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}
}
