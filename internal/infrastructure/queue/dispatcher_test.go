package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
)

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.QuoteEvent
	done   chan struct{}
	want   int
}

func newStubRecorder(want int) *stubRecorder {
	return &stubRecorder{done: make(chan struct{}), want: want}
}

func (r *stubRecorder) Record(ctx context.Context, event *domain.QuoteEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func (r *stubRecorder) recorded() []domain.QuoteEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.QuoteEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
}

func TestDispatcher_FillsIDAndTimestamp(t *testing.T) {
	recorder := newStubRecorder(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, recorder, zerolog.Nop())
	d.Start(ctx)

	before := time.Now().UTC()
	d.Enqueue(domain.QuoteEvent{
		QuoteRequest: "req_1",
		Quote:        "quote_1",
		Actor:        "user_1",
		Action:       domain.ActionSubmitted,
	})
	waitFor(t, recorder.done)

	events := recorder.recorded()
	if events[0].ID == "" {
		t.Fatalf("event ID not assigned")
	}
	if events[0].At.Before(before) {
		t.Fatalf("event timestamp not stamped: %v", events[0].At)
	}
	if events[0].Action != domain.ActionSubmitted {
		t.Fatalf("unexpected action %s", events[0].Action)
	}
}

func TestDispatcher_OrdersEventsPerRequest(t *testing.T) {
	const n = 20
	recorder := newStubRecorder(n)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, recorder, zerolog.Nop())
	d.Start(ctx)

	actions := []domain.QuoteAction{
		domain.ActionSubmitted, domain.ActionAccepted, domain.ActionRejected, domain.ActionCancelled,
	}
	for i := 0; i < n; i++ {
		d.Enqueue(domain.QuoteEvent{
			QuoteRequest: "req_ordered",
			Actor:        "user_1",
			Action:       actions[i%len(actions)],
		})
	}
	waitFor(t, recorder.done)

	// Same request ID means same shard, so the recorded order must match
	// the enqueue order.
	events := recorder.recorded()
	for i, event := range events {
		if event.Action != actions[i%len(actions)] {
			t.Fatalf("event %d out of order: got %s", i, event.Action)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newStubRecorder(0), zerolog.Nop())

	first := d.shardIndex("req_42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("req_42"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
