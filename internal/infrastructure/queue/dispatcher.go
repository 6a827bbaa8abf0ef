package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/plotbuild/marketplace/internal/core/domain"
	"github.com/plotbuild/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes quote audit events to a fixed set of workers using
// consistent hashing on the quote request ID, guaranteeing per-request
// event ordering. Recording is best-effort: a failed write is logged and
// dropped, never surfaced to the operation that produced the event.
type Dispatcher struct {
	workers  []chan domain.QuoteEvent
	recorder ports.QuoteEventRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.QuoteEventRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.QuoteEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.QuoteEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its quote request.
// Missing IDs and timestamps are filled in here so callers only describe
// what happened.
func (d *Dispatcher) Enqueue(event domain.QuoteEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	d.workers[d.shardIndex(event.QuoteRequest)] <- event
}

// shardIndex maps a quote request ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(requestID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(requestID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.QuoteEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			recordCtx, cancel := context.WithTimeout(ctx, recordTimeout)
			err := d.recorder.Record(recordCtx, &event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("quote_request", event.QuoteRequest).
					Str("action", string(event.Action)).
					Int("worker_id", id).
					Msg("quote event recording failed")
			}
		}
	}
}
