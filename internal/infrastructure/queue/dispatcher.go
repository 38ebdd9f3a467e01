package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// SideCall is a best-effort call to a peer service, executed off the
// request path. Key shards calls so work for the same subject stays
// ordered; Op names the call in logs and metrics.
type SideCall struct {
	Key string
	Op  string
	Run func(ctx context.Context) error
}

// Dispatcher routes side calls to a fixed set of workers using consistent
// hashing on the key. A failed call is logged and dropped; nothing on the
// request path ever waits for it.
type Dispatcher struct {
	workers []chan SideCall
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan SideCall, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan SideCall, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a side call to the worker responsible for its key. When
// the worker's queue is full the call is dropped rather than blocking
// the caller.
func (d *Dispatcher) Enqueue(call SideCall) {
	idx := d.shardIndex(call.Key)
	select {
	case d.workers[idx] <- call:
		metrics.SideCallsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.SideCallsDroppedTotal.Inc()
		d.log.Warn().
			Str("op", call.Op).
			Int("worker_id", idx).
			Msg("side call dropped, queue full")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan SideCall) {
	for {
		select {
		case <-ctx.Done():
			return
		case call, ok := <-ch:
			if !ok {
				return
			}
			metrics.SideCallsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := call.Run(ctx); err != nil {
				d.log.Warn().Err(err).
					Str("op", call.Op).
					Int("worker_id", id).
					Msg("side call failed")
			}
		}
	}
}
