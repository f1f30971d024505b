package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/partsquote/gateway/internal/api/metrics"
	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes access events to a fixed set of workers using hashing
// on the event's shard key, so events for one subject are recorded in order.
// Publish never blocks: when a worker's buffer is full the event is dropped
// and counted.
type Dispatcher struct {
	workers []chan domain.AccessEvent
	service ports.AccessLogService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AccessLogService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AccessEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccessEvent, channelBuffer)
	}
	return d
}

var _ ports.AccessEventPublisher = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or, after Close, once their buffers are drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands event to the worker responsible for its shard key.
func (d *Dispatcher) Publish(event domain.AccessEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AccessEventsDroppedTotal.WithLabelValues("closed").Inc()
		return
	}

	idx := d.shardIndex(event.ShardKey())
	select {
	case d.workers[idx] <- event:
		metrics.AccessEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AccessEventsDroppedTotal.WithLabelValues("full").Inc()
		d.log.Warn().
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("access event dropped, worker buffer full")
	}
}

// Close stops accepting events and waits for workers to drain what is
// already queued.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a shard key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AccessEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AccessEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.record(ctx, id, event)
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.AccessEvent) {
	// Detached from ctx cancellation so events drained during shutdown
	// still reach storage.
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := d.service.Record(recCtx, event); err != nil {
		metrics.AccessEventsRecordedTotal.WithLabelValues(string(event.Kind), "error").Inc()
		d.log.Error().Err(err).
			Str("kind", string(event.Kind)).
			Int("worker_id", id).
			Msg("access event recording failed")
		return
	}
	metrics.AccessEventsRecordedTotal.WithLabelValues(string(event.Kind), "ok").Inc()
}
