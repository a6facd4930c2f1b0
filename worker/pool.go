package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sensorkit/synthexpr/internal/helpers"
)

// Pool is a generic worker pool processing work items of type T. Each item
// is processed with the context passed to Start, so per-item evaluation
// state (bindings, statistical contexts) must travel inside T, never in
// shared pool state.
type Pool[T any] struct {
	workers   int
	queueSize int
	processor func(context.Context, T) error

	workChan chan T
	wg       sync.WaitGroup

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool

	// Statistics (atomic)
	submitted int64
	processed int64
	failed    int64

	metrics *poolMetrics

	logHandler slog.Handler
	logger     *slog.Logger
}

type poolMetrics struct {
	queueDepth prometheus.Gauge
	submitted  prometheus.Counter
	processed  prometheus.Counter
	failed     prometheus.Counter
	duration   prometheus.Histogram
}

// Option configures a Pool.
type Option[T any] func(*Pool[T])

// WithLogHandler sets the slog handler for pool logging.
func WithLogHandler[T any](handler slog.Handler) Option[T] {
	return func(p *Pool[T]) {
		p.logHandler = handler
	}
}

// WithRegisterer registers pool metrics (queue depth, throughput, failures,
// processing time) with the given Prometheus registerer under the prefix.
func WithRegisterer[T any](reg prometheus.Registerer, prefix string) Option[T] {
	return func(p *Pool[T]) {
		if reg == nil || prefix == "" {
			return
		}
		m := &poolMetrics{
			queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: prefix + "_queue_depth",
				Help: "Current worker pool queue depth",
			}),
			submitted: prometheus.NewCounter(prometheus.CounterOpts{
				Name: prefix + "_submitted_total",
				Help: "Total work items submitted",
			}),
			processed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: prefix + "_processed_total",
				Help: "Total work items processed",
			}),
			failed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: prefix + "_failed_total",
				Help: "Total work items that failed processing",
			}),
			duration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    prefix + "_processing_duration_seconds",
				Help:    "Time spent processing work items",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			}),
		}
		for _, c := range []prometheus.Collector{
			m.queueDepth, m.submitted, m.processed, m.failed, m.duration,
		} {
			if err := reg.Register(c); err != nil {
				return
			}
		}
		p.metrics = m
	}
}

// NewPool creates a worker pool. Zero or negative workers/queueSize fall
// back to defaults (4 workers, 256 items).
func NewPool[T any](workers, queueSize int, processor func(context.Context, T) error, opts ...Option[T]) *Pool[T] {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	if processor == nil {
		panic(ErrNilProcessor)
	}

	pool := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		processor: processor,
		workChan:  make(chan T, queueSize),
	}
	for _, opt := range opts {
		opt(pool)
	}

	pool.logHandler, pool.logger = helpers.SetupLogger(pool.logHandler, "worker", "Pool")
	return pool
}

// Start launches the workers. The given context cancels all processing.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
	p.logger.InfoContext(ctx, "worker pool started", "workers", p.workers, "queueSize", p.queueSize)
	return nil
}

func (p *Pool[T]) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-p.workChan:
			if !ok {
				return
			}
			p.process(ctx, item)
		}
	}
}

func (p *Pool[T]) process(ctx context.Context, item T) {
	start := time.Now()
	err := p.processor(ctx, item)
	elapsed := time.Since(start)

	if p.metrics != nil {
		p.metrics.queueDepth.Set(float64(len(p.workChan)))
		p.metrics.duration.Observe(elapsed.Seconds())
	}

	if err != nil {
		atomic.AddInt64(&p.failed, 1)
		if p.metrics != nil {
			p.metrics.failed.Inc()
		}
		p.logger.DebugContext(ctx, "work item failed", "error", err)
		return
	}

	atomic.AddInt64(&p.processed, 1)
	if p.metrics != nil {
		p.metrics.processed.Inc()
	}
}

// Submit enqueues a work item without blocking. Returns ErrQueueFull when
// the queue is at capacity.
func (p *Pool[T]) Submit(item T) error {
	// The lock is held across the send: Stop must not close the queue
	// between the flag check and the send.
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.workChan <- item:
		atomic.AddInt64(&p.submitted, 1)
		if p.metrics != nil {
			p.metrics.submitted.Inc()
			p.metrics.queueDepth.Set(float64(len(p.workChan)))
		}
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight work to finish, up to the
// timeout.
func (p *Pool[T]) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	if !p.started {
		p.lifecycleMu.Unlock()
		return ErrPoolNotStarted
	}
	if p.stopped {
		p.lifecycleMu.Unlock()
		return ErrPoolStopped
	}
	p.stopped = true
	p.lifecycleMu.Unlock()

	close(p.workChan)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrStopTimeout
	}
}

// Stats is a snapshot of the pool's counters.
type Stats struct {
	Submitted int64
	Processed int64
	Failed    int64
	QueueLen  int
}

// Stats returns the current counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Submitted: atomic.LoadInt64(&p.submitted),
		Processed: atomic.LoadInt64(&p.processed),
		Failed:    atomic.LoadInt64(&p.failed),
		QueueLen:  len(p.workChan),
	}
}
