package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fatiguelens/internal/metrics"
	"fatiguelens/internal/models"
)

// Sink is the durable store accepting audit records. Each Append call must
// manage its own connection; the logger never holds one across retries.
type Sink interface {
	Append(ctx context.Context, rec models.AuditRecord) error
}

// Options tune the async pipeline. Zero values fall back to sane defaults.
type Options struct {
	Workers      int
	QueueSize    int
	MaxAttempts  int
	RetryDelay   time.Duration
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 128
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 500 * time.Millisecond
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	return o
}

// Logger persists audit records off the request path. Submit never blocks and
// never reports failure to the caller; delivery is retried a bounded number of
// times and then the record is dropped, with the failure visible only in the
// operational log and the counters. Ordering across submissions is not
// guaranteed.
type Logger struct {
	sink    Sink
	queue   chan models.AuditRecord
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	sleep  func(time.Duration)
}

// NewLogger starts the worker pool immediately.
func NewLogger(sink Sink, opts Options, m *metrics.Metrics, logger *zap.Logger) *Logger {
	opts = opts.withDefaults()
	l := &Logger{
		sink:    sink,
		queue:   make(chan models.AuditRecord, opts.QueueSize),
		opts:    opts,
		logger:  logger,
		metrics: m,
		sleep:   time.Sleep,
	}

	l.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go l.worker()
	}
	return l
}

// Submit enqueues a record and returns immediately. A full queue drops the
// record rather than blocking the request that produced it.
func (l *Logger) Submit(rec models.AuditRecord) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		l.metrics.AuditDropped.Inc()
		l.logger.Warn("audit logger closed, dropping record", zap.String("id", rec.ID))
		return
	}

	select {
	case l.queue <- rec:
		l.metrics.AuditSubmitted.Inc()
	default:
		l.metrics.AuditDropped.Inc()
		l.logger.Warn("audit queue full, dropping record", zap.String("id", rec.ID))
	}
}

// Close stops accepting records and drains the queue.
func (l *Logger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Logger) worker() {
	defer l.wg.Done()
	for rec := range l.queue {
		l.deliver(rec)
	}
}

func (l *Logger) deliver(rec models.AuditRecord) {
	var lastErr error
	for attempt := 1; attempt <= l.opts.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), l.opts.WriteTimeout)
		err := l.sink.Append(ctx, rec)
		cancel()

		if err == nil {
			l.metrics.AuditCommitted.Inc()
			l.logger.Debug("audit record committed",
				zap.String("id", rec.ID),
				zap.Int("attempt", attempt),
			)
			return
		}

		lastErr = err
		l.logger.Warn("audit write failed",
			zap.String("id", rec.ID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < l.opts.MaxAttempts {
			l.metrics.AuditRetries.Inc()
			l.sleep(l.opts.RetryDelay)
		}
	}

	l.metrics.AuditDropped.Inc()
	l.logger.Error("audit record dropped after retries",
		zap.String("id", rec.ID),
		zap.Int("attempts", l.opts.MaxAttempts),
		zap.Error(lastErr),
	)
}
