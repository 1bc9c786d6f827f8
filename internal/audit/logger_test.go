package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"fatiguelens/internal/metrics"
	"fatiguelens/internal/models"
)

type fakeSink struct {
	mu       sync.Mutex
	failures int
	calls    int
	appended []models.AuditRecord
	block    chan struct{}
	entered  chan struct{}
}

func (f *fakeSink) Append(ctx context.Context, rec models.AuditRecord) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("sink unavailable")
	}
	f.appended = append(f.appended, rec)
	return nil
}

func (f *fakeSink) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSink) appendedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

func record(id string) models.AuditRecord {
	return models.AuditRecord{
		ID:         id,
		Age:        25,
		Platform:   "Instagram",
		Prediction: 4.2,
		Category:   "Average",
		CreatedAt:  time.Now().UTC(),
	}
}

func newTestLogger(sink Sink, opts Options, m *metrics.Metrics) *Logger {
	l := NewLogger(sink, opts, m, zap.NewNop())
	l.sleep = func(time.Duration) {}
	return l
}

func TestDeliverSuccessFirstAttempt(t *testing.T) {
	sink := &fakeSink{}
	m := metrics.New()
	l := newTestLogger(sink, Options{MaxAttempts: 3}, m)

	l.Submit(record("a"))
	l.Close()

	if sink.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", sink.callCount())
	}
	if got := testutil.ToFloat64(m.AuditCommitted); got != 1 {
		t.Fatalf("committed = %g, want 1", got)
	}
}

func TestDeliverRetriesThenSucceeds(t *testing.T) {
	sink := &fakeSink{failures: 2}
	m := metrics.New()
	l := newTestLogger(sink, Options{MaxAttempts: 3}, m)

	l.Submit(record("a"))
	l.Close()

	if sink.callCount() != 3 {
		t.Fatalf("calls = %d, want 3", sink.callCount())
	}
	if sink.appendedCount() != 1 {
		t.Fatalf("appended = %d, want 1", sink.appendedCount())
	}
	if got := testutil.ToFloat64(m.AuditRetries); got != 2 {
		t.Fatalf("retries = %g, want 2", got)
	}
}

func TestDeliverDropsAfterExhaustingRetries(t *testing.T) {
	sink := &fakeSink{failures: 100}
	m := metrics.New()
	l := newTestLogger(sink, Options{MaxAttempts: 3}, m)

	l.Submit(record("a"))
	l.Close()

	if sink.callCount() != 3 {
		t.Fatalf("calls = %d, want exactly the retry bound 3", sink.callCount())
	}
	if sink.appendedCount() != 0 {
		t.Fatalf("appended = %d, want 0", sink.appendedCount())
	}
	if got := testutil.ToFloat64(m.AuditDropped); got != 1 {
		t.Fatalf("dropped = %g, want 1", got)
	}
}

func TestSubmitDoesNotBlockOnFullQueue(t *testing.T) {
	sink := &fakeSink{block: make(chan struct{}), entered: make(chan struct{}, 4)}
	m := metrics.New()
	l := newTestLogger(sink, Options{Workers: 1, QueueSize: 1}, m)

	// First record occupies the worker, second fills the queue, third must be
	// dropped without blocking.
	l.Submit(record("a"))
	select {
	case <-sink.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up first record")
	}

	l.Submit(record("b"))

	done := make(chan struct{})
	go func() {
		l.Submit(record("c"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked on full queue")
	}

	close(sink.block)
	l.Close()

	if got := testutil.ToFloat64(m.AuditDropped); got != 1 {
		t.Fatalf("dropped = %g, want 1", got)
	}
	if sink.appendedCount() != 2 {
		t.Fatalf("appended = %d, want 2", sink.appendedCount())
	}
}

func TestSubmitAfterCloseDropsSafely(t *testing.T) {
	sink := &fakeSink{}
	m := metrics.New()
	l := newTestLogger(sink, Options{}, m)
	l.Close()

	l.Submit(record("late"))

	if got := testutil.ToFloat64(m.AuditDropped); got != 1 {
		t.Fatalf("dropped = %g, want 1", got)
	}
}

func TestConcurrentSubmissions(t *testing.T) {
	sink := &fakeSink{}
	m := metrics.New()
	l := newTestLogger(sink, Options{Workers: 4, QueueSize: 64}, m)

	var wg sync.WaitGroup
	const n = 32
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			l.Submit(record("x"))
		}()
	}
	wg.Wait()
	l.Close()

	if sink.appendedCount() != n {
		t.Fatalf("appended = %d, want %d", sink.appendedCount(), n)
	}
}
