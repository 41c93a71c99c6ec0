package xredislog

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// AsyncSink decouples callers from Redis round-trips. Records go onto
// an unbounded FIFO queue consumed by a single background worker, so
// Log never blocks on the network and arrival order is preserved end
// to end.
type AsyncSink struct {
	inner Sink

	mu       sync.Mutex
	workCond *sync.Cond
	idleCond *sync.Cond
	queue    []Record
	pending  int // queued + currently dispatching
	closed   bool

	done      chan struct{}
	closeOnce sync.Once

	processed atomic.Uint64
	dropped   atomic.Uint64

	onError func(error)
}

// AsyncOption configures an AsyncSink.
type AsyncOption func(*AsyncSink)

// WithAsyncErrorHandler receives ErrSinkClosed for records rejected
// after Close, and recovered worker panics.
func WithAsyncErrorHandler(fn func(error)) AsyncOption {
	return func(a *AsyncSink) { a.onError = fn }
}

// NewAsyncSink wraps inner and starts the worker goroutine.
func NewAsyncSink(inner Sink, opts ...AsyncOption) *AsyncSink {
	if inner == nil {
		panic("xredislog: NewAsyncSink called with nil Sink")
	}
	a := &AsyncSink{
		inner: inner,
		done:  make(chan struct{}),
	}
	a.workCond = sync.NewCond(&a.mu)
	a.idleCond = sync.NewCond(&a.mu)
	for _, o := range opts {
		if o != nil {
			o(a)
		}
	}
	go a.worker()
	return a
}

// Enabled delegates to the wrapped sink.
func (a *AsyncSink) Enabled(lvl Level) bool { return a.inner.Enabled(lvl) }

// Log enqueues rec and returns immediately. After Close the record is
// dropped and the error handler, if any, receives ErrSinkClosed.
func (a *AsyncSink) Log(rec Record) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.dropped.Add(1)
		if a.onError != nil {
			a.onError(ErrSinkClosed)
		}
		return
	}
	a.queue = append(a.queue, rec)
	a.pending++
	a.workCond.Signal()
	a.mu.Unlock()
}

// worker drains the queue one record at a time, keeping arrival order.
// It exits only once the queue is empty after Close.
func (a *AsyncSink) worker() {
	for {
		a.mu.Lock()
		for len(a.queue) == 0 && !a.closed {
			a.workCond.Wait()
		}
		if len(a.queue) == 0 {
			// closed and drained
			a.mu.Unlock()
			close(a.done)
			return
		}
		rec := a.queue[0]
		a.queue = a.queue[1:]
		if len(a.queue) == 0 {
			a.queue = nil // release the drained backing array
		}
		a.mu.Unlock()

		a.dispatch(rec)

		a.mu.Lock()
		a.processed.Add(1)
		a.pending--
		if a.pending == 0 {
			a.idleCond.Broadcast()
		}
		a.mu.Unlock()
	}
}

// dispatch tolerates inner sink panics to keep the worker alive.
func (a *AsyncSink) dispatch(rec Record) {
	defer func() {
		if r := recover(); r != nil {
			if a.onError != nil {
				a.onError(fmt.Errorf("xredislog: sink panic recovered: %v", r))
			}
		}
	}()
	a.inner.Log(rec)
}

// Flush blocks until every record accepted so far was handed to the
// wrapped sink, then flushes it.
func (a *AsyncSink) Flush() {
	a.mu.Lock()
	for a.pending > 0 {
		a.idleCond.Wait()
	}
	a.mu.Unlock()
	a.inner.Flush()
}

// Close stops intake, waits for the worker to drain the queue, then
// flushes the wrapped sink. Idempotent; always returns nil.
func (a *AsyncSink) Close() error {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.workCond.Broadcast()
		a.mu.Unlock()

		<-a.done
		a.inner.Flush()
	})
	return nil
}

// AsyncStats is telemetry about the queue.
type AsyncStats struct {
	Queued    int    // records waiting for the worker
	Processed uint64 // records handed to the wrapped sink
	Dropped   uint64 // records rejected after Close
}

// Stats returns current queue statistics.
func (a *AsyncSink) Stats() AsyncStats {
	a.mu.Lock()
	queued := len(a.queue)
	a.mu.Unlock()
	return AsyncStats{
		Queued:    queued,
		Processed: a.processed.Load(),
		Dropped:   a.dropped.Load(),
	}
}
