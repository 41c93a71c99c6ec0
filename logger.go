package xredislog

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Logger forwards records to every configured Redis destination. It is
// synchronous: Log returns once all destinations were attempted. Wrap
// it in an AsyncSink to take Redis round-trips off the caller's path.
type Logger struct {
	cfg     *Config
	metrics *loggerMetrics
}

// loggerMetrics uses lock-free atomics for telemetry.
type loggerMetrics struct {
	records   atomic.Uint64
	published atomic.Uint64
	appended  atomic.Uint64
	errors    atomic.Uint64
}

// NewLogger wraps a Config produced by Build.
func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		panic("xredislog: NewLogger called with nil Config")
	}
	return &Logger{cfg: cfg, metrics: &loggerMetrics{}}
}

// Enabled reports whether records at lvl pass the severity floor. Off
// is never enabled: it is a filter value, not a record level.
func (l *Logger) Enabled(lvl Level) bool {
	return lvl.passes(l.cfg.minLevel)
}

// Log dispatches one record to all destinations in configuration order,
// channels first, then streams. Destinations fail in isolation; the
// loop always completes and nothing propagates to the caller.
func (l *Logger) Log(rec Record) {
	if !l.Enabled(rec.Level) {
		return
	}
	l.metrics.records.Add(1)

	if rec.Time.IsZero() {
		rec.Time = l.cfg.clock.Now()
	}

	ctx := context.Background()
	cancel := func() {}
	if l.cfg.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, l.cfg.timeout)
	}
	defer cancel()

	start := l.cfg.clock.Now()

	failed := 0
	for i := range l.cfg.channels {
		if !l.publish(ctx, &l.cfg.channels[i], rec) {
			failed++
		}
	}
	for i := range l.cfg.streams {
		if !l.append(ctx, &l.cfg.streams[i], rec) {
			failed++
		}
	}

	l.cfg.logger.Debug().
		Str("level", rec.Level.String()).
		Str("target", rec.Target).
		Str("failed", strconv.Itoa(failed)).
		Dur("duration", l.cfg.clock.Since(start)).
		Msg("xredislog: record dispatched")
}

// publish sends rec to a single channel and reports success. Encoder
// panics are contained here so one destination cannot take down the
// pass; ok stays false on that path.
func (l *Logger) publish(ctx context.Context, ch *Channel, rec Record) (ok bool) {
	defer l.recoverDispatch(KindChannel, ch.Name)

	payload, err := ch.Encoder.EncodePubSub(rec)
	if err != nil {
		l.fail(KindChannel, ch.Name, err)
		return false
	}
	if err := l.cfg.conn.Publish(ctx, ch.Name, payload).Err(); err != nil {
		l.fail(KindChannel, ch.Name, err)
		return false
	}
	l.metrics.published.Add(1)
	return true
}

// append sends rec to a single stream via XADD and reports success.
func (l *Logger) append(ctx context.Context, st *Stream, rec Record) (ok bool) {
	defer l.recoverDispatch(KindStream, st.Key)

	fields, err := st.Encoder.EncodeStream(rec)
	if err != nil {
		l.fail(KindStream, st.Key, err)
		return false
	}
	if len(fields) == 0 {
		l.fail(KindStream, st.Key, errEmptyEntry)
		return false
	}

	// Alternating name/value pairs keep the encoder's field order; a
	// map would lose it.
	vals := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		if f.Name == "" {
			l.fail(KindStream, st.Key, errEmptyFieldName)
			return false
		}
		vals = append(vals, f.Name, f.Value)
	}

	args := &redis.XAddArgs{
		Stream: st.Key,
		ID:     "*", // Let Redis generate ID
		Values: vals,
	}
	// Approximate trimming to keep the stream bounded
	if st.MaxLen > 0 {
		args.MaxLen = st.MaxLen
		args.Approx = true
	}

	if err := l.cfg.conn.XAdd(ctx, args).Err(); err != nil {
		l.fail(KindStream, st.Key, err)
		return false
	}
	l.metrics.appended.Add(1)
	return true
}

func (l *Logger) recoverDispatch(kind DestinationKind, name string) {
	if r := recover(); r != nil {
		l.fail(kind, name, fmt.Errorf("panic: %v", r))
	}
}

// fail reports a single destination failure and moves on. With no
// handler configured, failures surface as warn-level diagnostics.
func (l *Logger) fail(kind DestinationKind, name string, err error) {
	l.metrics.errors.Add(1)
	if l.cfg.onError != nil {
		l.cfg.onError(&DispatchError{Kind: kind, Name: name, Err: err})
		return
	}
	l.cfg.logger.Warn().
		Str("kind", string(kind)).
		Str("name", name).
		Err(err).
		Msg("xredislog: dispatch failed")
}

// Flush is a no-op: Log returns only after every destination was attempted.
func (l *Logger) Flush() {}

// Metrics returns current dispatch counters.
func (l *Logger) Metrics() Metrics {
	return Metrics{
		Records:   l.metrics.records.Load(),
		Published: l.metrics.published.Load(),
		Appended:  l.metrics.appended.Load(),
		Errors:    l.metrics.errors.Load(),
	}
}
