package xredislog

import (
	"io"
	"sync"

	"github.com/trickstertwo/xclock"
)

// WriterSink renders records through a PubSubEncoder and writes one
// line per record to w. It adapts any io.Writer, such as a file or a
// rotating writer, into a destination that composes with the Redis
// ones under a MultiSink.
type WriterSink struct {
	mu    sync.Mutex
	w     io.Writer
	enc   PubSubEncoder
	min   Level
	clock xclock.Clock
}

// NewWriterSink wraps w. A nil encoder selects TextPubSubEncoder.
func NewWriterSink(w io.Writer, min Level, enc PubSubEncoder) *WriterSink {
	if w == nil {
		panic("xredislog: NewWriterSink called with nil Writer")
	}
	if enc == nil {
		enc = TextPubSubEncoder{}
	}
	return &WriterSink{w: w, enc: enc, min: min, clock: xclock.Default()}
}

// Enabled reports whether records at lvl pass the severity floor.
func (s *WriterSink) Enabled(lvl Level) bool { return lvl.passes(s.min) }

// Log renders and writes one line. Encode and write failures are
// dropped; a line-oriented fallback destination has nowhere to report.
func (s *WriterSink) Log(rec Record) {
	if !s.Enabled(rec.Level) {
		return
	}
	if rec.Time.IsZero() {
		rec.Time = s.clock.Now()
	}
	payload, err := s.enc.EncodePubSub(rec)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.w.Write(append(payload, '\n'))
}

// Flush forwards to the writer when it exposes Flush or Sync.
func (s *WriterSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch w := s.w.(type) {
	case interface{ Flush() error }:
		_ = w.Flush()
	case interface{ Sync() error }:
		_ = w.Sync()
	}
}
