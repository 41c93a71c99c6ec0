package xredislog

// Sink consumes records. Implementations must be safe for concurrent
// use by any number of goroutines.
type Sink interface {
	// Enabled reports whether a record at lvl would be dispatched.
	// Callers use it to skip building records nobody wants.
	Enabled(lvl Level) bool
	// Log dispatches one record. It never returns an error and never
	// panics; implementations route failures to their own handlers.
	Log(rec Record)
	// Flush blocks until records accepted so far have been dispatched.
	Flush()
}

// Metrics defines observable telemetry for a Logger.
type Metrics struct {
	// Records counts records that passed the level filter.
	Records uint64
	// Published counts successful channel publishes.
	Published uint64
	// Appended counts successful stream appends.
	Appended uint64
	// Errors counts failed destination writes.
	Errors uint64
}

// NopSink accepts nothing and discards everything.
type NopSink struct{}

func (NopSink) Enabled(Level) bool { return false }
func (NopSink) Log(Record)         {}
func (NopSink) Flush()             {}

var (
	_ Sink = (*Logger)(nil)
	_ Sink = (*AsyncSink)(nil)
	_ Sink = (*MultiSink)(nil)
	_ Sink = (*WriterSink)(nil)
	_ Sink = (*CaptureSink)(nil)
	_ Sink = NopSink{}
)
