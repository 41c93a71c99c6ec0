package xredislog

import (
	"sync"
)

var (
	globalMu   sync.Mutex
	globalSink Sink
)

// Init installs s as the process-wide sink. A second call returns
// ErrAlreadyInitialized; the first installation wins.
func Init(s Sink) error {
	if s == nil {
		panic("xredislog: Init called with nil Sink")
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSink != nil {
		return ErrAlreadyInitialized
	}
	globalSink = s
	return nil
}

// Global returns the installed sink, or a NopSink before Init.
func Global() Sink {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSink == nil {
		return NopSink{}
	}
	return globalSink
}

// Enabled is the Facade using the global sink.
func Enabled(lvl Level) bool { return Global().Enabled(lvl) }

// Log is the Facade using the global sink.
func Log(rec Record) { Global().Log(rec) }

// Flush is the Facade using the global sink.
func Flush() { Global().Flush() }
