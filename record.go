package xredislog

import (
	"time"
)

// Record is one log statement traveling toward Redis. Sinks receive it
// by value; encoders render it per destination.
type Record struct {
	// Time is when the record was produced. Sinks stamp it from their
	// injected clock when left zero.
	Time time.Time
	// Level is the record severity.
	Level Level
	// Target names the subsystem or component that produced the record.
	Target string
	// Message is the rendered log line.
	Message string
	// ModulePath is the import path of the producing package, if known.
	ModulePath string
	// File is the producing source file, if known.
	File string
	// Line is the producing source line, if known.
	Line int
}
