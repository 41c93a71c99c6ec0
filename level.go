package xredislog

import (
	"fmt"
	"strings"
)

// Level classifies record severity. Higher values are more severe; a
// record passes a filter when its level is at or above the minimum and
// below Off.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff is only meaningful as a minimum level: it is above every
	// record level, so nothing passes.
	LevelOff
)

// String returns the uppercase name used by the default encoders.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// ParseLevel maps a case-insensitive level name back to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "OFF", "NONE":
		return LevelOff, nil
	}
	return LevelOff, fmt.Errorf("xredislog: unknown level %q", s)
}

// passes reports whether a record at l clears the min floor. Off and
// anything above it are filter values, never record levels, so they
// never pass.
func (l Level) passes(min Level) bool {
	return l < LevelOff && l >= min
}
