package xredislog

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConn is returned by Build when no Redis connection was supplied.
	ErrNoConn = errors.New("xredislog: no redis connection configured")

	// ErrNoDestinations is returned by Build when neither channels nor
	// streams were configured.
	ErrNoDestinations = errors.New("xredislog: no channels or streams configured")

	// ErrSinkClosed reports a record rejected after Close.
	ErrSinkClosed = errors.New("xredislog: sink closed")

	// ErrAlreadyInitialized is returned by Init when a global sink is
	// already installed.
	ErrAlreadyInitialized = errors.New("xredislog: global sink already initialized")
)

// Encoder contract violations, reported per destination as dispatch failures.
var (
	errEmptyEntry     = errors.New("encoder produced no fields")
	errEmptyFieldName = errors.New("encoder produced an empty field name")
)

// DestinationKind distinguishes the two Redis write paths.
type DestinationKind string

const (
	KindChannel DestinationKind = "channel"
	KindStream  DestinationKind = "stream"
)

// DispatchError describes one failed write to one destination. It is
// handed to the configured error handler and never propagated to the
// logging caller.
type DispatchError struct {
	Kind DestinationKind
	Name string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("xredislog: dispatch to %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
