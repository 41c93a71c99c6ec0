// Package slogbridge adapts a log/slog front end to xredislog sinks.
//
// Handler implements slog.Handler. Levels map onto the coarser record
// scale and the call site PC becomes file/line/module provenance.
// Attributes fold into the message as "key=value" pairs with dotted
// group prefixes.
//
// Example:
//
//	log := slog.New(slogbridge.New(sink, slogbridge.WithTarget("api")))
//	log.Info("request handled", slog.String("route", "/healthz"))
package slogbridge
