// Package xredislog forwards log records to Redis.
//
// Records fan out to any mix of pub/sub channels (PUBLISH) and streams
// (XADD), each destination with its own encoder. The wiring is
// assembled with a ConfigBuilder and frozen at Build time; the Redis
// connection is owned by the caller.
//
// Destinations:
//   - channel: PUBLISH <name> <payload>; default encoder "json"
//   - stream: XADD <key> * <field> <value> ...; default encoder "fields",
//     optionally trimmed with MAXLEN ~ via WithCappedStream
//
// Example builder usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	logger, err := xredislog.New(func(cb *xredislog.ConfigBuilder) {
//		cb.WithConn(client).
//			WithMinLevel(xredislog.LevelInfo).
//			WithChannel("logging", nil).
//			WithCappedStream("app-logs", 100_000, nil)
//	})
//
// Dispatch is per destination: a failing channel or stream is reported
// to the configured error handler and never stops the others, and
// nothing propagates to the logging caller. AsyncSink moves the Redis
// round-trips onto a background worker; MultiSink fans records out to
// several sinks; Init installs a sink process-wide behind the package
// level Log, Enabled and Flush facade.
package xredislog
