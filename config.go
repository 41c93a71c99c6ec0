package xredislog

import (
	"time"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// Channel is one pub/sub destination together with its encoder.
type Channel struct {
	Name    string
	Encoder PubSubEncoder
}

// Stream is one stream destination together with its encoder. MaxLen > 0
// turns on approximate trimming (XADD MAXLEN ~).
type Stream struct {
	Key     string
	MaxLen  int64
	Encoder StreamEncoder
}

// Config is the frozen wiring of a Logger. Assemble it via ConfigBuilder;
// once built it never changes.
type Config struct {
	conn     Conn
	channels []Channel
	streams  []Stream

	minLevel Level
	timeout  time.Duration

	clock   xclock.Clock
	logger  *xlog.Logger
	onError func(error)
}

// Channels returns a copy of the configured channel destinations.
func (c *Config) Channels() []Channel {
	out := make([]Channel, len(c.channels))
	copy(out, c.channels)
	return out
}

// Streams returns a copy of the configured stream destinations.
func (c *Config) Streams() []Stream {
	out := make([]Stream, len(c.streams))
	copy(out, c.streams)
	return out
}

// MinLevel returns the configured severity floor.
func (c *Config) MinLevel() Level { return c.minLevel }

// ConfigBuilder assembles Config instances (Builder pattern).
type ConfigBuilder struct {
	conn     Conn
	channels []Channel
	streams  []Stream
	minLevel Level
	timeout  time.Duration
	clock    xclock.Clock
	logger   *xlog.Logger
	onError  func(error)
}

// NewConfigBuilder returns a builder with defaults: every level passes
// and dispatch carries no deadline of its own.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{minLevel: LevelTrace}
}

// WithConn sets the Redis connection. Required.
func (cb *ConfigBuilder) WithConn(conn Conn) *ConfigBuilder {
	cb.conn = conn
	return cb
}

// WithChannel adds a pub/sub destination. A nil encoder selects
// JSONPubSubEncoder. Empty names are ignored.
func (cb *ConfigBuilder) WithChannel(name string, enc PubSubEncoder) *ConfigBuilder {
	if name == "" {
		return cb
	}
	cb.channels = append(cb.channels, Channel{Name: name, Encoder: enc})
	return cb
}

// WithStream adds a stream destination. A nil encoder selects
// FieldStreamEncoder. Empty keys are ignored.
func (cb *ConfigBuilder) WithStream(key string, enc StreamEncoder) *ConfigBuilder {
	if key == "" {
		return cb
	}
	cb.streams = append(cb.streams, Stream{Key: key, Encoder: enc})
	return cb
}

// WithCappedStream adds a stream destination trimmed approximately to
// maxLen entries on every append.
func (cb *ConfigBuilder) WithCappedStream(key string, maxLen int64, enc StreamEncoder) *ConfigBuilder {
	if key == "" {
		return cb
	}
	if maxLen < 0 {
		maxLen = 0
	}
	cb.streams = append(cb.streams, Stream{Key: key, MaxLen: maxLen, Encoder: enc})
	return cb
}

// WithMinLevel sets the severity floor. Records below it are dropped
// before any encoding.
func (cb *ConfigBuilder) WithMinLevel(min Level) *ConfigBuilder {
	cb.minLevel = min
	return cb
}

// WithDispatchTimeout bounds each per-record dispatch pass across all
// destinations.
func (cb *ConfigBuilder) WithDispatchTimeout(d time.Duration) *ConfigBuilder {
	if d > 0 {
		cb.timeout = d
	}
	return cb
}

// WithClock injects a custom xclock clock.
func (cb *ConfigBuilder) WithClock(c xclock.Clock) *ConfigBuilder {
	cb.clock = c
	return cb
}

// WithLogger injects a custom xlog logger for diagnostics.
func (cb *ConfigBuilder) WithLogger(l *xlog.Logger) *ConfigBuilder {
	cb.logger = l
	return cb
}

// WithErrorHandler replaces the default warn logging for dispatch
// failures. The handler receives *DispatchError values.
func (cb *ConfigBuilder) WithErrorHandler(fn func(error)) *ConfigBuilder {
	cb.onError = fn
	return cb
}

// Build validates the wiring and freezes it into a Config.
func (cb *ConfigBuilder) Build() (*Config, error) {
	if cb.conn == nil {
		return nil, ErrNoConn
	}
	if len(cb.channels)+len(cb.streams) == 0 {
		return nil, ErrNoDestinations
	}

	channels := make([]Channel, len(cb.channels))
	copy(channels, cb.channels)
	for i := range channels {
		if channels[i].Encoder == nil {
			channels[i].Encoder = JSONPubSubEncoder{}
		}
	}

	streams := make([]Stream, len(cb.streams))
	copy(streams, cb.streams)
	for i := range streams {
		if streams[i].Encoder == nil {
			streams[i].Encoder = FieldStreamEncoder{}
		}
	}

	clk := cb.clock
	if clk == nil {
		clk = xclock.Default()
	}
	lg := cb.logger
	if lg == nil {
		lg = xlog.Default()
	}

	return &Config{
		conn:     cb.conn,
		channels: channels,
		streams:  streams,
		minLevel: cb.minLevel,
		timeout:  cb.timeout,
		clock:    clk,
		logger:   lg,
		onError:  cb.onError,
	}, nil
}

// New constructs a Logger via Builder in one call.
func New(init func(cb *ConfigBuilder)) (*Logger, error) {
	cb := NewConfigBuilder()
	if init != nil {
		init(cb)
	}
	cfg, err := cb.Build()
	if err != nil {
		return nil, err
	}
	return NewLogger(cfg), nil
}

// NewPubSubConfig seeds a builder with default-encoded channels.
func NewPubSubConfig(conn Conn, channels ...string) *ConfigBuilder {
	cb := NewConfigBuilder().WithConn(conn)
	for _, name := range channels {
		cb.WithChannel(name, nil)
	}
	return cb
}

// NewStreamConfig seeds a builder with default-encoded streams.
func NewStreamConfig(conn Conn, keys ...string) *ConfigBuilder {
	cb := NewConfigBuilder().WithConn(conn)
	for _, key := range keys {
		cb.WithStream(key, nil)
	}
	return cb
}

// ConfigFromMap seeds a builder from a generic map, the shape config
// files decode into. Encoder names resolve through the registries.
//
// Keys:
// - min_level: level name (default "trace")
// - channels: []string of channel names
// - channel_encoder: pub/sub encoder name applied to them (default "json")
// - streams: []string of stream keys
// - stream_encoder: stream encoder name applied to them (default "fields")
// - stream_max_len: approximate cap per stream, 0 = unbounded
// - dispatch_timeout: duration or duration string
func ConfigFromMap(conn Conn, m map[string]any) (*ConfigBuilder, error) {
	getString := func(k, d string) string {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
		return d
	}
	getInt64 := func(k string, d int64) int64 {
		switch v := m[k].(type) {
		case int:
			return int64(v)
		case int32:
			return int64(v)
		case int64:
			return v
		case float64:
			return int64(v)
		}
		return d
	}
	getDur := func(k string, d time.Duration) time.Duration {
		switch v := m[k].(type) {
		case time.Duration:
			return v
		case string:
			if p, err := time.ParseDuration(v); err == nil {
				return p
			}
		case float64:
			return time.Duration(v)
		}
		return d
	}
	getStrings := func(k string) []string {
		switch v := m[k].(type) {
		case []string:
			return v
		case []any:
			out := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		}
		return nil
	}

	cb := NewConfigBuilder().WithConn(conn)

	min, err := ParseLevel(getString("min_level", "trace"))
	if err != nil {
		return nil, err
	}
	cb.WithMinLevel(min)

	channelEnc := getString("channel_encoder", "json")
	for _, name := range getStrings("channels") {
		enc, err := NewPubSubEncoder(channelEnc)
		if err != nil {
			return nil, err
		}
		cb.WithChannel(name, enc)
	}

	streamEnc := getString("stream_encoder", "fields")
	maxLen := getInt64("stream_max_len", 0)
	for _, key := range getStrings("streams") {
		enc, err := NewStreamEncoder(streamEnc)
		if err != nil {
			return nil, err
		}
		cb.WithCappedStream(key, maxLen, enc)
	}

	if d := getDur("dispatch_timeout", 0); d > 0 {
		cb.WithDispatchTimeout(d)
	}

	return cb, nil
}
