package xredislog

import (
	"errors"
	"fmt"
	"sync"
)

// PubSubEncoder is the Strategy for rendering one record into a single
// channel payload.
type PubSubEncoder interface {
	EncodePubSub(rec Record) ([]byte, error)
}

// StreamEncoder is the Strategy for rendering one record into ordered
// stream entry fields. Field names must be non-empty; order is
// preserved all the way into XADD.
type StreamEncoder interface {
	EncodeStream(rec Record) ([]StreamField, error)
}

// StreamField is one name/value pair of a stream entry.
type StreamField struct {
	Name  string
	Value []byte
}

// PubSubEncoderFunc is an Adapter that lets a plain function satisfy
// PubSubEncoder.
type PubSubEncoderFunc func(rec Record) ([]byte, error)

func (f PubSubEncoderFunc) EncodePubSub(rec Record) ([]byte, error) { return f(rec) }

// StreamEncoderFunc is an Adapter that lets a plain function satisfy
// StreamEncoder.
type StreamEncoderFunc func(rec Record) ([]StreamField, error)

func (f StreamEncoderFunc) EncodeStream(rec Record) ([]StreamField, error) { return f(rec) }

// PubSubEncoderFactory constructs pub/sub encoders via Factory pattern.
type PubSubEncoderFactory func() PubSubEncoder

// StreamEncoderFactory constructs stream encoders via Factory pattern.
type StreamEncoderFactory func() StreamEncoder

var (
	encoderRegistryMu sync.RWMutex

	pubsubEncoderRegistry = map[string]PubSubEncoderFactory{
		"json": func() PubSubEncoder { return JSONPubSubEncoder{} },
		"text": func() PubSubEncoder { return TextPubSubEncoder{} },
	}

	streamEncoderRegistry = map[string]StreamEncoderFactory{
		"fields": func() StreamEncoder { return FieldStreamEncoder{} },
		"json":   func() StreamEncoder { return JSONStreamEncoder{} },
	}
)

// RegisterPubSubEncoder registers a pub/sub encoder factory by name.
func RegisterPubSubEncoder(name string, factory PubSubEncoderFactory) error {
	if name == "" {
		return errors.New("encoder name must not be empty")
	}
	if factory == nil {
		return errors.New("encoder factory must not be nil")
	}
	encoderRegistryMu.Lock()
	pubsubEncoderRegistry[name] = factory
	encoderRegistryMu.Unlock()
	return nil
}

// NewPubSubEncoder constructs a pub/sub encoder by name or returns an error.
func NewPubSubEncoder(name string) (PubSubEncoder, error) {
	encoderRegistryMu.RLock()
	f, ok := pubsubEncoderRegistry[name]
	encoderRegistryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pubsub encoder %q not registered", name)
	}
	return f(), nil
}

// RegisterStreamEncoder registers a stream encoder factory by name.
func RegisterStreamEncoder(name string, factory StreamEncoderFactory) error {
	if name == "" {
		return errors.New("encoder name must not be empty")
	}
	if factory == nil {
		return errors.New("encoder factory must not be nil")
	}
	encoderRegistryMu.Lock()
	streamEncoderRegistry[name] = factory
	encoderRegistryMu.Unlock()
	return nil
}

// NewStreamEncoder constructs a stream encoder by name or returns an error.
func NewStreamEncoder(name string) (StreamEncoder, error) {
	encoderRegistryMu.RLock()
	f, ok := streamEncoderRegistry[name]
	encoderRegistryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("stream encoder %q not registered", name)
	}
	return f(), nil
}
