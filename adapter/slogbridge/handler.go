package slogbridge

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/trickstertwo/xredislog"
)

// Handler converts slog records and forwards them to a Sink.
type Handler struct {
	sink   xredislog.Sink
	target string
	prefix string // dotted group path, trailing "."
	attrs  string // preformatted WithAttrs pairs
}

var _ slog.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithTarget sets the Target carried on every record (default "slog").
func WithTarget(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.target = name
		}
	}
}

// New wraps sink in a slog.Handler.
func New(sink xredislog.Sink, opts ...Option) *Handler {
	if sink == nil {
		panic("slogbridge: New called with nil Sink")
	}
	h := &Handler{sink: sink, target: "slog"}
	for _, o := range opts {
		if o != nil {
			o(h)
		}
	}
	return h
}

// Enabled maps the slog level and asks the sink.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.sink.Enabled(convertLevel(level))
}

// Handle converts one slog record and logs it. It always returns nil;
// the sink contract reports failures through its own handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})

	rec := xredislog.Record{
		Time:    r.Time,
		Level:   convertLevel(r.Level),
		Target:  h.target,
		Message: b.String(),
	}
	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		rec.File = frame.File
		rec.Line = frame.Line
		rec.ModulePath = packagePath(frame.Function)
	}

	h.sink.Log(rec)
	return nil
}

// WithAttrs returns a handler carrying the attrs preformatted under the
// current group prefix.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	h2.attrs = b.String()
	return &h2
}

// WithGroup returns a handler that prefixes subsequent attr keys.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, p, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}

// convertLevel maps slog levels onto the coarser record scale. Custom
// levels snap to the band they fall in.
func convertLevel(l slog.Level) xredislog.Level {
	switch {
	case l < slog.LevelDebug:
		return xredislog.LevelTrace
	case l < slog.LevelInfo:
		return xredislog.LevelDebug
	case l < slog.LevelWarn:
		return xredislog.LevelInfo
	case l < slog.LevelError:
		return xredislog.LevelWarn
	default:
		return xredislog.LevelError
	}
}

// packagePath trims a runtime function name like
// "example.com/mod/pkg.(*T).Method" down to "example.com/mod/pkg".
func packagePath(fn string) string {
	if fn == "" {
		return ""
	}
	slash := strings.LastIndex(fn, "/")
	dot := strings.Index(fn[slash+1:], ".")
	if dot < 0 {
		return fn
	}
	return fn[:slash+1+dot]
}
