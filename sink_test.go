package xredislog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiSinkFansOut(t *testing.T) {
	verbose := NewCaptureSink(LevelTrace)
	quiet := NewCaptureSink(LevelWarn)
	ms := NewMultiSink(verbose, quiet)

	ms.Log(Record{Level: LevelInfo, Message: "info"})
	ms.Log(Record{Level: LevelError, Message: "error"})

	assert.Equal(t, 2, verbose.Len())
	require.Equal(t, 1, quiet.Len())
	assert.Equal(t, "error", quiet.Records()[0].Message)
}

func TestMultiSinkEnabledIsAnyMember(t *testing.T) {
	ms := NewMultiSink(NewCaptureSink(LevelWarn), NewCaptureSink(LevelError))
	assert.False(t, ms.Enabled(LevelInfo))
	assert.True(t, ms.Enabled(LevelWarn))

	all := NewMultiSink(NewCaptureSink(LevelTrace), NewCaptureSink(LevelError))
	assert.True(t, all.Enabled(LevelTrace))
}

func TestMultiSinkSkipsNilMembers(t *testing.T) {
	capture := NewCaptureSink(LevelTrace)
	ms := NewMultiSink(nil, capture, nil)

	ms.Log(Record{Level: LevelInfo, Message: "m"})
	assert.Equal(t, 1, capture.Len())
}

func TestMultiSinkEmpty(t *testing.T) {
	ms := NewMultiSink()
	assert.False(t, ms.Enabled(LevelError))
	ms.Log(Record{Level: LevelError, Message: "nowhere to go"})
	ms.Flush()
}

func TestMultiSinkFlushesAllMembers(t *testing.T) {
	a := NewCaptureSink(LevelTrace)
	b := NewCaptureSink(LevelTrace)
	NewMultiSink(a, b).Flush()
	assert.Equal(t, 1, a.Flushes())
	assert.Equal(t, 1, b.Flushes())
}

func TestWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	ws := NewWriterSink(&buf, LevelTrace, JSONPubSubEncoder{})

	ws.Log(Record{Level: LevelInfo, Target: "app", Message: "first"})
	ws.Log(Record{Level: LevelWarn, Target: "app", Message: "second"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "INFO", got["level"])
	assert.Equal(t, "first", got["message"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, "WARN", got["level"])
	assert.Equal(t, "second", got["message"])
}

func TestWriterSinkDefaultTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	ws := NewWriterSink(&buf, LevelTrace, nil)

	ws.Log(Record{Level: LevelWarn, Target: "db", Message: "disk low"})

	line := buf.String()
	assert.Contains(t, line, "WARN")
	assert.Contains(t, line, "db: disk low")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestWriterSinkFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	ws := NewWriterSink(&buf, LevelError, nil)

	assert.False(t, ws.Enabled(LevelWarn))
	assert.False(t, ws.Enabled(LevelOff))
	ws.Log(Record{Level: LevelWarn, Message: "dropped"})
	assert.Zero(t, buf.Len())

	ws.Log(Record{Level: LevelError, Message: "kept"})
	assert.NotZero(t, buf.Len())
}

func TestWriterSinkStampsTime(t *testing.T) {
	var buf bytes.Buffer
	ws := NewWriterSink(&buf, LevelTrace, nil)

	ws.Log(Record{Level: LevelInfo, Message: "stamped"})

	// Text encoding leads with the clock stamp when the record had none.
	line := buf.String()
	assert.NotEqual(t, "INFO", strings.SplitN(line, " ", 2)[0])
}

type flushingWriter struct {
	bytes.Buffer
	flushed int
}

func (w *flushingWriter) Flush() error {
	w.flushed++
	return nil
}

func TestWriterSinkFlushForwards(t *testing.T) {
	w := &flushingWriter{}
	ws := NewWriterSink(w, LevelTrace, nil)
	ws.Flush()
	ws.Flush()
	assert.Equal(t, 2, w.flushed)
}

func TestWriterSinkNilWriterPanics(t *testing.T) {
	assert.Panics(t, func() { NewWriterSink(nil, LevelTrace, nil) })
}

func TestCaptureSink(t *testing.T) {
	c := NewCaptureSink(LevelInfo)

	assert.False(t, c.Enabled(LevelDebug))
	assert.False(t, c.Enabled(LevelOff))
	c.Log(Record{Level: LevelDebug, Message: "dropped"})
	c.Log(Record{Level: LevelInfo, Message: "kept"})
	c.Flush()

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "kept", c.Records()[0].Message)
	assert.Equal(t, 1, c.Flushes())

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Flushes())
}

func TestCaptureSinkRecordsReturnsCopy(t *testing.T) {
	c := NewCaptureSink(LevelTrace)
	c.Log(Record{Level: LevelInfo, Message: "original"})

	recs := c.Records()
	recs[0].Message = "tampered"
	assert.Equal(t, "original", c.Records()[0].Message)
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	assert.False(t, s.Enabled(LevelError))
	s.Log(Record{Level: LevelError, Message: "void"})
	s.Flush()
}
