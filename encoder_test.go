package xredislog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestJSONPubSubEncoderFullRecord(t *testing.T) {
	rec := Record{
		Level:      LevelError,
		Target:     "app::db",
		Message:    "connection refused",
		ModulePath: "app/db",
		File:       "app/db/pool.go",
		Line:       42,
	}
	data, err := JSONPubSubEncoder{}.EncodePubSub(rec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ERROR", got["level"])
	assert.Equal(t, "connection refused", got["message"])
	assert.Equal(t, "app/db", got["module_path"])
	assert.Equal(t, "app::db", got["target"])
	assert.Equal(t, "app/db/pool.go", got["file"])
	assert.Equal(t, float64(42), got["line"])
}

func TestJSONPubSubEncoderOmitsUnknownProvenance(t *testing.T) {
	data, err := JSONPubSubEncoder{}.EncodePubSub(Record{Level: LevelInfo, Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"INFO","message":"m"}`, string(data))
}

func TestTextPubSubEncoder(t *testing.T) {
	data, err := TextPubSubEncoder{}.EncodePubSub(Record{
		Level:   LevelWarn,
		Target:  "worker",
		Message: "queue depth high",
	})
	require.NoError(t, err)
	assert.Equal(t, "WARN worker: queue depth high", string(data))
}

func TestTextPubSubEncoderWithTime(t *testing.T) {
	rec := Record{Level: LevelInfo, Message: "started"}
	rec.Time = mustParseTime(t, "2024-03-01T10:30:00Z")
	data, err := TextPubSubEncoder{}.EncodePubSub(rec)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:30:00Z INFO: started", string(data))
}

func TestFieldStreamEncoderOrder(t *testing.T) {
	fields, err := FieldStreamEncoder{}.EncodeStream(Record{
		Level:      LevelInfo,
		Target:     "db",
		Message:    "connected",
		ModulePath: "app/db",
		File:       "app/db/conn.go",
		Line:       12,
	})
	require.NoError(t, err)
	require.Len(t, fields, 6)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"level", "message", "module_path", "target", "file", "line"}, names)

	assert.Equal(t, "INFO", string(fields[0].Value))
	assert.Equal(t, "connected", string(fields[1].Value))
	assert.Equal(t, "app/db", string(fields[2].Value))
	assert.Equal(t, "db", string(fields[3].Value))
	assert.Equal(t, "app/db/conn.go", string(fields[4].Value))
	assert.Equal(t, "12", string(fields[5].Value))
}

func TestFieldStreamEncoderPlaceholders(t *testing.T) {
	fields, err := FieldStreamEncoder{}.EncodeStream(Record{Level: LevelWarn, Message: "disk low", Target: "db"})
	require.NoError(t, err)
	require.Len(t, fields, 6)
	assert.Equal(t, "null", string(fields[2].Value))
	assert.Equal(t, "null", string(fields[4].Value))
	assert.Equal(t, "0", string(fields[5].Value))
}

func TestJSONStreamEncoderMatchesPubSubPayload(t *testing.T) {
	rec := Record{Level: LevelDebug, Target: "cache", Message: "miss", Line: 7, File: "cache/lru.go"}

	fields, err := JSONStreamEncoder{}.EncodeStream(rec)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "record", fields[0].Name)

	payload, err := JSONPubSubEncoder{}.EncodePubSub(rec)
	require.NoError(t, err)
	assert.Equal(t, payload, fields[0].Value)
}

func TestEncoderRegistries(t *testing.T) {
	enc, err := NewPubSubEncoder("json")
	require.NoError(t, err)
	assert.IsType(t, JSONPubSubEncoder{}, enc)

	enc, err = NewPubSubEncoder("text")
	require.NoError(t, err)
	assert.IsType(t, TextPubSubEncoder{}, enc)

	senc, err := NewStreamEncoder("fields")
	require.NoError(t, err)
	assert.IsType(t, FieldStreamEncoder{}, senc)

	senc, err = NewStreamEncoder("json")
	require.NoError(t, err)
	assert.IsType(t, JSONStreamEncoder{}, senc)
}

func TestEncoderRegistryUnknownName(t *testing.T) {
	_, err := NewPubSubEncoder("msgpack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")

	_, err = NewStreamEncoder("msgpack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegisterEncoderValidation(t *testing.T) {
	require.Error(t, RegisterPubSubEncoder("", func() PubSubEncoder { return JSONPubSubEncoder{} }))
	require.Error(t, RegisterPubSubEncoder("x", nil))
	require.Error(t, RegisterStreamEncoder("", func() StreamEncoder { return FieldStreamEncoder{} }))
	require.Error(t, RegisterStreamEncoder("x", nil))
}

func TestRegisterCustomEncoder(t *testing.T) {
	custom := PubSubEncoderFunc(func(rec Record) ([]byte, error) {
		return []byte(rec.Message), nil
	})
	require.NoError(t, RegisterPubSubEncoder("raw-message", func() PubSubEncoder { return custom }))

	enc, err := NewPubSubEncoder("raw-message")
	require.NoError(t, err)
	data, err := enc.EncodePubSub(Record{Message: "plain"})
	require.NoError(t, err)
	assert.Equal(t, "plain", string(data))
}

func TestDecodeJSONRoundTrip(t *testing.T) {
	rec := Record{
		Level:      LevelWarn,
		Target:     "db",
		Message:    "disk low",
		ModulePath: "app/db",
		File:       "app/db/pool.go",
		Line:       31,
	}
	data, err := JSONPubSubEncoder{}.EncodePubSub(rec)
	require.NoError(t, err)

	got, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Level, got.Level)
	assert.Equal(t, rec.Target, got.Target)
	assert.Equal(t, rec.Message, got.Message)
	assert.Equal(t, rec.ModulePath, got.ModulePath)
	assert.Equal(t, rec.File, got.File)
	assert.Equal(t, rec.Line, got.Line)
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	_, err := DecodeJSON([]byte("{not json"))
	require.Error(t, err)

	_, err = DecodeJSON([]byte(`{"level":"LOUD","message":"m"}`))
	require.Error(t, err)
}

func TestDecodeStreamValues(t *testing.T) {
	rec, err := DecodeStreamValues(map[string]any{
		"level":       "INFO",
		"message":     "connected",
		"module_path": "null",
		"target":      "db",
		"file":        "app/db/conn.go",
		"line":        "12",
	})
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, rec.Level)
	assert.Equal(t, "connected", rec.Message)
	assert.Equal(t, "", rec.ModulePath)
	assert.Equal(t, "db", rec.Target)
	assert.Equal(t, "app/db/conn.go", rec.File)
	assert.Equal(t, 12, rec.Line)
}

func TestDecodeStreamValuesPlaceholders(t *testing.T) {
	rec, err := DecodeStreamValues(map[string]any{
		"level":       "ERROR",
		"message":     "boom",
		"module_path": "null",
		"target":      "",
		"file":        "null",
		"line":        "0",
	})
	require.NoError(t, err)
	assert.Equal(t, LevelError, rec.Level)
	assert.Empty(t, rec.ModulePath)
	assert.Empty(t, rec.File)
	assert.Zero(t, rec.Line)
}

func TestDecodeStreamValuesMissingLevel(t *testing.T) {
	_, err := DecodeStreamValues(map[string]any{"message": "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level")
}
