package xredislog

import (
	"encoding/json"
	"strconv"
	"time"
)

// Field constants (avoid typos/allocs)
const (
	fieldLevel      = "level"
	fieldMessage    = "message"
	fieldModulePath = "module_path"
	fieldTarget     = "target"
	fieldFile       = "file"
	fieldLine       = "line"
	fieldRecord     = "record"
)

// Placeholders written when provenance is unknown, so stream entries
// keep a fixed shape.
const (
	valueNull = "null"
	valueZero = "0"
)

// JSONPubSubEncoder renders the record as a compact JSON object with
// keys level, message, module_path, target, file and line. Unknown
// provenance fields are omitted.
type JSONPubSubEncoder struct{}

type jsonRecord struct {
	Level      string `json:"level"`
	Message    string `json:"message"`
	ModulePath string `json:"module_path,omitempty"`
	Target     string `json:"target,omitempty"`
	File       string `json:"file,omitempty"`
	Line       int    `json:"line,omitempty"`
}

func (JSONPubSubEncoder) EncodePubSub(rec Record) ([]byte, error) {
	return json.Marshal(jsonRecord{
		Level:      rec.Level.String(),
		Message:    rec.Message,
		ModulePath: rec.ModulePath,
		Target:     rec.Target,
		File:       rec.File,
		Line:       rec.Line,
	})
}

// TextPubSubEncoder renders single-line "<time> <LEVEL> <target>: <message>"
// payloads. The time is RFC 3339 and omitted when the record carries none.
type TextPubSubEncoder struct{}

func (TextPubSubEncoder) EncodePubSub(rec Record) ([]byte, error) {
	buf := make([]byte, 0, 48+len(rec.Target)+len(rec.Message))
	if !rec.Time.IsZero() {
		buf = rec.Time.AppendFormat(buf, time.RFC3339)
		buf = append(buf, ' ')
	}
	buf = append(buf, rec.Level.String()...)
	if rec.Target != "" {
		buf = append(buf, ' ')
		buf = append(buf, rec.Target...)
	}
	buf = append(buf, ':', ' ')
	buf = append(buf, rec.Message...)
	return buf, nil
}

// FieldStreamEncoder emits one field per record attribute in a fixed
// order: level, message, module_path, target, file, line. Unknown
// provenance fields carry "null" ("0" for line).
type FieldStreamEncoder struct{}

func (FieldStreamEncoder) EncodeStream(rec Record) ([]StreamField, error) {
	module := valueNull
	if rec.ModulePath != "" {
		module = rec.ModulePath
	}
	file := valueNull
	if rec.File != "" {
		file = rec.File
	}
	line := valueZero
	if rec.Line > 0 {
		line = strconv.Itoa(rec.Line)
	}
	return []StreamField{
		{Name: fieldLevel, Value: []byte(rec.Level.String())},
		{Name: fieldMessage, Value: []byte(rec.Message)},
		{Name: fieldModulePath, Value: []byte(module)},
		{Name: fieldTarget, Value: []byte(rec.Target)},
		{Name: fieldFile, Value: []byte(file)},
		{Name: fieldLine, Value: []byte(line)},
	}, nil
}

// JSONStreamEncoder stores the whole record under a single "record"
// field, byte for byte the JSONPubSubEncoder payload.
type JSONStreamEncoder struct{}

func (JSONStreamEncoder) EncodeStream(rec Record) ([]StreamField, error) {
	data, err := JSONPubSubEncoder{}.EncodePubSub(rec)
	if err != nil {
		return nil, err
	}
	return []StreamField{{Name: fieldRecord, Value: data}}, nil
}
