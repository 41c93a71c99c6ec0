package xredislog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DecodeJSON reverses JSONPubSubEncoder: it parses a channel payload
// (or a JSONStreamEncoder "record" field) back into a Record.
func DecodeJSON(data []byte) (Record, error) {
	var jr jsonRecord
	if err := json.Unmarshal(data, &jr); err != nil {
		return Record{}, fmt.Errorf("xredislog: decode payload: %w", err)
	}
	lvl, err := ParseLevel(jr.Level)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Level:      lvl,
		Message:    jr.Message,
		ModulePath: jr.ModulePath,
		Target:     jr.Target,
		File:       jr.File,
		Line:       jr.Line,
	}, nil
}

// DecodeStreamValues reverses FieldStreamEncoder for entries read back
// via XRANGE or XREADGROUP, which surface values as map[string]any.
// Placeholder values ("null", "0") decode to zero fields.
func DecodeStreamValues(values map[string]any) (Record, error) {
	raw, ok := values[fieldLevel]
	if !ok {
		return Record{}, fmt.Errorf("xredislog: stream entry missing %q field", fieldLevel)
	}
	lvl, err := ParseLevel(asString(raw))
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Level:   lvl,
		Message: asString(values[fieldMessage]),
		Target:  asString(values[fieldTarget]),
	}
	if v := asString(values[fieldModulePath]); v != "" && v != valueNull {
		rec.ModulePath = v
	}
	if v := asString(values[fieldFile]); v != "" && v != valueNull {
		rec.File = v
	}
	if n, ok := toInt64(values[fieldLine]); ok && n > 0 {
		rec.Line = int(n)
	}
	return rec, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		if n == "" {
			return 0, false
		}
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}
