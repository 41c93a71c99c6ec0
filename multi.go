package xredislog

// MultiSink fans every record out to several sinks in order. Each
// member applies its own level filter, so one record can reach Redis
// and a file at different verbosities.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink bundles sinks; nils are skipped.
func NewMultiSink(sinks ...Sink) *MultiSink {
	ms := &MultiSink{sinks: make([]Sink, 0, len(sinks))}
	for _, s := range sinks {
		if s != nil {
			ms.sinks = append(ms.sinks, s)
		}
	}
	return ms
}

// Enabled reports whether any member would accept lvl.
func (m *MultiSink) Enabled(lvl Level) bool {
	for _, s := range m.sinks {
		if s.Enabled(lvl) {
			return true
		}
	}
	return false
}

// Log forwards rec to every member that accepts its level.
func (m *MultiSink) Log(rec Record) {
	for _, s := range m.sinks {
		if s.Enabled(rec.Level) {
			s.Log(rec)
		}
	}
}

// Flush flushes every member.
func (m *MultiSink) Flush() {
	for _, s := range m.sinks {
		s.Flush()
	}
}
