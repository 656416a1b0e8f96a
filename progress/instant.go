package progress

import "time"

// Instant is an enrollment timestamp in any of the three forms the old
// document store left behind: a native timestamp, an ISO-8601 string, or
// nothing at all. All date comparisons go through Resolve so the handling
// is identical everywhere.
type Instant struct {
	t       time.Time
	present bool
}

// InstantFromTime wraps a native timestamp.
func InstantFromTime(t time.Time) Instant {
	return Instant{t: t, present: true}
}

// InstantFromPtr wraps a nullable native timestamp.
func InstantFromPtr(t *time.Time) Instant {
	if t == nil {
		return Instant{}
	}
	return InstantFromTime(*t)
}

// InstantFromString parses an ISO-8601 string. Unparseable input counts as
// missing rather than an error; such rows simply fall outside every
// counting window.
func InstantFromString(s string) Instant {
	if s == "" {
		return Instant{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return InstantFromTime(t)
		}
	}
	return Instant{}
}

// MissingInstant is the absent value.
func MissingInstant() Instant {
	return Instant{}
}

// Present reports whether a usable timestamp was stored.
func (i Instant) Present() bool {
	return i.present
}

// Resolve returns the concrete time. Missing values resolve to the Unix
// epoch, which keeps them out of the trend windows without failing the
// whole computation.
func (i Instant) Resolve() time.Time {
	if !i.present {
		return time.Unix(0, 0).UTC()
	}
	return i.t
}
