package domain

import "time"

// Timestamp is a file modification time that can also be "infinitely new".
//
// A missing file reports the infinite timestamp so that every comparison
// against it concludes that a rebuild is needed. The same sentinel is used when
// a referenced project has not produced its output yet; the two cases are not
// told apart.
type Timestamp struct {
	t        time.Time
	infinite bool
}

// At returns the timestamp for an existing file modified at t.
func At(t time.Time) Timestamp {
	return Timestamp{t: t}
}

// Infinite returns the sentinel used for files that do not exist.
func Infinite() Timestamp {
	return Timestamp{infinite: true}
}

// IsInfinite reports whether ts is the missing-file sentinel.
func (ts Timestamp) IsInfinite() bool { return ts.infinite }

// Time returns the modification time. It is the zero time for the sentinel.
func (ts Timestamp) Time() time.Time { return ts.t }

// After reports whether ts is strictly newer than other.
// The sentinel is newer than every finite timestamp, and two sentinels are
// not newer than each other.
func (ts Timestamp) After(other Timestamp) bool {
	switch {
	case ts.infinite:
		return !other.infinite
	case other.infinite:
		return false
	default:
		return ts.t.After(other.t)
	}
}

func (ts Timestamp) String() string {
	if ts.infinite {
		return "missing"
	}
	return ts.t.Format(time.RFC3339Nano)
}
