// Package inter defines Aurum's core base types shared across the ledger,
// staking, and genesis packages. This file contains the Timestamp type, the
// canonical representation of time inside consensus-critical state.
//
// Timestamps are plain uint64 nanosecond counts rather than time.Time values:
// the genesis sequence must be bit-reproducible on every node, so state never
// stores anything that depends on the host clock, locale, or monotonic reading.

package inter

import (
	"time"
)

// Timestamp is a UNIX timestamp in nanoseconds. It is the only time
// representation that appears inside ledger state.
type Timestamp uint64

// FromUnix converts a UNIX timestamp in seconds into a Timestamp.
func FromUnix(t int64) Timestamp {
	return Timestamp(t * int64(time.Second))
}

// Time converts the Timestamp into a standard library time.Time.
// Intended for logging and display only, never for state.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t)/int64(time.Second), int64(t)%int64(time.Second))
}

// Unix returns the timestamp truncated to whole seconds.
func (t Timestamp) Unix() int64 {
	return int64(t) / int64(time.Second)
}

// Add returns the timestamp shifted forward by d.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d)
}
