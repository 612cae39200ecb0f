package status

import (
	"encoding/json"
	"time"
)

// DefaultStaleAfter is how old a record may get before it reads as offline.
const DefaultStaleAfter = 10 * time.Minute

// Status represents a reported presence state.
type Status string

const (
	// Online indicates the publisher is available.
	Online Status = "online"

	// Busy indicates the publisher is present but occupied.
	Busy Status = "busy"

	// Offline is never stored. It is reported when the last record is stale.
	Offline Status = "offline"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Publishable reports whether s may be stored.
func (s Status) Publishable() bool {
	return s == Online || s == Busy
}

// publishable lists the storable values in the order used in messages.
var publishable = []Status{Online, Busy}

// Record is the persisted status tuple.
type Record struct {
	Status Status `json:"status"`

	// Timestamp is the publish time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// NewRecord stamps s with the given time.
func NewRecord(s Status, at time.Time) Record {
	return Record{Status: s, Timestamp: at.UnixMilli()}
}

// Time returns the publish time.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Derive returns the record as it should be reported at now.
//
// When now is more than staleAfter past the timestamp the status becomes
// [Offline]. The timestamp is always the original publish time.
func (r Record) Derive(now time.Time, staleAfter time.Duration) Record {
	if now.UnixMilli()-r.Timestamp > staleAfter.Milliseconds() {
		return Record{Status: Offline, Timestamp: r.Timestamp}
	}
	return r
}

// Encode serializes the record for storage.
func (r Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}
