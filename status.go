package presence

import "github.com/jpalmerr/presence/internal/status"

// Status is a reported presence state.
type Status = status.Status

const (
	// StatusOnline indicates the publisher is available.
	StatusOnline = status.Online

	// StatusBusy indicates the publisher is present but occupied.
	StatusBusy = status.Busy

	// StatusOffline is reported, never stored, once the last record is stale.
	StatusOffline = status.Offline
)

// DefaultStaleAfter is the age at which a record starts reading as offline.
const DefaultStaleAfter = status.DefaultStaleAfter
