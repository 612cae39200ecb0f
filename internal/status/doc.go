// Package status defines the presence record and its validation rules.
//
// A [Record] is the single persisted tuple of reported presence and the time it
// was published. Only [Online] and [Busy] are ever stored; [Offline] is derived
// at read time by [Record.Derive] when the record is older than the staleness
// threshold.
//
// Decoding is explicit and field-by-field. Failures are reported as [Issues], a
// closed list of path/message pairs that is safe to return to clients.
package status
