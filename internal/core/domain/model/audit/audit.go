// Package audit records administrative actions that bypass the normal
// state machine, so operator overrides stay traceable.
package audit

import "time"

// Entry is one append-only audit record. It is a log line, not an
// aggregate: written once, never mutated, never loaded back by the engine.
type Entry struct {
	Entity    string
	EntityID  int64
	Action    string
	OldValues string
	NewValues string
	At        time.Time
}

// NewStatusOverride builds the audit entry for an administrative order
// status override.
func NewStatusOverride(orderID int64, oldStatus, newStatus string) Entry {
	return Entry{
		Entity:    "orders",
		EntityID:  orderID,
		Action:    "status_override",
		OldValues: `{"status":"` + oldStatus + `"}`,
		NewValues: `{"status":"` + newStatus + `"}`,
		At:        time.Now().UTC(),
	}
}
