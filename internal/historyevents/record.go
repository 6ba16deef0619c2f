// Package historyevents classifies raw audit-log records into human-readable
// move history events. It is a pure transformation layer: templates are matched
// against a record's action, event name, and table name, and the winning
// template renders a display title plus a typed details payload. The package
// performs no I/O, holds no mutable state after init, and is safe for
// concurrent use.
package historyevents

import (
	"time"

	"github.com/google/uuid"
)

// Action is the audited database operation that produced a record.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Wildcard is the sentinel an upstream producer may place in a record's match
// fields to mean "any". Templates express wildcards as nil match fields
// instead, so a table literally named "*" can still be introduced later
// without colliding with template syntax.
const Wildcard = "*"

// AuditRecord is one row-level change from the backend audit log, already
// decoded from its wire form. OldValues and ChangedValues carry column values
// as strings exactly as the backend serialized them: booleans and numbers stay
// stringified ("true", "8000") and the engine never assumes native types.
//
// Context is an ordered list of side-channel lookup maps supplying
// denormalized data that is not on the audited row itself, e.g. a shipment's
// type or an address's role on the shipment.
type AuditRecord struct {
	ID              uuid.UUID
	ObjectID        uuid.UUID
	Action          Action
	EventName       string
	TableName       string
	OldValues       map[string]string
	ChangedValues   map[string]string
	Context         []map[string]string
	ActionedAt      time.Time
	SessionUserName string
}

// findContext returns the first context entry satisfying pred. Renderers use
// this instead of indexing so an absent or short context degrades to a missing
// label rather than a panic.
func (r AuditRecord) findContext(pred func(map[string]string) bool) (map[string]string, bool) {
	for _, entry := range r.Context {
		if pred(entry) {
			return entry, true
		}
	}
	return nil, false
}

// contextValue returns the named value from the first context entry that
// carries it.
func (r AuditRecord) contextValue(key string) (string, bool) {
	entry, ok := r.findContext(func(m map[string]string) bool {
		_, present := m[key]
		return present
	})
	if !ok {
		return "", false
	}
	return entry[key], true
}

// changedOrOld returns the new value for a column when the record changed it,
// falling back to the previous value. Used where a rendered string needs a
// complete entity even though only some columns changed.
func (r AuditRecord) changedOrOld(key string) string {
	if v, ok := r.ChangedValues[key]; ok && v != "" {
		return v
	}
	return r.OldValues[key]
}
