// Package models defines the persisted shape of audit history rows and their
// conversion into the engine's input record.
package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"movehistory/internal/historyevents"
)

// AuditHistory is one stored audit-log row for a move. The value payloads stay
// as raw JSON exactly as the backend emitted them; decoding happens on demand
// in ToRecord so a malformed payload degrades one record instead of failing a
// whole page fetch.
type AuditHistory struct {
	ID                   uuid.UUID
	MoveLocator          string
	ObjectID             uuid.UUID
	Action               string
	EventName            string
	TableName            string
	OldData              []byte
	ChangedData          []byte
	Context              []byte
	SessionUserFirstName string
	SessionUserLastName  string
	ActionTstamp         time.Time
}

// SessionUserName joins the acting office user's name for display. Empty when
// the change was system-initiated.
func (h AuditHistory) SessionUserName() string {
	switch {
	case h.SessionUserFirstName == "":
		return h.SessionUserLastName
	case h.SessionUserLastName == "":
		return h.SessionUserFirstName
	}
	return h.SessionUserFirstName + " " + h.SessionUserLastName
}

// ToRecord decodes the row into the engine's AuditRecord. Every decode failure
// degrades to an empty map or slice; the engine's fallback template handles
// the rest, so this conversion never errors.
func (h AuditHistory) ToRecord() historyevents.AuditRecord {
	return historyevents.AuditRecord{
		ID:              h.ID,
		ObjectID:        h.ObjectID,
		Action:          historyevents.Action(h.Action),
		EventName:       h.EventName,
		TableName:       h.TableName,
		OldValues:       decodeValues(h.OldData),
		ChangedValues:   decodeValues(h.ChangedData),
		Context:         decodeContext(h.Context),
		ActionedAt:      h.ActionTstamp,
		SessionUserName: h.SessionUserName(),
	}
}

// decodeValues parses a flat JSON object into string values. The backend
// serializes most columns as strings already; the remaining JSON primitives
// are stringified here so the engine never sees a native bool or number.
// Null columns are dropped.
func decodeValues(data []byte) map[string]string {
	if len(data) == 0 {
		return map[string]string{}
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
			// dropped
		default:
			if b, err := json.Marshal(val); err == nil {
				out[k] = string(b)
			}
		}
	}
	return out
}

// decodeContext parses the side-channel context array. The backend emits an
// array of flat string maps; anything else yields no context.
func decodeContext(data []byte) []map[string]string {
	if len(data) == 0 {
		return nil
	}
	var out []map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
