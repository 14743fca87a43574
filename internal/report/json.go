package report

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/clustertools/confaudit/internal/audit"
)

type eventJSON struct {
	ID       string `json:"id"`
	Version  int64  `json:"version"`
	Type     string `json:"type"`
	Action   string `json:"action"`
	Key      string `json:"key"`
	Value    string `json:"value"`
	OldValue string `json:"old_value,omitempty"`
}

// EventsJSON converts events to their JSON representation, assigning each a
// fresh ID so downstream consumers can reference individual records.
func EventsJSON(events []audit.Event) []any {
	out := make([]any, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON{
			ID:       uuid.New().String(),
			Version:  e.Version,
			Type:     e.Type,
			Action:   string(e.Action),
			Key:      e.Key,
			Value:    e.Value,
			OldValue: e.OldValue,
		})
	}
	return out
}

func renderJSON(w io.Writer, events []audit.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(EventsJSON(events))
}
