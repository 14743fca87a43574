package audit

// Action describes what happened to a property key between two consecutive
// configuration versions.
type Action string

const (
	ActionAdded   Action = "ADDED"
	ActionChanged Action = "CHANGED"
	ActionRemoved Action = "REMOVED"
)

// Event is a single detected configuration change.
type Event struct {
	Version  int64
	Type     string // configuration type, e.g. "yarn-site"
	Action   Action
	Key      string
	Value    string
	OldValue string // set for CHANGED only
}
