package audit

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/clustertools/confaudit/internal/ambari"
)

// Compute walks the snapshots in the order given and emits one event per
// property addition, change, or removal between consecutive snapshots. The
// first snapshot is diffed against an empty baseline, so all of its
// properties come out as ADDED. Within one version, ADDED and CHANGED events
// are emitted first in ascending key order, followed by REMOVED events in
// ascending key order. Snapshots are never mutated.
func Compute(snapshots []ambari.Snapshot) []Event {
	var events []Event
	previous := map[string]string{}

	for _, snap := range snapshots {
		for _, key := range sortedKeys(snap.Properties) {
			value := snap.Properties[key]
			old, ok := previous[key]
			switch {
			case !ok:
				events = append(events, Event{
					Version: snap.Version, Type: snap.Type,
					Action: ActionAdded, Key: key, Value: value,
				})
			case old != value:
				events = append(events, Event{
					Version: snap.Version, Type: snap.Type,
					Action: ActionChanged, Key: key, Value: value, OldValue: old,
				})
			}
		}

		for _, key := range sortedKeys(previous) {
			if _, ok := snap.Properties[key]; !ok {
				events = append(events, Event{
					Version: snap.Version, Type: snap.Type,
					Action: ActionRemoved, Key: key, Value: previous[key],
				})
			}
		}

		previous = snap.Properties
	}

	return events
}

// Filter returns the events whose key matches the given glob pattern.
// An empty pattern keeps everything.
func Filter(events []Event, pattern string) []Event {
	if pattern == "" {
		return events
	}
	var out []Event
	for _, e := range events {
		if matched, err := doublestar.Match(pattern, e.Key); err == nil && matched {
			out = append(out, e)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
