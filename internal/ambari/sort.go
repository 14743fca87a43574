package ambari

import "sort"

// SortKey selects the descriptor field used to order versions.
type SortKey string

const (
	SortByVersion SortKey = "version"
	SortByTag     SortKey = "tag"
)

// SortVersions orders descriptors in place, ascending by the chosen key.
// The sort is stable, so ties keep their listing order. An unrecognized key
// falls back to sorting by version; callers validate the key up front.
func SortVersions(descs []VersionDescriptor, key SortKey) {
	sort.SliceStable(descs, func(i, j int) bool {
		if key == SortByTag {
			return descs[i].Tag < descs[j].Tag
		}
		return descs[i].Version < descs[j].Version
	})
}
