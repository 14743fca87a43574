package ambari

// VersionDescriptor identifies one stored revision of a configuration type,
// as returned by the cluster configurations listing. The Href points at the
// fully materialized revision.
type VersionDescriptor struct {
	Href    string `json:"href"`
	Type    string `json:"type"`
	Tag     string `json:"tag"`
	Version int64  `json:"version"`
}

// Snapshot is one fully materialized configuration revision: the complete
// property mapping of a configuration type at a given version.
type Snapshot struct {
	Type       string            `json:"type"`
	Tag        string            `json:"tag"`
	Version    int64             `json:"version"`
	Properties map[string]string `json:"properties"`
}

// FetchWarning records a configuration version that could not be retrieved
// and was skipped during a fetch pass.
type FetchWarning struct {
	Descriptor VersionDescriptor
	Err        error
}
