package audit

import (
	"context"
	"fmt"

	"github.com/clustertools/confaudit/internal/ambari"
	"github.com/clustertools/confaudit/internal/progress"
)

// Runner ties the fetcher, sorter and diff engine together for one
// configuration type: list versions, sort them, fetch each snapshot, diff.
type Runner struct {
	Client  *ambari.Client
	Cluster string
	SortBy  ambari.SortKey

	// Reporter, if set, receives fetch progress. Leave nil for
	// non-interactive callers.
	Reporter progress.Reporter
}

// Run performs one full audit pass. Versions that fail to fetch are skipped
// and returned as warnings; a failure to list versions aborts the run.
func (r *Runner) Run(ctx context.Context, configType string) ([]Event, []ambari.FetchWarning, error) {
	descs, err := r.Client.ListVersions(ctx, r.Cluster, configType)
	if err != nil {
		return nil, nil, err
	}

	ambari.SortVersions(descs, r.SortBy)

	if r.Reporter != nil {
		r.Reporter.Start(len(descs))
	}
	snapshots, warnings := r.Client.FetchAll(ctx, descs, func(done int, desc ambari.VersionDescriptor) {
		if r.Reporter != nil {
			r.Reporter.Update(done, fmt.Sprintf("version %d", desc.Version))
		}
	})
	if r.Reporter != nil {
		r.Reporter.Finish()
	}

	return Compute(snapshots), warnings, nil
}
