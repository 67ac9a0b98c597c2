// Package filter applies caller-supplied status filters to deduplicated
// records. These filters run only after deduplication: applied earlier they
// would discard the true most-recent record in favor of an older row that
// happens to match, silently reporting stale state.
package filter

import "github.com/opensearch-ci/release-tracker/go/types"

// StatusFilters narrows a deduplicated test-result set. Empty fields match
// everything; supplied fields must all match.
type StatusFilters struct {
	// Status compares against component_build_result, NOT the derived
	// overall_status. Callers depend on exactly this coupling.
	Status string `json:"status"`

	WithSecurity    string `json:"with_security"`
	WithoutSecurity string `json:"without_security"`
}

// IsZero returns true if no filter is set.
func (f StatusFilters) IsZero() bool {
	return f == StatusFilters{}
}

// TestResults returns the records matching all supplied filters. The input
// is never mutated.
func TestResults(records []types.TestResultRecord, f StatusFilters) []types.TestResultRecord {
	if f.IsZero() {
		return records
	}
	ret := make([]types.TestResultRecord, 0, len(records))
	for _, r := range records {
		if f.Status != "" && r.ComponentBuildResult != f.Status {
			continue
		}
		if f.WithSecurity != "" && r.WithSecurity != f.WithSecurity {
			continue
		}
		if f.WithoutSecurity != "" && r.WithoutSecurity != f.WithoutSecurity {
			continue
		}
		ret = append(ret, r)
	}
	return ret
}

// BuildResults returns the build records matching the status filter.
func BuildResults(records []types.BuildResultRecord, status string) []types.BuildResultRecord {
	if status == "" {
		return records
	}
	ret := make([]types.BuildResultRecord, 0, len(records))
	for _, r := range records {
		if r.ComponentBuildResult == status {
			ret = append(ret, r)
		}
	}
	return ret
}
