// Package dedup collapses the backend's redundant rows into one canonical
// record per logical entity. The backend re-indexes an entity on every CI
// re-run, so a query returns many overlapping rows for what a caller
// considers one thing; each family defines a composite group key and a
// tie-break rule picking a single winner per group.
//
// Records missing any group-key field cannot be safely collapsed; they pass
// through unchanged in an ungrouped bucket rather than being dropped.
//
// Output order is not part of the contract, but it is deterministic: winners
// appear in first-seen group order, followed by ungrouped records in input
// order. Re-running over an unchanged backend therefore yields identical
// output, and dedup is idempotent.
package dedup

import (
	"github.com/opensearch-ci/release-tracker/go/sklog"
	"github.com/opensearch-ci/release-tracker/go/types"
)

type testKey struct {
	component    string
	version      string
	rcNumber     string
	platform     string
	architecture string
	distribution string
}

// TestResults keeps, per (component, version, rc, platform, architecture,
// distribution), the record with the largest build_start_time. A tie, or a
// new record carrying a timestamp when the current winner has none, prefers
// the new record; when no record in the group has a timestamp the first-seen
// record is kept.
func TestResults(records []types.TestResultRecord) []types.TestResultRecord {
	winners := make([]types.TestResultRecord, 0, len(records))
	byKey := map[testKey]int{}
	var ungrouped []types.TestResultRecord
	for _, r := range records {
		k := testKey{
			component:    r.Component,
			version:      r.Version,
			rcNumber:     r.RCNumber,
			platform:     r.Platform,
			architecture: r.Architecture,
			distribution: r.Distribution,
		}
		if k.component == "" || k.version == "" || k.rcNumber == "" ||
			k.platform == "" || k.architecture == "" || k.distribution == "" {
			sklog.Warningf("test result for %q missing dedup key fields; passing through ungrouped", r.Component)
			ungrouped = append(ungrouped, r)
			continue
		}
		i, seen := byKey[k]
		if !seen {
			byKey[k] = len(winners)
			winners = append(winners, r)
			continue
		}
		if preferNewTimestamp(r.BuildStartTime, winners[i].BuildStartTime) {
			winners[i] = r
		}
	}
	return append(winners, ungrouped...)
}

// preferNewTimestamp implements the test-result tie-break: the new record
// wins when it has a timestamp at least as large as the current winner's, or
// when it has a timestamp and the winner does not.
func preferNewTimestamp(newKey, winnerKey types.RecencyKey) bool {
	if newKey.IsZero() {
		return false
	}
	if winnerKey.IsZero() {
		return true
	}
	return newKey.Compare(winnerKey) >= 0
}

type buildKey struct {
	component string
	version   string
	rcNumber  string
}

// BuildResults keeps, per (component, version, rc), the record with the
// numerically largest distribution_build_number. Build numbers increase
// monotonically per rebuild, so the largest is the latest; records with a
// missing or non-numeric build number pass through ungrouped.
func BuildResults(records []types.BuildResultRecord) []types.BuildResultRecord {
	winners := make([]types.BuildResultRecord, 0, len(records))
	byKey := map[buildKey]int{}
	var ungrouped []types.BuildResultRecord
	for _, r := range records {
		k := buildKey{
			component: r.Component,
			version:   r.Version,
			rcNumber:  r.RCNumber,
		}
		_, numeric := r.DistributionBuildNumber.Numeric()
		if k.component == "" || k.version == "" || k.rcNumber == "" || !numeric {
			sklog.Warningf("build result for %q not collapsible; passing through ungrouped", r.Component)
			ungrouped = append(ungrouped, r)
			continue
		}
		i, seen := byKey[k]
		if !seen {
			byKey[k] = len(winners)
			winners = append(winners, r)
			continue
		}
		if r.DistributionBuildNumber.Compare(winners[i].DistributionBuildNumber) >= 0 {
			winners[i] = r
		}
	}
	return append(winners, ungrouped...)
}

type readinessKey struct {
	component string
	version   string
}

// ReleaseReadiness keeps, per (component, version), the snapshot with the
// largest current_date. The first-seen record stays the winner unless a
// strictly later snapshot arrives; records missing component or version pass
// through ungrouped.
func ReleaseReadiness(records []types.ReleaseReadinessRecord) []types.ReleaseReadinessRecord {
	winners := make([]types.ReleaseReadinessRecord, 0, len(records))
	byKey := map[readinessKey]int{}
	var ungrouped []types.ReleaseReadinessRecord
	for _, r := range records {
		k := readinessKey{component: r.Component, version: r.Version}
		if k.component == "" || k.version == "" {
			sklog.Warningf("readiness snapshot missing component/version; passing through ungrouped")
			ungrouped = append(ungrouped, r)
			continue
		}
		i, seen := byKey[k]
		if !seen {
			byKey[k] = len(winners)
			winners = append(winners, r)
			continue
		}
		if r.CurrentDate.IsZero() {
			continue
		}
		if winners[i].CurrentDate.IsZero() || r.CurrentDate.Compare(winners[i].CurrentDate) > 0 {
			winners[i] = r
		}
	}
	return append(winners, ungrouped...)
}
