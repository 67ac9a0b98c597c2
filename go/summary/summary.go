// Package summary computes aggregate statistics over filtered record sets.
// Every generator is a pure function of its input; empty inputs produce
// zeroed summaries, never a division by zero.
package summary

import (
	"github.com/opensearch-ci/release-tracker/go/types"
	"github.com/opensearch-ci/release-tracker/go/util"
)

// TestSummary aggregates a set of test-result records.
type TestSummary struct {
	Total       int `json:"total"`
	PassedCount int `json:"passed_count"`
	FailedCount int `json:"failed_count"`

	// SuccessRate is passed/total as a percentage, two decimal places.
	SuccessRate float64 `json:"success_rate"`

	// StatusBreakdown counts records per component_build_result value.
	StatusBreakdown map[string]int `json:"status_breakdown"`
}

// TestResults summarizes test records by their derived overall status.
func TestResults(records []types.TestResultRecord) TestSummary {
	ret := TestSummary{
		Total:           len(records),
		StatusBreakdown: map[string]int{},
	}
	for _, r := range records {
		if r.OverallStatus == types.BuildResultPassed {
			ret.PassedCount++
		} else {
			ret.FailedCount++
		}
		if r.ComponentBuildResult != "" {
			ret.StatusBreakdown[r.ComponentBuildResult]++
		}
	}
	ret.SuccessRate = rate(ret.PassedCount, ret.Total)
	return ret
}

// BuildSummary aggregates a set of distribution-build records.
type BuildSummary struct {
	Total            int            `json:"total"`
	PassedCount      int            `json:"passed_count"`
	FailedCount      int            `json:"failed_count"`
	SuccessRate      float64        `json:"success_rate"`
	StatusBreakdown  map[string]int `json:"status_breakdown"`
	UniqueComponents int            `json:"unique_components"`
}

// BuildResults summarizes build records by component_build_result.
func BuildResults(records []types.BuildResultRecord) BuildSummary {
	ret := BuildSummary{
		Total:           len(records),
		StatusBreakdown: map[string]int{},
	}
	components := util.StringSet{}
	for _, r := range records {
		switch r.ComponentBuildResult {
		case types.BuildResultPassed:
			ret.PassedCount++
		case types.BuildResultFailed:
			ret.FailedCount++
		}
		if r.ComponentBuildResult != "" {
			ret.StatusBreakdown[r.ComponentBuildResult]++
		}
		if r.Component != "" {
			components[r.Component] = true
		}
	}
	ret.SuccessRate = rate(ret.PassedCount, ret.Total)
	ret.UniqueComponents = len(components)
	return ret
}

// CheckCounts is the true/false split of one boolean release check.
type CheckCounts struct {
	True  int `json:"true"`
	False int `json:"false"`
}

// ReadinessSummary aggregates a set of release-readiness snapshots.
type ReadinessSummary struct {
	Total       int `json:"total"`
	OpenCount   int `json:"open_count"`
	ClosedCount int `json:"closed_count"`

	// CompletionRate is closed/total as a percentage, two decimal places.
	CompletionRate float64 `json:"completion_rate"`

	// CheckBreakdown is the true/false split per boolean release check.
	CheckBreakdown map[string]CheckCounts `json:"check_breakdown"`

	ComponentsWithReleaseNotes    []string `json:"components_with_release_notes"`
	ComponentsWithoutReleaseNotes []string `json:"components_without_release_notes"`

	IssuesOpen        int `json:"issues_open"`
	IssuesClosed      int `json:"issues_closed"`
	PullsOpen         int `json:"pulls_open"`
	PullsClosed       int `json:"pulls_closed"`
	AutocutIssuesOpen int `json:"autocut_issues_open"`
}

// ReleaseReadiness summarizes readiness snapshots.
func ReleaseReadiness(records []types.ReleaseReadinessRecord) ReadinessSummary {
	ret := ReadinessSummary{
		Total:          len(records),
		CheckBreakdown: map[string]CheckCounts{},
	}
	withNotes := util.StringSet{}
	withoutNotes := util.StringSet{}
	checks := []struct {
		name  string
		value func(*types.ReleaseReadinessRecord) bool
	}{
		{"release_issue_exists", func(r *types.ReleaseReadinessRecord) bool { return r.ReleaseIssueExists }},
		{"release_notes", func(r *types.ReleaseReadinessRecord) bool { return r.ReleaseNotes }},
		{"version_increment", func(r *types.ReleaseReadinessRecord) bool { return r.VersionIncrement }},
		{"release_branch", func(r *types.ReleaseReadinessRecord) bool { return r.ReleaseBranch }},
		{"release_owner_exists", func(r *types.ReleaseReadinessRecord) bool { return r.ReleaseOwnerExists }},
	}
	for i := range records {
		r := &records[i]
		switch r.ReleaseState {
		case types.ReleaseStateOpen:
			ret.OpenCount++
		case types.ReleaseStateClosed:
			ret.ClosedCount++
		}
		for _, c := range checks {
			counts := ret.CheckBreakdown[c.name]
			if c.value(r) {
				counts.True++
			} else {
				counts.False++
			}
			ret.CheckBreakdown[c.name] = counts
		}
		if r.Component != "" {
			if r.ReleaseNotes {
				withNotes[r.Component] = true
			} else {
				withoutNotes[r.Component] = true
			}
		}
		ret.IssuesOpen += r.IssuesOpen
		ret.IssuesClosed += r.IssuesClosed
		ret.PullsOpen += r.PullsOpen
		ret.PullsClosed += r.PullsClosed
		ret.AutocutIssuesOpen += r.AutocutIssuesOpen
	}
	ret.CompletionRate = rate(ret.ClosedCount, ret.Total)
	ret.ComponentsWithReleaseNotes = withNotes.SortedKeys()
	ret.ComponentsWithoutReleaseNotes = withoutNotes.SortedKeys()
	return ret
}

// rate returns count/total as a percentage rounded to two decimals, 0 when
// total is zero.
func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return util.Round2(float64(count) / float64(total) * 100)
}
