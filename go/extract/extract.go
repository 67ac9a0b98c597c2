// Package extract projects raw backend hits into typed records. Projection
// is pure: no filtering, no deduplication, and missing or oddly-typed fields
// degrade to zero values instead of failing — the backend's indices have
// accumulated several generations of document shapes.
package extract

import (
	"strconv"
	"strings"

	"github.com/opensearch-ci/release-tracker/go/types"
)

// TestResult projects one hit into a TestResultRecord, deriving the overall
// status.
func TestResult(src map[string]interface{}) types.TestResultRecord {
	r := types.TestResultRecord{
		Component:               str(src, "component"),
		Version:                 str(src, "version"),
		RCNumber:                numStr(src, "rc_number"),
		DistributionBuildNumber: numStr(src, "distribution_build_number"),
		IntegTestBuildNumber:    numStr(src, "integ_test_build_number"),
		Platform:                str(src, "platform"),
		Architecture:            str(src, "architecture"),
		Distribution:            str(src, "distribution"),
		ComponentCategory:       str(src, "component_category"),
		WithSecurity:            str(src, "with_security"),
		WithoutSecurity:         str(src, "without_security"),
		ComponentBuildResult:    str(src, "component_build_result"),
		BuildStartTime:          types.RecencyKeyOf(src["build_start_time"]),
	}
	r.OverallStatus = r.DeriveOverallStatus()
	return r
}

// TestResults projects a list of hits, preserving backend order.
func TestResults(hits []map[string]interface{}) []types.TestResultRecord {
	ret := make([]types.TestResultRecord, 0, len(hits))
	for _, h := range hits {
		ret = append(ret, TestResult(h))
	}
	return ret
}

// BuildResult projects one hit into a BuildResultRecord.
func BuildResult(src map[string]interface{}) types.BuildResultRecord {
	return types.BuildResultRecord{
		Component:               str(src, "component"),
		Version:                 str(src, "version"),
		Qualifier:               str(src, "qualifier"),
		RCNumber:                numStr(src, "rc_number"),
		DistributionBuildNumber: types.RecencyKeyOf(src["distribution_build_number"]),
		ComponentBuildResult:    str(src, "component_build_result"),
		BuildStartTime:          types.RecencyKeyOf(src["build_start_time"]),
		ComponentCategory:       str(src, "component_category"),
		ComponentRepo:           str(src, "component_repo"),
		ComponentRepoURL:        str(src, "component_repo_url"),
	}
}

// BuildResults projects a list of hits, preserving backend order.
func BuildResults(hits []map[string]interface{}) []types.BuildResultRecord {
	ret := make([]types.BuildResultRecord, 0, len(hits))
	for _, h := range hits {
		ret = append(ret, BuildResult(h))
	}
	return ret
}

// ReleaseReadiness projects one hit into a ReleaseReadinessRecord, deriving
// the readiness score. The snapshot date falls back to the legacy
// "timestamp" field when "current_date" is absent.
func ReleaseReadiness(src map[string]interface{}) types.ReleaseReadinessRecord {
	date := types.RecencyKeyOf(src["current_date"])
	if date.IsZero() {
		date = types.RecencyKeyOf(src["timestamp"])
	}
	r := types.ReleaseReadinessRecord{
		ID:                 numStr(src, "id"),
		Component:          str(src, "component"),
		Repository:         str(src, "repository"),
		Version:            str(src, "version"),
		CurrentDate:        date,
		ReleaseState:       str(src, "release_state"),
		ReleaseBranch:      boolean(src, "release_branch"),
		ReleaseIssueExists: boolean(src, "release_issue_exists"),
		ReleaseNotes:       boolean(src, "release_notes"),
		VersionIncrement:   boolean(src, "version_increment"),
		ReleaseOwnerExists: boolean(src, "release_owner_exists"),
		ReleaseOwners:      strSlice(src, "release_owners"),
		IssuesOpen:         integer(src, "issues_open"),
		IssuesClosed:       integer(src, "issues_closed"),
		PullsOpen:          integer(src, "pulls_open"),
		PullsClosed:        integer(src, "pulls_closed"),
		AutocutIssuesOpen:  integer(src, "autocut_issues_open"),
	}
	r.ReadinessScore = r.DeriveReadinessScore()
	return r
}

// ReleaseReadinessRecords projects a list of hits, preserving backend order.
func ReleaseReadinessRecords(hits []map[string]interface{}) []types.ReleaseReadinessRecord {
	ret := make([]types.ReleaseReadinessRecord, 0, len(hits))
	for _, h := range hits {
		ret = append(ret, ReleaseReadiness(h))
	}
	return ret
}

func str(src map[string]interface{}, key string) string {
	if v, ok := src[key].(string); ok {
		return v
	}
	return ""
}

// numStr reads a field that is a number in some document generations and a
// string in others, canonicalized to its string form.
func numStr(src map[string]interface{}, key string) string {
	switch v := src[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func boolean(src map[string]interface{}, key string) bool {
	switch v := src[key].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(v)
		return s == "true" || s == "1" || s == "yes"
	default:
		return false
	}
}

func integer(src map[string]interface{}, key string) int {
	switch v := src[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func strSlice(src map[string]interface{}, key string) []string {
	switch v := src[key].(type) {
	case []interface{}:
		var ret []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				ret = append(ret, s)
			}
		}
		return ret
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
