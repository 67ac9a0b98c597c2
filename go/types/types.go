// Package types defines the record families returned by the release-tracker
// query engine. All records are immutable value objects produced fresh per
// query; nothing in the engine mutates a record after extraction.
package types

// Family identifies one of the three entity families indexed by the metrics
// cluster.
type Family string

const (
	FamilyTestResults      Family = "integration-test-results"
	FamilyBuildResults     Family = "distribution-build-results"
	FamilyReleaseReadiness Family = "release-readiness"
)

// Values of the component_build_result field.
const (
	BuildResultPassed = "passed"
	BuildResultFailed = "failed"
)

// Values of the with_security / without_security test outcome fields.
const (
	SecurityTestPass = "pass"
	SecurityTestFail = "fail"
)

// Values of a readiness record's release_state field.
const (
	ReleaseStateOpen   = "open"
	ReleaseStateClosed = "closed"
)

// TestResultRecord is one integration-test execution of a component against
// a distribution build. The backend re-indexes a row every time the CI job
// re-runs, so many raw rows map to one logical record.
type TestResultRecord struct {
	Component               string     `json:"component"`
	Version                 string     `json:"version"`
	RCNumber                string     `json:"rc_number"`
	DistributionBuildNumber string     `json:"distribution_build_number"`
	IntegTestBuildNumber    string     `json:"integ_test_build_number"`
	Platform                string     `json:"platform"`
	Architecture            string     `json:"architecture"`
	Distribution            string     `json:"distribution"`
	ComponentCategory       string     `json:"component_category"`
	WithSecurity            string     `json:"with_security"`
	WithoutSecurity         string     `json:"without_security"`
	ComponentBuildResult    string     `json:"component_build_result"`
	BuildStartTime          RecencyKey `json:"build_start_time"`

	// OverallStatus is always the value of DeriveOverallStatus; it is stored
	// on the record only so it serializes with the rest of the fields.
	OverallStatus string `json:"overall_status"`
}

// DeriveOverallStatus computes the roll-up status for the record: "passed"
// iff the component build did not fail and both security variants passed.
func (r *TestResultRecord) DeriveOverallStatus() string {
	if r.ComponentBuildResult != BuildResultFailed &&
		r.WithSecurity == SecurityTestPass &&
		r.WithoutSecurity == SecurityTestPass {
		return BuildResultPassed
	}
	return BuildResultFailed
}

// BuildResultRecord is one distribution-build attempt for a component.
type BuildResultRecord struct {
	Component               string     `json:"component"`
	Version                 string     `json:"version"`
	Qualifier               string     `json:"qualifier"`
	RCNumber                string     `json:"rc_number"`
	DistributionBuildNumber RecencyKey `json:"distribution_build_number"`
	ComponentBuildResult    string     `json:"component_build_result"`
	BuildStartTime          RecencyKey `json:"build_start_time"`
	ComponentCategory       string     `json:"component_category"`
	ComponentRepo           string     `json:"component_repo"`
	ComponentRepoURL        string     `json:"component_repo_url"`
}

// ReleaseReadinessRecord is one release-readiness snapshot for a component.
type ReleaseReadinessRecord struct {
	ID                 string     `json:"id"`
	Component          string     `json:"component"`
	Repository         string     `json:"repository"`
	Version            string     `json:"version"`
	CurrentDate        RecencyKey `json:"current_date"`
	ReleaseState       string     `json:"release_state"`
	ReleaseBranch      bool       `json:"release_branch"`
	ReleaseIssueExists bool       `json:"release_issue_exists"`
	ReleaseNotes       bool       `json:"release_notes"`
	VersionIncrement   bool       `json:"version_increment"`
	ReleaseOwnerExists bool       `json:"release_owner_exists"`
	ReleaseOwners      []string   `json:"release_owners"`
	IssuesOpen         int        `json:"issues_open"`
	IssuesClosed       int        `json:"issues_closed"`
	PullsOpen          int        `json:"pulls_open"`
	PullsClosed        int        `json:"pulls_closed"`
	AutocutIssuesOpen  int        `json:"autocut_issues_open"`

	// ReadinessScore is always the value of DeriveReadinessScore.
	ReadinessScore int `json:"readiness_score"`
}

// DeriveReadinessScore counts the release checks that currently hold.
func (r *ReleaseReadinessRecord) DeriveReadinessScore() int {
	score := 0
	for _, ok := range []bool{
		r.ReleaseIssueExists,
		r.ReleaseNotes,
		r.VersionIncrement,
		r.ReleaseBranch,
		r.ReleaseOwnerExists,
	} {
		if ok {
			score++
		}
	}
	return score
}
