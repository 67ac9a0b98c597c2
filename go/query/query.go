// Package query translates typed requests into structured queries against
// the metrics cluster, one builder per record family.
//
// Status and security-outcome filters are deliberately never pushed into the
// backend query for the test and build families: they apply only after
// deduplication (see go/filter). Filtering at the backend would evaluate an
// older row that happens to match instead of the most recent row, silently
// reporting stale state.
package query

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	elastic "gopkg.in/olivere/elastic.v5"

	"github.com/opensearch-ci/release-tracker/go/config"
	"github.com/opensearch-ci/release-tracker/go/search"
	"github.com/opensearch-ci/release-tracker/go/types"
)

// Source fields fetched per family; everything the extractor projects.
var (
	testResultFields = []string{
		"component", "version", "rc_number", "distribution_build_number",
		"integ_test_build_number", "platform", "architecture", "distribution",
		"component_category", "with_security", "without_security",
		"component_build_result", "build_start_time",
	}
	buildResultFields = []string{
		"component", "version", "qualifier", "rc_number",
		"distribution_build_number", "component_build_result",
		"build_start_time", "component_category", "component_repo",
		"component_repo_url",
	}
	releaseReadinessFields = []string{
		"id", "component", "repository", "version", "current_date",
		"timestamp", "release_state", "release_branch",
		"release_issue_exists", "release_notes", "version_increment",
		"release_owner_exists", "release_owners", "issues_open",
		"issues_closed", "pulls_open", "pulls_closed", "autocut_issues_open",
	}
)

// TestResultFilters narrows a test-result query. Status and security
// filters live in go/filter, not here.
type TestResultFilters struct {
	RCNumber                 string
	DistributionBuildNumbers types.StringList
	IntegTestBuildNumbers    types.StringList
	Components               types.StringList
}

// BuildResultFilters narrows a build-result query.
type BuildResultFilters struct {
	RCNumber                 string
	DistributionBuildNumbers types.StringList
	Components               types.StringList
}

// Builder constructs per-family search requests.
type Builder struct {
	cfg config.Config
}

// NewBuilder returns a Builder using the given configuration.
func NewBuilder(cfg config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// TestResults builds the query for integration-test results of one version.
func (b *Builder) TestResults(version string, f TestResultFilters) (*search.Request, error) {
	if version == "" {
		return nil, errors.New("version is required")
	}
	q := elastic.NewBoolQuery().Must(elastic.NewMatchPhraseQuery("version", version))
	if f.RCNumber != "" {
		q = q.Must(elastic.NewTermQuery("rc_number", f.RCNumber))
	}
	if len(f.DistributionBuildNumbers) > 0 {
		q = q.Must(elastic.NewTermsQuery("distribution_build_number", toInterfaces(f.DistributionBuildNumbers)...))
	}
	if len(f.IntegTestBuildNumbers) > 0 {
		q = q.Must(elastic.NewTermsQuery("integ_test_build_number", toInterfaces(f.IntegTestBuildNumbers)...))
	}
	if len(f.Components) > 0 {
		q = q.Must(componentsQuery(f.Components))
	}
	return &search.Request{
		Index:        b.cfg.Indices.TestResults,
		Query:        q,
		Size:         b.cfg.MaxResults,
		SortField:    "build_start_time",
		SourceFields: testResultFields,
	}, nil
}

// BuildResults builds the query for distribution builds of one version.
func (b *Builder) BuildResults(version string, f BuildResultFilters) (*search.Request, error) {
	if version == "" {
		return nil, errors.New("version is required")
	}
	q := elastic.NewBoolQuery().Must(elastic.NewMatchPhraseQuery("version", version))
	if f.RCNumber != "" {
		q = q.Must(elastic.NewTermQuery("rc_number", f.RCNumber))
	}
	if len(f.DistributionBuildNumbers) > 0 {
		q = q.Must(elastic.NewTermsQuery("distribution_build_number", toInterfaces(f.DistributionBuildNumbers)...))
	}
	if len(f.Components) > 0 {
		q = q.Must(componentsQuery(f.Components))
	}
	return &search.Request{
		Index:        b.cfg.Indices.BuildResults,
		Query:        q,
		Size:         b.cfg.MaxResults,
		SortField:    "build_start_time",
		SourceFields: buildResultFields,
	}, nil
}

// ReleaseReadiness builds the query for readiness snapshots of one version.
func (b *Builder) ReleaseReadiness(version, component string) (*search.Request, error) {
	if version == "" {
		return nil, errors.New("version is required")
	}
	q := elastic.NewBoolQuery().Must(elastic.NewMatchPhraseQuery("version", version))
	if component != "" {
		q = q.Must(elastic.NewMatchPhraseQuery("component", component))
	}
	return &search.Request{
		Index:        b.cfg.Indices.ReleaseReadiness,
		Query:        q,
		Size:         b.cfg.MaxResults,
		SortField:    "current_date",
		SourceFields: releaseReadinessFields,
	}, nil
}

// componentsQuery OR-combines the requested components. Most components
// match by exact name, but Dashboards runs its integration tests sharded
// into ci-groups and under functional-test harness names, so a request for
// a Dashboards component expands to the ci-group pattern plus any component
// containing "dashboards" (case-insensitive).
func componentsQuery(components types.StringList) elastic.Query {
	or := elastic.NewBoolQuery()
	for _, c := range components {
		if isDashboards(c) {
			or = or.Should(
				elastic.NewRegexpQuery("component", fmt.Sprintf("%s-ci-group-[0-9]+", c)),
				elastic.NewRegexpQuery("component", caseInsensitivePattern("dashboards")),
			)
		} else {
			or = or.Should(elastic.NewMatchPhraseQuery("component", c))
		}
	}
	return or
}

func isDashboards(component string) bool {
	return strings.Contains(strings.ToLower(component), "dashboards")
}

// caseInsensitivePattern returns a regexp matching any value containing s
// in any case. The backend's regexp syntax has no case-insensitivity flag,
// so each letter becomes a two-character class.
func caseInsensitivePattern(s string) string {
	var sb strings.Builder
	sb.WriteString(".*")
	for _, r := range s {
		lower := strings.ToLower(string(r))
		upper := strings.ToUpper(string(r))
		if lower != upper {
			fmt.Fprintf(&sb, "[%s%s]", lower, upper)
		} else {
			sb.WriteString(string(r))
		}
	}
	sb.WriteString(".*")
	return sb.String()
}

func toInterfaces(list types.StringList) []interface{} {
	ret := make([]interface{}, 0, len(list))
	for _, s := range list {
		ret = append(ret, s)
	}
	return ret
}
