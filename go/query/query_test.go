package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensearch-ci/release-tracker/go/config"
	"github.com/opensearch-ci/release-tracker/go/search"
	"github.com/opensearch-ci/release-tracker/go/types"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(config.New("http://metrics.test:9200"))
}

// querySource renders the request's query as JSON for assertions.
func querySource(t *testing.T, req *search.Request) string {
	t.Helper()
	src, err := req.Query.Source()
	require.NoError(t, err)
	b, err := json.Marshal(src)
	require.NoError(t, err)
	return string(b)
}

func TestTestResultsRequiresVersion(t *testing.T) {
	_, err := testBuilder(t).TestResults("", TestResultFilters{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "version")
}

func TestTestResultsQueryShape(t *testing.T) {
	req, err := testBuilder(t).TestResults("3.0.0", TestResultFilters{
		RCNumber:                 "1",
		DistributionBuildNumbers: types.StringList{"8071", "8072"},
		IntegTestBuildNumbers:    types.StringList{"550"},
	})
	require.NoError(t, err)
	require.Equal(t, config.DefaultTestResultsIndex, req.Index)
	require.Equal(t, config.DefaultMaxResults, req.Size)
	require.Equal(t, "build_start_time", req.SortField)
	require.False(t, req.SortAscending)
	require.Contains(t, req.SourceFields, "build_start_time")
	require.Contains(t, req.SourceFields, "with_security")

	src := querySource(t, req)
	require.Contains(t, src, `"3.0.0"`)
	require.Contains(t, src, `"rc_number"`)
	require.Contains(t, src, `"8071"`)
	require.Contains(t, src, `"8072"`)
	require.Contains(t, src, `"550"`)
}

// Status and security filters must never reach the backend query: they are
// applied only after deduplication, otherwise an older matching row could
// shadow the true most-recent record.
func TestTestResultsQueryOmitsStatusFilters(t *testing.T) {
	req, err := testBuilder(t).TestResults("3.0.0", TestResultFilters{RCNumber: "1"})
	require.NoError(t, err)
	src := querySource(t, req)
	require.NotContains(t, src, "component_build_result")
	require.NotContains(t, src, "with_security")
	require.NotContains(t, src, "without_security")
	require.NotContains(t, src, "overall_status")
}

func TestComponentsQueryExactMatch(t *testing.T) {
	req, err := testBuilder(t).TestResults("3.0.0", TestResultFilters{
		Components: types.StringList{"alerting", "security"},
	})
	require.NoError(t, err)
	src := querySource(t, req)
	require.Contains(t, src, `"alerting"`)
	require.Contains(t, src, `"security"`)
	require.Contains(t, src, "should")
}

func TestComponentsQueryDashboardsExpansion(t *testing.T) {
	req, err := testBuilder(t).TestResults("3.0.0", TestResultFilters{
		Components: types.StringList{"OpenSearch-Dashboards", "alerting"},
	})
	require.NoError(t, err)
	src := querySource(t, req)
	// ci-group shards of the requested component match via regexp.
	require.Contains(t, src, "OpenSearch-Dashboards-ci-group-[0-9]+")
	// Any component containing "dashboards" matches case-insensitively,
	// e.g. Functional-Test-Dashboards.
	require.Contains(t, src, "[dD][aA][sS][hH][bB][oO][aA][rR][dD][sS]")
	// Other requested components still match exactly in the same OR-group.
	require.Contains(t, src, `"alerting"`)
}

func TestCaseInsensitivePattern(t *testing.T) {
	require.Equal(t, ".*[dD][aA][sS][hH][bB][oO][aA][rR][dD][sS].*", caseInsensitivePattern("dashboards"))
	require.Equal(t, ".*[aA]1[bB].*", caseInsensitivePattern("a1b"))
}

func TestIsDashboards(t *testing.T) {
	require.True(t, isDashboards("OpenSearch-Dashboards"))
	require.True(t, isDashboards("opensearch-dashboards"))
	require.True(t, isDashboards("Functional-Test-Dashboards"))
	require.False(t, isDashboards("alerting"))
}

func TestBuildResultsQueryShape(t *testing.T) {
	req, err := testBuilder(t).BuildResults("2.19.0", BuildResultFilters{
		RCNumber:                 "2",
		DistributionBuildNumbers: types.StringList{"10500"},
	})
	require.NoError(t, err)
	require.Equal(t, config.DefaultBuildResultsIndex, req.Index)
	require.Equal(t, "build_start_time", req.SortField)
	src := querySource(t, req)
	require.Contains(t, src, `"2.19.0"`)
	require.Contains(t, src, `"10500"`)
	require.NotContains(t, src, "component_build_result")
}

func TestBuildResultsRequiresVersion(t *testing.T) {
	_, err := testBuilder(t).BuildResults("", BuildResultFilters{})
	require.Error(t, err)
}

func TestReleaseReadinessQueryShape(t *testing.T) {
	req, err := testBuilder(t).ReleaseReadiness("3.0.0", "alerting")
	require.NoError(t, err)
	require.Equal(t, config.DefaultReleaseReadinessIndex, req.Index)
	require.Equal(t, "current_date", req.SortField)
	src := querySource(t, req)
	require.Contains(t, src, `"3.0.0"`)
	require.Contains(t, src, `"alerting"`)

	_, err = testBuilder(t).ReleaseReadiness("", "")
	require.Error(t, err)
}
