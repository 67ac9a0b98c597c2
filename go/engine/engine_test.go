package engine

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/opensearch-ci/release-tracker/go/config"
	"github.com/opensearch-ci/release-tracker/go/filter"
	"github.com/opensearch-ci/release-tracker/go/search"
	"github.com/opensearch-ci/release-tracker/go/types"
)

func testEngine(t *testing.T) (*Engine, *search.FakeClient) {
	t.Helper()
	cfg := config.New("http://metrics.test:9200")
	client := search.NewFakeClient()
	return New(cfg, client), client
}

func testHit(component string, startTime interface{}, buildResult string) map[string]interface{} {
	return map[string]interface{}{
		"component":              component,
		"version":                "3.0.0",
		"rc_number":              float64(1),
		"platform":               "linux",
		"architecture":           "x64",
		"distribution":           "tar",
		"with_security":          "pass",
		"without_security":       "pass",
		"component_build_result": buildResult,
		"build_start_time":       startTime,
	}
}

func TestQueryRequiresVersion(t *testing.T) {
	eng, client := testEngine(t)
	for _, family := range []types.Family{
		types.FamilyTestResults,
		types.FamilyBuildResults,
		types.FamilyReleaseReadiness,
	} {
		_, err := eng.Query(context.Background(), family, Request{})
		require.Error(t, err)
		require.Equal(t, ErrorTypeValidation, ErrorType(err))
	}
	// Validation happens before any backend call.
	require.Empty(t, client.Requests)
}

func TestInvalidFilterValues(t *testing.T) {
	eng, client := testEngine(t)
	_, err := eng.TestResults(context.Background(), Request{
		Version: "3.0.0",
		Filters: filter.StatusFilters{Status: "green"},
	})
	require.Equal(t, ErrorTypeValidation, ErrorType(err))

	_, err = eng.TestResults(context.Background(), Request{
		Version: "3.0.0",
		Filters: filter.StatusFilters{WithSecurity: "passed"}, // must be pass|fail
	})
	require.Equal(t, ErrorTypeValidation, ErrorType(err))

	require.Empty(t, client.Requests)
}

func TestQueryUnknownFamily(t *testing.T) {
	eng, _ := testEngine(t)
	_, err := eng.Query(context.Background(), "nonsense", Request{Version: "3.0.0"})
	require.Error(t, err)
	require.Equal(t, ErrorTypeValidation, ErrorType(err))
}

func TestBackendErrorPropagates(t *testing.T) {
	eng, client := testEngine(t)
	client.Err = errors.New("connection refused")
	_, err := eng.TestResults(context.Background(), Request{Version: "3.0.0"})
	require.Error(t, err)
	require.Equal(t, ErrorTypeBackend, ErrorType(err))
	require.Contains(t, err.Error(), "connection refused")
}

// Two hits for the same logical test run: the older one passed, the newer
// one failed. Dedup must keep the newer (failed) record; filtering for
// passed must then return nothing. Filtering before dedup would instead
// resurrect the stale passing record.
func TestFilterAppliesAfterDedup(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultTestResultsIndex,
		testHit("alerting", float64(1000), "passed"),
		testHit("alerting", float64(2000), "failed"),
	)

	// No filter: one record, the most recent, overall failed.
	res, err := eng.TestResults(context.Background(), Request{Version: "3.0.0"})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalResults)
	require.Equal(t, "2000", res.Records[0].BuildStartTime.String())
	require.Equal(t, "failed", res.Records[0].OverallStatus)

	// status=passed: the failed winner is filtered out, leaving nothing.
	res, err = eng.TestResults(context.Background(), Request{
		Version: "3.0.0",
		Filters: filter.StatusFilters{Status: "passed"},
	})
	require.NoError(t, err)
	require.Empty(t, res.Records)
	require.Equal(t, 0, res.Summary.Total)
}

func TestTestResultsSummaryComputedOnFilteredSet(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultTestResultsIndex,
		testHit("alerting", float64(1000), "passed"),
		testHit("security", float64(1000), "failed"),
	)
	res, err := eng.TestResults(context.Background(), Request{
		Version: "3.0.0",
		Filters: filter.StatusFilters{Status: "passed"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalResults)
	require.Equal(t, 1, res.Summary.Total)
	require.Equal(t, 100.0, res.Summary.SuccessRate)
}

func TestQueryDispatch(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultTestResultsIndex, testHit("alerting", float64(1000), "passed"))
	res, err := eng.Query(context.Background(), types.FamilyTestResults, Request{Version: "3.0.0"})
	require.NoError(t, err)
	require.Equal(t, types.FamilyTestResults, res.Family)
	require.Equal(t, 1, res.TotalResults)
	records, ok := res.Records.([]types.TestResultRecord)
	require.True(t, ok)
	require.Equal(t, "alerting", records[0].Component)
}

func buildHit(component string, buildNumber interface{}, rc interface{}) map[string]interface{} {
	return map[string]interface{}{
		"component":                 component,
		"version":                   "2.19.0",
		"rc_number":                 rc,
		"distribution_build_number": buildNumber,
		"component_build_result":    "passed",
	}
}

func TestBuildResultsPipeline(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultBuildResultsIndex,
		buildHit("sql", float64(10500), float64(2)),
		buildHit("sql", float64(10507), float64(2)),
		buildHit("ml", float64(10507), float64(2)),
	)
	res, err := eng.BuildResults(context.Background(), Request{Version: "2.19.0"})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalResults)
	require.Equal(t, 2, res.Summary.UniqueComponents)
	for _, r := range res.Records {
		if r.Component == "sql" {
			require.Equal(t, "10507", r.DistributionBuildNumber.String())
		}
	}
}

func TestReleaseReadinessPipeline(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultReleaseReadinessIndex,
		map[string]interface{}{
			"component":     "alerting",
			"version":       "3.0.0",
			"current_date":  "2025-03-01",
			"release_state": "open",
			"release_notes": false,
		},
		map[string]interface{}{
			"component":     "alerting",
			"version":       "3.0.0",
			"current_date":  "2025-03-12",
			"release_state": "closed",
			"release_notes": true,
		},
	)
	res, err := eng.ReleaseReadiness(context.Background(), Request{Version: "3.0.0"})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalResults)
	require.Equal(t, "2025-03-12", res.Records[0].CurrentDate.String())
	require.Equal(t, 1, res.Summary.ClosedCount)
	require.Equal(t, []string{"alerting"}, res.Summary.ComponentsWithReleaseNotes)
}

// Re-running the same query over unchanged backend contents must yield
// identical output.
func TestQueryIdempotent(t *testing.T) {
	eng, client := testEngine(t)
	client.AddHits(config.DefaultTestResultsIndex,
		testHit("alerting", float64(1000), "passed"),
		testHit("alerting", float64(2000), "failed"),
		testHit("security", nil, "passed"),
	)
	first, err := eng.TestResults(context.Background(), Request{Version: "3.0.0"})
	require.NoError(t, err)
	second, err := eng.TestResults(context.Background(), Request{Version: "3.0.0"})
	require.NoError(t, err)
	require.Equal(t, first, second)
}
