// Package engine ties the query pipeline together: build the backend query,
// run it, project the hits into typed records, collapse duplicates, apply
// the caller's filters, and summarize. The engine holds no state between
// calls; every invocation is a pure function of its inputs plus the
// backend's current contents, so concurrent callers need no locking.
package engine

import (
	"context"

	"github.com/opensearch-ci/release-tracker/go/config"
	"github.com/opensearch-ci/release-tracker/go/dedup"
	"github.com/opensearch-ci/release-tracker/go/extract"
	"github.com/opensearch-ci/release-tracker/go/filter"
	"github.com/opensearch-ci/release-tracker/go/query"
	"github.com/opensearch-ci/release-tracker/go/search"
	"github.com/opensearch-ci/release-tracker/go/sklog"
	"github.com/opensearch-ci/release-tracker/go/summary"
	"github.com/opensearch-ci/release-tracker/go/types"
	"github.com/opensearch-ci/release-tracker/go/util"
)

// Request carries the caller-supplied parameters of one query. Version is
// required; everything else is optional. List-valued parameters are
// normalized at the transport boundary via types.NormalizeStringList.
type Request struct {
	Version                  string               `json:"version"`
	RCNumber                 string               `json:"rc_number"`
	DistributionBuildNumbers types.StringList     `json:"distribution_build_numbers"`
	IntegTestBuildNumbers    types.StringList     `json:"integ_test_build_numbers"`
	Components               types.StringList     `json:"components"`
	Filters                  filter.StatusFilters `json:"filters"`
}

// TestResultsResponse is the result of a test-result query.
type TestResultsResponse struct {
	Records      []types.TestResultRecord `json:"records"`
	TotalResults int                      `json:"total_results"`
	Summary      summary.TestSummary      `json:"summary"`
}

// BuildResultsResponse is the result of a build-result query.
type BuildResultsResponse struct {
	Records      []types.BuildResultRecord `json:"records"`
	TotalResults int                       `json:"total_results"`
	Summary      summary.BuildSummary      `json:"summary"`
}

// ReleaseReadinessResponse is the result of a readiness query.
type ReleaseReadinessResponse struct {
	Records      []types.ReleaseReadinessRecord `json:"records"`
	TotalResults int                            `json:"total_results"`
	Summary      summary.ReadinessSummary       `json:"summary"`
}

// Response is the family-generic shape returned by Query. Records and
// Summary hold the family-specific types above.
type Response struct {
	Family       types.Family `json:"family"`
	Records      interface{}  `json:"records"`
	TotalResults int          `json:"total_results"`
	Summary      interface{}  `json:"summary"`
}

// Engine executes release-state queries against the metrics cluster.
type Engine struct {
	cfg     config.Config
	client  search.Client
	builder *query.Builder
}

// New returns an Engine using the given backend client.
func New(cfg config.Config, client search.Client) *Engine {
	return &Engine{
		cfg:     cfg,
		client:  client,
		builder: query.NewBuilder(cfg),
	}
}

// Query dispatches to the family-specific query method.
func (e *Engine) Query(ctx context.Context, family types.Family, req Request) (*Response, error) {
	switch family {
	case types.FamilyTestResults:
		res, err := e.TestResults(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Response{Family: family, Records: res.Records, TotalResults: res.TotalResults, Summary: res.Summary}, nil
	case types.FamilyBuildResults:
		res, err := e.BuildResults(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Response{Family: family, Records: res.Records, TotalResults: res.TotalResults, Summary: res.Summary}, nil
	case types.FamilyReleaseReadiness:
		res, err := e.ReleaseReadiness(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Response{Family: family, Records: res.Records, TotalResults: res.TotalResults, Summary: res.Summary}, nil
	default:
		return nil, validationErrorf("unknown record family %q", family)
	}
}

// validateFilters rejects unknown enum values before any backend call.
func validateFilters(f filter.StatusFilters) error {
	if f.Status != "" && !util.In(f.Status, []string{types.BuildResultPassed, types.BuildResultFailed}) {
		return validationErrorf("invalid status filter %q; expected passed or failed", f.Status)
	}
	security := []string{types.SecurityTestPass, types.SecurityTestFail}
	if f.WithSecurity != "" && !util.In(f.WithSecurity, security) {
		return validationErrorf("invalid with_security filter %q; expected pass or fail", f.WithSecurity)
	}
	if f.WithoutSecurity != "" && !util.In(f.WithoutSecurity, security) {
		return validationErrorf("invalid without_security filter %q; expected pass or fail", f.WithoutSecurity)
	}
	return nil
}

// TestResults runs the full pipeline for integration-test results.
func (e *Engine) TestResults(ctx context.Context, req Request) (*TestResultsResponse, error) {
	if req.Version == "" {
		return nil, validationErrorf("version is required")
	}
	if err := validateFilters(req.Filters); err != nil {
		return nil, err
	}
	defer metricsTimer(types.FamilyTestResults)()
	sreq, err := e.builder.TestResults(req.Version, query.TestResultFilters{
		RCNumber:                 req.RCNumber,
		DistributionBuildNumbers: req.DistributionBuildNumbers,
		IntegTestBuildNumbers:    req.IntegTestBuildNumbers,
		Components:               req.Components,
	})
	if err != nil {
		return nil, validationErrorf("%s", err)
	}
	res, err := e.client.Search(ctx, sreq)
	if err != nil {
		return nil, &BackendError{Err: err}
	}
	records := extract.TestResults(res.Hits)
	deduped := dedup.TestResults(records)
	sklog.Debugf("test results %s: %d raw, %d after dedup", req.Version, len(records), len(deduped))
	filtered := filter.TestResults(deduped, req.Filters)
	return &TestResultsResponse{
		Records:      filtered,
		TotalResults: len(filtered),
		Summary:      summary.TestResults(filtered),
	}, nil
}

// BuildResults runs the full pipeline for distribution builds.
func (e *Engine) BuildResults(ctx context.Context, req Request) (*BuildResultsResponse, error) {
	if req.Version == "" {
		return nil, validationErrorf("version is required")
	}
	if err := validateFilters(req.Filters); err != nil {
		return nil, err
	}
	defer metricsTimer(types.FamilyBuildResults)()
	sreq, err := e.builder.BuildResults(req.Version, query.BuildResultFilters{
		RCNumber:                 req.RCNumber,
		DistributionBuildNumbers: req.DistributionBuildNumbers,
		Components:               req.Components,
	})
	if err != nil {
		return nil, validationErrorf("%s", err)
	}
	res, err := e.client.Search(ctx, sreq)
	if err != nil {
		return nil, &BackendError{Err: err}
	}
	records := extract.BuildResults(res.Hits)
	deduped := dedup.BuildResults(records)
	sklog.Debugf("build results %s: %d raw, %d after dedup", req.Version, len(records), len(deduped))
	filtered := filter.BuildResults(deduped, req.Filters.Status)
	return &BuildResultsResponse{
		Records:      filtered,
		TotalResults: len(filtered),
		Summary:      summary.BuildResults(filtered),
	}, nil
}

// ReleaseReadiness runs the full pipeline for readiness snapshots.
func (e *Engine) ReleaseReadiness(ctx context.Context, req Request) (*ReleaseReadinessResponse, error) {
	if req.Version == "" {
		return nil, validationErrorf("version is required")
	}
	defer metricsTimer(types.FamilyReleaseReadiness)()
	component := ""
	if len(req.Components) > 0 {
		component = req.Components[0]
	}
	sreq, err := e.builder.ReleaseReadiness(req.Version, component)
	if err != nil {
		return nil, validationErrorf("%s", err)
	}
	res, err := e.client.Search(ctx, sreq)
	if err != nil {
		return nil, &BackendError{Err: err}
	}
	records := extract.ReleaseReadinessRecords(res.Hits)
	deduped := dedup.ReleaseReadiness(records)
	sklog.Debugf("readiness %s: %d raw, %d after dedup", req.Version, len(records), len(deduped))
	return &ReleaseReadinessResponse{
		Records:      deduped,
		TotalResults: len(deduped),
		Summary:      summary.ReleaseReadiness(deduped),
	}, nil
}
