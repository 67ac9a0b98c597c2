package engine

import (
	"context"

	"github.com/opensearch-ci/release-tracker/go/extract"
	"github.com/opensearch-ci/release-tracker/go/query"
	"github.com/opensearch-ci/release-tracker/go/types"
	"github.com/opensearch-ci/release-tracker/go/util"
)

// ResolveComponentsFromBuildNumbers maps each of the given distribution
// build numbers to the components built under it. This is a raw listing of
// the build index — components are de-duplicated per build number, but the
// records do NOT go through the dedup engine, because callers here want
// every component that ever appeared under a build number, not one winner.
func (e *Engine) ResolveComponentsFromBuildNumbers(ctx context.Context, version string, buildNumbers types.StringList) (map[string][]string, error) {
	if version == "" {
		return nil, validationErrorf("version is required")
	}
	if len(buildNumbers) == 0 {
		return nil, validationErrorf("at least one build number is required")
	}
	records, err := e.rawBuildResults(ctx, version, query.BuildResultFilters{
		DistributionBuildNumbers: buildNumbers,
	})
	if err != nil {
		return nil, err
	}
	sets := map[string]util.StringSet{}
	for _, r := range records {
		bn := r.DistributionBuildNumber.String()
		if bn == "" || r.Component == "" {
			continue
		}
		if sets[bn] == nil {
			sets[bn] = util.StringSet{}
		}
		sets[bn][r.Component] = true
	}
	ret := make(map[string][]string, len(sets))
	for bn, components := range sets {
		ret[bn] = components.SortedKeys()
	}
	return ret, nil
}

// RCBuildNumbersByComponent returns, per component, every distribution
// build number known for (version, rc). Unlike deduplication this keeps the
// full rebuild history: callers translating identifier spaces need all
// build numbers, not just the newest.
func (e *Engine) RCBuildNumbersByComponent(ctx context.Context, version, rcNumber string) (map[string][]string, error) {
	if err := validateRCArgs(version, rcNumber); err != nil {
		return nil, err
	}
	records, err := e.rawBuildResults(ctx, version, query.BuildResultFilters{
		RCNumber: rcNumber,
	})
	if err != nil {
		return nil, err
	}
	ret := map[string][]string{}
	seen := map[string]util.StringSet{}
	for _, r := range records {
		bn := r.DistributionBuildNumber.String()
		if bn == "" || r.Component == "" {
			continue
		}
		if seen[r.Component] == nil {
			seen[r.Component] = util.StringSet{}
		}
		if seen[r.Component][bn] {
			continue
		}
		seen[r.Component][bn] = true
		ret[r.Component] = append(ret[r.Component], bn)
	}
	return ret, nil
}

// RCBuildNumbersForComponent returns every distribution build number known
// for (version, rc, component), de-duplicated, in backend order (most
// recent build first).
func (e *Engine) RCBuildNumbersForComponent(ctx context.Context, version, rcNumber, component string) ([]string, error) {
	if err := validateRCArgs(version, rcNumber); err != nil {
		return nil, err
	}
	if component == "" {
		return nil, validationErrorf("component is required")
	}
	records, err := e.rawBuildResults(ctx, version, query.BuildResultFilters{
		RCNumber:   rcNumber,
		Components: types.StringList{component},
	})
	if err != nil {
		return nil, err
	}
	var ret []string
	seen := util.StringSet{}
	for _, r := range records {
		bn := r.DistributionBuildNumber.String()
		if bn == "" || seen[bn] {
			continue
		}
		seen[bn] = true
		ret = append(ret, bn)
	}
	return ret, nil
}

func validateRCArgs(version, rcNumber string) error {
	if version == "" {
		return validationErrorf("version is required")
	}
	if rcNumber == "" {
		return validationErrorf("rc number is required")
	}
	return nil
}

// rawBuildResults queries and extracts build records without deduplication.
func (e *Engine) rawBuildResults(ctx context.Context, version string, f query.BuildResultFilters) ([]types.BuildResultRecord, error) {
	sreq, err := e.builder.BuildResults(version, f)
	if err != nil {
		return nil, validationErrorf("%s", err)
	}
	res, err := e.client.Search(ctx, sreq)
	if err != nil {
		return nil, &BackendError{Err: err}
	}
	return extract.BuildResults(res.Hits), nil
}
