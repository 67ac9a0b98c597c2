// Package config holds the release-tracker configuration. There is exactly
// one Config per process, built explicitly by the caller and passed down;
// nothing reads ambient/global state.
package config

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	// DefaultMaxResults caps how many raw hits one query fetches. It must be
	// generous: deduplication needs every competing duplicate in hand, and
	// under-fetching silently promotes a stale winner.
	DefaultMaxResults = 2000

	DefaultTestResultsIndex      = "opensearch-integration-test-results"
	DefaultBuildResultsIndex     = "opensearch-distribution-build-results"
	DefaultReleaseReadinessIndex = "opensearch_release_metrics"
)

// Indices names the backend index for each record family.
type Indices struct {
	TestResults      string
	BuildResults     string
	ReleaseReadiness string
}

// Config configures the query engine and its backend connection.
type Config struct {
	// URL of the metrics cluster, e.g. "https://metrics.example.org:9200".
	BackendURL string

	// Optional basic-auth credentials for the cluster.
	Username string
	Password string

	Indices Indices

	// MaxResults caps the hits fetched per query.
	MaxResults int
}

// New returns a Config with all defaults filled in for the given backend URL.
func New(backendURL string) Config {
	return Config{
		BackendURL: backendURL,
		Indices: Indices{
			TestResults:      DefaultTestResultsIndex,
			BuildResults:     DefaultBuildResultsIndex,
			ReleaseReadiness: DefaultReleaseReadinessIndex,
		},
		MaxResults: DefaultMaxResults,
	}
}

// Validate returns an error describing every problem with the Config.
func (c Config) Validate() error {
	var ret *multierror.Error
	if c.BackendURL == "" {
		ret = multierror.Append(ret, errors.New("backend URL is required"))
	}
	if c.Indices.TestResults == "" {
		ret = multierror.Append(ret, errors.New("test results index is required"))
	}
	if c.Indices.BuildResults == "" {
		ret = multierror.Append(ret, errors.New("build results index is required"))
	}
	if c.Indices.ReleaseReadiness == "" {
		ret = multierror.Append(ret, errors.New("release readiness index is required"))
	}
	if c.MaxResults <= 0 {
		ret = multierror.Append(ret, errors.New("max results must be positive"))
	}
	return ret.ErrorOrNil()
}
