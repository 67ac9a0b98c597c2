// Package search is the client for the metrics cluster, the document search
// backend that indexes test, build, and release-readiness records. The
// engine depends only on the Client interface; production code talks to a
// real cluster via ESClient, tests use FakeClient.
package search

import (
	"context"
)

// Request is one structured query against a single index.
type Request struct {
	Index string

	// Query is an elastic.Query in production; anything with a
	// Source() (interface{}, error) method satisfies it.
	Query Query

	// Size caps the number of hits returned.
	Size int

	// SortField orders the hits; descending unless SortAscending is set.
	SortField     string
	SortAscending bool

	// SourceFields restricts the _source projection of each hit.
	SourceFields []string
}

// Query is the subset of the olivere/elastic query interface the engine
// needs; every elastic.Query satisfies it.
type Query interface {
	Source() (interface{}, error)
}

// Response holds the hits of one query, in backend order.
type Response struct {
	// Total is the backend's total hit count, which may exceed len(Hits)
	// when the query size cap truncates.
	Total int64

	// Hits are the decoded _source documents, one per hit.
	Hits []map[string]interface{}
}

// Client issues structured queries against the metrics cluster.
type Client interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}
