package search

import (
	"context"

	"github.com/pkg/errors"
)

// FakeClient is an in-memory Client for tests. Hits are keyed by index and
// returned in insertion order, which stands in for backend response order.
type FakeClient struct {
	hits map[string][]map[string]interface{}

	// Requests records every request received, oldest first.
	Requests []*Request

	// Err, if set, is returned by every Search call.
	Err error
}

// NewFakeClient returns an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		hits: map[string][]map[string]interface{}{},
	}
}

// AddHits appends raw _source documents for the given index.
func (f *FakeClient) AddHits(index string, hits ...map[string]interface{}) {
	f.hits[index] = append(f.hits[index], hits...)
}

// Search implements Client.
func (f *FakeClient) Search(ctx context.Context, req *Request) (*Response, error) {
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return nil, errors.Wrap(f.Err, "fake backend")
	}
	hits := f.hits[req.Index]
	total := int64(len(hits))
	if req.Size > 0 && len(hits) > req.Size {
		hits = hits[:req.Size]
	}
	return &Response{
		Total: total,
		Hits:  hits,
	}, nil
}

var _ Client = (*FakeClient)(nil)
