package search

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	elastic "gopkg.in/olivere/elastic.v5"

	"github.com/opensearch-ci/release-tracker/go/config"
)

// ESClient implements Client against a real Elasticsearch/OpenSearch
// cluster.
type ESClient struct {
	client *elastic.Client
}

// NewESClient dials the metrics cluster described by cfg.
func NewESClient(cfg config.Config) (*ESClient, error) {
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.BackendURL),
		// The cluster sits behind a load balancer; sniffing would surface
		// unreachable node-local addresses.
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}
	if cfg.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}
	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to metrics cluster")
	}
	return &ESClient{client: client}, nil
}

// Search implements Client.
func (c *ESClient) Search(ctx context.Context, req *Request) (*Response, error) {
	ss := elastic.NewSearchSource().Query(req.Query).Size(req.Size)
	if req.SortField != "" {
		ss = ss.Sort(req.SortField, req.SortAscending)
	}
	if len(req.SourceFields) > 0 {
		fsc := elastic.NewFetchSourceContext(true).Include(req.SourceFields...)
		ss = ss.FetchSourceContext(fsc)
	}
	res, err := c.client.Search().Index(req.Index).SearchSource(ss).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "searching %s", req.Index)
	}
	ret := &Response{}
	if res.Hits == nil {
		return ret, nil
	}
	ret.Total = res.Hits.TotalHits
	for _, hit := range res.Hits.Hits {
		if hit.Source == nil {
			continue
		}
		var src map[string]interface{}
		if err := json.Unmarshal(*hit.Source, &src); err != nil {
			return nil, errors.Wrapf(err, "decoding hit from %s", req.Index)
		}
		ret.Hits = append(ret.Hits, src)
	}
	return ret, nil
}

// Assert that ESClient implements Client.
var _ Client = (*ESClient)(nil)
