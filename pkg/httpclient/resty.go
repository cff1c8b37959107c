package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response is the subset of an HTTP response the pipeline consumes.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues GET requests with optional per-request headers. All
// calls honor the supplied context.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

type restyClient struct {
	client *resty.Client
}

type restyResponse struct {
	resp *resty.Response
}

func (r restyResponse) Body() []byte    { return r.resp.Body() }
func (r restyResponse) StatusCode() int { return r.resp.StatusCode() }

// NewRestyClient builds a resty-backed Client with the given total
// request timeout.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "vartha-ingest/1.0")
	return &restyClient{client: c}
}

func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := c.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	return restyResponse{resp: resp}, nil
}
