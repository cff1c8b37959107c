package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/pkg/httpclient"
)

// defaultNodeWorkers bounds the per-sitemap node mapping fan-out when
// no explicit cap is configured.
const defaultNodeWorkers = 32

// Fetcher turns one publisher's sitemap into normalized news records.
type Fetcher interface {
	ID() string
	Source() domain.Source
	Fetch(ctx context.Context) ([]domain.NewsRecord, error)
}

type fetcherRegistry struct {
	fetchers map[string]Fetcher
	order    []string
	mu       sync.RWMutex
}

// FetcherRegistry holds the configured source fetchers in registration
// order.
type FetcherRegistry interface {
	FetcherFor(id string) (Fetcher, error)
	All() []Fetcher
}

// NewFetcherRegistry builds a registry for the provided fetcher
// implementations.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchers: make(map[string]Fetcher, len(fetchers)),
	}

	for _, f := range fetchers {
		if f == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(f.ID()))
		if _, exists := reg.fetchers[key]; !exists {
			reg.order = append(reg.order, key)
		}
		reg.fetchers[key] = f
	}

	return reg
}

// FetcherFor selects a fetcher by its source id.
func (r *fetcherRegistry) FetcherFor(id string) (Fetcher, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchers[strings.ToLower(id)]; ok {
		return f, nil
	}

	return nil, fmt.Errorf("no fetcher registered for source %q", id)
}

// All returns the fetchers in registration order. The pipeline's merge
// order (and therefore sort tie order) follows this.
func (r *fetcherRegistry) All() []Fetcher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Fetcher, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.fetchers[key])
	}
	return out
}

// SitemapURLs carries the per-publisher sitemap endpoints.
type SitemapURLs struct {
	RNZ      string
	NZHerald string
	OneNews  string
}

// DefaultHTTPClient returns a tuned HTTP client for source fetchers.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(15 * time.Second)
}

// DefaultFetcherRegistry wires up the three publisher fetchers in
// merge order.
func DefaultFetcherRegistry(client httpclient.Client, urls SitemapURLs, nodeWorkers int) FetcherRegistry {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if nodeWorkers < 1 {
		nodeWorkers = defaultNodeWorkers
	}

	return NewFetcherRegistry(
		NewRNZFetcher(client, urls.RNZ, nodeWorkers),
		NewNZHeraldFetcher(client, urls.NZHerald, nodeWorkers),
		NewOneNewsFetcher(client, urls.OneNews, nodeWorkers),
	)
}
