package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/pkg/httpclient"
)

const nzHeraldSourceID = "nzherald"

// nzHeraldFetcher maps NZ Herald sitemap entries. The feed exposes only
// <loc> and <lastmod>; lastmod stands in for the publication time and
// the title stays empty until enrichment resolves it from the live
// page.
type nzHeraldFetcher struct {
	client     httpclient.Client
	sitemapURL string
	workers    int
}

// NewNZHeraldFetcher builds a fetcher for NZ Herald sitemap entries.
func NewNZHeraldFetcher(client httpclient.Client, sitemapURL string, workers int) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &nzHeraldFetcher{client: client, sitemapURL: sitemapURL, workers: workers}
}

func (f *nzHeraldFetcher) ID() string { return nzHeraldSourceID }

func (f *nzHeraldFetcher) Source() domain.Source { return domain.SourceNZHerald }

func (f *nzHeraldFetcher) Fetch(ctx context.Context) ([]domain.NewsRecord, error) {
	if strings.TrimSpace(f.sitemapURL) == "" {
		return nil, fmt.Errorf("nzherald sitemap url is empty")
	}

	raw, err := FetchSitemap(ctx, f.client, f.sitemapURL, nzHeraldSourceID, nil)
	if err != nil {
		return nil, err
	}

	entries, err := ParseSitemap(raw)
	if err != nil {
		return nil, fmt.Errorf("nzherald: %w", err)
	}

	return MapEntries(entries, f.workers, func(entry URLEntry) domain.NewsRecord {
		loc := strings.TrimSpace(entry.Loc)
		return domain.NewsRecord{
			Source:          domain.SourceNZHerald,
			Location:        loc,
			PublicationDate: FormatDate(strings.TrimSpace(entry.LastMod)),
			Category:        ExtractCategory(loc),
		}
	})
}
