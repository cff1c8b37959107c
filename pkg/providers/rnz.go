package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/pkg/httpclient"
)

const rnzSourceID = "rnz"

// rnzFetcher maps RNZ news-sitemap entries. The RNZ sitemap carries a
// namespaced title and publication date but no image.
type rnzFetcher struct {
	client     httpclient.Client
	sitemapURL string
	workers    int
}

// NewRNZFetcher builds a fetcher for RNZ sitemap entries.
func NewRNZFetcher(client httpclient.Client, sitemapURL string, workers int) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &rnzFetcher{client: client, sitemapURL: sitemapURL, workers: workers}
}

func (f *rnzFetcher) ID() string { return rnzSourceID }

func (f *rnzFetcher) Source() domain.Source { return domain.SourceRNZ }

func (f *rnzFetcher) Fetch(ctx context.Context) ([]domain.NewsRecord, error) {
	if strings.TrimSpace(f.sitemapURL) == "" {
		return nil, fmt.Errorf("rnz sitemap url is empty")
	}

	raw, err := FetchSitemap(ctx, f.client, f.sitemapURL, rnzSourceID, nil)
	if err != nil {
		return nil, err
	}

	entries, err := ParseSitemap(raw)
	if err != nil {
		return nil, fmt.Errorf("rnz: %w", err)
	}

	return MapEntries(entries, f.workers, func(entry URLEntry) domain.NewsRecord {
		loc := strings.TrimSpace(entry.Loc)
		return domain.NewsRecord{
			Source:          domain.SourceRNZ,
			Location:        loc,
			PublicationDate: FormatDate(strings.TrimSpace(entry.News.PublicationDate)),
			Title:           strings.TrimSpace(entry.News.Title),
			Category:        ExtractCategory(loc),
		}
	})
}
