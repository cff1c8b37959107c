package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/pkg/httpclient"
)

const oneNewsSourceID = "onenews"

// oneNewsFetcher maps 1 News sitemap entries, which may carry a single
// namespaced image with a caption alongside the title and publication
// date.
type oneNewsFetcher struct {
	client     httpclient.Client
	sitemapURL string
	workers    int
}

// NewOneNewsFetcher builds a fetcher for 1 News sitemap entries.
func NewOneNewsFetcher(client httpclient.Client, sitemapURL string, workers int) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &oneNewsFetcher{client: client, sitemapURL: sitemapURL, workers: workers}
}

func (f *oneNewsFetcher) ID() string { return oneNewsSourceID }

func (f *oneNewsFetcher) Source() domain.Source { return domain.SourceOneNews }

func (f *oneNewsFetcher) Fetch(ctx context.Context) ([]domain.NewsRecord, error) {
	if strings.TrimSpace(f.sitemapURL) == "" {
		return nil, fmt.Errorf("onenews sitemap url is empty")
	}

	raw, err := FetchSitemap(ctx, f.client, f.sitemapURL, oneNewsSourceID, nil)
	if err != nil {
		return nil, err
	}

	entries, err := ParseSitemap(raw)
	if err != nil {
		return nil, fmt.Errorf("onenews: %w", err)
	}

	return MapEntries(entries, f.workers, func(entry URLEntry) domain.NewsRecord {
		loc := strings.TrimSpace(entry.Loc)

		var images []string
		if img := strings.TrimSpace(entry.Image.Loc); img != "" {
			images = []string{img}
		}

		return domain.NewsRecord{
			Source:          domain.SourceOneNews,
			Location:        loc,
			PublicationDate: FormatDate(strings.TrimSpace(entry.News.PublicationDate)),
			Title:           strings.TrimSpace(entry.News.Title),
			Images:          images,
			Caption:         strings.TrimSpace(entry.Image.Caption),
			Category:        ExtractCategory(loc),
		}
	})
}
