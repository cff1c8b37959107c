package crawler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/internal/logger"
	"github.com/vartha-hq/vartha/pkg/httpclient"
	"github.com/vartha-hq/vartha/pkg/providers"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB

	// DefaultBatchSize is the enrichment partition size: batches run
	// concurrently, records within a batch sequentially.
	DefaultBatchSize = 100

	// TitleFallback is recorded when the article page cannot be
	// fetched or parsed for a title.
	TitleFallback = "Title not found"
)

// Scraper resolves titles and images by fetching live article pages.
type Scraper struct {
	client httpclient.Client
	log    logger.Logger
}

// NewScraper creates a Scraper with the given HTTP client and logger.
func NewScraper(client httpclient.Client, log logger.Logger) *Scraper {
	if client == nil {
		client = providers.DefaultHTTPClient()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scraper{client: client, log: log}
}

// EnrichAll partitions records into fixed-size batches and enriches the
// batches concurrently. Records are mutated in place; each record is
// touched by exactly one batch goroutine. One record's failure never
// aborts its batch.
func (s *Scraper) EnrichAll(ctx context.Context, records []domain.NewsRecord, batchSize int) {
	if len(records) == 0 {
		return
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	var wg sync.WaitGroup
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		wg.Add(1)
		go func(batch []domain.NewsRecord) {
			defer wg.Done()
			for i := range batch {
				if ctx.Err() != nil {
					return
				}
				s.enrichRecord(ctx, &batch[i])
			}
		}(records[start:end])
	}

	wg.Wait()
}

// enrichRecord fills in the record's title and images from its live
// article page according to the publisher's CDN conventions.
func (s *Scraper) enrichRecord(ctx context.Context, rec *domain.NewsRecord) {
	if rec.Source == domain.SourceOneNews {
		// Sitemap images pass through untouched.
		if rec.Images == nil {
			rec.Images = []string{}
		}
		return
	}

	body, err := s.fetchPage(ctx, rec.Location)
	if err != nil {
		s.log.WarnObj("article page fetch failed", "enrich_fetch_error", map[string]any{
			"source": string(rec.Source),
			"url":    rec.Location,
			"error":  err.Error(),
		})
		if rec.Source == domain.SourceNZHerald && rec.Title == "" {
			rec.Title = TitleFallback
		}
		// nil (not empty) marks a failed resolution, distinct from a
		// page that simply had no usable image.
		rec.Images = nil
		return
	}

	pageImages := ExtractImageURLs(string(body))

	switch rec.Source {
	case domain.SourceNZHerald:
		if rec.Title == "" {
			rec.Title = s.titleFrom(body)
		}
		rec.Images = HeraldImages(pageImages)
	case domain.SourceRNZ:
		rec.Images = []string{}
		if img, ok := RNZImage(pageImages, rnzImageWidth); ok {
			rec.Images = []string{img}
		}
	}
}

// fetchPage retrieves the article HTML, truncating oversized bodies.
func (s *Scraper) fetchPage(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return nil, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		s.log.InfoObj("html body truncated", "enrich_truncation", map[string]any{
			"url":      url,
			"original": len(body),
			"kept":     maxHTMLBodyBytes,
		})
		body = body[:maxHTMLBodyBytes]
	}

	return body, nil
}

// titleFrom extracts the og:title meta content from the page. A page
// that parses but carries no og:title yields an empty string; only a
// parse failure produces the fallback literal.
func (s *Scraper) titleFrom(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return TitleFallback
	}

	title, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
	return strings.TrimSpace(title)
}
