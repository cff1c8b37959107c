package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/pkg/httpclient"
)

// responseSnippet returns a truncated snippet of the response body for
// error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

type newsSitemap struct {
	URLs []URLEntry `xml:"url"`
}

// URLEntry is one <url> node of a publisher sitemap. Fields a publisher
// does not emit decode to their zero value; a missing optional child is
// never an error.
type URLEntry struct {
	Loc     string      `xml:"loc"`
	LastMod string      `xml:"lastmod"`
	News    newsDetail  `xml:"news"`
	Image   imageDetail `xml:"image"`
}

type newsDetail struct {
	PublicationDate string `xml:"publication_date"`
	Title           string `xml:"title"`
}

type imageDetail struct {
	Loc     string `xml:"loc"`
	Caption string `xml:"caption"`
}

// ParseSitemap decodes sitemap XML into its <url> entries. Entries with
// an empty <loc> are dropped since the location is the storage key.
func ParseSitemap(data []byte) ([]URLEntry, error) {
	var sitemap newsSitemap
	if err := xml.Unmarshal(data, &sitemap); err != nil {
		return nil, fmt.Errorf("decode sitemap: %w", err)
	}

	entries := make([]URLEntry, 0, len(sitemap.URLs))
	for _, entry := range sitemap.URLs {
		if strings.TrimSpace(entry.Loc) == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FetchSitemap retrieves the raw sitemap XML from the given URL.
func FetchSitemap(ctx context.Context, client httpclient.Client, url, sourceID string, headers map[string]string) ([]byte, error) {
	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s sitemap: %w", sourceID, err)
	}

	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("%s sitemap returned status %d body: %s", sourceID, resp.StatusCode(), responseSnippet(body))
	}

	return body, nil
}

// MapEntries applies mapper to every sitemap entry on a bounded worker
// pool and waits for all of them. The cap keeps a very large sitemap
// from fanning out one goroutine per node. Results land at their input
// index; the deterministic global order comes from the sort stage, not
// from here.
func MapEntries(entries []URLEntry, maxWorkers int, mapper func(URLEntry) domain.NewsRecord) ([]domain.NewsRecord, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	workers := maxWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create mapper pool: %w", err)
	}
	defer pool.Release()

	records := make([]domain.NewsRecord, len(entries))
	var wg sync.WaitGroup

	for i := range entries {
		wg.Add(1)
		idx := i
		if err := pool.Submit(func() {
			defer wg.Done()
			records[idx] = mapper(entries[idx])
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit mapper task: %w", err)
		}
	}

	wg.Wait()
	return records, nil
}
