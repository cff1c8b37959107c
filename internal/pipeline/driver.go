package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vartha-hq/vartha/internal/crawler"
	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/internal/logger"
	"github.com/vartha-hq/vartha/internal/store"
	"github.com/vartha-hq/vartha/pkg/providers"
	"github.com/vartha-hq/vartha/pkg/publishers"
)

// Runner drives one ingestion pass: concurrent source fetch, merge and
// sort, batched enrichment, store upsert, sink publication.
type Runner struct {
	registry  providers.FetcherRegistry
	scraper   *crawler.Scraper
	store     *store.Store
	sinks     []publishers.Publisher
	log       logger.Logger
	batchSize int
}

// New assembles a Runner. Sinks are optional; a nil logger is replaced
// with a no-op one.
func New(registry providers.FetcherRegistry, scraper *crawler.Scraper, st *store.Store, sinks []publishers.Publisher, log logger.Logger, batchSize int) *Runner {
	if log == nil {
		log = logger.NopLogger{}
	}
	if batchSize < 1 {
		batchSize = crawler.DefaultBatchSize
	}
	return &Runner{
		registry:  registry,
		scraper:   scraper,
		store:     st,
		sinks:     sinks,
		log:       log,
		batchSize: batchSize,
	}
}

// Run executes the full pipeline and returns the sorted, enriched
// records. A sitemap fetch or parse failure on any source fails the
// whole run; enrichment failures degrade individual records only.
func (r *Runner) Run(ctx context.Context) ([]domain.NewsRecord, error) {
	records, err := r.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	// Ordering compares the normalized display strings; the stable
	// sort keeps equal timestamps in source merge order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PublicationDate > records[j].PublicationDate
	})

	r.scraper.EnrichAll(ctx, records, r.batchSize)

	if err := r.store.UpsertAll(records); err != nil {
		return nil, fmt.Errorf("persist records: %w", err)
	}

	r.publish(ctx, records)

	r.log.InfoObj("ingestion run complete", "pipeline_done", map[string]any{
		"records": len(records),
		"batches": (len(records) + r.batchSize - 1) / r.batchSize,
	})

	return records, nil
}

// fetchAll runs every registered source fetcher concurrently and waits
// for all of them before merging in registration order.
func (r *Runner) fetchAll(ctx context.Context) ([]domain.NewsRecord, error) {
	fetchers := r.registry.All()
	if len(fetchers) == 0 {
		return nil, fmt.Errorf("no source fetchers registered")
	}

	results := make([][]domain.NewsRecord, len(fetchers))
	errs := make([]error, len(fetchers))

	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)
		go func(idx int, f providers.Fetcher) {
			defer wg.Done()
			results[idx], errs[idx] = f.Fetch(ctx)
		}(i, f)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", fetchers[i].ID(), err)
		}
	}

	var merged []domain.NewsRecord
	for i, recs := range results {
		r.log.DebugObj("source fetched", "source_done", map[string]any{
			"source":  fetchers[i].ID(),
			"records": len(recs),
		})
		merged = append(merged, recs...)
	}
	return merged, nil
}

// publish forwards the run summary to every configured sink. Sinks are
// best-effort: failures are logged and never fail the run.
func (r *Runner) publish(ctx context.Context, records []domain.NewsRecord) {
	if len(r.sinks) == 0 {
		return
	}

	evt := publishers.NewIngestEvent(records)
	for _, sink := range r.sinks {
		if err := sink.Publish(ctx, evt); err != nil {
			r.log.WarnObj("sink publish failed", "publisher_error", map[string]any{
				"publisher": sink.ID(),
				"error":     err.Error(),
			})
		}
	}
}

// WriteJSON emits the records as a JSON array with HTML escaping
// disabled, so characters like & and < survive in string fields.
func WriteJSON(w io.Writer, records []domain.NewsRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}
