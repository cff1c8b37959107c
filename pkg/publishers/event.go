package publishers

import (
	"context"
	"time"

	"github.com/vartha-hq/vartha/internal/domain"
	"github.com/vartha-hq/vartha/internal/logger"
)

// Event summarizes one completed ingestion run for downstream
// consumers.
type Event struct {
	RunAt   time.Time        `json:"run_at"`
	Count   int              `json:"count"`
	Sources []string         `json:"sources"`
	Records []RecordEnvelope `json:"records"`
}

// RecordEnvelope is the per-article slice of an Event. It carries the
// identifying fields only, not the full document.
type RecordEnvelope struct {
	Source          string `json:"source"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	PublicationDate string `json:"publicationDate"`
	Title           string `json:"title"`
}

// NewIngestEvent builds the run event for the given records.
func NewIngestEvent(records []domain.NewsRecord) Event {
	evt := Event{
		RunAt:   time.Now().UTC(),
		Count:   len(records),
		Records: make([]RecordEnvelope, 0, len(records)),
	}

	seen := make(map[string]struct{}, 3)
	for _, rec := range records {
		src := string(rec.Source)
		if _, ok := seen[src]; !ok {
			seen[src] = struct{}{}
			evt.Sources = append(evt.Sources, src)
		}
		evt.Records = append(evt.Records, RecordEnvelope{
			Source:          src,
			Location:        rec.Location,
			Category:        rec.Category,
			PublicationDate: rec.PublicationDate,
			Title:           rec.Title,
		})
	}
	return evt
}

// Publisher delivers ingestion events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

func ensureLogger(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
