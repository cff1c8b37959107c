package domain

// Domain contains the core record shape shared by every pipeline stage.

// Source identifies the publisher whose sitemap produced a record.
type Source string

const (
	SourceRNZ      Source = "RNZ"
	SourceNZHerald Source = "NZ Herald"
	SourceOneNews  Source = "1 News"
)

// CategoryUncategorized is the sentinel category for URLs that do not
// match any known publisher path layout.
const CategoryUncategorized = "Uncategorized"

// NewsRecord is one article harvested from a publisher sitemap.
// Location is the canonical article URL and the storage key. Title and
// Images start empty for publishers whose sitemaps omit them and are
// filled in by enrichment; each record is mutated by exactly one
// enrichment worker.
type NewsRecord struct {
	Source          Source   `json:"source"`
	Location        string   `json:"location"`
	PublicationDate string   `json:"publicationDate"`
	Title           string   `json:"title"`
	Images          []string `json:"images"`
	Caption         string   `json:"caption,omitempty"`
	Category        string   `json:"category"`
	Summary         string   `json:"summary"`
}
