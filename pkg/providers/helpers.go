package providers

import (
	"regexp"
	"time"

	"github.com/vartha-hq/vartha/internal/domain"
)

// displayDateLayout is the single display format every publisher
// timestamp is normalized to. Downstream ordering compares these
// strings directly.
const displayDateLayout = "02/Jan/2006 03:04 PM"

// sourceDateLayouts are the timestamp shapes observed across the three
// publisher sitemaps.
var sourceDateLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z07:00",
}

// FormatDate normalizes a publisher timestamp to the display layout.
// An unrecognized value passes through unchanged; this function never
// fails.
func FormatDate(raw string) string {
	for _, layout := range sourceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return raw
}

var categoryExpr = regexp.MustCompile(`\.co\.nz/([^/]+)/`)

// ExtractCategory derives the article category from the first path
// segment after the publisher's top-level domain. The generic "news"
// segment is normalized to "nz-news" so it stays distinct across
// publishers. Anything that does not match falls back to the sentinel
// category.
func ExtractCategory(loc string) string {
	match := categoryExpr.FindStringSubmatch(loc)
	if len(match) < 2 || match[1] == "" {
		return domain.CategoryUncategorized
	}
	if match[1] == "news" {
		return "nz-news"
	}
	return match[1]
}
