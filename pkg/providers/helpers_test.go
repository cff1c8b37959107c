package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vartha-hq/vartha/internal/domain"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "numeric offset", raw: "2023-10-06T10:00:00+1300", want: "06/Oct/2023 10:00 AM"},
		{name: "millis utc", raw: "2023-10-06T10:00:00.000Z", want: "06/Oct/2023 10:00 AM"},
		{name: "colon offset", raw: "2023-10-05T22:05:00+13:00", want: "05/Oct/2023 10:05 PM"},
		{name: "rfc3339 zulu", raw: "2023-10-06T22:05:00Z", want: "06/Oct/2023 10:05 PM"},
		{name: "unknown format passes through", raw: "last tuesday", want: "last tuesday"},
		{name: "empty passes through", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDate(tt.raw))
		})
	}
}

func TestFormatDateIdempotent(t *testing.T) {
	t.Parallel()

	// The display format matches none of the source layouts, so a
	// second pass must return the string unchanged.
	once := FormatDate("2023-10-06T10:00:00.000Z")
	assert.Equal(t, once, FormatDate(once))
}

func TestExtractCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		loc  string
		want string
	}{
		{name: "news normalized", loc: "https://www.rnz.co.nz/news/story-one", want: "nz-news"},
		{name: "plain segment", loc: "https://www.nzherald.co.nz/sport/match-report", want: "sport"},
		{name: "segment without article", loc: "https://www.1news.co.nz/politics/", want: "politics"},
		{name: "no segment", loc: "https://www.rnz.co.nz", want: domain.CategoryUncategorized},
		{name: "foreign domain", loc: "https://example.com/news/story", want: domain.CategoryUncategorized},
		{name: "garbage input", loc: ":::not a url:::", want: domain.CategoryUncategorized},
		{name: "empty input", loc: "", want: domain.CategoryUncategorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractCategory(tt.loc))
		})
	}
}
