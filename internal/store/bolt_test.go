package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vartha-hq/vartha/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "vartha.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecords() []domain.NewsRecord {
	return []domain.NewsRecord{
		{
			Source:          domain.SourceRNZ,
			Location:        "https://www.rnz.co.nz/news/a",
			PublicationDate: "06/Oct/2023 10:00 AM",
			Title:           "A",
			Category:        "nz-news",
		},
		{
			Source:          domain.SourceNZHerald,
			Location:        "https://www.nzherald.co.nz/sport/b",
			PublicationDate: "05/Oct/2023 09:00 AM",
			Title:           "B",
			Category:        "sport",
		},
		{
			Source:          domain.SourceOneNews,
			Location:        "https://www.1news.co.nz/news/c",
			PublicationDate: "04/Oct/2023 08:00 AM",
			Title:           "C",
			Category:        "nz-news",
			Images:          []string{"https://cdn.1news.co.nz/c.jpg"},
		},
	}
}

func TestUpsertIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records := sampleRecords()

	require.NoError(t, s.UpsertAll(records))
	require.NoError(t, s.UpsertAll(records))

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 3, "re-running must not duplicate documents")
}

func TestUpsertReplaces(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	rec := sampleRecords()[0]
	require.NoError(t, s.Upsert(rec))

	rec.Title = "A updated"
	rec.Images = []string{"https://cdn.rnz.co.nz/a_w_1050.jpg"}
	require.NoError(t, s.Upsert(rec))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A updated", all[0].Title)
	assert.Equal(t, []string{"https://cdn.rnz.co.nz/a_w_1050.jpg"}, all[0].Images)
}

func TestUpsertEmptyLocation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.Upsert(domain.NewsRecord{Source: domain.SourceRNZ})
	require.Error(t, err)
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.UpsertAll(sampleRecords()))

	news, err := s.ByCategory("nz-news")
	require.NoError(t, err)
	assert.Len(t, news, 2)

	sport, err := s.ByCategory("sport")
	require.NoError(t, err)
	assert.Len(t, sport, 1)

	none, err := s.ByCategory("weather")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCategories(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.UpsertAll(sampleRecords()))

	cats, err := s.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{"nz-news", "sport"}, cats)
}

func TestUpdateSummary(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records := sampleRecords()
	require.NoError(t, s.UpsertAll(records))

	loc := records[0].Location
	require.NoError(t, s.UpdateSummary(loc, "short recap"))

	all, err := s.ByCategory("nz-news")
	require.NoError(t, err)
	for _, rec := range all {
		if rec.Location == loc {
			assert.Equal(t, "short recap", rec.Summary)
			assert.Equal(t, "A", rec.Title, "summary update must not clobber other fields")
		}
	}

	err = s.UpdateSummary("https://www.rnz.co.nz/unknown", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
