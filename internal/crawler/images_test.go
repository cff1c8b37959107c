package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImageURLs(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<img class="hero" src="https://cdn.example.co.nz/resizer/abc?w=320&h=240">
	<p>text</p>
	<img src="https://cdn.example.co.nz/thumb_w_1050.jpg" alt="x">
	<img data-lazy="1">
	</body></html>`

	urls := ExtractImageURLs(html)
	require.Len(t, urls, 2)
	assert.Equal(t, "https://cdn.example.co.nz/resizer/abc?w=320&h=240", urls[0])
	assert.Equal(t, "https://cdn.example.co.nz/thumb_w_1050.jpg", urls[1])
}

func TestExtractImageURLsNone(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ExtractImageURLs("<html><body>no pictures here</body></html>"))
}

func TestResizeImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "short params",
			url:  "https://cdn.example.co.nz/resizer/abc.jpg?w=320&h=240&quality=80",
			want: "https://cdn.example.co.nz/resizer/abc.jpg?w=1024&h=1024&quality=80",
		},
		{
			name: "long params",
			url:  "https://cdn.example.co.nz/resizer/abc.jpg?width=640&height=480",
			want: "https://cdn.example.co.nz/resizer/abc.jpg?width=1024&height=1024",
		},
		{
			name: "no size params untouched",
			url:  "https://cdn.example.co.nz/resizer/abc.jpg?quality=80",
			want: "https://cdn.example.co.nz/resizer/abc.jpg?quality=80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResizeImageURL(tt.url, 1024, 1024))
		})
	}
}

func TestHeraldImages(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://cdn.nzherald.co.nz/resizer/story.jpg?w=320&h=240",
		"https://cdn.nzherald.co.nz/static/logo.png",
		"https://cdn.nzherald.co.nz/resizer/other.jpg?width=100&height=50",
	}

	got := HeraldImages(urls)
	require.Len(t, got, 2)
	assert.Equal(t, "https://cdn.nzherald.co.nz/resizer/story.jpg?w=1024&h=1024", got[0])
	assert.Equal(t, "https://cdn.nzherald.co.nz/resizer/other.jpg?width=1024&height=1024", got[1])
}

func TestRNZImage(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://cdn.rnz.co.nz/thumb_w_320.jpg",
		"https://cdn.rnz.co.nz/hero_w_1050.jpg",
		"https://cdn.rnz.co.nz/hero_w_2048.jpg",
	}

	img, ok := RNZImage(urls, 1050)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.rnz.co.nz/hero_w_1050.jpg", img)

	_, ok = RNZImage([]string{"https://cdn.rnz.co.nz/thumb_w_320.jpg"}, 1050)
	assert.False(t, ok, "no matching width is not an error")
}
