package crawler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Target dimensions requested from the NZ Herald image resizer.
const (
	targetImageWidth  = 1024
	targetImageHeight = 1024
)

// rnzImageWidth is the rendition width token RNZ encodes in CDN image
// filenames.
const rnzImageWidth = 1050

// resizerToken marks NZ Herald CDN URLs that go through the image
// resizer service.
const resizerToken = "resizer"

var (
	imgSrcExpr      = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)
	widthParamExpr  = regexp.MustCompile(`(\b(w|width)=)\d+`)
	heightParamExpr = regexp.MustCompile(`(\b(h|height)=)\d+`)
)

// ExtractImageURLs harvests <img src> URLs from raw HTML. It is a
// deliberately lightweight regex pass, not a DOM walk.
func ExtractImageURLs(html string) []string {
	matches := imgSrcExpr.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil
	}

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, m[1])
	}
	return urls
}

// ResizeImageURL rewrites the w=/width= and h=/height= query parameters
// of a resizer URL to the given dimensions, leaving everything else in
// the URL untouched.
func ResizeImageURL(url string, width, height int) string {
	url = widthParamExpr.ReplaceAllString(url, "${1}"+strconv.Itoa(width))
	return heightParamExpr.ReplaceAllString(url, "${1}"+strconv.Itoa(height))
}

// HeraldImages filters page images down to resizer-served URLs and
// rewrites each to the target dimensions.
func HeraldImages(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !strings.Contains(u, resizerToken) {
			continue
		}
		out = append(out, ResizeImageURL(u, targetImageWidth, targetImageHeight))
	}
	return out
}

// RNZImage selects the first page image whose filename carries the
// desired width token. Finding none is not an error; the record simply
// ends up without an image.
func RNZImage(urls []string, desiredWidth int) (string, bool) {
	widthExpr := regexp.MustCompile(fmt.Sprintf(`\b(w|width)_%d\b`, desiredWidth))
	for _, u := range urls {
		if widthExpr.MatchString(u) {
			return u, true
		}
	}
	return "", false
}
