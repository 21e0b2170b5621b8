// Package video turns YouTube links into embeddable player URLs.
package video

import (
	"fmt"
	"regexp"
)

var idPattern = regexp.MustCompile(`(?:youtube\.com/(?:.*v=|v/|embed/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractID returns the first 11-character video identifier found in url.
func ExtractID(url string) (string, bool) {
	m := idPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EmbedURL returns the player URL for id with related videos suppressed.
func EmbedURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?rel=0", id)
}

// EmbedHTML returns a responsive 16:9 iframe for id.
func EmbedHTML(id string) string {
	return fmt.Sprintf(`<div style="position: relative; padding-bottom: 56.25%%; height: 0; overflow: hidden;">
<iframe src="%s" style="position: absolute; top: 0; left: 0; width: 100%%; height: 100%%;" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>
</div>`, EmbedURL(id))
}
