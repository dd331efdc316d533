package utils

import "github.com/microcosm-cc/bluemonday"

var contentPolicy = newContentPolicy()

// newContentPolicy builds the allowlist applied to post bodies: the usual
// user-generated-content set extended with embedded media. Playback
// attributes are permitted so posts can carry videos and players; iframe
// sources are limited to https.
func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("img", "video", "audio", "iframe")
	p.AllowAttrs("src", "alt", "width", "height", "style").OnElements("img")
	p.AllowAttrs("src", "controls", "autoplay", "width", "height", "style").OnElements("video", "audio")
	p.AllowAttrs("src", "allowfullscreen", "width", "height", "style").OnElements("iframe")
	p.AllowURLSchemes("http", "https")
	p.RequireNoFollowOnLinks(true)

	return p
}

// SanitizeContent cleans a post body for safe HTML rendering.
func SanitizeContent(input string) string {
	return contentPolicy.Sanitize(input)
}
