package utils

import "strings"

// Slugify derives a URL-safe identifier from a room's display name:
// lowercase, drop anything outside [a-z0-9 space -], collapse whitespace
// runs to single hyphens, trim leading and trailing hyphens.
// Names with no usable characters (for example purely Hangul ones)
// produce an empty slug, which callers must reject.
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	return strings.Trim(slug, "-")
}
