package analysis

import (
	"regexp"
	"strings"
)

// Cleaning order matters: mention and URL tokens must be stripped whole
// before the generic non-word collapse, otherwise partially collapsed URLs
// leave residual word tokens behind.
var (
	mentionOrURLPattern = regexp.MustCompile(`@\w+|https?://\S+|www\.\S+`)
	nonWordPattern      = regexp.MustCompile(`\W+`)
	retweetPattern      = regexp.MustCompile(`\bRT\b`)
	spacePattern        = regexp.MustCompile(` +`)
)

// Normalize strips references, hyperlinks, markup symbols and retweet
// markers from a raw item text. It is deterministic, never fails, and is
// idempotent: normalizing an already-normalized text yields the same text.
func Normalize(raw string) string {
	text := mentionOrURLPattern.ReplaceAllString(raw, "")
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "#", "")
	text = retweetPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
