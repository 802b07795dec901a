package wptransfer

import (
	"strings"
	"time"
)

// DateLayout is the long human-readable form used on rendered pages.
const DateLayout = "January 02, 2006"

var dateInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats WordPress emits.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO date as DateLayout. Input that does not parse
// is returned unchanged.
func FormatDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(DateLayout)
	}
	return s
}

// Excerpt collapses whitespace in text and shortens it to at most max runes.
// Shortened text is cut at the last word boundary and ends in "...".
func Excerpt(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}

	cut := string(runes[:max-3])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// Truncate shortens s to at most max runes for console display, marking the
// cut with "...".
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
