// Package format holds the pure text/timestamp formatting helpers shared
// by the page controllers.
package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

var brSplit = regexp.MustCompile(`(?i)<br\s*/?>`)

// RelativeTime renders a timestamp the way the feed shows it: "just now",
// "N minutes ago" up through days, then a short date, with the year only
// when it differs from the current one.
func RelativeTime(ts, now time.Time) string {
	diff := now.Sub(ts)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	}

	if ts.Year() != now.Year() {
		return ts.Format("Jan 2, 2006")
	}
	return ts.Format("Jan 2")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// EscapeText escapes author-controlled plain text (names, titles, class
// labels) before it is interpolated into rendered fragments. Post and reply
// bodies are already sanitized HTML and are not passed through this.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// TruncatePreview limits HTML content to maxLines <br>-separated lines for
// the feed preview. Returns the preview and whether truncation happened.
func TruncatePreview(content string, maxLines int) (string, bool) {
	lines := brSplit.Split(content, -1)
	if len(lines) <= maxLines {
		return content, false
	}
	return strings.Join(lines[:maxLines], "<br>") + "...", true
}

// EmptyContent reports whether editor output contains nothing to submit.
// A content-editable surface left blank often yields a lone "<br>".
func EmptyContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	return trimmed == "" || trimmed == "<br>"
}
