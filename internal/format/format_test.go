package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-1 * time.Minute), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"hours", now.Add(-7 * time.Hour), "7 hours ago"},
		{"one day", now.Add(-25 * time.Hour), "1 day ago"},
		{"days", now.Add(-4 * 24 * time.Hour), "4 days ago"},
		{"same year date", now.Add(-30 * 24 * time.Hour), "May 16"},
		{"other year date", time.Date(2024, 12, 20, 8, 0, 0, 0, time.UTC), "Dec 20, 2024"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(tc.ts, now))
		})
	}
}

func TestTruncatePreview(t *testing.T) {
	content := "one<br>two<br/>three<BR>four<br>five"

	preview, truncated := TruncatePreview(content, 4)
	assert.True(t, truncated)
	assert.Equal(t, "one<br>two<br>three<br>four...", preview)

	short, truncated := TruncatePreview("one<br>two", 4)
	assert.False(t, truncated)
	assert.Equal(t, "one<br>two", short)
}

func TestEmptyContent(t *testing.T) {
	assert.True(t, EmptyContent(""))
	assert.True(t, EmptyContent("   "))
	assert.True(t, EmptyContent("<br>"))
	assert.False(t, EmptyContent("<p>hi</p>"))
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Ana&lt;/b&gt;", EscapeText("<b>Ana</b>"))
}
