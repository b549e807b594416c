package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	r := NewLipglossRenderer(&bytes.Buffer{}, 80)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "Unknown"},
		{"today", time.Date(2026, 1, 7, 9, 5, 0, 0, time.UTC), "09:05"},
		{"yesterday", time.Date(2026, 1, 6, 23, 59, 0, 0, time.UTC), "Yesterday 23:59"},
		{"this week", time.Date(2026, 1, 3, 8, 0, 0, 0, time.UTC), "Sat 08:00"},
		{"six days ago", time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), "Thu 08:00"},
		{"earlier year", time.Date(2025, 11, 20, 17, 30, 0, 0, time.UTC), "Nov 20 '25 17:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.formatTime(tt.t, now))
		})
	}
}

func TestFormatTime_UsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, loc)
	r := NewLipglossRenderer(&bytes.Buffer{}, 80)

	got := r.formatTime(time.Date(2026, 1, 6, 22, 30, 0, 0, time.UTC), now)

	assert.Equal(t, "01:30", got)
}

func TestRenderEntryList(t *testing.T) {
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	r := NewLipglossRenderer(&bytes.Buffer{}, 40).WithClock(func() time.Time { return now })

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No entries found.\n", r.RenderEntryList(EntryListView{}))
	})

	t.Run("pads to width", func(t *testing.T) {
		out := r.RenderEntryList(EntryListView{Items: []EntryListItem{{
			Name:          "sales",
			Type:          "table",
			LatestVersion: 3,
			VersionCount:  1,
			Timestamp:     now.Add(-2 * time.Hour),
		}}})

		lines := strings.Split(out, "\n")
		assert.Len(t, lines[0], 40)
		assert.True(t, strings.HasSuffix(lines[0], "10:00"))
		assert.Equal(t, "  table · latest v3 · 1 version", lines[1])
	})

	t.Run("long name keeps one space", func(t *testing.T) {
		out := r.RenderEntryList(EntryListView{Items: []EntryListItem{{
			Name:      strings.Repeat("x", 50),
			Type:      "file",
			Timestamp: now,
		}}})

		assert.True(t, strings.HasPrefix(out, strings.Repeat("x", 50)+" 12:00\n"))
	})
}
