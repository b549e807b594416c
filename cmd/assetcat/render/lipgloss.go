package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const staleThreshold = 90 * 24 * time.Hour

type LipglossRenderer struct {
	width int
	now   func() time.Time
	r     *lipgloss.Renderer

	nameStyle       lipgloss.Style
	typeStyle       lipgloss.Style
	detailStyle     lipgloss.Style
	timeStyle       lipgloss.Style
	staleStyle      lipgloss.Style
	recentTimeStyle lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:           width,
		now:             time.Now,
		r:               r,
		nameStyle:       r.NewStyle().Bold(true),
		typeStyle:       r.NewStyle().Foreground(lipgloss.Color("6")),
		detailStyle:     r.NewStyle().Faint(true),
		timeStyle:       r.NewStyle().Faint(true),
		recentTimeStyle: r.NewStyle().Foreground(lipgloss.Color("10")),
		staleStyle:      r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) WithClock(now func() time.Time) *LipglossRenderer {
	r.now = now
	return r
}

func (r *LipglossRenderer) RenderEntryList(view EntryListView) string {
	if view.IsEmpty() {
		return "No entries found.\n"
	}

	now := r.now()
	var sb strings.Builder
	for i, item := range view.Items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.renderItem(item, now))
	}
	return sb.String()
}

func (r *LipglossRenderer) renderItem(item EntryListItem, now time.Time) string {
	age := now.Sub(item.Timestamp)
	isStale := age > staleThreshold
	timeStr := r.formatTime(item.Timestamp, now)

	nameStyle := r.nameStyle
	typeStyle := r.typeStyle
	detailStyle := r.detailStyle
	timeStyle := r.timeStyle
	if isStale {
		nameStyle = r.staleStyle.Bold(true)
		typeStyle = r.staleStyle
		detailStyle = r.staleStyle
		timeStyle = r.staleStyle
	} else if age < 1*time.Hour {
		timeStyle = r.recentTimeStyle
	}

	name := nameStyle.Render(item.Name)
	timeEl := timeStyle.Render(timeStr)

	padding := max(1, r.width-lipgloss.Width(name)-lipgloss.Width(timeEl))
	headerLine := name + strings.Repeat(" ", padding) + timeEl

	versions := "versions"
	if item.VersionCount == 1 {
		versions = "version"
	}
	detail := "  " + typeStyle.Render(item.Type) +
		detailStyle.Render(fmt.Sprintf(" · latest v%d · %d %s", item.LatestVersion, item.VersionCount, versions))

	return headerLine + "\n" + detail + "\n"
}

func (r *LipglossRenderer) formatTime(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	loc := now.Location()
	t = t.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	days := int(today.Sub(target).Hours() / 24)

	timeStr := t.Format("15:04")

	switch {
	case days == 0:
		return timeStr
	case days == 1:
		return "Yesterday " + timeStr
	case days < 7:
		return t.Format("Mon") + " " + timeStr
	case t.Year() == now.Year():
		return t.Format("Jan 2") + " " + timeStr
	default:
		return t.Format("Jan 2 '06") + " " + timeStr
	}
}
