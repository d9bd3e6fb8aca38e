package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
)

// palette is the set of styles one display theme uses.
type palette struct {
	header  lipgloss.Style
	cell    lipgloss.Style
	total   lipgloss.Style
	muted   lipgloss.Style
	border  lipgloss.Style
	levels  map[notify.Level]lipgloss.Style
	symbols map[notify.Level]string
}

func newPalette(dark bool) palette {
	var (
		accent  = lipgloss.Color("#1D4ED8")
		text    = lipgloss.Color("#111827")
		subtle  = lipgloss.Color("#6B7280")
		success = lipgloss.Color("#15803D")
		warning = lipgloss.Color("#B45309")
		failure = lipgloss.Color("#B91C1C")
	)
	if dark {
		accent = lipgloss.Color("#93C5FD")
		text = lipgloss.Color("#F3F4F6")
		subtle = lipgloss.Color("#9CA3AF")
		success = lipgloss.Color("#4ADE80")
		warning = lipgloss.Color("#FBBF24")
		failure = lipgloss.Color("#F87171")
	}

	return palette{
		header: lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		cell:   lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		total:  lipgloss.NewStyle().Bold(true).Foreground(text).Padding(0, 1),
		muted:  lipgloss.NewStyle().Foreground(subtle),
		border: lipgloss.NewStyle().Foreground(subtle),
		levels: map[notify.Level]lipgloss.Style{
			notify.LevelSuccess: lipgloss.NewStyle().Foreground(success),
			notify.LevelInfo:    lipgloss.NewStyle().Foreground(accent),
			notify.LevelWarning: lipgloss.NewStyle().Foreground(warning),
			notify.LevelError:   lipgloss.NewStyle().Foreground(failure).Bold(true),
		},
		symbols: map[notify.Level]string{
			notify.LevelSuccess: "✓",
			notify.LevelInfo:    "•",
			notify.LevelWarning: "!",
			notify.LevelError:   "✗",
		},
	}
}
