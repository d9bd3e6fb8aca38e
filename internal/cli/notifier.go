package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
)

// ConsoleNotifier prints notifications as one styled line each.
type ConsoleNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	palette palette
}

// NewConsoleNotifier creates a notifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, palette: newPalette(false)}
}

// SetDark switches the palette once the theme preference is known.
func (c *ConsoleNotifier) SetDark(dark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.palette = newPalette(dark)
}

// Notify implements notify.Notifier.
func (c *ConsoleNotifier) Notify(level notify.Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	style, ok := c.palette.levels[level]
	if !ok {
		style = c.palette.levels[notify.LevelInfo]
	}
	symbol := c.palette.symbols[level]
	if symbol == "" {
		symbol = "•"
	}
	fmt.Fprintln(c.w, style.Render(symbol+" "+message))
}
