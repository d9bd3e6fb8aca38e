// Package notify delivers short user-facing messages (toasts) to the log
// and, optionally, to the desktop.
package notify

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const maxMessageLen = 800

// Notifier is the toast sink the services report through.
type Notifier interface {
	Notify(level Level, message string)
}

// Success reports a completed operation.
func Success(n Notifier, message string) { n.Notify(LevelSuccess, message) }

// Info reports something neutral.
func Info(n Notifier, message string) { n.Notify(LevelInfo, message) }

// Warning reports a degraded but recoverable state.
func Warning(n Notifier, message string) { n.Notify(LevelWarning, message) }

// Error reports a failure.
func Error(n Notifier, message string) { n.Notify(LevelError, message) }

// LogNotifier writes notifications through a charmbracelet logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a notifier on logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		n.logger.Error(message)
	case LevelWarning:
		n.logger.Warn(message)
	default:
		n.logger.Info(message, "kind", string(level))
	}
}

type alertFunc func(title, message string) error

// DesktopNotifier raises OS notifications. Only levels at or above MinLevel
// are shown; errors also sound an alert.
type DesktopNotifier struct {
	Title    string
	MinLevel Level
	notify   alertFunc
	alert    alertFunc
}

// NewDesktopNotifier creates a notifier showing warnings and errors.
func NewDesktopNotifier(title string) *DesktopNotifier {
	if strings.TrimSpace(title) == "" {
		title = "LogiTrack"
	}
	return &DesktopNotifier{
		Title:    title,
		MinLevel: LevelWarning,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		alert: func(title, message string) error {
			return beeep.Alert(title, message, "")
		},
	}
}

// Notify implements Notifier. Delivery failures are ignored; the desktop is
// best effort.
func (d *DesktopNotifier) Notify(level Level, message string) {
	if rank(level) < rank(d.MinLevel) {
		return
	}
	message = strings.TrimSpace(message)
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen] + "..."
	}
	if level == LevelError {
		_ = d.alert(d.Title, message)
		return
	}
	_ = d.notify(d.Title, message)
}

func rank(level Level) int {
	switch level {
	case LevelError:
		return 3
	case LevelWarning:
		return 2
	case LevelSuccess:
		return 1
	default:
		return 0
	}
}

// Multi forwards every notification to each wrapped notifier.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(level Level, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(level, message)
		}
	}
}

// Entry is one notification captured by a Recorder.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps notifications in memory. Tests and the CLI's quiet mode use
// it.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Notify implements Notifier.
func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

// Entries returns a copy of what was recorded.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
