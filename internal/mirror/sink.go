package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/natefinch/atomic"
)

// Sink is a secondary destination the active task list is copied to.
type Sink interface {
	Write(ctx context.Context, tasks []domain.Task) error
	Describe() string
}

// FileSink mirrors tasks as pretty-printed JSON into a single file the user
// granted. Each write replaces the file atomically.
type FileSink struct {
	Path string
	Perm os.FileMode
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string, perm os.FileMode) *FileSink {
	if perm == 0 {
		perm = 0o644
	}
	return &FileSink{Path: path, Perm: perm}
}

// Write implements Sink.
func (s *FileSink) Write(ctx context.Context, tasks []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(s.Path, bytes.NewReader(data)); err != nil {
		return err
	}
	// atomic.WriteFile keeps the old mode for existing files only.
	return os.Chmod(s.Path, s.Perm)
}

// Describe implements Sink.
func (s *FileSink) Describe() string {
	return s.Path
}
