package cli

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/config"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
)

// MirrorCommand handles the mirror command. Each lt run is its own
// process, so the granted file is remembered as mirror.path in the config
// file and re-granted at startup.
type MirrorCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewMirrorCommand creates a new mirror command handler
func NewMirrorCommand(app *App) *MirrorCommand {
	return &MirrorCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the mirror command. With no subcommand it prints the status.
func (c *MirrorCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.Status(ctx)
	}

	switch args[0] {
	case "status":
		return c.Status(ctx)
	case "enable":
		if len(args) != 2 {
			return errors.NewInvalidInputError("command", "mirror enable", "usage: lt mirror enable <file>")
		}
		return c.Enable(ctx, args[1])
	case "disable":
		return c.Disable(ctx)
	default:
		return errors.NewInvalidInputError("command", "mirror "+args[0], "unknown mirror subcommand")
	}
}

// Enable grants path, writes the current list to it and remembers it
func (c *MirrorCommand) Enable(ctx context.Context, path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if _, err := c.businessAPI.EnableMirror(ctx, path); err != nil {
		return err
	}
	c.remember(path)
	return c.Status(ctx)
}

// Disable stops mirroring and forgets the file
func (c *MirrorCommand) Disable(ctx context.Context) error {
	c.businessAPI.DisableMirror(ctx)
	c.remember("")
	c.app.println("Auto-save disabled")
	return nil
}

// Status prints the mirror state
func (c *MirrorCommand) Status(ctx context.Context) error {
	report := c.businessAPI.MirrorStatus(ctx)

	c.app.printf("Auto-save: %s\n", report.State)
	if report.Target != "" {
		c.app.printf("File:      %s\n", report.Target)
	}
	if !report.LastWrite.IsZero() {
		c.app.printf("Last save: %s (%s)\n", humanize.Time(report.LastWrite), humanize.Comma(int64(report.Writes))+" writes")
	}
	if report.LastError != "" {
		c.app.printf("Error:     %s\n", report.LastError)
	}
	return nil
}

// remember persists the mirror file for later runs. A failure only costs
// the automatic re-grant, so it is logged rather than returned.
func (c *MirrorCommand) remember(path string) {
	if c.app.configPath == "" {
		return
	}
	var value interface{}
	if path != "" {
		value = path
	}
	if err := config.SetFileValue(c.app.configPath, "mirror", "path", value); err != nil {
		logging.L().Warn("could not save mirror setting", "config", c.app.configPath, "err", err)
		return
	}
	c.app.config.Mirror.Path = path
}
