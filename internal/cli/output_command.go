package cli

import (
	"context"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/services"
)

// OutputCommand handles the export command
type OutputCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewOutputCommand creates a new export command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the export command. "-" writes the document to stdout;
// no argument writes task_manager_data.json in the working directory.
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		return c.exportFile(ctx, services.DefaultExportFileName)
	case 1:
		if args[0] == "-" {
			return c.exportStdout(ctx)
		}
		return c.exportFile(ctx, args[0])
	default:
		return errors.NewInvalidInputError("command", "export", "usage: lt export [file|-]")
	}
}

func (c *OutputCommand) exportFile(ctx context.Context, path string) error {
	if err := c.businessAPI.ExportToFile(ctx, path); err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil {
		c.app.printf("Exported %s to %s\n", humanize.Bytes(uint64(info.Size())), path)
	}
	return nil
}

func (c *OutputCommand) exportStdout(ctx context.Context) error {
	document, err := c.businessAPI.ExportData(ctx)
	if err != nil {
		return err
	}
	c.app.println(string(document))
	return nil
}
