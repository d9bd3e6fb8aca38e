package cli

import (
	"context"
	"io"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/services"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app         *App
	businessAPI api.BusinessAPI
	assumeYes   bool
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app, businessAPI: app.businessAPI}
}

// WithAssumeYes skips the confirmation prompt
func (c *ImportCommand) WithAssumeYes(yes bool) *ImportCommand {
	c.assumeYes = yes
	return c
}

// Execute runs the import command. "-" reads the document from stdin.
// Import replaces the profile list and every task list it names.
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: lt import <file|->")
	}

	if args[0] != "-" && !c.assumeYes &&
		!c.app.confirm("Importing replaces your profiles and the task lists in "+args[0]+". Continue?") {
		c.app.println("Import cancelled.")
		return nil
	}

	var (
		result *services.ImportResult
		err    error
	)
	if args[0] == "-" {
		var document []byte
		document, err = io.ReadAll(c.app.in)
		if err != nil {
			return errors.WrapError(err, errors.ErrorTypePermission, "Failed to read file: "+err.Error())
		}
		result, err = c.businessAPI.ImportData(ctx, document)
	} else {
		result, err = c.businessAPI.ImportFromFile(ctx, args[0])
	}
	if err != nil {
		return err
	}

	c.app.printf("Imported %d profiles and %d tasks. Sign in again with 'lt profile use'.\n", result.Profiles, result.Tasks)
	return nil
}
