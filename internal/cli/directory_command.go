package cli

import (
	"context"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// DirectoryCommand handles lookups against the remote company directory
type DirectoryCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewDirectoryCommand creates a new directory command handler
func NewDirectoryCommand(app *App) *DirectoryCommand {
	return &DirectoryCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the directory command
func (c *DirectoryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "directory", "usage: lt directory companies|drivers <company>")
	}

	switch args[0] {
	case "companies":
		return c.companies(ctx)
	case "drivers":
		if len(args) != 2 {
			return errors.NewInvalidInputError("command", "directory drivers", "usage: lt directory drivers <company id>")
		}
		return c.drivers(ctx, args[1])
	default:
		return errors.NewInvalidInputError("command", "directory "+args[0], "unknown directory subcommand")
	}
}

func (c *DirectoryCommand) companies(ctx context.Context) error {
	companies, err := c.businessAPI.ListCompanies(ctx)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		c.app.println("No companies found")
		return nil
	}
	for _, company := range companies {
		c.app.printf("%s\t%s\n", company.ID, company.Name)
	}
	return nil
}

func (c *DirectoryCommand) drivers(ctx context.Context, companyID string) error {
	drivers, err := c.businessAPI.ListDrivers(ctx, companyID)
	if err != nil {
		return err
	}
	if len(drivers) == 0 {
		c.app.println("No drivers found")
		return nil
	}
	for _, driver := range drivers {
		c.app.printf("%s\t%s\n", driver.ID, driver.FullName())
	}
	return nil
}
