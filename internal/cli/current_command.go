package cli

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the current command
func (c *CurrentCommand) Execute(ctx context.Context, args []string) error {
	return c.showCurrentProfile(ctx)
}

// showCurrentProfile displays the signed-in profile and its task count
func (c *CurrentCommand) showCurrentProfile(ctx context.Context) error {
	profile, ok := c.businessAPI.CurrentProfile(ctx)
	if !ok {
		c.app.println("No profile is signed in")
		return nil
	}

	tasks, err := c.businessAPI.ListTasks(ctx)
	if err != nil {
		return err
	}

	c.app.printf("Current profile: %s (%s %s)\n",
		profile.Name, humanize.Comma(int64(len(tasks))), english.PluralWord(len(tasks), "task", ""))
	return nil
}
