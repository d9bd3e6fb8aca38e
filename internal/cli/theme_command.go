package cli

import (
	"context"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// ThemeCommand shows or switches the display theme
type ThemeCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the theme command
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		dark, err := c.businessAPI.DarkMode(ctx)
		if err != nil {
			return err
		}
		c.app.printf("Theme: %s\n", themeName(dark))
		return nil
	}

	var dark bool
	switch args[0] {
	case "dark":
		dark = true
	case "light":
		dark = false
	default:
		return errors.NewInvalidInputError("theme", args[0], "expected dark or light")
	}

	if err := c.businessAPI.SetDarkMode(ctx, dark); err != nil {
		return err
	}
	c.app.printf("Theme: %s\n", themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
