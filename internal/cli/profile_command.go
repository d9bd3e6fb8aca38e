package cli

import (
	"context"
	"strings"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// ProfileCommand handles the profile command and its subcommands
type ProfileCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewProfileCommand creates a new profile command handler
func NewProfileCommand(app *App) *ProfileCommand {
	return &ProfileCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the profile command. With no subcommand it lists profiles.
func (c *ProfileCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.List(ctx)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list", "ls":
		return c.List(ctx)
	case "add":
		return c.Add(ctx, strings.Join(rest, " "))
	case "rename":
		if len(rest) < 2 {
			return errors.NewInvalidInputError("command", "profile rename", "usage: lt profile rename <profile> <new name>")
		}
		return c.Rename(ctx, rest[0], strings.Join(rest[1:], " "))
	case "delete", "rm":
		if len(rest) == 0 {
			return errors.NewInvalidInputError("command", "profile delete", "usage: lt profile delete <profile>")
		}
		return c.Delete(ctx, strings.Join(rest, " "))
	case "use", "signin":
		if len(rest) == 0 {
			return errors.NewInvalidInputError("command", "profile use", "usage: lt profile use <profile>")
		}
		return c.Use(ctx, strings.Join(rest, " "))
	case "signout":
		return c.SignOut(ctx)
	default:
		return errors.NewInvalidInputError("command", "profile "+sub, "unknown profile subcommand")
	}
}

// List prints the profiles with their positions, marking the active one
func (c *ProfileCommand) List(ctx context.Context) error {
	profiles := c.businessAPI.ListProfiles(ctx)
	if len(profiles) == 0 {
		c.app.println("No profiles found")
		return nil
	}

	active, _ := c.businessAPI.CurrentProfile(ctx)
	for i, p := range profiles {
		marker := " "
		if active != nil && active.Name == p.Name {
			marker = "*"
		}
		c.app.printf("%s %d. %s\n", marker, i+1, p.Name)
	}
	return nil
}

// Add registers a new profile
func (c *ProfileCommand) Add(ctx context.Context, name string) error {
	profile, err := c.businessAPI.CreateProfile(ctx, name)
	if err != nil {
		return err
	}
	c.app.printf("Added profile: %s\n", profile.Name)
	return nil
}

// Rename renames the profile ref points at
func (c *ProfileCommand) Rename(ctx context.Context, ref, newName string) error {
	profile, err := c.businessAPI.RenameProfile(ctx, ref, newName)
	if err != nil {
		return err
	}
	c.app.printf("Renamed profile to: %s\n", profile.Name)
	return nil
}

// Delete removes a profile and every task it owns
func (c *ProfileCommand) Delete(ctx context.Context, ref string) error {
	if err := c.businessAPI.DeleteProfile(ctx, ref); err != nil {
		return err
	}
	c.app.printf("Deleted profile: %s\n", ref)
	return nil
}

// Use signs in to a profile
func (c *ProfileCommand) Use(ctx context.Context, ref string) error {
	profile, err := c.businessAPI.SignIn(ctx, ref)
	if err != nil {
		return err
	}
	c.app.printf("Signed in as: %s\n", profile.Name)
	return nil
}

// SignOut clears the active profile
func (c *ProfileCommand) SignOut(ctx context.Context) error {
	if err := c.businessAPI.SignOut(ctx); err != nil {
		return err
	}
	c.app.println("Signed out")
	return nil
}
