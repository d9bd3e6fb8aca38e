package cli

import (
	"context"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("profile", NewProfileCommand(app))
	registry.Register("current", NewCurrentCommand(app))
	registry.Register("task", NewTaskCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("summary", NewSummaryCommand(app))
	registry.Register("export", NewOutputCommand(app))
	registry.Register("import", NewImportCommand(app))
	registry.Register("mirror", NewMirrorCommand(app))
	registry.Register("directory", NewDirectoryCommand(app))
	registry.Register("theme", NewThemeCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments. Panics inside
// a command come back as an error.
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) (err error) {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	defer Recover(&err)
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: lt profile add|rename|delete|list|use|signout, lt current, " +
		"lt task add|edit|show field=value..., lt list, lt delete <task>, lt summary [date], " +
		"lt export [file], lt import <file>, lt mirror enable|disable|status, " +
		"lt directory companies|drivers <company>, lt theme dark|light"
}
