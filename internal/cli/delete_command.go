package cli

import (
	"context"
	"strconv"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app         *App
	businessAPI api.BusinessAPI
	assumeYes   bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, businessAPI: app.businessAPI}
}

// WithAssumeYes skips the confirmation prompt
func (c *DeleteCommand) WithAssumeYes(yes bool) *DeleteCommand {
	c.assumeYes = yes
	return c
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	return c.deleteTask(ctx, args)
}

// deleteTask removes one task. Without an argument it lists the tasks and
// asks which one to delete.
func (c *DeleteCommand) deleteTask(ctx context.Context, args []string) error {
	ref, confirmed := "", c.assumeYes
	if len(args) > 0 {
		ref = args[0]
	} else {
		tasks, err := c.businessAPI.ListTasks(ctx)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			c.app.println("No tasks found to delete.")
			return nil
		}

		c.app.println("Select a task to delete:")
		for i, t := range tasks {
			c.app.printf("%d. %s\n", i+1, describeTask(t))
		}
		c.app.printf("Enter number to delete, or 'q' to quit: ")

		line, _ := c.app.in.ReadString('\n')
		input := trimLine(line)
		if input == "" || input == "q" || input == "Q" {
			c.app.println("Delete cancelled.")
			return nil
		}
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(tasks) {
			return errors.NewInvalidInputError("selection", input, "invalid selection")
		}
		ref = tasks[idx-1].ID
		confirmed = true
	}

	task, err := c.businessAPI.GetTask(ctx, ref)
	if err != nil {
		return err
	}
	if !confirmed && !c.app.confirm("Delete "+describeTask(*task)+"?") {
		c.app.println("Delete cancelled.")
		return nil
	}

	if err := c.businessAPI.RemoveTask(ctx, task.ID); err != nil {
		return err
	}
	c.app.printf("Deleted task: %s\n", describeTask(*task))
	return nil
}
