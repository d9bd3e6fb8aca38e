package cli

import (
	"context"
	"strings"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/validation"
)

// TaskCommand handles the task command and its subcommands
type TaskCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the task command. With no subcommand it lists tasks.
func (c *TaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return NewListCommand(c.app).Execute(ctx, nil)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list", "ls":
		return NewListCommand(c.app).Execute(ctx, rest)
	case "add":
		return c.Add(ctx, rest)
	case "edit":
		if len(rest) == 0 {
			return errors.NewInvalidInputError("command", "task edit", "usage: lt task edit <task> field=value...")
		}
		return c.Edit(ctx, rest[0], rest[1:])
	case "show":
		if len(rest) != 1 {
			return errors.NewInvalidInputError("command", "task show", "usage: lt task show <task>")
		}
		return c.Show(ctx, rest[0])
	case "delete", "rm":
		return NewDeleteCommand(c.app).Execute(ctx, rest)
	default:
		return errors.NewInvalidInputError("command", "task "+sub, "unknown task subcommand")
	}
}

// Add creates a task from field=value arguments. Status defaults to Pending.
func (c *TaskCommand) Add(ctx context.Context, args []string) error {
	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}

	form := c.businessAPI.NewTaskForm(domain.TaskInput{Status: string(domain.StatusPending)})
	var created *domain.Task
	err = c.submit(ctx, form, assignments, func(ctx context.Context, in domain.TaskInput) error {
		task, err := c.businessAPI.AddTask(ctx, in)
		created = task
		return err
	})
	if err != nil {
		return err
	}

	c.app.printf("Added task: %s\n", describeTask(*created))
	return nil
}

// Edit changes the given fields of an existing task, keeping the others
func (c *TaskCommand) Edit(ctx context.Context, ref string, args []string) error {
	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		return errors.NewInvalidInputError("command", "task edit", "nothing to change")
	}

	existing, err := c.businessAPI.GetTask(ctx, ref)
	if err != nil {
		return err
	}

	form := c.businessAPI.NewTaskForm(existing.Input())
	var updated *domain.Task
	err = c.submit(ctx, form, assignments, func(ctx context.Context, in domain.TaskInput) error {
		task, err := c.businessAPI.EditTask(ctx, existing.ID, in)
		updated = task
		return err
	})
	if err != nil {
		return err
	}

	c.app.printf("Updated task: %s\n", describeTask(*updated))
	return nil
}

// Show prints every field of one task
func (c *TaskCommand) Show(ctx context.Context, ref string) error {
	task, err := c.businessAPI.GetTask(ctx, ref)
	if err != nil {
		return err
	}

	c.app.printf("ID:      %s\n", task.ID)
	c.app.printf("Driver:  %s\n", task.Driver)
	c.app.printf("Company: %s\n", task.Company)
	c.app.printf("When:    %s %s\n", task.Date, task.Time)
	c.app.printf("Status:  %s\n", task.Status)
	c.app.printf("Action:  %s\n", task.Action)
	return nil
}

// submit applies the assignments to form and, when every field passes,
// hands the values to effect.
func (c *TaskCommand) submit(ctx context.Context, form *validation.Form, assignments map[string]string,
	effect func(ctx context.Context, in domain.TaskInput) error) error {
	for _, field := range sortedKeys(assignments) {
		form.Change(field, assignments[field])
	}
	return form.Submit(ctx, func(ctx context.Context, values validation.Values) error {
		return effect(ctx, domain.TaskInputFromValues(values))
	})
}

func describeTask(t domain.Task) string {
	parts := []string{t.Driver, "@", t.Company, "on", t.Date, t.Time, "(" + string(t.Status) + ")"}
	return strings.Join(parts, " ")
}
