package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the list command. Arguments filter tasks by a
// case-insensitive match on driver, company or action.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	return c.listTasks(ctx, strings.Join(args, " "))
}

// listTasks prints the active profile's tasks with their positions
func (c *ListCommand) listTasks(ctx context.Context, filter string) error {
	tasks, err := c.businessAPI.ListTasks(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		if !matchesFilter(t, filter) {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), t.Driver, t.Company, t.Date, t.Time, string(t.Status), t.Action,
		})
	}

	if len(rows) == 0 {
		c.app.println("No tasks found")
		return nil
	}

	p := c.app.palette(ctx)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers("#", "Driver", "Company", "Date", "Time", "Status", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		})
	c.app.println(tbl.Render())
	return nil
}

func matchesFilter(t domain.Task, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	for _, field := range []string{t.Driver, t.Company, t.Action} {
		if strings.Contains(strings.ToLower(field), filter) {
			return true
		}
	}
	return false
}
