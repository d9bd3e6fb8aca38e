package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app, businessAPI: app.businessAPI}
}

// Execute runs the summary command. An optional YYYY-MM-DD argument moves
// "today" to that day.
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	var (
		report *api.SummaryReport
		err    error
	)
	switch len(args) {
	case 0:
		report, err = c.businessAPI.GetSummary(ctx)
	case 1:
		report, err = c.businessAPI.GetSummaryFor(ctx, args[0])
	default:
		return errors.NewInvalidInputError("command", "summary", "usage: lt summary [YYYY-MM-DD]")
	}
	if err != nil {
		return err
	}

	c.printReport(ctx, report)
	return nil
}

// printReport renders one row per profile followed by the totals
func (c *SummaryCommand) printReport(ctx context.Context, report *api.SummaryReport) {
	p := c.app.palette(ctx)

	c.app.println(p.muted.Render("Today " + report.Period.Today + " · Month " + report.Period.Month + " · Year " + report.Period.Year))
	if len(report.Rows) == 0 {
		c.app.println("No profiles found")
		return
	}

	rows := make([][]string, 0, len(report.Rows)+1)
	for _, row := range report.Rows {
		rows = append(rows, summaryRow(row))
	}
	rows = append(rows, summaryRow(report.Totals))
	totalRow := len(rows) - 1

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.border).
		Headers("Profile", "Total", "Today", "This month", "This year").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.header
			case row == totalRow:
				return p.total
			case col > 0:
				return p.cell.Align(lipgloss.Right)
			default:
				return p.cell
			}
		})
	if width := c.app.config.Display.SummaryWidth; width > 0 {
		tbl = tbl.Width(width)
	}
	c.app.println(tbl.Render())
}

func summaryRow(row domain.ProfileSummary) []string {
	if row.Error {
		return []string{row.Profile, "error", "-", "-", "-"}
	}
	return []string{
		row.Profile,
		humanize.Comma(int64(row.Total)),
		strconv.Itoa(row.Daily),
		strconv.Itoa(row.Monthly),
		strconv.Itoa(row.Yearly),
	}
}
