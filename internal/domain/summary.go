package domain

import "time"

// Period names the calendar windows a summary counts against.
type Period struct {
	Today string // YYYY-MM-DD
	Month string // YYYY-MM
	Year  string // YYYY
}

// PeriodFor derives the windows from t in its own location.
func PeriodFor(t time.Time) Period {
	return Period{
		Today: t.Format("2006-01-02"),
		Month: t.Format("2006-01"),
		Year:  t.Format("2006"),
	}
}

// ProfileSummary is one row of the cross-profile rollup.
type ProfileSummary struct {
	Profile string `json:"profile"`
	Total   int    `json:"total_tasks"`
	Daily   int    `json:"daily_tasks"`
	Monthly int    `json:"monthly_tasks"`
	Yearly  int    `json:"yearly_tasks"`
	Error   bool   `json:"error,omitempty"`
}

// Summarize counts tasks for one profile.
func Summarize(profile string, tasks []Task, p Period) ProfileSummary {
	row := ProfileSummary{Profile: profile, Total: len(tasks)}
	for _, t := range tasks {
		if t.OnDay(p.Today) {
			row.Daily++
		}
		if t.InPeriod(p.Month) {
			row.Monthly++
		}
		if t.InPeriod(p.Year) {
			row.Yearly++
		}
	}
	return row
}
