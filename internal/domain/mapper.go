package domain

// ExportTask is the on-disk shape of a task inside a backup document. It has
// no identifier; IDs are assigned again on import.
type ExportTask struct {
	Driver  string `json:"driver"`
	Company string `json:"company"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
	Action  string `json:"action"`
}

// ExportDocument is the full backup payload written by export and read by
// import.
type ExportDocument struct {
	Profiles []Profile              `json:"profiles"`
	Tasks    map[string][]ExportTask `json:"tasks"`
}

// DocumentMapper converts between ledger tasks and backup records.
type DocumentMapper struct{}

// NewDocumentMapper creates a new DocumentMapper instance.
func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

// ToExport converts a task to its backup form.
func (m *DocumentMapper) ToExport(t Task) ExportTask {
	return ExportTask{
		Driver:  t.Driver,
		Company: t.Company,
		Date:    t.Date,
		Time:    t.Time,
		Status:  string(t.Status),
		Action:  t.Action,
	}
}

// FromExport converts a backup record to a task with a freshly assigned ID.
func (m *DocumentMapper) FromExport(e ExportTask) Task {
	return NewTask(TaskInput{
		Driver:  e.Driver,
		Company: e.Company,
		Date:    e.Date,
		Time:    e.Time,
		Status:  e.Status,
		Action:  e.Action,
	})
}

// ToExportSlice converts a slice of tasks to backup records. A nil slice maps
// to an empty one so documents always carry a JSON array.
func (m *DocumentMapper) ToExportSlice(tasks []Task) []ExportTask {
	out := make([]ExportTask, len(tasks))
	for i, t := range tasks {
		out[i] = m.ToExport(t)
	}
	return out
}

// FromExportSlice converts backup records to tasks.
func (m *DocumentMapper) FromExportSlice(records []ExportTask) []Task {
	out := make([]Task, len(records))
	for i, r := range records {
		out[i] = m.FromExport(r)
	}
	return out
}
