package api

import (
	"context"
	"os"

	"github.com/Burh0n/LogiTrack-Pro/internal/directory"
	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/mirror"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/services"
	"github.com/Burh0n/LogiTrack-Pro/internal/validation"
)

// BusinessAPI defines the operations the command line front end drives
type BusinessAPI interface {
	// ========== Profile Workflows ==========

	// EnsureDefaultProfile seeds the registry on first launch
	EnsureDefaultProfile(ctx context.Context) error

	// ListProfiles returns every profile in display order
	ListProfiles(ctx context.Context) []domain.Profile

	// CurrentProfile returns the signed-in profile, if any
	CurrentProfile(ctx context.Context) (*domain.Profile, bool)

	// CreateProfile registers a new profile
	CreateProfile(ctx context.Context, name string) (*domain.Profile, error)

	// RenameProfile renames a profile referenced by name or 1-based position
	RenameProfile(ctx context.Context, ref, newName string) (*domain.Profile, error)

	// DeleteProfile removes a profile and its tasks
	DeleteProfile(ctx context.Context, ref string) error

	// SignIn makes a profile active and loads its tasks
	SignIn(ctx context.Context, ref string) (*domain.Profile, error)

	// SignOut clears the active profile
	SignOut(ctx context.Context) error

	// ========== Task Workflows ==========

	// NewTaskForm returns a form validating task input field by field
	NewTaskForm(initial domain.TaskInput) *validation.Form

	// ListTasks returns the active profile's tasks
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// GetTask returns a task by 1-based position or identifier
	GetTask(ctx context.Context, ref string) (*domain.Task, error)

	// AddTask appends a task to the active profile
	AddTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)

	// EditTask replaces a task referenced by 1-based position or identifier
	EditTask(ctx context.Context, ref string, input domain.TaskInput) (*domain.Task, error)

	// RemoveTask deletes a task referenced by 1-based position or identifier
	RemoveTask(ctx context.Context, ref string) error

	// ========== Reporting ==========

	// GetSummary counts every profile's tasks for today, this month and this year
	GetSummary(ctx context.Context) (*SummaryReport, error)

	// GetSummaryFor counts tasks relative to the given YYYY-MM-DD day
	GetSummaryFor(ctx context.Context, day string) (*SummaryReport, error)

	// ========== Backup ==========

	ExportData(ctx context.Context) ([]byte, error)
	ExportToFile(ctx context.Context, path string) error
	ImportData(ctx context.Context, document []byte) (*services.ImportResult, error)
	ImportFromFile(ctx context.Context, path string) (*services.ImportResult, error)

	// ========== Mirror ==========

	// EnableMirror grants path as the secondary copy and writes the current list to it
	EnableMirror(ctx context.Context, path string) (*MirrorReport, error)

	// DisableMirror stops mirroring
	DisableMirror(ctx context.Context) *MirrorReport

	// MirrorStatus reports the mirror state
	MirrorStatus(ctx context.Context) *MirrorReport

	// ========== Directory ==========

	ListCompanies(ctx context.Context) ([]directory.Company, error)
	ListDrivers(ctx context.Context, companyID string) ([]directory.Driver, error)

	// ========== Preferences ==========

	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, enabled bool) error

	// Close waits for pending mirror writes
	Close() error
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services   *services.ServiceContainer
	mirror     *mirror.Mirror
	directory  directory.Directory
	notifier   notify.Notifier
	mirrorPerm os.FileMode
	validator  *validation.TaskValidator
}

// NewBusinessAPI loads the stored state and creates a BusinessAPI instance
func NewBusinessAPI(ctx context.Context, deps Dependencies) (BusinessAPI, error) {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(logging.L())
	}
	m := deps.Mirror
	if m == nil {
		opts := []mirror.Option{mirror.WithNotifier(notifier)}
		if deps.Events != nil {
			opts = append(opts, mirror.WithEvents(deps.Events))
		}
		m = mirror.New(opts...)
	}

	container, err := services.NewServiceContainer(ctx, services.Dependencies{
		Repo:                 deps.Repo,
		Events:               deps.Events,
		Notifier:             notifier,
		Mirror:               m,
		Location:             deps.Location,
		Clock:                deps.Clock,
		ProfileNameMaxLength: deps.ProfileNameMaxLength,
	})
	if err != nil {
		return nil, err
	}

	return &businessAPIImpl{
		services:   container,
		mirror:     m,
		directory:  deps.Directory,
		notifier:   notifier,
		mirrorPerm: deps.MirrorPermissions,
		validator:  validation.NewTaskValidator(),
	}, nil
}

// ========== Profile Workflows ==========

func (b *businessAPIImpl) EnsureDefaultProfile(ctx context.Context) error {
	_, err := b.services.ProfileService.EnsureDefault(ctx)
	return err
}

func (b *businessAPIImpl) ListProfiles(ctx context.Context) []domain.Profile {
	return b.services.ProfileService.List(ctx)
}

func (b *businessAPIImpl) CurrentProfile(ctx context.Context) (*domain.Profile, bool) {
	profile, ok := b.services.ProfileService.Active()
	if !ok {
		return nil, false
	}
	return &profile, true
}

func (b *businessAPIImpl) CreateProfile(ctx context.Context, name string) (*domain.Profile, error) {
	profile, err := b.services.ProfileService.Add(ctx, name)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (b *businessAPIImpl) RenameProfile(ctx context.Context, ref, newName string) (*domain.Profile, error) {
	idx, err := b.profileIndex(ctx, ref)
	if err != nil {
		return nil, err
	}
	profile, err := b.services.ProfileService.Rename(ctx, idx, newName)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (b *businessAPIImpl) DeleteProfile(ctx context.Context, ref string) error {
	idx, err := b.profileIndex(ctx, ref)
	if err != nil {
		return err
	}
	return b.services.ProfileService.Remove(ctx, idx)
}

func (b *businessAPIImpl) SignIn(ctx context.Context, ref string) (*domain.Profile, error) {
	idx, err := b.profileIndex(ctx, ref)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) || errors.IsErrorType(err, errors.ErrorTypeIndexOutOfRange) {
			return nil, errors.NewNoProfileSelectedError(-1)
		}
		return nil, err
	}
	profile, err := b.services.ProfileService.SetActive(ctx, idx)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (b *businessAPIImpl) SignOut(ctx context.Context) error {
	return b.services.ProfileService.ClearActive(ctx)
}

func (b *businessAPIImpl) profileIndex(ctx context.Context, ref string) (int, error) {
	profiles := b.services.ProfileService.List(ctx)
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return resolveIndex("profile", ref, names)
}

// ========== Task Workflows ==========

func (b *businessAPIImpl) NewTaskForm(initial domain.TaskInput) *validation.Form {
	return validation.NewForm(b.validator.Engine(), validation.Values(initial.Values()))
}

func (b *businessAPIImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if _, ok := b.services.ProfileService.Active(); !ok {
		return nil, errors.NewNotSignedInError("view tasks")
	}
	return b.services.LedgerService.List(ctx), nil
}

func (b *businessAPIImpl) GetTask(ctx context.Context, ref string) (*domain.Task, error) {
	if idx, ok := parsePosition(ref); ok {
		task, err := b.services.LedgerService.Get(ctx, idx)
		if err != nil {
			return nil, err
		}
		return &task, nil
	}

	tasks, err := b.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == ref {
			task := t
			return &task, nil
		}
	}
	return nil, errors.NewNotFoundError("task", ref)
}

func (b *businessAPIImpl) AddTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	task, err := b.services.LedgerService.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *businessAPIImpl) EditTask(ctx context.Context, ref string, input domain.TaskInput) (*domain.Task, error) {
	var (
		task domain.Task
		err  error
	)
	if idx, ok := parsePosition(ref); ok {
		task, err = b.services.LedgerService.Update(ctx, idx, input)
	} else {
		task, err = b.services.LedgerService.UpdateByID(ctx, ref, input)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *businessAPIImpl) RemoveTask(ctx context.Context, ref string) error {
	if idx, ok := parsePosition(ref); ok {
		return b.services.LedgerService.Delete(ctx, idx)
	}
	return b.services.LedgerService.DeleteByID(ctx, ref)
}

// ========== Reporting ==========

func (b *businessAPIImpl) GetSummary(ctx context.Context) (*SummaryReport, error) {
	return b.summarize(ctx, b.services.TimeService.CurrentPeriod())
}

func (b *businessAPIImpl) GetSummaryFor(ctx context.Context, day string) (*SummaryReport, error) {
	period, err := b.services.TimeService.PeriodFor(day)
	if err != nil {
		return nil, err
	}
	return b.summarize(ctx, period)
}

func (b *businessAPIImpl) summarize(ctx context.Context, period domain.Period) (*SummaryReport, error) {
	rows, err := b.services.LedgerService.Summarize(ctx, period)
	if err != nil {
		return nil, err
	}

	report := &SummaryReport{Period: period, Rows: rows, Totals: domain.ProfileSummary{Profile: "Total"}}
	for _, row := range rows {
		report.Totals.Total += row.Total
		report.Totals.Daily += row.Daily
		report.Totals.Monthly += row.Monthly
		report.Totals.Yearly += row.Yearly
	}
	return report, nil
}

// ========== Backup ==========

func (b *businessAPIImpl) ExportData(ctx context.Context) ([]byte, error) {
	return b.services.TransferService.ExportAll(ctx)
}

func (b *businessAPIImpl) ExportToFile(ctx context.Context, path string) error {
	if path == "" {
		path = services.DefaultExportFileName
	}
	return b.services.TransferService.ExportToFile(ctx, path)
}

func (b *businessAPIImpl) ImportData(ctx context.Context, document []byte) (*services.ImportResult, error) {
	result, err := b.services.TransferService.ImportAll(ctx, document)
	if err != nil {
		notify.Error(b.notifier, "Failed to import data: "+errors.GetUserMessage(err))
		return nil, err
	}
	return result, nil
}

func (b *businessAPIImpl) ImportFromFile(ctx context.Context, path string) (*services.ImportResult, error) {
	result, err := b.services.TransferService.ImportFromFile(ctx, path)
	if err != nil {
		notify.Error(b.notifier, "Failed to import data: "+errors.GetUserMessage(err))
		return nil, err
	}
	return result, nil
}

// ========== Mirror ==========

func (b *businessAPIImpl) EnableMirror(ctx context.Context, path string) (*MirrorReport, error) {
	if path == "" {
		return nil, errors.NewInvalidInputError("path", path, "a mirror file is required")
	}
	sink := mirror.NewFileSink(path, b.mirrorPerm)
	if err := b.mirror.Grant(ctx, sink, b.services.LedgerService.List(ctx)); err != nil {
		notify.Error(b.notifier, errors.GetUserMessage(err))
		return newMirrorReport(b.mirror.Status()), err
	}
	notify.Success(b.notifier, "Auto-save enabled. All changes will be saved automatically.")
	return newMirrorReport(b.mirror.Status()), nil
}

func (b *businessAPIImpl) DisableMirror(ctx context.Context) *MirrorReport {
	b.mirror.Wait()
	b.mirror.Revoke()
	return newMirrorReport(b.mirror.Status())
}

func (b *businessAPIImpl) MirrorStatus(ctx context.Context) *MirrorReport {
	return newMirrorReport(b.mirror.Status())
}

// ========== Directory ==========

func (b *businessAPIImpl) ListCompanies(ctx context.Context) ([]directory.Company, error) {
	if b.directory == nil {
		return nil, errDirectoryNotConfigured()
	}
	companies, err := b.directory.ListCompanies(ctx)
	if err != nil {
		notify.Error(b.notifier, "Failed to load companies: "+err.Error())
		return nil, err
	}
	return companies, nil
}

func (b *businessAPIImpl) ListDrivers(ctx context.Context, companyID string) ([]directory.Driver, error) {
	if b.directory == nil {
		return nil, errDirectoryNotConfigured()
	}
	drivers, err := b.directory.ListDriversForCompany(ctx, companyID)
	if err != nil {
		notify.Error(b.notifier, "Failed to load drivers: "+err.Error())
		return nil, err
	}
	return drivers, nil
}

func errDirectoryNotConfigured() error {
	return errors.NewInvalidInputError("directory.base_url", "", "no directory service is configured")
}

// ========== Preferences ==========

func (b *businessAPIImpl) DarkMode(ctx context.Context) (bool, error) {
	return b.services.PreferenceService.DarkMode(ctx)
}

func (b *businessAPIImpl) SetDarkMode(ctx context.Context, enabled bool) error {
	return b.services.PreferenceService.SetDarkMode(ctx, enabled)
}

func (b *businessAPIImpl) Close() error {
	b.mirror.Wait()
	return nil
}
