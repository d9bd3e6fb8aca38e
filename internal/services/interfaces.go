package services

import (
	"context"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// ProfileService manages the registry of named profiles and which one is
// signed in.
type ProfileService interface {
	// Registry operations
	List(ctx context.Context) []domain.Profile
	Add(ctx context.Context, name string) (domain.Profile, error)
	Rename(ctx context.Context, index int, newName string) (domain.Profile, error)
	Remove(ctx context.Context, index int) error
	EnsureDefault(ctx context.Context) (bool, error)

	// Session operations
	SetActive(ctx context.Context, index int) (domain.Profile, error)
	ClearActive(ctx context.Context) error
	Active() (domain.Profile, bool)
}

// LedgerService handles the task list of the active profile.
type LedgerService interface {
	// Reads
	List(ctx context.Context) []domain.Task
	Get(ctx context.Context, index int) (domain.Task, error)
	Reload(ctx context.Context) error
	Summarize(ctx context.Context, period domain.Period) ([]domain.ProfileSummary, error)

	// Mutations
	Create(ctx context.Context, input domain.TaskInput) (domain.Task, error)
	Update(ctx context.Context, index int, input domain.TaskInput) (domain.Task, error)
	UpdateByID(ctx context.Context, id string, input domain.TaskInput) (domain.Task, error)
	Delete(ctx context.Context, index int) error
	DeleteByID(ctx context.Context, id string) error
}

// ImportResult describes what an import replaced.
type ImportResult struct {
	Profiles int `json:"profiles"`
	Tasks    int `json:"tasks"`
}

// TransferService handles whole-dataset backup and restore.
type TransferService interface {
	ExportAll(ctx context.Context) ([]byte, error)
	ImportAll(ctx context.Context, document []byte) (*ImportResult, error)
	ExportToFile(ctx context.Context, path string) error
	ImportFromFile(ctx context.Context, path string) (*ImportResult, error)
}

// PreferenceService keeps display preferences that live next to the data.
type PreferenceService interface {
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, enabled bool) error
}

// TimeService resolves "today" in the configured time zone.
type TimeService interface {
	Now() time.Time
	Today() string
	CurrentPeriod() domain.Period
	PeriodFor(date string) (domain.Period, error)
	IsToday(date string) bool
}

// MirrorTarget receives the active list after every successful mutation.
type MirrorTarget interface {
	Mirror(profile string, tasks []domain.Task)
}

// Dependencies are the collaborators the services are built from. Only Repo
// is required.
type Dependencies struct {
	Repo                 sqlite.Repository
	Events               events.Publisher
	Notifier             notify.Notifier
	Mirror               MirrorTarget
	Location             *time.Location
	Clock                func() time.Time
	ProfileNameMaxLength int
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ProfileService    ProfileService
	LedgerService     LedgerService
	TransferService   TransferService
	PreferenceService PreferenceService
	TimeService       TimeService
}
