package services

import (
	"context"
	"sync"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// session is the in-memory view shared by the profile, ledger and transfer
// services. mu serializes every operation so a profile switch finishes its
// reload before the next ledger call is accepted.
type session struct {
	mu       sync.Mutex
	repo     sqlite.Repository
	events   events.Publisher
	notifier notify.Notifier
	mirror   MirrorTarget

	profiles []domain.Profile
	active   string
	tasks    []domain.Task
}

func newSession(deps Dependencies) *session {
	s := &session{
		repo:     deps.Repo,
		events:   deps.Events,
		notifier: deps.Notifier,
		mirror:   deps.Mirror,
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(logging.L())
	}
	return s
}

// hasActive reports whether a profile is signed in. Callers hold mu.
func (s *session) hasActive() bool {
	return s.active != ""
}

// load fills the view from the store. Unreadable data is treated as absent.
func (s *session) load(ctx context.Context) error {
	profiles, err := s.readProfiles(ctx)
	if err != nil {
		return err
	}
	s.profiles = profiles

	var current *domain.Profile
	if _, err := repository.LoadJSON(ctx, s.repo, repository.KeyCurrentProfile, &current); err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
			return err
		}
		s.warnCorrupt(err)
		current = nil
	}

	s.active = ""
	if current != nil && domain.IndexOf(s.profiles, current.Name) >= 0 {
		s.active = current.Name
	}
	return s.reloadTasks(ctx)
}

// readProfiles loads the registry fresh. A corrupt value degrades to an
// empty registry.
func (s *session) readProfiles(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	if _, err := repository.LoadJSON(ctx, s.repo, repository.KeyProfiles, &profiles); err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
			return nil, err
		}
		s.warnCorrupt(err)
		return []domain.Profile{}, nil
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

// readTasks loads one profile's collection fresh and gives IDs to records
// stored without one.
func (s *session) readTasks(ctx context.Context, profile string) ([]domain.Task, error) {
	tasks, err := s.readRawTasks(ctx, profile)
	if err != nil {
		return nil, err
	}
	return normalizeTasks(tasks), nil
}

func (s *session) readRawTasks(ctx context.Context, profile string) ([]domain.Task, error) {
	var tasks []domain.Task
	if _, err := repository.LoadJSON(ctx, s.repo, repository.TasksKey(profile), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// reloadTasks replaces the in-memory list with the active profile's stored
// collection.
func (s *session) reloadTasks(ctx context.Context) error {
	if !s.hasActive() {
		s.tasks = []domain.Task{}
		return nil
	}
	tasks, err := s.readTasks(ctx, s.active)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
			return err
		}
		s.warnCorrupt(err)
		tasks = []domain.Task{}
	}
	s.tasks = tasks
	logging.Debugf("loaded %d tasks for %s\n", len(tasks), s.active)
	return nil
}

func (s *session) warnCorrupt(err error) {
	logging.L().Warn("discarding unreadable stored data", "err", err)
	notify.Warning(s.notifier, errors.GetUserMessage(err))
}

func (s *session) publish(kind events.Kind, profile string) {
	s.events.Publish(events.Event{Kind: kind, Profile: profile})
}

func (s *session) profilesCopy() []domain.Profile {
	return append([]domain.Profile{}, s.profiles...)
}

func (s *session) tasksCopy() []domain.Task {
	return append([]domain.Task{}, s.tasks...)
}

func normalizeTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return []domain.Task{}
	}
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = domain.NewTaskID()
		}
		if status, ok := domain.ParseStatus(string(tasks[i].Status)); ok {
			tasks[i].Status = status
		}
	}
	return tasks
}
