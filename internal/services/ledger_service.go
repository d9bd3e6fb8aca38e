package services

import (
	"context"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository"
	"github.com/Burh0n/LogiTrack-Pro/internal/validation"
)

// ledgerServiceImpl implements the LedgerService interface
type ledgerServiceImpl struct {
	s         *session
	validator *validation.TaskValidator
}

func newLedgerService(s *session) *ledgerServiceImpl {
	return &ledgerServiceImpl{s: s, validator: validation.NewTaskValidator()}
}

// validate checks task input before any store access
func (l *ledgerServiceImpl) validate(input domain.TaskInput) error {
	if err := l.validator.ValidateTaskInput(input); err != nil {
		msg := "invalid task"
		if ve, ok := err.(*validation.ValidationError); ok {
			msg = ve.GetUserFriendlyMessage()
		}
		return errors.NewValidationError(msg, err)
	}
	return nil
}

// List returns the active profile's tasks in insertion order. It is empty
// when nobody is signed in.
func (l *ledgerServiceImpl) List(ctx context.Context) []domain.Task {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.tasksCopy()
}

// Get returns the task at index in the current view.
func (l *ledgerServiceImpl) Get(ctx context.Context, index int) (domain.Task, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if !l.s.hasActive() {
		return domain.Task{}, errors.NewNotSignedInError("view tasks")
	}
	if index < 0 || index >= len(l.s.tasks) {
		return domain.Task{}, errors.NewIndexOutOfRangeError("task", index, len(l.s.tasks))
	}
	return l.s.tasks[index], nil
}

// Reload re-reads the active profile's tasks from the store.
func (l *ledgerServiceImpl) Reload(ctx context.Context) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if err := l.s.reloadTasks(ctx); err != nil {
		return err
	}
	l.s.publish(events.ListUpdated, l.s.active)
	return nil
}

// Create appends a task built from input to the active profile.
func (l *ledgerServiceImpl) Create(ctx context.Context, input domain.TaskInput) (domain.Task, error) {
	if err := l.validate(input); err != nil {
		return domain.Task{}, err
	}

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if !l.s.hasActive() {
		return domain.Task{}, errors.NewNotSignedInError("add tasks")
	}
	tasks, err := l.fresh(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.NewTask(input)
	tasks = append(tasks, task)
	if err := l.commit(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	notify.Success(l.s.notifier, "Task added successfully")
	return task, nil
}

// Update replaces the task at index in the current view.
func (l *ledgerServiceImpl) Update(ctx context.Context, index int, input domain.TaskInput) (domain.Task, error) {
	if err := l.validate(input); err != nil {
		return domain.Task{}, err
	}

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	id, err := l.resolve(index, "edit tasks")
	if err != nil {
		return domain.Task{}, err
	}
	return l.updateLocked(ctx, id, input)
}

// UpdateByID replaces the task with the given identifier.
func (l *ledgerServiceImpl) UpdateByID(ctx context.Context, id string, input domain.TaskInput) (domain.Task, error) {
	if err := l.validate(input); err != nil {
		return domain.Task{}, err
	}

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if !l.s.hasActive() {
		return domain.Task{}, errors.NewNotSignedInError("edit tasks")
	}
	return l.updateLocked(ctx, id, input)
}

// Delete removes the task at index in the current view.
func (l *ledgerServiceImpl) Delete(ctx context.Context, index int) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	id, err := l.resolve(index, "delete tasks")
	if err != nil {
		return err
	}
	return l.deleteLocked(ctx, id)
}

// DeleteByID removes the task with the given identifier.
func (l *ledgerServiceImpl) DeleteByID(ctx context.Context, id string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if !l.s.hasActive() {
		return errors.NewNotSignedInError("delete tasks")
	}
	return l.deleteLocked(ctx, id)
}

// Summarize counts every profile's stored tasks against period. A profile
// whose collection cannot be read gets a zero row flagged with Error.
func (l *ledgerServiceImpl) Summarize(ctx context.Context, period domain.Period) ([]domain.ProfileSummary, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	profiles, err := l.s.readProfiles(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ProfileSummary, 0, len(profiles))
	for _, profile := range profiles {
		tasks, err := l.s.readTasks(ctx, profile.Name)
		if err != nil {
			if !errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
				return nil, err
			}
			logging.L().Warn("cannot summarize profile", "profile", profile.Name, "err", err)
			rows = append(rows, domain.ProfileSummary{Profile: profile.Name, Error: true})
			continue
		}
		rows = append(rows, domain.Summarize(profile.Name, tasks, period))
	}
	return rows, nil
}

// resolve maps a view index to a task ID. Callers hold mu.
func (l *ledgerServiceImpl) resolve(index int, operation string) (string, error) {
	if !l.s.hasActive() {
		return "", errors.NewNotSignedInError(operation)
	}
	if index < 0 || index >= len(l.s.tasks) {
		return "", errors.NewIndexOutOfRangeError("task", index, len(l.s.tasks))
	}
	return l.s.tasks[index].ID, nil
}

func (l *ledgerServiceImpl) updateLocked(ctx context.Context, id string, input domain.TaskInput) (domain.Task, error) {
	tasks, err := l.fresh(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	pos := indexOfTask(tasks, id)
	if pos < 0 {
		return domain.Task{}, errors.NewNotFoundError("task", id)
	}

	tasks[pos] = tasks[pos].WithInput(input)
	if err := l.commit(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	notify.Success(l.s.notifier, "Task updated successfully")
	return tasks[pos], nil
}

func (l *ledgerServiceImpl) deleteLocked(ctx context.Context, id string) error {
	tasks, err := l.fresh(ctx)
	if err != nil {
		return err
	}
	pos := indexOfTask(tasks, id)
	if pos < 0 {
		return errors.NewNotFoundError("task", id)
	}

	tasks = append(tasks[:pos], tasks[pos+1:]...)
	if err := l.commit(ctx, tasks); err != nil {
		return err
	}
	notify.Success(l.s.notifier, "Task deleted successfully")
	return nil
}

// fresh loads the active collection from the store. Records stored without
// an ID keep the one the view already gave them. An unreadable collection
// falls back to the in-memory view, which was degraded to empty on load.
func (l *ledgerServiceImpl) fresh(ctx context.Context) ([]domain.Task, error) {
	tasks, err := l.s.readRawTasks(ctx, l.s.active)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
			return nil, err
		}
		l.s.warnCorrupt(err)
		return l.s.tasksCopy(), nil
	}
	for i := range tasks {
		if tasks[i].ID == "" && i < len(l.s.tasks) {
			tasks[i].ID = l.s.tasks[i].ID
		}
	}
	return normalizeTasks(tasks), nil
}

// commit persists tasks, swaps the view and fans the change out. The mirror
// runs asynchronously and cannot fail the mutation.
func (l *ledgerServiceImpl) commit(ctx context.Context, tasks []domain.Task) error {
	if err := repository.SaveJSON(ctx, l.s.repo, repository.TasksKey(l.s.active), tasks); err != nil {
		return err
	}
	l.s.tasks = tasks
	if l.s.mirror != nil {
		l.s.mirror.Mirror(l.s.active, l.s.tasksCopy())
	}
	l.s.publish(events.ListUpdated, l.s.active)
	l.s.publish(events.SummaryUpdated, l.s.active)
	return nil
}

func indexOfTask(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
