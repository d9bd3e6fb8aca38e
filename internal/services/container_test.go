package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMirror records every list handed to the mirror.
type fakeMirror struct {
	mu    sync.Mutex
	calls []mirrorCall
}

type mirrorCall struct {
	profile string
	tasks   []domain.Task
}

func (f *fakeMirror) Mirror(profile string, tasks []domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, mirrorCall{profile: profile, tasks: tasks})
}

func (f *fakeMirror) Calls() []mirrorCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mirrorCall(nil), f.calls...)
}

type harness struct {
	ctx      context.Context
	path     string
	repo     *sqlite.SQLiteRepository
	notes    *notify.Recorder
	bus      *events.Bus
	mirror   *fakeMirror
	services *ServiceContainer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lt.db")
	repo, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	h := &harness{ctx: context.Background(), path: path, repo: repo}
	h.reopen(t)
	return h
}

// reopen rebuilds the services on the same store, as a fresh process would.
func (h *harness) reopen(t *testing.T) {
	t.Helper()
	h.notes = &notify.Recorder{}
	h.bus = events.NewBus(64)
	h.mirror = &fakeMirror{}
	fixed := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)

	services, err := NewServiceContainer(h.ctx, Dependencies{
		Repo:     h.repo,
		Events:   h.bus,
		Notifier: h.notes,
		Mirror:   h.mirror,
		Location: time.UTC,
		Clock:    func() time.Time { return fixed },
	})
	require.NoError(t, err)
	h.services = services
}

func (h *harness) addProfiles(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := h.services.ProfileService.Add(h.ctx, name)
		require.NoError(t, err)
	}
}

func (h *harness) signIn(t *testing.T, name string) {
	t.Helper()
	idx := domain.IndexOf(h.services.ProfileService.List(h.ctx), name)
	require.GreaterOrEqual(t, idx, 0, "profile %s not registered", name)
	_, err := h.services.ProfileService.SetActive(h.ctx, idx)
	require.NoError(t, err)
}

func (h *harness) storedTasks(t *testing.T, profile string) []domain.Task {
	t.Helper()
	var tasks []domain.Task
	_, err := repository.LoadJSON(h.ctx, h.repo, repository.TasksKey(profile), &tasks)
	require.NoError(t, err)
	return tasks
}

func (h *harness) setRaw(t *testing.T, key, value string) {
	t.Helper()
	require.NoError(t, h.repo.Set(h.ctx, key, []byte(value)))
}

func (h *harness) lastNote() notify.Entry {
	entries := h.notes.Entries()
	if len(entries) == 0 {
		return notify.Entry{}
	}
	return entries[len(entries)-1]
}

func sampleInput(driver string) domain.TaskInput {
	return domain.TaskInput{
		Driver:  driver,
		Company: "Acme Freight",
		Date:    "2024-03-05",
		Time:    "09:30",
		Status:  "Pending",
		Action:  "Pick up trailer",
	}
}

func TestNewServiceContainer_RequiresRepo(t *testing.T) {
	_, err := NewServiceContainer(context.Background(), Dependencies{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestNewServiceContainer_RestoresSession(t *testing.T) {
	h := newHarness(t)
	h.addProfiles(t, "Ann", "Bob")
	h.signIn(t, "Bob")
	_, err := h.services.LedgerService.Create(h.ctx, sampleInput("Jim"))
	require.NoError(t, err)

	h.reopen(t)

	active, ok := h.services.ProfileService.Active()
	require.True(t, ok)
	assert.Equal(t, "Bob", active.Name)
	require.Len(t, h.services.LedgerService.List(h.ctx), 1)
	assert.Equal(t, "Jim", h.services.LedgerService.List(h.ctx)[0].Driver)
}

func TestNewServiceContainer_IgnoresUnknownCurrentProfile(t *testing.T) {
	h := newHarness(t)
	h.addProfiles(t, "Ann")
	h.setRaw(t, repository.KeyCurrentProfile, `{"name":"Ghost"}`)

	h.reopen(t)

	_, ok := h.services.ProfileService.Active()
	assert.False(t, ok)
	assert.Empty(t, h.services.LedgerService.List(h.ctx))
}

func TestNewServiceContainer_CorruptProfilesDegradeToEmpty(t *testing.T) {
	h := newHarness(t)
	h.setRaw(t, repository.KeyProfiles, `{not json`)

	h.reopen(t)

	assert.Empty(t, h.services.ProfileService.List(h.ctx))
	assert.Equal(t, notify.LevelWarning, h.lastNote().Level)
}
