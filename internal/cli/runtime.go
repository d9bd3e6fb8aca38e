package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/config"
	"github.com/Burh0n/LogiTrack-Pro/internal/directory"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/mirror"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// Runtime is the application wired from configuration for one lt process.
type Runtime struct {
	API     api.BusinessAPI
	Config  *config.Config
	Console *ConsoleNotifier

	repo        sqlite.Repository
	unsubscribe func()
	watching    chan struct{}
}

// NewRuntime opens the store and builds the business API on it. stderr
// receives notifications.
func NewRuntime(ctx context.Context, cfg *config.Config, stderr io.Writer) (*Runtime, error) {
	logger := logging.Configure(cfg.LoggingOptions())

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}

	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	console := NewConsoleNotifier(stderr)
	notifier := notify.Multi{console}
	if cfg.Notify.Desktop {
		notifier = append(notifier, notify.NewDesktopNotifier("LogiTrack"))
	}
	if cfg.Application.Verbose {
		notifier = append(notifier, notify.NewLogNotifier(logger))
	}

	bus := events.NewBus(0)
	m := mirror.New(
		mirror.WithTimeout(cfg.Mirror.Timeout),
		mirror.WithEvents(bus),
		mirror.WithNotifier(notifier),
	)
	if cfg.Mirror.Path != "" {
		m.Arm(mirror.NewFileSink(cfg.Mirror.Path, os.FileMode(cfg.Mirror.Permissions)))
	}

	var dir directory.Directory
	if cfg.Directory.BaseURL != "" {
		dir = directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Token, cfg.Directory.Timeout)
	}

	businessAPI, err := api.NewBusinessAPI(ctx, api.Dependencies{
		Repo:                 repo,
		Events:               bus,
		Notifier:             notifier,
		Mirror:               m,
		Directory:            dir,
		Location:             loc,
		ProfileNameMaxLength: cfg.Validation.ProfileNameMaxLength,
		MirrorPermissions:    os.FileMode(cfg.Mirror.Permissions),
	})
	if err != nil {
		repo.Close()
		return nil, err
	}

	if err := businessAPI.EnsureDefaultProfile(ctx); err != nil {
		businessAPI.Close()
		repo.Close()
		return nil, err
	}
	if dark, err := businessAPI.DarkMode(ctx); err == nil {
		console.SetDark(dark)
	}

	rt := &Runtime{
		API:     businessAPI,
		Config:  cfg,
		Console: console,
		repo:    repo,
	}
	rt.watch(bus)
	return rt, nil
}

// watch logs every ledger event at debug level until Close.
func (rt *Runtime) watch(bus *events.Bus) {
	ch, cancel := bus.Subscribe()
	rt.unsubscribe = cancel
	rt.watching = make(chan struct{})
	go func() {
		defer close(rt.watching)
		for e := range ch {
			logging.L().Debug("ledger event", "kind", e.Kind, "profile", e.Profile, "message", e.Message)
		}
	}()
}

// Close flushes pending mirror writes and closes the store.
func (rt *Runtime) Close() error {
	apiErr := rt.API.Close()
	if rt.unsubscribe != nil {
		rt.unsubscribe()
		<-rt.watching
	}
	if err := rt.repo.Close(); err != nil {
		return err
	}
	return apiErr
}
