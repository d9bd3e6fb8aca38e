package config

import (
	"context"
	"fmt"
	"os"

	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// CreateRepository opens the store described by the configuration, creating
// its directory when needed.
func CreateRepository(ctx context.Context, config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	opts := sqlite.Options{
		QueryTimeout: config.GetQueryTimeout(),
		WriteTimeout: config.GetWriteTimeout(),
		BusyTimeout:  config.Database.BusyTimeout,
	}
	repo, err := sqlite.NewWithOptions(ctx, config.GetDatabasePath(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
