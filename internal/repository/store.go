// Package repository holds the typed helpers the services use on top of the
// raw key-value store.
package repository

import (
	"context"
	"encoding/json"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// Store keys shared by every service.
const (
	KeyProfiles       = "profiles"
	KeyCurrentProfile = "currentProfile"
	KeyDarkMode       = "darkMode"
	TasksKeyPrefix    = "tasks_"
)

// TasksKey returns the key holding the task collection of a profile.
func TasksKey(profile string) string {
	return TasksKeyPrefix + profile
}

// ProfileFromTasksKey is the inverse of TasksKey.
func ProfileFromTasksKey(key string) (string, bool) {
	if len(key) < len(TasksKeyPrefix) || key[:len(TasksKeyPrefix)] != TasksKeyPrefix {
		return "", false
	}
	return key[len(TasksKeyPrefix):], true
}

// getter is satisfied by both sqlite.Repository and sqlite.Tx wrappers.
type getter func(key string) ([]byte, bool, error)

// LoadJSON decodes the value under key into out. found is false when the key
// is absent, leaving out untouched. A value that is not valid JSON for out is
// reported as a StorageCorrupt error.
func LoadJSON(ctx context.Context, repo sqlite.Repository, key string, out interface{}) (bool, error) {
	return decode(func(k string) ([]byte, bool, error) { return repo.Get(ctx, k) }, key, out)
}

// LoadJSONTx is LoadJSON inside a batch.
func LoadJSONTx(tx sqlite.Tx, key string, out interface{}) (bool, error) {
	return decode(tx.Get, key, out)
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, repo sqlite.Repository, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewInvalidInputError(key, v, err.Error())
	}
	return repo.Set(ctx, key, data)
}

// SaveJSONTx is SaveJSON inside a batch.
func SaveJSONTx(tx sqlite.Tx, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewInvalidInputError(key, v, err.Error())
	}
	return tx.Set(key, data)
}

func decode(get getter, key string, out interface{}) (bool, error) {
	data, found, err := get(key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, errors.NewStorageCorruptError(key, err)
	}
	return true, nil
}
