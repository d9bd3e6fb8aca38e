package cli

import (
	"context"
	"testing"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCommand(t *testing.T) {
	ta := setupTestApp(t)
	ctx := context.Background()

	t.Run("lists the seeded profile", func(t *testing.T) {
		require.NoError(t, ta.run(t, "profile"))
		assert.Equal(t, "  1. Default User\n", ta.out.String())
	})

	t.Run("adds profiles with spaces in the name", func(t *testing.T) {
		require.NoError(t, ta.run(t, "profile", "add", "Night", "shift"))
		assert.Equal(t, "Added profile: Night shift\n", ta.out.String())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		err := ta.run(t, "profile", "add", "Night shift")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDuplicateProfile))
	})

	t.Run("signs in by position and marks the active profile", func(t *testing.T) {
		require.NoError(t, ta.run(t, "profile", "use", "2"))
		assert.Equal(t, "Signed in as: Night shift\n", ta.out.String())

		require.NoError(t, ta.run(t, "profile", "list"))
		assert.Equal(t, "  1. Default User\n* 2. Night shift\n", ta.out.String())

		require.NoError(t, ta.run(t, "current"))
		assert.Equal(t, "Current profile: Night shift (0 tasks)\n", ta.out.String())
	})

	t.Run("renames the active profile", func(t *testing.T) {
		require.NoError(t, ta.run(t, "profile", "rename", "Night shift", "Late", "shift"))
		assert.Equal(t, "Renamed profile to: Late shift\n", ta.out.String())

		current, ok := ta.businessAPI.CurrentProfile(ctx)
		require.True(t, ok)
		assert.Equal(t, "Late shift", current.Name)
	})

	t.Run("reports unknown profiles on sign in", func(t *testing.T) {
		err := ta.run(t, "profile", "use", "Nobody")
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNoProfileSelected))
	})

	t.Run("deletes the active profile and signs out", func(t *testing.T) {
		require.NoError(t, ta.run(t, "profile", "delete", "Late shift"))
		assert.Equal(t, "Deleted profile: Late shift\n", ta.out.String())

		_, ok := ta.businessAPI.CurrentProfile(ctx)
		assert.False(t, ok)
		assert.Equal(t, []domain.Profile{{Name: domain.DefaultProfileName}}, ta.businessAPI.ListProfiles(ctx))
	})

	t.Run("signs out", func(t *testing.T) {
		require.NoError(t, ta.run(t, "profile", "use", "1"))
		require.NoError(t, ta.run(t, "profile", "signout"))
		assert.Equal(t, "Signed out\n", ta.out.String())
	})

	t.Run("validates usage", func(t *testing.T) {
		for _, args := range [][]string{
			{"profile", "rename", "1"},
			{"profile", "delete"},
			{"profile", "use"},
			{"profile", "promote"},
		} {
			err := ta.run(t, args...)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput), "args %v", args)
		}
	})
}
