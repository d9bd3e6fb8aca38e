package cli

import (
	"context"
	"testing"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingCommand struct{}

func (panickingCommand) Execute(ctx context.Context, args []string) error {
	panic("boom")
}

func TestNewCommandRegistry(t *testing.T) {
	ta := setupTestApp(t)

	registry := NewCommandRegistry(ta.App)

	assert.NotNil(t, registry)
	for _, name := range []string{
		"profile", "current", "task", "list", "delete", "summary",
		"export", "import", "mirror", "directory", "theme",
	} {
		assert.Contains(t, registry.commands, name)
	}
}

func TestCommandRegistry_Execute(t *testing.T) {
	ta := setupTestApp(t)
	registry := NewCommandRegistry(ta.App)
	ctx := context.Background()

	t.Run("executes profile command", func(t *testing.T) {
		err := registry.Execute(ctx, "profile", []string{"add", "Ann"})
		assert.NoError(t, err)

		profiles := ta.businessAPI.ListProfiles(ctx)
		require.Len(t, profiles, 2)
		assert.Equal(t, "Ann", profiles[1].Name)
	})

	t.Run("executes current command", func(t *testing.T) {
		err := registry.Execute(ctx, "current", []string{})
		assert.NoError(t, err)
	})

	t.Run("returns error for unknown command", func(t *testing.T) {
		err := registry.Execute(ctx, "unknown", []string{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})

	t.Run("turns panics into errors", func(t *testing.T) {
		registry.Register("explode", panickingCommand{})

		err := registry.Execute(ctx, "explode", nil)
		require.Error(t, err)
		assert.Equal(t, crashMessage, err.Error())
	})
}

func TestCommandRegistry_GetUsage(t *testing.T) {
	ta := setupTestApp(t)
	registry := NewCommandRegistry(ta.App)

	usage := registry.GetUsage()
	assert.Contains(t, usage, "usage: lt")
	assert.Contains(t, usage, "lt task add")
	assert.Contains(t, usage, "lt mirror enable")
}
