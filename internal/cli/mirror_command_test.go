package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorCommand(t *testing.T) {
	ta := signedIn(t)
	target := filepath.Join(t.TempDir(), "tasks.json")

	t.Run("starts disabled", func(t *testing.T) {
		require.NoError(t, ta.run(t, "mirror"))
		assert.Equal(t, "Auto-save: disabled\n", ta.out.String())
	})

	t.Run("enable writes the file and remembers it", func(t *testing.T) {
		addTask(t, ta, "Jim", "2024-03-05")

		require.NoError(t, ta.run(t, "mirror", "enable", target))
		assert.Contains(t, ta.out.String(), "Auto-save: armed")
		assert.Contains(t, ta.out.String(), "File:      "+target)
		assert.Contains(t, ta.out.String(), "1 writes")

		assert.Equal(t, target, ta.config.Mirror.Path)
		settings, err := os.ReadFile(ta.configPath)
		require.NoError(t, err)
		assert.Contains(t, string(settings), target)
	})

	t.Run("ledger changes reach the file", func(t *testing.T) {
		addTask(t, ta, "Kay", "2024-03-06")
		require.NoError(t, ta.businessAPI.Close())

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		var mirrored []domain.Task
		require.NoError(t, json.Unmarshal(data, &mirrored))
		require.Len(t, mirrored, 2)
		assert.Equal(t, "Kay", mirrored[1].Driver)
	})

	t.Run("disable forgets the file", func(t *testing.T) {
		require.NoError(t, ta.run(t, "mirror", "disable"))
		assert.Equal(t, "Auto-save disabled\n", ta.out.String())
		assert.Empty(t, ta.config.Mirror.Path)

		settings, err := os.ReadFile(ta.configPath)
		require.NoError(t, err)
		assert.NotContains(t, string(settings), target)

		require.NoError(t, ta.run(t, "mirror", "status"))
		assert.Equal(t, "Auto-save: disabled\n", ta.out.String())
	})

	t.Run("reports unwritable targets", func(t *testing.T) {
		err := ta.run(t, "mirror", "enable", t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeMirrorWriteFailed))
	})

	t.Run("validates usage", func(t *testing.T) {
		for _, args := range [][]string{
			{"mirror", "enable"},
			{"mirror", "pause"},
		} {
			err := ta.run(t, args...)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput), "args %v", args)
		}
	})
}
