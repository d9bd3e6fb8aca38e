package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFileValue(t *testing.T) {
	isolate(t)

	t.Run("creates the file and is read back by the loader", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.toml")
		require.NoError(t, SetFileValue(path, "mirror", "path", "/srv/tasks.json"))

		cfg, err := NewLoader().WithFile(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "/srv/tasks.json", cfg.Mirror.Path)
	})

	t.Run("keeps other settings and removes keys", func(t *testing.T) {
		path := writeFile(t, "[display]\nsummary_width = 90\n\n[mirror]\npath = \"/old.json\"\n")

		require.NoError(t, SetFileValue(path, "mirror", "path", nil))

		cfg, err := NewLoader().WithFile(path).Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.Mirror.Path)
		assert.Equal(t, 90, cfg.Display.SummaryWidth)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "[mirror]")
	})

	t.Run("rejects a broken file", func(t *testing.T) {
		path := writeFile(t, "[mirror\n")
		assert.Error(t, SetFileValue(path, "mirror", "path", "/x.json"))
	})

	t.Run("requires a path", func(t *testing.T) {
		assert.Error(t, SetFileValue("", "mirror", "path", "/x.json"))
	})
}
