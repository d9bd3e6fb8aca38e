package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every source at a clean slate.
func isolate(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"LT_DB_DIR", "LT_DB_FILENAME", "LT_DB_QUERY_TIMEOUT", "LT_DB_WRITE_TIMEOUT",
		"LT_DB_BUSY_TIMEOUT", "LT_DB_DIR_PERMISSIONS", "LT_MIRROR_PATH", "LT_MIRROR_TIMEOUT",
		"LT_MIRROR_PERMISSIONS", "LT_DIRECTORY_URL", "LT_DIRECTORY_TOKEN", "LT_DIRECTORY_TIMEOUT",
		"LT_LOG_LEVEL", "LT_LOG_FORMAT", "LT_VALIDATION_PROFILE_NAME_MAX", "LT_DISPLAY_SUMMARY_WIDTH",
		"LT_DISPLAY_TIMEZONE", "LT_NOTIFY_DESKTOP", "LT_APP_TIMEOUT", "LT_APP_VERBOSE",
	} {
		t.Setenv(env, "")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv(ConfigEnv, "")
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "logitrack.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetWriteTimeout())
	assert.Equal(t, "America/New_York", cfg.Display.TimeZone)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, uint32(0644), cfg.Mirror.Permissions)
	assert.Empty(t, cfg.Mirror.Path)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join(cfg.Database.Dir, "logitrack.db"), cfg.GetDatabasePath())
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LT_DB_DIR", "/tmp/lt")
	t.Setenv("LT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("LT_DB_WRITE_TIMEOUT", "not-a-duration")
	t.Setenv("LT_DB_DIR_PERMISSIONS", "700")
	t.Setenv("LT_MIRROR_PATH", "/tmp/tasks.json")
	t.Setenv("LT_DIRECTORY_URL", "https://dir.example")
	t.Setenv("LT_LOG_FORMAT", "json")
	t.Setenv("LT_DISPLAY_TIMEZONE", "UTC")
	t.Setenv("LT_NOTIFY_DESKTOP", "true")
	t.Setenv("LT_APP_VERBOSE", "1")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/lt", cfg.Database.Dir)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout, "bad values keep the previous setting")
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
	assert.Equal(t, "/tmp/tasks.json", cfg.Mirror.Path)
	assert.Equal(t, "https://dir.example", cfg.Directory.BaseURL)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "UTC", cfg.Display.TimeZone)
	assert.True(t, cfg.Notify.Desktop)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "debug", cfg.LoggingOptions().Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"negative busy timeout", func(c *Config) { c.Database.BusyTimeout = -time.Second }, "database.busy_timeout"},
		{"mirror timeout", func(c *Config) { c.Mirror.Timeout = 0 }, "mirror.timeout"},
		{"directory timeout", func(c *Config) { c.Directory.Timeout = 0 }, "directory.timeout"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"profile name length", func(c *Config) { c.Validation.ProfileNameMaxLength = 0 }, "validation.profile_name_max_length"},
		{"summary width", func(c *Config) { c.Display.SummaryWidth = 5 }, "display.summary_width"},
		{"time zone", func(c *Config) { c.Display.TimeZone = "Mars/Olympus" }, "display.time_zone"},
		{"app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := NewConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	cfg.Display.TimeZone = "Local"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoader_FileThenEnvironment(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
[database]
filename = "from-file.db"
query_timeout = "2s"

[mirror]
path = "/srv/tasks.json"

[display]
time_zone = "UTC"
summary_width = 90
`)
	t.Setenv(ConfigEnv, path)
	t.Setenv("LT_DISPLAY_SUMMARY_WIDTH", "120")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file.db", cfg.Database.Filename)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "/srv/tasks.json", cfg.Mirror.Path)
	assert.Equal(t, "UTC", cfg.Display.TimeZone)
	assert.Equal(t, 120, cfg.Display.SummaryWidth)
}

func TestLoader_MissingDefaultFileIsFine(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, NewConfig().Database.Filename, cfg.Database.Filename)
}

func TestLoader_FileErrors(t *testing.T) {
	isolate(t)

	_, err := NewLoader().WithFile(filepath.Join(t.TempDir(), "nope.toml")).Load()
	assert.Error(t, err)

	_, err = NewLoader().WithFile(writeFile(t, "[database\n")).Load()
	assert.Error(t, err)

	_, err = NewLoader().WithFile(writeFile(t, "[database]\ncolour = \"red\"\n")).Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database.colour", cfgErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LT_LOG_LEVEL", "warn")

	level := "debug"
	width := 100
	mirror := "/tmp/mirror.json"
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		LogLevel:     &level,
		SummaryWidth: &width,
		MirrorPath:   &mirror,
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Display.SummaryWidth)
	assert.Equal(t, "/tmp/mirror.json", cfg.Mirror.Path)

	bad := 3
	_, err = NewLoader().LoadWithOverrides(&ConfigOverrides{SummaryWidth: &bad})
	assert.Error(t, err)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 2*time.Minute, ParseDurationWithFallback("2m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("9", 8, 1))
}
