package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata" // time zones resolve without system tzdata

	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
)

// Config holds all configuration options for the ledger
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Mirror      MirrorConfig      `toml:"mirror"`
	Directory   DirectoryConfig   `toml:"directory"`
	Logging     LoggingConfig     `toml:"logging"`
	Validation  ValidationConfig  `toml:"validation"`
	Display     DisplayConfig     `toml:"display"`
	Notify      NotifyConfig      `toml:"notify"`
	Application ApplicationConfig `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"LT_DB_DIR"`
	Filename       string        `toml:"filename" env:"LT_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"LT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"LT_DB_WRITE_TIMEOUT"`
	BusyTimeout    time.Duration `toml:"busy_timeout" env:"LT_DB_BUSY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"LT_DB_DIR_PERMISSIONS"`
}

// MirrorConfig holds the secondary file the active task list is copied to
type MirrorConfig struct {
	Path        string        `toml:"path" env:"LT_MIRROR_PATH"`
	Timeout     time.Duration `toml:"timeout" env:"LT_MIRROR_TIMEOUT"`
	Permissions uint32        `toml:"permissions" env:"LT_MIRROR_PERMISSIONS"`
}

// DirectoryConfig holds the remote company/driver directory settings
type DirectoryConfig struct {
	BaseURL string        `toml:"base_url" env:"LT_DIRECTORY_URL"`
	Token   string        `toml:"token" env:"LT_DIRECTORY_TOKEN"`
	Timeout time.Duration `toml:"timeout" env:"LT_DIRECTORY_TIMEOUT"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `toml:"level" env:"LT_LOG_LEVEL"`
	Format string `toml:"format" env:"LT_LOG_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProfileNameMaxLength int `toml:"profile_name_max_length" env:"LT_VALIDATION_PROFILE_NAME_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	SummaryWidth int    `toml:"summary_width" env:"LT_DISPLAY_SUMMARY_WIDTH"`
	TimeZone     string `toml:"time_zone" env:"LT_DISPLAY_TIMEZONE"`
}

// NotifyConfig controls where user-facing notifications go
type NotifyConfig struct {
	Desktop bool `toml:"desktop" env:"LT_NOTIFY_DESKTOP"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"LT_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"LT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".logitrack")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "logitrack.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Mirror: MirrorConfig{
			Timeout:     10 * time.Second,
			Permissions: 0644,
		},
		Directory: DirectoryConfig{
			Timeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Validation: ValidationConfig{
			ProfileNameMaxLength: 64,
		},
		Display: DisplayConfig{
			SummaryWidth: 75,
			TimeZone:     "America/New_York",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// Location resolves the configured time zone used for "today".
func (c *Config) Location() (*time.Location, error) {
	if c.Display.TimeZone == "" || c.Display.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Display.TimeZone)
}

// LoggingOptions maps the logging section onto logger options.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.Logging.Level
	opts.Format = c.Logging.Format
	if c.Application.Verbose {
		opts.Level = "debug"
	}
	return opts
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("LT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("LT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("LT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("LT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if timeout := os.Getenv("LT_DB_BUSY_TIMEOUT"); timeout != "" {
		c.Database.BusyTimeout = ParseDurationWithFallback(timeout, c.Database.BusyTimeout)
	}
	if perms := os.Getenv("LT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Mirror configuration
	if path := os.Getenv("LT_MIRROR_PATH"); path != "" {
		c.Mirror.Path = path
	}
	if timeout := os.Getenv("LT_MIRROR_TIMEOUT"); timeout != "" {
		c.Mirror.Timeout = ParseDurationWithFallback(timeout, c.Mirror.Timeout)
	}
	if perms := os.Getenv("LT_MIRROR_PERMISSIONS"); perms != "" {
		c.Mirror.Permissions = ParseUint32WithFallback(perms, 8, c.Mirror.Permissions)
	}

	// Directory configuration
	if url := os.Getenv("LT_DIRECTORY_URL"); url != "" {
		c.Directory.BaseURL = url
	}
	if token := os.Getenv("LT_DIRECTORY_TOKEN"); token != "" {
		c.Directory.Token = token
	}
	if timeout := os.Getenv("LT_DIRECTORY_TIMEOUT"); timeout != "" {
		c.Directory.Timeout = ParseDurationWithFallback(timeout, c.Directory.Timeout)
	}

	// Logging configuration
	if level := os.Getenv("LT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("LT_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	// Validation configuration
	if maxLen := os.Getenv("LT_VALIDATION_PROFILE_NAME_MAX"); maxLen != "" {
		c.Validation.ProfileNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.ProfileNameMaxLength)
	}

	// Display configuration
	if width := os.Getenv("LT_DISPLAY_SUMMARY_WIDTH"); width != "" {
		c.Display.SummaryWidth = ParseIntWithFallback(width, c.Display.SummaryWidth)
	}
	if tz := os.Getenv("LT_DISPLAY_TIMEZONE"); tz != "" {
		c.Display.TimeZone = tz
	}

	// Notify configuration
	if desktop := os.Getenv("LT_NOTIFY_DESKTOP"); desktop != "" {
		c.Notify.Desktop = ParseBoolWithFallback(desktop, c.Notify.Desktop)
	}

	// Application configuration
	if timeout := os.Getenv("LT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("LT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}

	// Validate mirror configuration
	if c.Mirror.Timeout <= 0 {
		return &ConfigError{Field: "mirror.timeout", Message: "mirror timeout must be positive"}
	}

	// Validate directory configuration
	if c.Directory.Timeout <= 0 {
		return &ConfigError{Field: "directory.timeout", Message: "directory timeout must be positive"}
	}

	// Validate logging configuration
	if !logging.ValidLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: "unknown log level " + strconv.Quote(c.Logging.Level)}
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return &ConfigError{Field: "logging.format", Message: "log format must be text, json or logfmt"}
	}

	// Validate validation configuration
	if c.Validation.ProfileNameMaxLength < 1 {
		return &ConfigError{Field: "validation.profile_name_max_length", Message: "profile name maximum length must be at least 1"}
	}

	// Validate display configuration
	if c.Display.SummaryWidth < 10 {
		return &ConfigError{Field: "display.summary_width", Message: "summary width must be at least 10"}
	}
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "display.time_zone", Message: "unknown time zone " + strconv.Quote(c.Display.TimeZone)}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
