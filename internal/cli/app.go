package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Burh0n/LogiTrack-Pro/internal/api"
	"github.com/Burh0n/LogiTrack-Pro/internal/config"
	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	configPath  string
	registry    *CommandRegistry
	out         io.Writer
	in          *bufio.Reader
}

// NewApp creates a new CLI application instance with default configuration
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with dependency injection
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		configPath:  config.DefaultConfigPath(),
		out:         os.Stdout,
		in:          bufio.NewReader(os.Stdin),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithIO redirects prompts and output, mainly for tests.
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.in = bufio.NewReader(in)
	a.out = out
	return a
}

// WithConfigPath sets the file that persistent settings are written to.
func (a *App) WithConfigPath(path string) *App {
	a.configPath = path
	return a
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (a *App) confirm(question string) bool {
	a.printf("%s [y/N]: ", question)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(trimLine(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func trimLine(line string) string {
	return strings.TrimSpace(strings.TrimRight(line, "\r\n"))
}

var taskFields = []string{
	domain.FieldDriver,
	domain.FieldCompany,
	domain.FieldDate,
	domain.FieldTime,
	domain.FieldStatus,
	domain.FieldAction,
}

// parseAssignments reads field=value arguments such as driver=Jim or
// "action=Deliver pallets". A value may also be a combined date-time
// ("at=2024-03-05T10:00"), which sets both date and time.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, errors.NewInvalidInputError("argument", arg, "expected field=value")
		}

		if key == "at" {
			date, clock := domain.SplitScheduledAt(strings.TrimSpace(value))
			out[domain.FieldDate] = date
			out[domain.FieldTime] = clock
			continue
		}
		if !isTaskField(key) {
			return nil, errors.NewInvalidInputError("argument", arg,
				"unknown field "+key+" (expected one of "+strings.Join(taskFields, ", ")+", at)")
		}
		if key == domain.FieldStatus {
			if status, ok := domain.ParseStatus(value); ok {
				value = string(status)
			}
		}
		out[key] = value
	}
	return out, nil
}

func isTaskField(key string) bool {
	for _, f := range taskFields {
		if f == key {
			return true
		}
	}
	return false
}

// sortedKeys keeps form changes in a stable order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// palette picks table and message styles from the stored theme preference.
func (a *App) palette(ctx context.Context) palette {
	dark, err := a.businessAPI.DarkMode(ctx)
	if err != nil {
		return newPalette(false)
	}
	return newPalette(dark)
}
