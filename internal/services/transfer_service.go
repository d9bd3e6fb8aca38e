package services

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// DefaultExportFileName is the file name offered for backups.
const DefaultExportFileName = "task_manager_data.json"

const exportSchemaURL = "https://logitrack.local/schema/export.schema.json"

//go:embed schema/export.schema.json
var exportSchemaJSON string

var (
	exportSchemaOnce sync.Once
	exportSchema     *jsonschema.Schema
	exportSchemaErr  error
)

func compiledExportSchema() (*jsonschema.Schema, error) {
	exportSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(exportSchemaURL, strings.NewReader(exportSchemaJSON)); err != nil {
			exportSchemaErr = err
			return
		}
		exportSchema, exportSchemaErr = compiler.Compile(exportSchemaURL)
	})
	return exportSchema, exportSchemaErr
}

// transferServiceImpl implements the TransferService interface
type transferServiceImpl struct {
	s      *session
	mapper *domain.DocumentMapper
}

func newTransferService(s *session) *transferServiceImpl {
	return &transferServiceImpl{s: s, mapper: domain.NewDocumentMapper()}
}

// ExportAll serializes every profile and its stored tasks. It never writes.
func (t *transferServiceImpl) ExportAll(ctx context.Context) ([]byte, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	profiles, err := t.s.readProfiles(ctx)
	if err != nil {
		return nil, err
	}

	doc := domain.ExportDocument{
		Profiles: profiles,
		Tasks:    make(map[string][]domain.ExportTask, len(profiles)),
	}
	for _, profile := range profiles {
		tasks, err := t.s.readTasks(ctx, profile.Name)
		if err != nil {
			if !errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
				return nil, err
			}
			t.s.warnCorrupt(err)
			tasks = nil
		}
		doc.Tasks[profile.Name] = t.mapper.ToExportSlice(tasks)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode export")
	}
	return data, nil
}

// ImportAll replaces the stored profiles and the task collections named in
// document. Keys the document does not mention are left alone. The active
// profile is cleared.
func (t *transferServiceImpl) ImportAll(ctx context.Context, document []byte) (*ImportResult, error) {
	doc, err := parseExportDocument(document)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(doc.Profiles))
	for _, p := range doc.Profiles {
		profile := domain.NewProfile(p.Name)
		if domain.IndexOf(profiles, profile.Name) >= 0 {
			return nil, errors.NewInvalidFormatError(fmt.Sprintf("duplicate profile %q", profile.Name), nil)
		}
		profiles = append(profiles, profile)
	}

	collections := make(map[string][]domain.Task, len(doc.Tasks))
	count := 0
	for key, records := range doc.Tasks {
		// Collections follow the same name normalization as profiles.
		name := domain.NewProfile(key).Name
		if name == "" {
			return nil, errors.NewInvalidFormatError("task list with a blank profile name", nil)
		}
		if _, dup := collections[name]; dup {
			return nil, errors.NewInvalidFormatError(fmt.Sprintf("duplicate task list for profile %q", name), nil)
		}
		collections[name] = t.mapper.FromExportSlice(records)
		count += len(records)
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	err = t.s.repo.Batch(ctx, func(tx sqlite.Tx) error {
		if err := repository.SaveJSONTx(tx, repository.KeyProfiles, profiles); err != nil {
			return err
		}
		for name, tasks := range collections {
			if err := repository.SaveJSONTx(tx, repository.TasksKey(name), tasks); err != nil {
				return err
			}
		}
		return tx.Remove(repository.KeyCurrentProfile)
	})
	if err != nil {
		return nil, err
	}

	t.s.profiles = profiles
	t.s.active = ""
	t.s.tasks = []domain.Task{}

	logging.L().Info("imported data", "profiles", len(profiles), "tasks", count)
	t.s.publish(events.DataImported, "")
	t.s.publish(events.ProfilesChanged, "")
	t.s.publish(events.ActiveChanged, "")
	t.s.publish(events.ListUpdated, "")
	notify.Success(t.s.notifier, "Data imported successfully!")
	return &ImportResult{Profiles: len(profiles), Tasks: count}, nil
}

// ExportToFile writes the export document to path atomically.
func (t *transferServiceImpl) ExportToFile(ctx context.Context, path string) error {
	data, err := t.ExportAll(ctx)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.WrapError(err, errors.ErrorTypePermission, fmt.Sprintf("Failed to write file: %v", err))
	}
	notify.Success(t.s.notifier, "Data exported successfully!")
	return nil
}

// ImportFromFile reads a backup from path and imports it.
func (t *transferServiceImpl) ImportFromFile(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypePermission, fmt.Sprintf("Failed to read file: %v", err))
	}
	return t.ImportAll(ctx, data)
}

// parseExportDocument checks that document is a JSON object carrying both
// top-level properties and that it matches the export schema.
func parseExportDocument(document []byte) (*domain.ExportDocument, error) {
	var raw interface{}
	if err := json.Unmarshal(document, &raw); err != nil {
		return nil, errors.NewInvalidFormatError("not valid JSON", err)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.NewInvalidFormatError("expected a JSON object", nil)
	}
	for _, key := range []string{"profiles", "tasks"} {
		if _, ok := obj[key]; !ok {
			return nil, errors.NewInvalidFormatError(fmt.Sprintf("missing %q", key), nil)
		}
	}

	schema, err := compiledExportSchema()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "export schema failed to compile")
	}
	if err := schema.Validate(raw); err != nil {
		return nil, errors.NewInvalidFormatError(schemaReason(err), err)
	}

	var doc domain.ExportDocument
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, errors.NewInvalidFormatError("unexpected document shape", err)
	}
	return &doc, nil
}

// schemaReason flattens a schema failure into one line.
func schemaReason(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var parts []string
	collectSchemaErrors(ve, &parts)
	if len(parts) == 0 {
		return ve.Message
	}
	return strings.Join(parts, "; ")
}

func collectSchemaErrors(err *jsonschema.ValidationError, parts *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*parts = append(*parts, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, parts)
	}
}
