package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

// SetFileValue writes section.key into the TOML file at path, creating the
// file when it does not exist. A nil value removes the key, and a section
// left empty is dropped. Keys the loader does not know are preserved.
func SetFileValue(path, section, key string, value interface{}) error {
	if path == "" {
		return &ConfigError{Field: "config", Message: "no configuration file to update"}
	}

	doc := make(map[string]interface{})
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid %s: %v", path, err)}
		}
	} else if !os.IsNotExist(err) {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}

	table, _ := doc[section].(map[string]interface{})
	if table == nil {
		table = make(map[string]interface{})
	}
	if value == nil {
		delete(table, key)
	} else {
		table[key] = value
	}
	if len(table) == 0 {
		delete(doc, section)
	} else {
		doc[section] = table
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
