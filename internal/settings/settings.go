// Package settings keeps the till's user-facing preferences in a YAML file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/bucketpos/internal/apperr"
)

// Settings is the persisted preference set.
type Settings struct {
	DBLocation    string `yaml:"db_location"`
	Language      string `yaml:"language"`
	Currency      string `yaml:"currency"`
	AutoUpdates   bool   `yaml:"auto_updates"`
	EnableBackups bool   `yaml:"enable_backups"`
}

// Defaults returns the settings used when no file exists yet.
func Defaults(dbLocation string) Settings {
	return Settings{
		DBLocation:  dbLocation,
		Language:    "de",
		Currency:    "EUR",
		AutoUpdates: true,
	}
}

// Validate reports the first field that cannot be saved.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Language) == "" {
		return apperr.InvalidInput("language is required")
	}
	if strings.TrimSpace(s.Currency) == "" {
		return apperr.InvalidInput("currency is required")
	}
	return nil
}

// Manager owns the current settings and their file.
type Manager struct {
	mu      sync.RWMutex
	path    string
	current Settings
}

// Load reads settings from path. A missing or unparsable file yields
// defaults; the file is not written until the first Save.
func Load(path string, defaults Settings) *Manager {
	m := &Manager{path: path, current: defaults}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to read settings, using defaults", "path", path, "error", err)
		}
		return m
	}

	loaded := defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		slog.Warn("Failed to parse settings, using defaults", "path", path, "error", err)
		return m
	}
	m.current = loaded
	return m
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Save writes s to disk and then makes it current. On a write failure the
// previous settings stay in effect.
func (m *Manager) Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	m.current = s
	return nil
}
