// Package config provides configuration management for qrlabel projects.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the directory name for qrlabel metadata
	Dir = ".qrlabel"
	// ConfigFile is the filename for the configuration
	ConfigFile = "config.yaml"
)

// ErrNotInitialized is returned by Load when no configuration file exists
var ErrNotInitialized = errors.New("qrlabel not initialized: run 'qrlabel init' first")

// Manager handles qrlabel configuration
type Manager struct {
	projectRoot string
	configPath  string
}

// NewManager creates a new configuration manager
func NewManager(projectRoot string) *Manager {
	return &Manager{
		projectRoot: projectRoot,
		configPath:  filepath.Join(projectRoot, Dir, ConfigFile),
	}
}

// Load reads the configuration from disk. Values missing from the file keep
// their defaults; environment overrides are applied last.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", m.configPath, err)
	}

	applyDefaults(cfg)
	ApplyEnv(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults, with
// environment overrides, when the project is not initialized.
func (m *Manager) LoadOrDefault() (*Config, error) {
	cfg, err := m.Load()
	if errors.Is(err, ErrNotInitialized) {
		cfg = DefaultConfig()
		ApplyEnv(cfg)
		return cfg, ValidateConfig(cfg)
	}
	return cfg, err
}

// Save writes the configuration to disk
func (m *Manager) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// IsInitialized checks if qrlabel has been initialized in the project
func (m *Manager) IsInitialized() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// GetProjectRoot returns the project root directory
func (m *Manager) GetProjectRoot() string {
	return m.projectRoot
}

// GetDir returns the .qrlabel directory path
func (m *Manager) GetDir() string {
	return filepath.Join(m.projectRoot, Dir)
}

// GetConfigPath returns the configuration file path
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// StorePath resolves the configured store path. Relative paths live in the
// .qrlabel directory of an initialized project and in the project root
// otherwise, which is where the legacy last_numbers.json sits.
func (m *Manager) StorePath(cfg *Config) string {
	p := cfg.Store.Path
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if m.IsInitialized() {
		return filepath.Join(m.GetDir(), p)
	}
	return filepath.Join(m.projectRoot, p)
}

// FindProjectRoot searches for the project root by looking for .qrlabel
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, Dir, ConfigFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("not in a qrlabel project (no %s directory found)", Dir)
}

// applyDefaults fills fields that a config file explicitly blanked
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = def.Store.Driver
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.MCP.Transport.Type == "" {
		cfg.MCP.Transport.Type = def.MCP.Transport.Type
	}
}
