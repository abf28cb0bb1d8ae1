// Package config handles loading tracker.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the per-project configuration file name.
const ProjectFile = "tracker.toml"

// ErrInvalidConfig is returned when a configuration file parses but carries
// values the tracker cannot run with.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the merged tracker.toml configuration.
type Config struct {
	Todo    Todo    `toml:"todo"`
	Version Version `toml:"version"`
	Storage Storage `toml:"storage"`
}

// Todo contains task vocabulary configuration.
type Todo struct {
	// Categories overrides the default category vocabulary.
	Categories []string `toml:"categories"`

	// Statuses overrides the default status vocabulary. Must include
	// "complete".
	Statuses []string `toml:"statuses"`

	// PriorityScale is a human-readable description of the 1-10 scale.
	PriorityScale string `toml:"priority-scale"`
}

// Version contains version ledger configuration.
type Version struct {
	// Initial seeds the ledger created on first use.
	Initial string `toml:"initial"`
}

// Storage contains storage directory configuration.
type Storage struct {
	// Dir overrides the storage directory. Relative paths resolve
	// against the project directory.
	Dir string `toml:"dir"`

	// LockTimeout bounds how long a mutation waits for the directory
	// lock, as a duration string. Empty or "0" blocks forever.
	LockTimeout string `toml:"lock-timeout"`
}

// LockTimeout parses the configured lock timeout. Zero means block forever.
func (c *Config) LockTimeout() (time.Duration, error) {
	value := strings.TrimSpace(c.Storage.LockTimeout)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: lock-timeout %q: %v", ErrInvalidConfig, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: lock-timeout %q is negative", ErrInvalidConfig, value)
	}
	return d, nil
}

// Load loads configuration from the project directory and the global config
// file. Returns an empty config if no config files exist.
func Load(projectPath string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectPath, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "trk", "trk.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Todo.Categories = mergeList(
		projectMeta.IsDefined("todo", "categories"), projectCfg.Todo.Categories,
		globalMeta.IsDefined("todo", "categories"), globalCfg.Todo.Categories)
	merged.Todo.Statuses = mergeList(
		projectMeta.IsDefined("todo", "statuses"), projectCfg.Todo.Statuses,
		globalMeta.IsDefined("todo", "statuses"), globalCfg.Todo.Statuses)
	merged.Todo.PriorityScale = mergeString(projectMeta.IsDefined("todo", "priority-scale"), projectCfg.Todo.PriorityScale, globalCfg.Todo.PriorityScale)
	merged.Version.Initial = mergeString(projectMeta.IsDefined("version", "initial"), projectCfg.Version.Initial, globalCfg.Version.Initial)
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Storage.LockTimeout = mergeString(projectMeta.IsDefined("storage", "lock-timeout"), projectCfg.Storage.LockTimeout, globalCfg.Storage.LockTimeout)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func mergeList(projectDefined bool, projectValue []string, globalDefined bool, globalValue []string) []string {
	if projectDefined {
		return append([]string(nil), projectValue...)
	}
	if globalDefined {
		return append([]string(nil), globalValue...)
	}
	return nil
}

// validate rejects vocabularies the tracker cannot run with. A configured
// status list must include "complete"; completion is not optional.
func validate(cfg *Config) error {
	if len(cfg.Todo.Statuses) > 0 {
		found := false
		for _, status := range cfg.Todo.Statuses {
			if status == "complete" {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: statuses must include %q", ErrInvalidConfig, "complete")
		}
	}
	if _, err := cfg.LockTimeout(); err != nil {
		return err
	}
	return nil
}
