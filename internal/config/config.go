package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/logging"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

// Storage backends.
const (
	BackendJSON   = "json"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds tada settings from ~/.tada/config.yaml plus TADA_* overrides.
type Config struct {
	Backend      string       `yaml:"backend"`
	DataDir      string       `yaml:"data_dir"`
	DeletePolicy string       `yaml:"delete_policy"` // cascade | reassign
	Theme        string       `yaml:"theme"`         // classic | neon | mono
	LogLevel     string       `yaml:"log_level"`
	Backup       BackupConfig `yaml:"backup"`
}

// BackupConfig drives `tada backup`.
type BackupConfig struct {
	Dir   string `yaml:"dir"`
	Keep  int    `yaml:"keep"`
	Every string `yaml:"every"` // Go duration, empty means one-shot
}

// Dir returns ~/.tada.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// DefaultPath is the config file location unless TADA_CONFIG says otherwise.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("TADA_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultConfig() *Config {
	cfg := &Config{
		Backend:      BackendJSON,
		DeletePolicy: "cascade",
		Theme:        "classic",
		LogLevel:     "warn",
		Backup:       BackupConfig{Keep: 10},
	}
	if dir, err := Dir(); err == nil {
		cfg.DataDir = filepath.Join(dir, "data")
		cfg.Backup.Dir = filepath.Join(dir, "backups")
	}
	return cfg
}

// Load reads path (a missing file means defaults) and applies env overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("TADA_BACKEND")); v != "" {
		c.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_DELETE_POLICY")); v != "" {
		c.DeletePolicy = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TADA_BACKUP_KEEP")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backup.Keep = n
		}
	}
}

// Validate normalizes case and rejects unknown enum values.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.DeletePolicy = strings.ToLower(strings.TrimSpace(c.DeletePolicy))

	switch c.Backend {
	case BackendJSON, BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: backend %q (want json, badger, sqlite or memory)", ErrInvalid, c.Backend)
	}
	switch c.DeletePolicy {
	case "", "cascade", "reassign":
	default:
		return fmt.Errorf("%w: delete_policy %q (want cascade or reassign)", ErrInvalid, c.DeletePolicy)
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("%w: backup.keep must not be negative", ErrInvalid)
	}
	if _, err := c.BackupInterval(); err != nil {
		return fmt.Errorf("%w: backup.every: %v", ErrInvalid, err)
	}
	return nil
}

// BackupInterval parses Backup.Every. Zero means no schedule.
func (c *Config) BackupInterval() (time.Duration, error) {
	if strings.TrimSpace(c.Backup.Every) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Backup.Every)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative interval %s", d)
	}
	return d, nil
}
