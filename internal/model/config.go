package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Storage backend names accepted in StorageConfig.Backend.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// DefaultStorageKey is the key the task collection is stored under.
const DefaultStorageKey = "todoTasks"

// StorageConfig selects and configures the key-value storage backend.
type StorageConfig struct {
	// Backend is one of "sqlite", "keyring" or "memory".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyringDir is where the keyring file backend keeps its encrypted
	// files. Empty means ~/.config/tasklist/keyring.
	KeyringDir string `mapstructure:"keyring_dir" yaml:"keyring_dir"`

	// Key is the storage key holding the serialized collection.
	Key string `mapstructure:"key" yaml:"key"`
}

// LogConfig holds logger settings. An empty Path disables logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// Categories are offered in the add form and shown as filter tabs.
	Categories []string `mapstructure:"categories" yaml:"categories"`

	// DefaultFilter is the tab selected at startup ("all" or a category).
	DefaultFilter string `mapstructure:"default_filter" yaml:"default_filter"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// configDir returns ~/.config/tasklist, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tasklist")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasklist/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultCategories returns the categories offered when none are configured.
func DefaultCategories() []string {
	return []string{CategoryBraveBits, CategoryHREM, CategoryQE}
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(configDir(), "tasks.db"),
			Key:     DefaultStorageKey,
		},
		Log: LogConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			Categories:    DefaultCategories(),
			DefaultFilter: "all",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.key", def.Storage.Key)
	v.SetDefault("storage.keyring_dir", def.Storage.KeyringDir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("display.categories", def.Display.Categories)
	v.SetDefault("display.default_filter", def.Display.DefaultFilter)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendKeyring, BackendMemory:
	default:
		return nil, fmt.Errorf("parsing config %s: unknown storage backend %q", path, cfg.Storage.Backend)
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = DefaultStorageKey
	}
	if len(cfg.Display.Categories) == 0 {
		cfg.Display.Categories = DefaultCategories()
	}
	if cfg.Display.DefaultFilter == "" {
		cfg.Display.DefaultFilter = "all"
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
