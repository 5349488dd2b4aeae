// Package config provides configuration management for themectl with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for themectl.
// This is the application's own configuration, distinct from the user
// Preferences document managed by the state package.
type Config struct {
	Themes    ThemesConfig    `mapstructure:"themes" yaml:"themes"`
	Pointer   PointerConfig   `mapstructure:"pointer" yaml:"pointer"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler"`
	Notify    NotifyConfig    `mapstructure:"notify" yaml:"notify"`
	Hook      HookConfig      `mapstructure:"hook" yaml:"hook"`
	Wallpaper WallpaperConfig `mapstructure:"wallpaper" yaml:"wallpaper"`
	Location  LocationConfig  `mapstructure:"location" yaml:"location"`
	Journal   JournalConfig   `mapstructure:"journal" yaml:"journal"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ThemesConfig holds the theme bundle search roots.
type ThemesConfig struct {
	BundledDir string `mapstructure:"bundled_dir" yaml:"bundled_dir"`
	CustomDir  string `mapstructure:"custom_dir" yaml:"custom_dir"`
}

// PointerConfig holds the current-theme pointer location.
type PointerConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SchedulerConfig holds auto-switch scheduling configuration.
type SchedulerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	// AppearancePollInterval controls how often the OS appearance
	// detectors are re-queried while the daemon runs.
	AppearancePollInterval time.Duration `mapstructure:"appearance_poll_interval" yaml:"appearance_poll_interval"`
}

// NotifyConfig holds adapter notification configuration.
type NotifyConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// HookConfig holds user hook-script configuration.
type HookConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// WallpaperConfig holds the external wallpaper setter invocation.
// Command is executed as "<command> <image-path>".
type WallpaperConfig struct {
	Command string        `mapstructure:"command" yaml:"command"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LocationConfig holds coordinates for sunrise/sunset queries.
type LocationConfig struct {
	Latitude  float64 `mapstructure:"latitude" yaml:"latitude"`
	Longitude float64 `mapstructure:"longitude" yaml:"longitude"`
}

// JournalConfig holds the apply-journal database configuration.
type JournalConfig struct {
	Path       string `mapstructure:"path" yaml:"path"`
	MaxEntries int    `mapstructure:"max_entries" yaml:"max_entries"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Manager owns the viper instance and the loaded configuration.
type Manager struct {
	mu        sync.RWMutex
	viper     *viper.Viper
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a configuration manager rooted at the XDG config dir.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("THEMECTL")
	bindings := map[string]string{
		"themes.bundled_dir":      "THEMES_BUNDLED_DIR",
		"themes.custom_dir":       "THEMES_CUSTOM_DIR",
		"pointer.path":            "POINTER_PATH",
		"scheduler.tick_interval": "SCHEDULER_TICK_INTERVAL",
		"notify.timeout":          "NOTIFY_TIMEOUT",
		"hook.timeout":            "HOOK_TIMEOUT",
		"wallpaper.command":       "WALLPAPER_COMMAND",
		"location.latitude":       "LOCATION_LATITUDE",
		"location.longitude":      "LOCATION_LONGITUDE",
		"journal.path":            "JOURNAL_PATH",
		"logging.level":           "LOG_LEVEL",
		"logging.format":          "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "THEMECTL_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is not an error: defaults are written out instead.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	if err := m.setDefaults(); err != nil {
		return err
	}

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
			// Re-read so viper records the file it now has.
			if err := m.viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read created config file: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Journal.Path == "" {
		journalPath, err := GetJournalFile()
		if err != nil {
			return fmt.Errorf("failed to get journal path: %w", err)
		}
		config.Journal.Path = journalPath
	}

	m.config = config
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() {
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			return
		}
		m.mu.RLock()
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		cfg := m.config
		m.mu.RUnlock()
		for _, cb := range callbacks {
			cb(cfg)
		}
	})
	m.viper.WatchConfig()
}

// OnConfigChange registers a callback invoked after a successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	m.config = config
	return nil
}

func (m *Manager) createDefaultConfig() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		// Already exists is fine; viper raced another process.
		if _, statErr := os.Stat(configFile); statErr == nil {
			return nil
		}
		return err
	}
	return GenerateSchemaFile()
}

// GetConfigFile returns the path of the active config file.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}
