// Package config provides default configuration values for themectl.
package config

import (
	"path/filepath"
	"time"
)

// Default configuration constants
const (
	// Scheduler defaults
	defaultTickInterval       = time.Minute
	defaultAppearancePollRate = 10 * time.Second

	// Adapter notification defaults
	defaultNotifyTimeout = 5 * time.Second

	// Hook script defaults
	defaultHookTimeout = 30 * time.Second

	// Wallpaper setter defaults
	defaultWallpaperTimeout = 10 * time.Second

	// Journal defaults
	defaultJournalMaxEntries = 500
)

func (m *Manager) setDefaults() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}

	m.viper.SetDefault("themes.bundled_dir", filepath.Join(dirs.DataHome, "themes"))
	m.viper.SetDefault("themes.custom_dir", filepath.Join(dirs.DataHome, "custom-themes"))
	m.viper.SetDefault("pointer.path", filepath.Join(dirs.ConfigHome, "current"))

	m.viper.SetDefault("scheduler.tick_interval", defaultTickInterval)
	m.viper.SetDefault("scheduler.appearance_poll_interval", defaultAppearancePollRate)

	m.viper.SetDefault("notify.timeout", defaultNotifyTimeout)
	m.viper.SetDefault("hook.timeout", defaultHookTimeout)

	m.viper.SetDefault("wallpaper.command", "")
	m.viper.SetDefault("wallpaper.timeout", defaultWallpaperTimeout)

	m.viper.SetDefault("location.latitude", 0.0)
	m.viper.SetDefault("location.longitude", 0.0)

	m.viper.SetDefault("journal.max_entries", defaultJournalMaxEntries)

	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.format", "console")

	return nil
}
