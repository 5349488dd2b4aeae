package appearance

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const (
	detectorNameGtk = "gtk-settings"
	priorityGtk     = 50
)

// GtkSettingsDetector reads gtk-application-prefer-dark-theme from the
// GTK3 settings.ini. Covers desktops where gsettings is unavailable.
type GtkSettingsDetector struct{}

// NewGtkSettingsDetector creates a new settings.ini-based detector.
func NewGtkSettingsDetector() *GtkSettingsDetector {
	return &GtkSettingsDetector{}
}

// Name implements Detector.
func (*GtkSettingsDetector) Name() string {
	return detectorNameGtk
}

// Priority implements Detector.
func (*GtkSettingsDetector) Priority() int {
	return priorityGtk
}

func settingsINIPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gtk-3.0", "settings.ini")
}

// Available implements Detector.
func (*GtkSettingsDetector) Available() bool {
	path := settingsINIPath()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Detect implements Detector.
func (*GtkSettingsDetector) Detect() (prefersDark, ok bool) {
	f, err := os.Open(settingsINIPath())
	if err != nil {
		return false, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(key) != "gtk-application-prefer-dark-theme" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
	}
	return false, false
}
