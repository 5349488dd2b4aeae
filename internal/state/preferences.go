package state

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"
)

// MaxRecentThemes bounds the recent-theme history.
const MaxRecentThemes = 10

// Auto-switch modes.
const (
	ModeSystem   = "system"
	ModeSchedule = "schedule"
)

// AutoSwitch controls automatic theme switching.
type AutoSwitch struct {
	Enabled bool   `json:"enabled"`
	Mode    string `json:"mode"`
}

// Schedule holds the fixed switch boundaries as "HH:MM" strings.
type Schedule struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// Preferences is the singleton user preferences document. Defaults are
// filled at load time so downstream code never re-derives fallbacks.
type Preferences struct {
	DefaultLightTheme string     `json:"defaultLightTheme"`
	DefaultDarkTheme  string     `json:"defaultDarkTheme"`
	EnabledApps       []string   `json:"enabledApps"`
	RecentThemes      []string   `json:"recentThemes"`
	AutoSwitch        AutoSwitch `json:"autoSwitch"`
	Schedule          Schedule   `json:"schedule"`
	Notifications     bool       `json:"notifications"`
	DynamicWallpaper  bool       `json:"dynamicWallpaper"`
	HookScript        string     `json:"hookScript,omitempty"`
}

// DefaultPreferences returns a fully-populated preferences document.
func DefaultPreferences() *Preferences {
	return &Preferences{
		EnabledApps:   []string{},
		RecentThemes:  []string{},
		AutoSwitch:    AutoSwitch{Enabled: false, Mode: ModeSystem},
		Notifications: true,
	}
}

// normalize repairs fields that external edits may have broken.
func (p *Preferences) normalize() {
	if p.EnabledApps == nil {
		p.EnabledApps = []string{}
	}
	if p.RecentThemes == nil {
		p.RecentThemes = []string{}
	}
	if p.AutoSwitch.Mode != ModeSchedule {
		p.AutoSwitch.Mode = ModeSystem
	}
	if len(p.RecentThemes) > MaxRecentThemes {
		p.RecentThemes = p.RecentThemes[:MaxRecentThemes]
	}
}

// AppEnabled reports whether the named app is in the enabled set.
func (p *Preferences) AppEnabled(appName string) bool {
	return slices.Contains(p.EnabledApps, appName)
}

// SetAppEnabled adds or removes an app from the enabled set.
func (p *Preferences) SetAppEnabled(appName string, enabled bool) {
	if enabled {
		if !slices.Contains(p.EnabledApps, appName) {
			p.EnabledApps = append(p.EnabledApps, appName)
		}
		return
	}
	p.EnabledApps = slices.DeleteFunc(p.EnabledApps, func(s string) bool { return s == appName })
}

// PushRecent records themeID as the most recent theme: remove it if
// already present, prepend, truncate to MaxRecentThemes.
func (p *Preferences) PushRecent(themeID string) {
	p.RecentThemes = slices.DeleteFunc(p.RecentThemes, func(s string) bool { return s == themeID })
	p.RecentThemes = append([]string{themeID}, p.RecentThemes...)
	if len(p.RecentThemes) > MaxRecentThemes {
		p.RecentThemes = p.RecentThemes[:MaxRecentThemes]
	}
}

// PreferencesStore owns the preferences document.
type PreferencesStore struct {
	mu   sync.Mutex
	path string
}

// NewPreferencesStore creates a store for the document at path.
func NewPreferencesStore(path string) *PreferencesStore {
	return &PreferencesStore{path: path}
}

// Load returns the current preferences, created with defaults on first run.
func (s *PreferencesStore) Load() (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Update applies fn under the store lock and persists the result.
func (s *PreferencesStore) Update(fn func(*Preferences)) (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	fn(prefs)
	prefs.normalize()
	if err := writeDocument(s.path, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *PreferencesStore) loadLocked() (*Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading preferences document: %w", err)
		}
		prefs := DefaultPreferences()
		if err := writeDocument(s.path, prefs); err != nil {
			return nil, err
		}
		return prefs, nil
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("parsing preferences document: %w", err)
	}
	prefs.normalize()
	return prefs, nil
}
