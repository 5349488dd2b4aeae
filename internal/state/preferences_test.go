package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesStore_FirstLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	store := NewPreferencesStore(path)

	prefs, err := store.Load()
	require.NoError(t, err)
	assert.False(t, prefs.AutoSwitch.Enabled)
	assert.Equal(t, ModeSystem, prefs.AutoSwitch.Mode)
	assert.True(t, prefs.Notifications)
	assert.NotNil(t, prefs.EnabledApps)
	assert.NotNil(t, prefs.RecentThemes)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPreferences_PushRecent(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		push    []string
		want    []string
	}{
		{
			name: "prepend to empty",
			push: []string{"a"},
			want: []string{"a"},
		},
		{
			name: "most recent first",
			push: []string{"a", "b", "c"},
			want: []string{"c", "b", "a"},
		},
		{
			name: "re-push moves to front without duplicate",
			push: []string{"a", "b", "a", "c"},
			want: []string{"c", "a", "b"},
		},
		{
			name:    "existing entry deduplicated",
			initial: []string{"x", "y"},
			push:    []string{"y"},
			want:    []string{"y", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPreferences()
			p.RecentThemes = append(p.RecentThemes, tt.initial...)
			for _, id := range tt.push {
				p.PushRecent(id)
			}
			assert.Equal(t, tt.want, p.RecentThemes)
		})
	}
}

func TestPreferences_PushRecentBounded(t *testing.T) {
	p := DefaultPreferences()
	for i := 0; i < MaxRecentThemes+5; i++ {
		p.PushRecent(fmt.Sprintf("theme-%d", i))
	}
	require.Len(t, p.RecentThemes, MaxRecentThemes)
	assert.Equal(t, fmt.Sprintf("theme-%d", MaxRecentThemes+4), p.RecentThemes[0])
}

func TestPreferences_SetAppEnabled(t *testing.T) {
	p := DefaultPreferences()

	p.SetAppEnabled("kitty", true)
	p.SetAppEnabled("waybar", true)
	p.SetAppEnabled("kitty", true) // idempotent
	assert.Equal(t, []string{"kitty", "waybar"}, p.EnabledApps)
	assert.True(t, p.AppEnabled("kitty"))

	p.SetAppEnabled("kitty", false)
	assert.Equal(t, []string{"waybar"}, p.EnabledApps)
	assert.False(t, p.AppEnabled("kitty"))
}

func TestPreferencesStore_UpdateNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	store := NewPreferencesStore(path)

	prefs, err := store.Update(func(p *Preferences) {
		p.AutoSwitch.Mode = "lunar" // unknown mode
		p.EnabledApps = nil
	})
	require.NoError(t, err)
	assert.Equal(t, ModeSystem, prefs.AutoSwitch.Mode)
	assert.NotNil(t, prefs.EnabledApps)
}

func TestPreferencesStore_ExternalEditSurvivesLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	doc := `{"defaultDarkTheme": "nord", "recentThemes": null, "autoSwitch": {"enabled": true, "mode": "schedule"}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	prefs, err := NewPreferencesStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "nord", prefs.DefaultDarkTheme)
	assert.True(t, prefs.AutoSwitch.Enabled)
	assert.Equal(t, ModeSchedule, prefs.AutoSwitch.Mode)
	assert.NotNil(t, prefs.RecentThemes)
}
