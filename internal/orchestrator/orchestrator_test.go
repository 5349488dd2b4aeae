package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/themectl/internal/activation"
	"github.com/bnema/themectl/internal/adapter"
	"github.com/bnema/themectl/internal/fanout"
	"github.com/bnema/themectl/internal/state"
	"github.com/bnema/themectl/internal/theme"
)

// mockNotifier implements adapter.Notifier for testing.
type mockNotifier struct {
	name  string
	ok    bool
	calls int
	roots []string
}

func (m *mockNotifier) Descriptor() adapter.Descriptor {
	return adapter.Descriptor{AppName: m.name}
}

func (m *mockNotifier) Notify(ctx context.Context, artifactsRoot string, log zerolog.Logger) bool {
	m.calls++
	m.roots = append(m.roots, artifactsRoot)
	return m.ok
}

// mockRecorder implements Recorder for testing.
type mockRecorder struct {
	records []ApplyRecord
}

func (m *mockRecorder) RecordApply(rec ApplyRecord) {
	m.records = append(m.records, rec)
}

type fixture struct {
	orch     *Orchestrator
	prefs    *state.PreferencesStore
	state    *state.StateStore
	notifier *mockNotifier
	recorder *mockRecorder
	bundled  string
	pointer  string
}

func writeBundle(t *testing.T, root, id string) string {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0755))

	meta := fmt.Sprintf(`{
		"name": "%s",
		"colors": {
			"background": "#2e3440", "foreground": "#d8dee9",
			"cursor": "#d8dee9", "selection": "#434c5e",
			"color0": "#3b4252", "color1": "#bf616a",
			"color2": "#a3be8c", "color3": "#ebcb8b",
			"color4": "#81a1c1", "color5": "#b48ead",
			"color6": "#88c0d0", "color7": "#e5e9f0",
			"color8": "#4c566a", "color9": "#bf616a",
			"color10": "#a3be8c", "color11": "#ebcb8b",
			"color12": "#81a1c1", "color13": "#b48ead",
			"color14": "#8fbcbb", "color15": "#eceff4",
			"accent": "#88c0d0", "border": "#4c566a"
		}
	}`, id)
	require.NoError(t, os.WriteFile(filepath.Join(dir, theme.MetadataFile), []byte(meta), 0644))
	return dir
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bundled := t.TempDir()
	work := t.TempDir()
	pointer := filepath.Join(work, "current")

	themes := theme.NewStore(bundled, filepath.Join(work, "custom"))
	stateStore := state.NewStateStore(filepath.Join(work, "state.json"))
	prefsStore := state.NewPreferencesStore(filepath.Join(work, "preferences.json"))

	notifier := &mockNotifier{name: "kitty", ok: true}
	reg := adapter.NewRegistry()
	reg.Register(notifier)

	_, err := prefsStore.Update(func(p *state.Preferences) {
		p.SetAppEnabled("kitty", true)
	})
	require.NoError(t, err)

	recorder := &mockRecorder{}
	activator := activation.NewManager(themes, stateStore, prefsStore, pointer, zerolog.Nop())

	orch := New(Options{
		Activator:   activator,
		Fanout:      fanout.New(reg, time.Second, zerolog.Nop()),
		Prefs:       prefsStore,
		State:       stateStore,
		Themes:      themes,
		HookTimeout: time.Second,
		Recorder:    recorder,
		Logger:      zerolog.Nop(),
	})

	return &fixture{
		orch:     orch,
		prefs:    prefsStore,
		state:    stateStore,
		notifier: notifier,
		recorder: recorder,
		bundled:  bundled,
		pointer:  pointer,
	}
}

func TestApply_Success(t *testing.T) {
	f := newFixture(t)
	writeBundle(t, f.bundled, "nord")

	outcome, err := f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, "nord", outcome.Theme.ID)
	require.Len(t, outcome.Fanout.Results, 1)
	assert.Zero(t, outcome.Fanout.Failed())

	// Adapters read through the pointer, not the bundle directory.
	require.Len(t, f.notifier.roots, 1)
	assert.Equal(t, f.pointer, f.notifier.roots[0])

	require.Len(t, f.recorder.records, 1)
	rec := f.recorder.records[0]
	assert.True(t, rec.OK)
	assert.Equal(t, "nord", rec.ThemeID)
	assert.Equal(t, TriggerManual, rec.Trigger)
	assert.Equal(t, outcome.Fanout.RunID, rec.RunID)
}

func TestApply_UnknownThemeIsFatal(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.Apply(context.Background(), "missing", TriggerManual)
	require.Error(t, err)
	assert.ErrorIs(t, err, theme.ErrNotFound)

	// Nothing was fanned out, but the failure is journaled.
	assert.Zero(t, f.notifier.calls)
	require.Len(t, f.recorder.records, 1)
	assert.False(t, f.recorder.records[0].OK)
	assert.NotEmpty(t, f.recorder.records[0].FatalError)
}

func TestApply_ReapplyIsForceRefresh(t *testing.T) {
	f := newFixture(t)
	writeBundle(t, f.bundled, "nord")

	_, err := f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)
	_, err = f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)

	// Applying the current theme again still fans out.
	assert.Equal(t, 2, f.notifier.calls)
}

func TestApply_AdapterFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.ok = false
	writeBundle(t, f.bundled, "nord")

	outcome, err := f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Fanout.Failed())

	// The activation itself committed.
	st, err := f.state.Load()
	require.NoError(t, err)
	assert.Equal(t, "nord", st.CurrentTheme)
}

func TestApply_HookFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	writeBundle(t, f.bundled, "nord")

	script := filepath.Join(t.TempDir(), "hook.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho oops >&2\nexit 3\n"), 0755))
	_, err := f.prefs.Update(func(p *state.Preferences) {
		p.HookScript = script
	})
	require.NoError(t, err)

	outcome, err := f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)
	require.NotNil(t, outcome.Hook)
	assert.False(t, outcome.Hook.OK())
	assert.Equal(t, 3, outcome.Hook.ExitCode)
	assert.Contains(t, outcome.Hook.Stderr, "oops")
}

func TestApply_HookReceivesThemeID(t *testing.T) {
	f := newFixture(t)
	writeBundle(t, f.bundled, "nord")

	script := filepath.Join(t.TempDir(), "hook.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"applied $1\"\n"), 0755))
	_, err := f.prefs.Update(func(p *state.Preferences) {
		p.HookScript = script
	})
	require.NoError(t, err)

	outcome, err := f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)
	require.NotNil(t, outcome.Hook)
	assert.True(t, outcome.Hook.OK())
	assert.Contains(t, outcome.Hook.Stdout, "applied nord")
}

func TestApply_HookTimeout(t *testing.T) {
	f := newFixture(t)
	writeBundle(t, f.bundled, "nord")

	script := filepath.Join(t.TempDir(), "hook.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 10\n"), 0755))
	_, err := f.prefs.Update(func(p *state.Preferences) {
		p.HookScript = script
	})
	require.NoError(t, err)

	f.orch.opts.HookTimeout = 50 * time.Millisecond
	outcome, err := f.orch.Apply(context.Background(), "nord", TriggerManual)
	require.NoError(t, err)
	require.NotNil(t, outcome.Hook)
	assert.True(t, outcome.Hook.TimedOut)
}

func TestApply_ChangedCallbackFires(t *testing.T) {
	f := newFixture(t)
	writeBundle(t, f.bundled, "nord")

	var changedTo string
	f.orch.opts.Changed = func(themeID string) { changedTo = themeID }

	_, err := f.orch.Apply(context.Background(), "nord", TriggerSchedule)
	require.NoError(t, err)
	assert.Equal(t, "nord", changedTo)
}

func TestPickWallpaper(t *testing.T) {
	bundled := t.TempDir()
	dir := writeBundle(t, bundled, "papered")
	wp := filepath.Join(dir, "wallpapers")
	require.NoError(t, os.MkdirAll(wp, 0755))
	for _, name := range []string{"forest-dark.png", "forest-light.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(wp, name), nil, 0644))
	}

	themes := theme.NewStore(bundled, t.TempDir())
	th, err := themes.Get("papered")
	require.NoError(t, err)

	path, ok := pickWallpaper(th, true)
	require.True(t, ok)
	assert.Contains(t, path, "dark")

	path, ok = pickWallpaper(th, false)
	require.True(t, ok)
	assert.Contains(t, path, "light")
}

func TestPickWallpaper_FallsBackToFirst(t *testing.T) {
	bundled := t.TempDir()
	dir := writeBundle(t, bundled, "papered")
	wp := filepath.Join(dir, "wallpapers")
	require.NoError(t, os.MkdirAll(wp, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(wp, "forest.png"), nil, 0644))

	themes := theme.NewStore(bundled, t.TempDir())
	th, err := themes.Get("papered")
	require.NoError(t, err)

	path, ok := pickWallpaper(th, true)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(wp, "forest.png"), path)
}

func TestPickWallpaper_NoWallpapers(t *testing.T) {
	bundled := t.TempDir()
	writeBundle(t, bundled, "plain")
	themes := theme.NewStore(bundled, t.TempDir())
	th, err := themes.Get("plain")
	require.NoError(t, err)

	_, ok := pickWallpaper(th, true)
	assert.False(t, ok)
}
