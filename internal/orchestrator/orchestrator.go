// Package orchestrator coordinates a theme apply: activation, adapter
// fan-out, the user hook script and the wallpaper step, reporting one
// structured outcome. It is the single entry point every trigger source
// (CLI, schedule tick, appearance change) converges on.
package orchestrator

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/themectl/internal/activation"
	"github.com/bnema/themectl/internal/fanout"
	"github.com/bnema/themectl/internal/state"
	"github.com/bnema/themectl/internal/theme"
)

// Trigger identifies what initiated an apply.
type Trigger string

// Apply triggers.
const (
	TriggerManual     Trigger = "manual"
	TriggerSchedule   Trigger = "schedule"
	TriggerAppearance Trigger = "appearance"
)

// Outcome is the structured result of one apply. Everything after the
// activation itself is diagnostic detail: the theme is applied even when
// adapters, the hook or the wallpaper step failed.
type Outcome struct {
	Theme     *theme.Theme
	Fanout    fanout.Report
	Hook      *HookResult
	Wallpaper string
	Duration  time.Duration
}

// ApplyRecord is the journal row written for every apply attempt.
type ApplyRecord struct {
	RunID      string
	ThemeID    string
	Trigger    Trigger
	OK         bool
	FatalError string
	Fanout     fanout.Report
	Duration   time.Duration
}

// Recorder persists apply records. Implementations must not block the
// apply path for long; failures are logged, never surfaced.
type Recorder interface {
	RecordApply(rec ApplyRecord)
}

// Options wires the orchestrator's collaborators. Changed and Recorder
// are optional; everything else is required.
type Options struct {
	Activator *activation.Manager
	Fanout    *fanout.Fanout
	Prefs     *state.PreferencesStore
	State     *state.StateStore
	Themes    *theme.Store

	HookTimeout      time.Duration
	WallpaperCommand string
	WallpaperTimeout time.Duration

	// Changed is the GUI-shell signal: called with the new themeId after
	// every successful activation.
	Changed  func(themeID string)
	Recorder Recorder

	Logger zerolog.Logger
}

// Orchestrator implements the applyTheme entry point.
type Orchestrator struct {
	opts Options
	log  zerolog.Logger
}

// New creates an orchestrator.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		opts: opts,
		log:  opts.Logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Apply activates themeID and fans the change out to every enabled
// adapter. Activation errors are fatal and abort the call; every later
// step is best-effort and only degrades the outcome's diagnostics.
//
// Applying the already-current theme is not a no-op: fan-out still runs,
// which is how "force refresh" works.
func (o *Orchestrator) Apply(ctx context.Context, themeID string, trigger Trigger) (*Outcome, error) {
	start := time.Now()

	t, err := o.opts.Activator.Activate(themeID)
	if err != nil {
		o.record(ApplyRecord{
			ThemeID:    themeID,
			Trigger:    trigger,
			OK:         false,
			FatalError: err.Error(),
			Duration:   time.Since(start),
		})
		return nil, err
	}

	if o.opts.Changed != nil {
		o.opts.Changed(t.ID)
	}

	prefs, err := o.opts.Prefs.Load()
	if err != nil {
		// Activation is committed; degrade to an empty enabled set.
		o.log.Warn().Err(err).Msg("loading preferences after activation failed")
		prefs = state.DefaultPreferences()
	}

	outcome := &Outcome{Theme: t}

	// Adapters read the artifacts through the pointer, never the raw
	// theme directory.
	outcome.Fanout = o.opts.Fanout.Notify(ctx, o.opts.Activator.PointerPath(), prefs.EnabledApps)

	if script := strings.TrimSpace(prefs.HookScript); script != "" {
		res := runHook(ctx, script, t.ID, o.opts.HookTimeout, o.log)
		outcome.Hook = &res
	}

	if prefs.DynamicWallpaper {
		if path, ok := o.applyWallpaper(ctx, t, !t.IsLight); ok {
			outcome.Wallpaper = path
		}
	}

	outcome.Duration = time.Since(start)
	o.record(ApplyRecord{
		RunID:    outcome.Fanout.RunID,
		ThemeID:  t.ID,
		Trigger:  trigger,
		OK:       true,
		Fanout:   outcome.Fanout,
		Duration: outcome.Duration,
	})

	o.log.Info().
		Str("theme", t.ID).
		Str("trigger", string(trigger)).
		Int("adapters", len(outcome.Fanout.Results)).
		Int("failed", outcome.Fanout.Failed()).
		Dur("duration", outcome.Duration).
		Msg("theme applied")
	return outcome, nil
}

// ApplyAppearanceWallpaper applies the current theme's wallpaper that
// matches the given appearance. Used by the appearance trigger, which
// swaps wallpapers even when theme auto-switching is disabled.
func (o *Orchestrator) ApplyAppearanceWallpaper(ctx context.Context, dark bool) {
	st, err := o.opts.State.Load()
	if err != nil || st.CurrentTheme == "" {
		return
	}
	t, err := o.opts.Themes.Get(st.CurrentTheme)
	if err != nil {
		// Dangling current theme; nothing to do.
		return
	}
	o.applyWallpaper(ctx, t, dark)
}

// applyWallpaper picks a wallpaper from the theme's set matching the
// appearance and hands it to the external setter. Never fatal.
func (o *Orchestrator) applyWallpaper(ctx context.Context, t *theme.Theme, dark bool) (string, bool) {
	if o.opts.WallpaperCommand == "" {
		return "", false
	}

	path, ok := pickWallpaper(t, dark)
	if !ok {
		return "", false
	}

	if err := o.setWallpaper(ctx, path); err != nil {
		o.log.Warn().Err(err).Str("wallpaper", path).Msg("wallpaper apply failed")
		return "", false
	}

	if _, err := o.opts.State.Update(func(s *state.State) {
		s.CurrentWallpaper = path
	}); err != nil {
		o.log.Warn().Err(err).Msg("recording current wallpaper failed")
	}
	return path, true
}

// pickWallpaper prefers an image whose name matches the appearance
// ("dark"/"light"), falling back to the first image in the set.
func pickWallpaper(t *theme.Theme, dark bool) (string, bool) {
	papers, err := t.Wallpapers()
	if err != nil || len(papers) == 0 {
		return "", false
	}

	want := "light"
	if dark {
		want = "dark"
	}
	for _, p := range papers {
		if strings.Contains(strings.ToLower(filepath.Base(p)), want) {
			return p, true
		}
	}
	return papers[0], true
}

func (o *Orchestrator) record(rec ApplyRecord) {
	if o.opts.Recorder != nil {
		o.opts.Recorder.RecordApply(rec)
	}
}
