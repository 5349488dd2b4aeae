package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/themectl/internal/orchestrator"
	"github.com/bnema/themectl/internal/state"
)

// defaultTickInterval is the schedule check cadence.
const defaultTickInterval = time.Minute

// Applier is the slice of the orchestrator the engine drives.
type Applier interface {
	Apply(ctx context.Context, themeID string, trigger orchestrator.Trigger) (*orchestrator.Outcome, error)
	ApplyAppearanceWallpaper(ctx context.Context, dark bool)
}

// Engine owns the schedule tick and handles appearance-change events.
// Both trigger paths converge on the same Applier, whose activation lock
// keeps them from racing each other.
type Engine struct {
	prefs   *state.PreferencesStore
	state   *state.StateStore
	applier Applier
	tick    time.Duration
	log     zerolog.Logger

	// now is replaceable in tests.
	now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// inFlight guards against a slow apply stacking with the next tick.
	inFlight atomic.Bool
}

// New creates a scheduling engine. A non-positive tick falls back to one
// minute.
func New(prefs *state.PreferencesStore, stateStore *state.StateStore, applier Applier, tick time.Duration, log zerolog.Logger) *Engine {
	if tick <= 0 {
		tick = defaultTickInterval
	}
	return &Engine{
		prefs:   prefs,
		state:   stateStore,
		applier: applier,
		tick:    tick,
		log:     log.With().Str("component", "scheduler").Logger(),
		now:     time.Now,
	}
}

// Start launches the tick loop, checking once immediately. Idempotent:
// a running engine is left alone.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})

	go func() {
		defer close(e.done)
		e.CheckSchedule(ctx)
		ticker := time.NewTicker(e.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.CheckSchedule(ctx)
			}
		}
	}()
	e.log.Debug().Dur("tick", e.tick).Msg("scheduler started")
}

// Stop halts the tick loop. Safe to call before Start and repeatedly.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel == nil {
		return
	}
	e.cancel()
	<-e.done
	e.cancel = nil
	e.log.Debug().Msg("scheduler stopped")
}

// CheckSchedule runs one schedule evaluation. Malformed schedules,
// missing default themes and apply errors are logged and the tick is
// skipped; the periodic task never crashes.
func (e *Engine) CheckSchedule(ctx context.Context) {
	prefs, err := e.prefs.Load()
	if err != nil {
		e.log.Warn().Err(err).Msg("loading preferences failed, skipping tick")
		return
	}
	if !prefs.AutoSwitch.Enabled || prefs.AutoSwitch.Mode != state.ModeSchedule {
		return
	}
	if prefs.Schedule.Light == "" || prefs.Schedule.Dark == "" {
		return
	}

	light, err := parseHHMM(prefs.Schedule.Light)
	if err != nil {
		e.log.Warn().Err(err).Msg("bad light boundary, skipping tick")
		return
	}
	dark, err := parseHHMM(prefs.Schedule.Dark)
	if err != nil {
		e.log.Warn().Err(err).Msg("bad dark boundary, skipping tick")
		return
	}

	useDark := darkActive(minuteOfDay(e.now()), light, dark)
	e.switchTo(ctx, prefs, useDark, orchestrator.TriggerSchedule)
}

// OnAppearanceChanged handles an OS dark/light-mode flip. The dynamic
// wallpaper step runs regardless of the auto-switch gate; the theme
// switch itself only fires in system mode.
func (e *Engine) OnAppearanceChanged(ctx context.Context, dark bool) {
	prefs, err := e.prefs.Load()
	if err != nil {
		e.log.Warn().Err(err).Msg("loading preferences failed, ignoring appearance change")
		return
	}

	if prefs.DynamicWallpaper {
		e.applier.ApplyAppearanceWallpaper(ctx, dark)
	}

	if !prefs.AutoSwitch.Enabled || prefs.AutoSwitch.Mode != state.ModeSystem {
		return
	}
	e.switchTo(ctx, prefs, dark, orchestrator.TriggerAppearance)
}

// switchTo resolves the default theme for the appearance and applies it
// unless it is already current or an apply is still in flight.
func (e *Engine) switchTo(ctx context.Context, prefs *state.Preferences, dark bool, trigger orchestrator.Trigger) {
	target := prefs.DefaultLightTheme
	if dark {
		target = prefs.DefaultDarkTheme
	}
	if target == "" {
		e.log.Warn().Bool("dark", dark).Msg("no default theme configured for appearance, skipping")
		return
	}

	st, err := e.state.Load()
	if err != nil {
		e.log.Warn().Err(err).Msg("loading state failed, skipping switch")
		return
	}
	if st.CurrentTheme == target {
		return
	}

	if !e.inFlight.CompareAndSwap(false, true) {
		e.log.Debug().Str("theme", target).Msg("apply already in flight, skipping")
		return
	}
	defer e.inFlight.Store(false)

	if _, err := e.applier.Apply(ctx, target, trigger); err != nil {
		e.log.Warn().Err(err).Str("theme", target).Msg("scheduled apply failed")
	}
}
