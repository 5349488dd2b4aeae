// Package fanout broadcasts a theme change to every enabled adapter with
// independent failure isolation: one adapter failing, panicking or
// hanging never affects the others or the overall return.
package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/themectl/internal/adapter"
)

// DefaultTimeout bounds a single adapter notification.
const DefaultTimeout = 5 * time.Second

// Result records the outcome of one adapter's notification.
type Result struct {
	App      string        `json:"app"`
	OK       bool          `json:"ok"`
	Detail   string        `json:"detail"`
	Duration time.Duration `json:"duration"`
}

// Report is the informational outcome of one fan-out. It is logged and
// surfaced for diagnostics, never raised as an error.
type Report struct {
	RunID   string   `json:"runId"`
	Results []Result `json:"results"`
}

// Failed counts results that did not deliver.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK {
			n++
		}
	}
	return n
}

// Fanout invokes adapter notifications in parallel with per-adapter
// timeouts.
type Fanout struct {
	registry *adapter.Registry
	timeout  time.Duration
	log      zerolog.Logger
}

// New creates a fan-out over the registry. A non-positive timeout falls
// back to DefaultTimeout.
func New(registry *adapter.Registry, timeout time.Duration, log zerolog.Logger) *Fanout {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fanout{
		registry: registry,
		timeout:  timeout,
		log:      log.With().Str("component", "fanout").Logger(),
	}
}

// Notify invokes Notify on every enabled app that has a notifying
// adapter, each exactly once, in parallel. The report contains one entry
// per attempted adapter and is complete when Notify returns: a hung
// adapter is recorded as failed after its timeout and abandoned, but
// nothing is fired-and-forgotten from the caller's perspective.
func (f *Fanout) Notify(ctx context.Context, artifactsRoot string, enabledApps []string) Report {
	report := Report{RunID: uuid.NewString()}

	var notifiers []adapter.Notifier
	for _, app := range enabledApps {
		n, ok := f.registry.Notifier(app)
		if !ok {
			f.log.Debug().Str("app", app).Msg("no notify support, skipping")
			continue
		}
		notifiers = append(notifiers, n)
	}
	if len(notifiers) == 0 {
		return report
	}

	report.Results = make([]Result, len(notifiers))
	var g errgroup.Group
	for i, n := range notifiers {
		g.Go(func() error {
			report.Results[i] = f.notifyOne(ctx, n, artifactsRoot)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range report.Results {
		f.log.Info().
			Str("run", report.RunID).
			Str("app", res.App).
			Bool("ok", res.OK).
			Dur("duration", res.Duration).
			Str("detail", res.Detail).
			Msg("adapter notified")
	}
	return report
}

// notifyOne runs a single adapter under its own deadline. The adapter
// call itself runs on an inner goroutine so a hung adapter can be
// abandoned without blocking its siblings.
func (f *Fanout) notifyOne(ctx context.Context, n adapter.Notifier, artifactsRoot string) Result {
	app := n.Descriptor().AppName
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Result{App: app, OK: false, Detail: fmt.Sprintf("panic: %v", r)}
			}
		}()
		log := f.log.With().Str("app", app).Logger()
		if n.Notify(ctx, artifactsRoot, log) {
			done <- Result{App: app, OK: true, Detail: "reloaded"}
		} else {
			done <- Result{App: app, OK: false, Detail: "reload not delivered"}
		}
	}()

	select {
	case res := <-done:
		res.Duration = time.Since(start)
		return res
	case <-ctx.Done():
		return Result{
			App:      app,
			OK:       false,
			Detail:   fmt.Sprintf("timed out after %s", f.timeout),
			Duration: time.Since(start),
		}
	}
}
