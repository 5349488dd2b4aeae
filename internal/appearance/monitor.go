package appearance

import (
	"context"
	"time"
)

// Monitor periodically refreshes a resolver so OnChange callbacks fire
// when the OS appearance flips while the daemon runs.
type Monitor struct {
	resolver *Resolver
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewMonitor creates a monitor polling at the given interval.
func NewMonitor(resolver *Resolver, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Monitor{
		resolver: resolver,
		interval: interval,
	}
}

// Start begins polling. Idempotent: a running monitor is left alone.
func (m *Monitor) Start(ctx context.Context) {
	if m.cancel != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	// Establish the baseline before the first tick.
	m.resolver.Refresh()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.resolver.Refresh()
			}
		}
	}()
}

// Stop halts polling. Safe to call before Start and more than once.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
}
