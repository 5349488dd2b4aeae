package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/themectl/internal/adapter"
)

// mockNotifier implements adapter.Notifier for testing.
type mockNotifier struct {
	name   string
	ok     bool
	panics bool
	block  time.Duration
	calls  int
}

func (m *mockNotifier) Descriptor() adapter.Descriptor {
	return adapter.Descriptor{AppName: m.name, DisplayName: m.name}
}

func (m *mockNotifier) Notify(ctx context.Context, artifactsRoot string, log zerolog.Logger) bool {
	m.calls++
	if m.panics {
		panic("adapter exploded")
	}
	if m.block > 0 {
		select {
		case <-time.After(m.block):
		case <-ctx.Done():
		}
	}
	return m.ok
}

// mockSilent implements only adapter.Adapter, no notify support.
type mockSilent struct{ name string }

func (m *mockSilent) Descriptor() adapter.Descriptor {
	return adapter.Descriptor{AppName: m.name}
}

func newTestFanout(t *testing.T, timeout time.Duration, adapters ...adapter.Adapter) *Fanout {
	t.Helper()
	reg := adapter.NewRegistry()
	for _, a := range adapters {
		reg.Register(a)
	}
	return New(reg, timeout, zerolog.Nop())
}

func TestFanout_AllSucceed(t *testing.T) {
	a := &mockNotifier{name: "kitty", ok: true}
	b := &mockNotifier{name: "waybar", ok: true}
	f := newTestFanout(t, time.Second, a, b)

	report := f.Notify(context.Background(), "/tmp/current", []string{"kitty", "waybar"})

	require.Len(t, report.Results, 2)
	assert.Zero(t, report.Failed())
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestFanout_FailureIsolation(t *testing.T) {
	// One healthy adapter, one that panics, one that hangs: the report
	// must contain all three, with only the healthy one succeeding.
	healthy := &mockNotifier{name: "kitty", ok: true}
	panicky := &mockNotifier{name: "waybar", panics: true}
	hung := &mockNotifier{name: "tmux", block: time.Minute}
	f := newTestFanout(t, 100*time.Millisecond, healthy, panicky, hung)

	start := time.Now()
	report := f.Notify(context.Background(), "/tmp/current", []string{"kitty", "waybar", "tmux"})
	elapsed := time.Since(start)

	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Failed())

	byApp := make(map[string]Result)
	for _, res := range report.Results {
		byApp[res.App] = res
	}
	assert.True(t, byApp["kitty"].OK)
	assert.False(t, byApp["waybar"].OK)
	assert.Contains(t, byApp["waybar"].Detail, "panic")
	assert.False(t, byApp["tmux"].OK)
	assert.Contains(t, byApp["tmux"].Detail, "timed out")

	// Adapters run in parallel: the hung one costs one timeout, not
	// one timeout per sibling.
	assert.Less(t, elapsed, time.Second)
}

func TestFanout_SkipsAppsWithoutNotifySupport(t *testing.T) {
	notifying := &mockNotifier{name: "kitty", ok: true}
	silent := &mockSilent{name: "vscode-snippets"}
	f := newTestFanout(t, time.Second, notifying, silent)

	report := f.Notify(context.Background(), "/tmp/current", []string{"kitty", "vscode-snippets", "unknown"})

	require.Len(t, report.Results, 1)
	assert.Equal(t, "kitty", report.Results[0].App)
}

func TestFanout_EmptyEnabledSet(t *testing.T) {
	f := newTestFanout(t, time.Second, &mockNotifier{name: "kitty", ok: true})

	report := f.Notify(context.Background(), "/tmp/current", nil)
	assert.Empty(t, report.Results)
	assert.Zero(t, report.Failed())
}

func TestFanout_FailedDeliveryRecorded(t *testing.T) {
	f := newTestFanout(t, time.Second, &mockNotifier{name: "kitty", ok: false})

	report := f.Notify(context.Background(), "/tmp/current", []string{"kitty"})
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].OK)
	assert.Equal(t, 1, report.Failed())
}
