package appearance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDetector implements Detector for testing.
type mockDetector struct {
	name        string
	priority    int
	available   bool
	prefersDark bool
	detectOk    bool
}

func (m *mockDetector) Name() string         { return m.name }
func (m *mockDetector) Priority() int        { return m.priority }
func (m *mockDetector) Available() bool      { return m.available }
func (m *mockDetector) Detect() (bool, bool) { return m.prefersDark, m.detectOk }

func TestResolver_FallbackWithoutDetectors(t *testing.T) {
	resolver := NewResolver()

	pref := resolver.Resolve()
	assert.True(t, pref.PrefersDark)
	assert.Equal(t, sourceFallback, pref.Source)
}

func TestResolver_DetectorPriority(t *testing.T) {
	resolver := NewResolver()
	resolver.RegisterDetector(&mockDetector{
		name: "low", priority: 10, available: true, prefersDark: true, detectOk: true,
	})
	resolver.RegisterDetector(&mockDetector{
		name: "high", priority: 100, available: true, prefersDark: false, detectOk: true,
	})

	pref := resolver.Resolve()
	assert.False(t, pref.PrefersDark)
	assert.Equal(t, "high", pref.Source)
}

func TestResolver_SkipsUnavailableAndUndetected(t *testing.T) {
	resolver := NewResolver()
	resolver.RegisterDetector(&mockDetector{
		name: "offline", priority: 100, available: false, prefersDark: false, detectOk: true,
	})
	resolver.RegisterDetector(&mockDetector{
		name: "unsure", priority: 50, available: true, detectOk: false,
	})
	resolver.RegisterDetector(&mockDetector{
		name: "working", priority: 10, available: true, prefersDark: false, detectOk: true,
	})

	pref := resolver.Resolve()
	assert.False(t, pref.PrefersDark)
	assert.Equal(t, "working", pref.Source)
}

func TestResolver_RefreshNotifiesOnFlip(t *testing.T) {
	detector := &mockDetector{
		name: "test", priority: 50, available: true, prefersDark: true, detectOk: true,
	}
	resolver := NewResolver()
	resolver.RegisterDetector(detector)

	var notified []Preference
	resolver.OnChange(func(p Preference) {
		notified = append(notified, p)
	})

	// Initial state is dark; refreshing to dark is not a flip.
	resolver.Refresh()
	assert.Empty(t, notified)

	detector.prefersDark = false
	resolver.Refresh()
	require.Len(t, notified, 1)
	assert.False(t, notified[0].PrefersDark)
	assert.Equal(t, "test", notified[0].Source)

	// No flip, no callback.
	resolver.Refresh()
	assert.Len(t, notified, 1)
}

func TestResolver_OnChangeUnregister(t *testing.T) {
	detector := &mockDetector{
		name: "test", priority: 50, available: true, prefersDark: true, detectOk: true,
	}
	resolver := NewResolver()
	resolver.RegisterDetector(detector)

	calls := 0
	unregister := resolver.OnChange(func(Preference) { calls++ })

	detector.prefersDark = false
	resolver.Refresh()
	require.Equal(t, 1, calls)

	unregister()
	detector.prefersDark = true
	resolver.Refresh()
	assert.Equal(t, 1, calls)
}

func TestResolver_RefreshReturnsCurrent(t *testing.T) {
	detector := &mockDetector{
		name: "test", priority: 50, available: true, prefersDark: false, detectOk: true,
	}
	resolver := NewResolver()
	resolver.RegisterDetector(detector)

	pref := resolver.Refresh()
	assert.False(t, pref.PrefersDark)
	assert.Equal(t, pref, resolver.Resolve())
}
