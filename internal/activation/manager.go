// Package activation performs the atomic current-theme pointer swap and
// the state/history updates that go with it.
package activation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/bnema/themectl/internal/state"
	"github.com/bnema/themectl/internal/theme"
)

// ErrPointerConflict is returned when the pointer location is occupied
// by something that is not a symlink. Replacing it could destroy user
// data, so activation refuses.
var ErrPointerConflict = errors.New("current-theme pointer target exists and is not a symlink")

// Manager owns the current-theme pointer. It is the only component that
// mutates it. Activations are serialized with an in-process mutex and a
// file lock, so concurrent CLI invocations and the daemon cannot
// interleave pointer swaps; last writer wins.
type Manager struct {
	mu       sync.Mutex
	themes   *theme.Store
	state    *state.StateStore
	prefs    *state.PreferencesStore
	pointer  string
	fileLock *flock.Flock
	log      zerolog.Logger
}

// NewManager creates an activation manager over the given stores.
// pointerPath is the well-known symlink location consumers read through.
func NewManager(themes *theme.Store, stateStore *state.StateStore, prefsStore *state.PreferencesStore, pointerPath string, log zerolog.Logger) *Manager {
	return &Manager{
		themes:   themes,
		state:    stateStore,
		prefs:    prefsStore,
		pointer:  pointerPath,
		fileLock: flock.New(pointerPath + ".lock"),
		log:      log.With().Str("component", "activation").Logger(),
	}
}

// Activate resolves themeID, repoints the current-theme symlink at its
// bundle root and updates the state document and recent-theme history.
// Returns the resolved theme for downstream consumers.
//
// The pointer swap and the two document writes are not transactional: a
// crash mid-sequence leaves a stale document, which the next successful
// activation corrects.
func (m *Manager) Activate(themeID string) (*theme.Theme, error) {
	t, err := m.themes.Get(themeID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fileLock.Lock(); err != nil {
		return nil, fmt.Errorf("acquiring pointer lock: %w", err)
	}
	defer func() {
		if err := m.fileLock.Unlock(); err != nil {
			m.log.Warn().Err(err).Msg("releasing pointer lock failed")
		}
	}()

	if err := m.repoint(t.RootPath); err != nil {
		return nil, err
	}

	if _, err := m.state.Update(func(s *state.State) {
		s.CurrentTheme = t.ID
		s.LastSwitched = time.Now()
	}); err != nil {
		return nil, fmt.Errorf("updating state document: %w", err)
	}

	// History is best-effort: a failed preference write after a
	// successful swap does not fail the activation.
	if _, err := m.prefs.Update(func(p *state.Preferences) {
		p.PushRecent(t.ID)
	}); err != nil {
		m.log.Warn().Err(err).Str("theme", t.ID).Msg("recording recent theme failed")
	}

	m.log.Info().Str("theme", t.ID).Str("root", t.RootPath).Msg("theme activated")
	return t, nil
}

// repoint replaces the pointer symlink with one resolving to root.
// Remove-then-recreate is acceptable here: a missing pointer reads as
// "no active theme" and heals on the next activation.
func (m *Manager) repoint(root string) error {
	if err := os.MkdirAll(filepath.Dir(m.pointer), 0755); err != nil {
		return fmt.Errorf("creating pointer directory: %w", err)
	}

	if info, err := os.Lstat(m.pointer); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("%w: %s", ErrPointerConflict, m.pointer)
		}
		if err := os.Remove(m.pointer); err != nil {
			return fmt.Errorf("removing old pointer: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("inspecting pointer: %w", err)
	}

	if err := os.Symlink(root, m.pointer); err != nil {
		return fmt.Errorf("creating pointer: %w", err)
	}
	return nil
}

// PointerPath returns the pointer location consumers read through.
func (m *Manager) PointerPath() string {
	return m.pointer
}

// Current resolves the pointer to the active theme's root path.
// A missing pointer is not an error: it reads as "no active theme".
func (m *Manager) Current() (string, bool) {
	target, err := os.Readlink(m.pointer)
	if err != nil {
		return "", false
	}
	return target, true
}
