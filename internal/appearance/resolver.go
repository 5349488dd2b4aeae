package appearance

import (
	"sort"
	"sync"
)

const (
	// sourceFallback indicates no detector provided the preference.
	sourceFallback = "fallback"
)

// callbackWrapper wraps a callback function to enable pointer comparison
// for removal.
type callbackWrapper struct {
	fn func(Preference)
}

// Resolver manages the detector chain and change notification.
type Resolver struct {
	mu        sync.RWMutex
	detectors []Detector
	current   Preference
	callbacks []*callbackWrapper
}

// NewResolver creates an empty resolver. Until the first Refresh it
// reports dark mode from the fallback source.
func NewResolver() *Resolver {
	return &Resolver{
		detectors: make([]Detector, 0),
		current: Preference{
			PrefersDark: true,
			Source:      sourceFallback,
		},
	}
}

// NewDefaultResolver creates a resolver with every built-in detector.
func NewDefaultResolver() *Resolver {
	r := NewResolver()
	r.RegisterDetector(NewGsettingsDetector())
	r.RegisterDetector(NewGtkSettingsDetector())
	r.RegisterDetector(NewEnvDetector())
	return r
}

// Resolve returns the effective preference without refreshing detectors.
func (r *Resolver) Resolve() Preference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveInternal()
}

// resolveInternal performs the actual resolution without locking.
// Caller must hold at least a read lock.
func (r *Resolver) resolveInternal() Preference {
	sorted := make([]Detector, len(r.detectors))
	copy(sorted, r.detectors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, detector := range sorted {
		if !detector.Available() {
			continue
		}
		if prefersDark, ok := detector.Detect(); ok {
			return Preference{
				PrefersDark: prefersDark,
				Source:      detector.Name(),
			}
		}
	}

	// Fallback to dark mode if all detectors fail
	return Preference{
		PrefersDark: true,
		Source:      sourceFallback,
	}
}

// RegisterDetector adds a detector to the chain.
func (r *Resolver) RegisterDetector(detector Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, detector)
}

// Refresh re-queries the detectors and notifies callbacks if the
// preference flipped.
func (r *Resolver) Refresh() Preference {
	r.mu.Lock()

	newPref := r.resolveInternal()
	changed := newPref.PrefersDark != r.current.PrefersDark
	r.current = newPref

	var callbacks []*callbackWrapper
	if changed {
		callbacks = make([]*callbackWrapper, len(r.callbacks))
		copy(callbacks, r.callbacks)
	}
	r.mu.Unlock()

	// Invoke callbacks outside of the lock.
	for _, cb := range callbacks {
		cb.fn(newPref)
	}
	return newPref
}

// OnChange registers a callback fired when the preference flips.
// Returns an unregister function.
func (r *Resolver) OnChange(callback func(Preference)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	wrapper := &callbackWrapper{fn: callback}
	r.callbacks = append(r.callbacks, wrapper)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cb := range r.callbacks {
			if cb == wrapper {
				r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
				return
			}
		}
	}
}
