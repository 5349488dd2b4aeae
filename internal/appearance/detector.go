// Package appearance resolves the OS dark/light display preference from
// a priority-ordered chain of detectors and reports changes to
// registered callbacks.
package appearance

// Preference is the resolved appearance preference.
type Preference struct {
	// PrefersDark is true when the system is in dark mode.
	PrefersDark bool
	// Source names the detector (or override) that produced the value.
	Source string
}

// Detector detects the system appearance preference from one source.
// Detectors are consulted in priority order (highest first).
type Detector interface {
	// Name returns the detector's identifier, used as Preference.Source.
	Name() string
	// Priority orders detectors; higher wins.
	Priority() int
	// Available reports whether this detector can run on this system.
	Available() bool
	// Detect returns the preference. ok is false when the source gave
	// no usable answer and the next detector should be tried.
	Detect() (prefersDark, ok bool)
}
