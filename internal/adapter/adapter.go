// Package adapter defines the integration point between themectl and
// external applications. Each application gets a small adapter struct;
// capabilities are modeled as optional interfaces, so adding an app means
// registering a new type, not editing a dispatch table.
package adapter

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Setup actions, as reported by Setuper implementations.
const (
	SetupCreated     = "created"
	SetupClipboard   = "clipboard"
	SetupAlreadyDone = "already_setup"
)

// SetupOutcome reports what a one-time setup call did. When Action is
// SetupClipboard, Snippet holds the config fragment the user must add.
type SetupOutcome struct {
	Action  string
	Snippet string
}

// Descriptor is the static catalog entry for one application.
type Descriptor struct {
	AppName     string
	DisplayName string
	Category    string
	DetectPaths []string
	ConfigPath  string
}

// Adapter is the minimal contract every registered application meets.
type Adapter interface {
	Descriptor() Descriptor
}

// Setuper is implemented by adapters that can wire themselves into the
// application's config once.
type Setuper interface {
	Adapter
	Setup(artifactsRoot string) (SetupOutcome, error)
}

// Notifier is implemented by adapters that can ask the running
// application to reload its colors. Absence means no automatic refresh
// is supported for that app.
//
// Notify is best-effort: it returns whether the reload signal was
// delivered, never an error, and must honor ctx cancellation.
type Notifier interface {
	Adapter
	Notify(ctx context.Context, artifactsRoot string, log zerolog.Logger) bool
}

// Registry maps application names to adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its descriptor's AppName.
// Registering the same name twice replaces the earlier adapter.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Descriptor().AppName] = a
}

// Get returns the adapter registered for appName.
func (r *Registry) Get(appName string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[appName]
	return a, ok
}

// Notifier returns the adapter for appName if it supports notification.
func (r *Registry) Notifier(appName string) (Notifier, bool) {
	a, ok := r.Get(appName)
	if !ok {
		return nil, false
	}
	n, ok := a.(Notifier)
	return n, ok
}

// Names returns all registered application names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with every built-in adapter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewKitty())
	r.Register(NewAlacritty())
	r.Register(NewWezterm())
	r.Register(NewWaybar())
	r.Register(NewTmux())
	r.Register(NewVSCode())
	r.Register(NewBorders())
	return r
}
