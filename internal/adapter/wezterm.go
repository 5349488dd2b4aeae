package adapter

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Wezterm drives the WezTerm terminal, which watches its Lua config for
// changes. The generated artifact is loaded by the user config through
// the pointer, so a touch is enough to trigger a reload.
type Wezterm struct{}

// NewWezterm creates the wezterm adapter.
func NewWezterm() *Wezterm {
	return &Wezterm{}
}

// Descriptor implements Adapter.
func (*Wezterm) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "wezterm",
		DisplayName: "WezTerm",
		Category:    "terminal",
		DetectPaths: []string{"~/.config/wezterm/wezterm.lua", "~/.wezterm.lua"},
		ConfigPath:  "~/.config/wezterm/wezterm.lua",
	}
}

// Notify implements Notifier.
func (w *Wezterm) Notify(_ context.Context, _ string, log zerolog.Logger) bool {
	now := time.Now()
	for _, path := range w.Descriptor().DetectPaths {
		if err := os.Chtimes(expandHome(path), now, now); err == nil {
			return true
		}
	}
	log.Debug().Msg("no wezterm config found to touch")
	return false
}
