package adapter

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Waybar drives the waybar status bar, which reloads its stylesheet on
// SIGUSR2.
type Waybar struct{}

// NewWaybar creates the waybar adapter.
func NewWaybar() *Waybar {
	return &Waybar{}
}

// Descriptor implements Adapter.
func (*Waybar) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "waybar",
		DisplayName: "Waybar",
		Category:    "statusbar",
		DetectPaths: []string{"~/.config/waybar/config", "~/.config/waybar/config.jsonc"},
		ConfigPath:  "~/.config/waybar/style.css",
	}
}

// Notify implements Notifier.
func (*Waybar) Notify(_ context.Context, _ string, log zerolog.Logger) bool {
	n := signalByName("waybar", unix.SIGUSR2)
	if n == 0 {
		log.Debug().Msg("no running waybar instance found")
		return false
	}
	log.Debug().Int("processes", n).Msg("signaled waybar with SIGUSR2")
	return true
}
