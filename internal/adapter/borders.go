package adapter

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
)

const bordersArtifact = "borders.sh"

// Borders drives a window-border daemon whose theme artifact is a shell
// script that re-execs the daemon with the new colors.
type Borders struct{}

// NewBorders creates the borders adapter.
func NewBorders() *Borders {
	return &Borders{}
}

// Descriptor implements Adapter.
func (*Borders) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "borders",
		DisplayName: "Window borders",
		Category:    "wm",
		DetectPaths: []string{"~/.config/borders/bordersrc"},
		ConfigPath:  "~/.config/borders/bordersrc",
	}
}

// Notify implements Notifier.
func (*Borders) Notify(ctx context.Context, artifactsRoot string, log zerolog.Logger) bool {
	script := filepath.Join(artifactsRoot, bordersArtifact)
	if _, err := os.Stat(script); err != nil {
		log.Debug().Msg("theme has no borders artifact")
		return false
	}

	cmd := exec.CommandContext(ctx, "sh", script)
	if err := cmd.Run(); err != nil {
		log.Debug().Err(err).Msg("borders re-exec failed")
		return false
	}
	return true
}
