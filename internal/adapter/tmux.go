package adapter

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
)

const tmuxArtifact = "tmux.conf"

// Tmux drives the tmux multiplexer by sourcing the theme artifact into
// the running server.
type Tmux struct{}

// NewTmux creates the tmux adapter.
func NewTmux() *Tmux {
	return &Tmux{}
}

// Descriptor implements Adapter.
func (*Tmux) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "tmux",
		DisplayName: "tmux",
		Category:    "terminal",
		DetectPaths: []string{"~/.config/tmux/tmux.conf", "~/.tmux.conf"},
		ConfigPath:  "~/.config/tmux/tmux.conf",
	}
}

// Notify implements Notifier.
func (*Tmux) Notify(ctx context.Context, artifactsRoot string, log zerolog.Logger) bool {
	artifact := filepath.Join(artifactsRoot, tmuxArtifact)
	cmd := exec.CommandContext(ctx, "tmux", "source-file", artifact)
	if err := cmd.Run(); err != nil {
		// No server running, or the artifact is absent from this theme.
		log.Debug().Err(err).Msg("tmux source-file failed")
		return false
	}
	return true
}
