package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const alacrittyArtifact = "alacritty.toml"

// Alacritty drives the alacritty terminal. Alacritty live-reloads its
// config file, so notification is a touch of the user config whose
// import chain reaches the current-theme pointer.
type Alacritty struct{}

// NewAlacritty creates the alacritty adapter.
func NewAlacritty() *Alacritty {
	return &Alacritty{}
}

// Descriptor implements Adapter.
func (*Alacritty) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "alacritty",
		DisplayName: "Alacritty",
		Category:    "terminal",
		DetectPaths: []string{"~/.config/alacritty/alacritty.toml"},
		ConfigPath:  "~/.config/alacritty/alacritty.toml",
	}
}

// Setup implements Setuper. Alacritty's TOML import list cannot be
// appended to blindly, so the snippet is always handed back to the user
// unless it is already present.
func (a *Alacritty) Setup(artifactsRoot string) (SetupOutcome, error) {
	configPath := expandHome(a.Descriptor().ConfigPath)
	importPath := filepath.Join(artifactsRoot, alacrittyArtifact)
	snippet := fmt.Sprintf("[general]\nimport = [%q]", importPath)

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return SetupOutcome{}, err
	}
	if strings.Contains(string(data), importPath) {
		return SetupOutcome{Action: SetupAlreadyDone}, nil
	}
	return SetupOutcome{Action: SetupClipboard, Snippet: snippet}, nil
}

// Notify implements Notifier.
func (a *Alacritty) Notify(_ context.Context, _ string, log zerolog.Logger) bool {
	configPath := expandHome(a.Descriptor().ConfigPath)
	now := time.Now()
	if err := os.Chtimes(configPath, now, now); err != nil {
		log.Debug().Err(err).Msg("could not touch alacritty config")
		return false
	}
	return true
}
