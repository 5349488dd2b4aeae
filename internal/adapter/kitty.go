package adapter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const kittyArtifact = "kitty.conf"

// Kitty drives the kitty terminal. Colors are pushed over the remote
// control socket when one is available; otherwise kitty is signaled with
// SIGUSR1, which makes it reload its config (and through it the include
// of the current-theme pointer).
type Kitty struct{}

// NewKitty creates the kitty adapter.
func NewKitty() *Kitty {
	return &Kitty{}
}

// Descriptor implements Adapter.
func (*Kitty) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "kitty",
		DisplayName: "kitty",
		Category:    "terminal",
		DetectPaths: []string{"~/.config/kitty/kitty.conf"},
		ConfigPath:  "~/.config/kitty/kitty.conf",
	}
}

// Setup implements Setuper. Ensures kitty.conf includes the
// current-theme artifact through the pointer.
func (k *Kitty) Setup(artifactsRoot string) (SetupOutcome, error) {
	configPath := expandHome(k.Descriptor().ConfigPath)
	include := fmt.Sprintf("include %s", filepath.Join(artifactsRoot, kittyArtifact))

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return SetupOutcome{}, err
	}
	if strings.Contains(string(data), include) {
		return SetupOutcome{Action: SetupAlreadyDone}, nil
	}

	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Cannot write the config; hand the snippet to the user instead.
		return SetupOutcome{Action: SetupClipboard, Snippet: include}, nil
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "\n%s\n", include); err != nil {
		return SetupOutcome{}, err
	}
	return SetupOutcome{Action: SetupCreated}, nil
}

// Notify implements Notifier.
func (*Kitty) Notify(ctx context.Context, artifactsRoot string, log zerolog.Logger) bool {
	artifact := filepath.Join(artifactsRoot, kittyArtifact)

	sockets, _ := filepath.Glob(filepath.Join(os.TempDir(), "kitty-*"))
	delivered := false
	for _, sock := range sockets {
		cmd := exec.CommandContext(ctx, "kitten", "@", "--to", "unix:"+sock,
			"set-colors", "--all", "--configured", artifact)
		if err := cmd.Run(); err != nil {
			log.Debug().Err(err).Str("socket", sock).Msg("kitty socket push failed")
			continue
		}
		delivered = true
	}
	if delivered {
		return true
	}

	if n := signalByName("kitty", unix.SIGUSR1); n > 0 {
		log.Debug().Int("processes", n).Msg("signaled kitty with SIGUSR1")
		return true
	}
	log.Debug().Msg("no running kitty instance found")
	return false
}
