package adapter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const vscodeArtifact = "vscode.json"

// VSCode drives Visual Studio Code by merging the theme's color
// customizations into the user settings document. VS Code watches its
// settings file and re-renders on change.
type VSCode struct{}

// NewVSCode creates the vscode adapter.
func NewVSCode() *VSCode {
	return &VSCode{}
}

// Descriptor implements Adapter.
func (*VSCode) Descriptor() Descriptor {
	return Descriptor{
		AppName:     "vscode",
		DisplayName: "Visual Studio Code",
		Category:    "editor",
		DetectPaths: []string{"~/.config/Code/User/settings.json"},
		ConfigPath:  "~/.config/Code/User/settings.json",
	}
}

// Notify implements Notifier.
func (v *VSCode) Notify(_ context.Context, artifactsRoot string, log zerolog.Logger) bool {
	artifact := filepath.Join(artifactsRoot, vscodeArtifact)
	overlay, err := os.ReadFile(artifact)
	if err != nil {
		log.Debug().Err(err).Msg("theme has no vscode artifact")
		return false
	}

	var colors map[string]any
	if err := json.Unmarshal(overlay, &colors); err != nil {
		log.Debug().Err(err).Msg("invalid vscode artifact")
		return false
	}

	settingsPath := expandHome(v.Descriptor().ConfigPath)
	settings := map[string]any{}
	if data, err := os.ReadFile(settingsPath); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			log.Debug().Err(err).Msg("could not parse vscode settings")
			return false
		}
	}

	settings["workbench.colorCustomizations"] = colors

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		log.Debug().Err(err).Msg("could not create vscode settings dir")
		return false
	}
	if err := os.WriteFile(settingsPath, append(out, '\n'), 0644); err != nil {
		log.Debug().Err(err).Msg("could not write vscode settings")
		return false
	}
	return true
}
