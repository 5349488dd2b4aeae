// Package theme loads theme bundles from the bundled and custom roots.
package theme

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// MetadataFile is the per-bundle metadata file name.
const MetadataFile = "theme.json"

// LightMarkerFile marks a bundle as a light theme.
const LightMarkerFile = "light.mode"

// ColorTable is the fixed set of named color slots every theme must define.
// All values are hex color strings ("#rrggbb").
type ColorTable struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Cursor     string `json:"cursor"`
	Selection  string `json:"selection"`

	Color0 string `json:"color0"`
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
	Color3 string `json:"color3"`
	Color4 string `json:"color4"`
	Color5 string `json:"color5"`
	Color6 string `json:"color6"`
	Color7 string `json:"color7"`

	Color8  string `json:"color8"`
	Color9  string `json:"color9"`
	Color10 string `json:"color10"`
	Color11 string `json:"color11"`
	Color12 string `json:"color12"`
	Color13 string `json:"color13"`
	Color14 string `json:"color14"`
	Color15 string `json:"color15"`

	Accent string `json:"accent"`
	Border string `json:"border"`
}

// Slots returns the slot name -> value pairs in declaration order.
func (c *ColorTable) Slots() []struct{ Name, Value string } {
	return []struct{ Name, Value string }{
		{"background", c.Background},
		{"foreground", c.Foreground},
		{"cursor", c.Cursor},
		{"selection", c.Selection},
		{"color0", c.Color0},
		{"color1", c.Color1},
		{"color2", c.Color2},
		{"color3", c.Color3},
		{"color4", c.Color4},
		{"color5", c.Color5},
		{"color6", c.Color6},
		{"color7", c.Color7},
		{"color8", c.Color8},
		{"color9", c.Color9},
		{"color10", c.Color10},
		{"color11", c.Color11},
		{"color12", c.Color12},
		{"color13", c.Color13},
		{"color14", c.Color14},
		{"color15", c.Color15},
		{"accent", c.Accent},
		{"border", c.Border},
	}
}

// Validate checks that every slot parses as a color string.
func (c *ColorTable) Validate() error {
	for _, slot := range c.Slots() {
		if slot.Value == "" {
			return fmt.Errorf("color slot %q is missing", slot.Name)
		}
		if _, err := colorful.Hex(slot.Value); err != nil {
			return fmt.Errorf("color slot %q has invalid value %q: %w", slot.Name, slot.Value, err)
		}
	}
	return nil
}

// BackgroundIsLight reports whether the background color has light
// perceived luminance. Used as a fallback when the light marker is absent.
func (c *ColorTable) BackgroundIsLight() bool {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return false
	}
	luminance := 0.2126*col.R + 0.7152*col.G + 0.0722*col.B
	return luminance >= 0.5
}

// Metadata describes one theme bundle, loaded from theme.json.
// Immutable once loaded.
type Metadata struct {
	Name        string     `json:"name"`
	Author      string     `json:"author,omitempty"`
	Description string     `json:"description,omitempty"`
	Version     string     `json:"version,omitempty"`
	Colors      ColorTable `json:"colors"`
}

// loadMetadata reads and validates a theme.json file.
func loadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MetadataFile, err)
	}
	if meta.Name == "" {
		return nil, fmt.Errorf("%s is missing a name", MetadataFile)
	}
	if err := meta.Colors.Validate(); err != nil {
		return nil, fmt.Errorf("invalid colors in %s: %w", MetadataFile, err)
	}
	return &meta, nil
}
