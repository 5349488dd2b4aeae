package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound is returned when a themeId resolves to no bundle on disk.
var ErrNotFound = errors.New("theme not found")

// Theme is one resolved theme bundle. Identified by its directory name
// (the themeId), distinct from the display name in Metadata.
type Theme struct {
	ID       string
	RootPath string
	Metadata *Metadata
	IsCustom bool
	IsLight  bool
}

// WallpapersDir returns the bundle's wallpaper directory (may not exist).
func (t *Theme) WallpapersDir() string {
	return filepath.Join(t.RootPath, "wallpapers")
}

// Wallpapers lists the bundle's wallpaper image files, sorted by name.
func (t *Theme) Wallpapers() ([]string, error) {
	entries, err := os.ReadDir(t.WallpapersDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".png", ".jpg", ".jpeg", ".webp":
			paths = append(paths, filepath.Join(t.WallpapersDir(), entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Store loads theme bundles from the bundled and custom roots.
// Themes are re-read from disk on every call; there is no cache, so a
// bundle deleted between calls simply stops being listed.
type Store struct {
	bundledDir string
	customDir  string
}

// NewStore creates a theme store over the two search roots.
func NewStore(bundledDir, customDir string) *Store {
	return &Store{
		bundledDir: bundledDir,
		customDir:  customDir,
	}
}

// List returns all loadable themes, bundled first, sorted by id within
// each root. Bundles that vanish or fail to parse mid-scan are skipped.
func (s *Store) List() ([]*Theme, error) {
	var themes []*Theme

	for _, root := range []struct {
		dir    string
		custom bool
	}{
		{s.bundledDir, false},
		{s.customDir, true},
	} {
		entries, err := os.ReadDir(root.dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading theme root %s: %w", root.dir, err)
		}

		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			theme, err := s.load(root.dir, entry.Name(), root.custom)
			if err != nil {
				// Tolerate concurrent deletion and bad bundles on list.
				continue
			}
			themes = append(themes, theme)
		}
	}

	return themes, nil
}

// Get resolves a themeId, searching the bundled root then the custom root.
// Returns ErrNotFound if neither root has a loadable bundle of that id.
func (s *Store) Get(themeID string) (*Theme, error) {
	if themeID == "" {
		return nil, ErrNotFound
	}

	if theme, err := s.load(s.bundledDir, themeID, false); err == nil {
		return theme, nil
	}
	if theme, err := s.load(s.customDir, themeID, true); err == nil {
		return theme, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, themeID)
}

func (s *Store) load(root, themeID string, custom bool) (*Theme, error) {
	rootPath := filepath.Join(root, themeID)

	meta, err := loadMetadata(filepath.Join(rootPath, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, themeID)
		}
		return nil, err
	}

	isLight := false
	if _, err := os.Stat(filepath.Join(rootPath, LightMarkerFile)); err == nil {
		isLight = true
	} else {
		isLight = meta.Colors.BackgroundIsLight()
	}

	return &Theme{
		ID:       themeID,
		RootPath: rootPath,
		Metadata: meta,
		IsCustom: custom,
		IsLight:  isLight,
	}, nil
}
