package orchestrator

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// defaultWallpaperTimeout bounds the external setter invocation.
const defaultWallpaperTimeout = 10 * time.Second

// setWallpaper runs the configured setter command with the image path
// appended, e.g. "swww img" becomes "swww img <path>".
func (o *Orchestrator) setWallpaper(ctx context.Context, imagePath string) error {
	parts := strings.Fields(o.opts.WallpaperCommand)
	if len(parts) == 0 {
		return fmt.Errorf("no wallpaper command configured")
	}

	timeout := o.opts.WallpaperTimeout
	if timeout <= 0 {
		timeout = defaultWallpaperTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(parts[1:], imagePath)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("wallpaper setter %q: %w (%s)", parts[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
