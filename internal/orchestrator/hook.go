package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// defaultHookTimeout bounds the user hook script when no timeout is
// configured.
const defaultHookTimeout = 30 * time.Second

// HookResult records one hook-script execution. Hook failures are
// diagnostic only; they never fail the apply.
type HookResult struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      string
	TimedOut bool
	Duration time.Duration
}

// OK reports whether the hook ran and exited zero.
func (h *HookResult) OK() bool {
	return h.Err == "" && h.ExitCode == 0 && !h.TimedOut
}

// runHook spawns "<script> <themeId>" with a bounded context, capturing
// stdout and stderr for logging.
func runHook(ctx context.Context, script, themeID string, timeout time.Duration, log zerolog.Logger) HookResult {
	if timeout <= 0 {
		timeout = defaultHookTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res := HookResult{Command: script}

	cmd := exec.CommandContext(ctx, script, themeID)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.Err = "timed out"
	} else if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Err = err.Error()
		}
	}

	evt := log.Warn()
	if res.OK() {
		evt = log.Debug()
	}
	evt.Str("hook", script).
		Str("theme", themeID).
		Int("exit", res.ExitCode).
		Bool("timedOut", res.TimedOut).
		Str("stderr", res.Stderr).
		Msg("hook script finished")
	return res
}
