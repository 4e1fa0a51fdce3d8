package x11

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/rs/zerolog"
)

// Runner executes an external helper and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs helpers with os/exec, bounding each call by Timeout.
type ExecRunner struct {
	Timeout time.Duration
	log     zerolog.Logger
}

// NewExecRunner creates an ExecRunner. A zero timeout disables the limit.
func NewExecRunner(timeout time.Duration, log zerolog.Logger) *ExecRunner {
	return &ExecRunner{Timeout: timeout, log: log}
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	r.log.Debug().
		Str("cmd", name).
		Strs("args", args).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("ran helper")
	if err != nil {
		return out, classifyExecError(ctx, name, args, stderr.String(), err)
	}
	return out, nil
}

// classifyExecError maps exec failures onto the platform error kinds: a
// helper that cannot be started is ErrToolUnavailable, anything else is a
// plain failure carrying the helper's stderr.
func classifyExecError(ctx context.Context, name string, args []string, stderr string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %v", platform.ErrToolUnavailable, name, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), ctxErr)
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%s %s failed: %s (%w)", name, strings.Join(args, " "), msg, err)
	}
	return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
}

// isToolUnavailable reports whether err means the helper could not run at all.
func isToolUnavailable(err error) bool {
	return errors.Is(err, platform.ErrToolUnavailable)
}
