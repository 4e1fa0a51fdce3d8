//go:build unix

package x11

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog"
)

// Launcher starts applications in their own session so they outlive the
// command that spawned them.
type Launcher struct {
	log zerolog.Logger
}

// NewLauncher creates a Launcher.
func NewLauncher(log zerolog.Logger) *Launcher {
	return &Launcher{log: log}
}

// Launch starts binary with no arguments and does not wait for it. The
// context only guards the lookup; the child is never killed. The child is
// reaped in the background once it exits.
func (l *Launcher) Launch(ctx context.Context, binary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("cannot launch %q: %w", binary, err)
	}

	cmd := exec.Command(path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", path, err)
	}
	l.log.Info().Str("binary", path).Int("pid", cmd.Process.Pid).Msg("launched application")
	go func() {
		if err := cmd.Wait(); err != nil {
			l.log.Debug().Err(err).Str("binary", path).Msg("launched application exited")
		}
	}()
	return nil
}
