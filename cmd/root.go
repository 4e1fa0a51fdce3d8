package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mj1618/focus-cli/internal/config"
	"github.com/mj1618/focus-cli/internal/logger"
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/mj1618/focus-cli/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	// Registers the X11 backend.
	_ "github.com/mj1618/focus-cli/internal/platform/x11"
)

var (
	cfg       = config.Default()
	log       = zerolog.Nop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "focus-cli",
	Short: "Close and focus X11 windows by recency",
	Long: `Window switching helpers for X11 desktops, meant to be bound to hotkeys.

Windows are ranked by how recently they had focus, using the window
manager's _NET_CLIENT_LIST_STACKING property, and matched by their
WM_CLASS type tag (e.g. "Mail.Thunderbird").

The close-and-focus and start-or-focus commands can also be run through
symlinks of the same name pointing at this binary.`,
	SilenceUsage: true,
}

// Execute runs the root command. It exits with status 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[0], os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run executes the command line and releases the log file whether or not
// the command succeeded.
func run(ctx context.Context, argv0 string, args []string) error {
	rootCmd.SetArgs(dispatchArgs(argv0, args))
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// dispatchArgs maps an invocation through a symlink named after a
// subcommand onto that subcommand.
func dispatchArgs(argv0 string, args []string) []string {
	switch name := filepath.Base(argv0); name {
	case closeAndFocusCmd.Name(), startOrFocusCmd.Name():
		return append([]string{name}, args...)
	}
	return args
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/focus-cli/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().String("backend", "", "Window backend: tools (wmctrl + xprop) or xgb")
	rootCmd.PersistentFlags().String("stack-order", "", "Which end of the stacking list is most recent: most-recent-last, most-recent-first")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := applyFlagOverrides(rootCmd, loaded); err != nil {
			return err
		}
		cfg = loaded

		l, closer, err := logger.New(
			logger.WithConsole(rootCmd.ErrOrStderr()),
			logger.WithLevelString(cfg.Log.Level),
			logger.WithFile(cfg.Log.File),
		)
		if err != nil {
			return err
		}
		if err := closeLog(); err != nil {
			return err
		}
		log, logCloser = l, closer
		log.Debug().Str("command", cmd.Name()).Str("backend", cfg.Backend).Msg("starting")
		return nil
	}
}

// applyFlagOverrides lays explicitly set persistent flags over c and
// validates the result.
func applyFlagOverrides(root *cobra.Command, c *config.Config) error {
	flags := root.PersistentFlags()
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"log-level", &c.Log.Level},
		{"log-file", &c.Log.File},
		{"backend", &c.Backend},
		{"stack-order", &c.StackOrder},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetString(o.flag)
		if err != nil {
			return err
		}
		*o.dst = v
	}
	return c.Validate()
}
