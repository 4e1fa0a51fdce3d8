package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/focus-cli/internal/focus"
	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/spf13/pflag"
)

// fakeDesktop is an in-memory window manager for command tests.
type fakeDesktop struct {
	windows []model.Window
	recency []model.WindowID
	active  model.WindowID
	closed  int
	focused []model.WindowID
}

func (f *fakeDesktop) ListWindows(context.Context) ([]model.Window, error) { return f.windows, nil }

func (f *fakeDesktop) ListRecency(context.Context) ([]model.WindowID, error) {
	return f.recency, nil
}

func (f *fakeDesktop) ActiveWindow(context.Context) (model.WindowID, error) {
	if f.active == 0 {
		return 0, platform.ErrNotFound
	}
	return f.active, nil
}

func (f *fakeDesktop) CloseActive(context.Context) error {
	f.closed++
	return nil
}

func (f *fakeDesktop) Focus(_ context.Context, id model.WindowID) error {
	f.focused = append(f.focused, id)
	return nil
}

func (f *fakeDesktop) Launch(context.Context, string) error { return nil }

// useDesktop routes provider construction to d and captures output for the
// duration of the test.
func useDesktop(t *testing.T, d *fakeDesktop) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	oldProvider, oldOut := platform.NewProviderFunc, output.Stdout
	platform.NewProviderFunc = func(platform.Options) (*platform.Provider, error) {
		return &platform.Provider{Inventory: d, Recency: d, ActiveWindow: d, Actions: d, Launcher: d}, nil
	}
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	output.Stdout = stdout
	rootCmd.SetErr(stderr)

	t.Cleanup(func() {
		platform.NewProviderFunc, output.Stdout = oldProvider, oldOut
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd.PersistentFlags())
		for _, c := range rootCmd.Commands() {
			resetFlags(c.Flags())
		}
	})
	return stdout, stderr
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func thunderbirdDesktop() *fakeDesktop {
	return &fakeDesktop{
		windows: []model.Window{
			model.NewWindow(0x01, 0, "Mail.Thunderbird", "host", "Inbox"),
			model.NewWindow(0x02, 0, "Msgcompose.Thunderbird", "host", "Write: hello"),
		},
		recency: []model.WindowID{0x01, 0x02},
		active:  0x02,
	}
}

func TestCloseAndFocus_FocusesPreviousWindow(t *testing.T) {
	d := thunderbirdDesktop()
	stdout, _ := useDesktop(t, d)

	if err := run(context.Background(), "focus-cli", []string{"close-and-focus"}); err != nil {
		t.Fatalf("close-and-focus: %v", err)
	}
	if d.closed != 1 {
		t.Errorf("closed: got %d, want 1", d.closed)
	}
	if len(d.focused) != 1 || d.focused[0] != 0x01 {
		t.Errorf("focused: got %v, want [0x00000001]", d.focused)
	}
	if !strings.Contains(stdout.String(), "outcome: focused") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestCloseAndFocus_VanishedActiveWindowSucceeds(t *testing.T) {
	d := thunderbirdDesktop()
	d.active = 0x99
	stdout, stderr := useDesktop(t, d)

	// Invoked through a symlink, as from a hotkey binding.
	if err := run(context.Background(), "/usr/local/bin/close-and-focus", nil); err != nil {
		t.Fatalf("expected success when the focused window is gone, got %v", err)
	}
	if d.closed != 0 {
		t.Errorf("nothing should be closed, closed %d", d.closed)
	}
	if !strings.Contains(stdout.String(), "active-window-not-found") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "nothing closed") {
		t.Errorf("expected a warning, got:\n%s", stderr.String())
	}
}

func TestReportClose(t *testing.T) {
	var buf bytes.Buffer
	old := output.Stdout
	output.Stdout = &buf
	defer func() { output.Stdout = old }()

	missing := fmt.Errorf("%w: 0x00000099", platform.ErrActiveWindowNotFound)
	if err := reportClose(focus.CloseResult{Action: "close-and-focus", Outcome: focus.OutcomeActiveMissing}, missing); err != nil {
		t.Errorf("vanished active window: got %v, want nil", err)
	}
	if !strings.Contains(buf.String(), "active-window-not-found") {
		t.Errorf("result not printed:\n%s", buf.String())
	}

	buf.Reset()
	boom := fmt.Errorf("failed to list windows: %w", platform.ErrToolUnavailable)
	if err := reportClose(focus.CloseResult{}, boom); !errors.Is(err, platform.ErrToolUnavailable) {
		t.Errorf("got %v, want ErrToolUnavailable", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed on failure, got:\n%s", buf.String())
	}
}

func TestRun_ClosesLogFileOnFailure(t *testing.T) {
	useDesktop(t, thunderbirdDesktop())
	path := filepath.Join(t.TempDir(), "focus.log")

	err := run(context.Background(), "focus-cli", []string{"--log-level", "debug", "--log-file", path, "focus", "--id", "not-hex"})
	if err == nil {
		t.Fatal("expected an invalid id error")
	}
	if logCloser != nil {
		t.Error("log file still open after a failed command")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "starting") {
		t.Errorf("log file missing entries:\n%s", data)
	}
}
