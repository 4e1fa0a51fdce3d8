//go:build unix

package x11

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output keyed by the full command line.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	out, ok := f.outputs[key]
	if !ok {
		return nil, fmt.Errorf("unexpected command %q", key)
	}
	return []byte(out), nil
}

const wmctrlListing = `0x01e00007  0 Navigator.firefox     laptop GitHub - Mozilla Firefox
0x02200003  0 Mail.Thunderbird      laptop Inbox - Thunderbird
0x02200051  1 Msgcompose.Thunderbird laptop Write:   two  spaces	and a tab
0x03400001 -1 xfce4-panel.Xfce4-panel laptop
garbage
0xnothex 0 a.B laptop name
0x03800001 x a.B laptop name
0x03a00001  0 Terminal  laptop ~
`

func TestParseWindowList(t *testing.T) {
	windows, skipped := parseWindowList(wmctrlListing)

	require.Len(t, windows, 4)
	assert.Len(t, skipped, 4)

	assert.Equal(t, model.WindowID(0x01e00007), windows[0].ID)
	assert.Equal(t, "Navigator.firefox", windows[0].Type)
	assert.Equal(t, "firefox", windows[0].Application)
	assert.Equal(t, "laptop", windows[0].Host)
	assert.Equal(t, "GitHub - Mozilla Firefox", windows[0].Name)

	assert.Equal(t, 1, windows[2].Desktop)
	assert.Equal(t, "Thunderbird", windows[2].Application)
	assert.Equal(t, "Write:   two  spaces\tand a tab", windows[2].Name)

	// A type tag without a dot is its own application.
	assert.Equal(t, "Terminal", windows[3].Application)
	assert.Equal(t, "~", windows[3].Name)
}

func TestParseWindowList_Empty(t *testing.T) {
	windows, skipped := parseWindowList("\n\n")
	assert.Empty(t, windows)
	assert.Empty(t, skipped)
}

func TestSplitFields(t *testing.T) {
	fields, rest := splitFields("  a\t b   c d  e f ", 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, fields)
	assert.Equal(t, "e f ", rest)

	fields, rest = splitFields("a b", 4)
	assert.Equal(t, []string{"a", "b"}, fields)
	assert.Empty(t, rest)
}

func TestWmctrl_ListWindows(t *testing.T) {
	run := &fakeRunner{outputs: map[string]string{"/usr/bin/wmctrl -lx": wmctrlListing}}
	wm := NewWmctrl(run, "/usr/bin/wmctrl", zerolog.Nop())

	windows, err := wm.ListWindows(context.Background())
	require.NoError(t, err)
	assert.Len(t, windows, 4)
}

func TestWmctrl_ListWindowsToolUnavailable(t *testing.T) {
	missing := fmt.Errorf("%w: wmctrl: not found", platform.ErrToolUnavailable)
	run := &fakeRunner{errs: map[string]error{"wmctrl -lx": missing}}
	wm := NewWmctrl(run, "", zerolog.Nop())

	_, err := wm.ListWindows(context.Background())
	assert.ErrorIs(t, err, platform.ErrToolUnavailable)
}

func TestWmctrl_Actions(t *testing.T) {
	run := &fakeRunner{outputs: map[string]string{
		"wmctrl -c :ACTIVE:":       "",
		"wmctrl -i -a 0x02200003": "",
	}}
	wm := NewWmctrl(run, "", zerolog.Nop())

	require.NoError(t, wm.CloseActive(context.Background()))
	require.NoError(t, wm.Focus(context.Background(), 0x2200003))
	assert.Equal(t, []string{"wmctrl -c :ACTIVE:", "wmctrl -i -a 0x02200003"}, run.calls)
}

func TestWmctrl_ActionFailureIsNotFatal(t *testing.T) {
	run := &fakeRunner{errs: map[string]error{
		"wmctrl -i -a 0x00000009": errors.New("exit status 1"),
	}}
	wm := NewWmctrl(run, "", zerolog.Nop())
	assert.NoError(t, wm.Focus(context.Background(), 0x9))
}

func TestWmctrl_ActionToolUnavailable(t *testing.T) {
	run := &fakeRunner{errs: map[string]error{
		"wmctrl -c :ACTIVE:": platform.ErrToolUnavailable,
	}}
	wm := NewWmctrl(run, "", zerolog.Nop())
	assert.ErrorIs(t, wm.CloseActive(context.Background()), platform.ErrToolUnavailable)
}

func TestParseActiveWindow(t *testing.T) {
	id, err := parseActiveWindow("_NET_ACTIVE_WINDOW(WINDOW): window id # 0x2200003\n")
	require.NoError(t, err)
	assert.Equal(t, "0x02200003", id.String())

	_, err = parseActiveWindow("_NET_ACTIVE_WINDOW(WINDOW): window id # 0x0\n")
	assert.ErrorIs(t, err, platform.ErrNotFound)

	_, err = parseActiveWindow("_NET_ACTIVE_WINDOW:  not found.\n")
	assert.ErrorIs(t, err, platform.ErrNotFound)

	_, err = parseActiveWindow("xprop: unable to open display ''\n")
	assert.ErrorIs(t, err, platform.ErrMalformedOutput)
}

func TestParseStacking(t *testing.T) {
	out := "WM_NAME(STRING) = \"x\"\n" +
		"_NET_CLIENT_LIST_STACKING(WINDOW): window id # 0x1e00007, 0x2200051, bogus, 0x2200003\n" +
		"_NET_SUPPORTED(ATOM) = _NET_WM_NAME\n"
	ids, bad, err := parseStacking(out)
	require.NoError(t, err)
	assert.Equal(t, []model.WindowID{0x1e00007, 0x2200051, 0x2200003}, ids)
	assert.Equal(t, []string{"bogus"}, bad)
}

func TestParseStacking_NoTrailingNewline(t *testing.T) {
	ids, _, err := parseStacking("_NET_CLIENT_LIST_STACKING(WINDOW): window id # 0x1")
	require.NoError(t, err)
	assert.Equal(t, []model.WindowID{0x1}, ids)
}

func TestParseStacking_NotFound(t *testing.T) {
	for _, out := range []string{
		"",
		"_NET_ACTIVE_WINDOW(WINDOW): window id # 0x1\n",
		"_NET_CLIENT_LIST_STACKING:  not found.\n",
	} {
		_, _, err := parseStacking(out)
		assert.ErrorIs(t, err, platform.ErrNotFound, out)
	}
}

func TestXprop_Readers(t *testing.T) {
	run := &fakeRunner{outputs: map[string]string{
		"xprop -root _NET_ACTIVE_WINDOW":        "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x1e00007\n",
		"xprop -root _NET_CLIENT_LIST_STACKING": "_NET_CLIENT_LIST_STACKING:  not found.\n",
	}}
	xp := NewXprop(run, "", zerolog.Nop())

	id, err := xp.ActiveWindow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.WindowID(0x1e00007), id)

	_, err = xp.ListRecency(context.Background())
	assert.ErrorIs(t, err, platform.ErrNotFound)
}

func TestReaders_AgreeOnIDs(t *testing.T) {
	windows, _ := parseWindowList(wmctrlListing)
	ids, _, err := parseStacking("_NET_CLIENT_LIST_STACKING(WINDOW): window id # 0x1e00007, 0x2200003\n")
	require.NoError(t, err)

	ranked := model.Rank(windows, ids)
	assert.Equal(t, []model.WindowID{0x2200003, 0x1e00007}, model.IDs(ranked))
}

func TestDecodeWindowList(t *testing.T) {
	value := []byte{0x07, 0x00, 0xe0, 0x01, 0x03, 0x00, 0x20, 0x02, 0xff}
	assert.Equal(t, []model.WindowID{0x01e00007, 0x02200003}, decodeWindowList(value))
}

func TestExecRunner_MissingTool(t *testing.T) {
	r := NewExecRunner(0, zerolog.Nop())
	_, err := r.Output(context.Background(), "focus-cli-no-such-helper")
	assert.ErrorIs(t, err, platform.ErrToolUnavailable)
}

func TestLauncher_MissingBinary(t *testing.T) {
	err := NewLauncher(zerolog.Nop()).Launch(context.Background(), "focus-cli-no-such-app")
	assert.Error(t, err)
}

// zombieChildren lists the pids of exited, unreaped children of this process.
func zombieChildren(t *testing.T) []int {
	t.Helper()
	paths, err := filepath.Glob("/proc/[0-9]*/stat")
	require.NoError(t, err)
	self := os.Getpid()
	var zombies []int
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		// pid (comm) state ppid ...; comm may contain spaces.
		stat := string(data)
		i := strings.LastIndexByte(stat, ')')
		if i < 0 {
			continue
		}
		fields := strings.Fields(stat[i+1:])
		if len(fields) < 2 || fields[0] != "Z" {
			continue
		}
		if ppid, _ := strconv.Atoi(fields[1]); ppid != self {
			continue
		}
		pid, _ := strconv.Atoi(strings.Fields(stat)[0])
		zombies = append(zombies, pid)
	}
	return zombies
}

func TestLauncher_ReapsExitedChild(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("no /proc on this system")
	}
	require.NoError(t, NewLauncher(zerolog.Nop()).Launch(context.Background(), "true"))

	assert.Eventually(t, func() bool {
		return len(zombieChildren(t)) == 0
	}, 2*time.Second, 50*time.Millisecond, "launched application left a zombie behind")

	// Give the child time to exit, then check it stays reaped.
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, zombieChildren(t))
}

func TestNewProvider_ToolsBackend(t *testing.T) {
	p, err := NewProvider(platform.Options{Backend: platform.BackendTools, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.NotNil(t, p.Inventory)
	assert.NotNil(t, p.Recency)
	assert.NotNil(t, p.ActiveWindow)
	assert.NotNil(t, p.Actions)
	assert.NotNil(t, p.Launcher)
	assert.Nil(t, p.Close)
}
