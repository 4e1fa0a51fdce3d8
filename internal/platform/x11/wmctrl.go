package x11

import (
	"context"
	"strconv"
	"strings"

	"github.com/mj1618/focus-cli/internal/model"
	"github.com/rs/zerolog"
)

// DefaultWmctrl is the wmctrl binary used when none is configured.
const DefaultWmctrl = "wmctrl"

// Wmctrl lists, closes and focuses windows through the wmctrl helper.
type Wmctrl struct {
	run Runner
	bin string
	log zerolog.Logger
}

// NewWmctrl creates a wmctrl adapter. An empty bin uses DefaultWmctrl.
func NewWmctrl(run Runner, bin string, log zerolog.Logger) *Wmctrl {
	if bin == "" {
		bin = DefaultWmctrl
	}
	return &Wmctrl{run: run, bin: bin, log: log}
}

// ListWindows runs `wmctrl -lx`.
func (w *Wmctrl) ListWindows(ctx context.Context) ([]model.Window, error) {
	out, err := w.run.Output(ctx, w.bin, "-lx")
	if err != nil {
		return nil, err
	}
	windows, skipped := parseWindowList(string(out))
	for _, line := range skipped {
		w.log.Debug().Str("line", line).Msg("skipping malformed wmctrl line")
	}
	return windows, nil
}

// CloseActive runs `wmctrl -c :ACTIVE:`. wmctrl's exit status does not tell
// whether the window closed, so only a missing helper is an error.
func (w *Wmctrl) CloseActive(ctx context.Context) error {
	return w.fire(ctx, "-c", ":ACTIVE:")
}

// Focus runs `wmctrl -i -a <id>`.
func (w *Wmctrl) Focus(ctx context.Context, id model.WindowID) error {
	return w.fire(ctx, "-i", "-a", id.String())
}

func (w *Wmctrl) fire(ctx context.Context, args ...string) error {
	_, err := w.run.Output(ctx, w.bin, args...)
	if err == nil {
		return nil
	}
	if isToolUnavailable(err) {
		return err
	}
	w.log.Warn().Err(err).Strs("args", args).Msg("wmctrl reported an error")
	return nil
}

// parseWindowList parses `wmctrl -lx` output. Each line holds
// "id desktop type host name..."; the first four fields are split on runs of
// blanks and the rest of the line is the name, kept verbatim. Lines that do
// not fit are returned in skipped.
func parseWindowList(out string) (windows []model.Window, skipped []string) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, name := splitFields(line, 4)
		if len(fields) < 4 || name == "" {
			skipped = append(skipped, line)
			continue
		}
		id, err := model.ParseWindowID(fields[0])
		if err != nil {
			skipped = append(skipped, line)
			continue
		}
		desktop, err := strconv.Atoi(fields[1])
		if err != nil {
			skipped = append(skipped, line)
			continue
		}
		windows = append(windows, model.NewWindow(id, desktop, fields[2], fields[3], name))
	}
	return windows, skipped
}

const blanks = " \t"

// splitFields cuts up to n blank-separated fields off the front of line and
// returns them with the remainder, leading blanks removed.
func splitFields(line string, n int) ([]string, string) {
	fields := make([]string, 0, n)
	rest := line
	for len(fields) < n {
		rest = strings.TrimLeft(rest, blanks)
		if rest == "" {
			break
		}
		end := strings.IndexAny(rest, blanks)
		if end < 0 {
			fields = append(fields, rest)
			rest = ""
			break
		}
		fields = append(fields, rest[:end])
		rest = rest[end:]
	}
	return fields, strings.TrimLeft(rest, blanks)
}
