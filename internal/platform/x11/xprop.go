package x11

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/rs/zerolog"
)

// DefaultXprop is the xprop binary used when none is configured.
const DefaultXprop = "xprop"

const (
	atomActiveWindow = "_NET_ACTIVE_WINDOW"
	atomStacking     = "_NET_CLIENT_LIST_STACKING"
)

var (
	activeWindowRe = regexp.MustCompile(`window id # (0[xX][0-9a-fA-F]+)`)
	stackingRe     = regexp.MustCompile(atomStacking + `[^\n]*?# ([^\n]*)`)
)

// Xprop reads root window properties through the xprop helper.
type Xprop struct {
	run Runner
	bin string
	log zerolog.Logger
}

// NewXprop creates an xprop adapter. An empty bin uses DefaultXprop.
func NewXprop(run Runner, bin string, log zerolog.Logger) *Xprop {
	if bin == "" {
		bin = DefaultXprop
	}
	return &Xprop{run: run, bin: bin, log: log}
}

// ActiveWindow runs `xprop -root _NET_ACTIVE_WINDOW`.
func (x *Xprop) ActiveWindow(ctx context.Context) (model.WindowID, error) {
	out, err := x.run.Output(ctx, x.bin, "-root", atomActiveWindow)
	if err != nil {
		return 0, err
	}
	return parseActiveWindow(string(out))
}

// ListRecency runs `xprop -root _NET_CLIENT_LIST_STACKING`.
func (x *Xprop) ListRecency(ctx context.Context) ([]model.WindowID, error) {
	out, err := x.run.Output(ctx, x.bin, "-root", atomStacking)
	if err != nil {
		return nil, err
	}
	ids, bad, err := parseStacking(string(out))
	for _, tok := range bad {
		x.log.Debug().Str("token", tok).Msg("skipping malformed stacking entry")
	}
	if err != nil {
		x.log.Warn().Msg("client stacking not found in xprop output")
	}
	return ids, err
}

// parseActiveWindow extracts the id following "window id #". A property
// that is unset or names window 0 yields platform.ErrNotFound.
func parseActiveWindow(out string) (model.WindowID, error) {
	if !strings.Contains(out, atomActiveWindow) {
		return 0, fmt.Errorf("%w: xprop printed %q", platform.ErrMalformedOutput, strings.TrimSpace(out))
	}
	m := activeWindowRe.FindStringSubmatch(out)
	if m == nil {
		return 0, platform.ErrNotFound
	}
	id, err := model.ParseWindowID(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", platform.ErrMalformedOutput, err)
	}
	if id == 0 {
		return 0, platform.ErrNotFound
	}
	return id, nil
}

// parseStacking extracts the comma separated id list after the
// _NET_CLIENT_LIST_STACKING marker. Tokens that are not ids are returned in
// bad. A missing marker or an empty list is platform.ErrNotFound.
func parseStacking(out string) (ids []model.WindowID, bad []string, err error) {
	m := stackingRe.FindStringSubmatch(out)
	if m == nil {
		return nil, nil, platform.ErrNotFound
	}
	for _, tok := range strings.Split(m[1], ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, perr := model.ParseWindowID(tok)
		if perr != nil {
			bad = append(bad, tok)
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, bad, platform.ErrNotFound
	}
	return ids, bad, nil
}
