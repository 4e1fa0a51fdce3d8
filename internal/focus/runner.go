// Package focus implements the close-and-focus and start-or-focus workflows
// on top of the platform readers and actions.
package focus

import (
	"context"
	"errors"
	"fmt"

	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/rs/zerolog"
)

// State is the phase a workflow is in.
type State string

const (
	StateIdle        State = "idle"
	StateDetermining State = "determining"
	StateActing      State = "acting"
)

// Outcome describes how a workflow ended.
type Outcome string

const (
	OutcomeFocused            Outcome = "focused"
	OutcomeNoMatch            Outcome = "no-match"
	OutcomeActiveMissing      Outcome = "active-window-not-found"
	OutcomeFocusedType        Outcome = "focused-type"
	OutcomeFocusedApplication Outcome = "focused-application"
	OutcomeLaunched           Outcome = "launched"
)

// CloseResult is the output of close-and-focus.
type CloseResult struct {
	OK          bool            `yaml:"ok"                    json:"ok"`
	Action      string          `yaml:"action"                json:"action"`
	Outcome     Outcome         `yaml:"outcome"               json:"outcome"`
	Closed      *model.WindowID `yaml:"closed,omitempty"      json:"closed,omitempty"`
	Application string          `yaml:"application,omitempty" json:"application,omitempty"`
	Focused     *model.Window   `yaml:"focused,omitempty"     json:"focused,omitempty"`
}

// StartResult is the output of start-or-focus.
type StartResult struct {
	OK       bool          `yaml:"ok"                 json:"ok"`
	Action   string        `yaml:"action"             json:"action"`
	Outcome  Outcome       `yaml:"outcome"            json:"outcome"`
	Target   model.Target  `yaml:"target"             json:"target"`
	Focused  *model.Window `yaml:"focused,omitempty"  json:"focused,omitempty"`
	Launched string        `yaml:"launched,omitempty" json:"launched,omitempty"`
}

// FocusResult is the output of focusing a window by id.
type FocusResult struct {
	OK     bool         `yaml:"ok"     json:"ok"`
	Action string       `yaml:"action" json:"action"`
	Window model.Window `yaml:"window" json:"window"`
}

// Runner executes workflows against one platform provider. Every workflow
// takes a fresh snapshot; nothing is kept between calls.
type Runner struct {
	inventory platform.InventoryReader
	recency   platform.RecencyReader
	active    platform.ActiveWindowReader
	actions   platform.Actions
	launcher  platform.Launcher
	order     model.StackOrder
	log       zerolog.Logger
}

// NewRunner creates a Runner from a provider's backends.
func NewRunner(p *platform.Provider, order model.StackOrder, log zerolog.Logger) *Runner {
	return &Runner{
		inventory: p.Inventory,
		recency:   p.Recency,
		active:    p.ActiveWindow,
		actions:   p.Actions,
		launcher:  p.Launcher,
		order:     order,
		log:       log.With().Str("component", "focus").Logger(),
	}
}

func (r *Runner) enter(workflow string, s State) {
	r.log.Debug().Str("workflow", workflow).Str("state", string(s)).Msg("state change")
}

// Snapshot takes a fresh view of the windows.
func (r *Runner) Snapshot(ctx context.Context) (*View, error) {
	return Snapshot(ctx, r.inventory, r.recency, r.order, r.log)
}

// CloseAndFocus closes the focused window and focuses the most recently used
// remaining window of the same application, if there is one.
//
// When the focused window cannot be found in the window list nothing is
// closed and the error wraps platform.ErrActiveWindowNotFound; the returned
// result is still filled in.
func (r *Runner) CloseAndFocus(ctx context.Context) (CloseResult, error) {
	const workflow = "close-and-focus"
	res := CloseResult{Action: workflow}

	r.enter(workflow, StateDetermining)
	defer r.enter(workflow, StateIdle)

	activeID, err := r.active.ActiveWindow(ctx)
	if errors.Is(err, platform.ErrNotFound) {
		res.Outcome = OutcomeActiveMissing
		return res, fmt.Errorf("%w: no window has focus", platform.ErrActiveWindowNotFound)
	}
	if err != nil {
		return res, fmt.Errorf("failed to read active window: %w", err)
	}

	view, err := r.Snapshot(ctx)
	if err != nil {
		return res, err
	}
	active, ok := view.Lookup(activeID)
	if !ok {
		res.Outcome = OutcomeActiveMissing
		return res, fmt.Errorf("%w: %s", platform.ErrActiveWindowNotFound, activeID)
	}
	res.Application = active.Application

	r.enter(workflow, StateActing)
	if err := r.actions.CloseActive(ctx); err != nil {
		return res, fmt.Errorf("failed to close window %s: %w", activeID, err)
	}
	res.Closed = &activeID
	r.log.Info().Stringer("id", activeID).Str("application", active.Application).Msg("closed window")

	next, ok := view.Pick(model.All(model.ExcludeID(activeID), model.MatchApplication(active.Application)))
	if !ok {
		res.OK = true
		res.Outcome = OutcomeNoMatch
		r.log.Info().Str("application", active.Application).Msg("no other window to focus")
		return res, nil
	}
	if err := r.actions.Focus(ctx, next.ID); err != nil {
		return res, fmt.Errorf("failed to focus window %s: %w", next.ID, err)
	}
	res.OK = true
	res.Outcome = OutcomeFocused
	res.Focused = &next.Window
	r.log.Info().Stringer("id", next.ID).Int("rank", next.Rank).Msg("focused window")
	return res, nil
}

// StartOrFocus focuses the most recently used window matching windowName or,
// when there is none, launches binary. A dotted windowName such as
// "Mail.Thunderbird" is first matched as a type tag, then by its application
// part; a bare name only by application.
func (r *Runner) StartOrFocus(ctx context.Context, binary, windowName string) (StartResult, error) {
	const workflow = "start-or-focus"
	target := model.ParseTarget(windowName)
	res := StartResult{Action: workflow, Target: target}

	if binary == "" {
		return res, fmt.Errorf("application binary must not be empty")
	}
	if target.Application == "" {
		return res, fmt.Errorf("invalid window name %q: no application part", windowName)
	}

	r.enter(workflow, StateDetermining)
	defer r.enter(workflow, StateIdle)

	view, err := r.Snapshot(ctx)
	if err != nil {
		return res, err
	}

	var (
		match   model.RankedWindow
		found   bool
		outcome Outcome
	)
	if target.HasType() {
		match, found = view.Pick(model.MatchType(target.Type))
		outcome = OutcomeFocusedType
	}
	if !found {
		match, found = view.Pick(model.MatchApplication(target.Application))
		outcome = OutcomeFocusedApplication
	}

	r.enter(workflow, StateActing)
	if found {
		if err := r.actions.Focus(ctx, match.ID); err != nil {
			return res, fmt.Errorf("failed to focus window %s: %w", match.ID, err)
		}
		res.OK = true
		res.Outcome = outcome
		res.Focused = &match.Window
		r.log.Info().Stringer("id", match.ID).Str("outcome", string(outcome)).Msg("focused window")
		return res, nil
	}

	if err := r.launcher.Launch(ctx, binary); err != nil {
		return res, err
	}
	res.OK = true
	res.Outcome = OutcomeLaunched
	res.Launched = binary
	return res, nil
}

// Focus raises the window with the given id. The id must be listed.
func (r *Runner) Focus(ctx context.Context, id model.WindowID) (model.Window, error) {
	windows, err := r.inventory.ListWindows(ctx)
	if err != nil {
		return model.Window{}, fmt.Errorf("failed to list windows: %w", err)
	}
	view := &View{Windows: windows}
	w, ok := view.Lookup(id)
	if !ok {
		return model.Window{}, fmt.Errorf("no window found with id %s", id)
	}
	if err := r.actions.Focus(ctx, id); err != nil {
		return w, err
	}
	return w, nil
}
