package focus

import (
	"context"
	"errors"
	"fmt"

	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/rs/zerolog"
)

// View is one consistent reading of the window list and the focus history.
type View struct {
	// Windows is the inventory in discovery order.
	Windows []model.Window
	// Ranked holds the windows present in the recency stack, most recently
	// focused first. Without recency data it is the whole inventory in
	// discovery order with model.Unranked ranks.
	Ranked []model.RankedWindow
	// HasRecency is false when the window manager published no stack.
	HasRecency bool
}

// Snapshot reads the inventory and then the recency stack and joins them.
// A missing stack is not an error: the view falls back to inventory order.
func Snapshot(ctx context.Context, inv platform.InventoryReader, rec platform.RecencyReader, order model.StackOrder, log zerolog.Logger) (*View, error) {
	windows, err := inv.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	recency, err := rec.ListRecency(ctx)
	switch {
	case errors.Is(err, platform.ErrNotFound):
		log.Warn().Int("windows", len(windows)).Msg("no recency stack, using window list order")
		return &View{Windows: windows, Ranked: model.UnrankedView(windows)}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read recency stack: %w", err)
	}

	ranked := model.Rank(windows, model.Oriented(recency, order))
	log.Debug().
		Int("windows", len(windows)).
		Int("stacked", len(recency)).
		Int("ranked", len(ranked)).
		Interface("order", model.IDs(ranked)).
		Msg("ranked windows")
	return &View{Windows: windows, Ranked: ranked, HasRecency: true}, nil
}

// Lookup finds a window of the inventory by id.
func (v *View) Lookup(id model.WindowID) (model.Window, bool) {
	for _, w := range v.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return model.Window{}, false
}

// Matches returns the ranked windows satisfying pred, best first.
func (v *View) Matches(pred model.Predicate) []model.RankedWindow {
	return model.Filter(v.Ranked, pred)
}

// Pick returns the most recently focused window satisfying pred. A matching
// window missing from the recency stack is only chosen when no ranked window
// matches, in which case the first one listed wins.
func (v *View) Pick(pred model.Predicate) (model.RankedWindow, bool) {
	if m := v.Matches(pred); len(m) > 0 {
		return m[0], true
	}
	if !v.HasRecency {
		return model.RankedWindow{}, false
	}
	if m := model.Filter(model.UnrankedView(v.Windows), pred); len(m) > 0 {
		return m[0], true
	}
	return model.RankedWindow{}, false
}

// Select returns the ranked windows satisfying pred. With unstacked set, the
// matching windows missing from the recency stack follow in list order with
// model.Unranked ranks.
func (v *View) Select(pred model.Predicate, unstacked bool) []model.RankedWindow {
	out := v.Matches(pred)
	if !unstacked || !v.HasRecency {
		return out
	}
	seen := make(map[model.WindowID]bool, len(v.Ranked))
	for _, w := range v.Ranked {
		seen[w.ID] = true
	}
	for _, w := range model.Filter(model.UnrankedView(v.Windows), pred) {
		if !seen[w.ID] {
			out = append(out, w)
		}
	}
	return out
}
