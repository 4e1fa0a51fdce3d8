package platform

import (
	"context"

	"github.com/mj1618/focus-cli/internal/model"
)

// InventoryReader lists the open windows.
type InventoryReader interface {
	// ListWindows returns every managed window in the order the window
	// manager reports them. Malformed records are dropped.
	ListWindows(ctx context.Context) ([]model.Window, error)
}

// RecencyReader reads the focus history of the window manager.
type RecencyReader interface {
	// ListRecency returns window ids as the window manager orders them.
	// It returns ErrNotFound when no history is published.
	ListRecency(ctx context.Context) ([]model.WindowID, error)
}

// ActiveWindowReader reads the window holding input focus.
type ActiveWindowReader interface {
	// ActiveWindow returns ErrNotFound when no window is focused.
	ActiveWindow(ctx context.Context) (model.WindowID, error)
}

// Actions issues commands to the window manager. None of them report
// whether the window manager carried the command out.
type Actions interface {
	CloseActive(ctx context.Context) error
	Focus(ctx context.Context, id model.WindowID) error
}

// Launcher starts applications.
type Launcher interface {
	// Launch spawns binary as a detached process and returns without
	// waiting for it.
	Launch(ctx context.Context, binary string) error
}
