package platform

import "errors"

var (
	// ErrToolUnavailable means an external helper could not be executed.
	// The whole operation must stop.
	ErrToolUnavailable = errors.New("window tool unavailable")

	// ErrMalformedOutput means a helper printed text of an unexpected shape.
	ErrMalformedOutput = errors.New("malformed tool output")

	// ErrNotFound means the window manager published no data for a query,
	// e.g. no recency stack during a window manager restart.
	ErrNotFound = errors.New("not found")

	// ErrActiveWindowNotFound means the focused window vanished, or was
	// never listed, between queries of the same run.
	ErrActiveWindowNotFound = errors.New("active window not found in window list")
)
