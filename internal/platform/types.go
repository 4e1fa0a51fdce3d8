package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Backend selects how window manager properties are read.
type Backend string

const (
	// BackendTools shells out to wmctrl and xprop for everything.
	BackendTools Backend = "tools"
	// BackendXGB reads the active window and the recency stack straight
	// from the X server; listing and actions still go through wmctrl.
	BackendXGB Backend = "xgb"
)

// ParseBackend converts a flag or config value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendTools, "":
		return BackendTools, nil
	case BackendXGB:
		return BackendXGB, nil
	default:
		return "", fmt.Errorf("unknown backend: %q (expected tools or xgb)", s)
	}
}

// Options configures a Provider.
type Options struct {
	Backend Backend
	Wmctrl  string // wmctrl binary path or name
	Xprop   string // xprop binary path or name
	// Timeout bounds every external call; 0 means no limit.
	Timeout time.Duration
	Logger  zerolog.Logger
}
