package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current session.
type Provider struct {
	Inventory    InventoryReader
	Recency      RecencyReader
	ActiveWindow ActiveWindowReader
	Actions      Actions
	Launcher     Launcher

	// Close releases backend resources such as display connections.
	// It may be nil.
	Close func() error
}

// Shutdown calls Close if set.
func (p *Provider) Shutdown() error {
	if p == nil || p.Close == nil {
		return nil
	}
	return p.Close()
}

// ErrUnsupported is returned when no backend registered itself.
var ErrUnsupported = fmt.Errorf("focus-cli is not supported on %s/%s; supported: X11 sessions on linux and the BSDs", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init().
// See internal/platform/x11/init.go for the X11 registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider for the current session.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
