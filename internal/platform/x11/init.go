//go:build unix

package x11

import "github.com/mj1618/focus-cli/internal/platform"

func init() {
	platform.NewProviderFunc = NewProvider
}

// NewProvider wires the wmctrl/xprop adapters. With the xgb backend the
// active window and recency stack are read over a direct X connection.
func NewProvider(opts platform.Options) (*platform.Provider, error) {
	log := opts.Logger.With().Str("component", "x11").Logger()
	run := NewExecRunner(opts.Timeout, log)
	wmctrl := NewWmctrl(run, opts.Wmctrl, log)
	xprop := NewXprop(run, opts.Xprop, log)

	p := &platform.Provider{
		Inventory:    wmctrl,
		Recency:      xprop,
		ActiveWindow: xprop,
		Actions:      wmctrl,
		Launcher:     NewLauncher(log),
	}

	if opts.Backend == platform.BackendXGB {
		conn, err := DialX("", log)
		if err != nil {
			return nil, err
		}
		p.Recency = conn
		p.ActiveWindow = conn
		p.Close = conn.Close
	}
	return p, nil
}
