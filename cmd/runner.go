package cmd

import (
	"github.com/mj1618/focus-cli/internal/focus"
	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/platform"
)

// newRunner builds the platform provider from the loaded configuration. The
// returned function releases the provider.
func newRunner() (*focus.Runner, func(), error) {
	provider, err := platform.NewProvider(cfg.PlatformOptions(log))
	if err != nil {
		return nil, nil, err
	}
	done := func() {
		if err := provider.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("failed to release window backend")
		}
	}
	return focus.NewRunner(provider, model.StackOrder(cfg.StackOrder), log), done, nil
}
