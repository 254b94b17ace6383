//go:build e2e

package scenario

import (
	"context"
	"os"
	"strings"
	"testing"

	"ui_automation/application/controls"
	"ui_automation/infrastructure/browser"
	"ui_automation/infrastructure/config"
	"ui_automation/infrastructure/logging"

	"github.com/stretchr/testify/require"
)

// TestLiveSites runs every journey in the browser configured by the environment
func TestLiveSites(t *testing.T) {
	cfg, err := config.LoadFrom("../../.env")
	require.NoError(t, err)
	logger, closer, err := logging.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	driver, err := browser.Open(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Quit() })

	scope := controls.NewScope(driver, logger)
	scope.PresenceTimeout = cfg.PresenceTimeout
	scope.SuggestionTimeout = cfg.ExplicitWait
	suites, err := Build(Env{Scope: scope})
	require.NoError(t, err)

	var filter Filter
	if run := os.Getenv("E2E_RUN"); run != "" {
		require.NoError(t, filter.Run.Set(run))
	}
	results := (&Runner{Filter: filter, Reporter: ConsoleReporter{Out: os.Stdout}, Logger: logger}).Run(context.Background(), suites)
	for _, failed := range results.Failures() {
		t.Errorf("%s failed:\n%s", failed.ID(), strings.Join(failed.Errors, "\n"))
	}
}
