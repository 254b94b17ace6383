// Package browser opens the browser session a run drives: a real browser
// through selenium or playwright, or the offline replay of the practice sites.
package browser

import (
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/browser/offline"
	"ui_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// Open - starts the configured backend; Quit on the returned driver releases everything it started
func Open(cfg *config.Config, logger logrus.FieldLogger) (interfaces.Driver, error) {
	logger.Infof("Backend: %s, browser name: %s.", cfg.Backend, cfg.BrowserName)
	switch cfg.Backend {
	case config.BackendPlaywright:
		return NewPlaywrightDriver(cfg, logger)
	case config.BackendOffline:
		d, err := offline.New()
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return NewSeleniumDriver(cfg, logger)
	}
}
