// Package config reads run settings from an optional .env file and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Browser backends
const (
	BackendSelenium   = "selenium"
	BackendPlaywright = "playwright"
	BackendOffline    = "offline"
)

// Browsers
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
)

// Config holds everything a run needs to open a browser and report on it
type Config struct {
	Backend          string        `envconfig:"BACKEND" default:"selenium"`
	BrowserName      string        `envconfig:"BROWSER_NAME" default:"chrome"`
	DriverPath       string        `envconfig:"BROWSER_DRIVER_PATH"`
	ChromeBinaryPath string        `envconfig:"CHROME_BINARY_PATH"`
	DriverPort       int           `envconfig:"DRIVER_PORT" default:"9515"`
	Headless         bool          `envconfig:"HEADLESS" default:"false"`
	ImplicitWait     time.Duration `envconfig:"IMPLICIT_WAIT" default:"5s"`
	ExplicitWait     time.Duration `envconfig:"EXPLICIT_WAIT" default:"10s"`
	PresenceTimeout  time.Duration `envconfig:"PRESENCE_TIMEOUT" default:"5s"`
	LogFile          string        `envconfig:"LOG_FILE" default:"reports/logger-logs.log"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"debug"`
	DataDir          string        `envconfig:"DATA_DIR"`
	ResultsFile      string        `envconfig:"RESULTS_FILE" default:"reports/results.json"`
}

// Load - reads .env when present, then the environment
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom - reads the given env files when present, then the environment; set variables win
func LoadFrom(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", file)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate - rejects unknown backends, browsers and log levels and non-positive waits
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSelenium, BackendPlaywright, BackendOffline:
	default:
		return fmt.Errorf("unknown BACKEND %q: use %s, %s or %s", c.Backend, BackendSelenium, BackendPlaywright, BackendOffline)
	}
	switch c.BrowserName {
	case BrowserChrome, BrowserFirefox:
	default:
		return fmt.Errorf("unknown BROWSER_NAME %q: use %s or %s", c.BrowserName, BrowserChrome, BrowserFirefox)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	for name, wait := range map[string]time.Duration{
		"IMPLICIT_WAIT":    c.ImplicitWait,
		"EXPLICIT_WAIT":    c.ExplicitWait,
		"PRESENCE_TIMEOUT": c.PresenceTimeout,
	} {
		if wait <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, wait)
		}
	}
	return nil
}
