package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var variables = []string{
	"BACKEND", "BROWSER_NAME", "BROWSER_DRIVER_PATH", "CHROME_BINARY_PATH", "DRIVER_PORT",
	"HEADLESS", "IMPLICIT_WAIT", "EXPLICIT_WAIT", "PRESENCE_TIMEOUT", "LOG_FILE",
	"LOG_LEVEL", "DATA_DIR", "RESULTS_FILE",
}

// unsetAll clears the variables for the test and restores them afterwards
func unsetAll(t *testing.T) {
	t.Helper()
	for _, name := range variables {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestDefaults(t *testing.T) {
	unsetAll(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Backend:         BackendSelenium,
		BrowserName:     BrowserChrome,
		DriverPort:      9515,
		ImplicitWait:    5 * time.Second,
		ExplicitWait:    10 * time.Second,
		PresenceTimeout: 5 * time.Second,
		LogFile:         "reports/logger-logs.log",
		LogLevel:        "debug",
		ResultsFile:     "reports/results.json",
	}, cfg)
}

func TestEnvironment(t *testing.T) {
	unsetAll(t)
	t.Setenv("BACKEND", BackendPlaywright)
	t.Setenv("BROWSER_NAME", BrowserFirefox)
	t.Setenv("HEADLESS", "true")
	t.Setenv("PRESENCE_TIMEOUT", "750ms")
	t.Setenv("DATA_DIR", "/srv/data")

	cfg, err := LoadFrom()
	require.NoError(t, err)
	assert.Equal(t, BackendPlaywright, cfg.Backend)
	assert.Equal(t, BrowserFirefox, cfg.BrowserName)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 750*time.Millisecond, cfg.PresenceTimeout)
	assert.Equal(t, "/srv/data", cfg.DataDir)
}

func TestEnvFile(t *testing.T) {
	unsetAll(t)
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("BACKEND=offline\nLOG_LEVEL=info\nDRIVER_PORT=4444\n"), 0644))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFrom(file)
	require.NoError(t, err)
	assert.Equal(t, BackendOffline, cfg.Backend)
	assert.Equal(t, 4444, cfg.DriverPort)
	assert.Equal(t, "warn", cfg.LogLevel, "the environment wins over the file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Backend:         BackendSelenium,
			BrowserName:     BrowserChrome,
			ImplicitWait:    time.Second,
			ExplicitWait:    time.Second,
			PresenceTimeout: time.Second,
			LogLevel:        "info",
		}
	}

	for name, tc := range map[string]struct {
		mutate func(*Config)
		err    string
	}{
		"valid":         {mutate: func(*Config) {}},
		"backend":       {mutate: func(c *Config) { c.Backend = "chromedp" }, err: `unknown BACKEND "chromedp"`},
		"browser":       {mutate: func(c *Config) { c.BrowserName = "safari" }, err: `unknown BROWSER_NAME "safari"`},
		"log level":     {mutate: func(c *Config) { c.LogLevel = "loud" }, err: "invalid LOG_LEVEL"},
		"explicit wait": {mutate: func(c *Config) { c.ExplicitWait = 0 }, err: "EXPLICIT_WAIT must be positive"},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	unsetAll(t)
	t.Setenv("IMPLICIT_WAIT", "soon")
	_, err := LoadFrom()
	assert.ErrorContains(t, err, "failed to read environment")
}
