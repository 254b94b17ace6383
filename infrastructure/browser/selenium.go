package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/config"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// chromePrefs turns off the password leak bubble that covers the shop forms
var chromePrefs = map[string]interface{}{
	"profile.password_manager_leak_detection": false,
}

type seleniumDriver struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  logrus.FieldLogger
}

type seleniumElement struct {
	we selenium.WebElement
}

// findDriver - finds the chromedriver or geckodriver executable
func findDriver(cfg *config.Config) (string, error) {
	if cfg.DriverPath != "" {
		if _, err := os.Stat(cfg.DriverPath); err != nil {
			return "", pkgerrors.Wrap(err, "BROWSER_DRIVER_PATH")
		}
		return cfg.DriverPath, nil
	}

	name := "chromedriver"
	if cfg.BrowserName == config.BrowserFirefox {
		name = "geckodriver"
	}
	commonPaths := []string{
		filepath.Join("/usr/local/bin", name),
		filepath.Join("/usr/bin", name),
		filepath.Join("/opt/homebrew/bin", name),
		filepath.Join(os.Getenv("HOME"), "bin", name),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%s not found. Please install it or set BROWSER_DRIVER_PATH environment variable", name)
}

// findChromeBinary - finds Chrome/Chromium browser executable path, empty lets chromedriver decide
func findChromeBinary(cfg *config.Config) string {
	if cfg.ChromeBinaryPath != "" {
		if _, err := os.Stat(cfg.ChromeBinaryPath); err == nil {
			return cfg.ChromeBinaryPath
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// seleniumCapabilities - builds the capabilities for the configured browser
func seleniumCapabilities(cfg *config.Config, chromeBinary string) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": cfg.BrowserName}

	if cfg.BrowserName == config.BrowserFirefox {
		ffCaps := firefox.Capabilities{}
		if cfg.Headless {
			ffCaps.Args = append(ffCaps.Args, "-headless")
		}
		caps.AddFirefox(ffCaps)
		return caps
	}

	chromeCaps := chrome.Capabilities{
		Path:            chromeBinary,
		Prefs:           chromePrefs,
		ExcludeSwitches: []string{"enable-logging"},
		W3C:             true,
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if cfg.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new", "--window-size=1920,1080")
	}
	caps.AddChrome(chromeCaps)
	return caps
}

// NewSeleniumDriver - starts the browser driver service and opens a maximized window
func NewSeleniumDriver(cfg *config.Config, logger logrus.FieldLogger) (interfaces.Driver, error) {
	driverPath, err := findDriver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to find browser driver: %w", err)
	}
	logger.Infof("Using browser driver at: %s", driverPath)

	var (
		service *selenium.Service
		url     string
	)
	switch cfg.BrowserName {
	case config.BrowserFirefox:
		service, err = selenium.NewGeckoDriverService(driverPath, cfg.DriverPort)
		url = fmt.Sprintf("http://localhost:%d", cfg.DriverPort)
	default:
		service, err = selenium.NewChromeDriverService(driverPath, cfg.DriverPort)
		url = fmt.Sprintf("http://localhost:%d/wd/hub", cfg.DriverPort)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", filepath.Base(driverPath), err)
	}

	chromeBinary := ""
	if cfg.BrowserName == config.BrowserChrome {
		chromeBinary = findChromeBinary(cfg)
		if chromeBinary != "" {
			logger.Infof("Using Chrome binary at: %s", chromeBinary)
		}
	}
	caps := seleniumCapabilities(cfg, chromeBinary)
	logger.Infof("Custom browser preferences: %v", chromePrefs)

	wd, err := selenium.NewRemote(caps, url)
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	if !cfg.Headless {
		if err := wd.MaximizeWindow(""); err != nil {
			logger.Warnf("Failed to maximize window: %v", err)
		}
	}
	if err := wd.SetImplicitWaitTimeout(cfg.ImplicitWait); err != nil {
		logger.Warnf("Failed to set implicit wait: %v", err)
	}

	logger.Infof("WebDriver created - instance: %s.", cfg.BrowserName)
	return &seleniumDriver{wd: wd, service: service, logger: logger}, nil
}

func (s *seleniumDriver) Get(url string) error {
	return translateSelenium(s.wd.Get(url))
}

func (s *seleniumDriver) Title() (string, error) {
	title, err := s.wd.Title()
	return title, translateSelenium(err)
}

func (s *seleniumDriver) CurrentURL() (string, error) {
	url, err := s.wd.CurrentURL()
	return url, translateSelenium(err)
}

func (s *seleniumDriver) FindElement(by, value string) (interfaces.Element, error) {
	we, err := s.wd.FindElement(by, value)
	if err != nil {
		return nil, translateSelenium(err)
	}
	return &seleniumElement{we: we}, nil
}

func (s *seleniumDriver) FindElements(by, value string) ([]interfaces.Element, error) {
	found, err := s.wd.FindElements(by, value)
	if err != nil {
		return nil, translateSelenium(err)
	}
	return wrapSelenium(found), nil
}

// ExecuteScript - runs a function body; element arguments are passed as DOM nodes
func (s *seleniumDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	unwrapped := make([]interface{}, len(args))
	for i, arg := range args {
		if el, ok := arg.(*seleniumElement); ok {
			unwrapped[i] = el.we
			continue
		}
		unwrapped[i] = arg
	}
	result, err := s.wd.ExecuteScript(script, unwrapped)
	return result, translateSelenium(err)
}

func (s *seleniumDriver) SwitchFrame(frame interfaces.Element) error {
	if frame == nil {
		return translateSelenium(s.wd.SwitchFrame(nil))
	}
	el, ok := frame.(*seleniumElement)
	if !ok {
		return pkgerrors.Wrapf(entities.ErrTypeMismatch, "frame %T is not a selenium element", frame)
	}
	return translateSelenium(s.wd.SwitchFrame(el.we))
}

func (s *seleniumDriver) WaitWithTimeout(condition interfaces.Condition, timeout time.Duration) error {
	return s.wd.WaitWithTimeout(func(selenium.WebDriver) (bool, error) {
		return condition(s)
	}, timeout)
}

// Quit - closes the browser and stops the driver service
func (s *seleniumDriver) Quit() error {
	var quitErr error
	if s.wd != nil {
		quitErr = translateSelenium(s.wd.Quit())
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil && quitErr == nil {
			quitErr = fmt.Errorf("failed to stop driver service: %w", err)
		}
		s.service = nil
	}
	s.logger.Info("WebDriver quitted.")
	return quitErr
}

func wrapSelenium(found []selenium.WebElement) []interfaces.Element {
	elements := make([]interfaces.Element, 0, len(found))
	for _, we := range found {
		elements = append(elements, &seleniumElement{we: we})
	}
	return elements
}

func (e *seleniumElement) FindElement(by, value string) (interfaces.Element, error) {
	we, err := e.we.FindElement(by, value)
	if err != nil {
		return nil, translateSelenium(err)
	}
	return &seleniumElement{we: we}, nil
}

func (e *seleniumElement) FindElements(by, value string) ([]interfaces.Element, error) {
	found, err := e.we.FindElements(by, value)
	if err != nil {
		return nil, translateSelenium(err)
	}
	return wrapSelenium(found), nil
}

func (e *seleniumElement) Click() error {
	return translateSelenium(e.we.Click())
}

func (e *seleniumElement) Clear() error {
	return translateSelenium(e.we.Clear())
}

func (e *seleniumElement) SendKeys(keys string) error {
	return translateSelenium(e.we.SendKeys(keys))
}

func (e *seleniumElement) MoveTo(xOffset, yOffset int) error {
	return translateSelenium(e.we.MoveTo(xOffset, yOffset))
}

func (e *seleniumElement) Text() (string, error) {
	text, err := e.we.Text()
	return text, translateSelenium(err)
}

func (e *seleniumElement) GetAttribute(name string) (string, error) {
	value, err := e.we.GetAttribute(name)
	return value, translateSelenium(err)
}

func (e *seleniumElement) IsDisplayed() (bool, error) {
	ok, err := e.we.IsDisplayed()
	return ok, translateSelenium(err)
}

func (e *seleniumElement) IsEnabled() (bool, error) {
	ok, err := e.we.IsEnabled()
	return ok, translateSelenium(err)
}

func (e *seleniumElement) IsSelected() (bool, error) {
	ok, err := e.we.IsSelected()
	return ok, translateSelenium(err)
}

func (e *seleniumElement) Location() (*entities.Point, error) {
	point, err := e.we.Location()
	if err != nil {
		return nil, translateSelenium(err)
	}
	return &entities.Point{X: point.X, Y: point.Y}, nil
}

// translateSelenium - maps WebDriver error codes onto the domain sentinels
func translateSelenium(err error) error {
	if err == nil {
		return nil
	}
	var wdErr *selenium.Error
	if !errors.As(err, &wdErr) {
		return err
	}
	switch wdErr.Err {
	case "no such element", "no such frame":
		return pkgerrors.Wrap(entities.ErrNoSuchElement, wdErr.Message)
	case "stale element reference":
		return pkgerrors.Wrap(entities.ErrStaleElement, wdErr.Message)
	case "timeout", "script timeout":
		return pkgerrors.Wrap(entities.ErrTimeout, wdErr.Message)
	}
	return err
}
