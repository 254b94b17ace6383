package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/config"

	pkgerrors "github.com/pkg/errors"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

const playwrightPollInterval = 100 * time.Millisecond

// attributeScript reads a property the way WebDriver's getAttribute does: the
// live property first, booleans as "true" or null, then the markup attribute
const attributeScript = `(el, name) => {
	const prop = el[name];
	if (typeof prop === 'boolean') return prop ? 'true' : null;
	if (prop !== undefined && prop !== null && typeof prop !== 'object' && typeof prop !== 'function') return String(prop);
	return el.getAttribute(name);
}`

type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	frame   playwright.Frame
	timeout float64
	logger  logrus.FieldLogger
}

type playwrightElement struct {
	h       playwright.ElementHandle
	timeout float64
}

// NewPlaywrightDriver - launches the configured browser through playwright
func NewPlaywrightDriver(cfg *config.Config, logger logrus.FieldLogger) (interfaces.Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType := pw.Chromium
	if cfg.BrowserName == config.BrowserFirefox {
		browserType = pw.Firefox
	}
	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.BrowserName == config.BrowserChrome {
		launch.Args = []string{"--start-maximized", "--disable-dev-shm-usage", "--no-sandbox"}
		if cfg.ChromeBinaryPath != "" {
			launch.ExecutablePath = playwright.String(cfg.ChromeBinaryPath)
		}
	}
	browser, err := browserType.Launch(launch)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		NoViewport: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	logger.Infof("Playwright browser created - instance: %s.", cfg.BrowserName)
	return &playwrightDriver{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
		frame:   page.MainFrame(),
		timeout: float64(cfg.ExplicitWait.Milliseconds()),
		logger:  logger,
	}, nil
}

func (p *playwrightDriver) Get(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(30000),
	})
	p.frame = p.page.MainFrame()
	return translatePlaywright(err)
}

func (p *playwrightDriver) Title() (string, error) {
	title, err := p.page.Title()
	return title, translatePlaywright(err)
}

func (p *playwrightDriver) CurrentURL() (string, error) {
	return p.page.URL(), nil
}

func (p *playwrightDriver) FindElement(by, value string) (interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	h, err := p.frame.QuerySelector(selector)
	if err != nil {
		return nil, translatePlaywright(err)
	}
	if h == nil {
		return nil, pkgerrors.Wrapf(entities.ErrNoSuchElement, "(%s, %s)", by, value)
	}
	return &playwrightElement{h: h, timeout: p.timeout}, nil
}

func (p *playwrightDriver) FindElements(by, value string) ([]interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	found, err := p.frame.QuerySelectorAll(selector)
	if err != nil {
		return nil, translatePlaywright(err)
	}
	return p.wrap(found), nil
}

// ExecuteScript - runs a WebDriver style function body in the current frame
func (p *playwrightDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	unwrapped := make([]interface{}, len(args))
	for i, arg := range args {
		if el, ok := arg.(*playwrightElement); ok {
			unwrapped[i] = el.h
			continue
		}
		unwrapped[i] = arg
	}
	result, err := p.frame.Evaluate(wrapScript(script), unwrapped)
	return result, translatePlaywright(err)
}

func (p *playwrightDriver) SwitchFrame(frame interfaces.Element) error {
	if frame == nil {
		p.frame = p.page.MainFrame()
		return nil
	}
	el, ok := frame.(*playwrightElement)
	if !ok {
		return pkgerrors.Wrapf(entities.ErrTypeMismatch, "frame %T is not a playwright element", frame)
	}
	content, err := el.h.ContentFrame()
	if err != nil {
		return translatePlaywright(err)
	}
	if content == nil {
		return pkgerrors.Wrap(entities.ErrNoSuchElement, "element is not a frame")
	}
	p.frame = content
	return nil
}

func (p *playwrightDriver) WaitWithTimeout(condition interfaces.Condition, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		done, err := condition(p)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout after %v", timeout)
		}
		time.Sleep(playwrightPollInterval)
	}
}

// Quit - closes the page, context and browser, then stops playwright; already closed targets are not an error
func (p *playwrightDriver) Quit() error {
	var closeErr error
	keep := func(what string, err error) {
		if err == nil || closeErr != nil || errors.Is(err, playwright.ErrTargetClosed) {
			return
		}
		closeErr = fmt.Errorf("failed to close %s: %w", what, err)
	}

	if p.context != nil {
		keep("context", p.context.Close())
		p.context = nil
	}
	if p.browser != nil {
		keep("browser", p.browser.Close())
		p.browser = nil
	}
	if p.pw != nil {
		keep("playwright", p.pw.Stop())
		p.pw = nil
	}
	p.logger.Info("Playwright browser closed.")
	return closeErr
}

func (p *playwrightDriver) wrap(found []playwright.ElementHandle) []interfaces.Element {
	elements := make([]interfaces.Element, 0, len(found))
	for _, h := range found {
		elements = append(elements, &playwrightElement{h: h, timeout: p.timeout})
	}
	return elements
}

func (e *playwrightElement) FindElement(by, value string) (interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	h, err := e.h.QuerySelector(selector)
	if err != nil {
		return nil, translatePlaywright(err)
	}
	if h == nil {
		return nil, pkgerrors.Wrapf(entities.ErrNoSuchElement, "(%s, %s)", by, value)
	}
	return &playwrightElement{h: h, timeout: e.timeout}, nil
}

func (e *playwrightElement) FindElements(by, value string) ([]interfaces.Element, error) {
	selector, err := playwrightSelector(by, value)
	if err != nil {
		return nil, err
	}
	found, err := e.h.QuerySelectorAll(selector)
	if err != nil {
		return nil, translatePlaywright(err)
	}
	elements := make([]interfaces.Element, 0, len(found))
	for _, h := range found {
		elements = append(elements, &playwrightElement{h: h, timeout: e.timeout})
	}
	return elements, nil
}

func (e *playwrightElement) Click() error {
	return translatePlaywright(e.h.Click(playwright.ElementHandleClickOptions{
		Timeout: playwright.Float(e.timeout),
	}))
}

func (e *playwrightElement) Clear() error {
	return translatePlaywright(e.h.Fill("", playwright.ElementHandleFillOptions{
		Timeout: playwright.Float(e.timeout),
	}))
}

// SendKeys - types text; the WebDriver Return and Enter codes become Enter presses
func (e *playwrightElement) SendKeys(keys string) error {
	for _, chunk := range splitKeys(keys) {
		var err error
		if chunk.enter {
			err = e.h.Press("Enter")
		} else {
			err = e.h.Type(chunk.text)
		}
		if err != nil {
			return translatePlaywright(err)
		}
	}
	return nil
}

func (e *playwrightElement) MoveTo(xOffset, yOffset int) error {
	return translatePlaywright(e.h.Hover(playwright.ElementHandleHoverOptions{
		Timeout: playwright.Float(e.timeout),
	}))
}

// Text - returns the rendered text, empty for hidden elements as WebDriver does
func (e *playwrightElement) Text() (string, error) {
	visible, err := e.h.IsVisible()
	if err != nil || !visible {
		return "", translatePlaywright(err)
	}
	text, err := e.h.InnerText()
	return text, translatePlaywright(err)
}

func (e *playwrightElement) GetAttribute(name string) (string, error) {
	value, err := e.h.Evaluate(attributeScript, name)
	if err != nil {
		return "", translatePlaywright(err)
	}
	if value == nil {
		return "", nil
	}
	return fmt.Sprint(value), nil
}

func (e *playwrightElement) IsDisplayed() (bool, error) {
	ok, err := e.h.IsVisible()
	return ok, translatePlaywright(err)
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	ok, err := e.h.IsEnabled()
	return ok, translatePlaywright(err)
}

func (e *playwrightElement) IsSelected() (bool, error) {
	selected, err := e.h.Evaluate(`el => !!(el.checked || el.selected)`)
	if err != nil {
		return false, translatePlaywright(err)
	}
	ok, _ := selected.(bool)
	return ok, nil
}

func (e *playwrightElement) Location() (*entities.Point, error) {
	box, err := e.h.BoundingBox()
	if err != nil {
		return nil, translatePlaywright(err)
	}
	if box == nil {
		return &entities.Point{}, nil
	}
	return &entities.Point{X: int(box.X), Y: int(box.Y)}, nil
}

// playwrightSelector - maps a WebDriver locator strategy to a playwright selector
func playwrightSelector(by, value string) (string, error) {
	switch by {
	case entities.ByCSSSelector, entities.ByTagName:
		return "css=" + value, nil
	case entities.ByXPath:
		return "xpath=" + value, nil
	case entities.ByID:
		return "id=" + value, nil
	case entities.ByName:
		return fmt.Sprintf("css=[name=%q]", value), nil
	case entities.ByClassName:
		return "css=." + value, nil
	case entities.ByLinkText:
		return fmt.Sprintf("xpath=//a[normalize-space(.)=%s]", xpathLiteral(value)), nil
	case entities.ByPartialLinkText:
		return fmt.Sprintf("xpath=//a[contains(normalize-space(.), %s)]", xpathLiteral(value)), nil
	}
	return "", pkgerrors.Wrapf(entities.ErrNotImplemented, "locator strategy %q", by)
}

// xpathLiteral - quotes s for use inside an XPath expression
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

// wrapScript - turns a function body reading `arguments` into an expression taking the argument list
func wrapScript(body string) string {
	return "(args) => (function() {\n" + body + "\n}).apply(null, args)"
}

type keyChunk struct {
	text  string
	enter bool
}

func splitKeys(keys string) []keyChunk {
	var (
		chunks []keyChunk
		text   strings.Builder
	)
	for _, r := range keys {
		switch string(r) {
		case entities.ReturnKey, entities.EnterKey:
			if text.Len() > 0 {
				chunks = append(chunks, keyChunk{text: text.String()})
				text.Reset()
			}
			chunks = append(chunks, keyChunk{enter: true})
		default:
			text.WriteRune(r)
		}
	}
	if text.Len() > 0 {
		chunks = append(chunks, keyChunk{text: text.String()})
	}
	return chunks
}

// translatePlaywright - maps playwright timeouts and detached handles onto the domain sentinels
func translatePlaywright(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, playwright.ErrTimeout):
		return pkgerrors.Wrap(entities.ErrTimeout, err.Error())
	case strings.Contains(err.Error(), "not attached to the DOM"):
		return pkgerrors.Wrap(entities.ErrStaleElement, err.Error())
	}
	return err
}
