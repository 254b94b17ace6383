// Package htmldriver implements the browser driver surface over parsed HTML
// documents held in memory. Pages are registered up front, behaviour that a
// real site would run in JavaScript is attached with Handle and HandleScript.
package htmldriver

import (
	"fmt"
	"strings"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Event names a DOM interaction that handlers can react to
type Event string

const (
	Click Event = "click"
	Input Event = "input"
	Enter Event = "enter"
	Hover Event = "hover"
)

// Handler reacts to an event on a matching element, usually by mutating the DOM
type Handler func(d *Driver, el *Element) error

// ScriptFunc answers ExecuteScript for one registered script body
type ScriptFunc func(d *Driver, args []interface{}) (interface{}, error)

type handler struct {
	scope   string
	event   Event
	locator entities.Locator
	fn      Handler
}

// Driver is an in-memory browser with one window
type Driver struct {
	pages    map[string]string
	url      string
	doc      *html.Node
	root     *html.Node
	frames   map[*html.Node]*html.Node
	handlers []handler
	scripts  map[string]ScriptFunc
	onLoad   map[string][]func(d *Driver) error

	width, height    int
	scrollX, scrollY int
	pollInterval     time.Duration
	quit             bool

	// pending navigation scheduled by Redirect
	redirectURL string
	redirectAt  time.Time
}

// New - creates empty driver with a 1280x720 window and no pages
func New() *Driver {
	return &Driver{
		pages:        make(map[string]string),
		frames:       make(map[*html.Node]*html.Node),
		scripts:      make(map[string]ScriptFunc),
		onLoad:       make(map[string][]func(d *Driver) error),
		width:        1280,
		height:       720,
		pollInterval: 10 * time.Millisecond,
	}
}

// AddPage - registers the document served at url
func (d *Driver) AddPage(url, source string) {
	d.pages[url] = source
}

// Load - registers the document served at url and navigates to it
func (d *Driver) Load(url, source string) error {
	d.AddPage(url, source)
	return d.Get(url)
}

// Handle - runs fn whenever event fires on an element matched by locator, on any page
func (d *Driver) Handle(event Event, locator entities.Locator, fn Handler) {
	d.HandleOn("", event, locator, fn)
}

// HandleOn - like Handle, but only while the current URL starts with prefix
func (d *Driver) HandleOn(prefix string, event Event, locator entities.Locator, fn Handler) {
	d.handlers = append(d.handlers, handler{scope: prefix, event: event, locator: locator, fn: fn})
}

// OnLoad - runs fn after every navigation to url, before Get returns
func (d *Driver) OnLoad(url string, fn func(d *Driver) error) {
	d.onLoad[url] = append(d.onLoad[url], fn)
}

// HandleScript - answers ExecuteScript calls whose body equals script
func (d *Driver) HandleScript(script string, fn ScriptFunc) {
	d.scripts[normalizeScript(script)] = fn
}

// Redirect - schedules navigation to url once after has elapsed. The
// navigation happens lazily, on the first driver call past the deadline.
func (d *Driver) Redirect(url string, after time.Duration) {
	d.redirectURL, d.redirectAt = url, time.Now().Add(after)
}

// SetDocumentSize - sets the scroll dimensions reported by the document body
func (d *Driver) SetDocumentSize(width, height int) {
	d.width, d.height = width, height
}

// ScrollPosition - returns the current window scroll offsets
func (d *Driver) ScrollPosition() (x, y int) {
	return d.scrollX, d.scrollY
}

// Find - returns the first element matching locator in the current browsing context
func (d *Driver) Find(locator entities.Locator) (*Element, error) {
	el, err := d.FindElement(locator.By, locator.Value)
	if err != nil {
		return nil, err
	}
	return el.(*Element), nil
}

// FindAll - returns all elements matching locator in the current browsing context
func (d *Driver) FindAll(locator entities.Locator) ([]*Element, error) {
	nodes, err := d.query(d.root, locator.By, locator.Value)
	if err != nil {
		return nil, err
	}
	return d.wrap(nodes), nil
}

// Get - navigates to a registered page
func (d *Driver) Get(url string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	source, ok := d.pages[url]
	if !ok {
		return errors.Errorf("navigation to %s failed: page not registered", url)
	}
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", url)
	}
	d.redirectURL = ""
	d.url = url
	d.doc = doc
	d.root = doc
	d.frames = make(map[*html.Node]*html.Node)
	d.scrollX, d.scrollY = 0, 0
	for _, fn := range d.onLoad[url] {
		if err := fn(d); err != nil {
			return errors.Wrapf(err, "load hook for %s", url)
		}
	}
	return nil
}

// Title - returns the text of the top-level <title>
func (d *Driver) Title() (string, error) {
	if err := d.ensureLoaded(); err != nil {
		return "", err
	}
	var title string
	walk(d.doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = strings.TrimSpace(rawText(n))
			return false
		}
		return true
	})
	return title, nil
}

// CurrentURL - returns the address passed to the last Get
func (d *Driver) CurrentURL() (string, error) {
	if err := d.ensureLoaded(); err != nil {
		return "", err
	}
	return d.url, nil
}

// FindElement - returns the first match in the current browsing context
func (d *Driver) FindElement(by, value string) (interfaces.Element, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}
	nodes, err := d.query(d.root, by, value)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.Wrapf(entities.ErrNoSuchElement, "%s=%q", by, value)
	}
	return &Element{d: d, n: nodes[0]}, nil
}

// FindElements - returns every match in the current browsing context
func (d *Driver) FindElements(by, value string) ([]interfaces.Element, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}
	nodes, err := d.query(d.root, by, value)
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &Element{d: d, n: n})
	}
	return elements, nil
}

// ExecuteScript - answers registered scripts plus the scroll and size queries pages issue
func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}
	body := normalizeScript(script)
	if fn, ok := d.scripts[body]; ok {
		return fn(d, args)
	}

	switch body {
	case "return document.body.scrollHeight":
		return float64(d.height), nil
	case "return document.body.scrollWidth":
		return float64(d.width), nil
	case "return window.pageYOffset":
		return float64(d.scrollY), nil
	case "return window.pageXOffset":
		return float64(d.scrollX), nil
	}

	var x, y int
	if n, _ := fmt.Sscanf(body, "window.scrollTo(%d, %d)", &x, &y); n == 2 {
		d.scrollX, d.scrollY = clamp(x, 0, d.width), clamp(y, 0, d.height)
		return nil, nil
	}

	return nil, errors.Errorf("javascript error: unsupported script %q", body)
}

// SwitchFrame - enters an iframe built from its srcdoc or a registered src; nil returns to the top document
func (d *Driver) SwitchFrame(frame interfaces.Element) error {
	if err := d.ensureLoaded(); err != nil {
		return err
	}
	if frame == nil {
		d.root = d.doc
		return nil
	}
	el, ok := frame.(*Element)
	if !ok || el.n.DataAtom != atom.Iframe {
		return errors.Wrap(entities.ErrNotFound, "no such frame")
	}
	if err := el.attached(); err != nil {
		return err
	}

	doc, ok := d.frames[el.n]
	if !ok {
		source, found := attr(el.n, "srcdoc")
		if !found {
			src, _ := attr(el.n, "src")
			if source, found = d.pages[src]; !found {
				return errors.Wrapf(entities.ErrNotFound, "no such frame: %s not registered", src)
			}
		}
		parsed, err := html.Parse(strings.NewReader(source))
		if err != nil {
			return errors.Wrap(err, "failed to parse frame document")
		}
		doc = parsed
		d.frames[el.n] = doc
	}
	d.root = doc
	return nil
}

// WaitWithTimeout - polls condition until it is satisfied, errors, or timeout elapses
func (d *Driver) WaitWithTimeout(condition interfaces.Condition, timeout time.Duration) error {
	start := time.Now()
	for {
		done, err := condition(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if elapsed := time.Since(start); elapsed > timeout {
			return errors.Errorf("timeout after %v", elapsed)
		}
		time.Sleep(d.pollInterval)
	}
}

// Quit - closes the window; later calls fail
func (d *Driver) Quit() error {
	d.quit = true
	return nil
}

func (d *Driver) ensureOpen() error {
	if d.quit {
		return errors.New("invalid session id: session deleted")
	}
	return nil
}

func (d *Driver) ensureLoaded() error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if d.redirectURL != "" && !time.Now().Before(d.redirectAt) {
		if err := d.Get(d.redirectURL); err != nil {
			return err
		}
	}
	if d.doc == nil {
		return errors.New("no document loaded")
	}
	return nil
}

func (d *Driver) fire(event Event, el *Element) error {
	for _, h := range d.handlers {
		if h.event != event || !strings.HasPrefix(d.url, h.scope) {
			continue
		}
		nodes, err := d.query(d.root, h.locator.By, h.locator.Value)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			if n == el.n {
				if err := h.fn(d, el); err != nil {
					return errors.Wrapf(err, "%s handler on %s", event, h.locator)
				}
				break
			}
		}
	}
	return nil
}

func (d *Driver) wrap(nodes []*html.Node) []*Element {
	elements := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &Element{d: d, n: n})
	}
	return elements
}

func normalizeScript(script string) string {
	return strings.TrimSuffix(strings.TrimSpace(script), ";")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ interfaces.Driver = (*Driver)(nil)
