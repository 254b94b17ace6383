package interfaces

import (
	"time"

	"ui_automation/domain/entities"
)

// Condition reports whether a wait is over. A non-nil error aborts the wait.
type Condition func(d Driver) (bool, error)

// Driver defines the browser capabilities the suite relies on
type Driver interface {
	// Get navigates the current window to url
	Get(url string) error

	// Title returns the current document title
	Title() (string, error)

	// CurrentURL returns the address of the current document
	CurrentURL() (string, error)

	// FindElement returns the first element matching the locator in the current browsing context
	FindElement(by, value string) (Element, error)

	// FindElements returns every element matching the locator, possibly none
	FindElements(by, value string) ([]Element, error)

	// ExecuteScript runs a function body with arguments available as `arguments`
	ExecuteScript(script string, args []interface{}) (interface{}, error)

	// SwitchFrame enters the given iframe element; nil returns to the top-level document
	SwitchFrame(frame Element) error

	// WaitWithTimeout polls condition until it holds, fails, or timeout elapses
	WaitWithTimeout(condition Condition, timeout time.Duration) error

	// Quit ends the browser session
	Quit() error
}

// Element defines the per-node capabilities the suite relies on
type Element interface {
	FindElement(by, value string) (Element, error)
	FindElements(by, value string) ([]Element, error)

	Click() error
	Clear() error
	SendKeys(keys string) error
	MoveTo(xOffset, yOffset int) error

	// Text returns the rendered text, empty for hidden elements
	Text() (string, error)
	GetAttribute(name string) (string, error)

	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)

	Location() (*entities.Point, error)
}
