package controls

import (
	"context"
	"errors"
	"fmt"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

type control struct {
	scope   Scope
	locator entities.Locator
}

func newControl(scope Scope, locator entities.Locator) control {
	return control{scope: scope, locator: locator}
}

// Locator - returns the locator the control resolves on every call
func (c *control) Locator() entities.Locator {
	return c.locator
}

func (c *control) String() string {
	return fmt.Sprintf("<WebElement: %s>", c.locator)
}

func (c *control) element() (interfaces.Element, error) {
	el, err := c.scope.Driver.FindElement(c.locator.By, c.locator.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	return el, nil
}

// IsDisplayed - reports live visibility; a missing element is an error
func (c *control) IsDisplayed(ctx context.Context) (bool, error) {
	el, err := c.element()
	if err != nil {
		return false, err
	}
	return el.IsDisplayed()
}

// IsEnabled - reports live enabled state; a missing element is an error
func (c *control) IsEnabled(ctx context.Context) (bool, error) {
	el, err := c.element()
	if err != nil {
		return false, err
	}
	return el.IsEnabled()
}

// IsPresent - waits up to the presence timeout for the element to exist
func (c *control) IsPresent(ctx context.Context) (bool, error) {
	err := c.scope.Wait(ctx, c.scope.presenceTimeout(), func(d interfaces.Driver) (bool, error) {
		_, err := d.FindElement(c.locator.By, c.locator.Value)
		if errors.Is(err, entities.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		if errors.Is(err, entities.ErrTimeout) {
			return false, fmt.Errorf("%s: %w: %w", c, entities.ErrNotFound, err)
		}
		return false, fmt.Errorf("%s: %w", c, err)
	}
	return true, nil
}

// Click - clicks the element after confirming it is still present
func (c *control) Click(ctx context.Context) error {
	if _, err := c.IsPresent(ctx); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	el, err := c.element()
	if err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	c.scope.Log().Debugf("Clicking on: %s", c)
	if err := el.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", c, err)
	}
	return nil
}

// HoverOver - moves the pointer onto the element
func (c *control) HoverOver(ctx context.Context) error {
	el, err := c.element()
	if err != nil {
		return err
	}
	c.scope.Log().Debugf("Hovering over: %s", c)
	if err := el.MoveTo(0, 0); err != nil {
		return fmt.Errorf("failed to hover over %s: %w", c, err)
	}
	return nil
}

// Button is a control whose only behaviour is being clicked
type Button struct {
	control
}

// NewButton - creates button control
func NewButton(scope Scope, locator entities.Locator) *Button {
	return &Button{control: newControl(scope, locator)}
}

// Label is a read-only text control
type Label struct {
	control
}

// NewLabel - creates label control
func NewLabel(scope Scope, locator entities.Locator) *Label {
	return &Label{control: newControl(scope, locator)}
}

// Text - returns the rendered text
func (l *Label) Text(ctx context.Context) (string, error) {
	el, err := l.element()
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Link is an anchor control
type Link struct {
	control
}

// NewLink - creates link control
func NewLink(scope Scope, locator entities.Locator) *Link {
	return &Link{control: newControl(scope, locator)}
}

// Text - returns the rendered link text
func (l *Link) Text(ctx context.Context) (string, error) {
	el, err := l.element()
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Href - returns the link target; a link without one is a type mismatch
func (l *Link) Href(ctx context.Context) (string, error) {
	el, err := l.element()
	if err != nil {
		return "", err
	}
	href, err := el.GetAttribute("href")
	if err != nil {
		return "", err
	}
	if href == "" {
		return "", fmt.Errorf("%s has no href: %w", l, entities.ErrTypeMismatch)
	}
	return href, nil
}

var (
	_ interfaces.Control = (*Button)(nil)
	_ interfaces.Control = (*Label)(nil)
	_ interfaces.Control = (*Link)(nil)
)
