// Package pages holds what every page object shares. Site specific pages
// live in the sub-packages.
package pages

import (
	"context"
	"fmt"
	"math"
	"time"

	"ui_automation/application/controls"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// BasePage is embedded by every page object
type BasePage struct {
	Scope controls.Scope
	url   string
}

// NewBasePage - creates base page bound to url
func NewBasePage(scope controls.Scope, url string) BasePage {
	return BasePage{Scope: scope, url: url}
}

// URL - returns the address the page is served from
func (p *BasePage) URL() string {
	return p.url
}

// GoTo - navigates to the page address
func (p *BasePage) GoTo(ctx context.Context) error {
	p.Scope.Log().Infof("Navigating to: %s", p.url)
	if err := p.Scope.Driver.Get(p.url); err != nil {
		return fmt.Errorf("failed to open %s: %w", p.url, err)
	}
	return nil
}

// Title - returns the document title
func (p *BasePage) Title(ctx context.Context) (string, error) {
	return p.Scope.Driver.Title()
}

// CurrentURL - returns the address the browser is on
func (p *BasePage) CurrentURL(ctx context.Context) (string, error) {
	return p.Scope.Driver.CurrentURL()
}

// WaitForURL - waits until the browser is on url
func (p *BasePage) WaitForURL(ctx context.Context, url string, timeout time.Duration) error {
	err := p.Scope.Wait(ctx, timeout, func(d interfaces.Driver) (bool, error) {
		current, err := d.CurrentURL()
		return err == nil && current == url, nil
	})
	if err != nil {
		return fmt.Errorf("browser did not reach %s: %w", url, err)
	}
	return nil
}

// Height - returns the scroll height of the document body
func (p *BasePage) Height(ctx context.Context) (int, error) {
	return p.dimension("return document.body.scrollHeight;")
}

// Width - returns the scroll width of the document body
func (p *BasePage) Width(ctx context.Context) (int, error) {
	return p.dimension("return document.body.scrollWidth;")
}

// Scroll - scrolls the window to an absolute position
func (p *BasePage) Scroll(ctx context.Context, x, y int) error {
	_, err := p.Scope.Driver.ExecuteScript(fmt.Sprintf("window.scrollTo(%d, %d);", x, y), nil)
	if err != nil {
		return fmt.Errorf("failed to scroll to (%d, %d): %w", x, y, err)
	}
	return nil
}

// ScrollOffset - returns the vertical scroll position of the window
func (p *BasePage) ScrollOffset(ctx context.Context) (int, error) {
	return p.dimension("return window.pageYOffset;")
}

// ScrollToTop - scrolls to the top of the document
func (p *BasePage) ScrollToTop(ctx context.Context) error {
	return p.Scroll(ctx, 0, 0)
}

// ScrollToBottom - scrolls to the bottom of the document
func (p *BasePage) ScrollToBottom(ctx context.Context) error {
	height, err := p.Height(ctx)
	if err != nil {
		return err
	}
	return p.Scroll(ctx, 0, height)
}

func (p *BasePage) dimension(script string) (int, error) {
	result, err := p.Scope.Driver.ExecuteScript(script, nil)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%q returned %v (%T): %w", script, result, result, entities.ErrTypeMismatch)
}
