package controls

import (
	"context"
	"fmt"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

type checkable struct {
	control
}

// IsChecked - reports the checked state without changing it
func (c *checkable) IsChecked(ctx context.Context) (bool, error) {
	el, err := c.element()
	if err != nil {
		return false, err
	}
	return el.IsSelected()
}

// Select - checks the control unless it already is
func (c *checkable) Select(ctx context.Context) error {
	if err := c.waitClickable(ctx); err != nil {
		return err
	}
	checked, err := c.IsChecked(ctx)
	if err != nil {
		return err
	}
	if checked {
		return nil
	}
	c.scope.Log().Debugf("Selecting: %s", c)
	return c.Click(ctx)
}

func (c *checkable) waitClickable(ctx context.Context) error {
	err := c.scope.Wait(ctx, c.scope.presenceTimeout(), func(d interfaces.Driver) (bool, error) {
		el, err := d.FindElement(c.locator.By, c.locator.Value)
		if err != nil {
			return false, nil
		}
		displayed, err := el.IsDisplayed()
		if err != nil || !displayed {
			return false, nil
		}
		enabled, err := el.IsEnabled()
		return err == nil && enabled, nil
	})
	if err != nil {
		return fmt.Errorf("%s is not clickable: %w", c, err)
	}
	return nil
}

// Radiobutton is a checkable control that can only be turned on
type Radiobutton struct {
	checkable
}

// NewRadiobutton - creates radio button control
func NewRadiobutton(scope Scope, locator entities.Locator) *Radiobutton {
	return &Radiobutton{checkable{control: newControl(scope, locator)}}
}

// Checkbox is a checkable control that can be turned on and off
type Checkbox struct {
	checkable
}

// NewCheckbox - creates checkbox control
func NewCheckbox(scope Scope, locator entities.Locator) *Checkbox {
	return &Checkbox{checkable{control: newControl(scope, locator)}}
}

// Deselect - unchecks the control unless it already is
func (c *Checkbox) Deselect(ctx context.Context) error {
	checked, err := c.IsChecked(ctx)
	if err != nil {
		return err
	}
	if !checked {
		return nil
	}
	c.scope.Log().Debugf("Deselecting: %s", c)
	return c.Click(ctx)
}

var (
	_ interfaces.Control = (*Radiobutton)(nil)
	_ interfaces.Control = (*Checkbox)(nil)
)
