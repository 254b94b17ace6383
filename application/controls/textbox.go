package controls

import (
	"context"
	"fmt"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// Textbox is an editable text field
type Textbox struct {
	control
}

// NewTextbox - creates textbox control
func NewTextbox(scope Scope, locator entities.Locator) *Textbox {
	return &Textbox{control: newControl(scope, locator)}
}

// Text - returns the current field value
func (t *Textbox) Text(ctx context.Context) (string, error) {
	el, err := t.element()
	if err != nil {
		return "", err
	}
	return el.GetAttribute("value")
}

// SetText - replaces the field value and reads it back
func (t *Textbox) SetText(ctx context.Context, text string) error {
	if _, err := t.IsPresent(ctx); err != nil {
		return err
	}
	el, err := t.element()
	if err != nil {
		return err
	}

	t.scope.Log().Debugf("Typing %q into: %s", text, t)
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", t, err)
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", t, err)
	}

	got, err := t.Text(ctx)
	if err != nil {
		return err
	}
	if got != text {
		return fmt.Errorf("%s holds %q after typing %q: %w", t, got, text, entities.ErrVerification)
	}
	return nil
}

var _ interfaces.Control = (*Textbox)(nil)
