package controls

import (
	"context"
	"fmt"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// DropdownStatic is a <select> with a fixed option list
type DropdownStatic struct {
	control
}

// NewDropdownStatic - creates static dropdown control
func NewDropdownStatic(scope Scope, locator entities.Locator) *DropdownStatic {
	return &DropdownStatic{control: newControl(scope, locator)}
}

func (d *DropdownStatic) options() ([]interfaces.Element, error) {
	el, err := d.element()
	if err != nil {
		return nil, err
	}
	return el.FindElements(entities.ByTagName, "option")
}

// Select - picks the option whose visible text equals label
func (d *DropdownStatic) Select(ctx context.Context, label string) error {
	options, err := d.options()
	if err != nil {
		return err
	}
	for _, option := range options {
		text, err := option.Text()
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == label {
			d.scope.Log().Debugf("Selecting %q in: %s", label, d)
			return option.Click()
		}
	}
	return fmt.Errorf("%s has no option %q: %w", d, label, entities.ErrNotFound)
}

// Text - returns the selected option, the first one when none is marked
func (d *DropdownStatic) Text(ctx context.Context) (string, error) {
	options, err := d.options()
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", nil
	}
	chosen := options[0]
	for _, option := range options {
		selected, err := option.IsSelected()
		if err != nil {
			return "", err
		}
		if selected {
			chosen = option
			break
		}
	}
	text, err := chosen.Text()
	return strings.TrimSpace(text), err
}

// DropdownDynamic is a text input that renders suggestions while typing
type DropdownDynamic struct {
	control
	suggestions entities.Locator
	item        entities.Locator
}

// NewDropdownDynamic - creates auto-suggest control; item is a %s template filled with the chosen value
func NewDropdownDynamic(scope Scope, input, suggestions, item entities.Locator) *DropdownDynamic {
	return &DropdownDynamic{
		control:     newControl(scope, input),
		suggestions: suggestions,
		item:        item,
	}
}

// Select - types the whole value and picks the matching suggestion
func (d *DropdownDynamic) Select(ctx context.Context, value string) error {
	return d.choose(ctx, value, value)
}

// SelectByPartialValue - types the first n characters of value in lower case and picks the suggestion for value.
// A negative n drops that many characters from the end instead.
func (d *DropdownDynamic) SelectByPartialValue(ctx context.Context, value string, n int) error {
	runes := []rune(value)
	if n < 0 {
		n += len(runes)
	}
	if n <= 0 {
		return fmt.Errorf("nothing to type from %q into %s: %w", value, d, entities.ErrTypeMismatch)
	}
	if n < len(runes) {
		runes = runes[:n]
	}
	return d.choose(ctx, strings.ToLower(string(runes)), value)
}

func (d *DropdownDynamic) choose(ctx context.Context, typed, value string) error {
	if _, err := d.IsPresent(ctx); err != nil {
		return err
	}
	el, err := d.element()
	if err != nil {
		return err
	}

	d.scope.Log().Debugf("Typing %q into: %s", typed, d)
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", d, err)
	}
	if err := el.SendKeys(typed); err != nil {
		return fmt.Errorf("failed to type into %s: %w", d, err)
	}

	err = d.scope.Wait(ctx, d.scope.suggestionTimeout(), func(drv interfaces.Driver) (bool, error) {
		found, err := drv.FindElements(d.suggestions.By, d.suggestions.Value)
		return err == nil && len(found) > 0, nil
	})
	if err != nil {
		return fmt.Errorf("no suggestions for %q in %s: %w: %w", typed, d, entities.ErrNoSuchElement, err)
	}

	item := d.item.Format(value)
	option, err := d.scope.Driver.FindElement(item.By, item.Value)
	if err != nil {
		return fmt.Errorf("no suggestion %q in %s: %w", value, d, err)
	}
	d.scope.Log().Debugf("Picking suggestion %s", item)
	return option.Click()
}

// Text - returns the typed value, falling back to the placeholder
func (d *DropdownDynamic) Text(ctx context.Context) (string, error) {
	el, err := d.element()
	if err != nil {
		return "", err
	}
	value, err := el.GetAttribute("value")
	if err != nil || value != "" {
		return value, err
	}
	return el.GetAttribute("placeholder")
}

var (
	_ interfaces.Control = (*DropdownStatic)(nil)
	_ interfaces.Control = (*DropdownDynamic)(nil)
)
