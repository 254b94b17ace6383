package controls

import (
	"context"
	"fmt"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// IFrame gives scoped access to the page object rendered inside an iframe
type IFrame[P any] struct {
	control
	newPage func(Scope) P
}

// NewIFrame - creates iframe control; newPage builds the page object used inside the frame
func NewIFrame[P any](scope Scope, locator entities.Locator, newPage func(Scope) P) *IFrame[P] {
	return &IFrame[P]{control: newControl(scope, locator), newPage: newPage}
}

// Enter - switches the driver into the frame and returns its page object
func (f *IFrame[P]) Enter(ctx context.Context) (P, error) {
	var page P
	if _, err := f.IsPresent(ctx); err != nil {
		return page, err
	}
	el, err := f.element()
	if err != nil {
		return page, err
	}
	f.scope.Log().Debugf("Entering frame: %s", f)
	if err := f.scope.Driver.SwitchFrame(el); err != nil {
		return page, fmt.Errorf("failed to enter %s: %w", f, err)
	}
	return f.newPage(f.scope), nil
}

// Exit - switches the driver back to the top-level document
func (f *IFrame[P]) Exit(ctx context.Context) error {
	f.scope.Log().Debugf("Leaving frame: %s", f)
	if err := f.scope.Driver.SwitchFrame(nil); err != nil {
		return fmt.Errorf("failed to leave %s: %w", f, err)
	}
	return nil
}

// Within - runs fn inside the frame; the top-level document is restored even when fn fails or panics
func (f *IFrame[P]) Within(ctx context.Context, fn func(P) error) (err error) {
	page, err := f.Enter(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if exitErr := f.Exit(ctx); exitErr != nil && err == nil {
			err = exitErr
		}
	}()
	return fn(page)
}

var _ interfaces.Control = (*IFrame[any])(nil)
