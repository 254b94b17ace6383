package greenkart

import (
	"context"

	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
)

// SuccessMessage is the text the confirmation view shows after an order
const SuccessMessage = "Thank you, your order has been placed successfully"

var deliveryLocators = struct {
	CountryDropdown entities.Locator
	TermsCheckbox   entities.Locator
	TermsAlert      entities.Locator
	ProceedButton   entities.Locator
	SuccessMessage  entities.Locator
	HomeLink        entities.Locator
}{
	CountryDropdown: entities.CSS("select"),
	TermsCheckbox:   entities.CSS("input[type='checkbox']"),
	TermsAlert:      entities.CSS(".errorAlert"),
	ProceedButton:   entities.XPath("//button[text()='Proceed']"),
	SuccessMessage:  entities.CSS(".wrapperTwo span"),
	HomeLink:        entities.LinkText("Home"),
}

// DeliveryPage is the country choice and terms consent form
type DeliveryPage struct {
	pages.BasePage
}

// NewDeliveryPage - creates page bound to the public delivery form
func NewDeliveryPage(scope controls.Scope) *DeliveryPage {
	return NewDeliveryPageAt(scope, DeliveryURL)
}

// NewDeliveryPageAt - creates page bound to url
func NewDeliveryPageAt(scope controls.Scope, url string) *DeliveryPage {
	return &DeliveryPage{BasePage: pages.NewBasePage(scope, url)}
}

func (p *DeliveryPage) CountryDropdown() *controls.DropdownStatic {
	return controls.NewDropdownStatic(p.Scope, deliveryLocators.CountryDropdown)
}

func (p *DeliveryPage) TermsAndConditionsCheckbox() *controls.Checkbox {
	return controls.NewCheckbox(p.Scope, deliveryLocators.TermsCheckbox)
}

func (p *DeliveryPage) TermsAndConditionsAlertLabel() *controls.Label {
	return controls.NewLabel(p.Scope, deliveryLocators.TermsAlert)
}

func (p *DeliveryPage) ProceedButton() *controls.Button {
	return controls.NewButton(p.Scope, deliveryLocators.ProceedButton)
}

// Proceed - presses "Proceed". The confirmation view is returned only when the
// terms were accepted before the click; otherwise the result is nil and the
// form stays open with its alert.
func (p *DeliveryPage) Proceed(ctx context.Context) (*ConfirmationView, error) {
	accepted, err := p.TermsAndConditionsCheckbox().IsChecked(ctx)
	if err != nil {
		return nil, err
	}
	p.Scope.Log().Debugf("Proceed with terms accepted: %t", accepted)
	if err := p.ProceedButton().Click(ctx); err != nil {
		return nil, err
	}
	if !accepted {
		return nil, nil
	}
	return &ConfirmationView{BasePage: p.BasePage}, nil
}

// ConfirmationView is shown for a few seconds before redirecting to the shop
type ConfirmationView struct {
	pages.BasePage
}

func (v *ConfirmationView) SuccessMessageLabel() *controls.Label {
	return controls.NewLabel(v.Scope, deliveryLocators.SuccessMessage)
}

func (v *ConfirmationView) HomeLink() *controls.Link {
	return controls.NewLink(v.Scope, deliveryLocators.HomeLink)
}

// SuccessMessage - returns the text a successful order is expected to show
func (v *ConfirmationView) SuccessMessage() string {
	return SuccessMessage
}
