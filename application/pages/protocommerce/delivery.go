package protocommerce

import (
	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
)

var deliveryLocators = struct {
	Country            entities.Locator
	CountrySuggestions entities.Locator
	CountrySuggestion  entities.Locator
	TermsCheckbox      entities.Locator
	PurchaseButton     entities.Locator
	AlertMessage       entities.Locator
	AlertCloseButton   entities.Locator
}{
	Country:            entities.ID("country"),
	CountrySuggestions: entities.CSS("div[class='suggestions'] a"),
	CountrySuggestion:  entities.XPath("//a[text()='%s']"),
	TermsCheckbox:      entities.CSS("div[class*='checkbox']"),
	PurchaseButton:     entities.CSS("input[type='submit']"),
	AlertMessage:       entities.ClassName("alert-success"),
	AlertCloseButton:   entities.CSS("a[data-dismiss='alert']"),
}

// DeliveryLocationView is the purchase form shown after confirming the cart
type DeliveryLocationView struct {
	pages.BasePage
}

func (v *DeliveryLocationView) DeliveryLocationDropdown() *controls.DropdownDynamic {
	return controls.NewDropdownDynamic(v.Scope,
		deliveryLocators.Country,
		deliveryLocators.CountrySuggestions,
		deliveryLocators.CountrySuggestion,
	)
}

// TermsAndConditionsCheckbox - the wrapper div toggled by clicking its label
func (v *DeliveryLocationView) TermsAndConditionsCheckbox() *controls.Checkbox {
	return controls.NewCheckbox(v.Scope, deliveryLocators.TermsCheckbox)
}

func (v *DeliveryLocationView) PurchaseButton() *controls.Button {
	return controls.NewButton(v.Scope, deliveryLocators.PurchaseButton)
}

func (v *DeliveryLocationView) AlertMessageLabel() *controls.Label {
	return controls.NewLabel(v.Scope, deliveryLocators.AlertMessage)
}

func (v *DeliveryLocationView) AlertMessageCloseButton() *controls.Button {
	return controls.NewButton(v.Scope, deliveryLocators.AlertCloseButton)
}
