package protocommerce

import (
	"context"
	"fmt"
	"strconv"

	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

var checkoutLocators = struct {
	CheckoutButton         entities.Locator
	ContinueShoppingButton entities.Locator
	ProductRow             entities.Locator
	TotalPrice             entities.Locator
	RowName                entities.Locator
	RowQuantity            entities.Locator
	RowPrice               entities.Locator
	RowTotal               entities.Locator
	RowRemove              entities.Locator
}{
	CheckoutButton:         entities.XPath("//button[contains(@class,'btn-success')]"),
	ContinueShoppingButton: entities.XPath("//button[contains(@class,'btn-default')]"),
	ProductRow:             entities.XPath("//input[@class='form-control']/parent::td/parent::tr"),
	TotalPrice:             entities.CSS("td[class='text-right'] h3"),
	RowName:                entities.CSS("td:nth-child(1) .media-body h4 a"),
	RowQuantity:            entities.CSS("input[class='form-control']"),
	RowPrice:               entities.CSS("td:nth-child(3)"),
	RowTotal:               entities.CSS("td:nth-child(4)"),
	RowRemove:              entities.CSS("button[class='btn btn-danger']"),
}

// CheckoutView is the cart table shown after pressing Checkout
type CheckoutView struct {
	pages.BasePage
}

func (v *CheckoutView) CheckoutButton() *controls.Button {
	return controls.NewButton(v.Scope, checkoutLocators.CheckoutButton)
}

func (v *CheckoutView) ContinueShoppingButton() *controls.Button {
	return controls.NewButton(v.Scope, checkoutLocators.ContinueShoppingButton)
}

// Products - returns one product per cart row, in table order
func (v *CheckoutView) Products(ctx context.Context) ([]*CheckoutProduct, error) {
	v.Scope.Log().Debug("Get list of CheckoutProduct")
	rows, err := v.Scope.Driver.FindElements(checkoutLocators.ProductRow.By, checkoutLocators.ProductRow.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart rows: %w", err)
	}
	products := make([]*CheckoutProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, &CheckoutProduct{scope: v.Scope, row: row})
	}
	return products, nil
}

// GoToDelivery - confirms the cart and opens the delivery form
func (v *CheckoutView) GoToDelivery(ctx context.Context) (*DeliveryLocationView, error) {
	v.Scope.Log().Debug("Go to DeliveryLocationView")
	if err := v.CheckoutButton().Click(ctx); err != nil {
		return nil, err
	}
	return &DeliveryLocationView{BasePage: v.BasePage}, nil
}

// TotalPrice - returns the cart total printed under the table
func (v *CheckoutView) TotalPrice(ctx context.Context) (float64, error) {
	el, err := v.Scope.Driver.FindElement(checkoutLocators.TotalPrice.By, checkoutLocators.TotalPrice.Value)
	if err != nil {
		return 0, err
	}
	text, err := el.GetAttribute("textContent")
	if err != nil {
		return 0, err
	}
	return pages.ParseAmount(text)
}

// CheckoutProduct is one row of the checkout table
type CheckoutProduct struct {
	scope controls.Scope
	row   interfaces.Element
}

func (p *CheckoutProduct) find(locator entities.Locator) (interfaces.Element, error) {
	return p.row.FindElement(locator.By, locator.Value)
}

func (p *CheckoutProduct) Name(ctx context.Context) (string, error) {
	el, err := p.find(checkoutLocators.RowName)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (p *CheckoutProduct) Quantity(ctx context.Context) (float64, error) {
	el, err := p.find(checkoutLocators.RowQuantity)
	if err != nil {
		return 0, err
	}
	value, err := el.GetAttribute("value")
	if err != nil {
		return 0, err
	}
	quantity, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", value, entities.ErrTypeMismatch)
	}
	return quantity, nil
}

func (p *CheckoutProduct) Price(ctx context.Context) (float64, error) {
	return p.amount(checkoutLocators.RowPrice)
}

func (p *CheckoutProduct) TotalPrice(ctx context.Context) (float64, error) {
	return p.amount(checkoutLocators.RowTotal)
}

func (p *CheckoutProduct) amount(locator entities.Locator) (float64, error) {
	el, err := p.find(locator)
	if err != nil {
		return 0, err
	}
	text, err := el.GetAttribute("textContent")
	if err != nil {
		return 0, err
	}
	return pages.ParseAmount(text)
}

// Remove - deletes the row from the cart
func (p *CheckoutProduct) Remove(ctx context.Context) error {
	p.scope.Log().Debug("Remove product")
	button, err := p.find(checkoutLocators.RowRemove)
	if err != nil {
		return err
	}
	return button.Click()
}

// SetQuantity - types a new quantity, submits it and reads it back
func (p *CheckoutProduct) SetQuantity(ctx context.Context, quantity float64) error {
	p.scope.Log().Debugf("Set product quantity to '%v'", quantity)
	field, err := p.find(checkoutLocators.RowQuantity)
	if err != nil {
		return err
	}
	if err := field.Clear(); err != nil {
		return err
	}
	if err := field.SendKeys(pages.FormatQuantity(quantity) + entities.ReturnKey); err != nil {
		return err
	}

	got, err := p.Quantity(ctx)
	if err != nil {
		return fmt.Errorf("quantity after setting %v: %w: %w", quantity, entities.ErrVerification, err)
	}
	if got != quantity {
		return fmt.Errorf("quantity is %v instead of %v: %w", got, quantity, entities.ErrVerification)
	}
	return nil
}

var _ interfaces.Product = (*CheckoutProduct)(nil)
