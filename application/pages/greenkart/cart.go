package greenkart

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

var previewLocators = struct {
	ProductsList entities.Locator
	Product      entities.Locator
	ProceedBtn   entities.Locator

	ItemName     entities.Locator
	ItemPrice    entities.Locator
	ItemQuantity entities.Locator
	ItemTotal    entities.Locator
	ItemRemove   entities.Locator
}{
	ProductsList: entities.CSS("ul[class='cart-items']"),
	Product:      entities.CSS(".cart-item"),
	ProceedBtn:   entities.XPath("//button[text()='PROCEED TO CHECKOUT']"),

	ItemName:     entities.CSS(".product-info .product-name"),
	ItemPrice:    entities.CSS(".product-info .product-price"),
	ItemQuantity: entities.CSS(".product-total .quantity"),
	ItemTotal:    entities.CSS(".product-total .amount"),
	ItemRemove:   entities.CSS(".product-remove"),
}

// CartPreviewView is the drop-down cart opened from the header icon
type CartPreviewView struct {
	pages.BasePage
}

func (v *CartPreviewView) ProceedToCheckoutButton() *controls.Button {
	return controls.NewButton(v.Scope, previewLocators.ProceedBtn)
}

// Products - returns the preview lines keyed by product name
func (v *CartPreviewView) Products(ctx context.Context) (map[string]*CartPreviewProduct, error) {
	v.Scope.Log().Debug("Get list of CartPreviewProduct")
	list, err := v.Scope.Driver.FindElement(previewLocators.ProductsList.By, previewLocators.ProductsList.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart preview: %w", err)
	}
	items, err := list.FindElements(previewLocators.Product.By, previewLocators.Product.Value)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*CartPreviewProduct, len(items))
	for _, item := range items {
		product := &CartPreviewProduct{scope: v.Scope, item: item}
		name, err := product.Name(ctx)
		if err != nil {
			return nil, err
		}
		products[name] = product
	}
	return products, nil
}

// ProceedToCheckout - leaves the preview for the checkout page
func (v *CartPreviewView) ProceedToCheckout(ctx context.Context) (*CheckoutPage, error) {
	v.Scope.Log().Debug("Proceed to checkout")
	if err := v.ProceedToCheckoutButton().Click(ctx); err != nil {
		return nil, err
	}
	return NewCheckoutPage(v.Scope), nil
}

// CartPreviewProduct is one line of the cart preview
type CartPreviewProduct struct {
	scope controls.Scope
	item  interfaces.Element
}

func (p *CartPreviewProduct) text(locator entities.Locator) (string, error) {
	el, err := p.item.FindElement(locator.By, locator.Value)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (p *CartPreviewProduct) Name(ctx context.Context) (string, error) {
	return p.text(previewLocators.ItemName)
}

func (p *CartPreviewProduct) Price(ctx context.Context) (float64, error) {
	text, err := p.text(previewLocators.ItemPrice)
	if err != nil {
		return 0, err
	}
	return pages.ParseAmount(text)
}

// Quantity - parses the count out of "2 Nos."
func (p *CartPreviewProduct) Quantity(ctx context.Context) (float64, error) {
	text, err := p.text(previewLocators.ItemQuantity)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty quantity: %w", entities.ErrTypeMismatch)
	}
	quantity, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", text, entities.ErrTypeMismatch)
	}
	return quantity, nil
}

func (p *CartPreviewProduct) TotalPrice(ctx context.Context) (float64, error) {
	text, err := p.text(previewLocators.ItemTotal)
	if err != nil {
		return 0, err
	}
	return pages.ParseAmount(text)
}

// RemoveFromCart - presses the cross next to the line
func (p *CartPreviewProduct) RemoveFromCart(ctx context.Context) error {
	p.scope.Log().Debug("Remove product from cart")
	button, err := p.item.FindElement(previewLocators.ItemRemove.By, previewLocators.ItemRemove.Value)
	if err != nil {
		return err
	}
	return button.Click()
}

var checkoutLocators = struct {
	ProductsTable      entities.Locator
	ProductRow         entities.Locator
	DiscountCode       entities.Locator
	DiscountApply      entities.Locator
	TotalAmount        entities.Locator
	Discount           entities.Locator
	TotalAfterDiscount entities.Locator
	PlaceOrderButton   entities.Locator

	RowName     entities.Locator
	RowQuantity entities.Locator
	RowPrice    entities.Locator
	RowTotal    entities.Locator
}{
	ProductsTable:      entities.ID("productCartTables"),
	ProductRow:         entities.CSS("tbody tr"),
	DiscountCode:       entities.CSS(".promoCode"),
	DiscountApply:      entities.CSS(".promoBtn"),
	TotalAmount:        entities.CSS(".totAmt"),
	Discount:           entities.CSS(".discountPerc"),
	TotalAfterDiscount: entities.CSS(".discountAmt"),
	PlaceOrderButton:   entities.XPath("//button[text()='Place Order']"),

	RowName:     entities.CSS("td:nth-child(2) .product-name"),
	RowQuantity: entities.CSS("td:nth-child(3) .quantity"),
	RowPrice:    entities.CSS("td:nth-child(4) .amount"),
	RowTotal:    entities.CSS("td:nth-child(5) .amount"),
}

// numberOfItemsScript reads the bare text node that follows the "No. of Items" caption
const numberOfItemsScript = `return document.evaluate("string(//*[@id='root']/div/div/div/div/text())", ` +
	`document, null, XPathResult.STRING_TYPE, null).stringValue;`

// CheckoutPage is the cart table with the order summary
type CheckoutPage struct {
	pages.BasePage
}

// NewCheckoutPage - creates page bound to the public cart
func NewCheckoutPage(scope controls.Scope) *CheckoutPage {
	return NewCheckoutPageAt(scope, CartURL)
}

// NewCheckoutPageAt - creates page bound to url
func NewCheckoutPageAt(scope controls.Scope, url string) *CheckoutPage {
	return &CheckoutPage{BasePage: pages.NewBasePage(scope, url)}
}

func (p *CheckoutPage) DiscountCodeTextbox() *controls.Textbox {
	return controls.NewTextbox(p.Scope, checkoutLocators.DiscountCode)
}

func (p *CheckoutPage) DiscountCodeApplyButton() *controls.Button {
	return controls.NewButton(p.Scope, checkoutLocators.DiscountApply)
}

func (p *CheckoutPage) PlaceOrderButton() *controls.Button {
	return controls.NewButton(p.Scope, checkoutLocators.PlaceOrderButton)
}

// NumberOfItems - returns the "No. of Items" value
func (p *CheckoutPage) NumberOfItems(ctx context.Context) (float64, error) {
	result, err := p.Scope.Driver.ExecuteScript(numberOfItemsScript, nil)
	if err != nil {
		return 0, err
	}
	text, ok := result.(string)
	if !ok {
		return 0, fmt.Errorf("number of items is %v (%T): %w", result, result, entities.ErrTypeMismatch)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("number of items %q: %w", text, entities.ErrTypeMismatch)
	}
	return value, nil
}

// TotalAmount - returns the "Total Amount" value
func (p *CheckoutPage) TotalAmount(ctx context.Context) (float64, error) {
	return p.summary(ctx, checkoutLocators.TotalAmount)
}

// DiscountValue - returns the discount percentage without its "%" sign
func (p *CheckoutPage) DiscountValue(ctx context.Context) (float64, error) {
	return p.summary(ctx, checkoutLocators.Discount)
}

// TotalAfterDiscount - returns the "Total After Discount" value
func (p *CheckoutPage) TotalAfterDiscount(ctx context.Context) (float64, error) {
	return p.summary(ctx, checkoutLocators.TotalAfterDiscount)
}

func (p *CheckoutPage) summary(ctx context.Context, locator entities.Locator) (float64, error) {
	text, err := controls.NewLabel(p.Scope, locator).Text(ctx)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(text), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("summary value %q: %w", text, entities.ErrTypeMismatch)
	}
	return value, nil
}

// Products - returns the checkout rows keyed by product name
func (p *CheckoutPage) Products(ctx context.Context) (map[string]*CheckoutProduct, error) {
	p.Scope.Log().Debug("Get list of CheckoutProduct")
	table, err := p.Scope.Driver.FindElement(checkoutLocators.ProductsTable.By, checkoutLocators.ProductsTable.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to find products table: %w", err)
	}
	rows, err := table.FindElements(checkoutLocators.ProductRow.By, checkoutLocators.ProductRow.Value)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*CheckoutProduct, len(rows))
	for _, row := range rows {
		product := &CheckoutProduct{row: row}
		name, err := product.Name(ctx)
		if err != nil {
			return nil, err
		}
		products[name] = product
	}
	return products, nil
}

// PlaceOrder - confirms the cart and opens the delivery page
func (p *CheckoutPage) PlaceOrder(ctx context.Context) (*DeliveryPage, error) {
	p.Scope.Log().Debug("Place order")
	if err := p.PlaceOrderButton().Click(ctx); err != nil {
		return nil, err
	}
	return NewDeliveryPage(p.Scope), nil
}

// CheckoutProduct is one row of the checkout table
type CheckoutProduct struct {
	row interfaces.Element
}

func (p *CheckoutProduct) text(locator entities.Locator) (string, error) {
	el, err := p.row.FindElement(locator.By, locator.Value)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (p *CheckoutProduct) amount(locator entities.Locator) (float64, error) {
	text, err := p.text(locator)
	if err != nil {
		return 0, err
	}
	return pages.ParseAmount(text)
}

func (p *CheckoutProduct) Name(ctx context.Context) (string, error) {
	return p.text(checkoutLocators.RowName)
}

func (p *CheckoutProduct) Price(ctx context.Context) (float64, error) {
	return p.amount(checkoutLocators.RowPrice)
}

func (p *CheckoutProduct) Quantity(ctx context.Context) (float64, error) {
	return p.amount(checkoutLocators.RowQuantity)
}

func (p *CheckoutProduct) TotalPrice(ctx context.Context) (float64, error) {
	return p.amount(checkoutLocators.RowTotal)
}

var (
	_ interfaces.Product = (*CartPreviewProduct)(nil)
	_ interfaces.Product = (*CheckoutProduct)(nil)
)
