// Package greenkart models the GreenKart vegetable shop: the product grid
// with its cart preview, the checkout table, the delivery form and the
// order confirmation.
package greenkart

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

const (
	MainURL     = "https://rahulshettyacademy.com/seleniumPractise/#/"
	CartURL     = MainURL + "cart"
	DeliveryURL = MainURL + "country"

	// Title is the document title of every GreenKart page
	Title = "GreenKart - veg and fruits kart"

	// DefaultQuantityTimeout bounds the wait for the +/- buttons to update the quantity field
	DefaultQuantityTimeout = 5 * time.Second
)

var mainLocators = struct {
	Product           entities.Locator
	SearchTextbox     entities.Locator
	SearchButton      entities.Locator
	CartItems         entities.Locator
	CartPrice         entities.Locator
	CartIcon          entities.Locator
	CartPreviewActive entities.Locator

	ProductName     entities.Locator
	ProductPrice    entities.Locator
	ProductQuantity entities.Locator
	ProductAdd      entities.Locator
	ProductIncrease entities.Locator
	ProductDecrease entities.Locator
}{
	Product:           entities.CSS(".product"),
	SearchTextbox:     entities.CSS(".search-keyword"),
	SearchButton:      entities.CSS(".search-button"),
	CartItems:         entities.CSS(".cart-info tr:nth-child(1) td:nth-child(3)"),
	CartPrice:         entities.CSS(".cart-info tr:nth-child(2) td:nth-child(3)"),
	CartIcon:          entities.CSS(".cart-icon"),
	CartPreviewActive: entities.CSS("div[class='cart-preview active']"),

	ProductName:     entities.CSS(".product-name"),
	ProductPrice:    entities.CSS(".product-price"),
	ProductQuantity: entities.CSS(".quantity"),
	ProductAdd:      entities.CSS(".product-action button[type='button']"),
	ProductIncrease: entities.CSS(".increment"),
	ProductDecrease: entities.CSS(".decrement"),
}

// MainPage is the product grid with the cart summary in the header
type MainPage struct {
	pages.BasePage

	// QuantityTimeout bounds every +/- click of a product card
	QuantityTimeout time.Duration
}

// NewMainPage - creates page bound to the public shop
func NewMainPage(scope controls.Scope) *MainPage {
	return NewMainPageAt(scope, MainURL)
}

// NewMainPageAt - creates page bound to url
func NewMainPageAt(scope controls.Scope, url string) *MainPage {
	return &MainPage{
		BasePage:        pages.NewBasePage(scope, url),
		QuantityTimeout: DefaultQuantityTimeout,
	}
}

func (p *MainPage) SearchTextbox() *controls.Textbox {
	return controls.NewTextbox(p.Scope, mainLocators.SearchTextbox)
}

func (p *MainPage) SearchButton() *controls.Button {
	return controls.NewButton(p.Scope, mainLocators.SearchButton)
}

func (p *MainPage) CartPreviewButton() *controls.Button {
	return controls.NewButton(p.Scope, mainLocators.CartIcon)
}

// CartItemsNumber - returns the "Items" value of the header cart summary
func (p *MainPage) CartItemsNumber(ctx context.Context) (float64, error) {
	return p.cartInfo(ctx, mainLocators.CartItems)
}

// CartTotalPrice - returns the "Price" value of the header cart summary
func (p *MainPage) CartTotalPrice(ctx context.Context) (float64, error) {
	return p.cartInfo(ctx, mainLocators.CartPrice)
}

func (p *MainPage) cartInfo(ctx context.Context, locator entities.Locator) (float64, error) {
	text, err := controls.NewLabel(p.Scope, locator).Text(ctx)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("cart info %q: %w", text, entities.ErrTypeMismatch)
	}
	return value, nil
}

// Product - returns the first card whose name contains name
func (p *MainPage) Product(ctx context.Context, name string) (*MainPageProduct, error) {
	p.Scope.Log().Debugf("Get product '%s'", name)
	cards, err := p.Scope.Driver.FindElements(mainLocators.Product.By, mainLocators.Product.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	for _, card := range cards {
		product := &MainPageProduct{scope: p.Scope, card: card, timeout: p.QuantityTimeout}
		title, err := product.Name(ctx)
		if err != nil {
			return nil, err
		}
		if strings.Contains(title, name) {
			return product, nil
		}
	}
	return nil, &pages.ProductNotFoundError{Name: name}
}

// SearchForProduct - filters the grid with the search form and returns the matching card
func (p *MainPage) SearchForProduct(ctx context.Context, name string) (*MainPageProduct, error) {
	p.Scope.Log().Debugf("Search for product '%s'", name)
	if err := p.SearchTextbox().SetText(ctx, name); err != nil {
		return nil, err
	}
	if err := p.SearchButton().Click(ctx); err != nil {
		return nil, err
	}
	return p.Product(ctx, name)
}

// AddProductToCart - sets the card quantity when it differs from one, then adds the card
func (p *MainPage) AddProductToCart(ctx context.Context, name string, quantity float64) error {
	p.Scope.Log().Debugf("Add %v of product '%s' to cart", quantity, name)
	product, err := p.Product(ctx, name)
	if err != nil {
		return err
	}
	if quantity != 1 {
		if err := product.SetQuantity(ctx, quantity); err != nil {
			return err
		}
	}
	return product.AddToCart(ctx)
}

// CartPreview - opens the cart preview unless it is already open
func (p *MainPage) CartPreview(ctx context.Context) (*CartPreviewView, error) {
	active, err := p.Scope.Driver.FindElements(mainLocators.CartPreviewActive.By, mainLocators.CartPreviewActive.Value)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		p.Scope.Log().Debug("Open cart preview")
		if err := p.CartPreviewButton().Click(ctx); err != nil {
			return nil, err
		}
	}
	return p.CartPreviewView(), nil
}

// CartPreviewView - returns the preview without toggling it
func (p *MainPage) CartPreviewView() *CartPreviewView {
	return &CartPreviewView{BasePage: p.BasePage}
}

// MainPageProduct is one card of the product grid
type MainPageProduct struct {
	scope   controls.Scope
	card    interfaces.Element
	timeout time.Duration
}

func (p *MainPageProduct) find(locator entities.Locator) (interfaces.Element, error) {
	return p.card.FindElement(locator.By, locator.Value)
}

func (p *MainPageProduct) Name(ctx context.Context) (string, error) {
	el, err := p.find(mainLocators.ProductName)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (p *MainPageProduct) Price(ctx context.Context) (float64, error) {
	el, err := p.find(mainLocators.ProductPrice)
	if err != nil {
		return 0, err
	}
	text, err := el.Text()
	if err != nil {
		return 0, err
	}
	return pages.ParseAmount(text)
}

func (p *MainPageProduct) Quantity(ctx context.Context) (float64, error) {
	el, err := p.find(mainLocators.ProductQuantity)
	if err != nil {
		return 0, err
	}
	value, err := el.GetAttribute("value")
	if err != nil {
		return 0, err
	}
	quantity, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", value, entities.ErrTypeMismatch)
	}
	return quantity, nil
}

// TotalPrice - a card shows the unit price only, so the total equals it
func (p *MainPageProduct) TotalPrice(ctx context.Context) (float64, error) {
	return p.Price(ctx)
}

// AddToCart - presses "ADD TO CART" on the card
func (p *MainPageProduct) AddToCart(ctx context.Context) error {
	p.scope.Log().Debug("Add product to cart")
	button, err := p.find(mainLocators.ProductAdd)
	if err != nil {
		return err
	}
	return button.Click()
}

// SetQuantity - types a new quantity, submits it and reads it back
func (p *MainPageProduct) SetQuantity(ctx context.Context, quantity float64) error {
	p.scope.Log().Debugf("Set product quantity to '%v'", quantity)
	field, err := p.find(mainLocators.ProductQuantity)
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

// IncreaseQuantity - clicks "+" n times, waiting for the field to follow each click
func (p *MainPageProduct) IncreaseQuantity(ctx context.Context, n int) error {
	p.scope.Log().Debugf("Increase product quantity by %d", n)
	return p.step(ctx, mainLocators.ProductIncrease, n, 1)
}

// DecreaseQuantity - clicks "-" n times, waiting for the field to follow each click
func (p *MainPageProduct) DecreaseQuantity(ctx context.Context, n int) error {
	p.scope.Log().Debugf("Decrease product quantity by %d", n)
	return p.step(ctx, mainLocators.ProductDecrease, n, -1)
}

func (p *MainPageProduct) step(ctx context.Context, locator entities.Locator, n int, delta float64) error {
	expected, err := p.Quantity(ctx)
	if err != nil {
		return err
	}
	timeout := p.timeout
	if timeout <= 0 {
		timeout = DefaultQuantityTimeout
	}

	for i := 0; i < n; i++ {
		button, err := p.find(locator)
		if err != nil {
			return err
		}
		if err := button.Click(); err != nil {
			return err
		}
		expected += delta

		err = p.scope.Wait(ctx, timeout, func(interfaces.Driver) (bool, error) {
			got, err := p.Quantity(ctx)
			return err == nil && got == expected, nil
		})
		if err != nil {
			return fmt.Errorf("quantity did not reach %v: %w: %w", expected, entities.ErrVerification, err)
		}
	}
	return nil
}

var _ interfaces.Product = (*MainPageProduct)(nil)
