// Package protocommerce models the ProtoCommerce angular practice shop:
// product cards, the checkout table and the delivery form.
package protocommerce

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
)

const ShopURL = "https://rahulshettyacademy.com/angularpractice/shop"

var shopLocators = struct {
	CheckoutButton entities.Locator
	ProductCard    entities.Locator
	CardTitle      entities.Locator
	CardButton     entities.Locator
}{
	CheckoutButton: entities.CSS("a[class*='btn-primary']"),
	ProductCard:    entities.XPath("//div[@class='card h-100']"),
	CardTitle:      entities.XPath("div/h4/a"),
	CardButton:     entities.XPath("div/button"),
}

// ShopPage lists the product cards and the cart counter
type ShopPage struct {
	pages.BasePage
}

// NewShopPage - creates page bound to the public shop
func NewShopPage(scope controls.Scope) *ShopPage {
	return NewShopPageAt(scope, ShopURL)
}

// NewShopPageAt - creates page bound to url
func NewShopPageAt(scope controls.Scope, url string) *ShopPage {
	return &ShopPage{BasePage: pages.NewBasePage(scope, url)}
}

// CheckoutButton - returns the navbar button carrying the cart counter
func (p *ShopPage) CheckoutButton() *controls.Button {
	return controls.NewButton(p.Scope, shopLocators.CheckoutButton)
}

// CheckoutView - returns the checkout table view
func (p *ShopPage) CheckoutView() *CheckoutView {
	return &CheckoutView{BasePage: p.BasePage}
}

// DeliveryView - returns the delivery form view
func (p *ShopPage) DeliveryView() *DeliveryLocationView {
	return &DeliveryLocationView{BasePage: p.BasePage}
}

// AddProductToCart - clicks "Add" on the card titled name
func (p *ShopPage) AddProductToCart(ctx context.Context, name string) error {
	p.Scope.Log().Debugf("Add product '%s' to cart", name)
	cards, err := p.Scope.Driver.FindElements(shopLocators.ProductCard.By, shopLocators.ProductCard.Value)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	for _, card := range cards {
		title, err := card.FindElement(shopLocators.CardTitle.By, shopLocators.CardTitle.Value)
		if err != nil {
			return err
		}
		text, err := title.Text()
		if err != nil {
			return err
		}
		if text != name {
			continue
		}
		button, err := card.FindElement(shopLocators.CardButton.By, shopLocators.CardButton.Value)
		if err != nil {
			return err
		}
		return button.Click()
	}
	return &pages.ProductNotFoundError{Name: name}
}

// NumberOfProductsInCart - parses the counter out of "Checkout ( n )", ignoring anything after it
func (p *ShopPage) NumberOfProductsInCart(ctx context.Context) (int, error) {
	button := p.CheckoutButton()
	el, err := p.Scope.Driver.FindElement(button.Locator().By, button.Locator().Value)
	if err != nil {
		return 0, err
	}
	text, err := el.Text()
	if err != nil {
		return 0, err
	}
	_, rest, found := strings.Cut(text, "(")
	inner, _, closed := strings.Cut(rest, ")")
	if !found || !closed {
		return 0, fmt.Errorf("checkout button text %q: %w", text, entities.ErrTypeMismatch)
	}
	count, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil {
		return 0, fmt.Errorf("checkout button text %q: %w", text, entities.ErrTypeMismatch)
	}
	return count, nil
}

// GoToCheckout - opens the checkout view
func (p *ShopPage) GoToCheckout(ctx context.Context) (*CheckoutView, error) {
	p.Scope.Log().Debug("Go to CheckoutView")
	if err := p.CheckoutButton().Click(ctx); err != nil {
		return nil, err
	}
	return p.CheckoutView(), nil
}
