package protocommerce

import (
	"context"
	"testing"
	"time"

	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
	"ui_automation/infrastructure/browser/htmldriver"
	"ui_automation/infrastructure/browser/offline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShop(t *testing.T) (*ShopPage, *htmldriver.Driver) {
	t.Helper()
	d, err := offline.New()
	require.NoError(t, err)

	scope := controls.NewScope(d, nil)
	scope.PresenceTimeout = 100 * time.Millisecond
	scope.SuggestionTimeout = 100 * time.Millisecond
	shop := NewShopPage(scope)
	require.NoError(t, shop.GoTo(context.Background()))
	return shop, d
}

func checkoutWith(t *testing.T, shop *ShopPage, names ...string) *CheckoutView {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		require.NoError(t, shop.AddProductToCart(ctx, name))
	}
	checkout, err := shop.GoToCheckout(ctx)
	require.NoError(t, err)
	return checkout
}

func assertTotalsAddUp(t *testing.T, checkout *CheckoutView) {
	t.Helper()
	ctx := context.Background()
	products, err := checkout.Products(ctx)
	require.NoError(t, err)

	var sum float64
	for _, product := range products {
		price, err := product.Price(ctx)
		require.NoError(t, err)
		quantity, err := product.Quantity(ctx)
		require.NoError(t, err)
		total, err := product.TotalPrice(ctx)
		require.NoError(t, err)
		assert.Equal(t, price*quantity, total)
		sum += total
	}
	total, err := checkout.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, sum, total)
}

func TestAddMissingProduct(t *testing.T) {
	shop, _ := newShop(t)
	err := shop.AddProductToCart(context.Background(), "Pixel 9")

	var notFound *pages.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Pixel 9", notFound.Name)
}

func TestCartCounter(t *testing.T) {
	shop, _ := newShop(t)
	ctx := context.Background()

	count, err := shop.NumberOfProductsInCart(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for i, name := range []string{"iphone X", "Nokia Edge", "iphone X"} {
		require.NoError(t, shop.AddProductToCart(ctx, name))
		count, err = shop.NumberOfProductsInCart(ctx)
		require.NoError(t, err)
		assert.Equal(t, min(i+1, 2), count, "after adding %s", name)
	}
}

func TestCheckoutTotals(t *testing.T) {
	shop, _ := newShop(t)
	checkout := checkoutWith(t, shop, "iphone X", "Blackberry", "iphone X")
	ctx := context.Background()

	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	name, err := products[0].Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "iphone X", name)
	quantity, err := products[0].Quantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, quantity)

	total, err := checkout.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, total)
	assertTotalsAddUp(t, checkout)
}

func TestCheckoutSetQuantity(t *testing.T) {
	shop, _ := newShop(t)
	checkout := checkoutWith(t, shop, "Samsung Note 8", "Nokia Edge")
	ctx := context.Background()

	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	require.NoError(t, products[0].SetQuantity(ctx, 3))
	assertTotalsAddUp(t, checkout)

	err = products[1].SetQuantity(ctx, 2.5)
	assert.ErrorIs(t, err, entities.ErrVerification)
	quantity, err := products[1].Quantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, quantity)
	assertTotalsAddUp(t, checkout)

	total, err := checkout.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3*85000.0+2*65000.0, total)
}

func TestCheckoutRemove(t *testing.T) {
	shop, _ := newShop(t)
	checkout := checkoutWith(t, shop, "iphone X", "Nokia Edge")
	ctx := context.Background()

	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	require.NoError(t, products[0].Remove(ctx))

	products, err = checkout.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	name, err := products[0].Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nokia Edge", name)
	assertTotalsAddUp(t, checkout)

	count, err := shop.NumberOfProductsInCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, products[0].Remove(ctx))
	enabled, err := checkout.CheckoutButton().IsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestContinueShopping(t *testing.T) {
	shop, _ := newShop(t)
	checkout := checkoutWith(t, shop, "Blackberry")
	ctx := context.Background()

	require.NoError(t, checkout.ContinueShoppingButton().Click(ctx))
	require.NoError(t, shop.AddProductToCart(ctx, "Blackberry"))

	checkout, err := shop.GoToCheckout(ctx)
	require.NoError(t, err)
	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	quantity, err := products[0].Quantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, quantity)
}

func TestDeliveryPurchase(t *testing.T) {
	shop, d := newShop(t)
	checkout := checkoutWith(t, shop, "Nokia Edge")
	ctx := context.Background()

	delivery, err := checkout.GoToDelivery(ctx)
	require.NoError(t, err)

	country := delivery.DeliveryLocationDropdown()
	require.NoError(t, country.SelectByPartialValue(ctx, "Poland", 3))
	text, err := country.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Poland", text)

	err = country.SelectByPartialValue(ctx, "Poland", 2)
	assert.ErrorIs(t, err, entities.ErrNoSuchElement)

	require.NoError(t, delivery.TermsAndConditionsCheckbox().Click(ctx))
	box, err := d.Find(entities.ID("checkbox2"))
	require.NoError(t, err)
	checked, err := box.IsSelected()
	require.NoError(t, err)
	assert.True(t, checked)

	require.NoError(t, delivery.PurchaseButton().Click(ctx))
	message, err := delivery.AlertMessageLabel().Text(ctx)
	require.NoError(t, err)
	assert.Contains(t, message, offline.ShopSuccessMessage)

	require.NoError(t, delivery.AlertMessageCloseButton().Click(ctx))
	_, err = delivery.AlertMessageLabel().IsPresent(ctx)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
