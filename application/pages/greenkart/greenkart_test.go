package greenkart

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

func newShop(t *testing.T) (*MainPage, *htmldriver.Driver) {
	t.Helper()
	d, err := offline.New()
	require.NoError(t, err)

	scope := controls.NewScope(d, nil)
	scope.PresenceTimeout = 100 * time.Millisecond
	page := NewMainPage(scope)
	page.QuantityTimeout = 100 * time.Millisecond
	require.NoError(t, page.GoTo(context.Background()))
	return page, d
}

func TestMainPageTitle(t *testing.T) {
	page, _ := newShop(t)
	title, err := page.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Title, title)
}

func TestProductLookupIsPartial(t *testing.T) {
	page, _ := newShop(t)
	ctx := context.Background()

	product, err := page.Product(ctx, "Cauliflower")
	require.NoError(t, err)
	details, err := pages.Snapshot(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, entities.ProductDetails{Name: "Cauliflower - 1 Kg", Price: 60, Quantity: 1, TotalPrice: 60}, details)

	_, err = page.Product(ctx, "Mango")
	var notFound *pages.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Mango", notFound.Name)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestIncreaseAndDecreaseQuantity(t *testing.T) {
	page, _ := newShop(t)
	ctx := context.Background()

	product, err := page.Product(ctx, "Brocolli")
	require.NoError(t, err)

	require.NoError(t, product.IncreaseQuantity(ctx, 3))
	quantity, err := product.Quantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.0, quantity)

	require.NoError(t, product.DecreaseQuantity(ctx, 2))
	quantity, err = product.Quantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, quantity)
}

func TestDecreaseQuantityTimesOutAtMinimum(t *testing.T) {
	page, _ := newShop(t)
	ctx := context.Background()

	product, err := page.Product(ctx, "Cauliflower")
	require.NoError(t, err)

	err = product.DecreaseQuantity(ctx, 1)
	assert.ErrorIs(t, err, entities.ErrVerification)
	assert.ErrorIs(t, err, entities.ErrTimeout)
}

func TestSetQuantity(t *testing.T) {
	page, _ := newShop(t)
	ctx := context.Background()

	product, err := page.Product(ctx, "Brocolli")
	require.NoError(t, err)
	require.NoError(t, product.SetQuantity(ctx, 5))

	quantity, err := product.Quantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, quantity)
}

func TestAddProductToCartUpdatesCartInfo(t *testing.T) {
	page, _ := newShop(t)
	ctx := context.Background()

	items, err := page.CartItemsNumber(ctx)
	require.NoError(t, err)
	assert.Zero(t, items)

	require.NoError(t, page.AddProductToCart(ctx, "Brocolli", 3))
	require.NoError(t, page.AddProductToCart(ctx, "Tomato", 1))

	items, err = page.CartItemsNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, items)
	total, err := page.CartTotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, 376.0, total)
}

func TestCartPreviewOpensOnce(t *testing.T) {
	page, d := newShop(t)
	ctx := context.Background()
	require.NoError(t, page.AddProductToCart(ctx, "Brocolli", 2))
	require.NoError(t, page.AddProductToCart(ctx, "Cauliflower", 1))

	_, err := page.CartPreview(ctx)
	require.NoError(t, err)
	preview, err := page.CartPreview(ctx)
	require.NoError(t, err)

	active, err := d.FindAll(entities.CSS("div[class='cart-preview active']"))
	require.NoError(t, err)
	assert.Len(t, active, 1)

	products, err := preview.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	details, err := pages.Snapshot(ctx, pages.Lookup(products, "Brocolli"))
	require.NoError(t, err)
	assert.Equal(t, entities.ProductDetails{Name: "Brocolli - 1 Kg", Price: 120, Quantity: 2, TotalPrice: 240}, details)

	require.NoError(t, products["Cauliflower - 1 Kg"].RemoveFromCart(ctx))
	products, err = preview.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Contains(t, products, "Brocolli - 1 Kg")
}

func TestCheckoutPage(t *testing.T) {
	page, _ := newShop(t)
	ctx := context.Background()
	require.NoError(t, page.AddProductToCart(ctx, "Brocolli", 2))
	require.NoError(t, page.AddProductToCart(ctx, "Cauliflower", 1))
	preview, err := page.CartPreview(ctx)
	require.NoError(t, err)

	checkout, err := preview.ProceedToCheckout(ctx)
	require.NoError(t, err)
	assert.Equal(t, CartURL, checkout.URL())

	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	var sum float64
	for _, product := range products {
		details, err := pages.Snapshot(ctx, product)
		require.NoError(t, err)
		assert.InDelta(t, details.Price*details.Quantity, details.TotalPrice, 1e-9)
		sum += details.TotalPrice
	}

	total, err := checkout.TotalAmount(ctx)
	require.NoError(t, err)
	assert.InDelta(t, sum, total, 1e-9)
	assert.Equal(t, 300.0, total)

	discount, err := checkout.DiscountValue(ctx)
	require.NoError(t, err)
	assert.Zero(t, discount)

	afterDiscount, err := checkout.TotalAfterDiscount(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, afterDiscount)

	items, err := checkout.NumberOfItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, items)
}

func TestNumberOfItemsTypeMismatch(t *testing.T) {
	_, d := newShop(t)
	require.NoError(t, d.Get(CartURL))
	d.HandleScript(numberOfItemsScript, func(*htmldriver.Driver, []interface{}) (interface{}, error) {
		return 2.0, nil
	})

	checkout := NewCheckoutPage(controls.NewScope(d, nil))
	_, err := checkout.NumberOfItems(context.Background())
	assert.ErrorIs(t, err, entities.ErrTypeMismatch)
}

func TestDeliveryProceedRequiresConsent(t *testing.T) {
	page, d := newShop(t)
	ctx := context.Background()
	offline.RedirectDelay = 50 * time.Millisecond
	t.Cleanup(func() { offline.RedirectDelay = time.Second })
	require.NoError(t, page.AddProductToCart(ctx, "Carrot", 1))
	require.NoError(t, d.Get(CartURL))

	delivery, err := NewCheckoutPage(page.Scope).PlaceOrder(ctx)
	require.NoError(t, err)

	require.NoError(t, delivery.CountryDropdown().Select(ctx, "Poland"))
	country, err := delivery.CountryDropdown().Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Poland", country)

	confirmation, err := delivery.Proceed(ctx)
	require.NoError(t, err)
	assert.Nil(t, confirmation)
	alert, err := delivery.TermsAndConditionsAlertLabel().IsDisplayed(ctx)
	require.NoError(t, err)
	assert.True(t, alert)

	require.NoError(t, delivery.TermsAndConditionsCheckbox().Select(ctx))
	alert, err = delivery.TermsAndConditionsAlertLabel().IsDisplayed(ctx)
	require.NoError(t, err)
	assert.False(t, alert)

	confirmation, err = delivery.Proceed(ctx)
	require.NoError(t, err)
	require.NotNil(t, confirmation)

	message, err := confirmation.SuccessMessageLabel().Text(ctx)
	require.NoError(t, err)
	assert.Contains(t, message, confirmation.SuccessMessage())
	home, err := confirmation.HomeLink().IsDisplayed(ctx)
	require.NoError(t, err)
	assert.True(t, home)

	require.NoError(t, page.WaitForURL(ctx, MainURL, time.Second))
	items, err := page.CartItemsNumber(ctx)
	require.NoError(t, err)
	assert.Zero(t, items)
}
