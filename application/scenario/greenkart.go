package scenario

import (
	"context"
	"strings"

	"ui_automation/application/pages"
	"ui_automation/application/pages/greenkart"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notImplemented = "to be implemented"

func greenKartSuites(env Env) ([]Suite, error) {
	suites, err := parametrize(env, "greenkart", greenKartData, "order_basic", func(record storage.Record) (Suite, error) {
		return greenKartOrderBasic(env, record), nil
	})
	if err != nil {
		return nil, err
	}

	for _, scenario := range []string{"page_search_box", "products_removal", "discount_code"} {
		stubs, err := parametrize(env, "greenkart", greenKartData, scenario, func(record storage.Record) (Suite, error) {
			return greenKartStub(env, record), nil
		})
		if err != nil {
			return nil, err
		}
		suites = append(suites, stubs...)
	}
	return suites, nil
}

// greenKartStub - a suite that is listed and reported but not run yet
func greenKartStub(env Env, record storage.Record) Suite {
	page := greenkart.NewMainPage(env.Scope)
	return Suite{Skip: notImplemented, Steps: []Step{
		{Name: "go_to_page", Run: func(ctx context.Context, t *T) {
			require.NoError(t, page.GoTo(ctx))
			title, err := page.Title(ctx)
			require.NoError(t, err)
			assert.Equal(t, record.String("page_title"), title)
		}},
	}}
}

func greenKartOrderBasic(env Env, record storage.Record) Suite {
	var (
		title    = record.String("page_title")
		name     = record.String("product_name")
		quantity = record.Float("product_quantity")
		price    = record.Float("product_price")
		country  = record.String("delivery_country")
	)
	expected := entities.ProductDetails{Name: name, Price: price, Quantity: quantity, TotalPrice: price * quantity}

	shop := greenkart.NewMainPage(env.Scope)
	var (
		preview  *greenkart.CartPreviewView
		checkout *greenkart.CheckoutPage
		delivery *greenkart.DeliveryPage
	)

	return Suite{Steps: []Step{
		{Name: "go_to_page", Run: func(ctx context.Context, t *T) {
			t.Logf("Product: %s", name)
			require.NoError(t, shop.GoTo(ctx))
			got, err := shop.Title(ctx)
			require.NoError(t, err)
			assert.Equal(t, title, got)
		}},
		{Name: "add_product_to_cart", Run: func(ctx context.Context, t *T) {
			require.NoError(t, shop.AddProductToCart(ctx, name, quantity))
			items, err := shop.CartItemsNumber(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1.0, items)
			total, err := shop.CartTotalPrice(ctx)
			require.NoError(t, err)
			assert.InDelta(t, expected.TotalPrice, total, priceDelta)
		}},
		{Name: "cart_preview", Run: func(ctx context.Context, t *T) {
			var err error
			preview, err = shop.CartPreview(ctx)
			require.NoError(t, err)
			products, err := preview.Products(ctx)
			require.NoError(t, err)
			assertCartLine(ctx, t, products, name, expected)
		}},
		{Name: "checkout_page", Run: func(ctx context.Context, t *T) {
			var err error
			checkout, err = preview.ProceedToCheckout(ctx)
			require.NoError(t, err)
			products, err := checkout.Products(ctx)
			require.NoError(t, err)
			assertCartLine(ctx, t, products, name, expected)
		}},
		{Name: "delivery_page_country_selection", Run: func(ctx context.Context, t *T) {
			var err error
			delivery, err = checkout.PlaceOrder(ctx)
			require.NoError(t, err)
			require.NoError(t, delivery.CountryDropdown().Select(ctx, country))
			got, err := delivery.CountryDropdown().Text(ctx)
			require.NoError(t, err)
			assert.Equal(t, country, got)
		}},
		{Name: "delivery_page_proceed_without_consent", Run: func(ctx context.Context, t *T) {
			next, err := delivery.Proceed(ctx)
			require.NoError(t, err)
			assert.Nil(t, next)
			assertDisplayed(ctx, t, delivery.TermsAndConditionsAlertLabel(), true)
		}},
		{Name: "delivery_page_proceed_with_consent", Run: func(ctx context.Context, t *T) {
			require.NoError(t, delivery.TermsAndConditionsCheckbox().Select(ctx))
			assertDisplayed(ctx, t, delivery.TermsAndConditionsAlertLabel(), false)
		}},
		{Name: "order_confirmation_page", Run: func(ctx context.Context, t *T) {
			confirmation, err := delivery.Proceed(ctx)
			require.NoError(t, err)
			require.NotNil(t, confirmation)
			assertDisplayed(ctx, t, confirmation.SuccessMessageLabel(), true)
			message, err := confirmation.SuccessMessageLabel().Text(ctx)
			require.NoError(t, err)
			assert.Contains(t, message, confirmation.SuccessMessage())
			assertDisplayed(ctx, t, confirmation.HomeLink(), true)
		}},
		{Name: "redirection", Run: func(ctx context.Context, t *T) {
			require.NoError(t, shop.WaitForURL(ctx, shop.URL(), env.redirectTimeout()))
		}},
		{Name: "main_page_after_order", Run: func(ctx context.Context, t *T) {
			items, err := shop.CartItemsNumber(ctx)
			require.NoError(t, err)
			assert.Zero(t, items)
			total, err := shop.CartTotalPrice(ctx)
			require.NoError(t, err)
			assert.Zero(t, total)
		}},
	}}
}

// assertCartLine - finds the line whose name contains name and compares it with expected
func assertCartLine[P interfaces.Product](ctx context.Context, t *T, products map[string]P, name string, expected entities.ProductDetails) {
	keys := make([]string, 0, len(products))
	for key := range products {
		keys = append(keys, key)
	}
	require.Contains(t, strings.Join(keys, ", "), name)

	got, err := pages.Snapshot(ctx, pages.Lookup(products, name))
	require.NoError(t, err)
	// cart names carry a unit suffix such as " - 1 Kg"
	assert.Contains(t, got.Name, name)
	expected.Name = got.Name
	assertProductDetails(t, expected, got)
}
