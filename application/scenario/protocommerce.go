package scenario

import (
	"context"
	"errors"
	"math"
	"sort"

	"ui_automation/application/pages"
	"ui_automation/application/pages/protocommerce"
	"ui_automation/domain/entities"
	"ui_automation/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type protoCommerceOrder struct {
	ProductName     string  `json:"product_name"`
	ProductQuantity int     `json:"product_quantity"`
	ProductPrice    float64 `json:"product_price"`
	DeliveryCountry string  `json:"delivery_country"`
	TypeLen         int     `json:"type_len"`
	SuccessMsg      string  `json:"success_msg"`
}

// cartLines maps a product name to its [quantity, price]
type cartLines map[string][]float64

func (c cartLines) names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c cartLines) merge(other cartLines) {
	for name, line := range other {
		c[name] = line
	}
}

type protoCommerceChanges struct {
	Products        cartLines `json:"products"`
	ProductMore     cartLines `json:"product_more"`
	ProductZero     cartLines `json:"product_zero"`
	ProductFraction cartLines `json:"product_fraction"`
	ProductMinus    cartLines `json:"product_minus"`
}

func protoCommerceSuites(env Env) ([]Suite, error) {
	var suites []Suite
	for _, scenario := range []struct {
		name  string
		build func(env Env, record storage.Record) (Suite, error)
	}{
		{"order_basic", protoCommerceOrderBasic},
		{"order_with_changes", protoCommerceOrderWithChanges},
		{"order_with_removals", protoCommerceOrderWithRemovals},
	} {
		built, err := parametrize(env, "protocommerce", protoCommerceData, scenario.name, func(record storage.Record) (Suite, error) {
			return scenario.build(env, record)
		})
		if err != nil {
			return nil, err
		}
		suites = append(suites, built...)
	}
	return suites, nil
}

func protoCommerceOrderBasic(env Env, record storage.Record) (Suite, error) {
	var data protoCommerceOrder
	if err := record.Decode(&data); err != nil {
		return Suite{}, err
	}
	page := protocommerce.NewShopPage(env.Scope)

	return Suite{Steps: []Step{
		{Name: "add_product_to_cart", Run: func(ctx context.Context, t *T) {
			t.Logf("Product: %s", data.ProductName)
			require.NoError(t, page.GoTo(ctx))
			require.NoError(t, page.AddProductToCart(ctx, data.ProductName))
			count, err := page.NumberOfProductsInCart(ctx)
			require.NoError(t, err)
			assert.Equal(t, data.ProductQuantity, count)
		}},
		{Name: "checkout_view", Run: func(ctx context.Context, t *T) {
			checkout, err := page.GoToCheckout(ctx)
			require.NoError(t, err)
			products, err := checkout.Products(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, products)

			product, err := pages.Snapshot(ctx, products[0])
			require.NoError(t, err)
			quantity := float64(data.ProductQuantity)
			assertProductDetails(t, entities.ProductDetails{
				Name:       data.ProductName,
				Price:      data.ProductPrice,
				Quantity:   quantity,
				TotalPrice: quantity * data.ProductPrice,
			}, product)

			total, err := checkout.TotalPrice(ctx)
			require.NoError(t, err)
			assert.InDelta(t, quantity*data.ProductPrice, total, priceDelta)
		}},
		{Name: "delivery_view", Run: func(ctx context.Context, t *T) {
			delivery, err := page.CheckoutView().GoToDelivery(ctx)
			require.NoError(t, err)
			dropdown := delivery.DeliveryLocationDropdown()
			if data.TypeLen < 0 {
				require.NoError(t, dropdown.Select(ctx, data.DeliveryCountry))
			} else {
				require.NoError(t, dropdown.SelectByPartialValue(ctx, data.DeliveryCountry, data.TypeLen))
			}
			text, err := dropdown.Text(ctx)
			require.NoError(t, err)
			assert.Equal(t, data.DeliveryCountry, text)
		}},
		{Name: "purchase_view", Run: func(ctx context.Context, t *T) {
			delivery := page.DeliveryView()
			require.NoError(t, delivery.TermsAndConditionsCheckbox().Select(ctx))
			require.NoError(t, delivery.PurchaseButton().Click(ctx))

			assertDisplayed(ctx, t, delivery.AlertMessageLabel(), true)
			message, err := delivery.AlertMessageLabel().Text(ctx)
			require.NoError(t, err)
			assert.Contains(t, message, data.SuccessMsg)

			require.NoError(t, delivery.AlertMessageCloseButton().Click(ctx))
			_, err = delivery.AlertMessageLabel().IsPresent(ctx)
			assert.ErrorIs(t, err, entities.ErrNotFound)
		}},
	}}, nil
}

func protoCommerceOrderWithChanges(env Env, record storage.Record) (Suite, error) {
	var data protoCommerceChanges
	if err := record.Decode(&data); err != nil {
		return Suite{}, err
	}
	page := protocommerce.NewShopPage(env.Scope)
	expected := cartLines{}
	expected.merge(data.Products)

	return Suite{Steps: []Step{
		{Name: "add_products_to_cart", Run: func(ctx context.Context, t *T) {
			require.NoError(t, page.GoTo(ctx))
			for _, name := range data.Products.names() {
				require.NoError(t, page.AddProductToCart(ctx, name))
			}
			count, err := page.NumberOfProductsInCart(ctx)
			require.NoError(t, err)
			assert.Equal(t, len(data.Products), count)
		}},
		{Name: "checkout_view_initial", Run: func(ctx context.Context, t *T) {
			checkout, err := page.GoToCheckout(ctx)
			require.NoError(t, err)
			products, err := checkout.Products(ctx)
			require.NoError(t, err)
			assert.Len(t, products, len(data.Products))
			verifyCart(ctx, t, checkout, expected)
		}},
		{Name: "checkout_view_add_product", Run: func(ctx context.Context, t *T) {
			modifyQuantities(ctx, t, page.CheckoutView(), data.ProductMore, true)
			expected.merge(data.ProductMore)
			verifyCart(ctx, t, page.CheckoutView(), expected)
		}},
		{Name: "checkout_view_zero_product", Run: func(ctx context.Context, t *T) {
			modifyQuantities(ctx, t, page.CheckoutView(), data.ProductZero, true)
			expected.merge(data.ProductZero)
			verifyCart(ctx, t, page.CheckoutView(), expected)
		}},
		{Name: "checkout_view_fraction_product", Run: func(ctx context.Context, t *T) {
			modifyQuantities(ctx, t, page.CheckoutView(), data.ProductFraction, false)
			for _, product := range cartProducts(ctx, t, page.CheckoutView(), data.ProductFraction) {
				assert.Equal(t, math.Trunc(product.Quantity), product.Quantity,
					"Quantity of %s must be an integer.", product.Name)
			}
		}},
		{Name: "checkout_view_negative_product", Run: func(ctx context.Context, t *T) {
			modifyQuantities(ctx, t, page.CheckoutView(), data.ProductMinus, false)
			for _, product := range cartProducts(ctx, t, page.CheckoutView(), data.ProductMinus) {
				assert.GreaterOrEqual(t, product.Quantity, 0.0,
					"Quantity of %s cannot be negative.", product.Name)
			}
		}},
		{Name: "checkout_view_continue_shopping", Run: func(ctx context.Context, t *T) {
			require.NoError(t, page.CheckoutView().ContinueShoppingButton().Click(ctx))
			count, err := page.NumberOfProductsInCart(ctx)
			require.NoError(t, err)
			assert.Positive(t, count, "Cart should not get reset.")
		}},
	}}, nil
}

func protoCommerceOrderWithRemovals(env Env, record storage.Record) (Suite, error) {
	names := record.Strings("products")
	totalFinal := record.Float("total_final")
	page := protocommerce.NewShopPage(env.Scope)

	return Suite{Steps: []Step{
		{Name: "add_products_to_cart", Run: func(ctx context.Context, t *T) {
			require.NoError(t, page.GoTo(ctx))
			for _, name := range names {
				require.NoError(t, page.AddProductToCart(ctx, name))
			}
			count, err := page.NumberOfProductsInCart(ctx)
			require.NoError(t, err)
			assert.Equal(t, len(names), count)
		}},
		{Name: "checkout_view_initial", Run: func(ctx context.Context, t *T) {
			checkout, err := page.GoToCheckout(ctx)
			require.NoError(t, err)
			products, err := checkout.Products(ctx)
			require.NoError(t, err)
			assert.Len(t, products, len(names))
		}},
		{Name: "checkout_view_remove_products", Run: func(ctx context.Context, t *T) {
			products, err := page.CheckoutView().Products(ctx)
			require.NoError(t, err)
			for _, product := range products {
				require.NoError(t, product.Remove(ctx))
			}
			total, err := page.CheckoutView().TotalPrice(ctx)
			require.NoError(t, err)
			assert.InDelta(t, totalFinal, total, priceDelta)
		}},
		{Name: "checkout_view_proceed", Run: func(ctx context.Context, t *T) {
			enabled, err := page.CheckoutView().CheckoutButton().IsEnabled(ctx)
			require.NoError(t, err)
			assert.False(t, enabled, "Checkout button should be inactive.")
		}},
	}}, nil
}

// modifyQuantities - sets the quantity of every row named in changes; a quantity the
// cart refuses is tolerated unless strict
func modifyQuantities(ctx context.Context, t *T, checkout *protocommerce.CheckoutView, changes cartLines, strict bool) {
	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	for _, product := range products {
		name, err := product.Name(ctx)
		require.NoError(t, err)
		line, ok := changes[name]
		if !ok {
			continue
		}
		require.NotEmpty(t, line, "quantity of %s", name)
		err = product.SetQuantity(ctx, line[0])
		if err != nil && !strict && errors.Is(err, entities.ErrVerification) {
			t.Logf("%s: %v", name, err)
			continue
		}
		require.NoError(t, err)
	}
}

// verifyCart - checks every row against expected and the total against the sum of rows
func verifyCart(ctx context.Context, t *T, checkout *protocommerce.CheckoutView, expected cartLines) {
	var total float64
	for _, product := range cartProducts(ctx, t, checkout, nil) {
		line, ok := expected[product.Name]
		if !assert.True(t, ok, "unexpected product %q in cart", product.Name) {
			continue
		}
		require.Len(t, line, 2, "quantity and price of %s", product.Name)
		assertProductDetails(t, entities.ProductDetails{
			Name:       product.Name,
			Price:      line[1],
			Quantity:   line[0],
			TotalPrice: line[0] * line[1],
		}, product)
		total += product.TotalPrice
	}
	got, err := checkout.TotalPrice(ctx)
	require.NoError(t, err)
	assert.InDelta(t, total, got, priceDelta)
}

// cartProducts - reads the cart rows named in only, or every row when only is nil
func cartProducts(ctx context.Context, t *T, checkout *protocommerce.CheckoutView, only cartLines) []entities.ProductDetails {
	products, err := checkout.Products(ctx)
	require.NoError(t, err)
	details := make([]entities.ProductDetails, 0, len(products))
	for _, product := range products {
		snapshot, err := pages.Snapshot(ctx, product)
		require.NoError(t, err)
		if _, ok := only[snapshot.Name]; only != nil && !ok {
			continue
		}
		details = append(details, snapshot)
	}
	return details
}
