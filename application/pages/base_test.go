package pages

import (
	"context"
	"testing"
	"time"

	"ui_automation/application/controls"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/browser/htmldriver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://page.test/"

func newPage(t *testing.T) (*BasePage, *htmldriver.Driver) {
	t.Helper()
	d := htmldriver.New()
	d.AddPage(pageURL, `<html><head><title>Base page</title></head><body><p>content</p></body></html>`)
	d.AddPage(pageURL+"next", `<html><head><title>Next</title></head><body></body></html>`)
	page := NewBasePage(controls.NewScope(d, nil), pageURL)
	return &page, d
}

func TestGoToAndTitle(t *testing.T) {
	page, _ := newPage(t)
	ctx := context.Background()

	require.NoError(t, page.GoTo(ctx))
	title, err := page.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Base page", title)

	current, err := page.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, page.URL(), current)
}

func TestGoToUnknownPage(t *testing.T) {
	d := htmldriver.New()
	page := NewBasePage(controls.NewScope(d, nil), "https://missing.test/")
	assert.Error(t, page.GoTo(context.Background()))
}

func TestDimensions(t *testing.T) {
	page, d := newPage(t)
	ctx := context.Background()
	require.NoError(t, page.GoTo(ctx))
	d.SetDocumentSize(1024, 3000)

	height, err := page.Height(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3000, height)

	width, err := page.Width(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1024, width)
}

func TestHeightTypeMismatch(t *testing.T) {
	page, d := newPage(t)
	ctx := context.Background()
	require.NoError(t, page.GoTo(ctx))

	d.HandleScript("return document.body.scrollHeight;", func(*htmldriver.Driver, []interface{}) (interface{}, error) {
		return "tall", nil
	})
	_, err := page.Height(ctx)
	assert.ErrorIs(t, err, entities.ErrTypeMismatch)

	d.HandleScript("return document.body.scrollHeight;", func(*htmldriver.Driver, []interface{}) (interface{}, error) {
		return 10.5, nil
	})
	_, err = page.Height(ctx)
	assert.ErrorIs(t, err, entities.ErrTypeMismatch)

	d.HandleScript("return document.body.scrollHeight;", func(*htmldriver.Driver, []interface{}) (interface{}, error) {
		return int64(42), nil
	})
	height, err := page.Height(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, height)
}

func TestScroll(t *testing.T) {
	page, d := newPage(t)
	ctx := context.Background()
	require.NoError(t, page.GoTo(ctx))
	d.SetDocumentSize(800, 2000)

	require.NoError(t, page.ScrollToBottom(ctx))
	_, y := d.ScrollPosition()
	assert.Equal(t, 2000, y)

	require.NoError(t, page.Scroll(ctx, 10, 500))
	x, y := d.ScrollPosition()
	assert.Equal(t, 10, x)
	assert.Equal(t, 500, y)
	offset, err := page.ScrollOffset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, offset)

	require.NoError(t, page.ScrollToTop(ctx))
	x, y = d.ScrollPosition()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestWaitForURL(t *testing.T) {
	page, d := newPage(t)
	ctx := context.Background()
	require.NoError(t, page.GoTo(ctx))

	err := page.WaitForURL(ctx, pageURL+"next", 50*time.Millisecond)
	assert.ErrorIs(t, err, entities.ErrTimeout)

	require.NoError(t, d.Get(pageURL+"next"))
	assert.NoError(t, page.WaitForURL(ctx, pageURL+"next", 50*time.Millisecond))
}

func TestWaitForURLHonoursCancellation(t *testing.T) {
	page, _ := newPage(t)
	require.NoError(t, page.GoTo(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := page.WaitForURL(ctx, pageURL+"next", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

type fixedProduct struct {
	name     string
	price    float64
	quantity float64
	total    float64
}

func (p fixedProduct) Name(context.Context) (string, error)        { return p.name, nil }
func (p fixedProduct) Price(context.Context) (float64, error)      { return p.price, nil }
func (p fixedProduct) Quantity(context.Context) (float64, error)   { return p.quantity, nil }
func (p fixedProduct) TotalPrice(context.Context) (float64, error) { return p.total, nil }

func TestSnapshot(t *testing.T) {
	details, err := Snapshot(context.Background(), fixedProduct{"Nokia Edge", 65000, 2, 130000})
	require.NoError(t, err)
	assert.Equal(t, entities.ProductDetails{Name: "Nokia Edge", Price: 65000, Quantity: 2, TotalPrice: 130000}, details)

	empty, err := Snapshot(context.Background(), EmptyProduct{})
	require.NoError(t, err)
	assert.Equal(t, entities.ProductDetails{}, empty)
}

func TestLookup(t *testing.T) {
	products := map[string]fixedProduct{
		"Brocolli - 1 Kg":    {name: "Brocolli - 1 Kg", price: 120},
		"Cauliflower - 1 Kg": {name: "Cauliflower - 1 Kg", price: 60},
	}

	found := Lookup(products, "Cauliflower")
	name, err := found.Name(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cauliflower - 1 Kg", name)

	assert.Equal(t, interfaces.Product(EmptyProduct{}), Lookup(products, "Carrot"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{text: "₹. 50000", want: 50000},
		{text: "$24.99", want: 24.99},
		{text: " 120 ", want: 120},
		{text: "₹. 65000.5", want: 65000.5},
		{text: "", wantErr: true},
		{text: "free", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseAmount(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, entities.ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestProductNotFoundError(t *testing.T) {
	var err error = &ProductNotFoundError{Name: "Pixel"}
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Contains(t, err.Error(), "Pixel")
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "0.5", FormatQuantity(0.5))
	assert.Equal(t, "-1", FormatQuantity(-1))
}
