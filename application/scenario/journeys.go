package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	"ui_automation/application/controls"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/storage"

	"github.com/stretchr/testify/assert"
)

//go:embed data/*.json
var bundled embed.FS

const (
	protoCommerceData = "angular_practice_shop.json"
	greenKartData     = "green_kart_shop.json"

	// priceDelta absorbs rounding in price * quantity products
	priceDelta = 1e-9

	// DefaultRedirectTimeout bounds the wait for the GreenKart confirmation to return to the shop
	DefaultRedirectTimeout = 10 * time.Second
)

// Env is what journeys are built from
type Env struct {
	Scope controls.Scope
	Data  interfaces.DataSource

	RedirectTimeout time.Duration
}

func (e Env) redirectTimeout() time.Duration {
	if e.RedirectTimeout <= 0 {
		return DefaultRedirectTimeout
	}
	return e.RedirectTimeout
}

// Journey builds the suites of one site
type Journey struct {
	Name  string
	Build func(env Env) ([]Suite, error)
}

// Journeys lists every site in run order
var Journeys = []Journey{
	{Name: "practice", Build: practiceSuites},
	{Name: "protocommerce", Build: protoCommerceSuites},
	{Name: "greenkart", Build: greenKartSuites},
}

// BundledData - returns the data files compiled into the binary
func BundledData() interfaces.DataSource {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(err)
	}
	return storage.NewFileSource(sub)
}

// Build - builds the suites of every journey
func Build(env Env) ([]Suite, error) {
	if env.Data == nil {
		env.Data = BundledData()
	}
	var suites []Suite
	for _, journey := range Journeys {
		built, err := journey.Build(env)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s journey: %w", journey.Name, err)
		}
		suites = append(suites, built...)
	}
	return suites, nil
}

// parametrize - builds one suite per record of scenario, named journey/scenario/index
func parametrize(env Env, journey, file, scenario string, build func(record storage.Record) (Suite, error)) ([]Suite, error) {
	records, err := storage.LoadRecords(env.Data, file, scenario)
	if err != nil {
		return nil, err
	}
	suites := make([]Suite, 0, len(records))
	for i, record := range records {
		suite, err := build(record)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", scenario, i, err)
		}
		suite.Name = fmt.Sprintf("%s/%s/%d", journey, scenario, i)
		suites = append(suites, suite)
	}
	return suites, nil
}

// assertProductDetails - compares names exactly and prices and quantities within priceDelta
func assertProductDetails(t *T, expected, got entities.ProductDetails) bool {
	ok := assert.Equal(t, expected.Name, got.Name, "product name")
	ok = assert.InDelta(t, expected.Price, got.Price, priceDelta, "price of %s", expected.Name) && ok
	ok = assert.InDelta(t, expected.Quantity, got.Quantity, priceDelta, "quantity of %s", expected.Name) && ok
	return assert.InDelta(t, expected.TotalPrice, got.TotalPrice, priceDelta, "total price of %s", expected.Name) && ok
}
