package pages

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// ProductNotFoundError is returned when no product on the page carries the requested name
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.Name)
}

func (e *ProductNotFoundError) Unwrap() error {
	return entities.ErrNotFound
}

// EmptyProduct is a placeholder with zero values, used where a scenario needs a product slot filled
type EmptyProduct struct{}

func (EmptyProduct) Name(context.Context) (string, error)        { return "", nil }
func (EmptyProduct) Price(context.Context) (float64, error)      { return 0, nil }
func (EmptyProduct) Quantity(context.Context) (float64, error)   { return 0, nil }
func (EmptyProduct) TotalPrice(context.Context) (float64, error) { return 0, nil }

// Snapshot - reads every field of a product at once
func Snapshot(ctx context.Context, p interfaces.Product) (entities.ProductDetails, error) {
	var details entities.ProductDetails
	var err error
	if details.Name, err = p.Name(ctx); err != nil {
		return details, err
	}
	if details.Price, err = p.Price(ctx); err != nil {
		return details, err
	}
	if details.Quantity, err = p.Quantity(ctx); err != nil {
		return details, err
	}
	if details.TotalPrice, err = p.TotalPrice(ctx); err != nil {
		return details, err
	}
	return details, nil
}

// Lookup - returns the first product whose key contains name, or EmptyProduct
func Lookup[P interfaces.Product](products map[string]P, name string) interfaces.Product {
	keys := make([]string, 0, len(products))
	for key := range products {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(key, name) {
			return products[key]
		}
	}
	return EmptyProduct{}
}

// ParseAmount - parses the last field of a price text such as "₹. 50000" or "$24.99"
func ParseAmount(text string) (float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty amount: %w", entities.ErrTypeMismatch)
	}
	raw := strings.TrimLeftFunc(fields[len(fields)-1], func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '.'
	})
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", text, entities.ErrTypeMismatch)
	}
	return amount, nil
}

// FormatQuantity - renders a quantity the way it is typed into a field
func FormatQuantity(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

var _ interfaces.Product = EmptyProduct{}
