package interfaces

import "context"

// Product is a read-only view over one product card or cart line
type Product interface {
	Name(ctx context.Context) (string, error)
	Price(ctx context.Context) (float64, error)
	Quantity(ctx context.Context) (float64, error)
	TotalPrice(ctx context.Context) (float64, error)
}
