package entities

// ProductDetails is a point-in-time read of a cart line or product card
type ProductDetails struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}
