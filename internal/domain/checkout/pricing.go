// internal/domain/checkout/pricing.go
package checkout

import (
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// Pricing is the checkout cost breakdown in minor currency units. It is
// display-only: the order payload never carries these figures, the backend
// recomputes them as the authoritative total.
type Pricing struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shipping_fee"`
	Total       int64 `json:"total"`
}

// ComputePricing derives the checkout pricing from the cart lines. Shipping
// is free only when the subtotal strictly exceeds the threshold; a subtotal
// exactly at the threshold still pays the fee.
func ComputePricing(lines cart.Snapshot, cfg config.CheckoutConfig) Pricing {
	subtotal := lines.Total()

	var shippingFee int64
	if subtotal <= cfg.FreeShippingThreshold {
		shippingFee = cfg.ShippingFee
	}

	return Pricing{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal + shippingFee,
	}
}
