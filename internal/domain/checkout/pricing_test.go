package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		FreeShippingThreshold: 200000, // Rs 2000.00
		ShippingFee:           20000,  // Rs 200.00
		Currency:              "pkr",
	}
}

func cartWithSubtotal(subtotal int64) cart.Snapshot {
	return cart.Snapshot{{
		LineKey:   cart.LineKey{ProductID: "P1"},
		Name:      "Test Product",
		UnitPrice: subtotal,
		Quantity:  1,
	}}
}

func TestComputePricingShippingThreshold(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     int64
		wantShipping int64
	}{
		{name: "below threshold pays shipping", subtotal: 180000, wantShipping: 20000},
		{name: "exactly at threshold still pays shipping", subtotal: 200000, wantShipping: 20000},
		{name: "one paisa over threshold ships free", subtotal: 200001, wantShipping: 0},
		{name: "well over threshold ships free", subtotal: 500000, wantShipping: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing := ComputePricing(cartWithSubtotal(tt.subtotal), testCheckoutConfig())

			assert.Equal(t, tt.subtotal, pricing.Subtotal)
			assert.Equal(t, tt.wantShipping, pricing.ShippingFee)
			assert.Equal(t, tt.subtotal+tt.wantShipping, pricing.Total)
		})
	}
}

func TestComputePricingSubtotalScenario(t *testing.T) {
	// Cart with subtotal Rs 1800 pays Rs 200 shipping for a Rs 2000 total.
	lines := cart.Snapshot{
		{LineKey: cart.LineKey{ProductID: "P1"}, UnitPrice: 60000, Quantity: 2},
		{LineKey: cart.LineKey{ProductID: "P2"}, UnitPrice: 30000, Quantity: 2},
	}

	pricing := ComputePricing(lines, testCheckoutConfig())

	assert.Equal(t, int64(180000), pricing.Subtotal)
	assert.Equal(t, int64(20000), pricing.ShippingFee)
	assert.Equal(t, int64(200000), pricing.Total)
}

func TestComputePricingRecomputesFromLines(t *testing.T) {
	lines := cart.Snapshot{
		{LineKey: cart.LineKey{ProductID: "P1"}, UnitPrice: 50000, Quantity: 3},
	}

	first := ComputePricing(lines, testCheckoutConfig())
	lines[0].Quantity = 5
	second := ComputePricing(lines, testCheckoutConfig())

	assert.Equal(t, int64(150000), first.Subtotal)
	assert.Equal(t, int64(250000), second.Subtotal)
}
