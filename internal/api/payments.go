// internal/api/payments.go
package api

import (
	"context"
	"net/http"
)

// PaymentIntent is the backend's handle for a card payment in progress.
// The client secret is consumed by the card widget and is opaque here.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentConfirmation is the backend's verdict on a completed card payment
type PaymentConfirmation struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order,omitempty"`
}

// CreatePaymentIntent opens a card payment for the given amount in minor
// currency units.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error) {
	req := struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}{Amount: amount, Currency: currency}

	var intent PaymentIntent
	if _, err := c.do(ctx, http.MethodPost, "/payments/intent", req, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// ConfirmPayment reports a widget-completed payment back to the backend,
// which verifies it with the payment provider.
func (c *Client) ConfirmPayment(ctx context.Context, orderID, paymentIntentID, paymentMethod string) (*PaymentConfirmation, error) {
	req := struct {
		OrderID         string `json:"orderId"`
		PaymentIntentID string `json:"paymentIntentId"`
		PaymentMethod   string `json:"paymentMethod"`
	}{OrderID: orderID, PaymentIntentID: paymentIntentID, PaymentMethod: paymentMethod}

	var confirmation PaymentConfirmation
	if _, err := c.do(ctx, http.MethodPost, "/payments/confirm", req, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}
