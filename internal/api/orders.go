// internal/api/orders.go
package api

import (
	"context"
	"fmt"
	"net/http"
)

// ShippingAddress is the delivery address attached to an order
type ShippingAddress struct {
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// OrderItem is one line of an order draft. Price is the unit price captured
// when the item was added to the cart, in minor currency units.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// OrderDraft is the payload for creating an order. It deliberately carries
// no client-computed total; the backend derives the total from the items so
// a tampered client cannot set its own price.
type OrderDraft struct {
	CustomerID      string          `json:"customerId,omitempty"`
	CustomerName    string          `json:"customerName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// Order is a created order as returned by the backend
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	Email         string      `json:"email"`
	Items         []OrderItem `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	CreatedAt     string      `json:"createdAt"`
}

// CreateOrder submits an order draft. Only a 201 counts as success; any
// other response is surfaced as an error.
func (c *Client) CreateOrder(ctx context.Context, draft *OrderDraft) (*Order, error) {
	var order Order
	status, err := c.do(ctx, http.MethodPost, "/orders", draft, &order)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, &Error{Status: status, Message: fmt.Sprintf("unexpected status %d creating order", status)}
	}
	return &order, nil
}
