// internal/domain/checkout/coordinator.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// State is the checkout submission state
type State string

const (
	StateForm            State = "form"
	StateSubmitting      State = "submitting"
	StateAwaitingPayment State = "awaiting_payment"
	StateConfirmed       State = "confirmed"
)

// PaymentMethod selects the payment path at submission
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CashOnDelivery"
	PaymentCard           PaymentMethod = "CardPayment"
)

var (
	// ErrEmptyCart blocks checkout when there is nothing to buy
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrSubmissionInFlight rejects a submit while another is running
	ErrSubmissionInFlight = errors.New("checkout: a submission is already in progress")
	// ErrNotAwaitingPayment rejects payment calls outside the card flow
	ErrNotAwaitingPayment = errors.New("checkout: no order is awaiting payment")
)

// OrderAPI creates orders on the backend
type OrderAPI interface {
	CreateOrder(ctx context.Context, draft *api.OrderDraft) (*api.Order, error)
}

// PaymentAPI drives the card payment flow on the backend
type PaymentAPI interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*api.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, orderID, paymentIntentID, paymentMethod string) (*api.PaymentConfirmation, error)
}

// ReceiptWriter renders a record of a confirmed order. Failures are logged
// and never fail the checkout.
type ReceiptWriter interface {
	Write(order *api.Order, lines cart.Snapshot, pricing Pricing) error
}

// Result is the outcome of a submission step
type Result struct {
	State State      `json:"state"`
	Order *api.Order `json:"order,omitempty"`
}

// Coordinator turns the cart snapshot into a submitted order. The cart is
// cleared only on the transition to confirmed, so no failure path ever
// loses cart contents. A boolean in-flight guard prevents double submits;
// there is no automatic retry, every failure hands control back to the
// shopper.
type Coordinator struct {
	mu       sync.Mutex
	state    State
	inFlight bool

	// Captured when the order is accepted and a card payment is pending.
	pendingOrder   *api.Order
	pendingPricing Pricing
	pendingLines   cart.Snapshot

	cart     *cart.Store
	orders   OrderAPI
	payments PaymentAPI
	receipts ReceiptWriter
	cfg      config.CheckoutConfig
	logger   *logrus.Logger
}

// NewCoordinator creates a checkout coordinator in the form state.
// receipts may be nil to skip receipt generation.
func NewCoordinator(cartStore *cart.Store, orders OrderAPI, payments PaymentAPI, receipts ReceiptWriter, cfg config.CheckoutConfig, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		state:    StateForm,
		cart:     cartStore,
		orders:   orders,
		payments: payments,
		receipts: receipts,
		cfg:      cfg,
		logger:   logger,
	}
}

// State returns the current submission state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pricing returns the current display pricing for the cart
func (c *Coordinator) Pricing() Pricing {
	return ComputePricing(c.cart.Lines(), c.cfg)
}

// Submit validates the form, creates the order and branches on the payment
// method: cash on delivery confirms immediately, card payment parks the
// accepted order until ConfirmPayment. customerID may be empty for guests.
func (c *Coordinator) Submit(ctx context.Context, form ShippingForm, method PaymentMethod, customerID string) (*Result, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}

	if fields := form.Validate(); len(fields) > 0 {
		c.mu.Unlock()
		return nil, &ValidationError{Fields: fields}
	}

	c.inFlight = true
	c.state = StateSubmitting
	c.mu.Unlock()

	draft := buildDraft(form, method, customerID, lines)

	order, err := c.orders.CreateOrder(ctx, draft)
	if err != nil {
		// Rejected order: back to the form with the cart untouched.
		c.setState(StateForm, false)
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"payment_method": method,
		"item_count":     len(lines),
	}).Info("Order accepted")

	if method == PaymentCard {
		c.mu.Lock()
		c.pendingOrder = order
		c.pendingPricing = ComputePricing(lines, c.cfg)
		c.pendingLines = lines
		c.state = StateAwaitingPayment
		c.inFlight = false
		c.mu.Unlock()
		return &Result{State: StateAwaitingPayment, Order: order}, nil
	}

	c.confirm(ctx, order, lines, ComputePricing(lines, c.cfg))
	return &Result{State: StateConfirmed, Order: order}, nil
}

// CreatePaymentIntent opens a card payment for the pending order's total.
// Failure keeps the checkout awaiting payment so the shopper can retry.
func (c *Coordinator) CreatePaymentIntent(ctx context.Context) (*api.PaymentIntent, error) {
	c.mu.Lock()
	if c.state != StateAwaitingPayment || c.pendingOrder == nil {
		c.mu.Unlock()
		return nil, ErrNotAwaitingPayment
	}
	amount := c.pendingPricing.Total
	c.mu.Unlock()

	intent, err := c.payments.CreatePaymentIntent(ctx, amount, c.cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("payment intent creation failed: %w", err)
	}
	return intent, nil
}

// ConfirmPayment completes the card flow with the widget's payment intent
// ID. A failed or declined payment returns to the form; the order already
// exists on the backend and the cart is intact, so the shopper may retry.
func (c *Coordinator) ConfirmPayment(ctx context.Context, paymentIntentID string) (*Result, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if c.state != StateAwaitingPayment || c.pendingOrder == nil {
		c.mu.Unlock()
		return nil, ErrNotAwaitingPayment
	}
	order := c.pendingOrder
	lines := c.pendingLines
	pricing := c.pendingPricing
	c.inFlight = true
	c.mu.Unlock()

	confirmation, err := c.payments.ConfirmPayment(ctx, order.ID, paymentIntentID, string(PaymentCard))
	if err != nil {
		c.abandonPayment()
		return nil, fmt.Errorf("payment confirmation failed: %w", err)
	}
	if !confirmation.Success {
		c.abandonPayment()
		return nil, fmt.Errorf("payment was not accepted")
	}

	if confirmation.Order != nil {
		order = confirmation.Order
	}
	c.confirm(ctx, order, lines, pricing)
	return &Result{State: StateConfirmed, Order: order}, nil
}

// confirm is the single transition that clears the cart
func (c *Coordinator) confirm(ctx context.Context, order *api.Order, lines cart.Snapshot, pricing Pricing) {
	if err := c.cart.Clear(ctx); err != nil {
		c.logger.WithError(err).Warn("Failed to clear cart after confirmed order")
	}

	c.mu.Lock()
	c.state = StateConfirmed
	c.inFlight = false
	c.pendingOrder = nil
	c.pendingLines = nil
	c.mu.Unlock()

	c.logger.WithField("order_id", order.ID).Info("Order confirmed")

	if c.receipts != nil {
		if err := c.receipts.Write(order, lines, pricing); err != nil {
			c.logger.WithError(err).Warn("Failed to write order receipt")
		}
	}
}

// Reset returns a confirmed coordinator to the form state for a new order
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return
	}
	c.state = StateForm
	c.pendingOrder = nil
	c.pendingLines = nil
	c.pendingPricing = Pricing{}
}

// abandonPayment returns a failed card flow to the form and drops the
// pending order state so it cannot leak into a later submission.
func (c *Coordinator) abandonPayment() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateForm
	c.inFlight = false
	c.pendingOrder = nil
	c.pendingLines = nil
	c.pendingPricing = Pricing{}
}

func (c *Coordinator) setState(state State, inFlight bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.inFlight = inFlight
}

// buildDraft maps cart lines and form fields onto the order payload
func buildDraft(form ShippingForm, method PaymentMethod, customerID string, lines cart.Snapshot) *api.OrderDraft {
	items := make([]api.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = api.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		}
	}

	return &api.OrderDraft{
		CustomerID:   customerID,
		CustomerName: form.CustomerName,
		Email:        form.Email,
		Phone:        form.Phone,
		ShippingAddress: api.ShippingAddress{
			AddressLine: form.AddressLine,
			City:        form.City,
			PostalCode:  form.PostalCode,
			Country:     form.Country,
		},
		Items:         items,
		PaymentMethod: string(method),
	}
}
