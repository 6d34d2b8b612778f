package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeOrderAPI struct {
	err    error
	drafts []*api.OrderDraft
	// onCreate runs inside CreateOrder, before returning; used to probe
	// the in-flight guard.
	onCreate func()
}

func (f *fakeOrderAPI) CreateOrder(_ context.Context, draft *api.OrderDraft) (*api.Order, error) {
	f.drafts = append(f.drafts, draft)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &api.Order{ID: "ORD-1", Status: "Pending"}, nil
}

type fakePaymentAPI struct {
	intentErr    error
	confirmErr   error
	confirmation *api.PaymentConfirmation
	confirmCalls int
}

func (f *fakePaymentAPI) CreatePaymentIntent(_ context.Context, amount int64, currency string) (*api.PaymentIntent, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &api.PaymentIntent{ClientSecret: "cs_test"}, nil
}

func (f *fakePaymentAPI) ConfirmPayment(_ context.Context, orderID, intentID, method string) (*api.PaymentConfirmation, error) {
	f.confirmCalls++
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	if f.confirmation != nil {
		return f.confirmation, nil
	}
	return &api.PaymentConfirmation{Success: true}, nil
}

type recordedReceipt struct {
	order   *api.Order
	lines   cart.Snapshot
	pricing Pricing
}

type fakeReceiptWriter struct {
	written []recordedReceipt
}

func (f *fakeReceiptWriter) Write(order *api.Order, lines cart.Snapshot, pricing Pricing) error {
	f.written = append(f.written, recordedReceipt{order: order, lines: lines, pricing: pricing})
	return nil
}

func newTestCart(t *testing.T, lines ...cart.Line) *cart.Store {
	t.Helper()
	ctx := context.Background()
	store := cart.NewStore(ctx, storage.NewMemoryStore(), testLogger())
	for _, l := range lines {
		require.NoError(t, store.AddItem(ctx, l))
	}
	return store
}

func testLine(productID string, price int64, qty int) cart.Line {
	return cart.Line{
		LineKey:   cart.LineKey{ProductID: productID, Size: "M", Color: "Red"},
		Name:      "Test Product",
		UnitPrice: price,
		Quantity:  qty,
	}
}

func TestSubmitCashOnDeliveryConfirmsAndClearsCart(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 50000, 2))
	orders := &fakeOrderAPI{}
	receipts := &fakeReceiptWriter{}
	c := NewCoordinator(cartStore, orders, &fakePaymentAPI{}, receipts, testCheckoutConfig(), testLogger())

	result, err := c.Submit(ctx, validForm(), PaymentCashOnDelivery, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StateConfirmed, result.State)
	assert.Equal(t, StateConfirmed, c.State())
	assert.Equal(t, "ORD-1", result.Order.ID)
	assert.Empty(t, cartStore.Lines(), "cart must be cleared on confirmation")
	require.Len(t, receipts.written, 1)
	assert.Equal(t, int64(100000), receipts.written[0].pricing.Subtotal)
}

func TestSubmitBuildsDraftWithoutClientTotal(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t,
		testLine("P1", 50000, 2),
		cart.Line{LineKey: cart.LineKey{ProductID: "P2"}, Name: "Other", UnitPrice: 30000, Quantity: 1},
	)
	orders := &fakeOrderAPI{}
	c := NewCoordinator(cartStore, orders, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(ctx, validForm(), PaymentCashOnDelivery, "user-7")
	require.NoError(t, err)

	require.Len(t, orders.drafts, 1)
	draft := orders.drafts[0]
	assert.Equal(t, "user-7", draft.CustomerID)
	assert.Equal(t, "Ayesha Khan", draft.CustomerName)
	assert.Equal(t, string(PaymentCashOnDelivery), draft.PaymentMethod)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, api.OrderItem{ProductID: "P1", Quantity: 2, Price: 50000}, draft.Items[0])
	assert.Equal(t, api.OrderItem{ProductID: "P2", Quantity: 1, Price: 30000}, draft.Items[1])
}

func TestSubmitRejectedOrderLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 50000, 2))
	orders := &fakeOrderAPI{err: &api.Error{Status: 400, Message: "Invalid order"}}
	c := NewCoordinator(cartStore, orders, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(ctx, validForm(), PaymentCashOnDelivery, "")
	require.Error(t, err)

	var apiErr *api.Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, StateForm, c.State())
	assert.Len(t, cartStore.Lines(), 1, "cart must survive a failed submission")
}

func TestSubmitEmptyCartIsBlocked(t *testing.T) {
	c := NewCoordinator(newTestCart(t), &fakeOrderAPI{}, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(context.Background(), validForm(), PaymentCashOnDelivery, "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateForm, c.State())
}

func TestSubmitInvalidFormIsBlockedBeforeNetwork(t *testing.T) {
	cartStore := newTestCart(t, testLine("P1", 50000, 1))
	orders := &fakeOrderAPI{}
	c := NewCoordinator(cartStore, orders, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	form := validForm()
	form.Phone = "123"

	_, err := c.Submit(context.Background(), form, PaymentCashOnDelivery, "")

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "phone")
	assert.Empty(t, orders.drafts, "invalid forms never reach the network")
	assert.Equal(t, StateForm, c.State())
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 50000, 1))
	orders := &fakeOrderAPI{}
	var c *Coordinator
	var reentrantErr error
	orders.onCreate = func() {
		_, reentrantErr = c.Submit(ctx, validForm(), PaymentCashOnDelivery, "")
	}
	c = NewCoordinator(cartStore, orders, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(ctx, validForm(), PaymentCashOnDelivery, "")
	require.NoError(t, err)

	assert.ErrorIs(t, reentrantErr, ErrSubmissionInFlight)
	assert.Len(t, orders.drafts, 1)
}

func TestCardPaymentFlowConfirmsOnSuccess(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 150000, 2)) // subtotal 300000, free shipping
	payments := &fakePaymentAPI{}
	c := NewCoordinator(cartStore, &fakeOrderAPI{}, payments, nil, testCheckoutConfig(), testLogger())

	result, err := c.Submit(ctx, validForm(), PaymentCard, "")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, result.State)
	assert.Len(t, cartStore.Lines(), 1, "cart is kept until payment succeeds")

	intent, err := c.CreatePaymentIntent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cs_test", intent.ClientSecret)

	confirmed, err := c.ConfirmPayment(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, confirmed.State)
	assert.Empty(t, cartStore.Lines())
	assert.Equal(t, 1, payments.confirmCalls)
}

func TestCardPaymentFailureReturnsToFormWithCartIntact(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 50000, 1))
	payments := &fakePaymentAPI{confirmErr: &api.Error{Status: 402, Message: "Card declined"}}
	c := NewCoordinator(cartStore, &fakeOrderAPI{}, payments, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(ctx, validForm(), PaymentCard, "")
	require.NoError(t, err)

	_, err = c.ConfirmPayment(ctx, "pi_123")
	require.Error(t, err)

	assert.Equal(t, StateForm, c.State())
	assert.Len(t, cartStore.Lines(), 1, "cart must survive a failed payment")

	// No order state lingers from the abandoned flow.
	assert.Nil(t, c.pendingOrder)
	assert.Nil(t, c.pendingLines)
	assert.Equal(t, Pricing{}, c.pendingPricing)
	_, err = c.ConfirmPayment(ctx, "pi_123")
	assert.ErrorIs(t, err, ErrNotAwaitingPayment)
}

func TestCardPaymentDeclinedVerdictReturnsToForm(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 50000, 1))
	payments := &fakePaymentAPI{confirmation: &api.PaymentConfirmation{Success: false}}
	c := NewCoordinator(cartStore, &fakeOrderAPI{}, payments, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(ctx, validForm(), PaymentCard, "")
	require.NoError(t, err)

	_, err = c.ConfirmPayment(ctx, "pi_123")
	require.Error(t, err)

	assert.Equal(t, StateForm, c.State())
	assert.Len(t, cartStore.Lines(), 1)
	assert.Nil(t, c.pendingOrder)
	assert.Nil(t, c.pendingLines)
}

func TestConfirmPaymentOutsideCardFlowIsRejected(t *testing.T) {
	c := NewCoordinator(newTestCart(t, testLine("P1", 100, 1)), &fakeOrderAPI{}, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	_, err := c.ConfirmPayment(context.Background(), "pi_123")
	assert.ErrorIs(t, err, ErrNotAwaitingPayment)

	_, err = c.CreatePaymentIntent(context.Background())
	assert.ErrorIs(t, err, ErrNotAwaitingPayment)
}

func TestResetReturnsConfirmedCheckoutToForm(t *testing.T) {
	ctx := context.Background()
	cartStore := newTestCart(t, testLine("P1", 50000, 1))
	c := NewCoordinator(cartStore, &fakeOrderAPI{}, &fakePaymentAPI{}, nil, testCheckoutConfig(), testLogger())

	_, err := c.Submit(ctx, validForm(), PaymentCashOnDelivery, "")
	require.NoError(t, err)
	require.Equal(t, StateConfirmed, c.State())

	c.Reset()
	assert.Equal(t, StateForm, c.State())
}
