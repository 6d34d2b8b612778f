package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubOrderAPI struct {
	err error
}

func (s *stubOrderAPI) CreateOrder(context.Context, *api.OrderDraft) (*api.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &api.Order{ID: "ORD-1", Status: "Pending"}, nil
}

type stubPaymentAPI struct{}

func (stubPaymentAPI) CreatePaymentIntent(context.Context, int64, string) (*api.PaymentIntent, error) {
	return &api.PaymentIntent{ClientSecret: "cs_test"}, nil
}

func (stubPaymentAPI) ConfirmPayment(context.Context, string, string, string) (*api.PaymentConfirmation, error) {
	return &api.PaymentConfirmation{Success: true}, nil
}

func checkoutRouter(t *testing.T, orders checkout.OrderAPI, withItems bool) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := cart.NewStore(ctx, storage.NewMemoryStore(), testLogger())
	if withItems {
		require.NoError(t, store.AddItem(ctx, cart.Line{
			LineKey:   cart.LineKey{ProductID: "P1", Size: "M"},
			Name:      "Test Product",
			UnitPrice: 50000,
			Quantity:  2,
		}))
	}

	cfg := config.CheckoutConfig{FreeShippingThreshold: 200000, ShippingFee: 20000, Currency: "pkr"}
	coordinator := checkout.NewCoordinator(store, orders, stubPaymentAPI{}, nil, cfg, testLogger())
	handler := NewCheckoutHandler(coordinator, store)

	router := gin.New()
	router.GET("/checkout", handler.Summary)
	router.POST("/checkout", handler.Submit)
	router.POST("/checkout/payment/intent", handler.CreatePaymentIntent)
	router.POST("/checkout/payment/confirm", handler.ConfirmPayment)
	return router, store
}

const validSubmitBody = `{
	"customerName": "Ayesha Khan",
	"email": "ayesha@example.com",
	"phone": "03001234567",
	"addressLine": "House 12, Street 4",
	"city": "Lahore",
	"paymentMethod": "CashOnDelivery"
}`

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutSummaryReturnsPricing(t *testing.T) {
	router, _ := checkoutRouter(t, &stubOrderAPI{}, true)

	w := performRequest(router, http.MethodGet, "/checkout", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Pricing checkout.Pricing `json:"pricing"`
			State   checkout.State   `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(100000), resp.Data.Pricing.Subtotal)
	assert.Equal(t, int64(20000), resp.Data.Pricing.ShippingFee)
	assert.Equal(t, checkout.StateForm, resp.Data.State)
}

func TestCheckoutSummaryEmptyCartRedirectsToShop(t *testing.T) {
	router, _ := checkoutRouter(t, &stubOrderAPI{}, false)

	w := performRequest(router, http.MethodGet, "/checkout", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/shop"`)
}

func TestCheckoutSubmitPlacesOrderAndClearsCart(t *testing.T) {
	router, store := checkoutRouter(t, &stubOrderAPI{}, true)

	w := performRequest(router, http.MethodPost, "/checkout", validSubmitBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmed"`)
	assert.Empty(t, store.Lines())
}

func TestCheckoutSubmitValidationFailureReturnsFieldErrors(t *testing.T) {
	router, store := checkoutRouter(t, &stubOrderAPI{}, true)

	body := strings.Replace(validSubmitBody, "03001234567", "123", 1)
	w := performRequest(router, http.MethodPost, "/checkout", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "phone")
	assert.Len(t, store.Lines(), 1)
}

func TestCheckoutSubmitEmptyCartConflicts(t *testing.T) {
	router, _ := checkoutRouter(t, &stubOrderAPI{}, false)

	w := performRequest(router, http.MethodPost, "/checkout", validSubmitBody)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutSubmitBackendRejectionIsBadGateway(t *testing.T) {
	orders := &stubOrderAPI{err: &api.Error{Status: 400, Message: "Product P1 is out of stock"}}
	router, store := checkoutRouter(t, orders, true)

	w := performRequest(router, http.MethodPost, "/checkout", validSubmitBody)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Product P1 is out of stock")
	assert.Len(t, store.Lines(), 1, "cart must survive a rejected order")
}

func TestCheckoutPaymentEndpointsRequireAwaitingPayment(t *testing.T) {
	router, _ := checkoutRouter(t, &stubOrderAPI{}, true)

	w := performRequest(router, http.MethodPost, "/checkout/payment/intent", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performRequest(router, http.MethodPost, "/checkout/payment/confirm", `{"paymentIntentId": "pi_123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutCardPaymentFlow(t *testing.T) {
	router, store := checkoutRouter(t, &stubOrderAPI{}, true)

	body := strings.Replace(validSubmitBody, "CashOnDelivery", "CardPayment", 1)
	w := performRequest(router, http.MethodPost, "/checkout", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"awaiting_payment"`)
	assert.Len(t, store.Lines(), 1, "cart is kept until payment succeeds")

	w = performRequest(router, http.MethodPost, "/checkout/payment/intent", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cs_test")

	w = performRequest(router, http.MethodPost, "/checkout/payment/confirm", `{"paymentIntentId": "pi_123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmed"`)
	assert.Empty(t, store.Lines())
}
