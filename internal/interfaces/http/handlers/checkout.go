// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	store       *cart.Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(coordinator *checkout.Coordinator, store *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{
		coordinator: coordinator,
		store:       store,
	}
}

// Summary handles GET /checkout. An empty cart is a terminal state here:
// the shopper is pointed back at the shop instead of a form.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	lines := h.store.Lines()
	if len(lines) == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "Your cart is empty",
			"redirect": "/shop",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items":   lines,
			"pricing": h.coordinator.Pricing(),
			"state":   h.coordinator.State(),
		},
	})
}

// submitRequest is the order submission payload
type submitRequest struct {
	checkout.ShippingForm
	PaymentMethod checkout.PaymentMethod `json:"paymentMethod"`
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = checkout.PaymentCashOnDelivery
	}

	customerID := ""
	if user := middleware.CurrentUser(c); user != nil {
		customerID = user.ID
	}

	result, err := h.coordinator.Submit(c.Request.Context(), req.ShippingForm, req.PaymentMethod, customerID)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    result,
	})
}

// CreatePaymentIntent handles POST /checkout/payment/intent
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	intent, err := h.coordinator.CreatePaymentIntent(c.Request.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrNotAwaitingPayment) {
			c.JSON(http.StatusConflict, gin.H{"error": "No order is awaiting payment"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErrorMessage(err, "Failed to start payment")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": intent})
}

// confirmPaymentRequest is the payment confirmation payload
type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// ConfirmPayment handles POST /checkout/payment/confirm
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.coordinator.ConfirmPayment(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful",
		"data":    result,
	})
}

func (h *CheckoutHandler) renderSubmitError(c *gin.Context, err error) {
	var validationErr *checkout.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Please correct the highlighted fields",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{
			"error":    "Your cart is empty",
			"redirect": "/shop",
		})
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "A submission is already in progress",
		})
	case errors.Is(err, checkout.ErrNotAwaitingPayment):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No order is awaiting payment",
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": apiErrorMessage(err, "Failed to place order"),
		})
	}
}
