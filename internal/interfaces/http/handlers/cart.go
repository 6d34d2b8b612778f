// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	store    *cart.Store
	products *api.Client
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, products *api.Client) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
	}
}

// cartView is the cart response shape
type cartView struct {
	Items []cart.Line `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": cartView{
			Items: h.store.Lines(),
			Total: h.store.Total(),
			Count: h.store.Count(),
		},
	})
}

// addItemRequest is the add-to-cart payload
type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AddItem handles POST /cart/items. The unit price and stock ceiling are
// looked up from the catalog here, at add time; checkout never re-fetches
// them.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": apiErrorMessage(err, "Failed to load product"),
		})
		return
	}

	if product.Stock > 0 && req.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Requested quantity exceeds available stock",
		})
		return
	}

	line := cart.Line{
		LineKey: cart.LineKey{
			ProductID: req.ProductID,
			Size:      req.Size,
			Color:     req.Color,
		},
		Name:        product.Name,
		Image:       product.Image,
		UnitPrice:   product.PriceFor(req.Size),
		Quantity:    req.Quantity,
		MaxQuantity: product.Stock,
	}

	if err := h.store.AddItem(c.Request.Context(), line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data": cartView{
			Items: h.store.Lines(),
			Total: h.store.Total(),
			Count: h.store.Count(),
		},
	})
}

// updateItemRequest is the set-quantity payload
type updateItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// UpdateItem handles PUT /cart/items. A quantity of zero removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	key := cart.LineKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	if err := h.store.SetQuantity(c.Request.Context(), key, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data": cartView{
			Items: h.store.Lines(),
			Total: h.store.Total(),
			Count: h.store.Count(),
		},
	})
}

// RemoveItem handles DELETE /cart/items. The line key comes from query
// parameters so variants can be targeted individually.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	key := cart.LineKey{
		ProductID: productID,
		Size:      c.Query("size"),
		Color:     c.Query("color"),
	}
	if err := h.store.RemoveItem(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed",
		"data": cartView{
			Items: h.store.Lines(),
			Total: h.store.Total(),
			Count: h.store.Count(),
		},
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
