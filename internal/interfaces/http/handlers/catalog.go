// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/api"
)

// CatalogHandler proxies catalog reads to the backend
type CatalogHandler struct {
	products *api.Client
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(products *api.Client) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	opts := api.ListProductsOptions{
		Category: c.Query("category"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		opts.Limit = limit
	}

	products, err := h.products.ListProducts(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": apiErrorMessage(err, "Failed to load products"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": apiErrorMessage(err, "Failed to load product"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.products.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": apiErrorMessage(err, "Failed to load categories"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}
