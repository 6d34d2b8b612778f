// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/session"
	"github.com/your-org/storefront-client/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, client *api.Client, sessions *session.Manager) {
	authHandler := handlers.NewAuthHandler(client, sessions)

	auth := rg.Group("/auth")
	{
		// Public-only endpoints: signed-in users are sent away
		public := auth.Group("")
		public.Use(middleware.RedirectIfAuthenticated(sessions))
		{
			public.POST("/login", authHandler.Login)
			public.POST("/register", authHandler.Register)
			public.POST("/forgot-password", authHandler.ForgotPassword)
			public.POST("/reset-password", authHandler.ResetPassword)
		}

		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authHandler.Session)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, store *cart.Store, client *api.Client) {
	cartHandler := handlers.NewCartHandler(store, client)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items", cartHandler.UpdateItem)
		cartGroup.DELETE("/items", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout related routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, coordinator *checkout.Coordinator, store *cart.Store) {
	checkoutHandler := handlers.NewCheckoutHandler(coordinator, store)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.GET("", checkoutHandler.Summary)
		checkoutGroup.POST("", checkoutHandler.Submit)
		checkoutGroup.POST("/payment/intent", checkoutHandler.CreatePaymentIntent)
		checkoutGroup.POST("/payment/confirm", checkoutHandler.ConfirmPayment)
	}
}

// SetupCatalogRoutes sets up catalog related routes
func SetupCatalogRoutes(rg *gin.RouterGroup, client *api.Client) {
	catalogHandler := handlers.NewCatalogHandler(client)

	rg.GET("/products", catalogHandler.ListProducts)
	rg.GET("/products/:id", catalogHandler.GetProduct)
	rg.GET("/categories", catalogHandler.ListCategories)
}

// SetupAccountRoutes sets up routes that require a signed-in shopper
func SetupAccountRoutes(rg *gin.RouterGroup, sessions *session.Manager) {
	account := rg.Group("/account")
	account.Use(middleware.RequireAuth(sessions))
	{
		account.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"data": middleware.CurrentUser(c)})
		})
	}
}

// SetupAdminRoutes sets up the admin-gated routes. The admin panel itself is
// rendered elsewhere; this gate is what decides who may reach it.
func SetupAdminRoutes(rg *gin.RouterGroup, sessions *session.Manager) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin(sessions))
	{
		admin.GET("/session", func(c *gin.Context) {
			c.JSON(200, gin.H{"data": middleware.CurrentUser(c)})
		})
	}
}
