// internal/interfaces/http/middleware/guard.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/session"
)

// RequireAuth gates a route group on a valid stored session
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		valid, user := sessions.Current(c.Request.Context())

		decision := session.RequireAuth(valid, user)
		if !decision.Allow {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": decision.RedirectTo,
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RequireAdmin gates a route group on a valid admin session
func RequireAdmin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		valid, user := sessions.Current(c.Request.Context())

		decision := session.RequireAdmin(valid, user)
		if !decision.Allow {
			status := http.StatusForbidden
			message := "Admin access required"
			if !valid {
				status = http.StatusUnauthorized
				message = "Authentication required"
			}
			c.JSON(status, gin.H{
				"error":    message,
				"redirect": decision.RedirectTo,
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in users off public-only routes such
// as login and signup.
func RedirectIfAuthenticated(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		valid, user := sessions.Current(c.Request.Context())

		decision := session.RedirectIfAuthenticated(valid, user)
		if !decision.Allow {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Already signed in",
				"redirect": decision.RedirectTo,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user attached by the guard middleware
func CurrentUser(c *gin.Context) *session.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*session.User)
	if !ok {
		return nil
	}
	return user
}
