// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/session"
)

// AuthHandler handles authentication endpoints. Credential checks happen on
// the backend; this layer only establishes and clears the local session.
type AuthHandler struct {
	users    *api.Client
	sessions *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *api.Client, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
	}
}

// loginRequest is the login payload
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": apiErrorMessage(err, "Login failed"),
		})
		return
	}

	user := session.User{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: resp.User.Email,
		Role:  resp.User.Role,
	}
	if err := h.sessions.Establish(c.Request.Context(), resp.Token, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    gin.H{"user": user},
	})
}

// registerRequest is the signup payload
type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.users.Register(c.Request.Context(), &api.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": apiErrorMessage(err, "Signup failed"),
		})
		return
	}

	user := session.User{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: resp.User.Email,
		Role:  resp.User.Role,
	}
	if err := h.sessions.Establish(c.Request.Context(), resp.Token, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    gin.H{"user": user},
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	valid, user := h.sessions.Current(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"authenticated": valid,
			"user":          user,
		},
	})
}

// verifyEmailRequest carries the mailed verification token
type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail handles POST /auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.users.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": apiErrorMessage(err, "Email verification failed"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// forgotPasswordRequest asks for a reset mail
type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": apiErrorMessage(err, "Could not send reset email"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

// resetPasswordRequest carries the reset token and the new password
type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": apiErrorMessage(err, "Password reset failed"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
