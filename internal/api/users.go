// internal/api/users.go
package api

import (
	"context"
	"net/http"
)

// User is a user profile as returned by the backend
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse is the result of a successful login or registration
type AuthResponse struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The backend sends the verification mail.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyEmail redeems an email verification token
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	req := struct {
		Token string `json:"token"`
	}{Token: token}
	_, err := c.do(ctx, http.MethodPost, "/users/verify-email", req, nil)
	return err
}

// ForgotPassword asks the backend to mail a password reset link
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	_, err := c.do(ctx, http.MethodPost, "/users/forgot-password", req, nil)
	return err
}

// ResetPassword sets a new password using a reset token
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	req := struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}{Token: token, Password: password}
	_, err := c.do(ctx, http.MethodPost, "/users/reset-password", req, nil)
	return err
}
