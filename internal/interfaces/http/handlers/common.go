// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"

	"github.com/your-org/storefront-client/internal/api"
)

// apiErrorMessage prefers the backend's error text over the fallback
func apiErrorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
