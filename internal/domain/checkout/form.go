// internal/domain/checkout/form.go
package checkout

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShippingForm carries the contact and delivery fields entered at checkout
type ShippingForm struct {
	CustomerName string `json:"customerName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,numeric,len=11"`
	AddressLine  string `json:"addressLine" validate:"required"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

var formValidator = validator.New()

// fieldMessages maps form fields to the inline error shown for them
var fieldMessages = map[string]string{
	"CustomerName": "Full name is required",
	"Email":        "A valid email address is required",
	"Phone":        "Phone number must be exactly 11 digits",
	"AddressLine":  "Address is required",
}

// Validate checks the form and returns per-field error messages, keyed by
// the JSON field name. An empty map means the form is valid.
func (f *ShippingForm) Validate() map[string]string {
	fields := map[string]string{}

	err := formValidator.Struct(f)
	if err == nil {
		return fields
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["form"] = "Invalid form data"
		return fields
	}

	for _, fieldErr := range validationErrors {
		name := jsonFieldName(fieldErr.Field())
		if msg, ok := fieldMessages[fieldErr.Field()]; ok {
			fields[name] = msg
		} else {
			fields[name] = fmt.Sprintf("%s is invalid", fieldErr.Field())
		}
	}
	return fields
}

func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

// ValidationError is a failed form validation. It never reaches the
// network; the fields map renders as inline messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form invalid: %d field(s)", len(e.Fields))
}
