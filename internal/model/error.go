package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidLineItem  = "INVALID_LINE_ITEM"
	ErrCodePromoNotFound    = "PROMO_CODE_NOT_FOUND"
	ErrCodePromoExpired     = "PROMO_CODE_EXPIRED"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeMissingSelection = "MISSING_SELECTION"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeAddressNotFound  = "ADDRESS_NOT_FOUND"
	ErrCodePostalNotServed  = "POSTAL_CODE_NOT_SERVED"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrPromoCodeNotFound = NewDomainError(ErrCodePromoNotFound, "Promo code not found")
	ErrPromoCodeExpired  = NewDomainError(ErrCodePromoExpired, "Promo code has expired")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrSessionNotFound   = NewDomainError(ErrCodeSessionNotFound, "Checkout session not found")
	ErrOrderNotPending   = NewDomainError(ErrCodeInvalidState, "Order is not in pending status")
	ErrAddressNotFound   = NewDomainError(ErrCodeAddressNotFound, "Address not found")
	ErrPostalNotServed   = NewDomainError(ErrCodePostalNotServed, "Postal code is outside the delivery area")
)

// InvalidLineItemError reports a line item that failed validation, with the
// index of the offending item.
type InvalidLineItemError struct {
	Index  int
	Reason string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invalid line item %d: %s", e.Index, e.Reason)
}

// Selection field names reported by MissingSelectionError.
const (
	SelectionAddress        = "address"
	SelectionDeliveryMethod = "deliveryMethod"
	SelectionPaymentMethod  = "paymentMethod"
)

// MissingSelectionError reports a checkout transition attempted before its
// prerequisite selection was made. Field names the missing selection.
type MissingSelectionError struct {
	Field string
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("missing selection: %s", e.Field)
}
