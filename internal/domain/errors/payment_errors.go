package errors

import (
	"fmt"
	"strings"
)

// PaymentError classifies every failure the checkout flow can surface to a
// caller. Validation errors never follow a network call; the other classes
// wrap a failed exchange with the payment provider.
type PaymentError struct {
	Type           string
	Message        string
	MissingFields  []string
	UpstreamStatus int
	UpstreamBody   string
	Cause          error
}

func (e *PaymentError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("%s: %s (missing: %s)", e.Type, e.Message, strings.Join(e.MissingFields, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s - %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Cause
}

// Payment error types
const (
	ErrTypeValidationFailed = "VALIDATION_FAILED"
	ErrTypeAuthFailed       = "AUTH_FAILED"
	ErrTypeUpstreamRejected = "UPSTREAM_REJECTED"
	ErrTypeTransportFailed  = "TRANSPORT_FAILED"
)

// NewMissingFieldsError creates a validation error listing the absent fields
func NewMissingFieldsError(fields ...string) *PaymentError {
	return &PaymentError{
		Type:          ErrTypeValidationFailed,
		Message:       "Missing required fields",
		MissingFields: fields,
	}
}

// NewValidationError creates a validation error for malformed input
func NewValidationError(message string) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeValidationFailed,
		Message: message,
	}
}

// NewAuthError creates an error for a failed credential exchange
func NewAuthError(upstreamBody string, cause error) *PaymentError {
	return &PaymentError{
		Type:         ErrTypeAuthFailed,
		Message:      "payment provider authentication failed",
		UpstreamBody: upstreamBody,
		Cause:        cause,
	}
}

// NewUpstreamError creates an error for a provider rejection or an
// unexpectedly shaped provider response
func NewUpstreamError(status int, upstreamBody string) *PaymentError {
	return &PaymentError{
		Type:           ErrTypeUpstreamRejected,
		Message:        "payment provider rejected the request",
		UpstreamStatus: status,
		UpstreamBody:   upstreamBody,
	}
}

// NewTransportError creates an error for a network failure talking to the provider
func NewTransportError(cause error) *PaymentError {
	return &PaymentError{
		Type:    ErrTypeTransportFailed,
		Message: "payment provider is unreachable",
		Cause:   cause,
	}
}
