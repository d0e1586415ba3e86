package provider

import (
	"context"
)

// PaymentProvider defines the interface for order-based payment providers
type PaymentProvider interface {
	// CreateOrder creates a capture-intent order for the given amount
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)

	// CaptureOrder captures a previously approved order by its id
	CaptureOrder(ctx context.Context, req *CaptureOrderRequest) (*CaptureOrderResponse, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// CreateOrderRequest represents a provider-agnostic order creation request
type CreateOrderRequest struct {
	Amount      string `json:"amount"`   // Fixed-point decimal string
	Currency    string `json:"currency"` // ISO-4217 code
	Description string `json:"description,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`  // Caller correlation value (VIN)
	InvoiceID   string `json:"invoice_id,omitempty"` // Traceability id for the order
	RequestID   string `json:"request_id,omitempty"` // Request correlation header value
}

// CreateOrderResponse represents the response from order creation
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// CaptureOrderRequest represents an order capture request
type CaptureOrderRequest struct {
	OrderID   string `json:"order_id"`
	RequestID string `json:"request_id,omitempty"`
}

// CaptureOrderResponse represents the response from an order capture
type CaptureOrderResponse struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	CaptureID  string `json:"capture_id"`
	PayerEmail string `json:"payer_email,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// ProviderType represents the type of payment provider
type ProviderType string

const (
	ProviderTypePayPal ProviderType = "paypal"
)

// Provider error codes
const (
	CodeAuthFailed       = "AUTH_FAILED"
	CodeUpstreamRejected = "UPSTREAM_REJECTED"
	CodeBadResponse      = "BAD_RESPONSE"
	CodeTransportFailed  = "TRANSPORT_FAILED"
)

// ProviderError is the error type for provider operations. Details carries
// the raw upstream response body for diagnostics.
type ProviderError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
