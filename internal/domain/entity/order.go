package entity

// OrderStatus is the provider-side order state. The provider owns the state
// machine; this service only triggers the create and capture transitions.
type OrderStatus string

const (
	OrderStatusCreated             OrderStatus = "CREATED"
	OrderStatusSaved               OrderStatus = "SAVED"
	OrderStatusApproved            OrderStatus = "APPROVED"
	OrderStatusVoided              OrderStatus = "VOIDED"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusPayerActionRequired OrderStatus = "PAYER_ACTION_REQUIRED"
)

// Order is the provider-assigned order resource as seen by this service.
type Order struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
}

// CaptureResult is the outcome of capturing an approved order.
type CaptureResult struct {
	Status     string `json:"status"`
	CaptureID  string `json:"id"`
	PayerEmail string `json:"payer_email"`
	Amount     string `json:"amount,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// CustomerDetails carries the customer fields collected by the checkout form.
// Required only when the strict capture policy is enabled.
type CustomerDetails struct {
	FirstName   string `json:"firstName" validate:"omitempty"`
	LastName    string `json:"lastName" validate:"omitempty"`
	Email       string `json:"email" validate:"omitempty,email"`
	SSNLast4    string `json:"ssnLast4" validate:"omitempty,len=4,numeric"`
	MothersName string `json:"mothersName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}
