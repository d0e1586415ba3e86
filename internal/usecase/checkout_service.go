package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/VINCLARIFY/payment-service/internal/config"
	"github.com/VINCLARIFY/payment-service/internal/domain/entity"
	domainErrors "github.com/VINCLARIFY/payment-service/internal/domain/errors"
	"github.com/VINCLARIFY/payment-service/internal/domain/provider"
	"github.com/VINCLARIFY/payment-service/internal/domain/repository"
)

const vinLength = 17

// CheckoutService drives the order lifecycle: validate caller input, create
// or capture an order through the payment provider, and forward captured
// orders to the record repository. All validation happens before any network
// call; invalid input never reaches the provider.
type CheckoutService struct {
	provider provider.PaymentProvider
	records  repository.CaptureRecordRepository
	policy   config.PolicyConfig
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCheckoutService(
	paymentProvider provider.PaymentProvider,
	records repository.CaptureRecordRepository,
	policy config.PolicyConfig,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		provider: paymentProvider,
		records:  records,
		policy:   policy,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateOrderInput struct {
	Amount   string
	Currency string
	VIN      string
	Plan     string
}

type CaptureOrderInput struct {
	OrderID  string
	VIN      string
	Plan     string
	Customer entity.CustomerDetails
}

func (s *CheckoutService) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	var missing []string
	if input.Amount == "" {
		missing = append(missing, "amount")
	}
	if s.policy.RequireVIN {
		if input.VIN == "" {
			missing = append(missing, "vin")
		}
		if input.Plan == "" {
			missing = append(missing, "plan")
		}
	}
	if len(missing) > 0 {
		return nil, domainErrors.NewMissingFieldsError(missing...)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainErrors.NewValidationError("amount must be a positive decimal number")
	}

	if s.policy.RequireVIN && len(input.VIN) != vinLength {
		return nil, domainErrors.NewValidationError(
			fmt.Sprintf("vin must be exactly %d characters", vinLength))
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	requestID := s.correlationID(input.VIN)
	req := &provider.CreateOrderRequest{
		Amount:      amount.StringFixed(2),
		Currency:    currency,
		Description: orderDescription(input.Plan, input.VIN),
		CustomID:    input.VIN,
		InvoiceID:   requestID,
		RequestID:   requestID,
	}

	s.logger.Info("Creating order",
		zap.String("amount", req.Amount),
		zap.String("currency", req.Currency),
		zap.String("vin", input.VIN),
		zap.String("plan", input.Plan))

	resp, err := s.provider.CreateOrder(ctx, req)
	if err != nil {
		return nil, mapProviderError(err)
	}

	return &entity.Order{
		ID:     resp.OrderID,
		Status: entity.OrderStatus(resp.Status),
	}, nil
}

func (s *CheckoutService) CaptureOrder(ctx context.Context, input CaptureOrderInput) (*entity.CaptureResult, error) {
	missing := s.missingCaptureFields(input)
	if len(missing) > 0 {
		return nil, domainErrors.NewMissingFieldsError(missing...)
	}

	if s.policy.RequireCustomerDetails {
		if len(input.VIN) != vinLength {
			return nil, domainErrors.NewValidationError(
				fmt.Sprintf("vin must be exactly %d characters", vinLength))
		}
		if err := s.validate.Struct(input.Customer); err != nil {
			return nil, domainErrors.NewValidationError("customer details failed validation: " + err.Error())
		}
	}

	s.logger.Info("Capturing order",
		zap.String("order_id", input.OrderID),
		zap.String("vin", input.VIN))

	resp, err := s.provider.CaptureOrder(ctx, &provider.CaptureOrderRequest{
		OrderID:   input.OrderID,
		RequestID: s.correlationID(input.VIN),
	})
	if err != nil {
		return nil, mapProviderError(err)
	}

	result := &entity.CaptureResult{
		Status:     resp.Status,
		CaptureID:  resp.CaptureID,
		PayerEmail: resp.PayerEmail,
		Amount:     resp.Amount,
		Currency:   resp.Currency,
	}
	if result.Status == "" {
		result.Status = string(entity.OrderStatusCompleted)
	}

	s.dispatchRecord(input, resp)

	return result, nil
}

// dispatchRecord forwards the flattened capture record to the spreadsheet
// webhook. The forward is fire-and-forget: it runs detached from the request
// context and a failure is only logged, because the capture has already
// succeeded and the response to the caller must not change.
func (s *CheckoutService) dispatchRecord(input CaptureOrderInput, resp *provider.CaptureOrderResponse) {
	record := &entity.CaptureRecord{
		OrderID:       input.OrderID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		CustomerName:  joinName(input.Customer.FirstName, input.Customer.LastName),
		CustomerEmail: input.Customer.Email,
		VIN:           input.VIN,
		Plan:          input.Plan,
		Address:       joinAddress(input.Customer),
		PaymentID:     resp.CaptureID,
		PayerEmail:    resp.PayerEmail,
		SSNLast4:      input.Customer.SSNLast4,
		MothersName:   input.Customer.MothersName,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.records.Record(ctx, record); err != nil {
			s.logger.Error("Failed to forward capture record",
				zap.String("order_id", record.OrderID),
				zap.String("payment_id", record.PaymentID),
				zap.Error(err))
			return
		}
		s.logger.Info("Capture record forwarded",
			zap.String("order_id", record.OrderID))
	}()
}

func (s *CheckoutService) missingCaptureFields(input CaptureOrderInput) []string {
	var missing []string
	if input.OrderID == "" {
		missing = append(missing, "orderID")
	}
	if !s.policy.RequireCustomerDetails {
		return missing
	}

	required := []struct {
		name  string
		value string
	}{
		{"vin", input.VIN},
		{"plan", input.Plan},
		{"firstName", input.Customer.FirstName},
		{"lastName", input.Customer.LastName},
		{"email", input.Customer.Email},
		{"ssnLast4", input.Customer.SSNLast4},
		{"mothersName", input.Customer.MothersName},
		{"address", input.Customer.Address},
		{"city", input.Customer.City},
		{"state", input.Customer.State},
		{"zip", input.Customer.Zip},
	}
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// correlationID builds the PayPal-Request-Id value. With a VIN present it is
// vin-timestamp, which correlates but does not deduplicate: retried requests
// get fresh timestamps, so the provider may create duplicate orders.
func (s *CheckoutService) correlationID(vin string) string {
	if vin != "" {
		return fmt.Sprintf("%s-%d", vin, time.Now().Unix())
	}
	return uuid.NewString()
}

func orderDescription(plan, vin string) string {
	switch {
	case plan != "" && vin != "":
		return fmt.Sprintf("%s VIN Report - VIN: %s", plan, vin)
	case vin != "":
		return "VIN Report - VIN: " + vin
	default:
		return "VIN Report"
	}
}

func joinName(first, last string) string {
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}

func joinAddress(c entity.CustomerDetails) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Address, c.City, c.State, c.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// mapProviderError translates provider boundary errors into the domain error
// taxonomy surfaced at the HTTP layer.
func mapProviderError(err error) error {
	var provErr *provider.ProviderError
	if !errors.As(err, &provErr) {
		return domainErrors.NewTransportError(err)
	}

	switch provErr.Code {
	case provider.CodeAuthFailed:
		return domainErrors.NewAuthError(provErr.Details, provErr)
	case provider.CodeUpstreamRejected, provider.CodeBadResponse:
		return domainErrors.NewUpstreamError(provErr.HTTPStatus, provErr.Details)
	default:
		return domainErrors.NewTransportError(provErr)
	}
}
