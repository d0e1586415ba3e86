package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VINCLARIFY/payment-service/internal/config"
	"github.com/VINCLARIFY/payment-service/internal/domain/entity"
	domainErrors "github.com/VINCLARIFY/payment-service/internal/domain/errors"
	"github.com/VINCLARIFY/payment-service/internal/domain/provider"
)

// MockPaymentProvider is a mock implementation of provider.PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateOrder(ctx context.Context, req *provider.CreateOrderRequest) (*provider.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CreateOrderResponse), args.Error(1)
}

func (m *MockPaymentProvider) CaptureOrder(ctx context.Context, req *provider.CaptureOrderRequest) (*provider.CaptureOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CaptureOrderResponse), args.Error(1)
}

func (m *MockPaymentProvider) GetProviderName() string {
	return "mock"
}

// recordSink collects forwarded capture records and signals each Record call
// so tests can wait for the fire-and-forget dispatch.
type recordSink struct {
	err      error
	received chan *entity.CaptureRecord
}

func newRecordSink(err error) *recordSink {
	return &recordSink{err: err, received: make(chan *entity.CaptureRecord, 1)}
}

func (s *recordSink) Record(ctx context.Context, record *entity.CaptureRecord) error {
	s.received <- record
	return s.err
}

func (s *recordSink) wait(t *testing.T) *entity.CaptureRecord {
	t.Helper()
	select {
	case r := <-s.received:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("capture record was never forwarded")
		return nil
	}
}

func newTestService(p provider.PaymentProvider, sink *recordSink, policy config.PolicyConfig) *CheckoutService {
	return NewCheckoutService(p, sink, policy, zap.NewNop())
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name            string
		policy          config.PolicyConfig
		input           CreateOrderInput
		expectedMissing []string
	}{
		{
			name:            "missing amount",
			input:           CreateOrderInput{},
			expectedMissing: []string{"amount"},
		},
		{
			name:            "strict policy missing vin and plan",
			policy:          config.PolicyConfig{RequireVIN: true},
			input:           CreateOrderInput{Amount: "49.99"},
			expectedMissing: []string{"vin", "plan"},
		},
		{
			name:  "non-numeric amount",
			input: CreateOrderInput{Amount: "abc"},
		},
		{
			name:  "negative amount",
			input: CreateOrderInput{Amount: "-5.00"},
		},
		{
			name:   "short vin under strict policy",
			policy: config.PolicyConfig{RequireVIN: true},
			input:  CreateOrderInput{Amount: "49.99", VIN: "TOOSHORT", Plan: "Basic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProvider := new(MockPaymentProvider)
			service := newTestService(mockProvider, newRecordSink(nil), tt.policy)

			_, err := service.CreateOrder(context.Background(), tt.input)

			var payErr *domainErrors.PaymentError
			require.ErrorAs(t, err, &payErr)
			assert.Equal(t, domainErrors.ErrTypeValidationFailed, payErr.Type)
			if tt.expectedMissing != nil {
				assert.Equal(t, tt.expectedMissing, payErr.MissingFields)
			}

			// Validation failures make no provider call
			mockProvider.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_Success(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	mockProvider.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *provider.CreateOrderRequest) bool {
		return req.Amount == "49.99" &&
			req.Currency == "USD" &&
			req.CustomID == "1HGCM82633A004352" &&
			req.RequestID != ""
	})).Return(&provider.CreateOrderResponse{
		OrderID: "5O190127TN364715T",
		Status:  "CREATED",
	}, nil)

	service := newTestService(mockProvider, newRecordSink(nil), config.PolicyConfig{RequireVIN: true})

	order, err := service.CreateOrder(context.Background(), CreateOrderInput{
		Amount: "49.99",
		VIN:    "1HGCM82633A004352",
		Plan:   "Basic",
	})

	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", order.ID)
	assert.Equal(t, entity.OrderStatusCreated, order.Status)
	mockProvider.AssertNumberOfCalls(t, "CreateOrder", 1)
}

func TestCreateOrder_AmountNormalization(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	var sent string
	mockProvider.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(*provider.CreateOrderRequest).Amount
		}).
		Return(&provider.CreateOrderResponse{OrderID: "X", Status: "CREATED"}, nil)

	service := newTestService(mockProvider, newRecordSink(nil), config.PolicyConfig{})

	_, err := service.CreateOrder(context.Background(), CreateOrderInput{Amount: "50"})

	require.NoError(t, err)
	assert.Equal(t, "50.00", sent)
}

func TestCreateOrder_UpstreamErrorMapped(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	mockProvider.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, &provider.ProviderError{
		Code:       provider.CodeUpstreamRejected,
		Message:    "PayPal rejected the order create",
		Details:    `{"name":"INVALID_REQUEST"}`,
		HTTPStatus: 400,
	})

	service := newTestService(mockProvider, newRecordSink(nil), config.PolicyConfig{})

	_, err := service.CreateOrder(context.Background(), CreateOrderInput{Amount: "49.99"})

	var payErr *domainErrors.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, domainErrors.ErrTypeUpstreamRejected, payErr.Type)
	assert.Equal(t, 400, payErr.UpstreamStatus)
	assert.Contains(t, payErr.UpstreamBody, "INVALID_REQUEST")
}

func TestCaptureOrder_MissingOrderID(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	service := newTestService(mockProvider, newRecordSink(nil), config.PolicyConfig{})

	_, err := service.CaptureOrder(context.Background(), CaptureOrderInput{})

	var payErr *domainErrors.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, []string{"orderID"}, payErr.MissingFields)
	mockProvider.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
}

func TestCaptureOrder_StrictPolicyListsMissingFields(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	service := newTestService(mockProvider, newRecordSink(nil),
		config.PolicyConfig{RequireCustomerDetails: true})

	_, err := service.CaptureOrder(context.Background(), CaptureOrderInput{
		OrderID: "5O190127TN364715T",
		VIN:     "1HGCM82633A004352",
		Plan:    "Basic",
		Customer: entity.CustomerDetails{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		},
	})

	var payErr *domainErrors.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.ElementsMatch(t,
		[]string{"ssnLast4", "mothersName", "address", "city", "state", "zip"},
		payErr.MissingFields)
	mockProvider.AssertNotCalled(t, "CaptureOrder", mock.Anything, mock.Anything)
}

func TestCaptureOrder_Success(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	mockProvider.On("CaptureOrder", mock.Anything, mock.MatchedBy(func(req *provider.CaptureOrderRequest) bool {
		return req.OrderID == "5O190127TN364715T"
	})).Return(&provider.CaptureOrderResponse{
		OrderID:    "5O190127TN364715T",
		Status:     "COMPLETED",
		CaptureID:  "3C679366HH908993F",
		PayerEmail: "buyer@example.com",
		Amount:     "49.99",
		Currency:   "USD",
	}, nil)

	sink := newRecordSink(nil)
	service := newTestService(mockProvider, sink, config.PolicyConfig{})

	result, err := service.CaptureOrder(context.Background(), CaptureOrderInput{
		OrderID: "5O190127TN364715T",
		VIN:     "1HGCM82633A004352",
		Plan:    "Basic",
		Customer: entity.CustomerDetails{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, "3C679366HH908993F", result.CaptureID)
	assert.Equal(t, "buyer@example.com", result.PayerEmail)

	record := sink.wait(t)
	assert.Equal(t, "5O190127TN364715T", record.OrderID)
	assert.Equal(t, "3C679366HH908993F", record.PaymentID)
	assert.Equal(t, "Jane Doe", record.CustomerName)
	assert.Equal(t, "1HGCM82633A004352", record.VIN)
	assert.NotEmpty(t, record.Timestamp)
}

func TestCaptureOrder_RecordFailureDoesNotChangeResult(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	mockProvider.On("CaptureOrder", mock.Anything, mock.Anything).Return(&provider.CaptureOrderResponse{
		OrderID:    "5O190127TN364715T",
		Status:     "COMPLETED",
		CaptureID:  "3C679366HH908993F",
		PayerEmail: "buyer@example.com",
	}, nil)

	sink := newRecordSink(errors.New("sheets webhook returned 500"))
	service := newTestService(mockProvider, sink, config.PolicyConfig{})

	result, err := service.CaptureOrder(context.Background(), CaptureOrderInput{
		OrderID: "5O190127TN364715T",
	})

	// The capture already succeeded; a lost side record must not surface.
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, "3C679366HH908993F", result.CaptureID)
	sink.wait(t)
}

func TestCaptureOrder_DuplicateCaptureSurfacedVerbatim(t *testing.T) {
	mockProvider := new(MockPaymentProvider)
	mockProvider.On("CaptureOrder", mock.Anything, mock.Anything).Return(nil, &provider.ProviderError{
		Code:       provider.CodeUpstreamRejected,
		Message:    "PayPal rejected the order capture",
		Details:    `{"details":[{"issue":"ORDER_ALREADY_CAPTURED"}]}`,
		HTTPStatus: 422,
	})

	service := newTestService(mockProvider, newRecordSink(nil), config.PolicyConfig{})

	_, err := service.CaptureOrder(context.Background(), CaptureOrderInput{
		OrderID: "5O190127TN364715T",
	})

	var payErr *domainErrors.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, domainErrors.ErrTypeUpstreamRejected, payErr.Type)
	assert.Equal(t, 422, payErr.UpstreamStatus)
	assert.Contains(t, payErr.UpstreamBody, "ORDER_ALREADY_CAPTURED")
}
