package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/VINCLARIFY/payment-service/internal/domain/provider"
	"go.uber.org/zap"
)

const ordersPath = "/v2/checkout/orders"

type orderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnitRequest struct {
	Amount      orderAmount `json:"amount"`
	Description string      `json:"description,omitempty"`
	CustomID    string      `json:"custom_id,omitempty"`
	InvoiceID   string      `json:"invoice_id,omitempty"`
}

type createOrderBody struct {
	Intent        string                `json:"intent"`
	PurchaseUnits []purchaseUnitRequest `json:"purchase_units"`
}

type orderResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// captureResource is the subset of the capture response this service reads.
// The capture id lives at purchase_units[0].payments.captures[0].id and the
// payer email at payer.email_address; anything else is ignored.
type captureResource struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string      `json:"id"`
				Status string      `json:"status"`
				Amount orderAmount `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
	Payer struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// CreateOrder creates a capture-intent order.
// POST /v2/checkout/orders
func (p *PayPalProvider) CreateOrder(ctx context.Context, req *provider.CreateOrderRequest) (*provider.CreateOrderResponse, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := createOrderBody{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnitRequest{{
			Amount: orderAmount{
				CurrencyCode: req.Currency,
				Value:        req.Amount,
			},
			Description: req.Description,
			CustomID:    req.CustomID,
			InvoiceID:   req.InvoiceID,
		}},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.CodeBadResponse,
			Message: "Failed to prepare order request",
			Details: err.Error(),
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+ordersPath, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "Failed to create order request",
			Details: err.Error(),
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	// Ask for the full representation so the caller gets status immediately.
	httpReq.Header.Set("Prefer", "return=representation")
	if req.RequestID != "" {
		httpReq.Header.Set("PayPal-Request-Id", req.RequestID)
	}

	respBody, status, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		p.logger.Error("PayPalProvider: order create rejected",
			zap.Int("status_code", status),
			zap.String("response", string(respBody)))
		return nil, &provider.ProviderError{
			Code:       provider.CodeUpstreamRejected,
			Message:    "PayPal rejected the order create",
			Details:    string(respBody),
			HTTPStatus: status,
		}
	}

	var order orderResource
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.CodeBadResponse,
			Message: "Failed to parse order response",
			Details: err.Error(),
		}
	}
	if order.ID == "" {
		return nil, &provider.ProviderError{
			Code:    provider.CodeBadResponse,
			Message: "PayPal order response contained no order id",
			Details: string(respBody),
		}
	}

	p.logger.Info("PayPalProvider: order created",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status))

	return &provider.CreateOrderResponse{
		OrderID: order.ID,
		Status:  order.Status,
	}, nil
}

// CaptureOrder captures a previously approved order. The provider performs
// the actual funds capture; this call only relays and reshapes the result.
// POST /v2/checkout/orders/{id}/capture
func (p *PayPalProvider) CaptureOrder(ctx context.Context, req *provider.CaptureOrderRequest) (*provider.CaptureOrderResponse, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	captureURL := fmt.Sprintf("%s%s/%s/capture", p.baseURL, ordersPath, req.OrderID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		captureURL, bytes.NewBufferString("{}"))
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "Failed to create capture request",
			Details: err.Error(),
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.RequestID != "" {
		httpReq.Header.Set("PayPal-Request-Id", req.RequestID)
	}

	respBody, status, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		p.logger.Error("PayPalProvider: order capture rejected",
			zap.String("order_id", req.OrderID),
			zap.Int("status_code", status),
			zap.String("response", string(respBody)))
		return nil, &provider.ProviderError{
			Code:       provider.CodeUpstreamRejected,
			Message:    "PayPal rejected the order capture",
			Details:    string(respBody),
			HTTPStatus: status,
		}
	}

	var capture captureResource
	if err := json.Unmarshal(respBody, &capture); err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.CodeBadResponse,
			Message: "Failed to parse capture response",
			Details: err.Error(),
		}
	}

	// An error-shaped 2xx body must never pass for a successful capture.
	if len(capture.PurchaseUnits) == 0 || len(capture.PurchaseUnits[0].Payments.Captures) == 0 {
		p.logger.Error("PayPalProvider: capture response missing capture record",
			zap.String("order_id", req.OrderID),
			zap.String("response", string(respBody)))
		return nil, &provider.ProviderError{
			Code:    provider.CodeBadResponse,
			Message: "PayPal capture response contained no capture record",
			Details: string(respBody),
		}
	}

	captured := capture.PurchaseUnits[0].Payments.Captures[0]
	if captured.ID == "" {
		return nil, &provider.ProviderError{
			Code:    provider.CodeBadResponse,
			Message: "PayPal capture response contained no capture id",
			Details: string(respBody),
		}
	}

	p.logger.Info("PayPalProvider: order captured",
		zap.String("order_id", req.OrderID),
		zap.String("capture_id", captured.ID),
		zap.String("status", capture.Status))

	return &provider.CaptureOrderResponse{
		OrderID:    capture.ID,
		Status:     capture.Status,
		CaptureID:  captured.ID,
		PayerEmail: capture.Payer.EmailAddress,
		Amount:     captured.Amount.Value,
		Currency:   captured.Amount.CurrencyCode,
	}, nil
}

func (p *PayPalProvider) do(req *http.Request) ([]byte, int, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("PayPalProvider: request failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, 0, &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "PayPal API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &provider.ProviderError{
			Code:    provider.CodeTransportFailed,
			Message: "Failed to read response",
			Details: err.Error(),
		}
	}
	return respBody, resp.StatusCode, nil
}
