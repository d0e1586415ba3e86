package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/VINCLARIFY/payment-service/internal/domain/entity"
	domainErrors "github.com/VINCLARIFY/payment-service/internal/domain/errors"
	"github.com/VINCLARIFY/payment-service/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.CheckoutService
	logger   *zap.Logger
}

func NewOrderHandler(checkout *usecase.CheckoutService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// FlexibleAmount accepts a JSON number or a string; the browser-side
// checkout sends both depending on the page variant.
type FlexibleAmount string

func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = FlexibleAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = FlexibleAmount(n.String())
	return nil
}

type CreateOrderRequest struct {
	Amount   FlexibleAmount `json:"amount"`
	Currency string         `json:"currency"`
	VIN      string         `json:"vin"`
	Plan     string         `json:"plan"`
}

type CaptureOrderRequest struct {
	OrderID     string `json:"orderID"`
	VIN         string `json:"vin"`
	Plan        string `json:"plan"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	SSNLast4    string `json:"ssnLast4"`
	MothersName string `json:"mothersName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	order, err := h.checkout.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		Amount:   string(req.Amount),
		Currency: req.Currency,
		VIN:      req.VIN,
		Plan:     req.Plan,
	})
	if err != nil {
		return h.writeError(c, "create order", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CaptureOrder(c echo.Context) error {
	var req CaptureOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.checkout.CaptureOrder(c.Request().Context(), usecase.CaptureOrderInput{
		OrderID: req.OrderID,
		VIN:     req.VIN,
		Plan:    req.Plan,
		Customer: entity.CustomerDetails{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			SSNLast4:    req.SSNLast4,
			MothersName: req.MothersName,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			Zip:         req.Zip,
		},
	})
	if err != nil {
		return h.writeError(c, "capture order", err)
	}

	return c.JSON(http.StatusOK, result)
}

// writeError maps the domain error taxonomy to HTTP responses: validation
// failures are 400 with the missing field names, upstream rejections pass the
// provider's status through when it carries one, everything else is 500.
func (h *OrderHandler) writeError(c echo.Context, op string, err error) error {
	var payErr *domainErrors.PaymentError
	if !errors.As(err, &payErr) {
		h.logger.Error("Unclassified error", zap.String("op", op), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}

	switch payErr.Type {
	case domainErrors.ErrTypeValidationFailed:
		body := echo.Map{"error": payErr.Message}
		if len(payErr.MissingFields) > 0 {
			body["missing"] = payErr.MissingFields
		}
		return c.JSON(http.StatusBadRequest, body)

	case domainErrors.ErrTypeUpstreamRejected:
		h.logger.Error("Provider rejected request",
			zap.String("op", op),
			zap.Int("upstream_status", payErr.UpstreamStatus),
			zap.String("upstream_body", payErr.UpstreamBody))
		status := http.StatusInternalServerError
		if payErr.UpstreamStatus >= 400 {
			status = payErr.UpstreamStatus
		}
		return c.JSON(status, echo.Map{
			"error":   payErr.Message,
			"details": json.RawMessage(rawOrQuoted(payErr.UpstreamBody)),
		})

	case domainErrors.ErrTypeAuthFailed:
		h.logger.Error("Provider authentication failed",
			zap.String("op", op),
			zap.String("upstream_body", payErr.UpstreamBody))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": payErr.Message,
		})

	default:
		h.logger.Error("Provider unreachable", zap.String("op", op), zap.Error(payErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": payErr.Message,
		})
	}
}

// rawOrQuoted passes a JSON upstream body through verbatim and quotes
// anything that is not valid JSON so the error response stays well formed.
func rawOrQuoted(body string) []byte {
	if json.Valid([]byte(body)) && body != "" {
		return []byte(body)
	}
	quoted, _ := json.Marshal(body)
	return quoted
}
