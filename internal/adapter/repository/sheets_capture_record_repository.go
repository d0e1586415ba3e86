package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VINCLARIFY/payment-service/internal/domain/entity"
	"go.uber.org/zap"
)

// SheetsCaptureRecordRepository forwards capture records to a Google Apps
// Script webhook that appends them to a spreadsheet. The webhook is an opaque
// sink: a non-2xx reply or a network failure is returned as an error for the
// caller to log, nothing more.
type SheetsCaptureRecordRepository struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

func NewSheetsCaptureRecordRepository(webhookURL string, logger *zap.Logger) *SheetsCaptureRecordRepository {
	return &SheetsCaptureRecordRepository{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (r *SheetsCaptureRecordRepository) Record(ctx context.Context, record *entity.CaptureRecord) error {
	jsonBody, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal capture record: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.webhookURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sheets webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets webhook returned %d: %s", resp.StatusCode, string(body))
	}

	r.logger.Debug("Capture record forwarded to sheet",
		zap.String("order_id", record.OrderID),
		zap.String("payment_id", record.PaymentID))

	return nil
}

// NoopCaptureRecordRepository is used when no webhook URL is configured.
type NoopCaptureRecordRepository struct{}

func (NoopCaptureRecordRepository) Record(ctx context.Context, record *entity.CaptureRecord) error {
	return nil
}
