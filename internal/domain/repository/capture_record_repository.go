package repository

import (
	"context"

	"github.com/VINCLARIFY/payment-service/internal/domain/entity"
)

// CaptureRecordRepository persists the flattened record of a captured order.
// The backing store is an external spreadsheet webhook; callers treat a
// failed Record as a logged, non-fatal event because the funds have already
// moved by the time the record is written.
type CaptureRecordRepository interface {
	Record(ctx context.Context, record *entity.CaptureRecord) error
}
