package ports

import (
	"context"

	"rms/internal/core/domain/model/bill"
)

// BillRepository defines the persistence contract for bills. A bill is
// written once per order and never updated.
type BillRepository interface {
	// Add persists a new bill, assigning its identity.
	Add(ctx context.Context, aggregate *bill.Bill) error

	// GetByOrderID retrieves the bill of an order, if one exists.
	GetByOrderID(ctx context.Context, orderID int64) (*bill.Bill, error)
}
