package ports

import (
	"context"

	"rms/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for tables. Tables are
// managed by an external service; the order engine reads them and frees
// them on order close.
type TableRepository interface {
	// Get retrieves a table by its identity.
	Get(ctx context.Context, id int64) (*table.Table, error)

	// Update persists table state changes, in practice the Available flip
	// performed when an order closes.
	Update(ctx context.Context, aggregate *table.Table) error
}
