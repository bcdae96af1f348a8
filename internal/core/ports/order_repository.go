package ports

import (
	"context"

	"rms/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their items.
type OrderRepository interface {
	// Add persists a new order aggregate and its items, assigning their
	// identities. The order must be valid and not yet persisted.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: the order row
	// plus item status changes and newly appended items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate while holding an exclusive
	// lock on the order row for the rest of the enclosing transaction.
	// Concurrent mutators of the same order serialize on this lock; other
	// orders are unaffected.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// FindOrderIDByItem resolves the owning order of an order item.
	FindOrderIDByItem(ctx context.Context, itemID int64) (int64, error)
}
