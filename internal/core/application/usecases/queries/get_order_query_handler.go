package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one hydrated order view from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. An absent order yields (nil, nil); callers
// translate that into their own not-found handling.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		orderViewSelect+`WHERE o.id = ?`, query.OrderID(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil //nolint:nilnil //absence is not an error here
	}

	if err = attachItems(ctx, h.db, views); err != nil {
		return nil, err
	}

	return &views[0], nil
}
