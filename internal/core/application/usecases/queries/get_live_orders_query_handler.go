package queries

import (
	"context"

	"rms/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetLiveOrdersQueryHandler retrieves every order that has not been billed
// yet, oldest first so the kitchen works the queue top-down.
type GetLiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetLiveOrdersQueryHandler creates a handler for live order listings.
func NewGetLiveOrdersQueryHandler(db *gorm.DB) GetLiveOrdersQueryHandler {
	return GetLiveOrdersQueryHandler{db: db}
}

// Handle executes the listing.
func (h GetLiveOrdersQueryHandler) Handle(ctx context.Context, query GetLiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		orderViewSelect+`WHERE o.status != ? ORDER BY o.id`, order.StatusBilled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return nil, err
	}

	if err = attachItems(ctx, h.db, views); err != nil {
		return nil, err
	}

	return views, nil
}
