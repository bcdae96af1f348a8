package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves every order from the database, items
// and joined names included.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for full order listings.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the listing, newest order first.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderViewSelect + `ORDER BY o.id DESC`).Rows()
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
