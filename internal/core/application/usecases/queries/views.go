// Package queries contains read operations that bypass the domain model.
// Handlers read hydrated order views straight from the database, joining
// table and menu names in, and never load aggregates.
package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemView is one order line as shown on displays, with the menu name
// joined in.
type OrderItemView struct {
	ID         int64           `json:"id"`
	MenuItemID int64           `json:"menuItemId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	Status     string          `json:"status"`
}

// OrderView is a hydrated order as shown on displays, with the table name
// joined in.
type OrderView struct {
	ID         int64           `json:"id"`
	TableID    int64           `json:"tableId"`
	TableName  string          `json:"tableName"`
	Status     string          `json:"status"`
	Discount   decimal.Decimal `json:"discount"`
	TaxPercent decimal.Decimal `json:"taxPercent"`
	CreatedAt  time.Time       `json:"createdAt"`
	Items      []OrderItemView `json:"items"`
}

const orderViewSelect = `
	SELECT
		o.id,
		o.table_id,
		t.name,
		o.status,
		o.discount,
		o.tax_percent,
		o.created_at
	FROM orders o
	LEFT JOIN tables t ON t.id = o.table_id
`

func scanOrderViews(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)

	for rows.Next() {
		var view OrderView
		var tableName sql.NullString

		if err := rows.Scan(
			&view.ID,
			&view.TableID,
			&tableName,
			&view.Status,
			&view.Discount,
			&view.TaxPercent,
			&view.CreatedAt,
		); err != nil {
			return nil, err
		}

		view.TableName = tableName.String
		view.Items = make([]OrderItemView, 0)
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// attachItems loads the lines of every view in one query and distributes
// them, keeping item order stable by id.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	index := make(map[int64]int, len(views))
	orderIDs := make([]int64, 0, len(views))
	for i, view := range views {
		index[view.ID] = i
		orderIDs = append(orderIDs, view.ID)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.order_id,
			i.menu_item_id,
			m.name,
			i.unit_price,
			i.quantity,
			i.status
		FROM order_items i
		LEFT JOIN menu_items m ON m.id = i.menu_item_id
		WHERE i.order_id IN (?)
		ORDER BY i.id
	`, orderIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemView
		var orderID int64
		var menuName sql.NullString

		if err = rows.Scan(
			&item.ID,
			&orderID,
			&item.MenuItemID,
			&menuName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Status,
		); err != nil {
			return err
		}

		item.Name = menuName.String
		i := index[orderID]
		views[i].Items = append(views[i].Items, item)
	}

	return rows.Err()
}
