// Package orderrepo persists order aggregates and their items, mapping
// between the domain model and the relational rows.
package orderrepo

import (
	"time"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the database row for an order. Identities are assigned by the
// database; money columns are fixed-point numerics.
type OrderDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	TableID    int64           `gorm:"index"`
	Status     string          `gorm:"type:varchar(32);index"`
	Discount   decimal.Decimal `gorm:"type:numeric(18,2)"`
	TaxPercent decimal.Decimal `gorm:"type:numeric(5,2)"`
	CreatedAt  time.Time
	Items      []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the database row for one order line.
type OrderItemDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	OrderID    int64           `gorm:"index"`
	MenuItemID int64           `gorm:"index"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(18,2)"`
	Quantity   int
	Status     string `gorm:"type:varchar(16)"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, fromDomainItem(aggregate.ID(), item))
	}

	return OrderDTO{
		ID:         aggregate.ID(),
		TableID:    aggregate.TableID(),
		Status:     aggregate.Status().String(),
		Discount:   aggregate.Discount().Decimal(),
		TaxPercent: aggregate.TaxPercent().Decimal(),
		CreatedAt:  aggregate.CreatedAt(),
		Items:      items,
	}
}

func fromDomainItem(orderID int64, item *order.Item) OrderItemDTO {
	return OrderItemDTO{
		ID:         item.ID(),
		OrderID:    orderID,
		MenuItemID: item.MenuItemID(),
		UnitPrice:  item.UnitPrice().Decimal(),
		Quantity:   item.Quantity(),
		Status:     item.Status().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}

	taxPercent, err := kernel.NewPercent(dto.TaxPercent)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := toDomainItem(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(dto.ID, dto.TableID, status, discount, taxPercent, dto.CreatedAt, items)
}

func toDomainItem(dto OrderItemDTO) (*order.Item, error) {
	status, err := order.ItemStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(dto.ID, dto.MenuItemID, unitPrice, dto.Quantity, status)
}
