// Package billrepo persists bills. A bill row is written exactly once per
// order; the unique index on order_id backs the compute-once guarantee at
// the storage level.
package billrepo

import (
	"time"

	"rms/internal/core/domain/model/bill"
	"rms/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// BillDTO is the database row for a bill.
type BillDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"uniqueIndex"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(18,2)"`
	Discount  decimal.Decimal `gorm:"type:numeric(18,2)"`
	Tax       decimal.Decimal `gorm:"type:numeric(18,2)"`
	Total     decimal.Decimal `gorm:"type:numeric(18,2)"`
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "bills".
func (BillDTO) TableName() string {
	return "bills"
}

func fromDomain(aggregate *bill.Bill) BillDTO {
	return BillDTO{
		ID:        aggregate.ID(),
		OrderID:   aggregate.OrderID(),
		Subtotal:  aggregate.Subtotal().Decimal(),
		Discount:  aggregate.Discount().Decimal(),
		Tax:       aggregate.Tax().Decimal(),
		Total:     aggregate.Total().Decimal(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func toDomain(dto BillDTO) (*bill.Bill, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return bill.RestoreBill(dto.ID, dto.OrderID, subtotal, discount, tax, total, dto.CreatedAt)
}
