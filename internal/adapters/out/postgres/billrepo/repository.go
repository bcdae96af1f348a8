package billrepo

import (
	"context"
	"errors"

	"rms/internal/core/domain/model/bill"
	"rms/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBillRepository implements ports.BillRepository using GORM.
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GORM bill repository.
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Add saves a new bill, back-filling the database-assigned identity.
func (r *GormBillRepository) Add(ctx context.Context, aggregate *bill.Bill) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AssignID(dto.ID)
}

// GetByOrderID retrieves the bill of an order.
func (r *GormBillRepository) GetByOrderID(ctx context.Context, orderID int64) (*bill.Bill, error) {
	var dto BillDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}
