package tablerepo

import (
	"context"
	"errors"

	"rms/internal/core/domain/model/table"
	"rms/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTableRepository implements ports.TableRepository using GORM.
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GORM table repository.
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// Get retrieves a table by ID.
func (r *GormTableRepository) Get(ctx context.Context, id int64) (*table.Table, error) {
	var dto TableDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tableId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update saves table state changes.
func (r *GormTableRepository) Update(ctx context.Context, aggregate *table.Table) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TableDTO{}).
		Where("id = ?", dto.ID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tableId", dto.ID)
	}

	return nil
}
