// Package menurepo reads the menu catalog. The catalog is owned by an
// external menu service; the order engine only resolves referenced items.
package menurepo

import (
	"context"

	"rms/internal/core/domain/model/menu"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItemDTO is the database row for a catalog entry.
type MenuItemDTO struct {
	ID    int64           `gorm:"primaryKey;autoIncrement"`
	Name  string          `gorm:"type:varchar(128)"`
	Price decimal.Decimal `gorm:"type:numeric(18,2)"`
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuRepository implements ports.MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GORM menu repository.
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// GetByIDs retrieves catalog entries by id. Unknown ids are absent from the
// result.
func (r *GormMenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]menu.Item, error) {
	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", ids).Error; err != nil {
		return nil, err
	}

	items := make([]menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, menu.Item{
			ID:    dto.ID,
			Name:  dto.Name,
			Price: dto.Price,
		})
	}

	return items, nil
}
