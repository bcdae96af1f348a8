package orderrepo

import (
	"context"
	"errors"

	"rms/internal/core/domain/model/order"
	"rms/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its items, back-filling the database-assigned
// identities into the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}
	for i, item := range aggregate.Items() {
		if err := item.AssignID(dto.Items[i].ID); err != nil {
			return err
		}
	}

	return nil
}

// Update saves changes to an existing order: the order row, item status
// changes and newly appended items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID()).
		Updates(map[string]any{
			"status":      aggregate.Status().String(),
			"discount":    aggregate.Discount().Decimal(),
			"tax_percent": aggregate.TaxPercent().Decimal(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}

	for _, item := range aggregate.Items() {
		if err := r.saveItem(ctx, aggregate.ID(), item); err != nil {
			return err
		}
	}

	return nil
}

func (r *GormOrderRepository) saveItem(ctx context.Context, orderID int64, item *order.Item) error {
	if item.ID() == 0 {
		dto := fromDomainItem(orderID, item)
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
		return item.AssignID(dto.ID)
	}

	return r.db.WithContext(ctx).Model(&OrderItemDTO{}).
		Where("id = ?", item.ID()).
		Update("status", item.Status().String()).Error
}

// Get retrieves an order with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order while locking its row for the rest of the
// enclosing transaction. Item rows are not locked; all item mutations go
// through the aggregate, which is serialized by the order row lock.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id int64, forUpdate bool) (*order.Order, error) {
	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := tx.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dto.Items, "order_id = ?", id).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// FindOrderIDByItem resolves the owning order of an order item.
func (r *GormOrderRepository) FindOrderIDByItem(ctx context.Context, itemID int64) (int64, error) {
	var dto OrderItemDTO
	if err := r.db.WithContext(ctx).Select("id", "order_id").First(&dto, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("orderItemId", itemID)
		}
		return 0, err
	}

	return dto.OrderID, nil
}
