// Package auditrepo appends audit log rows for administrative actions.
package auditrepo

import (
	"context"
	"time"

	"rms/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// AuditLogDTO is the database row for one audit entry.
type AuditLogDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Entity    string `gorm:"type:varchar(64);index"`
	EntityID  int64  `gorm:"index"`
	Action    string `gorm:"type:varchar(64)"`
	OldValues string `gorm:"type:text"`
	NewValues string `gorm:"type:text"`
	At        time.Time
}

// TableName overrides GORM's default naming to use "audit_logs".
func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add appends one audit entry.
func (r *GormAuditRepository) Add(ctx context.Context, entry audit.Entry) error {
	dto := AuditLogDTO{
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Action:    entry.Action,
		OldValues: entry.OldValues,
		NewValues: entry.NewValues,
		At:        entry.At,
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
