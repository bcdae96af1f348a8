// Package postgres provides the GORM-based Unit of Work used by all command
// handlers. A unit of work hands out repositories bound to one shared
// transaction, so an order mutation, its bill and its audit trail commit or
// roll back together.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful commit is a no-op, which makes the deferred
// rollback above safe on every path.
package postgres

import (
	"context"

	"rms/internal/adapters/out/postgres/auditrepo"
	"rms/internal/adapters/out/postgres/billrepo"
	"rms/internal/adapters/out/postgres/menurepo"
	"rms/internal/adapters/out/postgres/orderrepo"
	"rms/internal/adapters/out/postgres/tablerepo"
	"rms/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance, so
// concurrent operations never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the order,
// table, menu, bill and audit repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin on an already-started unit of
// work is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. The unit of work cannot be reused
// afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Called without an active transaction,
// typically from a defer after a successful commit, it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns the order repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// TableRepository returns the table repository bound to the current
// transaction.
func (uow *GormUnitOfWork) TableRepository() ports.TableRepository {
	return tablerepo.NewGormTableRepository(uow.conn())
}

// MenuRepository returns the menu catalog repository bound to the current
// transaction.
func (uow *GormUnitOfWork) MenuRepository() ports.MenuRepository {
	return menurepo.NewGormMenuRepository(uow.conn())
}

// BillRepository returns the bill repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BillRepository() ports.BillRepository {
	return billrepo.NewGormBillRepository(uow.conn())
}

// AuditRepository returns the audit log repository bound to the current
// transaction.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}
