// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, and post-commit notification.
package commands

import (
	"context"

	"rms/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it actually
// touches, which keeps mocks small and the transaction scope explicit.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TableRepoFactory provides access to the table repository within a
	// transaction.
	TableRepoFactory interface {
		TableRepository() ports.TableRepository
	}

	// MenuRepoFactory provides access to the menu catalog within a
	// transaction.
	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	// BillRepoFactory provides access to the bill repository within a
	// transaction.
	BillRepoFactory interface {
		BillRepository() ports.BillRepository
	}

	// AuditRepoFactory provides access to the audit repository within a
	// transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order-only operations, e.g. the
	// item-ready flow and the explicit billing marker.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IntakeUoW manages transactions for operations that take in new order
	// lines and must validate catalog and table references: order creation,
	// item additions and order splits.
	IntakeUoW interface {
		TxManager
		OrderRepoFactory
		MenuRepoFactory
		TableRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// BillingUoW manages transactions for the close flow, which touches the
	// order, its bill and its table in one atomic unit.
	BillingUoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		BillRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// OverrideUoW manages transactions for administrative status overrides,
	// which mutate the order and append an audit entry atomically.
	OverrideUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OverrideUoWFactory creates new override unit of work instances.
	OverrideUoWFactory interface {
		Create() OverrideUoW
	}
)
