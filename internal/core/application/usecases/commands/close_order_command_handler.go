package commands

import (
	"context"
	"errors"
	"time"

	"rms/internal/core/domain/model/bill"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"
)

// CloseOrderCommandHandler settles an order: the bill is computed from the
// order's lines at most once, the order transitions to billed and its table
// is freed, all in one transaction.
//
// Closing is idempotent. A repeated close finds the existing bill and an
// already-billed order and commits without changing either, so retried
// requests cannot double-bill a table.
type CloseOrderCommandHandler struct {
	uowFactory BillingUoWFactory
	notifier   ports.Notifier
}

// NewCloseOrderCommandHandler creates a handler for order settlement.
func NewCloseOrderCommandHandler(uowFactory BillingUoWFactory, notifier ports.Notifier) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the close command. A table that has disappeared from
// the table service does not block settlement; the order is still billed.
func (h *CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	billRepo := uow.BillRepository()
	if _, err = billRepo.GetByOrderID(ctx, aggregate.ID()); err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		orderBill, billErr := bill.NewBill(aggregate)
		if billErr != nil {
			return billErr
		}

		if billErr = billRepo.Add(ctx, orderBill); billErr != nil {
			return billErr
		}
	}

	aggregate.Close()
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.freeTable(ctx, uow, aggregate.TableID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ports.Event{
		Type:    ports.EventOrderClosed,
		OrderID: aggregate.ID(),
		Status:  aggregate.Status().String(),
		At:      time.Now().UTC(),
	})

	return nil
}

func (h *CloseOrderCommandHandler) freeTable(ctx context.Context, uow BillingUoW, tableID int64) error {
	tableRepo := uow.TableRepository()
	tbl, err := tableRepo.Get(ctx, tableID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	tbl.Free()
	return tableRepo.Update(ctx, tbl)
}
