package commands

import (
	"context"
	"time"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"
)

// SplitOrderCommandHandler opens a sibling order on the source order's
// table. The new order inherits the tax rate; the discount starts at zero
// and must be granted again if wanted. The source keeps all its lines, so
// a split can duplicate kitchen tickets for lines moved manually.
type SplitOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
	notifier   ports.Notifier
}

// NewSplitOrderCommandHandler creates a handler for order splits.
func NewSplitOrderCommandHandler(uowFactory IntakeUoWFactory, notifier ports.Notifier) SplitOrderCommandHandler {
	return SplitOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the split command and returns the identity of the new
// order. Splitting a billed order returns errs.ErrConflict.
func (h *SplitOrderCommandHandler) Handle(ctx context.Context, cmd SplitOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// lock the source row so a concurrent close cannot bill it between the
	// status check and the sibling insert
	orderRepo := uow.OrderRepository()
	source, err := orderRepo.GetForUpdate(ctx, cmd.SourceOrderID())
	if err != nil {
		return 0, err
	}

	if source.Status().IsBilled() {
		return 0, errs.NewConflictError("orderId", "cannot split a billed order")
	}

	if err = verifyMenuItems(ctx, uow.MenuRepository(), cmd.Items()); err != nil {
		return 0, err
	}

	aggregate, err := order.NewOrder(source.TableID(), kernel.ZeroMoney(), source.TaxPercent(), cmd.Items())
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.notifier.Publish(ports.Event{
		Type:    ports.EventOrderCreated,
		OrderID: aggregate.ID(),
		Status:  aggregate.Status().String(),
		At:      time.Now().UTC(),
	})

	return aggregate.ID(), nil
}
