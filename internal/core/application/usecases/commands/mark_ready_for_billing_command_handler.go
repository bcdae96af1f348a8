package commands

import (
	"context"
	"time"

	"rms/internal/core/ports"
)

// MarkReadyForBillingCommandHandler moves an order to the ready-for-billing
// stage regardless of item readiness. Waitstaff use this to hand a partly
// cooked order over to billing, e.g. when guests ask to pay early.
type MarkReadyForBillingCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewMarkReadyForBillingCommandHandler creates a handler for the explicit
// billing handover.
func NewMarkReadyForBillingCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) MarkReadyForBillingCommandHandler {
	return MarkReadyForBillingCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the billing handover command.
func (h *MarkReadyForBillingCommandHandler) Handle(ctx context.Context, cmd MarkReadyForBillingCommand) error {
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

	aggregate.MarkReadyForBilling()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ports.Event{
		Type:    ports.EventOrderStatus,
		OrderID: aggregate.ID(),
		Status:  aggregate.Status().String(),
		At:      time.Now().UTC(),
	})

	return nil
}
