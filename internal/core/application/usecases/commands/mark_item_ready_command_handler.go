package commands

import (
	"context"
	"time"

	"rms/internal/core/ports"
)

// MarkItemReadyCommandHandler handles the item-ready flow: flip one item to
// ready and, when it was the last pending item of the order, promote the
// whole order to ready in the same transaction.
//
// The order row is read with an exclusive lock, so concurrent ready signals
// for items of the same order serialize and exactly one of them observes
// the last-item condition. Signals for different orders do not contend.
type MarkItemReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewMarkItemReadyCommandHandler creates a handler for kitchen item-ready
// signals.
func NewMarkItemReadyCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) MarkItemReadyCommandHandler {
	return MarkItemReadyCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the item-ready command. Marking an already-ready item is
// a no-op that still succeeds. Publishes an item event after commit, plus a
// single order-ready event when this signal completed the order.
func (h *MarkItemReadyCommandHandler) Handle(ctx context.Context, cmd MarkItemReadyCommand) error {
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
	orderID, err := orderRepo.FindOrderIDByItem(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	aggregate, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	becameReady, err := aggregate.MarkItemReady(cmd.ItemID())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	now := time.Now().UTC()
	h.notifier.Publish(ports.Event{
		Type:    ports.EventItemReady,
		OrderID: orderID,
		ItemID:  cmd.ItemID(),
		At:      now,
	})

	if becameReady {
		h.notifier.Publish(ports.Event{
			Type:    ports.EventOrderReady,
			OrderID: orderID,
			Status:  aggregate.Status().String(),
			At:      now,
		})
	}

	return nil
}
