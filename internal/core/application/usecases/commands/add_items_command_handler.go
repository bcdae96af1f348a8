package commands

import (
	"context"
	"time"

	"rms/internal/core/ports"
)

// AddItemsCommandHandler appends lines to an existing order. Appending to a
// ready or ready-for-billing order reopens it as pending so the kitchen
// picks the new lines up; appending to a billed order is rejected.
type AddItemsCommandHandler struct {
	uowFactory IntakeUoWFactory
	notifier   ports.Notifier
}

// NewAddItemsCommandHandler creates a handler for item additions.
func NewAddItemsCommandHandler(uowFactory IntakeUoWFactory, notifier ports.Notifier) AddItemsCommandHandler {
	return AddItemsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the add-items command. Returns errs.ErrConflict when the
// order is already billed and errs.ErrValueIsInvalid when a referenced menu
// item does not exist.
func (h *AddItemsCommandHandler) Handle(ctx context.Context, cmd AddItemsCommand) error {
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

	if err := verifyMenuItems(ctx, uow.MenuRepository(), cmd.Items()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AddItems(cmd.Items()); err != nil {
		return err
	}

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
