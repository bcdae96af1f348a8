package commands

import (
	"context"
	"errors"
	"time"

	"rms/internal/core/domain/model/order"
	"rms/internal/core/ports"
	"rms/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for opening orders.
// Verifies the table and every referenced menu item exist before persisting
// the new order and announcing it to connected displays.
type CreateOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations.
func NewCreateOrderCommandHandler(uowFactory IntakeUoWFactory, notifier ports.Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order creation command and returns the identity of
// the new order. A missing table or menu item fails the whole request with
// errs.ErrValueIsInvalid; nothing is persisted in that case.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
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

	if _, err := uow.TableRepository().Get(ctx, cmd.TableID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return 0, errs.NewValueIsInvalidErrorWithCause("tableId", err)
		}
		return 0, err
	}

	if err := verifyMenuItems(ctx, uow.MenuRepository(), cmd.Items()); err != nil {
		return 0, err
	}

	aggregate, err := order.NewOrder(cmd.TableID(), cmd.Discount(), cmd.TaxPercent(), cmd.Items())
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
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
