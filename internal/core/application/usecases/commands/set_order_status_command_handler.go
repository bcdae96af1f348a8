package commands

import (
	"context"
	"log/slog"
	"time"

	"rms/internal/core/domain/model/audit"
	"rms/internal/core/ports"
)

// SetOrderStatusCommandHandler applies administrative status overrides.
// Every override writes an audit entry in the same transaction and is
// logged at warning level, since it bypasses the normal lifecycle.
type SetOrderStatusCommandHandler struct {
	uowFactory OverrideUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSetOrderStatusCommandHandler creates a handler for status overrides.
func NewSetOrderStatusCommandHandler(
	uowFactory OverrideUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the override command.
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) error {
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

	oldStatus := aggregate.Status()
	if err = aggregate.SetStatus(cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	entry := audit.NewStatusOverride(aggregate.ID(), oldStatus.String(), cmd.Status().String())
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "order status overridden",
		slog.Int64("orderId", aggregate.ID()),
		slog.String("oldStatus", oldStatus.String()),
		slog.String("newStatus", cmd.Status().String()),
	)

	h.notifier.Publish(ports.Event{
		Type:    ports.EventOrderStatus,
		OrderID: aggregate.ID(),
		Status:  cmd.Status().String(),
		At:      time.Now().UTC(),
	})

	return nil
}
