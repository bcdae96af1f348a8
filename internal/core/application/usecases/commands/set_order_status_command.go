package commands

import (
	"errors"

	"rms/internal/core/domain/model/order"
	"rms/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand represents an administrative override that forces
// an order into an arbitrary status, bypassing lifecycle rules. Used by
// managers to fix orders stuck by operational mistakes.
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	status  order.Status

	guard guard.ConstructorGuard
}

// NewSetOrderStatusCommand creates a command to override an order's status.
// The status is given by name, e.g. "InKitchen".
func NewSetOrderStatusCommand(orderID int64, status string) (SetOrderStatusCommand, error) {
	command := SetOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setStatus(status),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to override.
func (c SetOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// Status returns the status to force.
func (c SetOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *SetOrderStatusCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderStatusCommand) setStatus(status string) error {
	if status == "" {
		return ErrOrderStatusRequired
	}

	parsed, err := order.StatusFromString(status)
	if err != nil {
		return err
	}

	c.status = parsed
	return nil
}
