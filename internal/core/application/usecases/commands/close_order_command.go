package commands

import (
	"errors"

	"rms/internal/pkg/guard"
)

var ErrCloseOrderCommandIsNotConstructed = errors.New(
	"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
)

// CloseOrderCommand represents a request to settle an order: compute its
// bill, mark it billed and free its table.
type CloseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewCloseOrderCommand creates a command to close an order.
func NewCloseOrderCommand(orderID int64) (CloseOrderCommand, error) {
	command := CloseOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return CloseOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

// OrderID returns the order to close.
func (c CloseOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c *CloseOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}
