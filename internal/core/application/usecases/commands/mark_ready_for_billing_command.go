package commands

import (
	"errors"

	"rms/internal/pkg/guard"
)

var ErrMarkReadyForBillingCommandIsNotConstructed = errors.New(
	"MarkReadyForBillingCommand must be created via NewMarkReadyForBillingCommand constructor",
)

// MarkReadyForBillingCommand represents a waitstaff request to hand an
// order over to billing.
type MarkReadyForBillingCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewMarkReadyForBillingCommand creates a command to move an order to the
// ready-for-billing stage.
func NewMarkReadyForBillingCommand(orderID int64) (MarkReadyForBillingCommand, error) {
	command := MarkReadyForBillingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return MarkReadyForBillingCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyForBillingCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyForBillingCommandIsNotConstructed)
}

// OrderID returns the order to move to billing.
func (c MarkReadyForBillingCommand) OrderID() int64 {
	return c.orderID
}

func (c *MarkReadyForBillingCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}
