package commands

import (
	"errors"

	"rms/internal/core/domain/model/order"
	"rms/internal/pkg/guard"
)

var ErrAddItemsCommandIsNotConstructed = errors.New(
	"AddItemsCommand must be created via NewAddItemsCommand constructor",
)

// AddItemsCommand represents a request to append lines to an existing
// order, e.g. when guests order another round.
type AddItemsCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	items   []*order.Item

	guard guard.ConstructorGuard
}

// NewAddItemsCommand creates a command to append items to an order.
func NewAddItemsCommand(orderID int64, items []ItemInput) (AddItemsCommand, error) {
	command := AddItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItems(items),
	); err != nil {
		return AddItemsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddItemsCommandIsNotConstructed)
}

// OrderID returns the order to extend.
func (c AddItemsCommand) OrderID() int64 {
	return c.orderID
}

// Items returns the lines to append.
func (c AddItemsCommand) Items() []*order.Item {
	return c.items
}

func (c *AddItemsCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.orderID = orderID
	return nil
}

func (c *AddItemsCommand) setItems(inputs []ItemInput) error {
	if len(inputs) == 0 {
		return ErrItemsAreRequired
	}

	items, err := buildItems(inputs)
	if err != nil {
		return err
	}

	c.items = items
	return nil
}
