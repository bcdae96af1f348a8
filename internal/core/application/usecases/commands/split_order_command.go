package commands

import (
	"errors"

	"rms/internal/core/domain/model/order"
	"rms/internal/pkg/guard"
)

var ErrSplitOrderCommandIsNotConstructed = errors.New(
	"SplitOrderCommand must be created via NewSplitOrderCommand constructor",
)

// SplitOrderCommand represents a request to open a sibling order on the
// same table, used when one party at a table wants a separate check. The
// requested lines go on the new order; the source order is not modified.
type SplitOrderCommand struct { //nolint:recvcheck //using for validation
	sourceOrderID int64
	items         []*order.Item

	guard guard.ConstructorGuard
}

// NewSplitOrderCommand creates a command to split a new order off an
// existing one.
func NewSplitOrderCommand(sourceOrderID int64, items []ItemInput) (SplitOrderCommand, error) {
	command := SplitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSourceOrderID(sourceOrderID),
		command.setItems(items),
	); err != nil {
		return SplitOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderCommandIsNotConstructed)
}

// SourceOrderID returns the order the split is derived from.
func (c SplitOrderCommand) SourceOrderID() int64 {
	return c.sourceOrderID
}

// Items returns the lines of the new order.
func (c SplitOrderCommand) Items() []*order.Item {
	return c.items
}

func (c *SplitOrderCommand) setSourceOrderID(sourceOrderID int64) error {
	if sourceOrderID <= 0 {
		return ErrOrderIDIsInvalid
	}

	c.sourceOrderID = sourceOrderID
	return nil
}

func (c *SplitOrderCommand) setItems(inputs []ItemInput) error {
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
