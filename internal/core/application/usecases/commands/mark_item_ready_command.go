package commands

import (
	"errors"

	"rms/internal/pkg/guard"
)

var ErrMarkItemReadyCommandIsNotConstructed = errors.New(
	"MarkItemReadyCommand must be created via NewMarkItemReadyCommand constructor",
)

// MarkItemReadyCommand represents a kitchen signal that one order item has
// been cooked. Identified by the item alone; the owning order is resolved
// by the handler.
type MarkItemReadyCommand struct { //nolint:recvcheck //using for validation
	itemID int64

	guard guard.ConstructorGuard
}

// NewMarkItemReadyCommand creates a command to mark an order item ready.
func NewMarkItemReadyCommand(itemID int64) (MarkItemReadyCommand, error) {
	command := MarkItemReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setItemID(itemID); err != nil {
		return MarkItemReadyCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemReadyCommandIsNotConstructed)
}

// ItemID returns the order item to mark ready.
func (c MarkItemReadyCommand) ItemID() int64 {
	return c.itemID
}

func (c *MarkItemReadyCommand) setItemID(itemID int64) error {
	if itemID <= 0 {
		return ErrItemIDIsInvalid
	}

	c.itemID = itemID
	return nil
}
