package commands

import (
	"errors"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"
	"rms/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrTableIDIsInvalid    = errors.New("tableID must be greater than 0")
	ErrItemsAreRequired    = errors.New("at least one order item is required")
	ErrOrderIDIsInvalid    = errors.New("orderID must be greater than 0")
	ErrItemIDIsInvalid     = errors.New("itemID must be greater than 0")
	ErrOrderStatusRequired = errors.New("status is required")
)

// CreateOrderCommand represents a request to open a new order for a table.
// Captures the requested lines with their unit prices, the order-level
// discount and the tax rate.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(12, decimal.Zero, decimal.NewFromInt(5), []ItemInput{
//	    {MenuItemID: 3, UnitPrice: decimal.NewFromFloat(12.50), Quantity: 2},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tableID    int64
	discount   kernel.Money
	taxPercent kernel.Percent
	items      []*order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates the table reference, the money values and every line.
func NewCreateOrderCommand(
	tableID int64,
	discount decimal.Decimal,
	taxPercent decimal.Decimal,
	items []ItemInput,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setTableID(tableID),
		orderCommand.setDiscount(discount),
		orderCommand.setTaxPercent(taxPercent),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// TableID returns the table the order is opened for.
func (c CreateOrderCommand) TableID() int64 {
	return c.tableID
}

// Discount returns the order-level discount amount.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

// TaxPercent returns the tax rate applied at billing time.
func (c CreateOrderCommand) TaxPercent() kernel.Percent {
	return c.taxPercent
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []*order.Item {
	return c.items
}

func (c *CreateOrderCommand) setTableID(tableID int64) error {
	if tableID <= 0 {
		return ErrTableIDIsInvalid
	}

	c.tableID = tableID
	return nil
}

func (c *CreateOrderCommand) setDiscount(discount decimal.Decimal) error {
	money, err := kernel.NewMoney(discount)
	if err != nil {
		return err
	}

	c.discount = money
	return nil
}

func (c *CreateOrderCommand) setTaxPercent(taxPercent decimal.Decimal) error {
	percent, err := kernel.NewPercent(taxPercent)
	if err != nil {
		return err
	}

	c.taxPercent = percent
	return nil
}

// setItems accepts zero or more lines; an order may open empty and take
// lines later through item additions.
func (c *CreateOrderCommand) setItems(inputs []ItemInput) error {
	items, err := buildItems(inputs)
	if err != nil {
		return err
	}

	c.items = items
	return nil
}
