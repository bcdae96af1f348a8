package order

import (
	"errors"
	"fmt"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// ErrItemIDAlreadyAssigned is returned when AssignID is called on an item
// that already has a persistent identity.
var ErrItemIDAlreadyAssigned = errors.New("item ID is already assigned")

// maxQuantity bounds a single order line. The cap exists to catch obviously
// corrupt input, not to model portion logic.
const maxQuantity = 999

// ItemStatus represents the kitchen readiness of a single order line.
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined item status.
	ItemStatusUnknown ItemStatus = iota

	// ItemStatusQueued is the initial status of every item added to an order.
	ItemStatusQueued

	// ItemStatusReady indicates the kitchen has finished preparing the item.
	ItemStatusReady
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown: "Unknown",
		ItemStatusQueued:  "Queued",
		ItemStatusReady:   "Ready",
	}
}

// ItemStatusFromString parses an item status name as used in storage.
func ItemStatusFromString(name string) (ItemStatus, error) {
	switch name {
	case "Queued":
		return ItemStatusQueued, nil
	case "Ready":
		return ItemStatusReady, nil
	default:
		return ItemStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"itemStatus",
			fmt.Errorf("%q is not a valid item status", name),
		)
	}
}

// Validate checks if the ItemStatus value is Queued or Ready.
func (s ItemStatus) Validate() error {
	if s != ItemStatusQueued && s != ItemStatusReady {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemStatus",
			fmt.Errorf("%d is not a valid item status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the item status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Item is one ordered quantity of a menu item within an Order. The unit
// price is captured at add-time and never follows later catalog changes.
//
// Items are owned by their Order: they are created through the aggregate,
// mutated through the aggregate, and removed only with the whole order.
type Item struct {
	// id is the persistent identity, 0 until first persisted.
	id int64

	// menuItemID references the catalog entry this line was ordered from.
	menuItemID int64

	// unitPrice is the price per unit captured when the line was added.
	unitPrice kernel.Money

	// quantity is the ordered amount, between 1 and maxQuantity.
	quantity int

	// status tracks kitchen readiness of this line.
	status ItemStatus

	isConstructed bool
}

// NewItem creates a queued order line. UnitPrice must be a constructed Money
// value; quantity must be within [1, 999]; menuItemID must be positive.
func NewItem(menuItemID int64, unitPrice kernel.Money, quantity int) (*Item, error) {
	item := &Item{
		status:        ItemStatusQueued,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence.
func RestoreItem(
	id int64,
	menuItemID int64,
	unitPrice kernel.Money,
	quantity int,
	status ItemStatus,
) (*Item, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("item id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	item, err := NewItem(menuItemID, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	item.id = id
	item.status = status
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's persistent identity, 0 if not yet persisted.
func (i *Item) ID() int64 {
	return i.id
}

// MenuItemID returns the referenced catalog entry.
func (i *Item) MenuItemID() int64 {
	return i.menuItemID
}

// UnitPrice returns the price per unit captured at add-time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered amount.
func (i *Item) Quantity() int {
	return i.quantity
}

// Status returns the current kitchen readiness of the item.
func (i *Item) Status() ItemStatus {
	return i.status
}

// IsReady reports whether the kitchen has finished this line.
func (i *Item) IsReady() bool {
	return i.status == ItemStatusReady
}

// AssignID sets the persistent identity after the first insert.
// Fails if the item already has one.
func (i *Item) AssignID(id int64) error {
	if i.id != 0 {
		return ErrItemIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("item id")
	}
	i.id = id
	return nil
}

// markReady flips the item to Ready. Idempotent: marking an already ready
// item changes nothing.
func (i *Item) markReady() {
	i.status = ItemStatusReady
}

func (i *Item) setMenuItemID(menuItemID int64) error {
	if menuItemID <= 0 {
		return errs.NewValueIsInvalidError("menuItemId")
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxQuantity)
	}
	i.quantity = quantity
	return nil
}
