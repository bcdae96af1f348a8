package order

import (
	"errors"
	"time"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIDAlreadyAssigned is returned when AssignID is called on an
	// order that already has a persistent identity.
	ErrOrderIDAlreadyAssigned = errors.New("order ID is already assigned")
)

// Order is the aggregate root for one kitchen ticket. It owns its items and
// is the single writer of order and item status.
//
// Invariants:
//   - Belongs to exactly one table, assigned at creation, immutable after.
//   - Items are only appended, never removed individually.
//   - The order becomes Ready through the aggregate rule only when every
//     item is Ready, and at most once per pass through Pending.
//   - Billed is terminal: no new items, no further transitions except the
//     administrative SetStatus override.
//
// Concurrent use: the aggregate itself is not goroutine-safe. Callers must
// serialize mutations per order, which the persistence layer does by locking
// the order row for the span of the enclosing transaction.
type Order struct {
	// id is the persistent identity, 0 until first persisted.
	id int64

	// tableID references the owning table, immutable after creation.
	tableID int64

	// status is the current lifecycle state.
	status Status

	// items are the order lines, owned exclusively by this order.
	items []*Item

	// discount is an absolute amount subtracted at bill time.
	discount kernel.Money

	// taxPercent is applied to the discounted subtotal at bill time.
	taxPercent kernel.Percent

	// createdAt is the creation timestamp, immutable.
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order for a table with zero or more queued
// items. The persistent identity is assigned later by the repository.
func NewOrder(
	tableID int64,
	discount kernel.Money,
	taxPercent kernel.Percent,
	items []*Item,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTableID(tableID),
		o.setDiscount(discount),
		o.setTaxPercent(taxPercent),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id int64,
	tableID int64,
	status Status,
	discount kernel.Money,
	taxPercent kernel.Percent,
	createdAt time.Time,
	items []*Item,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("order id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(tableID, discount, taxPercent, items)
	if err != nil {
		return nil, err
	}

	o.id = id
	o.status = status
	o.createdAt = createdAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's persistent identity, 0 if not yet persisted.
func (o *Order) ID() int64 {
	return o.id
}

// TableID returns the owning table.
func (o *Order) TableID() int64 {
	return o.tableID
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order lines. The returned slice is the aggregate's own
// backing storage; callers must not modify it.
func (o *Order) Items() []*Item {
	return o.items
}

// Discount returns the absolute discount applied at bill time.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// TaxPercent returns the tax rate applied at bill time.
func (o *Order) TaxPercent() kernel.Percent {
	return o.taxPercent
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignID sets the persistent identity after the first insert.
// Fails if the order already has one.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("order id")
	}
	o.id = id
	return nil
}

// Item returns the order line with the given identity, or nil.
func (o *Order) Item(itemID int64) *Item {
	for _, it := range o.items {
		if it.id == itemID {
			return it
		}
	}
	return nil
}

// AllItemsReady reports whether the order has at least one item and every
// item is Ready.
func (o *Order) AllItemsReady() bool {
	if len(o.items) == 0 {
		return false
	}
	for _, it := range o.items {
		if !it.IsReady() {
			return false
		}
	}
	return true
}

// MarkItemReady flips the given item to Ready and evaluates the aggregate
// rule: when every item of the order is Ready, the order transitions to
// Ready. Returns whether the aggregate transition fired.
//
// Marking an already ready item is a deterministic no-op for the item; the
// aggregate transition still cannot fire twice because it only applies while
// the order is Pending or InKitchen.
//
// Returns an ObjectNotFoundError when the item does not belong to the order.
func (o *Order) MarkItemReady(itemID int64) (bool, error) {
	item := o.Item(itemID)
	if item == nil {
		return false, errs.NewObjectNotFoundError("orderItemId", itemID)
	}

	item.markReady()

	newStatus, applies := o.status.AggregateReady()
	if applies && o.AllItemsReady() {
		o.status = newStatus
		return true, nil
	}
	return false, nil
}

// MarkReadyForBilling unconditionally marks the order to be billed as-is,
// regardless of item readiness. This is an explicit human decision, not a
// derived transition.
func (o *Order) MarkReadyForBilling() {
	o.status = StatusReadyForBilling
}

// AddItems appends queued lines to the order and reopens the kitchen
// workflow: the newly added items have not been prepared, so any Ready or
// ReadyForBilling state is no longer valid and the order returns to Pending.
//
// Returns a ConflictError when the order is Billed.
func (o *Order) AddItems(items []*Item) error {
	newStatus, err := o.status.Reopen()
	if err != nil {
		return err
	}

	for _, it := range items {
		if validateErr := it.Validate(); validateErr != nil {
			return validateErr
		}
	}

	o.items = append(o.items, items...)
	o.status = newStatus
	return nil
}

// Close moves the order to the terminal Billed state. Closing an already
// billed order changes nothing; callers re-free the table regardless.
func (o *Order) Close() {
	o.status = StatusBilled
}

// SetStatus is the administrative override: it bypasses every transition
// rule and sets the status directly. It only rejects status values that are
// not part of the enum. Use sparingly; normal flows go through the other
// mutators.
func (o *Order) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTableID(tableID int64) error {
	if tableID <= 0 {
		return errs.NewValueIsInvalidError("tableId")
	}
	o.tableID = tableID
	return nil
}

func (o *Order) setDiscount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	o.discount = discount
	return nil
}

func (o *Order) setTaxPercent(taxPercent kernel.Percent) error {
	if err := taxPercent.Validate(); err != nil {
		return err
	}
	o.taxPercent = taxPercent
	return nil
}

func (o *Order) setItems(items []*Item) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
