// Package bill computes and represents the final bill of an order.
//
// The math is a pure function of the order's captured line prices, its
// discount and its tax percentage. A Bill is created once, when the order
// is closed, and never recomputed afterwards.
package bill

import (
	"errors"
	"time"

	"rms/internal/core/domain/model/kernel"
	"rms/internal/core/domain/model/order"
	"rms/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrBillIsNotConstructed is returned when a Bill instance was not created
// through NewBill or RestoreBill.
var ErrBillIsNotConstructed = errors.New("Bill must be created via NewBill or RestoreBill")

// ErrBillIDAlreadyAssigned is returned when AssignID is called on a bill
// that already has a persistent identity.
var ErrBillIDAlreadyAssigned = errors.New("bill ID is already assigned")

// Bill is the immutable 1:1 billing record of a closed order. All four
// amounts carry exactly two decimal places.
type Bill struct {
	id       int64
	orderID  int64
	subtotal kernel.Money
	discount kernel.Money
	tax      kernel.Money
	total    kernel.Money

	createdAt time.Time

	isConstructed bool
}

// NewBill computes the bill for an order:
//
//	subtotal = Σ(unitPrice × quantity), rounded to 2 decimals
//	tax      = (subtotal − discount) × taxPercent / 100, never below zero
//	total    = subtotal − discount + tax
//
// When the discount exceeds the subtotal the tax is clamped to zero rather
// than going negative; the total itself is left as computed.
//
// The order must already have a persistent identity.
func NewBill(o *order.Order) (*Bill, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.ID() == 0 {
		return nil, errs.NewValueIsRequiredError("order id")
	}

	subtotal := decimal.Zero
	for _, item := range o.Items() {
		line := item.UnitPrice().Decimal().Mul(decimal.NewFromInt(int64(item.Quantity())))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	discount := o.Discount().Decimal()
	taxable := subtotal.Sub(discount)
	tax := o.TaxPercent().ApplyTo(taxable)
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	total := subtotal.Sub(discount).Add(tax).Round(2)

	subtotalMoney, err := kernel.NewMoney(subtotal)
	if err != nil {
		return nil, err
	}
	taxMoney, err := kernel.NewMoney(tax)
	if err != nil {
		return nil, err
	}

	return &Bill{
		orderID:       o.ID(),
		subtotal:      subtotalMoney,
		discount:      o.Discount(),
		tax:           taxMoney,
		total:         newSignedMoney(total),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// newSignedMoney tolerates a negative total, which arises when the discount
// exceeds the subtotal. Money rejects negatives, so the rare negative total
// is floored at zero as well; the clamp is part of the billing policy.
func newSignedMoney(amount decimal.Decimal) kernel.Money {
	if amount.IsNegative() {
		return kernel.ZeroMoney()
	}
	m, _ := kernel.NewMoney(amount)
	return m
}

// RestoreBill reconstructs a bill from persistence.
func RestoreBill(
	id int64,
	orderID int64,
	subtotal, discount, tax, total kernel.Money,
	createdAt time.Time,
) (*Bill, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("bill id")
	}
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidError("order id")
	}
	if err := errors.Join(
		subtotal.Validate(),
		discount.Validate(),
		tax.Validate(),
		total.Validate(),
	); err != nil {
		return nil, err
	}

	return &Bill{
		id:            id,
		orderID:       orderID,
		subtotal:      subtotal,
		discount:      discount,
		tax:           tax,
		total:         total,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Bill instance was properly constructed.
func (b *Bill) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBillIsNotConstructed
	}
	return nil
}

// ID returns the bill's persistent identity, 0 if not yet persisted.
func (b *Bill) ID() int64 {
	return b.id
}

// OrderID returns the billed order.
func (b *Bill) OrderID() int64 {
	return b.orderID
}

// Subtotal returns the item total before discount and tax.
func (b *Bill) Subtotal() kernel.Money {
	return b.subtotal
}

// Discount returns the absolute discount applied.
func (b *Bill) Discount() kernel.Money {
	return b.discount
}

// Tax returns the tax amount on the discounted subtotal.
func (b *Bill) Tax() kernel.Money {
	return b.tax
}

// Total returns the final amount due.
func (b *Bill) Total() kernel.Money {
	return b.total
}

// CreatedAt returns when the bill was computed.
func (b *Bill) CreatedAt() time.Time {
	return b.createdAt
}

// AssignID sets the persistent identity after the first insert.
func (b *Bill) AssignID(id int64) error {
	if b.id != 0 {
		return ErrBillIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("bill id")
	}
	b.id = id
	return nil
}
