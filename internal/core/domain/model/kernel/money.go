package kernel

import (
	"rms/internal/pkg/errs"
	"rms/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created
// through NewMoney or ZeroMoney. The zero value of Money is invalid.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or ZeroMoney",
)

// Money is an immutable monetary amount with exactly two decimal places of
// precision. Negative amounts are rejected: every money-carrying field in
// the domain (unit prices, discounts, bill lines) is non-negative.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.NewFromFloat(10.00))
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(price) // "10.00"
type Money struct {
	amount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount. The amount is
// rounded half-up to two decimal places. Negative amounts are invalid.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidError("amount cannot be negative")
	}

	return Money{
		amount: amount.Round(2),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ZeroMoney returns a valid Money value of 0.00.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal returns the underlying fixed-point amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimal places, e.g. "26.25".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// ErrPercentIsNotConstructed indicates that a Percent value was not created
// through NewPercent or ZeroPercent. The zero value of Percent is invalid.
var ErrPercentIsNotConstructed = errs.NewValueIsRequiredError(
	"Percent must be created via NewPercent or ZeroPercent",
)

// maxPercent bounds tax percentages to three integer digits plus two
// decimal places.
var maxPercent = decimal.RequireFromString("999.99")

// Percent is an immutable percentage with two decimal places, in the range
// [0.00, 999.99]. It is used for tax rates applied at bill time.
type Percent struct {
	value decimal.Decimal

	guard guard.ConstructorGuard
}

// NewPercent creates a Percent from a decimal value, rounded half-up to two
// decimal places. Values outside [0, 999.99] are out of range.
func NewPercent(value decimal.Decimal) (Percent, error) {
	rounded := value.Round(2)
	if rounded.IsNegative() || rounded.GreaterThan(maxPercent) {
		return Percent{}, errs.NewValueIsOutOfRangeError("percent", value.String(), "0", "999.99")
	}

	return Percent{
		value: rounded,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ZeroPercent returns a valid Percent value of 0.00.
func ZeroPercent() Percent {
	return Percent{
		value: decimal.Zero,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the Percent value was created through a constructor.
func (p Percent) Validate() error {
	return p.guard.Validate(ErrPercentIsNotConstructed)
}

// Decimal returns the underlying fixed-point percentage.
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// ApplyTo computes value × p / 100 rounded to two decimal places.
func (p Percent) ApplyTo(value decimal.Decimal) decimal.Decimal {
	return value.Mul(p.value).Div(decimal.NewFromInt(100)).Round(2)
}

// String renders the percentage with two decimal places, e.g. "5.00".
func (p Percent) String() string {
	return p.value.StringFixed(2)
}
