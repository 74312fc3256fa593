package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultCurrency is the currency used when a caller does not specify one.
const DefaultCurrency = "GHS"

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount in a named currency. Amounts are kept as
// floating point with two-decimal rounding on arithmetic, matching how the
// payment provider reports them; the persistence layer stores them as
// decimal(10,2).
type Money struct { //nolint:recvcheck //using for validation
	amount   float64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value. Amount must be non-negative and currency
// non-empty.
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%v is negative", amount))
	}
	if currency == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}

	return Money{
		amount:   round2(amount),
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount rounded to two decimals.
func (m Money) Amount() float64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// MultiplyBy returns the amount multiplied by a non-negative integer factor,
// rounded to two decimals. Used to compute an order amount from the unit
// price snapshot and quantity.
func (m Money) MultiplyBy(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"factor", fmt.Errorf("%d is negative", factor))
	}

	return NewMoney(round2(m.amount*float64(factor)), m.currency)
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount == other.amount
}

// String formats the value as "<amount> <currency>".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.amount, m.currency)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
