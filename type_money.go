package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a currency, for display and serialization. Arithmetic
// stays on decimal.Decimal, Money only carries the currency along.
type Money struct {
	value decimal.Decimal // in major units
	cur   string
}

// M creates a Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: normalizeCurrency(currency)}
}

// currency returns the go-money definition of the currency. Unknown codes get
// a default two digits definition.
func (m Money) currency() money.Currency {
	// the constructor never returns a nil currency.
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with its currency symbol, rounded to the
// currency's minor unit.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString is like String with an explicit sign. Zero is "-".
func (m Money) SignedString() string {
	switch {
	case m.value.Round(int32(m.currency().Fraction)).IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Value() decimal.Decimal   { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }

// MarshalJSON encodes the amount rounded to the currency's minor unit.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}
