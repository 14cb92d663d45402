package folio

import (
	"math"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return num(float64(v))
	case float64:
		return num(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// num converts a collaborator supplied float into a decimal.
// NaN and infinities become zero so a single malformed record cannot poison a
// total.
func num(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// positive returns the decimal value of f and whether it is strictly positive.
func positive(f float64) (decimal.Decimal, bool) {
	d := num(f)
	return d, d.IsPositive()
}

// div divides a by b, returning zero when b is zero.
func div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

var hundred = decimal.NewFromInt(100)

// percentOf returns 100*a/b, or zero when b is zero.
func percentOf(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Mul(hundred).Div(b)
}

// round2 rounds half away from zero to cents.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
