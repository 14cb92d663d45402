package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a display ratio already multiplied by 100.
type Percent float64

// P converts a percentage.
func P(d decimal.Decimal) Percent { return Percent(d.InexactFloat64()) }

func (p Percent) Equal(q Percent) bool {
	// floats only compare with some precision.
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString is like String with an explicit sign. Zero is "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
