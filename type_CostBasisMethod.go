package folio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CostBasisMethod defines the method for calculating cost basis.
type CostBasisMethod int

const (
	// AverageCost calculates the cost basis by averaging the cost of all shares.
	AverageCost CostBasisMethod = iota
	// FIFO (First-In, First-Out) calculates the cost basis by assuming the first shares purchased are the first ones sold.
	FIFO
	// LIFO (Last-In, First-Out) sells the most recently acquired shares first.
	LIFO
	// HIFO (Highest-In, First-Out) sells the shares with the highest unit cost first.
	HIFO
)

func (m CostBasisMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	default:
		return "unknown"
	}
}

// IsValid reports whether m is one of the declared methods.
func (m CostBasisMethod) IsValid() bool {
	switch m {
	case AverageCost, FIFO, LIFO, HIFO:
		return true
	default:
		return false
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "avg":
		return AverageCost, nil
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}

func (m CostBasisMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(m.String()))
}

func (m *CostBasisMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseCostBasisMethod(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
