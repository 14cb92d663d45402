package folio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransactionType identifies what a Transaction does. The zero value is not a
// valid type.
type TransactionType int

const (
	// Buy acquires a quantity of a symbol and opens a lot.
	Buy TransactionType = iota + 1
	// Sell disposes of a quantity of a symbol, consuming lots.
	Sell
	// Deposit moves cash into the portfolio.
	Deposit
	// Withdraw moves cash out of the portfolio.
	Withdraw
	// Transfer moves a symbol in (positive quantity) or out (negative quantity) without cash.
	Transfer
	// Dividend records income paid by a symbol.
	Dividend
	// Fee records a standalone charge.
	Fee
)

var transactionTypeNames = map[TransactionType]string{
	Buy:      "BUY",
	Sell:     "SELL",
	Deposit:  "DEPOSIT",
	Withdraw: "WITHDRAW",
	Transfer: "TRANSFER",
	Dividend: "DIVIDEND",
	Fee:      "FEE",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

// IsValid reports whether t is one of the declared types.
func (t TransactionType) IsValid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

// IsTrade reports whether t moves a quantity of a symbol, and therefore
// takes part in lot accounting.
func (t TransactionType) IsTrade() bool {
	switch t {
	case Buy, Sell, Transfer:
		return true
	case Deposit, Withdraw, Dividend, Fee:
		return false
	default:
		return false
	}
}

// ParseTransactionType parses a type name, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range transactionTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type: %q", s)
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal %v", t)
	}
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
