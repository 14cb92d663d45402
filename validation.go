package folio

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error caused by structurally invalid
// input. Missing prices, rates or symbols are not errors.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validate checks that a transaction can be replayed.
func (tx Transaction) Validate() error {
	var errs []error
	if !tx.Type.IsValid() {
		errs = append(errs, invalid("transaction %q: unknown type %v", tx.ID, tx.Type))
	}
	if tx.TradeDate.IsZero() {
		errs = append(errs, invalid("transaction %q: missing trade date", tx.ID))
	}
	return errors.Join(errs...)
}

// Validate checks that the dataset collections are present and that every
// transaction is valid. Quotes and FX rates are optional market data.
func (d Dataset) Validate() error {
	var errs []error
	if d.Transactions == nil {
		errs = append(errs, invalid("transactions collection is missing"))
	}
	if d.Symbols == nil {
		errs = append(errs, invalid("symbols collection is missing"))
	}
	for _, tx := range d.Transactions {
		if err := tx.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateMethod(m CostBasisMethod) error {
	if !m.IsValid() {
		return invalid("unknown cost basis method %d", int(m))
	}
	return nil
}
