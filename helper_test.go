package folio

import (
	"time"

	"github.com/etnz/folio/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// day parses a yyyy-mm-dd day at midnight UTC.
func day(s string) time.Time { return date.MustParse(s).Time() }

// at is like day but returns a pointer, for snapshot AsOf fields.
func at(s string) *time.Time {
	t := day(s)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func trade(typ TransactionType, symbol string, q, price float64, on string) Transaction {
	return Transaction{
		ID:            symbol + "-" + on,
		PortfolioID:   "p1",
		SymbolID:      symbol,
		Type:          typ,
		Quantity:      q,
		UnitPrice:     price,
		TradeCurrency: "USD",
		TradeDate:     day(on),
	}
}

func buy(symbol string, q, price float64, on string) Transaction {
	return trade(Buy, symbol, q, price, on)
}

func sell(symbol string, q, price float64, on string) Transaction {
	return trade(Sell, symbol, q, price, on)
}

func transfer(symbol string, q, price float64, on string) Transaction {
	return trade(Transfer, symbol, q, price, on)
}

// in moves a transaction to another portfolio.
func in(portfolio string, tx Transaction) Transaction {
	tx.PortfolioID = portfolio
	return tx
}

// decimals compares decimals by value, whatever their exponent.
var decimals = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// referenceSequence is the reference trade sequence of the cost basis methods.
func referenceSequence() []Transaction {
	return []Transaction{
		buy("s1", 10, 100, "2024-01-01"),
		buy("s1", 5, 120, "2024-02-01"),
		sell("s1", 8, 150, "2024-03-01"),
		buy("s1", 5, 90, "2024-04-01"),
	}
}
