package folio

import (
	"strings"
	"time"
)

// Transaction is a single trade or cash event recorded in a portfolio.
// The engine never mutates transactions.
type Transaction struct {
	ID            string          `json:"id"`
	PortfolioID   string          `json:"portfolioId"`
	SymbolID      string          `json:"symbolId,omitempty"` // empty for cash movements
	Type          TransactionType `json:"type"`
	Quantity      float64         `json:"quantity"` // negative for an outgoing Transfer
	UnitPrice     float64         `json:"unitPrice"`
	Fee           float64         `json:"fee"`
	FxRate        float64         `json:"fxRate"` // trade to base currency rate recorded with the trade, 0 if unknown
	TradeCurrency string          `json:"tradeCurrency"`
	TradeDate     time.Time       `json:"tradeDate"`
	Notes         string          `json:"notes,omitempty"`
}

// currency returns the normalized trade currency.
func (t Transaction) currency() string { return normalizeCurrency(t.TradeCurrency) }

// Symbol describes a held instrument.
type Symbol struct {
	ID            string `json:"id"`
	Ticker        string `json:"ticker"`
	Name          string `json:"name"`
	AssetType     string `json:"assetType"`
	Exchange      string `json:"exchange,omitempty"`
	QuoteCurrency string `json:"quoteCurrency"`
}

// QuoteSnapshot is a price observation for a symbol.
type QuoteSnapshot struct {
	SymbolID string     `json:"symbolId"`
	Price    float64    `json:"price"`
	AsOf     *time.Time `json:"asof,omitempty"`
}

// FxRateSnapshot is a directional exchange rate observation: one unit of
// BaseCurrency is worth Rate units of QuoteCurrency.
type FxRateSnapshot struct {
	BaseCurrency  string     `json:"baseCurrency"`
	QuoteCurrency string     `json:"quoteCurrency"`
	Rate          float64    `json:"rate"`
	AsOf          *time.Time `json:"asof,omitempty"`
}

// Portfolio names a group of transactions.
type Portfolio struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultBaseCurrency is the reporting currency used when none is given.
const DefaultBaseCurrency = "USD"

func normalizeCurrency(c string) string { return strings.ToUpper(strings.TrimSpace(c)) }

// byPortfolio returns the transactions of a single portfolio, in input order.
// The result is never nil.
func byPortfolio(txs []Transaction, portfolioID string) []Transaction {
	out := []Transaction{}
	for _, tx := range txs {
		if tx.PortfolioID == portfolioID {
			out = append(out, tx)
		}
	}
	return out
}
