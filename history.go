package folio

import (
	"slices"
	"time"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// HistoryOptions tunes History.
type HistoryOptions struct {
	// Locale selects the display format of PortfolioHistoryPoint.Date, as a BCP 47 tag.
	Locale string
	// EndDate is the last day of the series, included. Nil means today.
	EndDate *time.Time
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
}

func (o HistoryOptions) end() date.Date {
	if o.EndDate != nil {
		return date.Of(*o.EndDate)
	}
	if o.Now != nil {
		return date.Of(o.Now())
	}
	return date.Today()
}

// PortfolioHistoryPoint is the valuation of a portfolio at the end of a day.
//
// Cost is the cumulative net cash invested since the first trade: buys add
// their price and fee, sells subtract their proceeds net of fee. It can go
// negative after profitable sales. Value is the market value of the positions
// held that day.
type PortfolioHistoryPoint struct {
	Date    string          `json:"date"`
	IsoDate string          `json:"isoDate"`
	Cost    decimal.Decimal `json:"cost"`
	Value   decimal.Decimal `json:"value"`
}

// History replays trades day by day, from the day of the first trade to the
// end date, and values the open positions at the end of each day.
//
// A position is valued at the price it traded at that day, else at the most
// recent quote observed on or before that day, else at its last trade price,
// else at its own cost per unit. Prices are not converted between currencies.
// An end date before the first trade yields a single point for the first
// trade day. No trades yield an empty series.
func History(txs []Transaction, quotes []QuoteSnapshot, method CostBasisMethod, opts HistoryOptions) ([]PortfolioHistoryPoint, error) {
	if txs == nil {
		return nil, invalid("transactions collection is missing")
	}
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}

	// trades without a symbol move no position and do not start the series.
	j := slices.DeleteFunc(newJournal(txs), func(tx Transaction) bool { return tx.SymbolID == "" })
	first, ok := j.span()
	if !ok {
		return []PortfolioHistoryPoint{}, nil
	}
	days := date.Range{From: first.From, To: opts.end()}.Clamp()

	var (
		trades        = cursor{j: j}
		quoted        = quoteSeries(quotes)
		open          = make(map[string]*book)
		lastTrade     = make(map[string]decimal.Decimal)
		netInvestment = decimal.Zero
		points        = make([]PortfolioHistoryPoint, 0, days.Len())
	)
	for on := range days.Days() {
		tradedAt := make(map[string]decimal.Decimal)
		for _, tx := range trades.until(on) {
			netInvestment = netInvestment.Add(cashInvested(tx))

			b, ok := open[tx.SymbolID]
			if !ok {
				b = newBook(method, tx.currency())
				open[tx.SymbolID] = b
			}
			b.apply(tx, one)
			if !b.quantity.IsPositive() {
				// closed positions must not leak their cost into later days.
				delete(open, tx.SymbolID)
			}
			if price, ok := positive(tx.UnitPrice); ok {
				tradedAt[tx.SymbolID] = price
				lastTrade[tx.SymbolID] = price
			}
		}

		value := decimal.Zero
		for id, b := range open {
			price, ok := tradedAt[id]
			if s := quoted[id]; !ok && s != nil {
				price, ok = s.ValueAsOf(on)
			}
			if !ok {
				price, ok = lastTrade[id]
			}
			if !ok {
				price = b.costPerUnit()
			}
			value = value.Add(b.quantity.Mul(price))
		}

		points = append(points, PortfolioHistoryPoint{
			Date:    on.Display(opts.Locale),
			IsoDate: on.String(),
			Cost:    round2(netInvestment),
			Value:   round2(value),
		})
	}
	return points, nil
}

// History returns the daily history of a portfolio, replayed with the engine
// cost basis method.
func (e *Engine) History(portfolioID string, opts HistoryOptions) ([]PortfolioHistoryPoint, error) {
	if portfolioID == "" {
		return nil, invalid("empty portfolio id")
	}
	return History(byPortfolio(e.data.Transactions, portfolioID), e.data.Quotes, e.method, opts)
}

// cashInvested returns the cash a trade puts into (positive) or takes out of
// (negative) the portfolio.
func cashInvested(tx Transaction) decimal.Decimal {
	q, price, fee := num(tx.Quantity), num(tx.UnitPrice), num(tx.Fee)
	switch tx.Type {
	case Buy:
		return q.Mul(price).Add(fee)
	case Sell:
		return q.Mul(price).Sub(fee).Neg()
	case Transfer:
		// signed quantity, no fee on transfers.
		return q.Mul(price)
	case Deposit, Withdraw, Dividend, Fee:
		return decimal.Zero
	default:
		panic("unhandled transaction type " + tx.Type.String())
	}
}

// quoteSeries indexes dated quotes with a positive price per symbol and day.
// Quotes of the same day are recorded in input order, so the last one wins.
func quoteSeries(quotes []QuoteSnapshot) map[string]*date.Series[decimal.Decimal] {
	series := make(map[string]*date.Series[decimal.Decimal])
	for _, q := range quotes {
		price, ok := positive(q.Price)
		if !ok || q.AsOf == nil {
			continue
		}
		s, ok := series[q.SymbolID]
		if !ok {
			s = new(date.Series[decimal.Decimal])
			series[q.SymbolID] = s
		}
		s.Set(date.Of(*q.AsOf), price)
	}
	return series
}
