package folio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is the open position of a portfolio in one symbol.
//
// Amounts suffixed Trade are in Currency, the others in BaseCurrency. Cost
// basis in base currency uses the rate of each lot at acquisition, market
// value uses the current rate.
type Holding struct {
	PortfolioID  string `json:"portfolioId"`
	SymbolID     string `json:"symbolId"`
	Ticker       string `json:"ticker"`
	Name         string `json:"name"`
	AssetType    string `json:"assetType"`
	Currency     string `json:"currency"`
	BaseCurrency string `json:"baseCurrency"`

	Quantity       decimal.Decimal `json:"quantity"`
	AvgCostTrade   decimal.Decimal `json:"avgCostTrade"`
	AvgCostBase    decimal.Decimal `json:"avgCostBase"`
	CostBasisTrade decimal.Decimal `json:"costBasisTrade"`
	CostBasis      decimal.Decimal `json:"costBasis"`

	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	HasQuote      bool            `json:"hasQuote"` // false when CurrentPrice fell back to AvgCostTrade
	CurrentFxRate decimal.Decimal `json:"currentFxRate"`

	MarketValueTrade decimal.Decimal `json:"marketValueTrade"`
	MarketValueBase  decimal.Decimal `json:"marketValueBase"`

	UnrealizedPL        decimal.Decimal `json:"unrealizedPL"`
	PriceUnrealizedPL   decimal.Decimal `json:"priceUnrealizedPL"`
	FxUnrealizedPL      decimal.Decimal `json:"fxUnrealizedPL"`
	UnrealizedPLPercent decimal.Decimal `json:"unrealizedPLPercent"`
	RealizedPL          decimal.Decimal `json:"realizedPL"`

	AllocationPercent decimal.Decimal `json:"allocationPercent"`

	Lots []Lot `json:"lots"`
}

// positions is the outcome of replaying a portfolio.
type positions struct {
	holdings []Holding
	realized decimal.Decimal // base currency, open and closed positions
}

// Holdings returns the open positions of a portfolio, largest market value
// first.
//
// Transactions without a symbol are cash movements and are ignored. Symbols
// that are not in the dataset are skipped with a warning.
func (e *Engine) Holdings(portfolioID string) ([]Holding, error) {
	if portfolioID == "" {
		return nil, invalid("empty portfolio id")
	}
	return e.positions(portfolioID).holdings, nil
}

func (e *Engine) positions(portfolioID string) positions {
	log := e.log.With().Str("portfolio_id", portfolioID).Logger()

	var order []string
	groups := make(map[string][]Transaction)
	for _, tx := range byPortfolio(e.data.Transactions, portfolioID) {
		if tx.SymbolID == "" {
			continue
		}
		if _, seen := groups[tx.SymbolID]; !seen {
			order = append(order, tx.SymbolID)
		}
		groups[tx.SymbolID] = append(groups[tx.SymbolID], tx)
	}

	p := positions{holdings: []Holding{}, realized: decimal.Zero}
	for _, id := range order {
		sym, ok := e.symbols[id]
		if !ok {
			log.Warn().Str("symbol_id", id).Int("transactions", len(groups[id])).Msg("unknown symbol, holding skipped")
			continue
		}
		h, open := e.holding(portfolioID, sym, groups[id])
		p.realized = p.realized.Add(h.RealizedPL)
		if !open {
			log.Debug().Str("symbol_id", id).Msg("closed position")
			continue
		}
		p.holdings = append(p.holdings, h)
	}

	allocate(p.holdings,
		func(h *Holding) decimal.Decimal { return h.MarketValueBase },
		func(h *Holding, pct decimal.Decimal) { h.AllocationPercent = pct },
	)
	sort.SliceStable(p.holdings, func(i, j int) bool {
		return p.holdings[i].MarketValueBase.GreaterThan(p.holdings[j].MarketValueBase)
	})
	return p
}

// holding values one symbol. It reports false when nothing is held.
func (e *Engine) holding(portfolioID string, sym Symbol, txs []Transaction) (Holding, bool) {
	ccy := tradeCurrency(txs, sym, e.base)
	lots := ResolveLots(txs, e.method, func(tx Transaction) decimal.Decimal {
		return acquisitionRate(tx, ccy, e.base, e.data.FxRates)
	}, ccy)

	h := Holding{
		PortfolioID:  portfolioID,
		SymbolID:     sym.ID,
		Ticker:       sym.Ticker,
		Name:         sym.Name,
		AssetType:    sym.AssetType,
		Currency:     ccy,
		BaseCurrency: e.base,
		RealizedPL:   lots.RealizedBase,
	}
	q := lots.Quantity()
	if !q.IsPositive() {
		return h, false
	}

	costTrade, costBase := lots.Cost()
	h.Quantity = q
	h.Lots = lots.Lots
	h.AvgCostTrade = costTrade.Div(q)
	h.AvgCostBase = costBase.Div(q)
	// equal to quantity times average cost, without the division rounding.
	h.CostBasisTrade = costTrade
	h.CostBasis = costBase

	h.CurrentPrice, h.HasQuote = e.prices[sym.ID]
	if !h.HasQuote {
		h.CurrentPrice = h.AvgCostTrade
	}
	historical := one
	if !costTrade.IsZero() {
		historical = costBase.Div(costTrade)
	}
	h.CurrentFxRate = rate(ccy, e.base, e.fx, historical)

	h.MarketValueTrade = q.Mul(h.CurrentPrice)
	if !h.HasQuote {
		h.MarketValueTrade = costTrade
	}
	h.MarketValueBase = h.MarketValueTrade.Mul(h.CurrentFxRate)
	h.UnrealizedPL = h.MarketValueBase.Sub(h.CostBasis)
	h.PriceUnrealizedPL = h.MarketValueTrade.Sub(h.CostBasisTrade).Mul(h.CurrentFxRate)
	h.FxUnrealizedPL = h.UnrealizedPL.Sub(h.PriceUnrealizedPL)
	h.UnrealizedPLPercent = percentOf(h.UnrealizedPL, h.CostBasis)
	return h, true
}

// tradeCurrency resolves the currency a symbol is traded in within a
// portfolio: the first currency recorded on its trades, else the symbol quote
// currency, else the base currency.
func tradeCurrency(txs []Transaction, sym Symbol, base string) string {
	for _, tx := range txs {
		if c := tx.currency(); c != "" {
			return c
		}
	}
	if c := normalizeCurrency(sym.QuoteCurrency); c != "" {
		return c
	}
	return base
}

// allocate sets every item's share of the total value, in percent. Shares are
// zero when the total is zero.
func allocate[T any](items []T, value func(*T) decimal.Decimal, set func(*T, decimal.Decimal)) {
	total := decimal.Zero
	for i := range items {
		total = total.Add(value(&items[i]))
	}
	for i := range items {
		set(&items[i], percentOf(value(&items[i]), total))
	}
}
