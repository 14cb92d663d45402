package folio

import "github.com/shopspring/decimal"

// DailyPLApproximation is the share of the total unrealized P/L reported as
// the daily change. There is no intraday price source, so DailyPL and
// DailyPLPercent are placeholders derived from the totals and not a measure
// of the last day's move.
var DailyPLApproximation = decimal.New(1, -1)

// PortfolioMetrics summarizes the holdings of a portfolio, in base currency.
type PortfolioMetrics struct {
	TotalEquity     decimal.Decimal `json:"totalEquity"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalPL         decimal.Decimal `json:"totalPL"`
	TotalPLPercent  decimal.Decimal `json:"totalPLPercent"`
	DailyPL         decimal.Decimal `json:"dailyPL"`        // approximation, see DailyPLApproximation
	DailyPLPercent  decimal.Decimal `json:"dailyPLPercent"` // approximation, see DailyPLApproximation
	TotalRealizedPL decimal.Decimal `json:"totalRealizedPL"`
	Positions       int             `json:"positions"`
}

// Metrics sums holdings into portfolio totals. Realized P/L only covers the
// given holdings; Engine.Metrics also counts closed positions.
func Metrics(holdings []Holding) PortfolioMetrics {
	m := PortfolioMetrics{
		TotalEquity:     decimal.Zero,
		TotalCost:       decimal.Zero,
		TotalPL:         decimal.Zero,
		TotalRealizedPL: decimal.Zero,
		Positions:       len(holdings),
	}
	for _, h := range holdings {
		m.TotalEquity = m.TotalEquity.Add(h.MarketValueBase)
		m.TotalCost = m.TotalCost.Add(h.CostBasis)
		m.TotalPL = m.TotalPL.Add(h.UnrealizedPL)
		m.TotalRealizedPL = m.TotalRealizedPL.Add(h.RealizedPL)
	}
	m.TotalPLPercent = percentOf(m.TotalPL, m.TotalCost)
	m.DailyPL = m.TotalPL.Mul(DailyPLApproximation)
	m.DailyPLPercent = m.TotalPLPercent.Mul(DailyPLApproximation)
	return m
}

// Metrics returns the totals of a portfolio.
func (e *Engine) Metrics(portfolioID string) (PortfolioMetrics, error) {
	if portfolioID == "" {
		return PortfolioMetrics{}, invalid("empty portfolio id")
	}
	p := e.positions(portfolioID)
	m := Metrics(p.holdings)
	m.TotalRealizedPL = p.realized
	return m, nil
}
