package renderer

import (
	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

// Holdings is the holdings report of one portfolio.
type Holdings struct {
	// Portfolio name, or its id when it has none.
	Portfolio    string     `json:"portfolio"`
	BaseCurrency string     `json:"baseCurrency"`
	Method       string     `json:"method"`
	Metrics      Metrics    `json:"metrics"`
	Positions    []Position `json:"positions"`
}

// Metrics are the portfolio totals, in base currency.
type Metrics struct {
	TotalEquity     folio.Money   `json:"totalEquity"`
	TotalCost       folio.Money   `json:"totalCost"`
	TotalPL         folio.Money   `json:"totalPL"`
	TotalPLPercent  folio.Percent `json:"totalPLPercent"`
	DailyPL         folio.Money   `json:"dailyPL"`
	DailyPLPercent  folio.Percent `json:"dailyPLPercent"`
	TotalRealizedPL folio.Money   `json:"totalRealizedPL"`
	Positions       int           `json:"positions"`
}

// Position is one open holding. Prices are in the trade currency, values in
// the base currency.
type Position struct {
	Ticker       string          `json:"ticker"`
	Name         string          `json:"name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgCost      folio.Money     `json:"avgCost"`
	Price        folio.Money     `json:"price"`
	HasQuote     bool            `json:"hasQuote"`
	MarketValue  folio.Money     `json:"marketValue"`
	UnrealizedPL folio.Money     `json:"unrealizedPL"`
	PricePL      folio.Money     `json:"pricePL"`
	FxPL         folio.Money     `json:"fxPL"`
	Return       folio.Percent   `json:"return"`
	Allocation   folio.Percent   `json:"allocation"`
}

// NewHoldings builds the holdings report of portfolio p.
func NewHoldings(p folio.Portfolio, base string, method folio.CostBasisMethod, holdings []folio.Holding, m folio.PortfolioMetrics) *Holdings {
	r := &Holdings{
		Portfolio:    displayName(p),
		BaseCurrency: base,
		Method:       method.String(),
		Metrics:      NewMetrics(base, m),
		Positions:    make([]Position, 0, len(holdings)),
	}
	for _, h := range holdings {
		r.Positions = append(r.Positions, Position{
			Ticker:       h.Ticker,
			Name:         h.Name,
			Quantity:     h.Quantity,
			AvgCost:      folio.M(h.AvgCostTrade, h.Currency),
			Price:        folio.M(h.CurrentPrice, h.Currency),
			HasQuote:     h.HasQuote,
			MarketValue:  folio.M(h.MarketValueBase, base),
			UnrealizedPL: folio.M(h.UnrealizedPL, base),
			PricePL:      folio.M(h.PriceUnrealizedPL, base),
			FxPL:         folio.M(h.FxUnrealizedPL, base),
			Return:       folio.P(h.UnrealizedPLPercent),
			Allocation:   folio.P(h.AllocationPercent),
		})
	}
	return r
}

// NewMetrics converts portfolio totals for display.
func NewMetrics(base string, m folio.PortfolioMetrics) Metrics {
	return Metrics{
		TotalEquity:     folio.M(m.TotalEquity, base),
		TotalCost:       folio.M(m.TotalCost, base),
		TotalPL:         folio.M(m.TotalPL, base),
		TotalPLPercent:  folio.P(m.TotalPLPercent),
		DailyPL:         folio.M(m.DailyPL, base),
		DailyPLPercent:  folio.P(m.DailyPLPercent),
		TotalRealizedPL: folio.M(m.TotalRealizedPL, base),
		Positions:       m.Positions,
	}
}

// RenderHoldings renders the holdings report with its metrics.
func RenderHoldings(h *Holdings) string {
	partials := map[string]string{
		"holdings_title":     "holdings_title.md",
		"holdings_metrics":   "holdings_metrics.md",
		"holdings_positions": "holdings_positions.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, h)
}

// RenderMetrics renders the portfolio totals only.
func RenderMetrics(h *Holdings) string {
	partials := map[string]string{
		"holdings_title":   "holdings_title.md",
		"holdings_metrics": "holdings_metrics.md",
	}
	return renderTemplate("metrics", "metrics.md", partials, h)
}

func displayName(p folio.Portfolio) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
