package renderer

import (
	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

// Consolidated is the report of the positions summed across portfolios.
type Consolidated struct {
	BaseCurrency string         `json:"baseCurrency"`
	Method       string         `json:"method"`
	TotalValue   folio.Money    `json:"totalValue"`
	Symbols      []Aggregate    `json:"symbols"`
	Breakdown    []Contribution `json:"breakdown"`
}

// Aggregate is one symbol across portfolios.
type Aggregate struct {
	Ticker       string          `json:"ticker"`
	Quantity     decimal.Decimal `json:"quantity"`
	BlendedCost  folio.Money     `json:"blendedCost"`
	Price        folio.Money     `json:"price"`
	MarketValue  folio.Money     `json:"marketValue"`
	UnrealizedPL folio.Money     `json:"unrealizedPL"`
	PricePL      folio.Money     `json:"pricePL"`
	FxPL         folio.Money     `json:"fxPL"`
	Allocation   folio.Percent   `json:"allocation"`
	Portfolios   int             `json:"portfolios"`
}

// Contribution is the part of a symbol held by one portfolio.
type Contribution struct {
	Ticker      string          `json:"ticker"`
	Portfolio   string          `json:"portfolio"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgCost     folio.Money     `json:"avgCost"`
	MarketValue folio.Money     `json:"marketValue"`
}

// NewConsolidated builds the consolidated report.
func NewConsolidated(base string, method folio.CostBasisMethod, holdings []folio.ConsolidatedHolding) *Consolidated {
	r := &Consolidated{
		BaseCurrency: base,
		Method:       method.String(),
		Symbols:      make([]Aggregate, 0, len(holdings)),
		Breakdown:    make([]Contribution, 0),
	}
	total := decimal.Zero
	for _, c := range holdings {
		total = total.Add(c.TotalMarketValue)
		r.Symbols = append(r.Symbols, Aggregate{
			Ticker:       c.Ticker,
			Quantity:     c.TotalQuantity,
			BlendedCost:  folio.M(c.BlendedAvgCost, base),
			Price:        folio.M(c.CurrentPrice, c.Currency),
			MarketValue:  folio.M(c.TotalMarketValue, base),
			UnrealizedPL: folio.M(c.UnrealizedPL, base),
			PricePL:      folio.M(c.PriceUnrealizedPL, base),
			FxPL:         folio.M(c.FxUnrealizedPL, base),
			Allocation:   folio.P(c.AllocationPercent),
			Portfolios:   len(c.Portfolios),
		})
		for _, p := range c.Portfolios {
			r.Breakdown = append(r.Breakdown, Contribution{
				Ticker:      c.Ticker,
				Portfolio:   displayName(folio.Portfolio{ID: p.PortfolioID, Name: p.Name}),
				Quantity:    p.Quantity,
				AvgCost:     folio.M(p.AvgCost, base),
				MarketValue: folio.M(p.MarketValue, base),
			})
		}
	}
	r.TotalValue = folio.M(total, base)
	return r
}

// RenderConsolidated renders the consolidated report.
func RenderConsolidated(c *Consolidated) string {
	partials := map[string]string{
		"consolidated_symbols":   "consolidated_symbols.md",
		"consolidated_breakdown": "consolidated_breakdown.md",
	}
	return renderTemplate("consolidated", "consolidated.md", partials, c)
}
