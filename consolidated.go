package folio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PortfolioContribution is the part of a consolidated holding held in one
// portfolio.
type PortfolioContribution struct {
	PortfolioID string          `json:"portfolioId"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgCost     decimal.Decimal `json:"avgCost"`     // base currency
	MarketValue decimal.Decimal `json:"marketValue"` // base currency
}

// ConsolidatedHolding is the position in one symbol summed across portfolios.
type ConsolidatedHolding struct {
	SymbolID     string `json:"symbolId"`
	Ticker       string `json:"ticker"`
	Name         string `json:"name"`
	AssetType    string `json:"assetType"`
	Currency     string `json:"currency"`
	BaseCurrency string `json:"baseCurrency"`

	TotalQuantity       decimal.Decimal `json:"totalQuantity"`
	TotalCostBasisTrade decimal.Decimal `json:"totalCostBasisTrade"`
	TotalCostBasis      decimal.Decimal `json:"totalCostBasis"`
	BlendedAvgCostTrade decimal.Decimal `json:"blendedAvgCostTrade"`
	BlendedAvgCost      decimal.Decimal `json:"blendedAvgCost"`

	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	CurrentFxRate decimal.Decimal `json:"currentFxRate"` // weighted by trade currency market value

	TotalMarketValueTrade decimal.Decimal `json:"totalMarketValueTrade"`
	TotalMarketValue      decimal.Decimal `json:"totalMarketValue"`

	UnrealizedPL      decimal.Decimal `json:"unrealizedPL"`
	PriceUnrealizedPL decimal.Decimal `json:"priceUnrealizedPL"`
	FxUnrealizedPL    decimal.Decimal `json:"fxUnrealizedPL"`

	AllocationPercent decimal.Decimal `json:"allocationPercent"`

	Portfolios []PortfolioContribution `json:"portfolios"`
}

// ConsolidatedHoldings sums the holdings of several portfolios per symbol,
// largest market value first.
func (e *Engine) ConsolidatedHoldings(portfolios []Portfolio) ([]ConsolidatedHolding, error) {
	if portfolios == nil {
		return nil, invalid("portfolios collection is missing")
	}
	var order []string
	bySymbol := make(map[string]*ConsolidatedHolding)
	weightedFx := make(map[string]decimal.Decimal)

	for _, p := range portfolios {
		holdings, err := e.Holdings(p.ID)
		if err != nil {
			return nil, err
		}
		for _, h := range holdings {
			c, ok := bySymbol[h.SymbolID]
			if !ok {
				c = &ConsolidatedHolding{
					SymbolID:     h.SymbolID,
					Ticker:       h.Ticker,
					Name:         h.Name,
					AssetType:    h.AssetType,
					Currency:     h.Currency,
					BaseCurrency: h.BaseCurrency,
					CurrentPrice: h.CurrentPrice,
					Portfolios:   []PortfolioContribution{},
				}
				bySymbol[h.SymbolID] = c
				order = append(order, h.SymbolID)
			}
			c.TotalQuantity = c.TotalQuantity.Add(h.Quantity)
			c.TotalCostBasisTrade = c.TotalCostBasisTrade.Add(h.CostBasisTrade)
			c.TotalCostBasis = c.TotalCostBasis.Add(h.CostBasis)
			c.TotalMarketValueTrade = c.TotalMarketValueTrade.Add(h.MarketValueTrade)
			c.TotalMarketValue = c.TotalMarketValue.Add(h.MarketValueBase)
			c.UnrealizedPL = c.UnrealizedPL.Add(h.UnrealizedPL)
			c.PriceUnrealizedPL = c.PriceUnrealizedPL.Add(h.PriceUnrealizedPL)
			c.FxUnrealizedPL = c.FxUnrealizedPL.Add(h.FxUnrealizedPL)
			weightedFx[h.SymbolID] = weightedFx[h.SymbolID].Add(h.CurrentFxRate.Mul(h.MarketValueTrade))
			if c.CurrentFxRate.IsZero() {
				c.CurrentFxRate = h.CurrentFxRate // used when no market value can weight the rates
			}
			c.Portfolios = append(c.Portfolios, PortfolioContribution{
				PortfolioID: p.ID,
				Name:        p.Name,
				Quantity:    h.Quantity,
				AvgCost:     h.AvgCostBase,
				MarketValue: h.MarketValueBase,
			})
		}
	}

	out := make([]ConsolidatedHolding, 0, len(order))
	for _, id := range order {
		c := bySymbol[id]
		if !c.TotalMarketValueTrade.IsZero() {
			c.CurrentFxRate = weightedFx[id].Div(c.TotalMarketValueTrade)
		}
		c.BlendedAvgCost = div(c.TotalCostBasis, c.TotalQuantity)
		c.BlendedAvgCostTrade = div(c.TotalCostBasisTrade, c.TotalQuantity)
		out = append(out, *c)
	}
	allocate(out,
		func(c *ConsolidatedHolding) decimal.Decimal { return c.TotalMarketValue },
		func(c *ConsolidatedHolding, pct decimal.Decimal) { c.AllocationPercent = pct },
	)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMarketValue.GreaterThan(out[j].TotalMarketValue)
	})
	return out, nil
}
