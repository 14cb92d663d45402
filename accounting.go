package folio

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Dataset holds the records supplied by the persistence and market data
// layers. The engine treats it as a read-only snapshot.
type Dataset struct {
	Portfolios   []Portfolio      `json:"portfolios"`
	Transactions []Transaction    `json:"transactions"`
	Symbols      []Symbol         `json:"symbols"`
	Quotes       []QuoteSnapshot  `json:"quotes"`
	FxRates      []FxRateSnapshot `json:"fxRates"`
}

// Engine values portfolios from a Dataset with one cost basis method and one
// base currency.
//
// An Engine is immutable once created: every method is a pure function of its
// inputs, and an Engine can be shared by concurrent callers.
type Engine struct {
	data   Dataset
	method CostBasisMethod
	base   string
	log    zerolog.Logger

	symbols map[string]Symbol
	prices  map[string]decimal.Decimal // latest quote per symbol
	fx      []FxRateSnapshot           // most recent first
}

// NewEngine creates an engine over data. An empty base currency means
// DefaultBaseCurrency.
func NewEngine(data Dataset, method CostBasisMethod, baseCurrency string) (*Engine, error) {
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	base := normalizeCurrency(baseCurrency)
	if base == "" {
		base = DefaultBaseCurrency
	}
	e := &Engine{
		data:    data,
		method:  method,
		base:    base,
		log:     zerolog.Nop(),
		symbols: make(map[string]Symbol, len(data.Symbols)),
		prices:  latestPrices(data.Quotes),
		fx:      byRecency(data.FxRates),
	}
	for _, s := range data.Symbols {
		e.symbols[s.ID] = s
	}
	return e, nil
}

// WithLogger returns a shallow copy of the engine reporting soft warnings to l.
func (e *Engine) WithLogger(l zerolog.Logger) *Engine {
	cp := *e
	cp.log = l.With().Str("component", "folio").Str("method", e.method.String()).Logger()
	return &cp
}

// Method returns the cost basis method.
func (e *Engine) Method() CostBasisMethod { return e.method }

// BaseCurrency returns the reporting currency.
func (e *Engine) BaseCurrency() string { return e.base }

// Portfolios returns the portfolios declared in the dataset.
func (e *Engine) Portfolios() []Portfolio { return e.data.Portfolios }

// latestPrices returns the most recent usable quote per symbol.
func latestPrices(quotes []QuoteSnapshot) map[string]decimal.Decimal {
	type latest struct {
		price decimal.Decimal
		quote QuoteSnapshot
	}
	found := make(map[string]latest)
	for _, q := range quotes {
		price, ok := positive(q.Price)
		if !ok {
			continue
		}
		if prev, seen := found[q.SymbolID]; seen && !moreRecent(q, prev.quote) {
			continue
		}
		found[q.SymbolID] = latest{price, q}
	}
	prices := make(map[string]decimal.Decimal, len(found))
	for id, l := range found {
		prices[id] = l.price
	}
	return prices
}

// moreRecent reports whether a was observed strictly after b. A dated quote is
// more recent than an undated one.
func moreRecent(a, b QuoteSnapshot) bool {
	switch {
	case a.AsOf == nil:
		return false
	case b.AsOf == nil:
		return true
	default:
		return a.AsOf.After(*b.AsOf)
	}
}
