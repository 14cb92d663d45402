package folio

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbols(ids ...string) []Symbol {
	s := make([]Symbol, len(ids))
	for i, id := range ids {
		s[i] = Symbol{ID: id, Ticker: "T" + id, Name: "Name " + id, AssetType: "STOCK", QuoteCurrency: "USD"}
	}
	return s
}

func newTestEngine(t *testing.T, data Dataset, method CostBasisMethod, base string) *Engine {
	t.Helper()
	if data.Symbols == nil {
		data.Symbols = []Symbol{}
	}
	if data.Transactions == nil {
		data.Transactions = []Transaction{}
	}
	e, err := NewEngine(data, method, base)
	require.NoError(t, err)
	return e
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s = %v want %v", field, got, want)
}

func TestHoldings_ForeignCurrency(t *testing.T) {
	b := buy("s1", 10, 100, "2024-01-01")
	b.FxRate = 0.8
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{b},
		Symbols:      symbols("s1"),
		Quotes:       []QuoteSnapshot{{SymbolID: "s1", Price: 120, AsOf: at("2024-02-01")}},
		FxRates:      []FxRateSnapshot{{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: 0.9, AsOf: at("2024-02-01")}},
	}, FIFO, "eur")

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	h := holdings[0]

	assert.Equal(t, "Ts1", h.Ticker)
	assert.Equal(t, "USD", h.Currency)
	assert.Equal(t, "EUR", h.BaseCurrency)
	assert.True(t, h.HasQuote)
	assertDecimal(t, "10", h.Quantity, "Quantity")
	assertDecimal(t, "100", h.AvgCostTrade, "AvgCostTrade")
	assertDecimal(t, "80", h.AvgCostBase, "AvgCostBase")
	assertDecimal(t, "1000", h.CostBasisTrade, "CostBasisTrade")
	assertDecimal(t, "800", h.CostBasis, "CostBasis")
	assertDecimal(t, "120", h.CurrentPrice, "CurrentPrice")
	assertDecimal(t, "0.9", h.CurrentFxRate, "CurrentFxRate")
	assertDecimal(t, "1200", h.MarketValueTrade, "MarketValueTrade")
	assertDecimal(t, "1080", h.MarketValueBase, "MarketValueBase")
	assertDecimal(t, "280", h.UnrealizedPL, "UnrealizedPL")
	assertDecimal(t, "180", h.PriceUnrealizedPL, "PriceUnrealizedPL")
	assertDecimal(t, "100", h.FxUnrealizedPL, "FxUnrealizedPL")
	assertDecimal(t, "35", h.UnrealizedPLPercent, "UnrealizedPLPercent")
	assertDecimal(t, "100", h.AllocationPercent, "AllocationPercent")
	require.Len(t, h.Lots, 1)
	assertDecimal(t, "0.8", h.Lots[0].FxRate, "Lots[0].FxRate")
}

func TestHoldings_MissingQuote(t *testing.T) {
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{buy("s1", 4, 25, "2024-01-01")},
		Symbols:      symbols("s1"),
		Quotes:       []QuoteSnapshot{{SymbolID: "s1", Price: 0}, {SymbolID: "s1", Price: -3}},
	}, AverageCost, "USD")

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	h := holdings[0]
	assert.False(t, h.HasQuote)
	assertDecimal(t, "25", h.CurrentPrice, "CurrentPrice")
	assertDecimal(t, "0", h.UnrealizedPL, "UnrealizedPL")
	assertDecimal(t, "0", h.UnrealizedPLPercent, "UnrealizedPLPercent")
}

func TestHoldings_LatestQuote(t *testing.T) {
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{buy("s1", 1, 10, "2024-01-01")},
		Symbols:      symbols("s1"),
		Quotes: []QuoteSnapshot{
			{SymbolID: "s1", Price: 99},
			{SymbolID: "s1", Price: 12, AsOf: at("2024-03-01")},
			{SymbolID: "s1", Price: 11, AsOf: at("2024-02-01")},
			{SymbolID: "s1", Price: 13, AsOf: at("2024-03-01")},
		},
	}, FIFO, "USD")

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	assertDecimal(t, "12", holdings[0].CurrentPrice, "CurrentPrice")
}

func TestHoldings_UnknownSymbol(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{
			buy("ghost", 1, 10, "2024-01-01"),
			buy("s1", 2, 10, "2024-01-01"),
		},
		Symbols: symbols("s1"),
	}, FIFO, "USD").WithLogger(zerolog.New(&logs))

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "s1", holdings[0].SymbolID)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"symbol_id":"ghost"`)
	assert.Contains(t, logs.String(), `"portfolio_id":"p1"`)
}

func TestHoldings_ClosedAndCashIgnored(t *testing.T) {
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{
			buy("s1", 2, 10, "2024-01-01"),
			sell("s1", 2, 12, "2024-01-02"),
			{PortfolioID: "p1", Type: Deposit, Quantity: 100, TradeDate: day("2024-01-01")},
			in("p2", buy("s2", 1, 10, "2024-01-01")),
		},
		Symbols: symbols("s1", "s2"),
	}, LIFO, "USD")

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	assert.NotNil(t, holdings)
	assert.Empty(t, holdings)
}

func TestHoldings_Allocation(t *testing.T) {
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{
			buy("s1", 1, 10, "2024-01-01"),
			buy("s2", 3, 7, "2024-01-01"),
			buy("s3", 2, 1.5, "2024-01-01"),
		},
		Symbols: symbols("s1", "s2", "s3"),
		Quotes:  []QuoteSnapshot{{SymbolID: "s1", Price: 13.37}},
	}, HIFO, "USD")

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	require.Len(t, holdings, 3)
	sum := decimal.Zero
	for i, h := range holdings {
		sum = sum.Add(h.AllocationPercent)
		if i > 0 {
			assert.True(t, holdings[i-1].MarketValueBase.GreaterThanOrEqual(h.MarketValueBase), "sorted by market value")
		}
	}
	assert.InDelta(t, 100, sum.InexactFloat64(), 1e-9)
	assert.Equal(t, "s2", holdings[0].SymbolID)
}

func TestHoldings_AllocationZeroValue(t *testing.T) {
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{buy("s1", 1, 0, "2024-01-01"), buy("s2", 1, 0, "2024-01-01")},
		Symbols:      symbols("s1", "s2"),
	}, FIFO, "USD")

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	for _, h := range holdings {
		assert.True(t, h.AllocationPercent.IsZero())
	}
}

// TestEngine_Idempotent calls every calculator twice over several open
// positions and compares the results.
func TestEngine_Idempotent(t *testing.T) {
	b := buy("s1", 10, 100, "2024-01-01")
	b.TradeCurrency = "EUR"
	e := newTestEngine(t, Dataset{
		Transactions: append(referenceSequence(), b,
			buy("s3", 3, 7, "2024-02-15"),
			buy("s4", 2.5, 11, "2024-03-10"),
			in("p2", buy("s2", 1, 1, "2024-01-01")),
			in("p2", buy("s3", 4, 8, "2024-01-20")),
		),
		Symbols: symbols("s1", "s2", "s3", "s4"),
		Quotes: []QuoteSnapshot{
			{SymbolID: "s1", Price: 130, AsOf: at("2024-05-01")},
			{SymbolID: "s3", Price: 9.25, AsOf: at("2024-04-01")},
		},
		FxRates: []FxRateSnapshot{{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: 1.1}},
	}, HIFO, "USD")
	end := day("2024-05-01")

	for _, method := range []func() (any, error){
		func() (any, error) { return e.Holdings("p1") },
		func() (any, error) { return e.Metrics("p1") },
		func() (any, error) { return e.ConsolidatedHoldings([]Portfolio{{ID: "p1"}, {ID: "p2"}}) },
		func() (any, error) { return e.History("p1", HistoryOptions{EndDate: &end}) },
	} {
		first, err := method()
		require.NoError(t, err)
		second, err := method()
		require.NoError(t, err)
		if diff := cmp.Diff(first, second, decimals); diff != "" {
			t.Errorf("second call differs (-first +second):\n%s", diff)
		}
		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestHoldings_EmptyPortfolioID(t *testing.T) {
	e := newTestEngine(t, Dataset{}, FIFO, "")
	assert.Equal(t, DefaultBaseCurrency, e.BaseCurrency())
	_, err := e.Holdings("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
