package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	s := sell("s1", 4, 150, "2024-01-03")
	s.Fee = 5
	e := newTestEngine(t, Dataset{
		Transactions: []Transaction{
			buy("s1", 10, 100, "2024-01-01"),
			s,
			buy("s2", 2, 50, "2024-01-01"),
			sell("s2", 2, 60, "2024-01-02"),
			buy("s3", 5, 20, "2024-01-01"),
		},
		Symbols: symbols("s1", "s2", "s3"),
		Quotes: []QuoteSnapshot{
			{SymbolID: "s1", Price: 110},
			{SymbolID: "s3", Price: 18},
		},
	}, FIFO, "USD")

	m, err := e.Metrics("p1")
	require.NoError(t, err)

	// s1: 6 at 100 now 110, s3: 5 at 20 now 18.
	assertDecimal(t, "750", m.TotalEquity, "TotalEquity")
	assertDecimal(t, "700", m.TotalCost, "TotalCost")
	assertDecimal(t, "50", m.TotalPL, "TotalPL")
	assert.InDelta(t, 7.142857, m.TotalPLPercent.InexactFloat64(), 1e-6)
	assertDecimal(t, "5", m.DailyPL, "DailyPL")
	assert.InDelta(t, 0.7142857, m.DailyPLPercent.InexactFloat64(), 1e-6)
	// 195 on s1 and 20 on the closed s2.
	assertDecimal(t, "215", m.TotalRealizedPL, "TotalRealizedPL")
	assert.Equal(t, 2, m.Positions)

	holdings, err := e.Holdings("p1")
	require.NoError(t, err)
	free := Metrics(holdings)
	assertDecimal(t, "195", free.TotalRealizedPL, "Metrics(holdings).TotalRealizedPL")
	assertDecimal(t, "750", free.TotalEquity, "Metrics(holdings).TotalEquity")
}

func TestMetrics_Empty(t *testing.T) {
	m := Metrics(nil)
	assert.True(t, m.TotalEquity.IsZero())
	assert.True(t, m.TotalPLPercent.IsZero())
	assert.True(t, m.DailyPLPercent.IsZero())
	assert.Equal(t, 0, m.Positions)

	e := newTestEngine(t, Dataset{}, FIFO, "USD")
	_, err := e.Metrics("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
