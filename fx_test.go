package folio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		snaps    []FxRateSnapshot
		fallback float64
		want     string
	}{
		{"same currency", "EUR", "EUR", []FxRateSnapshot{{BaseCurrency: "EUR", QuoteCurrency: "EUR", Rate: 3}}, 5, "1"},
		{"empty currency", "", "EUR", nil, 5, "1"},
		{"direct", "AAA", "BBB", []FxRateSnapshot{{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 2}}, 0, "2"},
		{"inverse", "AAA", "BBB", []FxRateSnapshot{{BaseCurrency: "BBB", QuoteCurrency: "AAA", Rate: 0.5}}, 0, "2"},
		{"fallback", "AAA", "BBB", nil, 3, "3"},
		{"unity", "AAA", "BBB", nil, 0, "1"},
		{"negative fallback", "AAA", "BBB", nil, -3, "1"},
		{"NaN fallback", "AAA", "BBB", nil, math.NaN(), "1"},
		{"case insensitive", "usd", "Eur", []FxRateSnapshot{{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: 0.9}}, 0, "0.9"},
		{"zero rate skipped", "AAA", "BBB", []FxRateSnapshot{
			{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 0},
			{BaseCurrency: "BBB", QuoteCurrency: "AAA", Rate: 4},
		}, 0, "0.25"},
		{"direct before inverse", "AAA", "BBB", []FxRateSnapshot{
			{BaseCurrency: "BBB", QuoteCurrency: "AAA", Rate: 4},
			{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 2},
		}, 0, "2"},
		{"most recent", "AAA", "BBB", []FxRateSnapshot{
			{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 5},
			{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 2, AsOf: at("2024-01-01")},
			{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 3, AsOf: at("2024-02-01")},
			{BaseCurrency: "AAA", QuoteCurrency: "BBB", Rate: 4, AsOf: at("2024-02-01")},
		}, 0, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rate(tt.from, tt.to, tt.snaps, tt.fallback)
			assert.True(t, got.Equal(dec(tt.want)), "Rate() = %v want %v", got, tt.want)
		})
	}
}

func TestRateAsOf(t *testing.T) {
	snaps := []FxRateSnapshot{
		{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: 0.8, AsOf: at("2024-01-01")},
		{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: 0.9, AsOf: at("2024-06-01")},
	}
	assert.True(t, RateAsOf("USD", "EUR", snaps, 0, day("2024-03-01")).Equal(dec("0.8")))
	assert.True(t, RateAsOf("USD", "EUR", snaps, 0, day("2024-06-01")).Equal(dec("0.9")))
	assert.True(t, RateAsOf("USD", "EUR", snaps, 7, day("2023-01-01")).Equal(dec("7")))
}

func TestByRecency_DoesNotMutate(t *testing.T) {
	snaps := []FxRateSnapshot{
		{Rate: 1},
		{Rate: 2, AsOf: at("2024-01-01")},
	}
	sorted := byRecency(snaps)
	assert.Equal(t, 2.0, sorted[0].Rate)
	assert.Equal(t, 1.0, snaps[0].Rate)
}

func TestAcquisitionRate(t *testing.T) {
	snaps := []FxRateSnapshot{
		{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: 0.8, AsOf: at("2024-01-01")},
		{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: 0.9, AsOf: at("2024-06-01")},
	}
	tx := buy("s1", 1, 10, "2024-03-01")
	assert.True(t, acquisitionRate(tx, "USD", "EUR", snaps).Equal(dec("0.8")), "snapshot known on the trade date")

	tx.FxRate = 0.85
	assert.True(t, acquisitionRate(tx, "USD", "EUR", snaps).Equal(dec("0.85")), "rate recorded on the trade")

	tx.TradeCurrency = "EUR"
	assert.True(t, acquisitionRate(tx, "USD", "EUR", snaps).Equal(one), "same currency")

	tx.TradeCurrency, tx.FxRate = "", 0
	assert.True(t, acquisitionRate(tx, "USD", "EUR", snaps).Equal(dec("0.8")), "currency of the position")

	tx.TradeDate = day("2023-01-01")
	assert.True(t, acquisitionRate(tx, "USD", "EUR", snaps).Equal(one), "no rate known yet")
}
