package renderer

import (
	"github.com/etnz/folio"
)

// History is the daily series of a portfolio.
type History struct {
	Portfolio string         `json:"portfolio"`
	Currency  string         `json:"currency"`
	Points    []HistoryPoint `json:"points"`
}

// HistoryPoint is a day of the series.
type HistoryPoint struct {
	Date  string      `json:"date"`
	Cost  folio.Money `json:"cost"`
	Value folio.Money `json:"value"`
	Gain  folio.Money `json:"gain"`
}

// NewHistory builds the history report. The series carries no currency
// conversion, amounts are labeled with currency.
func NewHistory(p folio.Portfolio, currency string, points []folio.PortfolioHistoryPoint) *History {
	h := &History{
		Portfolio: displayName(p),
		Currency:  currency,
		Points:    make([]HistoryPoint, 0, len(points)),
	}
	for _, pt := range points {
		h.Points = append(h.Points, HistoryPoint{
			Date:  pt.Date,
			Cost:  folio.M(pt.Cost, currency),
			Value: folio.M(pt.Value, currency),
			Gain:  folio.M(pt.Value.Sub(pt.Cost), currency),
		})
	}
	return h
}

// RenderHistory renders the history report.
func RenderHistory(h *History) string {
	return renderTemplate("history", "history.md", nil, h)
}
