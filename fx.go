package folio

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// rateSource is one step of the conversion chain. It reports the number of
// units of 'to' worth one unit of 'from', and whether it could tell.
type rateSource func(from, to string) (decimal.Decimal, bool)

// resolve walks the sources in order and returns the first rate found, or 1.
func resolve(from, to string, sources ...rateSource) decimal.Decimal {
	for _, source := range sources {
		if r, ok := source(from, to); ok {
			return r
		}
	}
	return one
}

// sameCurrency answers 1 when there is nothing to convert.
func sameCurrency(from, to string) (decimal.Decimal, bool) {
	if from == "" || to == "" || from == to {
		return one, true
	}
	return decimal.Zero, false
}

// direct looks for a from/to snapshot.
func direct(snaps []FxRateSnapshot) rateSource {
	return func(from, to string) (decimal.Decimal, bool) {
		for _, s := range snaps {
			if normalizeCurrency(s.BaseCurrency) == from && normalizeCurrency(s.QuoteCurrency) == to {
				if r, ok := positive(s.Rate); ok {
					return r, true
				}
			}
		}
		return decimal.Zero, false
	}
}

// inverse looks for a to/from snapshot and returns its reciprocal.
func inverse(snaps []FxRateSnapshot) rateSource {
	return func(from, to string) (decimal.Decimal, bool) {
		r, ok := direct(snaps)(to, from)
		if !ok {
			return decimal.Zero, false
		}
		return one.Div(r), true
	}
}

// fallback answers a caller supplied rate, when it is positive.
func fallback(rate decimal.Decimal) rateSource {
	return func(string, string) (decimal.Decimal, bool) {
		return rate, rate.IsPositive()
	}
}

// byRecency returns a copy of snaps, most recent first. Undated snapshots come
// last, and equally recent ones keep their input order.
func byRecency(snaps []FxRateSnapshot) []FxRateSnapshot {
	sorted := make([]FxRateSnapshot, len(snaps))
	copy(sorted, snaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].AsOf, sorted[j].AsOf
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return sorted
}

// asOf keeps the snapshots observed on or before t. Undated snapshots are
// kept: they are assumed to always have been valid.
func asOf(snaps []FxRateSnapshot, t time.Time) []FxRateSnapshot {
	var out []FxRateSnapshot
	for _, s := range snaps {
		if s.AsOf == nil || !s.AsOf.After(t) {
			out = append(out, s)
		}
	}
	return out
}

// rate is the decimal version of Rate.
func rate(tradeCcy, baseCcy string, snaps []FxRateSnapshot, fallbackRate decimal.Decimal) decimal.Decimal {
	snaps = byRecency(snaps)
	return resolve(normalizeCurrency(tradeCcy), normalizeCurrency(baseCcy),
		sameCurrency,
		direct(snaps),
		inverse(snaps),
		fallback(fallbackRate),
	)
}

// Rate returns how many units of baseCcy one unit of tradeCcy is worth.
//
// It answers 1 when both currencies are the same or either is empty. Otherwise
// it uses the most recent tradeCcy/baseCcy snapshot with a positive rate, then
// the reciprocal of the most recent baseCcy/tradeCcy one, then fallbackRate if
// it is positive, and finally 1. Currency codes are compared upper-cased and
// are not otherwise validated. A missing rate is never an error.
func Rate(tradeCcy, baseCcy string, snaps []FxRateSnapshot, fallbackRate float64) decimal.Decimal {
	return rate(tradeCcy, baseCcy, snaps, num(fallbackRate))
}

// RateAsOf is like Rate but ignores snapshots observed after t.
func RateAsOf(tradeCcy, baseCcy string, snaps []FxRateSnapshot, fallbackRate float64, t time.Time) decimal.Decimal {
	return rate(tradeCcy, baseCcy, asOf(snaps, t), num(fallbackRate))
}

// acquisitionRate resolves the rate at which a trade converts to the base
// currency: the rate recorded on the trade itself, or the most recent snapshot
// known on the trade date, or 1. Trades with no currency of their own are
// taken to be in fallbackCcy.
func acquisitionRate(tx Transaction, fallbackCcy, base string, snaps []FxRateSnapshot) decimal.Decimal {
	from := tx.currency()
	if from == "" {
		from = normalizeCurrency(fallbackCcy)
	}
	if r, ok := sameCurrency(from, base); ok {
		return r
	}
	if r, ok := positive(tx.FxRate); ok {
		return r
	}
	return rate(from, base, asOf(snaps, tx.TradeDate), decimal.Zero)
}
