package folio

import (
	"sort"

	"github.com/etnz/folio/date"
)

// journal is the chronologically sorted list of trade transactions that lot
// accounting replays. Cash movements are not part of it.
type journal []Transaction

// newJournal keeps the trades (Buy, Sell, Transfer) of txs and sorts them by
// trade day, then by instant within a day. The day is taken in each trade's
// own location, the same key the cursor walks with. Trades at the same
// instant keep their input order.
func newJournal(txs []Transaction) journal {
	j := make(journal, 0, len(txs))
	for _, tx := range txs {
		if tx.Type.IsTrade() {
			j = append(j, tx)
		}
	}
	sort.SliceStable(j, func(a, b int) bool {
		da, db := date.Of(j[a].TradeDate), date.Of(j[b].TradeDate)
		if da != db {
			return da.Before(db)
		}
		return j[a].TradeDate.Before(j[b].TradeDate)
	})
	return j
}

// span returns the day range from the first trade to the last one.
func (j journal) span() (date.Range, bool) {
	if len(j) == 0 {
		return date.Range{}, false
	}
	return date.Range{From: date.Of(j[0].TradeDate), To: date.Of(j[len(j)-1].TradeDate)}, true
}

// cursor walks a journal one day at a time.
type cursor struct {
	j    journal
	next int
}

// until returns the trades dated on or before the given day that have not
// been returned yet.
func (c *cursor) until(on date.Date) []Transaction {
	start := c.next
	for c.next < len(c.j) && !date.Of(c.j[c.next].TradeDate).After(on) {
		c.next++
	}
	return c.j[start:c.next]
}
