package folio

import (
	"fmt"
	"slices"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Lot is a quantity of a symbol acquired together, at one unit cost.
type Lot struct {
	ID       int             `json:"id"` // sequence number of the acquisition within the replay
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost"` // in Currency
	FxRate   decimal.Decimal `json:"fxRate"`   // Currency to base currency, at acquisition
	Currency string          `json:"currency"`
	Acquired date.Date       `json:"acquired,omitzero"`
}

// cost returns the lot cost in trade and in base currency.
func (l Lot) cost() (trade, base decimal.Decimal) {
	trade = l.Quantity.Mul(l.UnitCost)
	return trade, trade.Mul(l.FxRate)
}

type lots []Lot

// pick returns the index of the lot a disposal consumes next.
func (l lots) pick(method CostBasisMethod) int {
	switch method {
	case FIFO:
		return 0
	case LIFO:
		return len(l) - 1
	case HIFO:
		best := 0
		for i := 1; i < len(l); i++ {
			// strictly greater: the first of equally priced lots wins.
			if l[i].UnitCost.GreaterThan(l[best].UnitCost) {
				best = i
			}
		}
		return best
	case AverageCost:
		panic("average cost has no discrete lots")
	default:
		panic(fmt.Sprintf("unknown cost basis method %d", method))
	}
}

// LotResult is the state of a position after replaying its trades.
type LotResult struct {
	Lots         []Lot           `json:"lots"`
	Realized     decimal.Decimal `json:"realized"`     // profit realized by disposals, in trade currency
	RealizedBase decimal.Decimal `json:"realizedBase"` // same, in base currency
}

// Quantity returns the quantity held across all lots.
func (r LotResult) Quantity() decimal.Decimal {
	q := decimal.Zero
	for _, l := range r.Lots {
		q = q.Add(l.Quantity)
	}
	return q
}

// Cost returns the cost basis held across all lots, in trade and in base
// currency. Base cost uses each lot's own acquisition rate.
func (r LotResult) Cost() (trade, base decimal.Decimal) {
	trade, base = decimal.Zero, decimal.Zero
	for _, l := range r.Lots {
		t, b := l.cost()
		trade, base = trade.Add(t), base.Add(b)
	}
	return trade, base
}

// book replays the trades of a single symbol.
//
// AverageCost keeps running totals only. The other methods keep the open lots
// in acquisition order and consume them as disposals happen.
type book struct {
	method   CostBasisMethod
	currency string

	lots   lots
	nextID int

	quantity  decimal.Decimal
	costTrade decimal.Decimal
	costBase  decimal.Decimal

	realized     decimal.Decimal
	realizedBase decimal.Decimal
}

func newBook(method CostBasisMethod, currency string) *book {
	return &book{method: method, currency: currency}
}

// apply replays one transaction with its resolved rate to the base currency.
func (b *book) apply(tx Transaction, fx decimal.Decimal) {
	q, price, fee := num(tx.Quantity), num(tx.UnitPrice), num(tx.Fee)
	on := date.Of(tx.TradeDate)
	switch tx.Type {
	case Buy:
		b.acquire(q, price, fx, on)
	case Sell:
		b.dispose(q, price, fee, fx)
	case Transfer:
		if q.IsNegative() {
			b.dispose(q.Neg(), price, decimal.Zero, fx)
		} else {
			b.acquire(q, price, fx, on)
		}
	case Deposit, Withdraw, Dividend, Fee:
		// cash movements do not change lots.
	default:
		panic(fmt.Sprintf("unhandled transaction type %v", tx.Type))
	}
}

// acquire opens a lot. Non positive quantities are ignored.
func (b *book) acquire(q, price, fx decimal.Decimal, on date.Date) {
	if !q.IsPositive() {
		return
	}
	cost := q.Mul(price)
	b.quantity = b.quantity.Add(q)
	b.costTrade = b.costTrade.Add(cost)
	b.costBase = b.costBase.Add(cost.Mul(fx))
	if b.method == AverageCost {
		return
	}
	b.nextID++
	b.lots = append(b.lots, Lot{
		ID:       b.nextID,
		Quantity: q,
		UnitCost: price,
		FxRate:   fx,
		Currency: b.currency,
		Acquired: on,
	})
}

// dispose removes up to q from the position and returns the quantity actually
// removed. Selling more than held stops when the position is exhausted.
func (b *book) dispose(q, price, fee, fx decimal.Decimal) decimal.Decimal {
	if !q.IsPositive() || !b.quantity.IsPositive() {
		return decimal.Zero
	}
	var sold, soldTrade, soldBase decimal.Decimal
	if b.method == AverageCost {
		sold = decimal.Min(q, b.quantity)
		// average costs are taken before the quantity changes.
		soldTrade = b.costTrade.Div(b.quantity).Mul(sold)
		soldBase = b.costBase.Div(b.quantity).Mul(sold)
	} else {
		sold, soldTrade, soldBase = b.consume(q)
	}

	b.quantity = b.quantity.Sub(sold)
	b.costTrade = b.costTrade.Sub(soldTrade)
	b.costBase = b.costBase.Sub(soldBase)
	if !b.quantity.IsPositive() {
		b.quantity, b.costTrade, b.costBase = decimal.Zero, decimal.Zero, decimal.Zero
	}

	proceeds := sold.Mul(price).Sub(fee)
	b.realized = b.realized.Add(proceeds.Sub(soldTrade))
	b.realizedBase = b.realizedBase.Add(proceeds.Mul(fx).Sub(soldBase))
	return sold
}

// consume takes q out of the lots following the book's method.
func (b *book) consume(q decimal.Decimal) (sold, trade, base decimal.Decimal) {
	remaining := q
	for remaining.IsPositive() && len(b.lots) > 0 {
		i := b.lots.pick(b.method)
		l := &b.lots[i]
		take := decimal.Min(remaining, l.Quantity)
		t := take.Mul(l.UnitCost)
		trade, base = trade.Add(t), base.Add(t.Mul(l.FxRate))
		sold = sold.Add(take)
		remaining = remaining.Sub(take)
		l.Quantity = l.Quantity.Sub(take)
		if !l.Quantity.IsPositive() {
			b.lots = slices.Delete(b.lots, i, i+1)
		}
	}
	return sold, trade, base
}

// costPerUnit returns the cost basis per unit held, in trade currency.
func (b *book) costPerUnit() decimal.Decimal { return div(b.costTrade, b.quantity) }

// result returns the surviving lots. AverageCost yields a single synthetic
// lot, or none when nothing is held.
func (b *book) result() LotResult {
	r := LotResult{Lots: []Lot{}, Realized: b.realized, RealizedBase: b.realizedBase}
	if b.method != AverageCost {
		for _, l := range b.lots {
			if l.Quantity.IsPositive() {
				r.Lots = append(r.Lots, l)
			}
		}
		return r
	}
	if !b.quantity.IsPositive() {
		return r
	}
	fx := one
	if !b.costTrade.IsZero() {
		fx = b.costBase.Div(b.costTrade)
	}
	r.Lots = append(r.Lots, Lot{
		ID:       1,
		Quantity: b.quantity,
		UnitCost: b.costTrade.Div(b.quantity),
		FxRate:   fx,
		Currency: b.currency,
	})
	return r
}

// ResolveLots replays the trades of a single symbol and returns the open lots
// left by the given cost basis method.
//
// Only Buy, Sell and Transfer transactions are considered; they are sorted by
// trade date, keeping input order for equal dates. fx returns the rate that
// converts a trade to the base currency; a nil fx means the trades are already
// in base currency. Every lot is tagged with currency.
func ResolveLots(txs []Transaction, method CostBasisMethod, fx func(Transaction) decimal.Decimal, currency string) LotResult {
	b := newBook(method, normalizeCurrency(currency))
	for _, tx := range newJournal(txs) {
		r := one
		if fx != nil {
			r = fx(tx)
		}
		b.apply(tx, r)
	}
	return b.result()
}

// CalculateAverageCost returns the cost per unit still held after replaying
// the trades of a single symbol, ignoring currencies. It is zero when nothing
// is held.
func CalculateAverageCost(txs []Transaction, method CostBasisMethod) decimal.Decimal {
	r := ResolveLots(txs, method, nil, "")
	trade, _ := r.Cost()
	return div(trade, r.Quantity())
}
