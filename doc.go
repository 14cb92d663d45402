// Package folio values investment portfolios from their trades, the latest
// market quotes and exchange rates.
//
// The core functionalities are:
//   - Lot accounting: replaying buys, sells and transfers of a symbol into
//     open lots with a cost basis method (average cost, FIFO, LIFO or HIFO),
//     and the profit realized by disposals.
//   - Currency conversion: resolving the rate between a trade currency and the
//     base currency from rate snapshots, with graceful fallbacks.
//   - Holdings and metrics: valuing the open positions of a portfolio and
//     splitting unrealized profit into its price and currency parts.
//   - Consolidation: summing the positions of several portfolios per symbol.
//   - History: a day by day series of the cash invested and of the market
//     value, suitable for charting.
//
// An Engine is built once over a Dataset and then answers every question as a
// pure function of it. Inputs are plain records supplied by the persistence
// and market data layers; fetching them is not part of this package.
//
// This package is the foundation of the `folio` command-line tool.
package folio
