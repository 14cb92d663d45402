package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	portfolio string
	output
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the open positions of a portfolio" }
func (*holdingsCmd) Usage() string {
	return `folio holdings -p <portfolio> [-json | -q <jsonpath>] [-raw]

  Displays the open positions of a portfolio valued at the latest quotes and
  exchange rates, with their unrealized gains split into price and currency
  effects, followed by the portfolio totals.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id")
	c.output.SetFlags(f)
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}
	ds, engine, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.run(os.Stdout, ds, engine); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating holdings report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *holdingsCmd) run(w io.Writer, ds *Dataset, engine *folio.Engine) error {
	holdings, err := engine.Holdings(c.portfolio)
	if err != nil {
		return err
	}
	metrics, err := engine.Metrics(c.portfolio)
	if err != nil {
		return err
	}
	return c.print(w, holdings, func() string {
		p := portfolioOrID(ds, c.portfolio)
		return renderer.RenderHoldings(renderer.NewHoldings(p, engine.BaseCurrency(), engine.Method(), holdings, metrics))
	})
}

// portfolioOrID returns the declared portfolio, or one with no name.
func portfolioOrID(ds *Dataset, id string) folio.Portfolio {
	if p, ok := ds.Portfolio(id); ok {
		return p
	}
	return folio.Portfolio{ID: id}
}
