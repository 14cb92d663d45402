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

type metricsCmd struct {
	portfolio string
	output
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display the totals of a portfolio" }
func (*metricsCmd) Usage() string {
	return `folio metrics -p <portfolio> [-json | -q <jsonpath>] [-raw]

  Displays the equity, cost, unrealized and realized gains of a portfolio in
  the base currency. The daily gain is an estimate derived from the total
  unrealized gain, not a measure of the last day's move.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id")
	c.output.SetFlags(f)
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		fmt.Fprintf(os.Stderr, "Error computing metrics: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *metricsCmd) run(w io.Writer, ds *Dataset, engine *folio.Engine) error {
	metrics, err := engine.Metrics(c.portfolio)
	if err != nil {
		return err
	}
	return c.print(w, metrics, func() string {
		p := portfolioOrID(ds, c.portfolio)
		return renderer.RenderMetrics(renderer.NewHoldings(p, engine.BaseCurrency(), engine.Method(), nil, metrics))
	})
}
