package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	portfolio string
	end       string
	locale    string
	output
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily net investment and value of a portfolio" }
func (*historyCmd) Usage() string {
	return `folio history -p <portfolio> [-end <yyyy-mm-dd>] [-locale <tag>] [-json | -q <jsonpath>] [-raw]

  Replays the trades of a portfolio day by day, from its first trade up to
  the end date, and displays for each day the net cash invested so far and
  the market value of the positions held. Prices are not converted between
  currencies.

Usage Examples:
# Last point only, as JSON.
$ folio history -p main -q '$[-1:]'
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id")
	f.StringVar(&c.end, "end", "", "Last day of the history (defaults to today)")
	f.StringVar(&c.locale, "locale", "en-US", "Locale of the displayed dates (BCP 47)")
	c.output.SetFlags(f)
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	ds, engine, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.run(os.Stdout, ds, engine, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error reconstructing history: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *historyCmd) options() (folio.HistoryOptions, error) {
	opts := folio.HistoryOptions{Locale: c.locale}
	if c.end != "" {
		on, err := date.Parse(c.end)
		if err != nil {
			return opts, err
		}
		end := on.Time()
		opts.EndDate = &end
	}
	return opts, nil
}

func (c *historyCmd) run(w io.Writer, ds *Dataset, engine *folio.Engine, opts folio.HistoryOptions) error {
	points, err := engine.History(c.portfolio, opts)
	if err != nil {
		return err
	}
	return c.print(w, points, func() string {
		p := portfolioOrID(ds, c.portfolio)
		return renderer.RenderHistory(renderer.NewHistory(p, ds.tradeCurrency(c.portfolio), points))
	})
}

