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

type consolidatedCmd struct {
	output
}

func (*consolidatedCmd) Name() string { return "consolidated" }
func (*consolidatedCmd) Synopsis() string {
	return "display the positions summed across all portfolios"
}
func (*consolidatedCmd) Usage() string {
	return `folio consolidated [-json | -q <jsonpath>] [-raw]

  Displays every symbol held in any portfolio of the dataset, with the total
  quantity, the blended cost and the share of each portfolio.
`
}

func (c *consolidatedCmd) SetFlags(f *flag.FlagSet) { c.output.SetFlags(f) }

func (c *consolidatedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, engine, err := OpenEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.run(os.Stdout, engine); err != nil {
		fmt.Fprintf(os.Stderr, "Error consolidating holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *consolidatedCmd) run(w io.Writer, engine *folio.Engine) error {
	holdings, err := engine.ConsolidatedHoldings(engine.Portfolios())
	if err != nil {
		return err
	}
	return c.print(w, holdings, func() string {
		return renderer.RenderConsolidated(renderer.NewConsolidated(engine.BaseCurrency(), engine.Method(), holdings))
	})
}
