// Package cmd implements the folio command line tool.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

const (
	EnvDataset  = "FOLIO_DATASET"
	EnvMethod   = "FOLIO_METHOD"
	EnvCurrency = "FOLIO_CURRENCY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	datasetFile = flag.String("dataset", envOr(EnvDataset, "dataset.json"), "Path to the dataset file (JSON)")
	methodName  = flag.String("method", os.Getenv(EnvMethod), "Cost basis method (average, fifo, lifo, hifo). Defaults to the dataset method.")
	currency    = flag.String("currency", os.Getenv(EnvCurrency), "Base currency. Defaults to the dataset base currency.")
	Verbose     = flag.Bool("v", false, "Log debug messages on stderr")
)

// Commands are all the folio subcommands.
var Commands = []subcommands.Command{
	&holdingsCmd{},
	&metricsCmd{},
	&consolidatedCmd{},
	&historyCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "reports"
		if cmd.Name() == "topic" {
			group = "help"
		}
		c.Register(cmd, group)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Logger returns the stderr logger of the application.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// engineConfig is what it takes to build an engine, besides the dataset.
type engineConfig struct {
	method   string
	currency string
	log      zerolog.Logger
}

// newEngine builds the engine over ds. Empty method or currency fall back to
// the dataset ones.
func newEngine(ds *Dataset, cfg engineConfig) (*folio.Engine, error) {
	method, currency := ds.Method, ds.BaseCurrency
	if cfg.method != "" {
		m, err := folio.ParseCostBasisMethod(cfg.method)
		if err != nil {
			return nil, err
		}
		method = m
	}
	if cfg.currency != "" {
		currency = strings.ToUpper(cfg.currency)
	}
	e, err := folio.NewEngine(ds.Dataset, method, currency)
	if err != nil {
		return nil, fmt.Errorf("cannot create engine: %w", err)
	}
	return e.WithLogger(cfg.log), nil
}

// OpenEngine loads the dataset file and builds the engine from the global flags.
func OpenEngine() (*Dataset, *folio.Engine, error) {
	ds, err := LoadDataset(*datasetFile)
	if err != nil {
		return nil, nil, err
	}
	e, err := newEngine(ds, engineConfig{method: *methodName, currency: *currency, log: Logger()})
	if err != nil {
		return nil, nil, err
	}
	return ds, e, nil
}
