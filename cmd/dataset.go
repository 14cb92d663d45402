package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/google/uuid"
)

// Dataset is the content of a dataset file: the records the engine works on
// and its default settings.
type Dataset struct {
	BaseCurrency string
	Method       folio.CostBasisMethod
	folio.Dataset
}

// datasetJSON is the layout of a dataset file.
type datasetJSON struct {
	BaseCurrency string `json:"baseCurrency"`
	Method       string `json:"method"`
	folio.Dataset
}

// DecodeDataset reads a dataset.
//
// Transactions without an id get a random one. Portfolios referenced by
// transactions but not declared are added, in order of appearance. Missing
// collections are read as empty.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var raw datasetJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cannot decode dataset: %w", err)
	}
	ds := &Dataset{
		BaseCurrency: strings.ToUpper(strings.TrimSpace(raw.BaseCurrency)),
		Method:       folio.AverageCost,
		Dataset:      raw.Dataset,
	}
	if raw.Method != "" {
		m, err := folio.ParseCostBasisMethod(raw.Method)
		if err != nil {
			return nil, fmt.Errorf("invalid dataset method: %w", err)
		}
		ds.Method = m
	}
	if ds.BaseCurrency == "" {
		ds.BaseCurrency = folio.DefaultBaseCurrency
	}
	if ds.Transactions == nil {
		ds.Transactions = []folio.Transaction{}
	}
	if ds.Symbols == nil {
		ds.Symbols = []folio.Symbol{}
	}

	declared := make(map[string]bool, len(ds.Portfolios))
	for _, p := range ds.Portfolios {
		declared[p.ID] = true
	}
	for i := range ds.Transactions {
		tx := &ds.Transactions[i]
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		if tx.PortfolioID != "" && !declared[tx.PortfolioID] {
			declared[tx.PortfolioID] = true
			ds.Portfolios = append(ds.Portfolios, folio.Portfolio{ID: tx.PortfolioID})
		}
	}
	if ds.Portfolios == nil {
		ds.Portfolios = []folio.Portfolio{}
	}
	return ds, nil
}

// LoadDataset reads the dataset file at path.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open dataset: %w", err)
	}
	defer f.Close()
	ds, err := DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Portfolio returns the declared portfolio with that id.
func (ds *Dataset) Portfolio(id string) (folio.Portfolio, bool) {
	for _, p := range ds.Portfolios {
		if p.ID == id {
			return p, true
		}
	}
	return folio.Portfolio{}, false
}

// tradeCurrency returns the only currency the trades of a portfolio are made
// in, or "" when there are several or none.
func (ds *Dataset) tradeCurrency(portfolioID string) string {
	found := ""
	for _, tx := range ds.Transactions {
		c := strings.ToUpper(strings.TrimSpace(tx.TradeCurrency))
		if tx.PortfolioID != portfolioID || c == "" || !tx.Type.IsTrade() {
			continue
		}
		if found != "" && found != c {
			return ""
		}
		found = c
	}
	return found
}
