package cmd

import (
	"github.com/etnz/folio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var methods = predict.Set{"average", "fifo", "lifo", "hifo"}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	portfolio := complete.PredictFunc(predictPortfolios)
	out := map[string]complete.Predictor{
		"json": predict.Nothing,
		"q":    predict.Something,
		"raw":  predict.Nothing,
	}
	with := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range out {
			flags[k] = v
		}
		return flags
	}
	history := &complete.Command{Flags: with(map[string]complete.Predictor{
		"p":      portfolio,
		"end":    predict.Something,
		"locale": predict.Set{"en-US", "en-GB", "fr", "de", "es", "it", "nl", "ja", "zh", "ko"},
	})}
	topic := &complete.Command{
		Flags: map[string]complete.Predictor{"raw": predict.Nothing},
		Args:  complete.PredictFunc(predictTopics),
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"holdings":     {Flags: with(map[string]complete.Predictor{"p": portfolio})},
			"metrics":      {Flags: with(map[string]complete.Predictor{"p": portfolio})},
			"consolidated": {Flags: with(map[string]complete.Predictor{})},
			"history":      history,
			"topic":        topic,
		},
		Flags: map[string]complete.Predictor{
			"dataset":  predict.Files("*.json"),
			"method":   methods,
			"currency": predict.Something,
			"v":        predict.Nothing,
		},
	}
}

func predictTopics(prefix string) []string {
	topics, _ := docs.GetAllTopics()
	return topics
}

// predictPortfolios lists the portfolio ids of the dataset file.
func predictPortfolios(prefix string) []string {
	ds, err := LoadDataset(*datasetFile)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(ds.Portfolios))
	for _, p := range ds.Portfolios {
		ids = append(ids, p.ID)
	}
	return ids
}
