package dataset

import (
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
)

func parseResults(raw *rawTable) (*ResultTable, error) {
	cols := indexHeader(raw.header)

	regionCol, err := cols.require("region", regionAliases)
	if err != nil {
		return nil, err
	}
	yearCol, err := cols.require("year", yearAliases)
	if err != nil {
		return nil, err
	}
	methodCol, err := cols.require("method", methodAliases)
	if err != nil {
		return nil, err
	}
	predictionCol, err := cols.require("prediction", predictionAliases)
	if err != nil {
		return nil, err
	}
	mapeCol := cols.find(mapeAliases)
	mseCol := cols.find(mseAliases)

	table := &ResultTable{
		Rows:    make([]model.ResultRow, 0, len(raw.records)),
		HasMAPE: mapeCol >= 0,
		HasMSE:  mseCol >= 0,
	}

	for i, rec := range raw.records {
		line := i + 2 // header is line 1

		predText := raw.cell(rec, predictionCol)
		prediction, err := parseNumber(predText, raw.delimiter)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: prediction %q is not a number", common.ErrMalformedRow, line, predText)
		}

		row := model.ResultRow{
			Region:     raw.cell(rec, regionCol),
			Method:     raw.cell(rec, methodCol),
			Prediction: prediction,
		}
		if year, ok := parseYear(raw.cell(rec, yearCol)); ok {
			row.Year = year
		}

		if row.MAPE, err = optionalMetric(raw, rec, mapeCol); err != nil {
			return nil, fmt.Errorf("%w: line %d: mape: %w", common.ErrMalformedRow, line, err)
		}
		if row.MSE, err = optionalMetric(raw, rec, mseCol); err != nil {
			return nil, fmt.Errorf("%w: line %d: mse: %w", common.ErrMalformedRow, line, err)
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// optionalMetric returns nil for an absent column or an empty cell.
func optionalMetric(raw *rawTable, rec []string, col int) (*float64, error) {
	if col < 0 {
		return nil, nil
	}
	text := raw.cell(rec, col)
	if text == "" {
		return nil, nil
	}
	v, err := parseNumber(text, raw.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", text)
	}
	return &v, nil
}

func parseFeatures(raw *rawTable) ([]model.FeatureRow, error) {
	cols := indexHeader(raw.header)

	regionCol, err := cols.require("region", regionAliases)
	if err != nil {
		return nil, err
	}
	yearCol, err := cols.require("year", yearAliases)
	if err != nil {
		return nil, err
	}

	featureCols := make(map[model.FeatureName]int, len(model.FeatureNames))
	for _, name := range model.FeatureNames {
		col, err := cols.require(string(name), featureAliases[name])
		if err != nil {
			return nil, err
		}
		featureCols[name] = col
	}

	rows := make([]model.FeatureRow, 0, len(raw.records))
	for i, rec := range raw.records {
		line := i + 2

		row := model.FeatureRow{Region: raw.cell(rec, regionCol)}
		if year, ok := parseYear(raw.cell(rec, yearCol)); ok {
			row.Year = year
		}

		for _, name := range model.FeatureNames {
			text := raw.cell(rec, featureCols[name])
			if text == "" {
				continue
			}
			v, err := parseNumber(text, raw.delimiter)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s %q is not a number", common.ErrMalformedRow, line, name, text)
			}
			row.Values.Set(name, v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}
