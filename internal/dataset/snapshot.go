package dataset

import (
	"context"
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/storage"
)

func loadResultsSnapshot(ctx context.Context, path string) (*ResultTable, error) {
	store, err := storage.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	rows, err := store.GetResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot results: %w", err)
	}

	meta, err := store.GetMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot metadata: %w", err)
	}

	return &ResultTable{
		Rows:    rows,
		HasMAPE: meta.HasMAPE,
		HasMSE:  meta.HasMSE,
	}, nil
}

func loadFeaturesSnapshot(ctx context.Context, path string) ([]model.FeatureRow, error) {
	store, err := storage.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	rows, err := store.GetFeatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot features: %w", err)
	}
	return rows, nil
}
