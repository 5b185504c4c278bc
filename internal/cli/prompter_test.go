package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_PromptFeatures(t *testing.T) {
	input := strings.Join([]string{"5.2", "90", "85", "70", "88", "75"}, "\n") + "\n"
	var out bytes.Buffer

	raw, err := NewPrompter(strings.NewReader(input), &out).PromptFeatures(context.Background(), nil)
	require.NoError(t, err)

	features, err := query.ValidateInputs(raw)
	require.NoError(t, err)
	assert.InDelta(t, 5.2, features.LowBirthWeight, 1e-9)
	assert.InDelta(t, 75.0, features.Sanitation, 1e-9)

	for _, name := range model.FeatureNames {
		assert.Contains(t, out.String(), name.Label())
	}
}

func TestPrompter_PromptFeatures_Defaults(t *testing.T) {
	defaults := query.FormatInputs(model.InputFeatures{
		LowBirthWeight:     4,
		PostpartumVitaminA: 91,
		AntenatalK4:        80,
		HDI:                68.5,
		DrinkingWater:      90,
		Sanitation:         77,
	})
	input := "\n\n\n70\n\n\n"
	var out bytes.Buffer

	raw, err := NewPrompter(strings.NewReader(input), &out).PromptFeatures(context.Background(), defaults)
	require.NoError(t, err)

	assert.Equal(t, "70", raw[model.FeatureHDI])
	assert.Equal(t, defaults[model.FeatureLowBirthWeight], raw[model.FeatureLowBirthWeight])
	assert.Contains(t, out.String(), "["+defaults[model.FeatureSanitation]+"]")
}

func TestPrompter_PromptFeatures_ShortInput(t *testing.T) {
	_, err := NewPrompter(strings.NewReader("1\n2\n"), io.Discard).PromptFeatures(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_PromptFeatures_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompter(strings.NewReader("1\n"), io.Discard).PromptFeatures(ctx, nil)
	assert.ErrorIs(t, err, ErrInputCancelled)
}
