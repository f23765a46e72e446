package core

import (
	"testing"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringConfig() *contract.Config {
	return &contract.Config{
		Basis:     schema.PrevalenceBasis,
		TopK:      contract.DefaultTopK,
		Precision: contract.DefaultPrecision,
		Output:    schema.TextOut,
	}
}

// TestScoreProportions checks the full scoring pass without a history store.
func TestScoreProportions(t *testing.T) {
	preds := schema.Proportions{
		schema.KeyWhite:  fptr(0.090),
		schema.KeyFemale: fptr(0.478),
	}

	enriched, duration, err := ScoreProportions(preds, scoringConfig(), nil)
	require.NoError(t, err)
	require.NotNil(t, enriched)
	assert.GreaterOrEqual(t, duration.Nanoseconds(), int64(0))

	// White is at exact parity (3 points); female is far over-represented.
	assert.Equal(t, 3.0, enriched.EquityTotal)
	assert.Equal(t, contract.GetPlainLabel(enriched.DiversityScore), enriched.Label)
	assert.Len(t, enriched.Breakdown, 7)
	assert.NotEmpty(t, enriched.Gaps)
	assert.Contains(t, enriched.GapSummary, "Female")
}

// TestScoreProportionsMortalityBasis verifies the basis override reaches
// both scoring and gap ranking.
func TestScoreProportionsMortalityBasis(t *testing.T) {
	cfg := scoringConfig()
	cfg.Basis = schema.MortalityBasis

	preds := schema.Proportions{schema.KeyFemale: fptr(0.526)}
	enriched, _, err := ScoreProportions(preds, cfg, nil)
	require.NoError(t, err)

	// 0.526 against the mortality sex burden is exact parity.
	assert.Equal(t, 3.0, enriched.EquityTotal)
	require.NotEmpty(t, enriched.Gaps)
	assert.Zero(t, enriched.Gaps[0].Gap)
}

// TestRankProportionGaps checks the gap report wrapper.
func TestRankProportionGaps(t *testing.T) {
	cfg := scoringConfig()
	cfg.TopK = 1

	preds := schema.Proportions{
		schema.KeyFemale: fptr(0.478),
		schema.KeyBlack:  fptr(0.146),
	}
	report, err := RankProportionGaps(preds, cfg)
	require.NoError(t, err)
	require.Len(t, report.Gaps, 1)
	assert.Equal(t, schema.KeyFemale, report.Gaps[0].Subgroup)
	assert.Equal(t, "Female (+42%)", report.Summary)
}

// TestShortfallsForProportions checks the shortfall wrapper covers the
// whole burden table.
func TestShortfallsForProportions(t *testing.T) {
	rows, err := ShortfallsForProportions(schema.Proportions{}, scoringConfig())
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}

// TestActiveRubric verifies basis folding into the burden table.
func TestActiveRubric(t *testing.T) {
	prevalence := ActiveRubric(schema.PrevalenceBasis)
	assert.Equal(t, 0.058, prevalence.Burden[schema.KeyFemale])

	mortality := ActiveRubric(schema.MortalityBasis)
	assert.Equal(t, 0.526, mortality.Burden[schema.KeyFemale])
	assert.Equal(t, 0.474, mortality.Burden[schema.KeyMale])
	// Race and age burdens are untouched by the sex-basis override.
	assert.Equal(t, 0.240, mortality.Burden[schema.KeyAge65])
}

// TestEffectiveBurden verifies override merging.
func TestEffectiveBurden(t *testing.T) {
	rubric := schema.DefaultRubric()
	burden := effectiveBurden(rubric, schema.BurdenOverride{schema.KeyMale: 0.474})

	assert.Equal(t, 0.474, burden[schema.KeyMale])
	assert.Equal(t, 0.090, burden[schema.KeyWhite])

	// The rubric itself is never mutated.
	assert.Equal(t, 0.078, rubric.Burden[schema.KeyMale])
}
