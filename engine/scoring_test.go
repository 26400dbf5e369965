package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// WEIGHTED SCORE TESTS
// =============================================================================

func TestComputeWeightedScore_TwoGoals_Scale5(t *testing.T) {
	// GIVEN: goals weighted 0.6 and 0.4, scored 5 and 3
	// WHEN: computing the 1-5 weighted score
	// THEN: (0.6*5 + 0.4*3) / 1.0 = 4.2 exactly

	inputs := []GoalScoreInput{
		{Weight: 0.6, Score: 5},
		{Weight: 0.4, Score: 3},
	}

	score, err := ComputeWeightedScore(inputs, NormalizeTo5)
	require.NoError(t, err)
	assert.True(t, score.Equal(decimal.RequireFromString("4.2")),
		"expected exactly 4.2, got %s", score)
}

func TestComputeWeightedScore_TwoGoals_Scale100(t *testing.T) {
	// GIVEN: the same inputs that produce 4.2 on the 1-5 scale
	// WHEN: normalizing to 100
	// THEN: (4.2 - 1) * 25 = 80.0, so a score of 1 maps to 0 and 5 to 100

	inputs := []GoalScoreInput{
		{Weight: 0.6, Score: 5},
		{Weight: 0.4, Score: 3},
	}

	score, err := ComputeWeightedScore(inputs, NormalizeTo100)
	require.NoError(t, err)
	assert.True(t, score.Equal(decimal.RequireFromString("80")),
		"expected exactly 80, got %s", score)
}

func TestComputeWeightedScore_UnevenWeights_Rounded(t *testing.T) {
	// GIVEN: weights that produce a repeating decimal
	// WHEN: computing the weighted score
	// THEN: result is rounded to 2 decimals

	inputs := []GoalScoreInput{
		{Weight: 1, Score: 5},
		{Weight: 2, Score: 4},
	}

	score, err := ComputeWeightedScore(inputs, NormalizeTo5)
	require.NoError(t, err)
	// 13/3 = 4.333...
	assert.True(t, score.Equal(decimal.RequireFromString("4.33")),
		"expected 4.33, got %s", score)
}

func TestComputeWeightedScore_EmptyInput_ZeroSentinel(t *testing.T) {
	// GIVEN: no goal scores
	// WHEN: computing the weighted score
	// THEN: 0.0 sentinel, no error

	score, err := ComputeWeightedScore(nil, NormalizeTo5)
	require.NoError(t, err)
	assert.True(t, score.IsZero())
}

func TestComputeWeightedScore_ZeroTotalWeight_Rejected(t *testing.T) {
	// GIVEN: goals whose weights sum to zero
	// WHEN: computing the weighted score
	// THEN: ErrInvalidPolicy

	inputs := []GoalScoreInput{{Weight: 0, Score: 5}}

	_, err := ComputeWeightedScore(inputs, NormalizeTo5)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestComputeWeightedScore_UnknownScale_Rejected(t *testing.T) {
	inputs := []GoalScoreInput{{Weight: 1, Score: 3}}

	_, err := ComputeWeightedScore(inputs, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// =============================================================================
// THRESHOLD ROUTING TESTS
// =============================================================================

func TestThresholdOutcome_AboveThreshold_Queues(t *testing.T) {
	score := decimal.RequireFromString("4.2")
	assert.Equal(t, OutcomeQueue, ThresholdOutcome(score, 4.0))
}

func TestThresholdOutcome_ExactlyAtThreshold_Queues(t *testing.T) {
	// The comparison is >=, not >: a 4.0 score against a 4.0 threshold queues.
	score := decimal.RequireFromString("4.0")
	assert.Equal(t, OutcomeQueue, ThresholdOutcome(score, 4.0))
}

func TestThresholdOutcome_BelowThreshold_NeedsWork(t *testing.T) {
	score := decimal.RequireFromString("3.99")
	assert.Equal(t, OutcomeNeedsWork, ThresholdOutcome(score, 4.0))
}
