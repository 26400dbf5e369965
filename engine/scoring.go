/*
scoring.go - Weighted score computation and threshold routing

PURPOSE:
  Pure functions mapping a set of (goal weight, 1-5 score) pairs to a
  normalized weighted score and a routing decision. No storage access;
  everything here is deterministic and side-effect free.

THE FORMULA:
  avg = sum(weight * score) / sum(weight)        a value in [1,5]
  normalize_to=5:   round(avg, 2)
  normalize_to=100: round((avg - 1) * 25, 2)     so 1 -> 0 and 5 -> 100

EDGE CASES:
  - Empty input yields 0.0 as a sentinel, not an error: a decision with no
    goal scores has an undefined score.
  - Total weight <= 0 is a degenerate policy and fails with ErrInvalidPolicy.

PRECISION:
  Computation runs on decimal.Decimal so 0.6*5 + 0.4*3 is exactly 4.2, not
  4.199999...; callers convert to float64 only at the API boundary.
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Normalization scales accepted by ComputeWeightedScore.
const (
	NormalizeTo5   = 5
	NormalizeTo100 = 100
)

// GoalScoreInput pairs a goal's weight with its 1-5 rating for one decision.
type GoalScoreInput struct {
	Weight float64
	Score  int
}

// Outcome is the routing result of a threshold comparison.
type Outcome string

const (
	OutcomeQueue     Outcome = "queue"
	OutcomeNeedsWork Outcome = "needs_work"
)

// ComputeWeightedScore computes the goal-weighted average of the given scores,
// normalized to the requested scale and rounded to 2 decimals.
func ComputeWeightedScore(inputs []GoalScoreInput, normalizeTo int) (decimal.Decimal, error) {
	if len(inputs) == 0 {
		return decimal.Zero, nil
	}

	totalWeight := decimal.Zero
	weightedSum := decimal.Zero
	for _, in := range inputs {
		w := decimal.NewFromFloat(in.Weight)
		totalWeight = totalWeight.Add(w)
		weightedSum = weightedSum.Add(w.Mul(decimal.NewFromInt(int64(in.Score))))
	}

	if totalWeight.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: total goal weight must be > 0", ErrInvalidPolicy)
	}

	avg := weightedSum.Div(totalWeight)
	switch normalizeTo {
	case NormalizeTo5:
		return avg.Round(2), nil
	case NormalizeTo100:
		return avg.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(25)).Round(2), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: normalize_to must be 5 or 100", ErrInvalidArgument)
	}
}

// ThresholdOutcome routes a 1-5 weighted score against the policy threshold.
// A score equal to the threshold routes to the queue (>=, not >).
func ThresholdOutcome(score decimal.Decimal, threshold float64) Outcome {
	if score.GreaterThanOrEqual(decimal.NewFromFloat(threshold)) {
		return OutcomeQueue
	}
	return OutcomeNeedsWork
}
