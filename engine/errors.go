/*
errors.go - Centralized error taxonomy for the decision engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP statuses; nothing is silently swallowed
  inside the engine.

ERROR CATEGORIES:
  1. Not-found errors  - entity absent or cross-family reference
  2. Validation errors - malformed policy values, bad enum values, bad scores
  3. Routing errors    - threshold not met, discretionary budget exhausted
  4. Conflict errors   - duplicate unique keys (e.g. re-adding a member email)

USAGE:
  Structured errors carry enough context to drive a UI decision:

    var exhausted *engine.BudgetExhaustedError
    if errors.As(err, &exhausted) {
        // show "used X of Y this period"
    }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrFamilyNotFound is returned when a referenced family doesn't exist.
	ErrFamilyNotFound = errors.New("family not found")

	// ErrMemberNotFound is returned when a referenced member doesn't exist or
	// belongs to a different family.
	ErrMemberNotFound = errors.New("member not found")

	// ErrGoalNotFound is returned when a scored goal doesn't exist or belongs
	// to a different family.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrDecisionNotFound is returned when a referenced decision doesn't exist.
	ErrDecisionNotFound = errors.New("decision not found")

	// ErrRoadmapItemNotFound is returned when a referenced roadmap item doesn't exist.
	ErrRoadmapItemNotFound = errors.New("roadmap item not found")

	// ErrInvalidPolicy is returned for degenerate policy values: total goal
	// weight <= 0, threshold outside [1,5], non-positive period length.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrInvalidArgument is returned for malformed inputs: scores outside
	// [1,5], duplicated or inactive goals, unknown enum values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrThresholdNotMet is returned when scheduling a sub-threshold decision
	// without an explicit discretionary override request.
	ErrThresholdNotMet = errors.New("score below threshold")

	// ErrBudgetExhausted is returned when a discretionary override is requested
	// but the member has no remaining allowance this period.
	ErrBudgetExhausted = errors.New("discretionary budget exhausted")

	// ErrConflict is returned on duplicate unique keys (member email).
	ErrConflict = errors.New("conflict")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ThresholdNotMetError reports the achieved score against the required
// threshold. Achieved is nil when the decision has no current score entries.
type ThresholdNotMetError struct {
	Threshold float64
	Achieved  *float64
}

func (e *ThresholdNotMetError) Error() string {
	if e.Achieved == nil {
		return fmt.Sprintf("decision has no score; threshold %.2f required or use discretionary budget", e.Threshold)
	}
	return fmt.Sprintf("decision score %.2f below threshold %.2f; use discretionary budget to override", *e.Achieved, e.Threshold)
}

func (e *ThresholdNotMetError) Unwrap() error { return ErrThresholdNotMet }

// BudgetExhaustedError reports a member's spend against their allowance so the
// caller can surface "used X of Y this period".
type BudgetExhaustedError struct {
	MemberID  MemberID
	Used      int
	Allowance int
}

func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("discretionary budget exhausted for member %s (used %d of %d this period)", e.MemberID, e.Used, e.Allowance)
}

func (e *BudgetExhaustedError) Unwrap() error { return ErrBudgetExhausted }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFamilyNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrGoalNotFound) ||
		errors.Is(err, ErrDecisionNotFound) ||
		errors.Is(err, ErrRoadmapItemNotFound)
}

// IsClientError returns true if the error is due to invalid client input or a
// business-rule rejection, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPolicy) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrThresholdNotMet) ||
		errors.Is(err, ErrBudgetExhausted) ||
		errors.Is(err, ErrConflict)
}
