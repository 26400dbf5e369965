/*
ledger.go - Append-only discretionary budget ledger

PURPOSE:
  Every change to a member's discretionary budget is a signed-delta entry
  tagged with a reason code. Balance is always derived by aggregating the
  entries for a (member, period); no cached balance field exists anywhere.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: entries are never updated. The only delete path is a full
     family purge.
  2. REASON-CODED: allowance and spend are separated by reason, so a policy
     correction can never masquerade as a refund.
  3. DERIVED: allowance/used/remaining are recomputed from the full entry set
     on every read. This trades O(entries-per-period) reads for append-only
     write simplicity and a complete audit trail.

CORRECTIONS:
  A mistaken grant is corrected with a policy_adjustment delta, a reversed
  schedule with an unschedule refund. Both the original and the correction
  remain in the ledger.
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// LEDGER ENTRIES
// =============================================================================

// LedgerReason tags why a delta was applied.
type LedgerReason string

const (
	// ReasonPeriodAllocation grants a member's allowance when a period opens
	// (or when the member first appears mid-period).
	ReasonPeriodAllocation LedgerReason = "period_allocation"

	// ReasonPolicyAdjustment corrects the current period's allowance after a
	// policy change. Counts toward the allowance ceiling, never toward spend.
	ReasonPolicyAdjustment LedgerReason = "policy_adjustment"

	// ReasonScheduleOverride debits one unit to schedule a sub-threshold
	// decision. Always -1, always linked to a decision.
	ReasonScheduleOverride LedgerReason = "discretionary_schedule_override"

	// ReasonUnscheduleRefund credits one unit back when an override is
	// reversed before the work completes. Always +1, linked to the decision.
	ReasonUnscheduleRefund LedgerReason = "discretionary_unschedule_refund"
)

// LedgerEntry is an immutable fact. ID is a store-assigned monotonic sequence;
// refund matching relies on it to find the most recent unmatched debit.
type LedgerEntry struct {
	ID         int64
	MemberID   MemberID
	PeriodID   PeriodID
	Delta      int
	Reason     LedgerReason
	DecisionID *DecisionID
	CreatedAt  time.Time
}

// =============================================================================
// BALANCE AGGREGATION
// =============================================================================

// MemberBalance is the derived budget state for one (member, period).
type MemberBalance struct {
	Allowance int
	Used      int
	// Remaining may transiently read negative when a policy reduction
	// undercuts already-spent balance; external reporting clamps it via
	// RemainingReported.
	Remaining int
}

// RemainingReported clamps remaining to >= 0 for external callers. The clamp
// happens at read time, never at write time, so the ledger stays honest.
func (b MemberBalance) RemainingReported() int {
	if b.Remaining < 0 {
		return 0
	}
	return b.Remaining
}

// BalanceFromEntries aggregates the entries for one (member, period):
//   - allowance: allocation + adjustment deltas (grants and corrections to the ceiling)
//   - used: override debits minus refunds, floored at 0 so refunds can never
//     become a credit beyond the original grant
//   - remaining: allowance - used
func BalanceFromEntries(entries []LedgerEntry) MemberBalance {
	var allowance, debits, refunds int
	for _, e := range entries {
		switch e.Reason {
		case ReasonPeriodAllocation, ReasonPolicyAdjustment:
			allowance += e.Delta
		case ReasonScheduleOverride:
			debits += -e.Delta
		case ReasonUnscheduleRefund:
			refunds += e.Delta
		}
	}

	used := debits - refunds
	if used < 0 {
		used = 0
	}
	return MemberBalance{
		Allowance: allowance,
		Used:      used,
		Remaining: allowance - used,
	}
}

// MemberRemainingInPeriod loads the (member, period) entry set and derives the
// balance. Always a full recompute; the ledger is the single source of truth.
func MemberRemainingInPeriod(ctx context.Context, s Store, periodID PeriodID, memberID MemberID) (MemberBalance, error) {
	entries, err := s.LedgerForMemberPeriod(ctx, memberID, periodID)
	if err != nil {
		return MemberBalance{}, err
	}
	return BalanceFromEntries(entries), nil
}
