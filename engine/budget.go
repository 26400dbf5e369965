/*
budget.go - Period manager: active periods and allowance allocation

PURPOSE:
  Maintains non-overlapping, contiguous budget periods per family, derives the
  active period for a reference date, repairs historical overlaps, and grants
  per-member allowance allocations lazily.

LAZY LIFECYCLE:
  Periods and their period_allocation entries are created on first access for
  a date outside any existing period, or on first access by a member with no
  allocation yet in the current period. Background rollover jobs call the same
  operations and rely on the same idempotence.

OVERLAP REPAIR:
  Overlaps should not occur, but historical data may contain them. On read,
  the period with the latest (start_date, id) order wins; every other
  overlapping period is truncated to end the day before the canonical one
  starts. Repeated calls converge and never re-emit ledger entries.

These functions operate on a plain Store so they compose inside the
orchestrator's transactions.
*/
package engine

import (
	"context"
	"sort"
)

// GetOrCreatePolicy returns the family's budget policy, creating the default
// one (threshold 4.0, 90-day periods, allowance 2) on first access.
// Fails with ErrFamilyNotFound when the family doesn't exist.
func GetOrCreatePolicy(ctx context.Context, s Store, familyID FamilyID) (*BudgetPolicy, error) {
	policy, err := s.GetPolicy(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		return policy, nil
	}

	family, err := s.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	created := BudgetPolicy{
		FamilyID:         familyID,
		Threshold:        DefaultThreshold,
		PeriodDays:       DefaultPeriodDays,
		DefaultAllowance: DefaultAllowance,
	}
	if err := s.SavePolicy(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MemberAllowanceMap resolves each family member's effective allowance:
// the per-member override when present, the policy default otherwise.
func MemberAllowanceMap(ctx context.Context, s Store, familyID FamilyID, defaultAllowance int) (map[MemberID]int, error) {
	members, err := s.ListMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}
	settings, err := s.ListMemberSettings(ctx, familyID)
	if err != nil {
		return nil, err
	}

	overrides := make(map[MemberID]int, len(settings))
	for _, setting := range settings {
		overrides[setting.MemberID] = setting.Allowance
	}

	allowances := make(map[MemberID]int, len(members))
	for _, m := range members {
		if allowance, ok := overrides[m.ID]; ok {
			allowances[m.ID] = allowance
		} else {
			allowances[m.ID] = defaultAllowance
		}
	}
	return allowances, nil
}

// EnsureActivePeriod returns the period containing refDate, creating it (and
// granting every member's allocation) when none exists, or repairing overlaps
// when history contains more than one. Pure get-or-create plus repair; it has
// no failure mode beyond storage errors and a missing family.
func EnsureActivePeriod(ctx context.Context, s Store, familyID FamilyID, refDate Date) (*Period, error) {
	policy, err := GetOrCreatePolicy(ctx, s, familyID)
	if err != nil {
		return nil, err
	}

	active, err := s.PeriodsContaining(ctx, familyID, refDate)
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		return repairOverlap(ctx, s, active)
	}

	period := Period{
		ID:        PeriodID(newID()),
		FamilyID:  familyID,
		StartDate: refDate,
		EndDate:   refDate.AddDays(policy.PeriodDays - 1),
	}
	if err := s.CreatePeriod(ctx, period); err != nil {
		return nil, err
	}

	allowances, err := MemberAllowanceMap(ctx, s, familyID, policy.DefaultAllowance)
	if err != nil {
		return nil, err
	}
	// Deterministic grant order keeps ledger IDs stable across runs.
	memberIDs := make([]MemberID, 0, len(allowances))
	for id := range allowances {
		memberIDs = append(memberIDs, id)
	}
	sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

	for _, memberID := range memberIDs {
		entry := LedgerEntry{
			MemberID: memberID,
			PeriodID: period.ID,
			Delta:    allowances[memberID], // 0 is valid and recorded
			Reason:   ReasonPeriodAllocation,
		}
		if _, err := s.AppendLedger(ctx, entry); err != nil {
			return nil, err
		}
	}
	return &period, nil
}

// repairOverlap deterministically selects the canonical period (latest
// (start_date, id) order) and truncates every other overlapping period to end
// the day before it starts. Idempotent: converged data is left untouched.
func repairOverlap(ctx context.Context, s Store, active []Period) (*Period, error) {
	sort.Slice(active, func(i, j int) bool {
		if !active[i].StartDate.Equal(active[j].StartDate) {
			return active[i].StartDate.After(active[j].StartDate)
		}
		return active[i].ID > active[j].ID
	})

	canonical := active[0]
	cutoff := canonical.StartDate.AddDays(-1)
	for _, stale := range active[1:] {
		truncated := stale.EndDate.Min(cutoff)
		if truncated.Equal(stale.EndDate) {
			continue
		}
		stale.EndDate = truncated
		if err := s.UpdatePeriod(ctx, stale); err != nil {
			return nil, err
		}
	}
	return &canonical, nil
}

// EnsureMemberAllocation grants the member's current allowance in the period
// unless a period_allocation entry already exists (idempotent). Handles
// members added after the period opened.
func EnsureMemberAllocation(ctx context.Context, s Store, familyID FamilyID, period *Period, memberID MemberID) error {
	allocated, err := s.HasAllocation(ctx, memberID, period.ID)
	if err != nil {
		return err
	}
	if allocated {
		return nil
	}

	policy, err := GetOrCreatePolicy(ctx, s, familyID)
	if err != nil {
		return err
	}
	allowances, err := MemberAllowanceMap(ctx, s, familyID, policy.DefaultAllowance)
	if err != nil {
		return err
	}
	allowance, ok := allowances[memberID]
	if !ok {
		allowance = policy.DefaultAllowance
	}

	_, err = s.AppendLedger(ctx, LedgerEntry{
		MemberID: memberID,
		PeriodID: period.ID,
		Delta:    allowance,
		Reason:   ReasonPeriodAllocation,
	})
	return err
}
