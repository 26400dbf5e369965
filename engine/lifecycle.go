/*
lifecycle.go - Decision lifecycle orchestration

PURPOSE:
  Coordinates decision status transitions driven by scoring and budget
  outcomes (Draft -> Queued/Needs-Work -> Discretionary-Approved/Scheduled ->
  Done), and reconciles ledger entries when schedule decisions are reversed.

TRANSITIONS DRIVEN HERE:
  score:      replace the current version's score entries, route by threshold,
              insert a queue item on pass
  schedule:   create a roadmap item; sub-threshold decisions need an explicit
              discretionary override that debits the member's ledger
  unschedule: delete the roadmap item; refund at most one unmatched debit
              unless the item already reached Done
  policy:     update policy fields and reconcile the current period's
              allowances with policy_adjustment deltas

ATOMICITY:
  Every operation runs inside TxStore.WithTx. Either all writes commit
  together or none do; a debit without its status change never persists.

Rejected, In-Progress, and Archived are reachable only through the explicit
administrative status override (SetDecisionStatus).
*/
package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine orchestrates decision lifecycle operations over a transactional store.
type Engine struct {
	store TxStore

	// Now supplies the reference date for period resolution; overridable in
	// tests and for backdated administrative operations.
	Now func() Date
}

// New creates an orchestrator bound to the given store.
func New(store TxStore) *Engine {
	return &Engine{store: store, Now: Today}
}

// Store exposes the underlying store for read paths (listings, lookups).
func (e *Engine) Store() TxStore { return e.store }

// =============================================================================
// SCORING TRANSITION
// =============================================================================

// ScoreInput is one goal's rating submitted for a decision.
type ScoreInput struct {
	GoalID    GoalID
	Score     int
	Rationale string
}

// ScoreResult reports the outcome of a scoring pass.
type ScoreResult struct {
	DecisionID     DecisionID
	Weighted1To5   float64
	Weighted0To100 float64
	Threshold      float64
	RoutedTo       Outcome
	Status         DecisionStatus
	QueueItemID    *QueueItemID
}

// ScoreDecision replaces the decision's current-version score entries with the
// given set, computes the weighted totals, and routes the decision against the
// threshold. Scoring is idempotent per decision version: rescoring at the same
// version overwrites rather than accumulates.
func (e *Engine) ScoreDecision(ctx context.Context, decisionID DecisionID, inputs []ScoreInput, threshold float64, computedBy string) (*ScoreResult, error) {
	if computedBy == "" {
		computedBy = "human"
	}

	var result *ScoreResult
	err := e.store.WithTx(ctx, func(s Store) error {
		decision, err := s.GetDecision(ctx, decisionID)
		if err != nil {
			return err
		}
		if decision == nil {
			return ErrDecisionNotFound
		}

		entries := make([]ScoreEntry, 0, len(inputs))
		weighted := make([]GoalScoreInput, 0, len(inputs))
		seen := make(map[GoalID]bool, len(inputs))
		for _, in := range inputs {
			if in.Score < 1 || in.Score > 5 {
				return fmt.Errorf("%w: score for goal %s must be between 1 and 5", ErrInvalidArgument, in.GoalID)
			}
			if seen[in.GoalID] {
				return fmt.Errorf("%w: goal %s scored more than once", ErrInvalidArgument, in.GoalID)
			}
			seen[in.GoalID] = true

			goal, err := s.GetGoal(ctx, in.GoalID)
			if err != nil {
				return err
			}
			if goal == nil || goal.FamilyID != decision.FamilyID {
				return fmt.Errorf("%w: goal %s", ErrGoalNotFound, in.GoalID)
			}
			if !goal.Active {
				return fmt.Errorf("%w: goal %s is not active", ErrInvalidArgument, in.GoalID)
			}

			entries = append(entries, ScoreEntry{
				DecisionID: decision.ID,
				GoalID:     in.GoalID,
				Score:      in.Score,
				Rationale:  in.Rationale,
				ComputedBy: computedBy,
				Version:    decision.Version,
			})
			weighted = append(weighted, GoalScoreInput{Weight: goal.Weight, Score: in.Score})
		}

		if err := s.ReplaceScores(ctx, decision.ID, decision.Version, entries); err != nil {
			return err
		}

		score5, err := ComputeWeightedScore(weighted, NormalizeTo5)
		if err != nil {
			return err
		}
		score100, err := ComputeWeightedScore(weighted, NormalizeTo100)
		if err != nil {
			return err
		}

		outcome := ThresholdOutcome(score5, threshold)
		result = &ScoreResult{
			DecisionID:     decision.ID,
			Weighted1To5:   score5.InexactFloat64(),
			Weighted0To100: score100.InexactFloat64(),
			Threshold:      threshold,
			RoutedTo:       outcome,
		}

		if outcome == OutcomeQueue {
			decision.Status = StatusQueued
			item, err := ensureQueueItem(ctx, s, decision)
			if err != nil {
				return err
			}
			id := item.ID
			result.QueueItemID = &id
		} else {
			decision.Status = StatusNeedsWork
		}
		result.Status = decision.Status

		return s.UpdateDecision(ctx, *decision)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ensureQueueItem creates the decision's queue-ranking record if absent. Rank
// is a global monotonic sequence: max of existing ranks plus one, computed
// inside the surrounding transaction so concurrent inserts cannot collide.
func ensureQueueItem(ctx context.Context, s Store, decision *Decision) (*QueueItem, error) {
	existing, err := s.QueueItemByDecision(ctx, decision.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	maxRank, err := s.MaxQueueRank(ctx)
	if err != nil {
		return nil, err
	}
	priority := 3
	if decision.Urgency != nil {
		priority = *decision.Urgency
	}

	item := QueueItem{
		ID:         QueueItemID(newID()),
		DecisionID: decision.ID,
		Priority:   priority,
		DueDate:    decision.TargetDate,
		Rank:       maxRank + 1,
	}
	if err := s.CreateQueueItem(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// QueueDecision forces a decision onto the work queue without scoring it,
// creating the ranking record if needed.
func (e *Engine) QueueDecision(ctx context.Context, decisionID DecisionID) (*QueueItem, error) {
	var item *QueueItem
	err := e.store.WithTx(ctx, func(s Store) error {
		decision, err := s.GetDecision(ctx, decisionID)
		if err != nil {
			return err
		}
		if decision == nil {
			return ErrDecisionNotFound
		}

		item, err = ensureQueueItem(ctx, s, decision)
		if err != nil {
			return err
		}
		decision.Status = StatusQueued
		return s.UpdateDecision(ctx, *decision)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetDecisionStatus is the administrative override: the only path to statuses
// the automatic logic never assigns (Rejected, In-Progress, Archived).
func (e *Engine) SetDecisionStatus(ctx context.Context, decisionID DecisionID, raw string) (*Decision, error) {
	status, ok := ParseStatus(raw)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidArgument, raw)
	}

	var updated *Decision
	err := e.store.WithTx(ctx, func(s Store) error {
		decision, err := s.GetDecision(ctx, decisionID)
		if err != nil {
			return err
		}
		if decision == nil {
			return ErrDecisionNotFound
		}
		decision.Status = status
		updated = decision
		return s.UpdateDecision(ctx, *decision)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// =============================================================================
// SCHEDULING TRANSITIONS
// =============================================================================

// ScheduleRequest asks to place a decision onto the roadmap.
type ScheduleRequest struct {
	DecisionID   DecisionID
	Bucket       string
	StartDate    *Date
	EndDate      *Date
	Status       string
	Dependencies []string

	// UseDiscretionaryBudget must be set explicitly to schedule a decision
	// whose weighted score misses the threshold. Never implied.
	UseDiscretionaryBudget bool
}

// ScheduleResult is the created roadmap item plus whether a discretionary
// debit was spent to authorize it.
type ScheduleResult struct {
	Item              RoadmapItem
	UsedDiscretionary bool
}

// ScheduleDecision creates a roadmap item for the decision. The current
// weighted score is recomputed from the latest version's entries; decisions at
// or above the threshold proceed directly, the rest require a discretionary
// override with remaining budget.
func (e *Engine) ScheduleDecision(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	var result *ScheduleResult
	err := e.store.WithTx(ctx, func(s Store) error {
		decision, err := s.GetDecision(ctx, req.DecisionID)
		if err != nil {
			return err
		}
		if decision == nil {
			return ErrDecisionNotFound
		}

		policy, err := GetOrCreatePolicy(ctx, s, decision.FamilyID)
		if err != nil {
			return err
		}
		score, err := decisionWeightedScore(ctx, s, decision)
		if err != nil {
			return err
		}
		meetsThreshold := score != nil && score.GreaterThanOrEqual(decimal.NewFromFloat(policy.Threshold))

		usedDiscretionary := false
		if !meetsThreshold {
			if !req.UseDiscretionaryBudget {
				tErr := &ThresholdNotMetError{Threshold: policy.Threshold}
				if score != nil {
					achieved := score.InexactFloat64()
					tErr.Achieved = &achieved
				}
				return tErr
			}

			period, err := EnsureActivePeriod(ctx, s, decision.FamilyID, e.Now())
			if err != nil {
				return err
			}
			if err := EnsureMemberAllocation(ctx, s, decision.FamilyID, period, decision.CreatedBy); err != nil {
				return err
			}
			balance, err := MemberRemainingInPeriod(ctx, s, period.ID, decision.CreatedBy)
			if err != nil {
				return err
			}
			if balance.Remaining < 1 {
				return &BudgetExhaustedError{
					MemberID:  decision.CreatedBy,
					Used:      balance.Used,
					Allowance: balance.Allowance,
				}
			}

			debitFor := decision.ID
			if _, err := s.AppendLedger(ctx, LedgerEntry{
				MemberID:   decision.CreatedBy,
				PeriodID:   period.ID,
				Delta:      -1,
				Reason:     ReasonScheduleOverride,
				DecisionID: &debitFor,
			}); err != nil {
				return err
			}
			decision.Status = StatusDiscretionaryApproved
			usedDiscretionary = true
		}

		status := req.Status
		if status == "" {
			status = "Planned"
		}
		item := RoadmapItem{
			ID:           RoadmapItemID(newID()),
			DecisionID:   decision.ID,
			Bucket:       req.Bucket,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Status:       status,
			Dependencies: req.Dependencies,
		}
		if err := s.CreateRoadmapItem(ctx, item); err != nil {
			return err
		}

		decision.Status = StatusScheduled
		if err := s.UpdateDecision(ctx, *decision); err != nil {
			return err
		}

		result = &ScheduleResult{Item: item, UsedDiscretionary: usedDiscretionary}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnscheduleDecision deletes a roadmap item. Unless the item already reached
// Done, an unmatched discretionary debit for the decision is refunded - at
// most one per unmatched debit, so reschedule/unschedule cycles never
// over-refund. Returns whether a refund was issued.
func (e *Engine) UnscheduleDecision(ctx context.Context, itemID RoadmapItemID) (bool, error) {
	refunded := false
	err := e.store.WithTx(ctx, func(s Store) error {
		item, err := s.GetRoadmapItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrRoadmapItemNotFound
		}

		if item.Status != RoadmapStatusDone {
			issued, err := refundUnmatchedDebit(ctx, s, item.DecisionID)
			if err != nil {
				return err
			}
			refunded = issued
		}

		return s.DeleteRoadmapItem(ctx, itemID)
	})
	if err != nil {
		return false, err
	}
	return refunded, nil
}

// refundUnmatchedDebit issues one +1 refund when the decision's override
// debits outnumber its refunds, against the member/period of the most recent
// unmatched debit (highest entry ID).
func refundUnmatchedDebit(ctx context.Context, s Store, decisionID DecisionID) (bool, error) {
	entries, err := s.LedgerForDecision(ctx, decisionID)
	if err != nil {
		return false, err
	}

	var debits, refunds int
	var latestDebit *LedgerEntry
	for i := range entries {
		switch entries[i].Reason {
		case ReasonScheduleOverride:
			debits++
			if latestDebit == nil || entries[i].ID > latestDebit.ID {
				latestDebit = &entries[i]
			}
		case ReasonUnscheduleRefund:
			refunds++
		}
	}
	if debits <= refunds || latestDebit == nil {
		return false, nil
	}

	refundFor := decisionID
	_, err = s.AppendLedger(ctx, LedgerEntry{
		MemberID:   latestDebit.MemberID,
		PeriodID:   latestDebit.PeriodID,
		Delta:      1,
		Reason:     ReasonUnscheduleRefund,
		DecisionID: &refundFor,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// decisionWeightedScore recomputes the decision's 1-5 weighted score from its
// current version's entries, or nil when none exist.
func decisionWeightedScore(ctx context.Context, s Store, decision *Decision) (*decimal.Decimal, error) {
	entries, err := s.ScoresForVersion(ctx, decision.ID, decision.Version)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	weighted := make([]GoalScoreInput, 0, len(entries))
	for _, entry := range entries {
		goal, err := s.GetGoal(ctx, entry.GoalID)
		if err != nil {
			return nil, err
		}
		if goal == nil {
			return nil, fmt.Errorf("%w: goal %s", ErrGoalNotFound, entry.GoalID)
		}
		weighted = append(weighted, GoalScoreInput{Weight: goal.Weight, Score: entry.Score})
	}

	score, err := ComputeWeightedScore(weighted, NormalizeTo5)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// =============================================================================
// SCORE SUMMARY (read path)
// =============================================================================

// GoalScoreDetail is one goal's contribution to a decision's current score.
type GoalScoreDetail struct {
	GoalID     GoalID
	GoalName   string
	GoalWeight float64
	Score      int
	Rationale  string
	ComputedBy string
	Version    int
}

// ScoreSummary is a decision's current-version weighted totals with the
// per-goal breakdown.
type ScoreSummary struct {
	Weighted1To5   float64
	Weighted0To100 float64
	GoalScores     []GoalScoreDetail
}

// ScoreSummaryFor assembles the decision's current score summary, or nil when
// the current version has no entries.
func ScoreSummaryFor(ctx context.Context, s Store, decision *Decision) (*ScoreSummary, error) {
	entries, err := s.ScoresForVersion(ctx, decision.ID, decision.Version)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	weighted := make([]GoalScoreInput, 0, len(entries))
	details := make([]GoalScoreDetail, 0, len(entries))
	for _, entry := range entries {
		goal, err := s.GetGoal(ctx, entry.GoalID)
		if err != nil {
			return nil, err
		}
		if goal == nil {
			return nil, fmt.Errorf("%w: goal %s", ErrGoalNotFound, entry.GoalID)
		}
		weighted = append(weighted, GoalScoreInput{Weight: goal.Weight, Score: entry.Score})
		details = append(details, GoalScoreDetail{
			GoalID:     entry.GoalID,
			GoalName:   goal.Name,
			GoalWeight: goal.Weight,
			Score:      entry.Score,
			Rationale:  entry.Rationale,
			ComputedBy: entry.ComputedBy,
			Version:    entry.Version,
		})
	}

	score5, err := ComputeWeightedScore(weighted, NormalizeTo5)
	if err != nil {
		return nil, err
	}
	score100, err := ComputeWeightedScore(weighted, NormalizeTo100)
	if err != nil {
		return nil, err
	}
	return &ScoreSummary{
		Weighted1To5:   score5.InexactFloat64(),
		Weighted0To100: score100.InexactFloat64(),
		GoalScores:     details,
	}, nil
}

// =============================================================================
// BUDGET OPERATIONS
// =============================================================================

// MemberSummary is one member's derived budget state in the active period.
type MemberSummary struct {
	MemberID    MemberID
	DisplayName string
	Role        Role
	Allowance   int
	Used        int
	Remaining   int // clamped to >= 0 for reporting
}

// BudgetSummary is the family's policy plus per-member balances for the
// active period.
type BudgetSummary struct {
	FamilyID         FamilyID
	Threshold        float64
	PeriodDays       int
	DefaultAllowance int
	PeriodStart      Date
	PeriodEnd        Date
	Members          []MemberSummary
}

// BudgetSummary resolves the family's active period (creating or repairing as
// needed), ensures every member holds an allocation, and reports balances.
func (e *Engine) BudgetSummary(ctx context.Context, familyID FamilyID) (*BudgetSummary, error) {
	var summary *BudgetSummary
	err := e.store.WithTx(ctx, func(s Store) error {
		var err error
		summary, err = buildSummary(ctx, s, familyID, e.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func buildSummary(ctx context.Context, s Store, familyID FamilyID, today Date) (*BudgetSummary, error) {
	family, err := s.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	policy, err := GetOrCreatePolicy(ctx, s, familyID)
	if err != nil {
		return nil, err
	}
	period, err := EnsureActivePeriod(ctx, s, familyID, today)
	if err != nil {
		return nil, err
	}

	members, err := s.ListMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}

	summaries := make([]MemberSummary, 0, len(members))
	for _, m := range members {
		if err := EnsureMemberAllocation(ctx, s, familyID, period, m.ID); err != nil {
			return nil, err
		}
		balance, err := MemberRemainingInPeriod(ctx, s, period.ID, m.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, MemberSummary{
			MemberID:    m.ID,
			DisplayName: m.DisplayName,
			Role:        m.Role,
			Allowance:   balance.Allowance,
			Used:        balance.Used,
			Remaining:   balance.RemainingReported(),
		})
	}

	return &BudgetSummary{
		FamilyID:         familyID,
		Threshold:        policy.Threshold,
		PeriodDays:       policy.PeriodDays,
		DefaultAllowance: policy.DefaultAllowance,
		PeriodStart:      period.StartDate,
		PeriodEnd:        period.EndDate,
		Members:          summaries,
	}, nil
}

// MemberAllowance pairs a member with a target allowance in a policy update.
type MemberAllowance struct {
	MemberID  MemberID
	Allowance int
}

// PolicyUpdate carries the full replacement policy for a family. Member
// overrides absent from the list are removed.
type PolicyUpdate struct {
	FamilyID         FamilyID
	Threshold        float64
	PeriodDays       int
	DefaultAllowance int
	MemberAllowances []MemberAllowance
}

// UpdateBudgetPolicy updates the policy fields, replaces per-member overrides,
// and reconciles the CURRENT period only: each member whose configured
// allowance differs from their accumulated allowance-to-date receives one
// policy_adjustment delta. Past periods are never touched.
func (e *Engine) UpdateBudgetPolicy(ctx context.Context, update PolicyUpdate) (*BudgetSummary, error) {
	if update.Threshold < 1 || update.Threshold > 5 {
		return nil, fmt.Errorf("%w: threshold must be between 1 and 5", ErrInvalidPolicy)
	}
	if update.PeriodDays < 1 {
		return nil, fmt.Errorf("%w: period_days must be positive", ErrInvalidPolicy)
	}
	if update.DefaultAllowance < 0 {
		return nil, fmt.Errorf("%w: default_allowance must not be negative", ErrInvalidPolicy)
	}
	for _, ma := range update.MemberAllowances {
		if ma.Allowance < 0 {
			return nil, fmt.Errorf("%w: allowance for member %s must not be negative", ErrInvalidPolicy, ma.MemberID)
		}
	}

	var summary *BudgetSummary
	err := e.store.WithTx(ctx, func(s Store) error {
		family, err := s.GetFamily(ctx, update.FamilyID)
		if err != nil {
			return err
		}
		if family == nil {
			return ErrFamilyNotFound
		}

		members, err := s.ListMembers(ctx, update.FamilyID)
		if err != nil {
			return err
		}
		memberIDs := make(map[MemberID]bool, len(members))
		for _, m := range members {
			memberIDs[m.ID] = true
		}
		for _, ma := range update.MemberAllowances {
			if !memberIDs[ma.MemberID] {
				return fmt.Errorf("%w: member %s does not belong to family", ErrMemberNotFound, ma.MemberID)
			}
		}

		if err := s.SavePolicy(ctx, BudgetPolicy{
			FamilyID:         update.FamilyID,
			Threshold:        update.Threshold,
			PeriodDays:       update.PeriodDays,
			DefaultAllowance: update.DefaultAllowance,
		}); err != nil {
			return err
		}

		// Replace per-member overrides: upsert what the update names, drop
		// the rest.
		existing, err := s.ListMemberSettings(ctx, update.FamilyID)
		if err != nil {
			return err
		}
		requested := make(map[MemberID]int, len(update.MemberAllowances))
		for _, ma := range update.MemberAllowances {
			requested[ma.MemberID] = ma.Allowance
		}
		for memberID, allowance := range requested {
			if err := s.SaveMemberSetting(ctx, MemberBudgetSetting{
				FamilyID:  update.FamilyID,
				MemberID:  memberID,
				Allowance: allowance,
			}); err != nil {
				return err
			}
		}
		for _, setting := range existing {
			if _, keep := requested[setting.MemberID]; !keep {
				if err := s.DeleteMemberSetting(ctx, update.FamilyID, setting.MemberID); err != nil {
					return err
				}
			}
		}

		// Reconcile the current period: bring each member's accumulated
		// allowance up (or down) to the newly configured target.
		period, err := EnsureActivePeriod(ctx, s, update.FamilyID, e.Now())
		if err != nil {
			return err
		}
		allowances, err := MemberAllowanceMap(ctx, s, update.FamilyID, update.DefaultAllowance)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := EnsureMemberAllocation(ctx, s, update.FamilyID, period, m.ID); err != nil {
				return err
			}
			balance, err := MemberRemainingInPeriod(ctx, s, period.ID, m.ID)
			if err != nil {
				return err
			}
			target, ok := allowances[m.ID]
			if !ok {
				target = update.DefaultAllowance
			}
			if delta := target - balance.Allowance; delta != 0 {
				if _, err := s.AppendLedger(ctx, LedgerEntry{
					MemberID: m.ID,
					PeriodID: period.ID,
					Delta:    delta,
					Reason:   ReasonPolicyAdjustment,
				}); err != nil {
					return err
				}
			}
		}

		summary, err = buildSummary(ctx, s, update.FamilyID, e.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ResetBudgetPeriod closes the active period as of yesterday and opens a fresh
// one starting today, granting new allocations.
func (e *Engine) ResetBudgetPeriod(ctx context.Context, familyID FamilyID) (*BudgetSummary, error) {
	var summary *BudgetSummary
	err := e.store.WithTx(ctx, func(s Store) error {
		family, err := s.GetFamily(ctx, familyID)
		if err != nil {
			return err
		}
		if family == nil {
			return ErrFamilyNotFound
		}

		today := e.Now()
		period, err := EnsureActivePeriod(ctx, s, familyID, today)
		if err != nil {
			return err
		}
		period.EndDate = today.AddDays(-1)
		if err := s.UpdatePeriod(ctx, *period); err != nil {
			return err
		}

		summary, err = buildSummary(ctx, s, familyID, today)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// EnsureCurrentPeriod resolves (or creates) the family's active period for
// today. Background rollover jobs call this per family; it is idempotent with
// respect to repeated invocation.
func (e *Engine) EnsureCurrentPeriod(ctx context.Context, familyID FamilyID) (*Period, error) {
	var period *Period
	err := e.store.WithTx(ctx, func(s Store) error {
		var err error
		period, err = EnsureActivePeriod(ctx, s, familyID, e.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return period, nil
}

// PurgeFamily removes a family and everything attached to it. The only flow
// that deletes ledger entries.
func (e *Engine) PurgeFamily(ctx context.Context, familyID FamilyID) error {
	return e.store.WithTx(ctx, func(s Store) error {
		family, err := s.GetFamily(ctx, familyID)
		if err != nil {
			return err
		}
		if family == nil {
			return ErrFamilyNotFound
		}
		return s.DeleteFamily(ctx, familyID)
	})
}
