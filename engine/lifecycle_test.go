package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthplan/hearth/engine"
	"github.com/hearthplan/hearth/engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// fixture is a family with two members and two active goals (weights 0.6 and
// 0.4), driven by an engine pinned to 2025-03-10.
type fixture struct {
	eng     *engine.Engine
	store   *store.Memory
	family  engine.FamilyID
	alice   engine.MemberID
	bob     engine.MemberID
	health  engine.GoalID
	savings engine.GoalID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	mem := store.NewMemory()
	familyID, alice, bob := seedFamily(t, mem)

	require.NoError(t, mem.CreateGoal(ctx, engine.Goal{
		ID: "goal-health", FamilyID: familyID, Name: "Health", Weight: 0.6, Active: true,
	}))
	require.NoError(t, mem.CreateGoal(ctx, engine.Goal{
		ID: "goal-savings", FamilyID: familyID, Name: "Savings", Weight: 0.4, Active: true,
	}))
	require.NoError(t, mem.CreateGoal(ctx, engine.Goal{
		ID: "goal-retired", FamilyID: familyID, Name: "Old priority", Weight: 1, Active: false,
	}))

	eng := engine.New(mem)
	eng.Now = func() engine.Date { return engine.NewDate(2025, 3, 10) }

	return &fixture{
		eng:     eng,
		store:   mem,
		family:  familyID,
		alice:   alice,
		bob:     bob,
		health:  "goal-health",
		savings: "goal-savings",
	}
}

func (f *fixture) newDecision(t *testing.T, id string, urgency *int) engine.DecisionID {
	t.Helper()
	decision := engine.Decision{
		ID:        engine.DecisionID(id),
		FamilyID:  f.family,
		CreatedBy: f.alice,
		Title:     "Decision " + id,
		Urgency:   urgency,
		Status:    engine.StatusDraft,
		Version:   1,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.store.CreateDecision(context.Background(), decision))
	return decision.ID
}

// passingScores produces a 4.2 weighted score against the default 4.0 threshold.
func passingScores(f *fixture) []engine.ScoreInput {
	return []engine.ScoreInput{
		{GoalID: f.health, Score: 5},
		{GoalID: f.savings, Score: 3},
	}
}

// failingScores produces a 2.4 weighted score.
func failingScores(f *fixture) []engine.ScoreInput {
	return []engine.ScoreInput{
		{GoalID: f.health, Score: 2},
		{GoalID: f.savings, Score: 3},
	}
}

func scheduleWithOverride(f *fixture, id engine.DecisionID) engine.ScheduleRequest {
	return engine.ScheduleRequest{
		DecisionID:             id,
		Bucket:                 "next",
		UseDiscretionaryBudget: true,
	}
}

// =============================================================================
// SCORING & ROUTING TESTS
// =============================================================================

func TestScoreDecision_AboveThreshold_RoutesToQueue(t *testing.T) {
	// GIVEN: a draft decision scored 4.2 against the default 4.0 threshold
	// WHEN: scoring it
	// THEN: it routes to the queue at rank 1 with the default priority 3

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)

	result, err := f.eng.ScoreDecision(ctx, decisionID, passingScores(f), 4.0, "")
	require.NoError(t, err)

	assert.Equal(t, engine.OutcomeQueue, result.RoutedTo)
	assert.Equal(t, engine.StatusQueued, result.Status)
	assert.InDelta(t, 4.2, result.Weighted1To5, 0.001)
	assert.InDelta(t, 80.0, result.Weighted0To100, 0.001)
	require.NotNil(t, result.QueueItemID)

	item, err := f.store.QueueItemByDecision(ctx, decisionID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Rank)
	assert.Equal(t, 3, item.Priority, "priority defaults to 3 without urgency")

	decision, err := f.store.GetDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusQueued, decision.Status)
}

func TestScoreDecision_BelowThreshold_NeedsWork(t *testing.T) {
	// GIVEN: a draft decision scored 2.4
	// WHEN: scoring it
	// THEN: it is marked Needs-Work and no queue item is created

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)

	result, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)

	assert.Equal(t, engine.OutcomeNeedsWork, result.RoutedTo)
	assert.Equal(t, engine.StatusNeedsWork, result.Status)
	assert.Nil(t, result.QueueItemID)

	item, err := f.store.QueueItemByDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestScoreDecision_Rescore_OverwritesCurrentVersion(t *testing.T) {
	// GIVEN: a decision already scored at version 1
	// WHEN: rescoring at the same version with different values
	// THEN: the entry set is replaced, not accumulated, and the routing
	//       reflects the new score

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)

	_, err := f.eng.ScoreDecision(ctx, decisionID, passingScores(f), 4.0, "")
	require.NoError(t, err)

	result, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)
	assert.Equal(t, engine.OutcomeNeedsWork, result.RoutedTo)

	entries, err := f.store.ScoresForVersion(ctx, decisionID, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "rescore must replace the version's entries")
}

func TestScoreDecision_QueueRankIsGloballyMonotonic(t *testing.T) {
	// Two decisions routed to the queue take ranks 1 and 2.
	f := newFixture(t)
	ctx := context.Background()
	first := f.newDecision(t, "dec-1", nil)
	second := f.newDecision(t, "dec-2", nil)

	r1, err := f.eng.ScoreDecision(ctx, first, passingScores(f), 4.0, "")
	require.NoError(t, err)
	r2, err := f.eng.ScoreDecision(ctx, second, passingScores(f), 4.0, "")
	require.NoError(t, err)
	require.NotNil(t, r1.QueueItemID)
	require.NotNil(t, r2.QueueItemID)

	i1, err := f.store.QueueItemByDecision(ctx, first)
	require.NoError(t, err)
	i2, err := f.store.QueueItemByDecision(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, i1.Rank)
	assert.Equal(t, 2, i2.Rank)
}

func TestScoreDecision_UrgencyBecomesPriority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	urgency := 5
	decisionID := f.newDecision(t, "dec-1", &urgency)

	_, err := f.eng.ScoreDecision(ctx, decisionID, passingScores(f), 4.0, "")
	require.NoError(t, err)

	item, err := f.store.QueueItemByDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Priority)
}

func TestScoreDecision_InvalidInputs_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)

	t.Run("score out of range", func(t *testing.T) {
		_, err := f.eng.ScoreDecision(ctx, decisionID, []engine.ScoreInput{
			{GoalID: f.health, Score: 6},
		}, 4.0, "")
		assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	})

	t.Run("duplicate goal", func(t *testing.T) {
		_, err := f.eng.ScoreDecision(ctx, decisionID, []engine.ScoreInput{
			{GoalID: f.health, Score: 4},
			{GoalID: f.health, Score: 5},
		}, 4.0, "")
		assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	})

	t.Run("inactive goal", func(t *testing.T) {
		_, err := f.eng.ScoreDecision(ctx, decisionID, []engine.ScoreInput{
			{GoalID: "goal-retired", Score: 4},
		}, 4.0, "")
		assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	})

	t.Run("unknown goal", func(t *testing.T) {
		_, err := f.eng.ScoreDecision(ctx, decisionID, []engine.ScoreInput{
			{GoalID: "goal-nope", Score: 4},
		}, 4.0, "")
		assert.ErrorIs(t, err, engine.ErrGoalNotFound)
	})

	t.Run("unknown decision", func(t *testing.T) {
		_, err := f.eng.ScoreDecision(ctx, "dec-nope", passingScores(f), 4.0, "")
		assert.ErrorIs(t, err, engine.ErrDecisionNotFound)
	})
}

func TestSetDecisionStatus_AdministrativeOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)

	updated, err := f.eng.SetDecisionStatus(ctx, decisionID, "Rejected")
	require.NoError(t, err)
	assert.Equal(t, engine.StatusRejected, updated.Status)

	_, err = f.eng.SetDecisionStatus(ctx, decisionID, "Bogus")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

// =============================================================================
// SCHEDULING TESTS
// =============================================================================

func TestScheduleDecision_MeetsThreshold_NoBudgetSpent(t *testing.T) {
	// GIVEN: a decision whose current score meets the threshold
	// WHEN: scheduling it
	// THEN: a Planned roadmap item is created and no ledger debit is written

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, passingScores(f), 4.0, "")
	require.NoError(t, err)

	result, err := f.eng.ScheduleDecision(ctx, engine.ScheduleRequest{
		DecisionID: decisionID,
		Bucket:     "this-quarter",
	})
	require.NoError(t, err)

	assert.False(t, result.UsedDiscretionary)
	assert.Equal(t, "Planned", result.Item.Status)
	assert.Equal(t, "this-quarter", result.Item.Bucket)

	decision, err := f.store.GetDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusScheduled, decision.Status)

	entries, err := f.store.LedgerForDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScheduleDecision_BelowThreshold_RequiresExplicitOverride(t *testing.T) {
	// GIVEN: a sub-threshold decision
	// WHEN: scheduling without the discretionary flag
	// THEN: ThresholdNotMetError carrying the achieved score

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)

	_, err = f.eng.ScheduleDecision(ctx, engine.ScheduleRequest{DecisionID: decisionID})
	var tErr *engine.ThresholdNotMetError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, 4.0, tErr.Threshold)
	require.NotNil(t, tErr.Achieved)
	assert.InDelta(t, 2.4, *tErr.Achieved, 0.001)
}

func TestScheduleDecision_Unscored_RequiresOverride(t *testing.T) {
	// An unscored decision never meets the threshold; Achieved stays nil.
	f := newFixture(t)
	decisionID := f.newDecision(t, "dec-1", nil)

	_, err := f.eng.ScheduleDecision(context.Background(), engine.ScheduleRequest{DecisionID: decisionID})
	var tErr *engine.ThresholdNotMetError
	require.ErrorAs(t, err, &tErr)
	assert.Nil(t, tErr.Achieved)
}

func TestScheduleDecision_Override_DebitsCreatorLedger(t *testing.T) {
	// GIVEN: a sub-threshold decision and the creator's default allowance of 2
	// WHEN: scheduling with the discretionary override
	// THEN: one -1 debit lands on the creator's ledger and the decision ends
	//       up Scheduled

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)

	result, err := f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, decisionID))
	require.NoError(t, err)
	assert.True(t, result.UsedDiscretionary)

	decision, err := f.store.GetDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusScheduled, decision.Status)

	entries, err := f.store.LedgerForDecision(ctx, decisionID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -1, entries[0].Delta)
	assert.Equal(t, engine.ReasonScheduleOverride, entries[0].Reason)
	assert.Equal(t, f.alice, entries[0].MemberID)

	summary, err := f.eng.BudgetSummary(ctx, f.family)
	require.NoError(t, err)
	for _, m := range summary.Members {
		if m.MemberID == f.alice {
			assert.Equal(t, 1, m.Used)
			assert.Equal(t, 1, m.Remaining)
		}
	}
}

func TestScheduleDecision_Override_BudgetExhausted(t *testing.T) {
	// GIVEN: the creator's allowance reduced to 1 and already spent
	// WHEN: overriding a second sub-threshold decision
	// THEN: BudgetExhaustedError reporting used 1 of 1

	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SaveMemberSetting(ctx, engine.MemberBudgetSetting{
		FamilyID: f.family, MemberID: f.alice, Allowance: 1,
	}))

	first := f.newDecision(t, "dec-1", nil)
	second := f.newDecision(t, "dec-2", nil)
	_, err := f.eng.ScoreDecision(ctx, first, failingScores(f), 4.0, "")
	require.NoError(t, err)
	_, err = f.eng.ScoreDecision(ctx, second, failingScores(f), 4.0, "")
	require.NoError(t, err)

	_, err = f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, first))
	require.NoError(t, err)

	_, err = f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, second))
	require.ErrorIs(t, err, engine.ErrBudgetExhausted)
	var bErr *engine.BudgetExhaustedError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, f.alice, bErr.MemberID)
	assert.Equal(t, 1, bErr.Used)
	assert.Equal(t, 1, bErr.Allowance)

	// The failed attempt must leave no roadmap item behind.
	items, err := f.store.ListRoadmapItems(ctx, f.family)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// =============================================================================
// UNSCHEDULE & REFUND TESTS
// =============================================================================

func TestUnscheduleDecision_RefundsOverrideDebit(t *testing.T) {
	// GIVEN: a decision scheduled via discretionary override
	// WHEN: unscheduling it
	// THEN: the debit is refunded and the roadmap item is gone

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)
	scheduled, err := f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, decisionID))
	require.NoError(t, err)

	refunded, err := f.eng.UnscheduleDecision(ctx, scheduled.Item.ID)
	require.NoError(t, err)
	assert.True(t, refunded)

	item, err := f.store.GetRoadmapItem(ctx, scheduled.Item.ID)
	require.NoError(t, err)
	assert.Nil(t, item)

	summary, err := f.eng.BudgetSummary(ctx, f.family)
	require.NoError(t, err)
	for _, m := range summary.Members {
		if m.MemberID == f.alice {
			assert.Equal(t, 0, m.Used, "refund must restore the balance")
			assert.Equal(t, 2, m.Remaining)
		}
	}
}

func TestUnscheduleDecision_RescheduleCycle_NeverOverRefunds(t *testing.T) {
	// Each schedule/unschedule pair exchanges one debit for one refund. After
	// two full cycles the ledger carries 2 debits and 2 refunds, nothing more.
	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		scheduled, err := f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, decisionID))
		require.NoError(t, err)
		refunded, err := f.eng.UnscheduleDecision(ctx, scheduled.Item.ID)
		require.NoError(t, err)
		assert.True(t, refunded)
	}

	entries, err := f.store.LedgerForDecision(ctx, decisionID)
	require.NoError(t, err)
	var debits, refunds int
	for _, e := range entries {
		switch e.Reason {
		case engine.ReasonScheduleOverride:
			debits++
		case engine.ReasonUnscheduleRefund:
			refunds++
		}
	}
	assert.Equal(t, 2, debits)
	assert.Equal(t, 2, refunds)
}

func TestUnscheduleDecision_ThresholdMetItem_NoRefund(t *testing.T) {
	// Items scheduled on merit spent nothing, so nothing comes back.
	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, passingScores(f), 4.0, "")
	require.NoError(t, err)
	scheduled, err := f.eng.ScheduleDecision(ctx, engine.ScheduleRequest{DecisionID: decisionID})
	require.NoError(t, err)

	refunded, err := f.eng.UnscheduleDecision(ctx, scheduled.Item.ID)
	require.NoError(t, err)
	assert.False(t, refunded)
}

func TestUnscheduleDecision_DoneItem_ConsumesSpend(t *testing.T) {
	// GIVEN: an override-scheduled item whose work already reached Done
	// WHEN: unscheduling it
	// THEN: no refund; the discretionary unit stays spent

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)
	scheduled, err := f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, decisionID))
	require.NoError(t, err)

	item := scheduled.Item
	item.Status = engine.RoadmapStatusDone
	require.NoError(t, f.store.UpdateRoadmapItem(ctx, item))

	refunded, err := f.eng.UnscheduleDecision(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, refunded)

	summary, err := f.eng.BudgetSummary(ctx, f.family)
	require.NoError(t, err)
	for _, m := range summary.Members {
		if m.MemberID == f.alice {
			assert.Equal(t, 1, m.Used)
		}
	}
}

func TestUnscheduleDecision_UnknownItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.eng.UnscheduleDecision(context.Background(), "item-nope")
	assert.ErrorIs(t, err, engine.ErrRoadmapItemNotFound)
}

// =============================================================================
// BUDGET SUMMARY & POLICY TESTS
// =============================================================================

func TestBudgetSummary_CreatesDefaultsOnFirstAccess(t *testing.T) {
	f := newFixture(t)

	summary, err := f.eng.BudgetSummary(context.Background(), f.family)
	require.NoError(t, err)

	assert.Equal(t, 4.0, summary.Threshold)
	assert.Equal(t, 90, summary.PeriodDays)
	assert.Equal(t, 2, summary.DefaultAllowance)
	assert.True(t, summary.PeriodStart.Equal(engine.NewDate(2025, 3, 10)))
	assert.True(t, summary.PeriodEnd.Equal(engine.NewDate(2025, 6, 7)))
	require.Len(t, summary.Members, 2)
	for _, m := range summary.Members {
		assert.Equal(t, 2, m.Allowance)
		assert.Equal(t, 0, m.Used)
		assert.Equal(t, 2, m.Remaining)
	}
}

func TestUpdateBudgetPolicy_ReconcilesCurrentPeriod(t *testing.T) {
	// GIVEN: an active period with default allowances of 2 already granted
	// WHEN: raising the default to 4 and pinning bob to 1
	// THEN: each member receives one policy_adjustment delta bringing their
	//       accumulated allowance to the new target

	f := newFixture(t)
	ctx := context.Background()
	_, err := f.eng.BudgetSummary(ctx, f.family)
	require.NoError(t, err)

	summary, err := f.eng.UpdateBudgetPolicy(ctx, engine.PolicyUpdate{
		FamilyID:         f.family,
		Threshold:        3.5,
		PeriodDays:       90,
		DefaultAllowance: 4,
		MemberAllowances: []engine.MemberAllowance{{MemberID: f.bob, Allowance: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3.5, summary.Threshold)
	for _, m := range summary.Members {
		switch m.MemberID {
		case f.alice:
			assert.Equal(t, 4, m.Allowance)
		case f.bob:
			assert.Equal(t, 1, m.Allowance)
		}
	}

	// Alice got +2 up to the new default, bob -1 down to the override.
	periods, err := f.store.PeriodsContaining(ctx, f.family, engine.NewDate(2025, 3, 10))
	require.NoError(t, err)
	require.Len(t, periods, 1)

	aliceEntries, err := f.store.LedgerForMemberPeriod(ctx, f.alice, periods[0].ID)
	require.NoError(t, err)
	require.Len(t, aliceEntries, 2)
	assert.Equal(t, engine.ReasonPolicyAdjustment, aliceEntries[1].Reason)
	assert.Equal(t, 2, aliceEntries[1].Delta)

	bobEntries, err := f.store.LedgerForMemberPeriod(ctx, f.bob, periods[0].ID)
	require.NoError(t, err)
	require.Len(t, bobEntries, 2)
	assert.Equal(t, engine.ReasonPolicyAdjustment, bobEntries[1].Reason)
	assert.Equal(t, -1, bobEntries[1].Delta)
}

func TestUpdateBudgetPolicy_NoDeltaWhenUnchanged(t *testing.T) {
	// Re-applying the same policy writes no adjustment entries.
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.eng.BudgetSummary(ctx, f.family)
	require.NoError(t, err)

	update := engine.PolicyUpdate{
		FamilyID: f.family, Threshold: 4.0, PeriodDays: 90, DefaultAllowance: 2,
	}
	_, err = f.eng.UpdateBudgetPolicy(ctx, update)
	require.NoError(t, err)

	periods, err := f.store.PeriodsContaining(ctx, f.family, engine.NewDate(2025, 3, 10))
	require.NoError(t, err)
	entries, err := f.store.LedgerForMemberPeriod(ctx, f.alice, periods[0].ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the original allocation")
}

func TestUpdateBudgetPolicy_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		update engine.PolicyUpdate
		want   error
	}{
		{
			name:   "threshold below scale",
			update: engine.PolicyUpdate{FamilyID: f.family, Threshold: 0.5, PeriodDays: 90, DefaultAllowance: 2},
			want:   engine.ErrInvalidPolicy,
		},
		{
			name:   "zero period days",
			update: engine.PolicyUpdate{FamilyID: f.family, Threshold: 4, PeriodDays: 0, DefaultAllowance: 2},
			want:   engine.ErrInvalidPolicy,
		},
		{
			name:   "negative allowance",
			update: engine.PolicyUpdate{FamilyID: f.family, Threshold: 4, PeriodDays: 90, DefaultAllowance: -1},
			want:   engine.ErrInvalidPolicy,
		},
		{
			name: "override for foreign member",
			update: engine.PolicyUpdate{
				FamilyID: f.family, Threshold: 4, PeriodDays: 90, DefaultAllowance: 2,
				MemberAllowances: []engine.MemberAllowance{{MemberID: "mem-nope", Allowance: 1}},
			},
			want: engine.ErrMemberNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.eng.UpdateBudgetPolicy(ctx, tc.update)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestResetBudgetPeriod_OpensFreshPeriod(t *testing.T) {
	// GIVEN: an active period with one discretionary unit spent
	// WHEN: resetting the period
	// THEN: a fresh period opens today with full allowances; the spend stays
	//       recorded against the closed period

	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)
	_, err = f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, decisionID))
	require.NoError(t, err)

	summary, err := f.eng.ResetBudgetPeriod(ctx, f.family)
	require.NoError(t, err)

	assert.True(t, summary.PeriodStart.Equal(engine.NewDate(2025, 3, 10)))
	for _, m := range summary.Members {
		assert.Equal(t, 0, m.Used, "member %s starts the new period clean", m.MemberID)
		assert.Equal(t, 2, m.Remaining)
	}
}

// =============================================================================
// PURGE TESTS
// =============================================================================

func TestPurgeFamily_RemovesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	decisionID := f.newDecision(t, "dec-1", nil)
	_, err := f.eng.ScoreDecision(ctx, decisionID, failingScores(f), 4.0, "")
	require.NoError(t, err)
	_, err = f.eng.ScheduleDecision(ctx, scheduleWithOverride(f, decisionID))
	require.NoError(t, err)

	require.NoError(t, f.eng.PurgeFamily(ctx, f.family))

	family, err := f.store.GetFamily(ctx, f.family)
	require.NoError(t, err)
	assert.Nil(t, family)

	decision, err := f.store.GetDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Nil(t, decision)

	entries, err := f.store.LedgerForDecision(ctx, decisionID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = f.eng.PurgeFamily(ctx, f.family)
	assert.ErrorIs(t, err, engine.ErrFamilyNotFound)
}
