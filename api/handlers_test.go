/*
handlers_test.go - HTTP-level tests for the decision API

Exercises the full router against the in-memory store: family and goal
setup, the score-route-schedule flow, discretionary overrides and refunds,
and the error status mapping.
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthplan/hearth/engine"
	"github.com/hearthplan/hearth/engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	eng := engine.New(store.NewMemory())
	eng.Now = func() engine.Date { return engine.NewDate(2025, 3, 10) }
	return NewRouter(NewHandler(eng), nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

// testFamily creates a family with one admin member and two weighted goals,
// returning the created IDs.
type testFamily struct {
	FamilyID string
	MemberID string
	Health   string
	Savings  string
}

func setupFamily(t *testing.T, h http.Handler) testFamily {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/families", CreateFamilyRequest{Name: "Reyes"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	family := decode[FamilyDTO](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/families/"+family.ID+"/members", AddMemberRequest{
		Email: "alice@example.com", DisplayName: "Alice", Role: "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	member := decode[MemberDTO](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/goals", CreateGoalRequest{
		FamilyID: family.ID, Name: "Health", Weight: 0.6,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	health := decode[GoalDTO](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/goals", CreateGoalRequest{
		FamilyID: family.ID, Name: "Savings", Weight: 0.4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	savings := decode[GoalDTO](t, rec)

	return testFamily{
		FamilyID: family.ID,
		MemberID: member.ID,
		Health:   health.ID,
		Savings:  savings.ID,
	}
}

func createDecision(t *testing.T, h http.Handler, tf testFamily, title string) DecisionDTO {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/decisions", CreateDecisionRequest{
		FamilyID: tf.FamilyID, CreatedBy: tf.MemberID, Title: title,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[DecisionDTO](t, rec)
}

func scoreDecision(t *testing.T, h http.Handler, tf testFamily, decisionID string, health, savings int) ScoreResultDTO {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/decisions/"+decisionID+"/score", ScoreDecisionRequest{
		Scores: []GoalScoreRequest{
			{GoalID: tf.Health, Score: health},
			{GoalID: tf.Savings, Score: savings},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[ScoreResultDTO](t, rec)
}

// =============================================================================
// FAMILY & GOAL TESTS
// =============================================================================

func TestAPI_FamilyLifecycle(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	// Detail includes the member roster.
	rec := doJSON(t, h, http.MethodGet, "/api/families/"+tf.FamilyID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	family := decode[FamilyDTO](t, rec)
	assert.Equal(t, "Reyes", family.Name)
	require.Len(t, family.Members, 1)
	assert.Equal(t, "alice@example.com", family.Members[0].Email)

	rec = doJSON(t, h, http.MethodGet, "/api/families/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/families/"+tf.FamilyID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/families/"+tf.FamilyID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_AddMember_DuplicateEmail_Conflict(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/families/"+tf.FamilyID+"/members", AddMemberRequest{
		Email: "alice@example.com", DisplayName: "Imposter",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPI_CreateGoal_RejectsNonPositiveWeight(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/goals", CreateGoalRequest{
		FamilyID: tf.FamilyID, Name: "Broken", Weight: 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// SCORE & ROUTE TESTS
// =============================================================================

func TestAPI_ScoreDecision_RoutesToQueue(t *testing.T) {
	// GIVEN: a decision scored 4.2 against the default 4.0 threshold
	// WHEN: posting the scores
	// THEN: the result reports queue routing and the queue listing shows it

	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "New dishwasher")

	result := scoreDecision(t, h, tf, decision.ID, 5, 3)
	assert.Equal(t, "queue", result.RoutedTo)
	assert.Equal(t, "Queued", result.Status)
	assert.InDelta(t, 4.2, result.Weighted1To5, 0.001)
	assert.InDelta(t, 80.0, result.Weighted0To100, 0.001)
	assert.NotNil(t, result.QueueItemID)

	rec := doJSON(t, h, http.MethodGet, "/api/queue?family_id="+tf.FamilyID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	queue := decode[[]QueueItemDTO](t, rec)
	require.Len(t, queue, 1)
	assert.Equal(t, decision.ID, queue[0].DecisionID)
	assert.Equal(t, 1, queue[0].Rank)

	// Detail now carries the score summary.
	rec = doJSON(t, h, http.MethodGet, "/api/decisions/"+decision.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[DecisionDTO](t, rec)
	require.NotNil(t, detail.Score)
	assert.Len(t, detail.Score.GoalScores, 2)
}

func TestAPI_ScoreDecision_BelowThreshold_NeedsWork(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "Gold-plated faucet")

	result := scoreDecision(t, h, tf, decision.ID, 2, 3)
	assert.Equal(t, "needs_work", result.RoutedTo)
	assert.Equal(t, "Needs-Work", result.Status)
	assert.Nil(t, result.QueueItemID)
}

func TestAPI_ScoreDecision_ValidationErrors(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "Test")

	// Out-of-range rating.
	rec := doJSON(t, h, http.MethodPost, "/api/decisions/"+decision.ID+"/score", ScoreDecisionRequest{
		Scores: []GoalScoreRequest{{GoalID: tf.Health, Score: 6}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown goal.
	rec = doJSON(t, h, http.MethodPost, "/api/decisions/"+decision.ID+"/score", ScoreDecisionRequest{
		Scores: []GoalScoreRequest{{GoalID: "goal-nope", Score: 3}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Unknown decision.
	rec = doJSON(t, h, http.MethodPost, "/api/decisions/nope/score", ScoreDecisionRequest{
		Scores: []GoalScoreRequest{{GoalID: tf.Health, Score: 3}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Empty score set.
	rec = doJSON(t, h, http.MethodPost, "/api/decisions/"+decision.ID+"/score", ScoreDecisionRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_StatusOverride(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "Test")

	rec := doJSON(t, h, http.MethodPost, "/api/decisions/"+decision.ID+"/status", SetStatusRequest{Status: "Rejected"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[DecisionDTO](t, rec)
	assert.Equal(t, "Rejected", updated.Status)

	rec = doJSON(t, h, http.MethodPost, "/api/decisions/"+decision.ID+"/status", SetStatusRequest{Status: "Bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// SCHEDULE & BUDGET FLOW TESTS
// =============================================================================

func TestAPI_ScheduleFlow_ThresholdMet(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "New dishwasher")
	scoreDecision(t, h, tf, decision.ID, 5, 3)

	rec := doJSON(t, h, http.MethodPost, "/api/roadmap", ScheduleRequest{
		DecisionID: decision.ID, Bucket: "this-quarter",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[ScheduleResultDTO](t, rec)
	assert.False(t, result.UsedDiscretionary)
	assert.Equal(t, "Planned", result.Item.Status)

	rec = doJSON(t, h, http.MethodGet, "/api/roadmap?family_id="+tf.FamilyID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]RoadmapItemDTO](t, rec)
	assert.Len(t, items, 1)
}

func TestAPI_ScheduleFlow_DiscretionaryOverride(t *testing.T) {
	// Full override round trip: rejected without the flag, debited with it,
	// refunded on unschedule.

	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "Gold-plated faucet")
	scoreDecision(t, h, tf, decision.ID, 2, 3)

	rec := doJSON(t, h, http.MethodPost, "/api/roadmap", ScheduleRequest{
		DecisionID: decision.ID, Bucket: "someday",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "sub-threshold without override must be rejected")

	rec = doJSON(t, h, http.MethodPost, "/api/roadmap", ScheduleRequest{
		DecisionID: decision.ID, Bucket: "someday", UseDiscretionaryBudget: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[ScheduleResultDTO](t, rec)
	assert.True(t, result.UsedDiscretionary)

	rec = doJSON(t, h, http.MethodGet, "/api/budgets/families/"+tf.FamilyID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[BudgetSummaryDTO](t, rec)
	require.Len(t, summary.Members, 1)
	assert.Equal(t, 1, summary.Members[0].Used)
	assert.Equal(t, 1, summary.Members[0].Remaining)

	rec = doJSON(t, h, http.MethodDelete, "/api/roadmap/"+result.Item.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unscheduled := decode[UnscheduleResultDTO](t, rec)
	assert.True(t, unscheduled.Refunded)

	rec = doJSON(t, h, http.MethodGet, "/api/budgets/families/"+tf.FamilyID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary = decode[BudgetSummaryDTO](t, rec)
	assert.Equal(t, 0, summary.Members[0].Used)
	assert.Equal(t, 2, summary.Members[0].Remaining)
}

func TestAPI_ScheduleFlow_BudgetExhausted(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	// Pin the allowance to 1 so a single override exhausts it.
	rec := doJSON(t, h, http.MethodPut, "/api/budgets/families/"+tf.FamilyID+"/policy", UpdatePolicyRequest{
		Threshold: 4.0, PeriodDays: 90, DefaultAllowance: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for i, wantStatus := range []int{http.StatusCreated, http.StatusBadRequest} {
		decision := createDecision(t, h, tf, fmt.Sprintf("Splurge %d", i))
		scoreDecision(t, h, tf, decision.ID, 2, 3)
		rec = doJSON(t, h, http.MethodPost, "/api/roadmap", ScheduleRequest{
			DecisionID: decision.ID, Bucket: "someday", UseDiscretionaryBudget: true,
		})
		assert.Equal(t, wantStatus, rec.Code, rec.Body.String())
	}
}

func TestAPI_BudgetSummary_Defaults(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/budgets/families/"+tf.FamilyID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[BudgetSummaryDTO](t, rec)

	assert.Equal(t, 4.0, summary.Threshold)
	assert.Equal(t, 90, summary.PeriodDays)
	assert.Equal(t, 2, summary.DefaultAllowance)
	assert.Equal(t, "2025-03-10", summary.PeriodStart)
	assert.Equal(t, "2025-06-07", summary.PeriodEnd)
}

func TestAPI_UpdatePolicy_InvalidThreshold(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/budgets/families/"+tf.FamilyID+"/policy", UpdatePolicyRequest{
		Threshold: 0.5, PeriodDays: 90, DefaultAllowance: 2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ResetBudgetPeriod(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	decision := createDecision(t, h, tf, "Splurge")
	scoreDecision(t, h, tf, decision.ID, 2, 3)
	rec := doJSON(t, h, http.MethodPost, "/api/roadmap", ScheduleRequest{
		DecisionID: decision.ID, Bucket: "someday", UseDiscretionaryBudget: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/budgets/families/"+tf.FamilyID+"/period/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[BudgetSummaryDTO](t, rec)
	assert.Equal(t, 0, summary.Members[0].Used, "new period starts clean")
	assert.Equal(t, 2, summary.Members[0].Remaining)
}

// =============================================================================
// DECISION CRUD TESTS
// =============================================================================

func TestAPI_CreateDecision_UnknownCreator(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/decisions", CreateDecisionRequest{
		FamilyID: tf.FamilyID, CreatedBy: "mem-nope", Title: "Test",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_UpdateDecision_PartialPatch(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "Old title")

	title := "New title"
	notes := "now with notes"
	rec := doJSON(t, h, http.MethodPatch, "/api/decisions/"+decision.ID, UpdateDecisionRequest{
		Title: &title, Notes: &notes,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[DecisionDTO](t, rec)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "now with notes", updated.Notes)
	assert.Equal(t, decision.CreatedBy, updated.CreatedBy, "unsent fields unchanged")
}

func TestAPI_DeleteDecision(t *testing.T) {
	h := newTestServer(t)
	tf := setupFamily(t, h)
	decision := createDecision(t, h, tf, "Short-lived")

	rec := doJSON(t, h, http.MethodDelete, "/api/decisions/"+decision.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/decisions/"+decision.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Healthz(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
}
