/*
handlers.go - HTTP API handlers for the household decision engine

PURPOSE:
  Exposes the decision engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Families:
    POST   /api/families                Create family
    GET    /api/families                List families
    GET    /api/families/{id}           Family detail with members
    DELETE /api/families/{id}           Purge family and all dependents
    POST   /api/families/{id}/members   Add member

  Goals:
    POST   /api/goals                   Create goal
    GET    /api/goals?family_id=        List goals
    PUT    /api/goals/{id}              Update goal

  Decisions:
    POST   /api/decisions               Create decision (Draft)
    GET    /api/decisions?family_id=    List decisions
    GET    /api/decisions/{id}          Decision with current score
    PATCH  /api/decisions/{id}          Update fields
    DELETE /api/decisions/{id}          Delete (cascades)
    POST   /api/decisions/{id}/score    Score and route
    POST   /api/decisions/{id}/queue    Manual queue placement
    POST   /api/decisions/{id}/status   Administrative status override

  Queue & Roadmap:
    GET    /api/queue?family_id=        Queue ordered by rank
    POST   /api/roadmap                 Schedule a decision
    GET    /api/roadmap?family_id=      List roadmap items
    PATCH  /api/roadmap/{id}            Update item
    DELETE /api/roadmap/{id}            Unschedule (refund if eligible)

  Budget:
    GET    /api/budgets/families/{id}              Budget summary
    PUT    /api/budgets/families/{id}/policy       Update policy + reconcile
    POST   /api/budgets/families/{id}/period/reset Close period, open fresh one

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, threshold/budget rejections
  - 404: Entity not found
  - 409: Conflict (duplicate member email)
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - engine/lifecycle.go: The orchestration these handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthplan/hearth/engine"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *engine.Engine
	Store  engine.TxStore
}

// NewHandler creates a handler bound to the engine.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{Engine: eng, Store: eng.Store()}
}

// =============================================================================
// FAMILY HANDLERS
// =============================================================================

// CreateFamily creates a new family.
func (h *Handler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	family := engine.Family{
		ID:        engine.FamilyID(uuid.NewString()),
		Name:      req.Name,
		CreatedAt: nowUTC(),
	}
	if err := h.Store.CreateFamily(r.Context(), family); err != nil {
		writeDomainError(w, "Failed to create family", err)
		return
	}
	writeJSON(w, http.StatusCreated, familyDTO(family))
}

// ListFamilies returns all families.
func (h *Handler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.Store.ListFamilies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list families", err)
		return
	}

	dtos := make([]FamilyDTO, len(families))
	for i, f := range families {
		dtos[i] = familyDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetFamily returns a family with its members.
func (h *Handler) GetFamily(w http.ResponseWriter, r *http.Request) {
	id := engine.FamilyID(chi.URLParam(r, "id"))

	family, err := h.Store.GetFamily(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get family", err)
		return
	}
	if family == nil {
		writeError(w, http.StatusNotFound, "Family not found", nil)
		return
	}

	members, err := h.Store.ListMembers(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}

	dto := familyDTO(*family)
	dto.Members = make([]MemberDTO, len(members))
	for i, m := range members {
		dto.Members[i] = memberDTO(m)
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeleteFamily purges a family and everything attached to it.
func (h *Handler) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	id := engine.FamilyID(chi.URLParam(r, "id"))

	if err := h.Engine.PurgeFamily(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete family", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMember adds a member to a family. Emails are unique across families.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(chi.URLParam(r, "id"))

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Email == "" || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "email and display_name are required", nil)
		return
	}
	role := engine.Role(req.Role)
	if role == "" {
		role = engine.RoleEditor
	}
	if role != engine.RoleAdmin && role != engine.RoleEditor && role != engine.RoleViewer {
		writeError(w, http.StatusBadRequest, "role must be admin, editor, or viewer", nil)
		return
	}

	member := engine.Member{
		ID:          engine.MemberID(uuid.NewString()),
		FamilyID:    familyID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        role,
	}
	if err := h.Store.CreateMember(r.Context(), member); err != nil {
		writeDomainError(w, "Failed to add member", err)
		return
	}
	writeJSON(w, http.StatusCreated, memberDTO(member))
}

// =============================================================================
// GOAL HANDLERS
// =============================================================================

// CreateGoal creates a scoring goal for a family.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FamilyID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "family_id and name are required", nil)
		return
	}
	if req.Weight <= 0 {
		writeError(w, http.StatusBadRequest, "weight must be positive", nil)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	goal := engine.Goal{
		ID:          engine.GoalID(uuid.NewString()),
		FamilyID:    engine.FamilyID(req.FamilyID),
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Active:      active,
	}
	if err := h.Store.CreateGoal(r.Context(), goal); err != nil {
		writeDomainError(w, "Failed to create goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, goalDTO(goal))
}

// ListGoals returns the family's goals.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(r.URL.Query().Get("family_id"))
	if familyID == "" {
		writeError(w, http.StatusBadRequest, "family_id query parameter is required", nil)
		return
	}

	goals, err := h.Store.ListGoals(r.Context(), familyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list goals", err)
		return
	}

	dtos := make([]GoalDTO, len(goals))
	for i, g := range goals {
		dtos[i] = goalDTO(g)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpdateGoal updates goal fields. Deactivation (active=false) retires the goal
// from future scoring without touching historical entries.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := engine.GoalID(chi.URLParam(r, "id"))

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	goal, err := h.Store.GetGoal(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get goal", err)
		return
	}
	if goal == nil {
		writeError(w, http.StatusNotFound, "Goal not found", nil)
		return
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			writeError(w, http.StatusBadRequest, "weight must be positive", nil)
			return
		}
		goal.Weight = *req.Weight
	}
	if req.Active != nil {
		goal.Active = *req.Active
	}

	if err := h.Store.UpdateGoal(r.Context(), *goal); err != nil {
		writeDomainError(w, "Failed to update goal", err)
		return
	}
	writeJSON(w, http.StatusOK, goalDTO(*goal))
}

// =============================================================================
// DECISION HANDLERS
// =============================================================================

// CreateDecision creates a decision in Draft.
func (h *Handler) CreateDecision(w http.ResponseWriter, r *http.Request) {
	var req CreateDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FamilyID == "" || req.CreatedBy == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "family_id, created_by and title are required", nil)
		return
	}

	creator, err := h.Store.GetMember(r.Context(), engine.MemberID(req.CreatedBy))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve member", err)
		return
	}
	if creator == nil || creator.FamilyID != engine.FamilyID(req.FamilyID) {
		writeError(w, http.StatusNotFound, "Member not found in family", nil)
		return
	}

	decision := engine.Decision{
		ID:          engine.DecisionID(uuid.NewString()),
		FamilyID:    engine.FamilyID(req.FamilyID),
		CreatedBy:   engine.MemberID(req.CreatedBy),
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
		Urgency:     req.Urgency,
		Tags:        req.Tags,
		Status:      engine.StatusDraft,
		Notes:       req.Notes,
		Version:     1,
		CreatedAt:   nowUTC(),
	}
	if req.Owner != nil {
		owner := engine.MemberID(*req.Owner)
		decision.Owner = &owner
	}
	if req.TargetDate != nil {
		td, err := engine.ParseDate(*req.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid target_date format (use YYYY-MM-DD)", err)
			return
		}
		decision.TargetDate = &td
	}

	if err := h.Store.CreateDecision(r.Context(), decision); err != nil {
		writeDomainError(w, "Failed to create decision", err)
		return
	}
	writeJSON(w, http.StatusCreated, decisionDTO(decision))
}

// ListDecisions returns the family's decisions, newest first.
func (h *Handler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(r.URL.Query().Get("family_id"))
	if familyID == "" {
		writeError(w, http.StatusBadRequest, "family_id query parameter is required", nil)
		return
	}

	decisions, err := h.Store.ListDecisions(r.Context(), familyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list decisions", err)
		return
	}

	dtos := make([]DecisionDTO, len(decisions))
	for i, d := range decisions {
		dtos[i] = decisionDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDecision returns a decision with its current-version score summary.
func (h *Handler) GetDecision(w http.ResponseWriter, r *http.Request) {
	id := engine.DecisionID(chi.URLParam(r, "id"))

	decision, err := h.Store.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get decision", err)
		return
	}
	if decision == nil {
		writeError(w, http.StatusNotFound, "Decision not found", nil)
		return
	}

	dto := decisionDTO(*decision)
	summary, err := engine.ScoreSummaryFor(r.Context(), h.Store, decision)
	if err != nil {
		writeDomainError(w, "Failed to compute score summary", err)
		return
	}
	if summary != nil {
		dto.Score = scoreDTO(*summary)
	}
	writeJSON(w, http.StatusOK, dto)
}

// UpdateDecision updates decision fields. Status is not editable here; use the
// status override endpoint.
func (h *Handler) UpdateDecision(w http.ResponseWriter, r *http.Request) {
	id := engine.DecisionID(chi.URLParam(r, "id"))

	var req UpdateDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	decision, err := h.Store.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get decision", err)
		return
	}
	if decision == nil {
		writeError(w, http.StatusNotFound, "Decision not found", nil)
		return
	}

	if req.Owner != nil {
		owner := engine.MemberID(*req.Owner)
		decision.Owner = &owner
	}
	if req.Title != nil {
		decision.Title = *req.Title
	}
	if req.Description != nil {
		decision.Description = *req.Description
	}
	if req.Cost != nil {
		decision.Cost = req.Cost
	}
	if req.Urgency != nil {
		decision.Urgency = req.Urgency
	}
	if req.TargetDate != nil {
		td, err := engine.ParseDate(*req.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid target_date format (use YYYY-MM-DD)", err)
			return
		}
		decision.TargetDate = &td
	}
	if req.Tags != nil {
		decision.Tags = *req.Tags
	}
	if req.Notes != nil {
		decision.Notes = *req.Notes
	}

	if err := h.Store.UpdateDecision(r.Context(), *decision); err != nil {
		writeDomainError(w, "Failed to update decision", err)
		return
	}
	writeJSON(w, http.StatusOK, decisionDTO(*decision))
}

// DeleteDecision deletes a decision and cascades to its scores, queue item,
// and roadmap items. Ledger entries referencing it are kept.
func (h *Handler) DeleteDecision(w http.ResponseWriter, r *http.Request) {
	id := engine.DecisionID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteDecision(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete decision", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScoreDecision scores a decision against the family's goals and routes it by
// the policy threshold.
func (h *Handler) ScoreDecision(w http.ResponseWriter, r *http.Request) {
	id := engine.DecisionID(chi.URLParam(r, "id"))

	var req ScoreDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Scores) == 0 {
		writeError(w, http.StatusBadRequest, "scores must not be empty", nil)
		return
	}

	decision, err := h.Store.GetDecision(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get decision", err)
		return
	}
	if decision == nil {
		writeError(w, http.StatusNotFound, "Decision not found", nil)
		return
	}

	policy, err := engine.GetOrCreatePolicy(r.Context(), h.Store, decision.FamilyID)
	if err != nil {
		writeDomainError(w, "Failed to resolve budget policy", err)
		return
	}

	inputs := make([]engine.ScoreInput, len(req.Scores))
	for i, s := range req.Scores {
		inputs[i] = engine.ScoreInput{
			GoalID:    engine.GoalID(s.GoalID),
			Score:     s.Score,
			Rationale: s.Rationale,
		}
	}

	result, err := h.Engine.ScoreDecision(r.Context(), id, inputs, policy.Threshold, req.ComputedBy)
	if err != nil {
		writeDomainError(w, "Failed to score decision", err)
		return
	}
	decisionsScored.WithLabelValues(string(result.RoutedTo)).Inc()

	dto := ScoreResultDTO{
		DecisionID:     string(result.DecisionID),
		Weighted1To5:   result.Weighted1To5,
		Weighted0To100: result.Weighted0To100,
		Threshold:      result.Threshold,
		RoutedTo:       string(result.RoutedTo),
		Status:         string(result.Status),
	}
	if result.QueueItemID != nil {
		qid := string(*result.QueueItemID)
		dto.QueueItemID = &qid
	}
	writeJSON(w, http.StatusOK, dto)
}

// QueueDecision forces a decision onto the queue without scoring it.
func (h *Handler) QueueDecision(w http.ResponseWriter, r *http.Request) {
	id := engine.DecisionID(chi.URLParam(r, "id"))

	item, err := h.Engine.QueueDecision(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to queue decision", err)
		return
	}
	writeJSON(w, http.StatusOK, queueItemDTO(*item))
}

// SetDecisionStatus is the administrative status override.
func (h *Handler) SetDecisionStatus(w http.ResponseWriter, r *http.Request) {
	id := engine.DecisionID(chi.URLParam(r, "id"))

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	decision, err := h.Engine.SetDecisionStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDomainError(w, "Failed to set status", err)
		return
	}
	writeJSON(w, http.StatusOK, decisionDTO(*decision))
}

// =============================================================================
// QUEUE & ROADMAP HANDLERS
// =============================================================================

// ListQueue returns the family's queue items ordered by rank.
func (h *Handler) ListQueue(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(r.URL.Query().Get("family_id"))
	if familyID == "" {
		writeError(w, http.StatusBadRequest, "family_id query parameter is required", nil)
		return
	}

	items, err := h.Store.ListQueueItems(r.Context(), familyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list queue", err)
		return
	}

	dtos := make([]QueueItemDTO, len(items))
	for i, item := range items {
		dtos[i] = queueItemDTO(item)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ScheduleDecision places a decision onto the roadmap, spending discretionary
// budget when the score misses the threshold and the caller opted in.
func (h *Handler) ScheduleDecision(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.DecisionID == "" || req.Bucket == "" {
		writeError(w, http.StatusBadRequest, "decision_id and bucket are required", nil)
		return
	}

	engReq := engine.ScheduleRequest{
		DecisionID:             engine.DecisionID(req.DecisionID),
		Bucket:                 req.Bucket,
		Status:                 req.Status,
		Dependencies:           req.Dependencies,
		UseDiscretionaryBudget: req.UseDiscretionaryBudget,
	}
	if req.StartDate != nil {
		d, err := engine.ParseDate(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
			return
		}
		engReq.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := engine.ParseDate(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
			return
		}
		engReq.EndDate = &d
	}

	result, err := h.Engine.ScheduleDecision(r.Context(), engReq)
	if err != nil {
		if errors.Is(err, engine.ErrBudgetExhausted) {
			budgetExhaustions.Inc()
		}
		writeDomainError(w, "Failed to schedule decision", err)
		return
	}
	if result.UsedDiscretionary {
		discretionaryOverrides.Inc()
	}

	writeJSON(w, http.StatusCreated, ScheduleResultDTO{
		Item:              roadmapItemDTO(result.Item),
		UsedDiscretionary: result.UsedDiscretionary,
	})
}

// ListRoadmap returns the family's roadmap items.
func (h *Handler) ListRoadmap(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(r.URL.Query().Get("family_id"))
	if familyID == "" {
		writeError(w, http.StatusBadRequest, "family_id query parameter is required", nil)
		return
	}

	items, err := h.Store.ListRoadmapItems(r.Context(), familyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list roadmap", err)
		return
	}

	dtos := make([]RoadmapItemDTO, len(items))
	for i, item := range items {
		dtos[i] = roadmapItemDTO(item)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpdateRoadmapItem updates item fields (bucket, window, status, dependencies).
func (h *Handler) UpdateRoadmapItem(w http.ResponseWriter, r *http.Request) {
	id := engine.RoadmapItemID(chi.URLParam(r, "id"))

	var req UpdateRoadmapItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.Store.GetRoadmapItem(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get roadmap item", err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Roadmap item not found", nil)
		return
	}

	if req.Bucket != nil {
		item.Bucket = *req.Bucket
	}
	if req.StartDate != nil {
		d, err := engine.ParseDate(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
			return
		}
		item.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := engine.ParseDate(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
			return
		}
		item.EndDate = &d
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Dependencies != nil {
		item.Dependencies = *req.Dependencies
	}

	if err := h.Store.UpdateRoadmapItem(r.Context(), *item); err != nil {
		writeDomainError(w, "Failed to update roadmap item", err)
		return
	}
	writeJSON(w, http.StatusOK, roadmapItemDTO(*item))
}

// UnscheduleDecision removes a roadmap item, refunding an unmatched
// discretionary debit unless the item already reached Done.
func (h *Handler) UnscheduleDecision(w http.ResponseWriter, r *http.Request) {
	id := engine.RoadmapItemID(chi.URLParam(r, "id"))

	refunded, err := h.Engine.UnscheduleDecision(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to unschedule", err)
		return
	}
	if refunded {
		discretionaryRefunds.Inc()
	}
	writeJSON(w, http.StatusOK, UnscheduleResultDTO{ItemID: string(id), Refunded: refunded})
}

// =============================================================================
// BUDGET HANDLERS
// =============================================================================

// GetBudgetSummary returns the family's policy and per-member balances for the
// active period, creating period and allocations lazily.
func (h *Handler) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(chi.URLParam(r, "id"))

	summary, err := h.Engine.BudgetSummary(r.Context(), familyID)
	if err != nil {
		writeDomainError(w, "Failed to build budget summary", err)
		return
	}
	writeJSON(w, http.StatusOK, budgetSummaryDTO(*summary))
}

// UpdateBudgetPolicy replaces the family's policy and reconciles the current
// period's allowances.
func (h *Handler) UpdateBudgetPolicy(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(chi.URLParam(r, "id"))

	var req UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	update := engine.PolicyUpdate{
		FamilyID:         familyID,
		Threshold:        req.Threshold,
		PeriodDays:       req.PeriodDays,
		DefaultAllowance: req.DefaultAllowance,
	}
	for _, ma := range req.MemberAllowances {
		update.MemberAllowances = append(update.MemberAllowances, engine.MemberAllowance{
			MemberID:  engine.MemberID(ma.MemberID),
			Allowance: ma.Allowance,
		})
	}

	summary, err := h.Engine.UpdateBudgetPolicy(r.Context(), update)
	if err != nil {
		writeDomainError(w, "Failed to update policy", err)
		return
	}
	writeJSON(w, http.StatusOK, budgetSummaryDTO(*summary))
}

// ResetBudgetPeriod closes the active period and opens a fresh one today.
func (h *Handler) ResetBudgetPeriod(w http.ResponseWriter, r *http.Request) {
	familyID := engine.FamilyID(chi.URLParam(r, "id"))

	summary, err := h.Engine.ResetBudgetPeriod(r.Context(), familyID)
	if err != nil {
		writeDomainError(w, "Failed to reset period", err)
		return
	}
	writeJSON(w, http.StatusOK, budgetSummaryDTO(*summary))
}

func nowUTC() time.Time { return time.Now().UTC() }

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP statuses: not-found to 404,
// conflicts to 409, validation and business-rule rejections to 400, everything
// else to 500.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, engine.ErrConflict):
		writeError(w, http.StatusConflict, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
