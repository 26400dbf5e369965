/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model these map onto
*/
package api

import (
	"time"

	"github.com/hearthplan/hearth/engine"
)

// =============================================================================
// FAMILIES & MEMBERS
// =============================================================================

// FamilyDTO represents a family in API responses.
type FamilyDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CreatedAt string      `json:"created_at"`
	Members   []MemberDTO `json:"members,omitempty"`
}

// CreateFamilyRequest is the request to create a family.
type CreateFamilyRequest struct {
	Name string `json:"name"`
}

// MemberDTO represents a family member.
type MemberDTO struct {
	ID          string `json:"id"`
	FamilyID    string `json:"family_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AddMemberRequest is the request to add a member to a family.
type AddMemberRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// =============================================================================
// GOALS
// =============================================================================

// GoalDTO represents a scoring goal.
type GoalDTO struct {
	ID          string  `json:"id"`
	FamilyID    string  `json:"family_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
	Active      bool    `json:"active"`
}

// CreateGoalRequest is the request to create a goal.
type CreateGoalRequest struct {
	FamilyID    string  `json:"family_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Active      *bool   `json:"active,omitempty"`
}

// UpdateGoalRequest is the request to update a goal. Nil fields are unchanged.
type UpdateGoalRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// =============================================================================
// DECISIONS & SCORES
// =============================================================================

// DecisionDTO represents a decision, optionally with its current score.
type DecisionDTO struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"family_id"`
	CreatedBy   string    `json:"created_by"`
	Owner       *string   `json:"owner,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Cost        *float64  `json:"cost,omitempty"`
	Urgency     *int      `json:"urgency,omitempty"`
	TargetDate  *string   `json:"target_date,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   string    `json:"created_at"`
	Score       *ScoreDTO `json:"score,omitempty"`
}

// CreateDecisionRequest is the request to create a decision.
type CreateDecisionRequest struct {
	FamilyID    string   `json:"family_id"`
	CreatedBy   string   `json:"created_by"`
	Owner       *string  `json:"owner,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost,omitempty"`
	Urgency     *int     `json:"urgency,omitempty"`
	TargetDate  *string  `json:"target_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes"`
}

// UpdateDecisionRequest is the request to update decision fields. Nil fields
// are unchanged.
type UpdateDecisionRequest struct {
	Owner       *string   `json:"owner,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Cost        *float64  `json:"cost,omitempty"`
	Urgency     *int      `json:"urgency,omitempty"`
	TargetDate  *string   `json:"target_date,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

// ScoreDecisionRequest submits per-goal ratings for a decision.
type ScoreDecisionRequest struct {
	Scores     []GoalScoreRequest `json:"scores"`
	ComputedBy string             `json:"computed_by,omitempty"`
}

// GoalScoreRequest is one goal's 1-5 rating.
type GoalScoreRequest struct {
	GoalID    string `json:"goal_id"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale,omitempty"`
}

// ScoreResultDTO reports the outcome of a scoring pass.
type ScoreResultDTO struct {
	DecisionID     string  `json:"decision_id"`
	Weighted1To5   float64 `json:"weighted_score"`
	Weighted0To100 float64 `json:"weighted_score_100"`
	Threshold      float64 `json:"threshold"`
	RoutedTo       string  `json:"routed_to"`
	Status         string  `json:"status"`
	QueueItemID    *string `json:"queue_item_id,omitempty"`
}

// ScoreDTO is a decision's current weighted score with the goal breakdown.
type ScoreDTO struct {
	Weighted1To5   float64        `json:"weighted_score"`
	Weighted0To100 float64        `json:"weighted_score_100"`
	GoalScores     []GoalScoreDTO `json:"goal_scores"`
}

// GoalScoreDTO is one goal's contribution to the score.
type GoalScoreDTO struct {
	GoalID     string  `json:"goal_id"`
	GoalName   string  `json:"goal_name"`
	GoalWeight float64 `json:"goal_weight"`
	Score      int     `json:"score"`
	Rationale  string  `json:"rationale,omitempty"`
	ComputedBy string  `json:"computed_by"`
	Version    int     `json:"version"`
}

// SetStatusRequest is the administrative status override.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// =============================================================================
// QUEUE & ROADMAP
// =============================================================================

// QueueItemDTO represents a queued decision.
type QueueItemDTO struct {
	ID         string  `json:"id"`
	DecisionID string  `json:"decision_id"`
	Priority   int     `json:"priority"`
	DueDate    *string `json:"due_date,omitempty"`
	Rank       int     `json:"rank"`
}

// RoadmapItemDTO represents a scheduled decision.
type RoadmapItemDTO struct {
	ID           string   `json:"id"`
	DecisionID   string   `json:"decision_id"`
	Bucket       string   `json:"bucket"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	Status       string   `json:"status"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// ScheduleRequest asks to place a decision onto the roadmap.
type ScheduleRequest struct {
	DecisionID             string   `json:"decision_id"`
	Bucket                 string   `json:"bucket"`
	StartDate              *string  `json:"start_date,omitempty"`
	EndDate                *string  `json:"end_date,omitempty"`
	Status                 string   `json:"status,omitempty"`
	Dependencies           []string `json:"dependencies,omitempty"`
	UseDiscretionaryBudget bool     `json:"use_discretionary_budget"`
}

// ScheduleResultDTO is the created roadmap item plus whether a discretionary
// debit authorized it.
type ScheduleResultDTO struct {
	Item              RoadmapItemDTO `json:"item"`
	UsedDiscretionary bool           `json:"used_discretionary_budget"`
}

// UpdateRoadmapItemRequest updates item fields. Nil fields are unchanged.
type UpdateRoadmapItemRequest struct {
	Bucket       *string   `json:"bucket,omitempty"`
	StartDate    *string   `json:"start_date,omitempty"`
	EndDate      *string   `json:"end_date,omitempty"`
	Status       *string   `json:"status,omitempty"`
	Dependencies *[]string `json:"dependencies,omitempty"`
}

// UnscheduleResultDTO reports whether the removal refunded a debit.
type UnscheduleResultDTO struct {
	ItemID   string `json:"item_id"`
	Refunded bool   `json:"refunded"`
}

// =============================================================================
// BUDGET
// =============================================================================

// BudgetSummaryDTO is the family policy plus per-member balances for the
// active period.
type BudgetSummaryDTO struct {
	FamilyID         string             `json:"family_id"`
	Threshold        float64            `json:"threshold"`
	PeriodDays       int                `json:"period_days"`
	DefaultAllowance int                `json:"default_allowance"`
	PeriodStart      string             `json:"period_start"`
	PeriodEnd        string             `json:"period_end"`
	Members          []MemberBudgetDTO  `json:"members"`
}

// MemberBudgetDTO is one member's balance in the active period.
type MemberBudgetDTO struct {
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Allowance   int    `json:"allowance"`
	Used        int    `json:"used"`
	Remaining   int    `json:"remaining"`
}

// UpdatePolicyRequest replaces the family's budget policy.
type UpdatePolicyRequest struct {
	Threshold        float64              `json:"threshold"`
	PeriodDays       int                  `json:"period_days"`
	DefaultAllowance int                  `json:"default_allowance"`
	MemberAllowances []MemberAllowanceDTO `json:"member_allowances,omitempty"`
}

// MemberAllowanceDTO pairs a member with a target allowance.
type MemberAllowanceDTO struct {
	MemberID  string `json:"member_id"`
	Allowance int    `json:"allowance"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func familyDTO(f engine.Family) FamilyDTO {
	return FamilyDTO{
		ID:        string(f.ID),
		Name:      f.Name,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func memberDTO(m engine.Member) MemberDTO {
	return MemberDTO{
		ID:          string(m.ID),
		FamilyID:    string(m.FamilyID),
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        string(m.Role),
	}
}

func goalDTO(g engine.Goal) GoalDTO {
	return GoalDTO{
		ID:          string(g.ID),
		FamilyID:    string(g.FamilyID),
		Name:        g.Name,
		Description: g.Description,
		Weight:      g.Weight,
		Active:      g.Active,
	}
}

func decisionDTO(d engine.Decision) DecisionDTO {
	dto := DecisionDTO{
		ID:          string(d.ID),
		FamilyID:    string(d.FamilyID),
		CreatedBy:   string(d.CreatedBy),
		Title:       d.Title,
		Description: d.Description,
		Cost:        d.Cost,
		Urgency:     d.Urgency,
		Tags:        d.Tags,
		Status:      string(d.Status),
		Notes:       d.Notes,
		Version:     d.Version,
		CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.Owner != nil {
		owner := string(*d.Owner)
		dto.Owner = &owner
	}
	if d.TargetDate != nil {
		td := d.TargetDate.String()
		dto.TargetDate = &td
	}
	return dto
}

func scoreDTO(s engine.ScoreSummary) *ScoreDTO {
	goalScores := make([]GoalScoreDTO, len(s.GoalScores))
	for i, gs := range s.GoalScores {
		goalScores[i] = GoalScoreDTO{
			GoalID:     string(gs.GoalID),
			GoalName:   gs.GoalName,
			GoalWeight: gs.GoalWeight,
			Score:      gs.Score,
			Rationale:  gs.Rationale,
			ComputedBy: gs.ComputedBy,
			Version:    gs.Version,
		}
	}
	return &ScoreDTO{
		Weighted1To5:   s.Weighted1To5,
		Weighted0To100: s.Weighted0To100,
		GoalScores:     goalScores,
	}
}

func queueItemDTO(q engine.QueueItem) QueueItemDTO {
	dto := QueueItemDTO{
		ID:         string(q.ID),
		DecisionID: string(q.DecisionID),
		Priority:   q.Priority,
		Rank:       q.Rank,
	}
	if q.DueDate != nil {
		d := q.DueDate.String()
		dto.DueDate = &d
	}
	return dto
}

func roadmapItemDTO(item engine.RoadmapItem) RoadmapItemDTO {
	dto := RoadmapItemDTO{
		ID:           string(item.ID),
		DecisionID:   string(item.DecisionID),
		Bucket:       item.Bucket,
		Status:       item.Status,
		Dependencies: item.Dependencies,
	}
	if item.StartDate != nil {
		d := item.StartDate.String()
		dto.StartDate = &d
	}
	if item.EndDate != nil {
		d := item.EndDate.String()
		dto.EndDate = &d
	}
	return dto
}

func budgetSummaryDTO(s engine.BudgetSummary) BudgetSummaryDTO {
	members := make([]MemberBudgetDTO, len(s.Members))
	for i, m := range s.Members {
		members[i] = MemberBudgetDTO{
			MemberID:    string(m.MemberID),
			DisplayName: m.DisplayName,
			Role:        string(m.Role),
			Allowance:   m.Allowance,
			Used:        m.Used,
			Remaining:   m.Remaining,
		}
	}
	return BudgetSummaryDTO{
		FamilyID:         string(s.FamilyID),
		Threshold:        s.Threshold,
		PeriodDays:       s.PeriodDays,
		DefaultAllowance: s.DefaultAllowance,
		PeriodStart:      s.PeriodStart.String(),
		PeriodEnd:        s.PeriodEnd.String(),
		Members:          members,
	}
}
