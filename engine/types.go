/*
Package engine implements the household decision and discretionary-budget core.

PURPOSE:
  This package contains the domain types and algorithms for tracking household
  decisions through their lifecycle: multi-goal weighted scoring, routing to a
  work queue, scheduling onto a roadmap, and a per-member discretionary budget
  that grants, debits, and refunds override tokens over rolling periods.

KEY CONCEPTS IN THIS FILE (types.go):
  - Family/Member/Goal: the tenancy and scoring configuration
  - Decision: the unit of work, with a versioned score history
  - Period: a contiguous date range over which allowances reset
  - BudgetPolicy: per-family threshold, period cadence, and default allowance
  - QueueItem/RoadmapItem: where routed and scheduled decisions land

DESIGN PRINCIPLES:
  1. Derived balances: the ledger is the single source of truth, balances are
     always recomputed from entries (see ledger.go)
  2. Precision: weighted scores use decimal.Decimal, floats only at the edges
  3. Type safety: strong typing for IDs prevents mixing entity kinds
  4. Versioned scores: rescoring supersedes, it never mutates history

SEE ALSO:
  - scoring.go: weighted score computation and threshold routing
  - budget.go: period management and allowance allocation
  - ledger.go: append-only ledger entries and balance aggregation
  - lifecycle.go: decision status orchestration
*/
package engine

import "time"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type (
	FamilyID      string
	MemberID      string
	GoalID        string
	DecisionID    string
	PeriodID      string
	QueueItemID   string
	RoadmapItemID string
)

// =============================================================================
// FAMILY & MEMBERS
// =============================================================================

type Family struct {
	ID        FamilyID
	Name      string
	CreatedAt time.Time
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Member struct {
	ID          MemberID
	FamilyID    FamilyID
	Email       string
	DisplayName string
	Role        Role
}

// =============================================================================
// GOALS - Weighted scoring dimensions
// =============================================================================

// Goal is a household priority used as a scoring dimension. Only active goals
// participate in new score computations; weight must be > 0.
type Goal struct {
	ID          GoalID
	FamilyID    FamilyID
	Name        string
	Description string
	Weight      float64
	Active      bool
}

// =============================================================================
// DECISIONS
// =============================================================================

// DecisionStatus enumerates the lifecycle states. Automatic orchestration only
// drives Draft/Queued/Needs-Work/Discretionary-Approved/Scheduled; the rest are
// reachable via the explicit administrative status override.
type DecisionStatus string

const (
	StatusDraft                 DecisionStatus = "Draft"
	StatusScored                DecisionStatus = "Scored"
	StatusQueued                DecisionStatus = "Queued"
	StatusNeedsWork             DecisionStatus = "Needs-Work"
	StatusDiscretionaryApproved DecisionStatus = "Discretionary-Approved"
	StatusRejected              DecisionStatus = "Rejected"
	StatusScheduled             DecisionStatus = "Scheduled"
	StatusInProgress            DecisionStatus = "In-Progress"
	StatusDone                  DecisionStatus = "Done"
	StatusArchived              DecisionStatus = "Archived"
)

// AllStatuses lists every valid status value, used for enum validation.
var AllStatuses = []DecisionStatus{
	StatusDraft, StatusScored, StatusQueued, StatusNeedsWork,
	StatusDiscretionaryApproved, StatusRejected, StatusScheduled,
	StatusInProgress, StatusDone, StatusArchived,
}

// ParseStatus validates a raw status string against the enumeration.
func ParseStatus(raw string) (DecisionStatus, bool) {
	for _, s := range AllStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type Decision struct {
	ID          DecisionID
	FamilyID    FamilyID
	CreatedBy   MemberID
	Owner       *MemberID
	Title       string
	Description string
	Cost        *float64
	Urgency     *int
	TargetDate  *Date
	Tags        []string
	Status      DecisionStatus
	Notes       string
	Version     int
	CreatedAt   time.Time
}

// ScoreEntry records one goal's 1-5 rating for one decision revision.
// Entries for older versions are never mutated; queries filter by the
// decision's current version, so exactly one set is "current" per decision.
type ScoreEntry struct {
	DecisionID DecisionID
	GoalID     GoalID
	Score      int
	Rationale  string
	ComputedBy string
	Version    int
}

// =============================================================================
// QUEUE & ROADMAP
// =============================================================================

// QueueItem places a decision on the work queue. Rank is a global monotonic
// sequence (max+1 computed inside the routing transaction).
type QueueItem struct {
	ID         QueueItemID
	DecisionID DecisionID
	Priority   int
	DueDate    *Date
	Rank       int
}

type RoadmapItem struct {
	ID           RoadmapItemID
	DecisionID   DecisionID
	Bucket       string
	StartDate    *Date
	EndDate      *Date
	Status       string
	Dependencies []string
}

// RoadmapStatusDone marks completed roadmap items; once an item is Done its
// discretionary spend is consumed and unscheduling no longer refunds.
const RoadmapStatusDone = "Done"

// =============================================================================
// BUDGET PERIODS & POLICY
// =============================================================================

// Period is the date window [StartDate, EndDate] over which a member's
// discretionary allowance applies. Periods are non-overlapping per family by
// invariant, enforced by repair-on-read (see budget.go).
type Period struct {
	ID        PeriodID
	FamilyID  FamilyID
	StartDate Date
	EndDate   Date
}

// Contains reports whether the date falls inside the period window.
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.StartDate) && d.BeforeOrEqual(p.EndDate)
}

// BudgetPolicy is the per-family singleton governing the scoring threshold,
// period cadence, and default discretionary allowance.
type BudgetPolicy struct {
	FamilyID         FamilyID
	Threshold        float64
	PeriodDays       int
	DefaultAllowance int
}

// Policy defaults applied when a family has no explicit policy yet.
const (
	DefaultThreshold  = 4.0
	DefaultPeriodDays = 90
	DefaultAllowance  = 2
)

// MemberBudgetSetting overrides the policy's default allowance for one member.
type MemberBudgetSetting struct {
	FamilyID  FamilyID
	MemberID  MemberID
	Allowance int
}
