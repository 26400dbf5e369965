/*
store.go - Persistence interfaces for the decision engine

PURPOSE:
  Defines the boundary between the domain logic and the database. The layout
  is relational: families, members, goals, versioned decisions and scores, a
  global-rank queue, roadmap items, periods, policies, member settings, and
  the append-only budget ledger.

APPEND-ONLY CONTRACT:
  The ledger has exactly one write operation, AppendLedger. No update exists;
  the only delete path is DeleteFamily (full purge). Corrections happen via
  new reason-coded entries.

ATOMICITY:
  Every orchestration operation runs inside TxStore.WithTx: either all score
  writes, status changes, queue inserts and ledger deltas commit together, or
  none do. A debit written without its status change is a correctness bug,
  not an accepted risk.

IMPLEMENTATIONS:
  - store/sqlite:       production SQLite store
  - engine/store:       in-memory store for tests/dev
*/
package engine

import "context"

// Store handles persistence for all engine entities.
type Store interface {
	// Families & members
	CreateFamily(ctx context.Context, f Family) error
	GetFamily(ctx context.Context, id FamilyID) (*Family, error)
	ListFamilies(ctx context.Context) ([]Family, error)
	// DeleteFamily purges a family and every dependent row, ledger included.
	// This is the only flow allowed to delete ledger entries.
	DeleteFamily(ctx context.Context, id FamilyID) error

	// CreateMember fails with ErrConflict when the email is already taken.
	CreateMember(ctx context.Context, m Member) error
	GetMember(ctx context.Context, id MemberID) (*Member, error)
	ListMembers(ctx context.Context, familyID FamilyID) ([]Member, error)

	// Goals
	CreateGoal(ctx context.Context, g Goal) error
	GetGoal(ctx context.Context, id GoalID) (*Goal, error)
	UpdateGoal(ctx context.Context, g Goal) error
	ListGoals(ctx context.Context, familyID FamilyID) ([]Goal, error)

	// Decisions
	CreateDecision(ctx context.Context, d Decision) error
	GetDecision(ctx context.Context, id DecisionID) (*Decision, error)
	UpdateDecision(ctx context.Context, d Decision) error
	ListDecisions(ctx context.Context, familyID FamilyID) ([]Decision, error)
	// DeleteDecision cascades to scores, queue item, and roadmap items.
	DeleteDecision(ctx context.Context, id DecisionID) error

	// Scores. ReplaceScores atomically swaps the entry set for one
	// (decision, version): rescoring overwrites rather than accumulates.
	ReplaceScores(ctx context.Context, decisionID DecisionID, version int, entries []ScoreEntry) error
	ScoresForVersion(ctx context.Context, decisionID DecisionID, version int) ([]ScoreEntry, error)

	// Queue
	CreateQueueItem(ctx context.Context, q QueueItem) error
	QueueItemByDecision(ctx context.Context, decisionID DecisionID) (*QueueItem, error)
	// MaxQueueRank returns the highest rank across ALL families (global
	// sequence); 0 when the queue is empty.
	MaxQueueRank(ctx context.Context) (int, error)
	ListQueueItems(ctx context.Context, familyID FamilyID) ([]QueueItem, error)

	// Roadmap
	CreateRoadmapItem(ctx context.Context, item RoadmapItem) error
	GetRoadmapItem(ctx context.Context, id RoadmapItemID) (*RoadmapItem, error)
	UpdateRoadmapItem(ctx context.Context, item RoadmapItem) error
	DeleteRoadmapItem(ctx context.Context, id RoadmapItemID) error
	ListRoadmapItems(ctx context.Context, familyID FamilyID) ([]RoadmapItem, error)

	// Periods
	CreatePeriod(ctx context.Context, p Period) error
	UpdatePeriod(ctx context.Context, p Period) error
	// PeriodsContaining returns every period of the family whose window
	// contains the date. More than one result means historical overlap that
	// the period manager will repair.
	PeriodsContaining(ctx context.Context, familyID FamilyID, d Date) ([]Period, error)

	// Policy & per-member settings
	GetPolicy(ctx context.Context, familyID FamilyID) (*BudgetPolicy, error)
	SavePolicy(ctx context.Context, p BudgetPolicy) error
	ListMemberSettings(ctx context.Context, familyID FamilyID) ([]MemberBudgetSetting, error)
	SaveMemberSetting(ctx context.Context, s MemberBudgetSetting) error
	DeleteMemberSetting(ctx context.Context, familyID FamilyID, memberID MemberID) error

	// Ledger (append-only). AppendLedger assigns and returns the monotonic
	// entry ID.
	AppendLedger(ctx context.Context, e LedgerEntry) (int64, error)
	LedgerForMemberPeriod(ctx context.Context, memberID MemberID, periodID PeriodID) ([]LedgerEntry, error)
	LedgerForDecision(ctx context.Context, decisionID DecisionID) ([]LedgerEntry, error)
	// HasAllocation reports whether a period_allocation entry already exists
	// for (member, period); allocation grants are idempotent on this.
	HasAllocation(ctx context.Context, memberID MemberID, periodID PeriodID) (bool, error)
}

// TxStore wraps Store with transaction support. If fn returns an error the
// transaction rolls back; otherwise it commits.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
