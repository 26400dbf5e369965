/*
Package sqlite provides the SQLite-backed implementation of engine.Store.

PURPOSE:
  Persists every engine entity (families, members, goals, versioned decisions
  and scores, the queue, roadmap items, periods, policies, member settings,
  and the budget ledger) in a single SQLite file.

APPEND-ONLY ENFORCEMENT:
  The ledger table has no UPDATE path. The only DELETE is the family purge,
  which removes the members' entries together with everything else. All other
  corrections happen through new reason-coded rows.

LEDGER IDS:
  ledger.id is INTEGER PRIMARY KEY AUTOINCREMENT: entry IDs are monotonic in
  insertion order, which the refund logic depends on (it pairs the most
  recent unmatched debit).

FOREIGN KEYS:
  Opened with _foreign_keys=on; child rows (members, goals, decisions,
  scores, queue, roadmap, periods, policies, settings) cascade on family or
  decision deletion. The ledger carries no family FK, so the purge deletes
  its rows explicitly before the cascade drops the members.

CONCURRENCY:
  A single mutex serializes writes and is held for the whole WithTx body, so
  balance-check-then-debit sequences are serializable. SQLite is opened in
  WAL mode for better read concurrency.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: the interface this package implements
  - engine/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hearthplan/hearth/engine"
)

// Store implements engine.TxStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: writes are serialized by the store mutex anyway, and
	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS family_members (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		role TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_members_family ON family_members(family_id);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		weight REAL NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	CREATE INDEX IF NOT EXISTS idx_goals_family ON goals(family_id);

	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		created_by TEXT NOT NULL,
		owner TEXT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		cost REAL,
		urgency INTEGER,
		target_date TEXT,
		tags_json TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_family ON decisions(family_id);
	CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status);

	-- One row per (decision, goal, revision). Older revisions are retained;
	-- reads filter on the decision's current version.
	CREATE TABLE IF NOT EXISTS decision_scores (
		decision_id TEXT NOT NULL REFERENCES decisions(id) ON DELETE CASCADE,
		goal_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		rationale TEXT NOT NULL DEFAULT '',
		computed_by TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL,
		PRIMARY KEY (decision_id, goal_id, version)
	);

	CREATE TABLE IF NOT EXISTS decision_queue_items (
		id TEXT PRIMARY KEY,
		decision_id TEXT NOT NULL UNIQUE REFERENCES decisions(id) ON DELETE CASCADE,
		priority INTEGER NOT NULL,
		due_date TEXT,
		queue_rank INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_queue_rank ON decision_queue_items(queue_rank);

	CREATE TABLE IF NOT EXISTS roadmap_items (
		id TEXT PRIMARY KEY,
		decision_id TEXT NOT NULL REFERENCES decisions(id) ON DELETE CASCADE,
		bucket TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		status TEXT NOT NULL,
		dependencies_json TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_roadmap_decision ON roadmap_items(decision_id);

	CREATE TABLE IF NOT EXISTS periods (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_periods_family_window
		ON periods(family_id, start_date, end_date);

	CREATE TABLE IF NOT EXISTS budget_policies (
		family_id TEXT PRIMARY KEY REFERENCES families(id) ON DELETE CASCADE,
		threshold REAL NOT NULL,
		period_days INTEGER NOT NULL,
		default_allowance INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS member_budget_settings (
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		member_id TEXT NOT NULL,
		allowance INTEGER NOT NULL,
		PRIMARY KEY (family_id, member_id)
	);

	-- Append-only. AUTOINCREMENT keeps entry IDs monotonic even across
	-- deletes, which the refund pairing relies on.
	CREATE TABLE IF NOT EXISTS ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id TEXT NOT NULL,
		period_id TEXT NOT NULL,
		delta INTEGER NOT NULL,
		reason TEXT NOT NULL,
		decision_id TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_member_period ON ledger(member_id, period_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_decision
		ON ledger(decision_id) WHERE decision_id IS NOT NULL;
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds every SQL operation; it runs against either the pool or an
// open transaction.
type queries struct {
	db dbtx
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn inside a database transaction. The store mutex is held
// for the whole body so read-check-write sequences are serializable.
func (s *Store) WithTx(ctx context.Context, fn func(engine.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{q: queries{db: sqlTx}}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

type txStore struct {
	q queries
}

// =============================================================================
// FAMILIES & MEMBERS
// =============================================================================

func (q queries) createFamily(ctx context.Context, f engine.Family) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO families (id, name, created_at) VALUES (?, ?, ?)",
		f.ID, f.Name, f.CreatedAt.UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: family %s already exists", engine.ErrConflict, f.ID)
	}
	return err
}

func (q queries) getFamily(ctx context.Context, id engine.FamilyID) (*engine.Family, error) {
	var f engine.Family
	var createdAt string
	err := q.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM families WHERE id = ?", id,
	).Scan(&f.ID, &f.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &f, nil
}

func (q queries) listFamilies(ctx context.Context) ([]engine.Family, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM families ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []engine.Family
	for rows.Next() {
		var f engine.Family
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Name, &createdAt); err != nil {
			return nil, err
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		families = append(families, f)
	}
	return families, rows.Err()
}

func (q queries) deleteFamily(ctx context.Context, id engine.FamilyID) error {
	// The ledger has no family FK; drop its rows before the member cascade.
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM ledger WHERE member_id IN (SELECT id FROM family_members WHERE family_id = ?)",
		id,
	)
	if err != nil {
		return err
	}

	res, err := q.db.ExecContext(ctx, "DELETE FROM families WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return engine.ErrFamilyNotFound
	}
	return nil
}

func (q queries) createMember(ctx context.Context, m engine.Member) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO family_members (id, family_id, email, display_name, role) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.FamilyID, m.Email, m.DisplayName, m.Role,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: member email %q already exists", engine.ErrConflict, m.Email)
	}
	if isForeignKeyError(err) {
		return engine.ErrFamilyNotFound
	}
	return err
}

func (q queries) getMember(ctx context.Context, id engine.MemberID) (*engine.Member, error) {
	var m engine.Member
	err := q.db.QueryRowContext(ctx,
		"SELECT id, family_id, email, display_name, role FROM family_members WHERE id = ?", id,
	).Scan(&m.ID, &m.FamilyID, &m.Email, &m.DisplayName, &m.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (q queries) listMembers(ctx context.Context, familyID engine.FamilyID) ([]engine.Member, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, family_id, email, display_name, role FROM family_members WHERE family_id = ? ORDER BY id",
		familyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []engine.Member
	for rows.Next() {
		var m engine.Member
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.Email, &m.DisplayName, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// =============================================================================
// GOALS
// =============================================================================

func (q queries) createGoal(ctx context.Context, g engine.Goal) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO goals (id, family_id, name, description, weight, active) VALUES (?, ?, ?, ?, ?, ?)",
		g.ID, g.FamilyID, g.Name, g.Description, g.Weight, g.Active,
	)
	if isForeignKeyError(err) {
		return engine.ErrFamilyNotFound
	}
	return err
}

func (q queries) getGoal(ctx context.Context, id engine.GoalID) (*engine.Goal, error) {
	var g engine.Goal
	err := q.db.QueryRowContext(ctx,
		"SELECT id, family_id, name, description, weight, active FROM goals WHERE id = ?", id,
	).Scan(&g.ID, &g.FamilyID, &g.Name, &g.Description, &g.Weight, &g.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (q queries) updateGoal(ctx context.Context, g engine.Goal) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE goals SET name = ?, description = ?, weight = ?, active = ? WHERE id = ?",
		g.Name, g.Description, g.Weight, g.Active, g.ID,
	)
	if err != nil {
		return err
	}
	return notFoundOnZero(res, engine.ErrGoalNotFound)
}

func (q queries) listGoals(ctx context.Context, familyID engine.FamilyID) ([]engine.Goal, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, family_id, name, description, weight, active FROM goals WHERE family_id = ? ORDER BY id",
		familyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []engine.Goal
	for rows.Next() {
		var g engine.Goal
		if err := rows.Scan(&g.ID, &g.FamilyID, &g.Name, &g.Description, &g.Weight, &g.Active); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// =============================================================================
// DECISIONS & SCORES
// =============================================================================

const decisionColumns = `id, family_id, created_by, owner, title, description, cost,
	urgency, target_date, tags_json, status, notes, version, created_at`

func (q queries) createDecision(ctx context.Context, d engine.Decision) error {
	tagsJSON, _ := json.Marshal(d.Tags)
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO decisions (`+decisionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.FamilyID, d.CreatedBy, nullMemberID(d.Owner), d.Title, d.Description,
		nullFloat(d.Cost), nullInt(d.Urgency), nullDate(d.TargetDate), string(tagsJSON),
		d.Status, d.Notes, d.Version, d.CreatedAt.UTC().Format(time.RFC3339),
	)
	if isForeignKeyError(err) {
		return engine.ErrFamilyNotFound
	}
	return err
}

func (q queries) updateDecision(ctx context.Context, d engine.Decision) error {
	tagsJSON, _ := json.Marshal(d.Tags)
	res, err := q.db.ExecContext(ctx,
		`UPDATE decisions SET owner = ?, title = ?, description = ?, cost = ?, urgency = ?,
		 target_date = ?, tags_json = ?, status = ?, notes = ?, version = ?
		 WHERE id = ?`,
		nullMemberID(d.Owner), d.Title, d.Description, nullFloat(d.Cost), nullInt(d.Urgency),
		nullDate(d.TargetDate), string(tagsJSON), d.Status, d.Notes, d.Version, d.ID,
	)
	if err != nil {
		return err
	}
	return notFoundOnZero(res, engine.ErrDecisionNotFound)
}

func (q queries) getDecision(ctx context.Context, id engine.DecisionID) (*engine.Decision, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+decisionColumns+" FROM decisions WHERE id = ?", id)
	d, err := scanDecision(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (q queries) listDecisions(ctx context.Context, familyID engine.FamilyID) ([]engine.Decision, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+decisionColumns+" FROM decisions WHERE family_id = ? ORDER BY created_at DESC, id",
		familyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []engine.Decision
	for rows.Next() {
		d, err := scanDecision(rows.Scan)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}
	return decisions, rows.Err()
}

func scanDecision(scan func(dest ...any) error) (*engine.Decision, error) {
	var (
		d          engine.Decision
		owner      sql.NullString
		cost       sql.NullFloat64
		urgency    sql.NullInt64
		targetDate sql.NullString
		tagsJSON   string
		createdAt  string
	)
	err := scan(
		&d.ID, &d.FamilyID, &d.CreatedBy, &owner, &d.Title, &d.Description,
		&cost, &urgency, &targetDate, &tagsJSON, &d.Status, &d.Notes,
		&d.Version, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if owner.Valid {
		id := engine.MemberID(owner.String)
		d.Owner = &id
	}
	if cost.Valid {
		d.Cost = &cost.Float64
	}
	if urgency.Valid {
		v := int(urgency.Int64)
		d.Urgency = &v
	}
	if targetDate.Valid {
		dt, _ := engine.ParseDate(targetDate.String)
		d.TargetDate = &dt
	}
	json.Unmarshal([]byte(tagsJSON), &d.Tags)
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &d, nil
}

func (q queries) deleteDecision(ctx context.Context, id engine.DecisionID) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM decisions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return notFoundOnZero(res, engine.ErrDecisionNotFound)
}

func (q queries) replaceScores(ctx context.Context, decisionID engine.DecisionID, version int, entries []engine.ScoreEntry) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM decision_scores WHERE decision_id = ? AND version = ?",
		decisionID, version,
	)
	if err != nil {
		return err
	}
	for _, e := range entries {
		_, err := q.db.ExecContext(ctx,
			`INSERT INTO decision_scores (decision_id, goal_id, score, rationale, computed_by, version)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.DecisionID, e.GoalID, e.Score, e.Rationale, e.ComputedBy, e.Version,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (q queries) scoresForVersion(ctx context.Context, decisionID engine.DecisionID, version int) ([]engine.ScoreEntry, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT decision_id, goal_id, score, rationale, computed_by, version
		 FROM decision_scores WHERE decision_id = ? AND version = ? ORDER BY goal_id`,
		decisionID, version,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []engine.ScoreEntry
	for rows.Next() {
		var e engine.ScoreEntry
		if err := rows.Scan(&e.DecisionID, &e.GoalID, &e.Score, &e.Rationale, &e.ComputedBy, &e.Version); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// QUEUE & ROADMAP
// =============================================================================

func (q queries) createQueueItem(ctx context.Context, item engine.QueueItem) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO decision_queue_items (id, decision_id, priority, due_date, queue_rank) VALUES (?, ?, ?, ?, ?)",
		item.ID, item.DecisionID, item.Priority, nullDate(item.DueDate), item.Rank,
	)
	return err
}

func (q queries) queueItemByDecision(ctx context.Context, decisionID engine.DecisionID) (*engine.QueueItem, error) {
	var item engine.QueueItem
	var dueDate sql.NullString
	err := q.db.QueryRowContext(ctx,
		"SELECT id, decision_id, priority, due_date, queue_rank FROM decision_queue_items WHERE decision_id = ?",
		decisionID,
	).Scan(&item.ID, &item.DecisionID, &item.Priority, &dueDate, &item.Rank)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d, _ := engine.ParseDate(dueDate.String)
		item.DueDate = &d
	}
	return &item, nil
}

func (q queries) maxQueueRank(ctx context.Context) (int, error) {
	var max int
	err := q.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(queue_rank), 0) FROM decision_queue_items",
	).Scan(&max)
	return max, err
}

func (q queries) listQueueItems(ctx context.Context, familyID engine.FamilyID) ([]engine.QueueItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT qi.id, qi.decision_id, qi.priority, qi.due_date, qi.queue_rank
		 FROM decision_queue_items qi
		 JOIN decisions d ON d.id = qi.decision_id
		 WHERE d.family_id = ?
		 ORDER BY qi.queue_rank`,
		familyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []engine.QueueItem
	for rows.Next() {
		var item engine.QueueItem
		var dueDate sql.NullString
		if err := rows.Scan(&item.ID, &item.DecisionID, &item.Priority, &dueDate, &item.Rank); err != nil {
			return nil, err
		}
		if dueDate.Valid {
			d, _ := engine.ParseDate(dueDate.String)
			item.DueDate = &d
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (q queries) createRoadmapItem(ctx context.Context, item engine.RoadmapItem) error {
	depsJSON, _ := json.Marshal(item.Dependencies)
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO roadmap_items (id, decision_id, bucket, start_date, end_date, status, dependencies_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.DecisionID, item.Bucket, nullDate(item.StartDate), nullDate(item.EndDate),
		item.Status, string(depsJSON),
	)
	return err
}

func (q queries) getRoadmapItem(ctx context.Context, id engine.RoadmapItemID) (*engine.RoadmapItem, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT id, decision_id, bucket, start_date, end_date, status, dependencies_json FROM roadmap_items WHERE id = ?",
		id,
	)
	item, err := scanRoadmapItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (q queries) updateRoadmapItem(ctx context.Context, item engine.RoadmapItem) error {
	depsJSON, _ := json.Marshal(item.Dependencies)
	res, err := q.db.ExecContext(ctx,
		`UPDATE roadmap_items SET bucket = ?, start_date = ?, end_date = ?, status = ?, dependencies_json = ?
		 WHERE id = ?`,
		item.Bucket, nullDate(item.StartDate), nullDate(item.EndDate), item.Status,
		string(depsJSON), item.ID,
	)
	if err != nil {
		return err
	}
	return notFoundOnZero(res, engine.ErrRoadmapItemNotFound)
}

func (q queries) deleteRoadmapItem(ctx context.Context, id engine.RoadmapItemID) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM roadmap_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	return notFoundOnZero(res, engine.ErrRoadmapItemNotFound)
}

func (q queries) listRoadmapItems(ctx context.Context, familyID engine.FamilyID) ([]engine.RoadmapItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT ri.id, ri.decision_id, ri.bucket, ri.start_date, ri.end_date, ri.status, ri.dependencies_json
		 FROM roadmap_items ri
		 JOIN decisions d ON d.id = ri.decision_id
		 WHERE d.family_id = ?
		 ORDER BY ri.id`,
		familyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []engine.RoadmapItem
	for rows.Next() {
		item, err := scanRoadmapItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanRoadmapItem(scan func(dest ...any) error) (*engine.RoadmapItem, error) {
	var (
		item               engine.RoadmapItem
		startDate, endDate sql.NullString
		depsJSON           string
	)
	err := scan(&item.ID, &item.DecisionID, &item.Bucket, &startDate, &endDate, &item.Status, &depsJSON)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		d, _ := engine.ParseDate(startDate.String)
		item.StartDate = &d
	}
	if endDate.Valid {
		d, _ := engine.ParseDate(endDate.String)
		item.EndDate = &d
	}
	json.Unmarshal([]byte(depsJSON), &item.Dependencies)
	return &item, nil
}

// =============================================================================
// PERIODS, POLICY, SETTINGS
// =============================================================================

func (q queries) createPeriod(ctx context.Context, p engine.Period) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO periods (id, family_id, start_date, end_date) VALUES (?, ?, ?, ?)",
		p.ID, p.FamilyID, p.StartDate.String(), p.EndDate.String(),
	)
	if isForeignKeyError(err) {
		return engine.ErrFamilyNotFound
	}
	return err
}

func (q queries) updatePeriod(ctx context.Context, p engine.Period) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE periods SET start_date = ?, end_date = ? WHERE id = ?",
		p.StartDate.String(), p.EndDate.String(), p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("period %s not found", p.ID)
	}
	return nil
}

func (q queries) periodsContaining(ctx context.Context, familyID engine.FamilyID, d engine.Date) ([]engine.Period, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, family_id, start_date, end_date FROM periods
		 WHERE family_id = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY id`,
		familyID, d.String(), d.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []engine.Period
	for rows.Next() {
		var p engine.Period
		var start, end string
		if err := rows.Scan(&p.ID, &p.FamilyID, &start, &end); err != nil {
			return nil, err
		}
		p.StartDate, _ = engine.ParseDate(start)
		p.EndDate, _ = engine.ParseDate(end)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (q queries) getPolicy(ctx context.Context, familyID engine.FamilyID) (*engine.BudgetPolicy, error) {
	var p engine.BudgetPolicy
	err := q.db.QueryRowContext(ctx,
		"SELECT family_id, threshold, period_days, default_allowance FROM budget_policies WHERE family_id = ?",
		familyID,
	).Scan(&p.FamilyID, &p.Threshold, &p.PeriodDays, &p.DefaultAllowance)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (q queries) savePolicy(ctx context.Context, p engine.BudgetPolicy) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO budget_policies (family_id, threshold, period_days, default_allowance)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(family_id) DO UPDATE SET
			threshold = excluded.threshold,
			period_days = excluded.period_days,
			default_allowance = excluded.default_allowance`,
		p.FamilyID, p.Threshold, p.PeriodDays, p.DefaultAllowance,
	)
	if isForeignKeyError(err) {
		return engine.ErrFamilyNotFound
	}
	return err
}

func (q queries) listMemberSettings(ctx context.Context, familyID engine.FamilyID) ([]engine.MemberBudgetSetting, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT family_id, member_id, allowance FROM member_budget_settings WHERE family_id = ? ORDER BY member_id",
		familyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []engine.MemberBudgetSetting
	for rows.Next() {
		var s engine.MemberBudgetSetting
		if err := rows.Scan(&s.FamilyID, &s.MemberID, &s.Allowance); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (q queries) saveMemberSetting(ctx context.Context, s engine.MemberBudgetSetting) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO member_budget_settings (family_id, member_id, allowance)
		 VALUES (?, ?, ?)
		 ON CONFLICT(family_id, member_id) DO UPDATE SET allowance = excluded.allowance`,
		s.FamilyID, s.MemberID, s.Allowance,
	)
	return err
}

func (q queries) deleteMemberSetting(ctx context.Context, familyID engine.FamilyID, memberID engine.MemberID) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM member_budget_settings WHERE family_id = ? AND member_id = ?",
		familyID, memberID,
	)
	return err
}

// =============================================================================
// LEDGER (append-only)
// =============================================================================

func (q queries) appendLedger(ctx context.Context, e engine.LedgerEntry) (int64, error) {
	var decisionID any
	if e.DecisionID != nil {
		decisionID = string(*e.DecisionID)
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO ledger (member_id, period_id, delta, reason, decision_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.MemberID, e.PeriodID, e.Delta, e.Reason, decisionID,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return res.LastInsertId()
}

const ledgerColumns = "id, member_id, period_id, delta, reason, decision_id, created_at"

func (q queries) ledgerForMemberPeriod(ctx context.Context, memberID engine.MemberID, periodID engine.PeriodID) ([]engine.LedgerEntry, error) {
	return q.queryLedger(ctx,
		"SELECT "+ledgerColumns+" FROM ledger WHERE member_id = ? AND period_id = ? ORDER BY id",
		memberID, periodID,
	)
}

func (q queries) ledgerForDecision(ctx context.Context, decisionID engine.DecisionID) ([]engine.LedgerEntry, error) {
	return q.queryLedger(ctx,
		"SELECT "+ledgerColumns+" FROM ledger WHERE decision_id = ? ORDER BY id",
		decisionID,
	)
}

func (q queries) queryLedger(ctx context.Context, query string, args ...any) ([]engine.LedgerEntry, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []engine.LedgerEntry
	for rows.Next() {
		var (
			e          engine.LedgerEntry
			decisionID sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&e.ID, &e.MemberID, &e.PeriodID, &e.Delta, &e.Reason, &decisionID, &createdAt); err != nil {
			return nil, err
		}
		if decisionID.Valid {
			id := engine.DecisionID(decisionID.String)
			e.DecisionID = &id
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (q queries) hasAllocation(ctx context.Context, memberID engine.MemberID, periodID engine.PeriodID) (bool, error) {
	var count int
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ledger WHERE member_id = ? AND period_id = ? AND reason = ?",
		memberID, periodID, engine.ReasonPeriodAllocation,
	).Scan(&count)
	return count > 0, err
}

// =============================================================================
// INTERFACE WIRING - Store locks per call, txStore runs under WithTx's lock
// =============================================================================

func (s *Store) q() queries { return queries{db: s.db} }

func (s *Store) CreateFamily(ctx context.Context, f engine.Family) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createFamily(ctx, f)
}

func (s *Store) GetFamily(ctx context.Context, id engine.FamilyID) (*engine.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().getFamily(ctx, id)
}

func (s *Store) ListFamilies(ctx context.Context) ([]engine.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listFamilies(ctx)
}

func (s *Store) DeleteFamily(ctx context.Context, id engine.FamilyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().deleteFamily(ctx, id)
}

func (s *Store) CreateMember(ctx context.Context, m engine.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createMember(ctx, m)
}

func (s *Store) GetMember(ctx context.Context, id engine.MemberID) (*engine.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().getMember(ctx, id)
}

func (s *Store) ListMembers(ctx context.Context, familyID engine.FamilyID) ([]engine.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listMembers(ctx, familyID)
}

func (s *Store) CreateGoal(ctx context.Context, g engine.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createGoal(ctx, g)
}

func (s *Store) GetGoal(ctx context.Context, id engine.GoalID) (*engine.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().getGoal(ctx, id)
}

func (s *Store) UpdateGoal(ctx context.Context, g engine.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().updateGoal(ctx, g)
}

func (s *Store) ListGoals(ctx context.Context, familyID engine.FamilyID) ([]engine.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listGoals(ctx, familyID)
}

func (s *Store) CreateDecision(ctx context.Context, d engine.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createDecision(ctx, d)
}

func (s *Store) GetDecision(ctx context.Context, id engine.DecisionID) (*engine.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().getDecision(ctx, id)
}

func (s *Store) UpdateDecision(ctx context.Context, d engine.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().updateDecision(ctx, d)
}

func (s *Store) ListDecisions(ctx context.Context, familyID engine.FamilyID) ([]engine.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listDecisions(ctx, familyID)
}

func (s *Store) DeleteDecision(ctx context.Context, id engine.DecisionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().deleteDecision(ctx, id)
}

func (s *Store) ReplaceScores(ctx context.Context, decisionID engine.DecisionID, version int, entries []engine.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().replaceScores(ctx, decisionID, version, entries)
}

func (s *Store) ScoresForVersion(ctx context.Context, decisionID engine.DecisionID, version int) ([]engine.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().scoresForVersion(ctx, decisionID, version)
}

func (s *Store) CreateQueueItem(ctx context.Context, item engine.QueueItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createQueueItem(ctx, item)
}

func (s *Store) QueueItemByDecision(ctx context.Context, decisionID engine.DecisionID) (*engine.QueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().queueItemByDecision(ctx, decisionID)
}

func (s *Store) MaxQueueRank(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().maxQueueRank(ctx)
}

func (s *Store) ListQueueItems(ctx context.Context, familyID engine.FamilyID) ([]engine.QueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listQueueItems(ctx, familyID)
}

func (s *Store) CreateRoadmapItem(ctx context.Context, item engine.RoadmapItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createRoadmapItem(ctx, item)
}

func (s *Store) GetRoadmapItem(ctx context.Context, id engine.RoadmapItemID) (*engine.RoadmapItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().getRoadmapItem(ctx, id)
}

func (s *Store) UpdateRoadmapItem(ctx context.Context, item engine.RoadmapItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().updateRoadmapItem(ctx, item)
}

func (s *Store) DeleteRoadmapItem(ctx context.Context, id engine.RoadmapItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().deleteRoadmapItem(ctx, id)
}

func (s *Store) ListRoadmapItems(ctx context.Context, familyID engine.FamilyID) ([]engine.RoadmapItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listRoadmapItems(ctx, familyID)
}

func (s *Store) CreatePeriod(ctx context.Context, p engine.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().createPeriod(ctx, p)
}

func (s *Store) UpdatePeriod(ctx context.Context, p engine.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().updatePeriod(ctx, p)
}

func (s *Store) PeriodsContaining(ctx context.Context, familyID engine.FamilyID, d engine.Date) ([]engine.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().periodsContaining(ctx, familyID, d)
}

func (s *Store) GetPolicy(ctx context.Context, familyID engine.FamilyID) (*engine.BudgetPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().getPolicy(ctx, familyID)
}

func (s *Store) SavePolicy(ctx context.Context, p engine.BudgetPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().savePolicy(ctx, p)
}

func (s *Store) ListMemberSettings(ctx context.Context, familyID engine.FamilyID) ([]engine.MemberBudgetSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().listMemberSettings(ctx, familyID)
}

func (s *Store) SaveMemberSetting(ctx context.Context, setting engine.MemberBudgetSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().saveMemberSetting(ctx, setting)
}

func (s *Store) DeleteMemberSetting(ctx context.Context, familyID engine.FamilyID, memberID engine.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().deleteMemberSetting(ctx, familyID, memberID)
}

func (s *Store) AppendLedger(ctx context.Context, e engine.LedgerEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().appendLedger(ctx, e)
}

func (s *Store) LedgerForMemberPeriod(ctx context.Context, memberID engine.MemberID, periodID engine.PeriodID) ([]engine.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().ledgerForMemberPeriod(ctx, memberID, periodID)
}

func (s *Store) LedgerForDecision(ctx context.Context, decisionID engine.DecisionID) ([]engine.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().ledgerForDecision(ctx, decisionID)
}

func (s *Store) HasAllocation(ctx context.Context, memberID engine.MemberID, periodID engine.PeriodID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q().hasAllocation(ctx, memberID, periodID)
}

// --- txStore: same operations against the open transaction ---

func (t *txStore) CreateFamily(ctx context.Context, f engine.Family) error {
	return t.q.createFamily(ctx, f)
}
func (t *txStore) GetFamily(ctx context.Context, id engine.FamilyID) (*engine.Family, error) {
	return t.q.getFamily(ctx, id)
}
func (t *txStore) ListFamilies(ctx context.Context) ([]engine.Family, error) {
	return t.q.listFamilies(ctx)
}
func (t *txStore) DeleteFamily(ctx context.Context, id engine.FamilyID) error {
	return t.q.deleteFamily(ctx, id)
}
func (t *txStore) CreateMember(ctx context.Context, m engine.Member) error {
	return t.q.createMember(ctx, m)
}
func (t *txStore) GetMember(ctx context.Context, id engine.MemberID) (*engine.Member, error) {
	return t.q.getMember(ctx, id)
}
func (t *txStore) ListMembers(ctx context.Context, familyID engine.FamilyID) ([]engine.Member, error) {
	return t.q.listMembers(ctx, familyID)
}
func (t *txStore) CreateGoal(ctx context.Context, g engine.Goal) error {
	return t.q.createGoal(ctx, g)
}
func (t *txStore) GetGoal(ctx context.Context, id engine.GoalID) (*engine.Goal, error) {
	return t.q.getGoal(ctx, id)
}
func (t *txStore) UpdateGoal(ctx context.Context, g engine.Goal) error {
	return t.q.updateGoal(ctx, g)
}
func (t *txStore) ListGoals(ctx context.Context, familyID engine.FamilyID) ([]engine.Goal, error) {
	return t.q.listGoals(ctx, familyID)
}
func (t *txStore) CreateDecision(ctx context.Context, d engine.Decision) error {
	return t.q.createDecision(ctx, d)
}
func (t *txStore) GetDecision(ctx context.Context, id engine.DecisionID) (*engine.Decision, error) {
	return t.q.getDecision(ctx, id)
}
func (t *txStore) UpdateDecision(ctx context.Context, d engine.Decision) error {
	return t.q.updateDecision(ctx, d)
}
func (t *txStore) ListDecisions(ctx context.Context, familyID engine.FamilyID) ([]engine.Decision, error) {
	return t.q.listDecisions(ctx, familyID)
}
func (t *txStore) DeleteDecision(ctx context.Context, id engine.DecisionID) error {
	return t.q.deleteDecision(ctx, id)
}
func (t *txStore) ReplaceScores(ctx context.Context, decisionID engine.DecisionID, version int, entries []engine.ScoreEntry) error {
	return t.q.replaceScores(ctx, decisionID, version, entries)
}
func (t *txStore) ScoresForVersion(ctx context.Context, decisionID engine.DecisionID, version int) ([]engine.ScoreEntry, error) {
	return t.q.scoresForVersion(ctx, decisionID, version)
}
func (t *txStore) CreateQueueItem(ctx context.Context, item engine.QueueItem) error {
	return t.q.createQueueItem(ctx, item)
}
func (t *txStore) QueueItemByDecision(ctx context.Context, decisionID engine.DecisionID) (*engine.QueueItem, error) {
	return t.q.queueItemByDecision(ctx, decisionID)
}
func (t *txStore) MaxQueueRank(ctx context.Context) (int, error) {
	return t.q.maxQueueRank(ctx)
}
func (t *txStore) ListQueueItems(ctx context.Context, familyID engine.FamilyID) ([]engine.QueueItem, error) {
	return t.q.listQueueItems(ctx, familyID)
}
func (t *txStore) CreateRoadmapItem(ctx context.Context, item engine.RoadmapItem) error {
	return t.q.createRoadmapItem(ctx, item)
}
func (t *txStore) GetRoadmapItem(ctx context.Context, id engine.RoadmapItemID) (*engine.RoadmapItem, error) {
	return t.q.getRoadmapItem(ctx, id)
}
func (t *txStore) UpdateRoadmapItem(ctx context.Context, item engine.RoadmapItem) error {
	return t.q.updateRoadmapItem(ctx, item)
}
func (t *txStore) DeleteRoadmapItem(ctx context.Context, id engine.RoadmapItemID) error {
	return t.q.deleteRoadmapItem(ctx, id)
}
func (t *txStore) ListRoadmapItems(ctx context.Context, familyID engine.FamilyID) ([]engine.RoadmapItem, error) {
	return t.q.listRoadmapItems(ctx, familyID)
}
func (t *txStore) CreatePeriod(ctx context.Context, p engine.Period) error {
	return t.q.createPeriod(ctx, p)
}
func (t *txStore) UpdatePeriod(ctx context.Context, p engine.Period) error {
	return t.q.updatePeriod(ctx, p)
}
func (t *txStore) PeriodsContaining(ctx context.Context, familyID engine.FamilyID, d engine.Date) ([]engine.Period, error) {
	return t.q.periodsContaining(ctx, familyID, d)
}
func (t *txStore) GetPolicy(ctx context.Context, familyID engine.FamilyID) (*engine.BudgetPolicy, error) {
	return t.q.getPolicy(ctx, familyID)
}
func (t *txStore) SavePolicy(ctx context.Context, p engine.BudgetPolicy) error {
	return t.q.savePolicy(ctx, p)
}
func (t *txStore) ListMemberSettings(ctx context.Context, familyID engine.FamilyID) ([]engine.MemberBudgetSetting, error) {
	return t.q.listMemberSettings(ctx, familyID)
}
func (t *txStore) SaveMemberSetting(ctx context.Context, setting engine.MemberBudgetSetting) error {
	return t.q.saveMemberSetting(ctx, setting)
}
func (t *txStore) DeleteMemberSetting(ctx context.Context, familyID engine.FamilyID, memberID engine.MemberID) error {
	return t.q.deleteMemberSetting(ctx, familyID, memberID)
}
func (t *txStore) AppendLedger(ctx context.Context, e engine.LedgerEntry) (int64, error) {
	return t.q.appendLedger(ctx, e)
}
func (t *txStore) LedgerForMemberPeriod(ctx context.Context, memberID engine.MemberID, periodID engine.PeriodID) ([]engine.LedgerEntry, error) {
	return t.q.ledgerForMemberPeriod(ctx, memberID, periodID)
}
func (t *txStore) LedgerForDecision(ctx context.Context, decisionID engine.DecisionID) ([]engine.LedgerEntry, error) {
	return t.q.ledgerForDecision(ctx, decisionID)
}
func (t *txStore) HasAllocation(ctx context.Context, memberID engine.MemberID, periodID engine.PeriodID) (bool, error) {
	return t.q.hasAllocation(ctx, memberID, periodID)
}

// =============================================================================
// HELPERS
// =============================================================================

func nullMemberID(id *engine.MemberID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullDate(d *engine.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func notFoundOnZero(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
