// Package store provides an in-memory Store implementation (for testing/dev).
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hearthplan/hearth/engine"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

// Memory implements engine.TxStore with maps guarded by a single mutex.
// WithTx simulates a transaction with a snapshot + rollback on error.
type Memory struct {
	mu sync.Mutex
	st state
}

type settingKey struct {
	FamilyID engine.FamilyID
	MemberID engine.MemberID
}

type state struct {
	families  map[engine.FamilyID]engine.Family
	members   map[engine.MemberID]engine.Member
	goals     map[engine.GoalID]engine.Goal
	decisions map[engine.DecisionID]engine.Decision
	scores    []engine.ScoreEntry
	queue     map[engine.QueueItemID]engine.QueueItem
	roadmap   map[engine.RoadmapItemID]engine.RoadmapItem
	periods   map[engine.PeriodID]engine.Period
	policies  map[engine.FamilyID]engine.BudgetPolicy
	settings  map[settingKey]engine.MemberBudgetSetting
	ledger    []engine.LedgerEntry

	nextLedgerID int64
}

func NewMemory() *Memory {
	return &Memory{st: state{
		families:  make(map[engine.FamilyID]engine.Family),
		members:   make(map[engine.MemberID]engine.Member),
		goals:     make(map[engine.GoalID]engine.Goal),
		decisions: make(map[engine.DecisionID]engine.Decision),
		queue:     make(map[engine.QueueItemID]engine.QueueItem),
		roadmap:   make(map[engine.RoadmapItemID]engine.RoadmapItem),
		periods:   make(map[engine.PeriodID]engine.Period),
		policies:  make(map[engine.FamilyID]engine.BudgetPolicy),
		settings:  make(map[settingKey]engine.MemberBudgetSetting),
	}}
}

func (st *state) clone() state {
	cp := state{
		families:     make(map[engine.FamilyID]engine.Family, len(st.families)),
		members:      make(map[engine.MemberID]engine.Member, len(st.members)),
		goals:        make(map[engine.GoalID]engine.Goal, len(st.goals)),
		decisions:    make(map[engine.DecisionID]engine.Decision, len(st.decisions)),
		scores:       append([]engine.ScoreEntry(nil), st.scores...),
		queue:        make(map[engine.QueueItemID]engine.QueueItem, len(st.queue)),
		roadmap:      make(map[engine.RoadmapItemID]engine.RoadmapItem, len(st.roadmap)),
		periods:      make(map[engine.PeriodID]engine.Period, len(st.periods)),
		policies:     make(map[engine.FamilyID]engine.BudgetPolicy, len(st.policies)),
		settings:     make(map[settingKey]engine.MemberBudgetSetting, len(st.settings)),
		ledger:       append([]engine.LedgerEntry(nil), st.ledger...),
		nextLedgerID: st.nextLedgerID,
	}
	for k, v := range st.families {
		cp.families[k] = v
	}
	for k, v := range st.members {
		cp.members[k] = v
	}
	for k, v := range st.goals {
		cp.goals[k] = v
	}
	for k, v := range st.decisions {
		cp.decisions[k] = v
	}
	for k, v := range st.queue {
		cp.queue[k] = v
	}
	for k, v := range st.roadmap {
		cp.roadmap[k] = v
	}
	for k, v := range st.periods {
		cp.periods[k] = v
	}
	for k, v := range st.policies {
		cp.policies[k] = v
	}
	for k, v := range st.settings {
		cp.settings[k] = v
	}
	return cp
}

// WithTx executes fn against a view of the same state. On error the snapshot
// taken before fn is restored, so partial writes never survive.
func (m *Memory) WithTx(ctx context.Context, fn func(engine.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	if err := fn(&txView{st: &m.st}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

// txView exposes the state without re-locking (the mutex is held by WithTx).
type txView struct {
	st *state
}

// =============================================================================
// FAMILIES & MEMBERS
// =============================================================================

func (st *state) createFamily(f engine.Family) error {
	if _, exists := st.families[f.ID]; exists {
		return fmt.Errorf("%w: family %s already exists", engine.ErrConflict, f.ID)
	}
	st.families[f.ID] = f
	return nil
}

func (st *state) getFamily(id engine.FamilyID) (*engine.Family, error) {
	f, ok := st.families[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (st *state) listFamilies() ([]engine.Family, error) {
	out := make([]engine.Family, 0, len(st.families))
	for _, f := range st.families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (st *state) deleteFamily(id engine.FamilyID) error {
	if _, ok := st.families[id]; !ok {
		return engine.ErrFamilyNotFound
	}
	delete(st.families, id)
	delete(st.policies, id)

	memberIDs := make(map[engine.MemberID]bool)
	for mid, m := range st.members {
		if m.FamilyID == id {
			memberIDs[mid] = true
			delete(st.members, mid)
		}
	}
	for gid, g := range st.goals {
		if g.FamilyID == id {
			delete(st.goals, gid)
		}
	}
	for did, d := range st.decisions {
		if d.FamilyID == id {
			st.deleteDecisionCascade(did)
		}
	}
	for pid, p := range st.periods {
		if p.FamilyID == id {
			delete(st.periods, pid)
		}
	}
	for key := range st.settings {
		if key.FamilyID == id {
			delete(st.settings, key)
		}
	}

	// Full purge is the only flow that drops ledger entries.
	kept := st.ledger[:0]
	for _, e := range st.ledger {
		if !memberIDs[e.MemberID] {
			kept = append(kept, e)
		}
	}
	st.ledger = kept
	return nil
}

func (st *state) createMember(m engine.Member) error {
	if _, ok := st.families[m.FamilyID]; !ok {
		return engine.ErrFamilyNotFound
	}
	for _, existing := range st.members {
		if existing.Email == m.Email {
			return fmt.Errorf("%w: member email %q already exists", engine.ErrConflict, m.Email)
		}
	}
	st.members[m.ID] = m
	return nil
}

func (st *state) getMember(id engine.MemberID) (*engine.Member, error) {
	m, ok := st.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (st *state) listMembers(familyID engine.FamilyID) ([]engine.Member, error) {
	var out []engine.Member
	for _, m := range st.members {
		if m.FamilyID == familyID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// GOALS
// =============================================================================

func (st *state) createGoal(g engine.Goal) error {
	if _, ok := st.families[g.FamilyID]; !ok {
		return engine.ErrFamilyNotFound
	}
	st.goals[g.ID] = g
	return nil
}

func (st *state) getGoal(id engine.GoalID) (*engine.Goal, error) {
	g, ok := st.goals[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (st *state) updateGoal(g engine.Goal) error {
	if _, ok := st.goals[g.ID]; !ok {
		return engine.ErrGoalNotFound
	}
	st.goals[g.ID] = g
	return nil
}

func (st *state) listGoals(familyID engine.FamilyID) ([]engine.Goal, error) {
	var out []engine.Goal
	for _, g := range st.goals {
		if g.FamilyID == familyID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// DECISIONS & SCORES
// =============================================================================

func (st *state) createDecision(d engine.Decision) error {
	if _, ok := st.families[d.FamilyID]; !ok {
		return engine.ErrFamilyNotFound
	}
	st.decisions[d.ID] = d
	return nil
}

func (st *state) getDecision(id engine.DecisionID) (*engine.Decision, error) {
	d, ok := st.decisions[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (st *state) updateDecision(d engine.Decision) error {
	if _, ok := st.decisions[d.ID]; !ok {
		return engine.ErrDecisionNotFound
	}
	st.decisions[d.ID] = d
	return nil
}

func (st *state) listDecisions(familyID engine.FamilyID) ([]engine.Decision, error) {
	var out []engine.Decision
	for _, d := range st.decisions {
		if d.FamilyID == familyID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (st *state) deleteDecisionCascade(id engine.DecisionID) {
	delete(st.decisions, id)
	kept := st.scores[:0]
	for _, sc := range st.scores {
		if sc.DecisionID != id {
			kept = append(kept, sc)
		}
	}
	st.scores = kept
	for qid, q := range st.queue {
		if q.DecisionID == id {
			delete(st.queue, qid)
		}
	}
	for rid, r := range st.roadmap {
		if r.DecisionID == id {
			delete(st.roadmap, rid)
		}
	}
}

func (st *state) deleteDecision(id engine.DecisionID) error {
	if _, ok := st.decisions[id]; !ok {
		return engine.ErrDecisionNotFound
	}
	st.deleteDecisionCascade(id)
	return nil
}

func (st *state) replaceScores(decisionID engine.DecisionID, version int, entries []engine.ScoreEntry) error {
	kept := st.scores[:0]
	for _, sc := range st.scores {
		if sc.DecisionID != decisionID || sc.Version != version {
			kept = append(kept, sc)
		}
	}
	st.scores = append(kept, entries...)
	return nil
}

func (st *state) scoresForVersion(decisionID engine.DecisionID, version int) ([]engine.ScoreEntry, error) {
	var out []engine.ScoreEntry
	for _, sc := range st.scores {
		if sc.DecisionID == decisionID && sc.Version == version {
			out = append(out, sc)
		}
	}
	return out, nil
}

// =============================================================================
// QUEUE & ROADMAP
// =============================================================================

func (st *state) createQueueItem(q engine.QueueItem) error {
	st.queue[q.ID] = q
	return nil
}

func (st *state) queueItemByDecision(decisionID engine.DecisionID) (*engine.QueueItem, error) {
	for _, q := range st.queue {
		if q.DecisionID == decisionID {
			item := q
			return &item, nil
		}
	}
	return nil, nil
}

func (st *state) maxQueueRank() (int, error) {
	max := 0
	for _, q := range st.queue {
		if q.Rank > max {
			max = q.Rank
		}
	}
	return max, nil
}

func (st *state) listQueueItems(familyID engine.FamilyID) ([]engine.QueueItem, error) {
	var out []engine.QueueItem
	for _, q := range st.queue {
		d, ok := st.decisions[q.DecisionID]
		if ok && d.FamilyID == familyID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (st *state) createRoadmapItem(item engine.RoadmapItem) error {
	st.roadmap[item.ID] = item
	return nil
}

func (st *state) getRoadmapItem(id engine.RoadmapItemID) (*engine.RoadmapItem, error) {
	item, ok := st.roadmap[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (st *state) updateRoadmapItem(item engine.RoadmapItem) error {
	if _, ok := st.roadmap[item.ID]; !ok {
		return engine.ErrRoadmapItemNotFound
	}
	st.roadmap[item.ID] = item
	return nil
}

func (st *state) deleteRoadmapItem(id engine.RoadmapItemID) error {
	if _, ok := st.roadmap[id]; !ok {
		return engine.ErrRoadmapItemNotFound
	}
	delete(st.roadmap, id)
	return nil
}

func (st *state) listRoadmapItems(familyID engine.FamilyID) ([]engine.RoadmapItem, error) {
	var out []engine.RoadmapItem
	for _, item := range st.roadmap {
		d, ok := st.decisions[item.DecisionID]
		if ok && d.FamilyID == familyID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// PERIODS, POLICY, SETTINGS
// =============================================================================

func (st *state) createPeriod(p engine.Period) error {
	st.periods[p.ID] = p
	return nil
}

func (st *state) updatePeriod(p engine.Period) error {
	if _, ok := st.periods[p.ID]; !ok {
		return fmt.Errorf("period %s not found", p.ID)
	}
	st.periods[p.ID] = p
	return nil
}

func (st *state) periodsContaining(familyID engine.FamilyID, d engine.Date) ([]engine.Period, error) {
	var out []engine.Period
	for _, p := range st.periods {
		if p.FamilyID == familyID && p.Contains(d) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (st *state) getPolicy(familyID engine.FamilyID) (*engine.BudgetPolicy, error) {
	p, ok := st.policies[familyID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (st *state) savePolicy(p engine.BudgetPolicy) error {
	st.policies[p.FamilyID] = p
	return nil
}

func (st *state) listMemberSettings(familyID engine.FamilyID) ([]engine.MemberBudgetSetting, error) {
	var out []engine.MemberBudgetSetting
	for key, setting := range st.settings {
		if key.FamilyID == familyID {
			out = append(out, setting)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })
	return out, nil
}

func (st *state) saveMemberSetting(s engine.MemberBudgetSetting) error {
	st.settings[settingKey{FamilyID: s.FamilyID, MemberID: s.MemberID}] = s
	return nil
}

func (st *state) deleteMemberSetting(familyID engine.FamilyID, memberID engine.MemberID) error {
	delete(st.settings, settingKey{FamilyID: familyID, MemberID: memberID})
	return nil
}

// =============================================================================
// LEDGER (append-only)
// =============================================================================

func (st *state) appendLedger(e engine.LedgerEntry) (int64, error) {
	st.nextLedgerID++
	e.ID = st.nextLedgerID
	st.ledger = append(st.ledger, e)
	return e.ID, nil
}

func (st *state) ledgerForMemberPeriod(memberID engine.MemberID, periodID engine.PeriodID) ([]engine.LedgerEntry, error) {
	var out []engine.LedgerEntry
	for _, e := range st.ledger {
		if e.MemberID == memberID && e.PeriodID == periodID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (st *state) ledgerForDecision(decisionID engine.DecisionID) ([]engine.LedgerEntry, error) {
	var out []engine.LedgerEntry
	for _, e := range st.ledger {
		if e.DecisionID != nil && *e.DecisionID == decisionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (st *state) hasAllocation(memberID engine.MemberID, periodID engine.PeriodID) (bool, error) {
	for _, e := range st.ledger {
		if e.MemberID == memberID && e.PeriodID == periodID && e.Reason == engine.ReasonPeriodAllocation {
			return true, nil
		}
	}
	return false, nil
}

// =============================================================================
// INTERFACE WIRING - Memory locks per call, txView runs under WithTx's lock
// =============================================================================

func (m *Memory) CreateFamily(_ context.Context, f engine.Family) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createFamily(f)
}

func (m *Memory) GetFamily(_ context.Context, id engine.FamilyID) (*engine.Family, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.getFamily(id)
}

func (m *Memory) ListFamilies(_ context.Context) ([]engine.Family, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listFamilies()
}

func (m *Memory) DeleteFamily(_ context.Context, id engine.FamilyID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.deleteFamily(id)
}

func (m *Memory) CreateMember(_ context.Context, mem engine.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createMember(mem)
}

func (m *Memory) GetMember(_ context.Context, id engine.MemberID) (*engine.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.getMember(id)
}

func (m *Memory) ListMembers(_ context.Context, familyID engine.FamilyID) ([]engine.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listMembers(familyID)
}

func (m *Memory) CreateGoal(_ context.Context, g engine.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createGoal(g)
}

func (m *Memory) GetGoal(_ context.Context, id engine.GoalID) (*engine.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.getGoal(id)
}

func (m *Memory) UpdateGoal(_ context.Context, g engine.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.updateGoal(g)
}

func (m *Memory) ListGoals(_ context.Context, familyID engine.FamilyID) ([]engine.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listGoals(familyID)
}

func (m *Memory) CreateDecision(_ context.Context, d engine.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createDecision(d)
}

func (m *Memory) GetDecision(_ context.Context, id engine.DecisionID) (*engine.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.getDecision(id)
}

func (m *Memory) UpdateDecision(_ context.Context, d engine.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.updateDecision(d)
}

func (m *Memory) ListDecisions(_ context.Context, familyID engine.FamilyID) ([]engine.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listDecisions(familyID)
}

func (m *Memory) DeleteDecision(_ context.Context, id engine.DecisionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.deleteDecision(id)
}

func (m *Memory) ReplaceScores(_ context.Context, decisionID engine.DecisionID, version int, entries []engine.ScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.replaceScores(decisionID, version, entries)
}

func (m *Memory) ScoresForVersion(_ context.Context, decisionID engine.DecisionID, version int) ([]engine.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.scoresForVersion(decisionID, version)
}

func (m *Memory) CreateQueueItem(_ context.Context, q engine.QueueItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createQueueItem(q)
}

func (m *Memory) QueueItemByDecision(_ context.Context, decisionID engine.DecisionID) (*engine.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.queueItemByDecision(decisionID)
}

func (m *Memory) MaxQueueRank(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.maxQueueRank()
}

func (m *Memory) ListQueueItems(_ context.Context, familyID engine.FamilyID) ([]engine.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listQueueItems(familyID)
}

func (m *Memory) CreateRoadmapItem(_ context.Context, item engine.RoadmapItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createRoadmapItem(item)
}

func (m *Memory) GetRoadmapItem(_ context.Context, id engine.RoadmapItemID) (*engine.RoadmapItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.getRoadmapItem(id)
}

func (m *Memory) UpdateRoadmapItem(_ context.Context, item engine.RoadmapItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.updateRoadmapItem(item)
}

func (m *Memory) DeleteRoadmapItem(_ context.Context, id engine.RoadmapItemID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.deleteRoadmapItem(id)
}

func (m *Memory) ListRoadmapItems(_ context.Context, familyID engine.FamilyID) ([]engine.RoadmapItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listRoadmapItems(familyID)
}

func (m *Memory) CreatePeriod(_ context.Context, p engine.Period) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.createPeriod(p)
}

func (m *Memory) UpdatePeriod(_ context.Context, p engine.Period) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.updatePeriod(p)
}

func (m *Memory) PeriodsContaining(_ context.Context, familyID engine.FamilyID, d engine.Date) ([]engine.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.periodsContaining(familyID, d)
}

func (m *Memory) GetPolicy(_ context.Context, familyID engine.FamilyID) (*engine.BudgetPolicy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.getPolicy(familyID)
}

func (m *Memory) SavePolicy(_ context.Context, p engine.BudgetPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.savePolicy(p)
}

func (m *Memory) ListMemberSettings(_ context.Context, familyID engine.FamilyID) ([]engine.MemberBudgetSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.listMemberSettings(familyID)
}

func (m *Memory) SaveMemberSetting(_ context.Context, s engine.MemberBudgetSetting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.saveMemberSetting(s)
}

func (m *Memory) DeleteMemberSetting(_ context.Context, familyID engine.FamilyID, memberID engine.MemberID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.deleteMemberSetting(familyID, memberID)
}

func (m *Memory) AppendLedger(_ context.Context, e engine.LedgerEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.appendLedger(e)
}

func (m *Memory) LedgerForMemberPeriod(_ context.Context, memberID engine.MemberID, periodID engine.PeriodID) ([]engine.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.ledgerForMemberPeriod(memberID, periodID)
}

func (m *Memory) LedgerForDecision(_ context.Context, decisionID engine.DecisionID) ([]engine.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.ledgerForDecision(decisionID)
}

func (m *Memory) HasAllocation(_ context.Context, memberID engine.MemberID, periodID engine.PeriodID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.hasAllocation(memberID, periodID)
}

// --- txView: same operations, no locking ---

func (v *txView) CreateFamily(_ context.Context, f engine.Family) error { return v.st.createFamily(f) }
func (v *txView) GetFamily(_ context.Context, id engine.FamilyID) (*engine.Family, error) {
	return v.st.getFamily(id)
}
func (v *txView) ListFamilies(_ context.Context) ([]engine.Family, error) { return v.st.listFamilies() }
func (v *txView) DeleteFamily(_ context.Context, id engine.FamilyID) error {
	return v.st.deleteFamily(id)
}
func (v *txView) CreateMember(_ context.Context, m engine.Member) error { return v.st.createMember(m) }
func (v *txView) GetMember(_ context.Context, id engine.MemberID) (*engine.Member, error) {
	return v.st.getMember(id)
}
func (v *txView) ListMembers(_ context.Context, familyID engine.FamilyID) ([]engine.Member, error) {
	return v.st.listMembers(familyID)
}
func (v *txView) CreateGoal(_ context.Context, g engine.Goal) error { return v.st.createGoal(g) }
func (v *txView) GetGoal(_ context.Context, id engine.GoalID) (*engine.Goal, error) {
	return v.st.getGoal(id)
}
func (v *txView) UpdateGoal(_ context.Context, g engine.Goal) error { return v.st.updateGoal(g) }
func (v *txView) ListGoals(_ context.Context, familyID engine.FamilyID) ([]engine.Goal, error) {
	return v.st.listGoals(familyID)
}
func (v *txView) CreateDecision(_ context.Context, d engine.Decision) error {
	return v.st.createDecision(d)
}
func (v *txView) GetDecision(_ context.Context, id engine.DecisionID) (*engine.Decision, error) {
	return v.st.getDecision(id)
}
func (v *txView) UpdateDecision(_ context.Context, d engine.Decision) error {
	return v.st.updateDecision(d)
}
func (v *txView) ListDecisions(_ context.Context, familyID engine.FamilyID) ([]engine.Decision, error) {
	return v.st.listDecisions(familyID)
}
func (v *txView) DeleteDecision(_ context.Context, id engine.DecisionID) error {
	return v.st.deleteDecision(id)
}
func (v *txView) ReplaceScores(_ context.Context, decisionID engine.DecisionID, version int, entries []engine.ScoreEntry) error {
	return v.st.replaceScores(decisionID, version, entries)
}
func (v *txView) ScoresForVersion(_ context.Context, decisionID engine.DecisionID, version int) ([]engine.ScoreEntry, error) {
	return v.st.scoresForVersion(decisionID, version)
}
func (v *txView) CreateQueueItem(_ context.Context, q engine.QueueItem) error {
	return v.st.createQueueItem(q)
}
func (v *txView) QueueItemByDecision(_ context.Context, decisionID engine.DecisionID) (*engine.QueueItem, error) {
	return v.st.queueItemByDecision(decisionID)
}
func (v *txView) MaxQueueRank(_ context.Context) (int, error) { return v.st.maxQueueRank() }
func (v *txView) ListQueueItems(_ context.Context, familyID engine.FamilyID) ([]engine.QueueItem, error) {
	return v.st.listQueueItems(familyID)
}
func (v *txView) CreateRoadmapItem(_ context.Context, item engine.RoadmapItem) error {
	return v.st.createRoadmapItem(item)
}
func (v *txView) GetRoadmapItem(_ context.Context, id engine.RoadmapItemID) (*engine.RoadmapItem, error) {
	return v.st.getRoadmapItem(id)
}
func (v *txView) UpdateRoadmapItem(_ context.Context, item engine.RoadmapItem) error {
	return v.st.updateRoadmapItem(item)
}
func (v *txView) DeleteRoadmapItem(_ context.Context, id engine.RoadmapItemID) error {
	return v.st.deleteRoadmapItem(id)
}
func (v *txView) ListRoadmapItems(_ context.Context, familyID engine.FamilyID) ([]engine.RoadmapItem, error) {
	return v.st.listRoadmapItems(familyID)
}
func (v *txView) CreatePeriod(_ context.Context, p engine.Period) error { return v.st.createPeriod(p) }
func (v *txView) UpdatePeriod(_ context.Context, p engine.Period) error { return v.st.updatePeriod(p) }
func (v *txView) PeriodsContaining(_ context.Context, familyID engine.FamilyID, d engine.Date) ([]engine.Period, error) {
	return v.st.periodsContaining(familyID, d)
}
func (v *txView) GetPolicy(_ context.Context, familyID engine.FamilyID) (*engine.BudgetPolicy, error) {
	return v.st.getPolicy(familyID)
}
func (v *txView) SavePolicy(_ context.Context, p engine.BudgetPolicy) error {
	return v.st.savePolicy(p)
}
func (v *txView) ListMemberSettings(_ context.Context, familyID engine.FamilyID) ([]engine.MemberBudgetSetting, error) {
	return v.st.listMemberSettings(familyID)
}
func (v *txView) SaveMemberSetting(_ context.Context, s engine.MemberBudgetSetting) error {
	return v.st.saveMemberSetting(s)
}
func (v *txView) DeleteMemberSetting(_ context.Context, familyID engine.FamilyID, memberID engine.MemberID) error {
	return v.st.deleteMemberSetting(familyID, memberID)
}
func (v *txView) AppendLedger(_ context.Context, e engine.LedgerEntry) (int64, error) {
	return v.st.appendLedger(e)
}
func (v *txView) LedgerForMemberPeriod(_ context.Context, memberID engine.MemberID, periodID engine.PeriodID) ([]engine.LedgerEntry, error) {
	return v.st.ledgerForMemberPeriod(memberID, periodID)
}
func (v *txView) LedgerForDecision(_ context.Context, decisionID engine.DecisionID) ([]engine.LedgerEntry, error) {
	return v.st.ledgerForDecision(decisionID)
}
func (v *txView) HasAllocation(_ context.Context, memberID engine.MemberID, periodID engine.PeriodID) (bool, error) {
	return v.st.hasAllocation(memberID, periodID)
}
