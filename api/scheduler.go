/*
scheduler.go - Background budget period rollover

PURPOSE:
  Periodically resolves each family's active budget period so allowances roll
  over on schedule even when nobody is hitting the API. The same lazy
  get-or-create the request path uses makes every tick idempotent: a period
  that already covers today is returned untouched, and allocations are only
  granted once per (member, period).

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether the scheduler is active (default: true)

USAGE:
  scheduler := NewRolloverScheduler(eng)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - engine/budget.go: EnsureActivePeriod (the idempotent core)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/hearthplan/hearth/engine"
)

// RolloverScheduler keeps every family's budget period current.
type RolloverScheduler struct {
	Engine        *engine.Engine
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRolloverScheduler creates a new scheduler.
func NewRolloverScheduler(eng *engine.Engine) *RolloverScheduler {
	return &RolloverScheduler{
		Engine:        eng,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (rs *RolloverScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval: %v", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *RolloverScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *RolloverScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndProcess()

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndProcess()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RolloverScheduler) checkAndProcess() {
	ctx := context.Background()

	families, err := rs.Engine.Store().ListFamilies(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing families: %v", err)
		return
	}

	rolled := 0
	for _, f := range families {
		period, err := rs.Engine.EnsureCurrentPeriod(ctx, f.ID)
		if err != nil {
			log.Printf("[Scheduler] Error ensuring period for family %s: %v", f.ID, err)
			continue
		}
		if period.StartDate.Equal(rs.Engine.Now()) {
			rolled++
		}
	}

	if rolled > 0 {
		log.Printf("[Scheduler] Opened %d new budget period(s)", rolled)
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (rs *RolloverScheduler) RunNow() {
	rs.checkAndProcess()
}
