package query

import (
	"context"
	"log"
	"time"
)

// Poller refetches the complaints list on a fixed interval while an
// auto-refresh flag is enabled. The flag is consulted on every tick, so
// disabling it stops further automatic executions immediately; manual
// refreshes are unaffected and collapse with a racing tick through the
// orchestrator's per-key deduplication.
type Poller struct {
	Interval time.Duration
	// Enabled gates each tick; typically the store's AutoRefresh flag.
	Enabled func() bool
	// Task performs one refetch. Errors are logged, not fatal: the next
	// tick tries again.
	Task func(ctx context.Context) error
}

// Run blocks, ticking until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.Enabled != nil && !p.Enabled() {
				continue
			}
			if err := p.Task(ctx); err != nil {
				log.Printf("query: auto-refresh: %v", err)
			}
		}
	}
}
