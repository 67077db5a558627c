package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the
// duration until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// FetchFunc retrieves one page of complaints under the given filters.
type FetchFunc func(ctx context.Context, page int, f models.Filters) ([]models.Complaint, models.Pagination, error)

// Watcher polls the complaints list and announces records whose id
// exceeds the highest id seen so far. Optionally posts a digest on a
// cron schedule.
type Watcher struct {
	Adapter    Adapter
	Fetch      FetchFunc
	Interval   time.Duration
	DigestExpr string // 5-field cron expression; empty disables the digest
	Out        io.Writer

	lastSeen int
}

// Run primes the high-water mark from the current first page, then
// polls until ctx is cancelled. Poll errors are logged and the next
// tick tries again.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Adapter == nil {
		return fmt.Errorf("notify: adapter is required")
	}
	if w.Fetch == nil {
		return fmt.Errorf("notify: fetch func is required")
	}
	interval := w.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	// Prime: existing complaints are not announced, only ones arriving
	// after the watcher starts.
	list, _, err := w.Fetch(ctx, 1, models.Filters{})
	if err != nil {
		return fmt.Errorf("notify: initial fetch: %w", err)
	}
	for _, c := range list {
		if c.ID > w.lastSeen {
			w.lastSeen = c.ID
		}
	}
	if w.Out != nil {
		fmt.Fprintf(w.Out, "Watching for new complaints (last id %d)...\n", w.lastSeen)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	digest := time.NewTimer(time.Hour)
	digest.Stop()
	if w.DigestExpr != "" {
		if d := nextCronDuration(w.DigestExpr); d > 0 {
			digest.Reset(d)
		}
	}
	defer digest.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				log.Printf("notify: poll: %v", err)
			}
		case <-digest.C:
			if err := w.sendDigest(ctx); err != nil {
				log.Printf("notify: digest: %v", err)
			}
			if d := nextCronDuration(w.DigestExpr); d > 0 {
				digest.Reset(d)
			}
		}
	}
}

func (w *Watcher) poll(ctx context.Context) error {
	list, _, err := w.Fetch(ctx, 1, models.Filters{})
	if err != nil {
		return err
	}

	// Server ordering is not guaranteed; announce in ascending id order.
	var fresh []models.Complaint
	for _, c := range list {
		if c.ID > w.lastSeen {
			fresh = append(fresh, c)
		}
	}
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].ID < fresh[j].ID })

	for _, c := range fresh {
		if err := w.Adapter.Send(ctx, NewComplaint(c)); err != nil {
			return err
		}
		w.lastSeen = c.ID
		if w.Out != nil {
			fmt.Fprintf(w.Out, "announced complaint #%d (%s)\n", c.ID, c.ClientName)
		}
	}
	return nil
}

func (w *Watcher) sendDigest(ctx context.Context) error {
	_, all, err := w.Fetch(ctx, 1, models.Filters{})
	if err != nil {
		return err
	}
	status := models.StatusInProgress
	_, open, err := w.Fetch(ctx, 1, models.Filters{Status: &status})
	if err != nil {
		return err
	}
	return w.Adapter.Send(ctx, Digest(all.Total, open.Total))
}
