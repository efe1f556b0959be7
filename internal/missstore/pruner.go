package missstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Pruner periodically drops misses older than the retention window.
type Pruner struct {
	scheduler gocron.Scheduler
	store     *SQLiteStore
	retention time.Duration
	now       func() time.Time
}

// NewPruner schedules a prune every interval. Call Start to begin running it.
func NewPruner(store *SQLiteStore, retention, interval time.Duration) (*Pruner, error) {
	if retention <= 0 || interval <= 0 {
		return nil, fmt.Errorf("retention and interval must be positive")
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	p := &Pruner{scheduler: s, store: store, retention: retention, now: time.Now}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(p.run),
		gocron.WithName("miss-prune"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create prune job: %w", err)
	}
	return p, nil
}

// Start begins the scheduler.
func (p *Pruner) Start() {
	slog.Info("Starting miss pruner", "retention", p.retention)
	p.scheduler.Start()
}

// Stop shuts the scheduler down.
func (p *Pruner) Stop() error {
	slog.Info("Stopping miss pruner")
	return p.scheduler.Shutdown()
}

func (p *Pruner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := p.PruneNow(ctx); err != nil {
		slog.Error("Miss prune failed", "error", err)
	}
}

// PruneNow runs one prune pass immediately.
func (p *Pruner) PruneNow(ctx context.Context) (int64, error) {
	n, err := p.store.Prune(ctx, p.now().Add(-p.retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("Pruned misses", "count", n)
	}
	return n, nil
}
