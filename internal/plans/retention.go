package plans

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron"

	"fitsynth-backend/internal/shared/metrics"
	"fitsynth-backend/internal/shared/storage/object"
	"fitsynth-backend/internal/shared/telemetry"
)

// Pruner caps the number of stored plans. Each pruned plan is written to
// the object store as JSON before it is deleted, and its export is removed.
type Pruner struct {
	Repo    Repo
	Store   object.ObjectStore
	Keep    int
	Timeout time.Duration

	mu      sync.Mutex // serializes runs
	cronMu  sync.Mutex
	cronJob *cron.Cron
}

// NewPruner keeps the newest keep plans. keep <= 0 disables pruning.
func NewPruner(repo Repo, store object.ObjectStore, keep int) *Pruner {
	return &Pruner{Repo: repo, Store: store, Keep: keep, Timeout: 5 * time.Minute}
}

// Start schedules RunOnce on a cron spec such as "@every 1h".
func (p *Pruner) Start(spec string) error {
	p.cronMu.Lock()
	defer p.cronMu.Unlock()
	if p.cronJob != nil {
		return fmt.Errorf("pruner already started")
	}

	c := cron.New()
	if err := c.AddFunc(spec, p.scheduledRun); err != nil {
		return fmt.Errorf("retention schedule %q: %w", spec, err)
	}
	c.Start()
	p.cronJob = c
	telemetry.Info("plan.pruner_started", map[string]any{"schedule": spec, "keep": p.Keep})
	return nil
}

// Stop halts the schedule. A run in progress finishes on its own.
func (p *Pruner) Stop() {
	p.cronMu.Lock()
	defer p.cronMu.Unlock()
	if p.cronJob != nil {
		p.cronJob.Stop()
		p.cronJob = nil
	}
}

func (p *Pruner) scheduledRun() {
	ctx := context.Background()
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	if _, err := p.RunOnce(ctx); err != nil {
		telemetry.Error("plan.prune_failed", map[string]any{"error": err, "keep": p.Keep})
	}
}

// RunOnce prunes immediately and reports how many plans were removed.
func (p *Pruner) RunOnce(ctx context.Context) (int, error) {
	if p.Keep <= 0 {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var archive ArchiveFunc
	if p.Store != nil {
		archive = p.archive
	}
	pruned, err := p.Repo.PruneOldest(ctx, p.Keep, archive)
	for _, plan := range pruned {
		p.dropExport(ctx, plan)
	}
	if len(pruned) > 0 {
		metrics.AddPruned(len(pruned))
		telemetry.Info("plan.pruned", map[string]any{
			"count": len(pruned),
			"keep":  p.Keep,
		})
	}
	if err != nil {
		return len(pruned), fmt.Errorf("prune plans: %w", err)
	}
	return len(pruned), nil
}

func (p *Pruner) archive(ctx context.Context, plan Plan) error {
	key, err := object.ArchiveKey(plan.ID, plan.CreatedAt)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode archive %s: %w", plan.ID, err)
	}
	if _, err := p.Store.Put(ctx, key, object.ContentTypeJSON, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("archive %s: %w", plan.ID, err)
	}
	return nil
}

func (p *Pruner) dropExport(ctx context.Context, plan Plan) {
	if plan.ExportKey == "" || p.Store == nil {
		return
	}
	if err := p.Store.Delete(ctx, plan.ExportKey); err != nil {
		telemetry.Warn("plan.export_delete_failed", map[string]any{
			"plan_id": plan.ID,
			"error":   err,
		})
	}
}
