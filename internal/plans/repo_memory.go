package plans

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string        // insertion order, oldest first
	data  map[string]Plan // planID -> plan
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Plan),
	}
}

// Create stores a new plan.
func (r *MemoryRepo) Create(ctx context.Context, p Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.data[p.ID] = p
	return nil
}

// GetByID returns a plan owned by userID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, planID string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[planID]
	if !ok || p.UserID != userID {
		return Plan{}, ErrNotFound
	}
	return p, nil
}

// ListByUser returns plans for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	owned := r.newestFirst(func(p Plan) bool { return p.UserID == userID })
	if len(owned) == 0 || offset >= len(owned) {
		return []Plan{}, nil
	}
	end := len(owned)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return owned[offset:end], nil
}

// LatestByUser returns the newest plan for a user.
func (r *MemoryRepo) LatestByUser(ctx context.Context, userID string) (Plan, error) {
	plans, err := r.ListByUser(ctx, userID, 1, 0)
	if err != nil {
		return Plan{}, err
	}
	if len(plans) == 0 {
		return Plan{}, ErrNotFound
	}
	return plans[0], nil
}

// SetExportKey records where the plan's workbook was stored.
func (r *MemoryRepo) SetExportKey(ctx context.Context, userID, planID, exportKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[planID]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	p.ExportKey = exportKey
	r.data[planID] = p
	return nil
}

// PruneOldest drops all but the newest keep plans.
func (r *MemoryRepo) PruneOldest(ctx context.Context, keep int, archive ArchiveFunc) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}

	all := r.newestFirst(nil)
	if len(all) <= keep {
		return nil, nil
	}
	candidates := all[keep:]
	// Oldest first so a partial run removes the oldest plans.
	for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	var pruned []Plan
	for _, p := range candidates {
		if archive != nil {
			if err := archive(ctx, p); err != nil {
				return pruned, err
			}
		}
		r.delete(p.ID)
		pruned = append(pruned, p)
	}
	return pruned, nil
}

// Len reports how many plans are stored.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

func (r *MemoryRepo) delete(planID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, planID)
	for i, id := range r.order {
		if id == planID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// newestFirst copies matching plans and sorts them newest-first by
// CreatedAt, falling back to insertion order for equal timestamps.
func (r *MemoryRepo) newestFirst(match func(Plan) bool) []Plan {
	r.mu.RLock()
	out := make([]Plan, 0, len(r.order))
	seq := make(map[string]int, len(r.order))
	for i, id := range r.order {
		p := r.data[id]
		if match == nil || match(p) {
			out = append(out, p)
			seq[id] = i
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seq[out[i].ID] > seq[out[j].ID]
	})
	return out
}

var _ Repo = (*MemoryRepo)(nil)
