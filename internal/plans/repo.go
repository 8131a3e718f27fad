package plans

import "context"

// ArchiveFunc persists a plan somewhere durable before it is pruned.
type ArchiveFunc func(ctx context.Context, p Plan) error

// Repo defines persistence operations for plans. Lookups are scoped to the
// owner; a plan owned by someone else is reported as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, p Plan) error
	GetByID(ctx context.Context, userID, planID string) (Plan, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Plan, error)
	LatestByUser(ctx context.Context, userID string) (Plan, error)
	SetExportKey(ctx context.Context, userID, planID, exportKey string) error
	// PruneOldest keeps the newest keep plans across all users. Each older
	// plan is handed to archive first and deleted only if that succeeds; a
	// nil archive deletes directly. It returns the deleted plans, oldest first.
	PruneOldest(ctx context.Context, keep int, archive ArchiveFunc) ([]Plan, error)
}
