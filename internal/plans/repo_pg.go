package plans

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const pgPlanColumns = `id, user_id, request::text, result::text, explanation_source, export_key, created_at`

// Create inserts a new plan.
func (r *PGRepo) Create(ctx context.Context, p Plan) error {
	const query = `
INSERT INTO plans (
    id,
    user_id,
    request,
    result,
    explanation_source,
    export_key,
    created_at
) VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6, $7)`

	request, result, exportKey, err := encodePlan(p)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		request,
		result,
		p.ExplanationSource,
		exportKey,
		p.CreatedAt,
	)
	return err
}

// GetByID fetches a plan by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, planID string) (Plan, error) {
	query := `
SELECT ` + pgPlanColumns + `
FROM plans
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return r.queryOne(ctx, query, userID, planID)
}

// LatestByUser returns the newest plan for a user.
func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Plan, error) {
	query := `
SELECT ` + pgPlanColumns + `
FROM plans
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`
	return r.queryOne(ctx, query, userID)
}

// ListByUser lists plans ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Plan, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + pgPlanColumns + `
FROM plans
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	return r.queryMany(ctx, query, userID, limit, offset)
}

// SetExportKey records where the plan's workbook was stored.
func (r *PGRepo) SetExportKey(ctx context.Context, userID, planID, exportKey string) error {
	const query = `
UPDATE plans
SET export_key = $1
WHERE user_id = $2 AND id = $3`
	res, err := r.DB.ExecContext(ctx, query, exportKey, userID, planID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneOldest deletes plans beyond the newest keep, archiving each first.
func (r *PGRepo) PruneOldest(ctx context.Context, keep int, archive ArchiveFunc) ([]Plan, error) {
	if keep < 0 {
		keep = 0
	}
	query := `
SELECT ` + pgPlanColumns + `
FROM plans
ORDER BY created_at DESC, id DESC
OFFSET $1`
	candidates, err := r.queryMany(ctx, query, keep)
	if err != nil {
		return nil, err
	}
	reversePlans(candidates)

	const del = `DELETE FROM plans WHERE id = $1`
	var pruned []Plan
	for _, p := range candidates {
		if archive != nil {
			if err := archive(ctx, p); err != nil {
				return pruned, err
			}
		}
		if _, err := r.DB.ExecContext(ctx, del, p.ID); err != nil {
			return pruned, err
		}
		pruned = append(pruned, p)
	}
	return pruned, nil
}

func (r *PGRepo) queryOne(ctx context.Context, query string, args ...any) (Plan, error) {
	p, err := scanPGPlan(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	return p, nil
}

func (r *PGRepo) queryMany(ctx context.Context, query string, args ...any) ([]Plan, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Plan{}
	for rows.Next() {
		p, err := scanPGPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPGPlan(row rowScanner) (Plan, error) {
	var p Plan
	var request, result string
	var exportKey sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&request,
		&result,
		&p.ExplanationSource,
		&exportKey,
		&p.CreatedAt,
	); err != nil {
		return Plan{}, err
	}
	if err := decodePlan(&p, request, result, exportKey); err != nil {
		return Plan{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
