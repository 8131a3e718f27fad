package plans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// sqliteTime is fixed-width so TEXT ordering matches chronological ordering.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

// SQLiteRepo implements Repo on a single-file SQLite database.
type SQLiteRepo struct {
	DB *sql.DB
}

const sqlitePlanColumns = `id, user_id, request, result, explanation_source, export_key, created_at`

// Create inserts a new plan.
func (r *SQLiteRepo) Create(ctx context.Context, p Plan) error {
	const query = `
INSERT INTO plans (id, user_id, request, result, explanation_source, export_key, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

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
		p.CreatedAt.UTC().Format(sqliteTime),
	)
	return err
}

// GetByID fetches a plan by ID for a user.
func (r *SQLiteRepo) GetByID(ctx context.Context, userID, planID string) (Plan, error) {
	query := `SELECT ` + sqlitePlanColumns + ` FROM plans WHERE user_id = ? AND id = ? LIMIT 1`
	return r.queryOne(ctx, query, userID, planID)
}

// LatestByUser returns the newest plan for a user.
func (r *SQLiteRepo) LatestByUser(ctx context.Context, userID string) (Plan, error) {
	query := `SELECT ` + sqlitePlanColumns + ` FROM plans WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`
	return r.queryOne(ctx, query, userID)
}

// ListByUser lists plans ordered newest-first.
func (r *SQLiteRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Plan, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + sqlitePlanColumns + ` FROM plans WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`
	return r.queryMany(ctx, query, userID, limit, offset)
}

// SetExportKey records where the plan's workbook was stored.
func (r *SQLiteRepo) SetExportKey(ctx context.Context, userID, planID, exportKey string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE plans SET export_key = ? WHERE user_id = ? AND id = ?`, exportKey, userID, planID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneOldest deletes plans beyond the newest keep, archiving each first.
func (r *SQLiteRepo) PruneOldest(ctx context.Context, keep int, archive ArchiveFunc) ([]Plan, error) {
	if keep < 0 {
		keep = 0
	}
	// SQLite needs a LIMIT before OFFSET; -1 means no limit.
	query := `SELECT ` + sqlitePlanColumns + ` FROM plans ORDER BY created_at DESC, rowid DESC LIMIT -1 OFFSET ?`
	candidates, err := r.queryMany(ctx, query, keep)
	if err != nil {
		return nil, err
	}
	reversePlans(candidates)

	var pruned []Plan
	for _, p := range candidates {
		if archive != nil {
			if err := archive(ctx, p); err != nil {
				return pruned, err
			}
		}
		if _, err := r.DB.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, p.ID); err != nil {
			return pruned, err
		}
		pruned = append(pruned, p)
	}
	return pruned, nil
}

func (r *SQLiteRepo) queryOne(ctx context.Context, query string, args ...any) (Plan, error) {
	p, err := scanSQLitePlan(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	return p, nil
}

func (r *SQLiteRepo) queryMany(ctx context.Context, query string, args ...any) ([]Plan, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Plan{}
	for rows.Next() {
		p, err := scanSQLitePlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanSQLitePlan(row rowScanner) (Plan, error) {
	var p Plan
	var request, result, createdAt string
	var exportKey sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&request,
		&result,
		&p.ExplanationSource,
		&exportKey,
		&createdAt,
	); err != nil {
		return Plan{}, err
	}
	ts, err := time.Parse(sqliteTime, createdAt)
	if err != nil {
		return Plan{}, fmt.Errorf("decode plan %s created_at: %w", p.ID, err)
	}
	p.CreatedAt = ts
	if err := decodePlan(&p, request, result, exportKey); err != nil {
		return Plan{}, err
	}
	return p, nil
}

var _ Repo = (*SQLiteRepo)(nil)
