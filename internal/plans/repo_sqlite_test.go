package plans

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"fitsynth-backend/internal/shared/storage/db"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "plans.db"), db.Preset(db.ProfileSQLite))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return &SQLiteRepo{DB: sqlDB}
}

func TestSQLiteRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	p := samplePlan("p1", "guest:a", 0)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, "guest:a", "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) || got.ExportKey != "" {
		t.Fatalf("unexpected plan: %+v", got)
	}
	if !reflect.DeepEqual(got.Result.Schedule, p.Result.Schedule) || !reflect.DeepEqual(got.Result.Diet, p.Result.Diet) {
		t.Fatalf("result did not round-trip")
	}
	if _, err := repo.GetByID(ctx, "guest:b", "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	if err := repo.SetExportKey(ctx, "guest:a", "p1", "exports/x/p1.xlsx"); err != nil {
		t.Fatalf("SetExportKey: %v", err)
	}
	if err := repo.SetExportKey(ctx, "guest:a", "nope", "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, _ = repo.GetByID(ctx, "guest:a", "p1")
	if got.ExportKey != "exports/x/p1.xlsx" {
		t.Fatalf("export key = %q", got.ExportKey)
	}
}

func TestSQLiteRepoListLatestAndPrune(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	for i, id := range []string{"p1", "p2", "p3", "p4"} {
		user := "guest:a"
		if id == "p3" {
			user = "guest:b"
		}
		if err := repo.Create(ctx, samplePlan(id, user, i*10)); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	list, err := repo.ListByUser(ctx, "guest:a", 2, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if got := planIDs(list); !reflect.DeepEqual(got, []string{"p4", "p2"}) {
		t.Fatalf("unexpected list: %v", got)
	}
	latest, err := repo.LatestByUser(ctx, "guest:b")
	if err != nil || latest.ID != "p3" {
		t.Fatalf("LatestByUser = %v, %v", latest.ID, err)
	}

	var archived []string
	pruned, err := repo.PruneOldest(ctx, 2, func(_ context.Context, p Plan) error {
		archived = append(archived, p.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("PruneOldest: %v", err)
	}
	if got := planIDs(pruned); !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Fatalf("unexpected pruned: %v", got)
	}
	if !reflect.DeepEqual(archived, []string{"p1", "p2"}) {
		t.Fatalf("unexpected archived: %v", archived)
	}
	rest, _ := repo.ListByUser(ctx, "guest:a", 10, 0)
	if got := planIDs(rest); !reflect.DeepEqual(got, []string{"p4"}) {
		t.Fatalf("unexpected remaining: %v", got)
	}
}
