package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"database/sql"
	"log"
	"os"

	"fitsynth-backend/internal/shared/config"
	"fitsynth-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var err error
	switch cfg.StoreDriver {
	case "postgres":
		err = migratePostgres(ctx, cfg)
	case "sqlite":
		err = migrateSQLite(ctx, cfg)
	default:
		log.Printf("STORE_DRIVER=%s has no schema; nothing to migrate", cfg.StoreDriver)
		return
	}
	if err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}

func migratePostgres(ctx context.Context, cfg config.Config) error {
	opts := db.OptionsFor(db.ProfileMigrate)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
		return err
	}
	return logVersion(ctx, sqlDB, db.DialectPostgres)
}

func migrateSQLite(ctx context.Context, cfg config.Config) error {
	sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, db.OptionsFor(db.ProfileSQLite))
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
		return err
	}
	return logVersion(ctx, sqlDB, db.DialectSQLite)
}

func logVersion(ctx context.Context, sqlDB *sql.DB, dialect db.Dialect) error {
	version, err := db.MigrationVersion(ctx, sqlDB, dialect)
	if err != nil {
		return err
	}
	log.Printf("migrations applied: dialect=%s version=%d", dialect, version)
	return nil
}
