package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"fitsynth-backend/internal/chat"
	"fitsynth-backend/internal/llm"
	"fitsynth-backend/internal/llm/mistral"
	"fitsynth-backend/internal/plans"
	"fitsynth-backend/internal/services/health"
	"fitsynth-backend/internal/shared/config"
	"fitsynth-backend/internal/shared/server"
	"fitsynth-backend/internal/shared/storage/db"
	"fitsynth-backend/internal/shared/storage/object"
	localstore "fitsynth-backend/internal/shared/storage/object/local"
	s3store "fitsynth-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	LLM          llm.Client
	PlansRepo    plans.Repo
	PlansService *plans.Service
	ChatService  *chat.Service
	Pruner       *plans.Pruner
	Health       *health.Service
	PlansHandler *plans.Handler
	ChatHandler  *chat.Handler
}

// Build prepares shared dependencies and the router. The pruner is built
// but not scheduled; long-running binaries call StartRetention.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.StoreDriver) == "" {
		cfg.StoreDriver = "memory"
	}
	ctx := context.Background()

	sqlDB, driver, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cfg.StoreDriver = driver

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, model, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    client,
	}
	if err := buildServices(app, model); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config: app.Config,
		Plans:  app.PlansHandler,
		Chat:   app.ChatHandler,
		Health: app.Health,
	})
	return app, nil
}

// StartRetention schedules plan pruning on the configured cron spec.
func (a *App) StartRetention() error {
	if a.Pruner == nil || a.Config.RetentionMax <= 0 {
		log.Printf("bootstrap: plan retention disabled")
		return nil
	}
	spec := strings.TrimSpace(a.Config.RetentionSchedule)
	if spec == "" {
		spec = "@every 1h"
	}
	return a.Pruner.Start(spec)
}

// Close stops background work and releases the database. The Lambda
// singleton is left open for reuse across invocations.
func (a *App) Close() error {
	if a.Pruner != nil {
		a.Pruner.Stop()
	}
	if a.DB != nil && !db.IsLambdaRuntime() {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, db.OptionsFor(db.ProfileSQLite))
		if err != nil {
			return nil, "", err
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			_ = sqlDB.Close()
			return nil, "", fmt.Errorf("sqlite migrations: %w", err)
		}
		return sqlDB, "sqlite", nil
	case "postgres":
		return buildPostgres(ctx, cfg)
	default:
		if !isDevLike(cfg.Env) {
			log.Printf("bootstrap: %s environment is using in-memory plan storage", cfg.Env)
		}
		return nil, "memory", nil
	}
}

func buildPostgres(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, "memory", nil
		}
		return nil, "", fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFor(db.ProfileLambda)
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFor(db.ProfileServer)
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, "memory", nil
		}
		return nil, "", err
	}

	// Deployed environments migrate through cmd/migrate.
	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
			return nil, "", fmt.Errorf("postgres migrations: %w", err)
		}
	}
	return sqlDB, "postgres", nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildLLM returns the configured client and the model it reports.
func buildLLM(cfg config.Config) (llm.Client, string, error) {
	if cfg.LLMProvider != "mistral" {
		return llm.PlaceholderClient{}, "", nil
	}
	client, err := mistral.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
	if err != nil {
		return nil, "", err
	}
	return client, client.Model(), nil
}

func buildServices(app *App, model string) error {
	var repo plans.Repo
	switch {
	case app.DB == nil:
		repo = plans.NewMemoryRepo()
	case app.Config.StoreDriver == "sqlite":
		repo = &plans.SQLiteRepo{DB: app.DB}
	default:
		repo = &plans.PGRepo{DB: app.DB}
	}

	plansSvc := plans.NewService(repo, app.LLM, app.Store)
	chatSvc := &chat.Service{LLM: app.LLM, Plans: plansSvc}

	app.PlansRepo = repo
	app.PlansService = plansSvc
	app.ChatService = chatSvc
	app.Pruner = plans.NewPruner(repo, app.Store, app.Config.RetentionMax)
	app.Health = health.NewService(llm.Enabled(app.LLM), model, app.Config.StoreDriver, app.DB)
	app.PlansHandler = plans.NewHandler(plansSvc)
	app.ChatHandler = chat.NewHandler(chatSvc)

	if app.PlansHandler == nil || app.ChatHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
