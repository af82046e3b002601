// Package bootstrap assembles stores, services and the HTTP router from config.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/applications"
	"ats-backend/internal/auth"
	"ats-backend/internal/dashboard"
	"ats-backend/internal/forms"
	"ats-backend/internal/intake"
	"ats-backend/internal/jobs"
	"ats-backend/internal/notify"
	"ats-backend/internal/seed"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/server"
	"ats-backend/internal/shared/storage/db"
	"ats-backend/internal/shared/storage/kv"
	"ats-backend/internal/shared/storage/object"
	localstore "ats-backend/internal/shared/storage/object/local"
	s3store "ats-backend/internal/shared/storage/object/s3"
	"ats-backend/internal/stages"
	"ats-backend/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	KV     kv.Store
	Store  object.ObjectStore

	Jobs         *jobs.Service
	Forms        *forms.Service
	Stages       *stages.Catalog
	Applications *applications.Service
	Intake       *intake.Engine
	Uploads      *uploads.Service
	Auth         *auth.Service
	Dashboard    *dashboard.Service
	Seed         seed.Targets
}

// Build prepares every dependency and the router.
func Build(cfg config.Config) (*App, error) {
	return BuildContext(context.Background(), cfg)
}

// BuildContext is Build with a caller-supplied context for connection setup.
func BuildContext(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.KVBackend) == "" {
		cfg.KVBackend = "memory"
	}

	store, sqlDB, err := OpenKV(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	objects, err := buildObjectStore(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, KV: store, Store: objects}
	buildServices(app)

	if cfg.SeedDemoData {
		if err := app.SeedDemo(ctx); err != nil {
			closeDB(sqlDB)
			return nil, err
		}
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Health:       health.NewService(store, cfg.KVBackend, cfg.ObjectStoreType),
		Auth:         auth.NewHandler(app.Auth),
		Jobs:         jobs.NewHandler(app.Jobs),
		Forms:        forms.NewHandler(app.Forms, app.Jobs, cfg.PublicBaseURL),
		Stages:       stages.NewHandler(app.Stages),
		Applications: applications.NewHandler(app.Applications),
		Intake:       intake.NewHandler(app.Intake),
		Uploads:      uploads.NewHandler(app.Uploads),
		Dashboard:    dashboard.NewHandler(app.Dashboard),
	})

	return app, nil
}

// OpenKV opens the configured key-value backend and applies migrations for SQL
// backends. In dev-like environments an unreachable database falls back to
// memory and cfg.KVBackend is updated to match.
func OpenKV(ctx context.Context, cfg *config.Config) (kv.Store, *sql.DB, error) {
	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	switch cfg.KVBackend {
	case "postgres":
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	case "sqlite":
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return kv.NewMemoryStore(), nil, nil
	}
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			closeDB(sqlDB)
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: %s backend unavailable; using in-memory store: %v", cfg.KVBackend, err)
			cfg.KVBackend = "memory"
			return kv.NewMemoryStore(), nil, nil
		}
		return nil, nil, err
	}

	store, err := kv.NewSQLStore(sqlDB, dialect)
	if err != nil {
		closeDB(sqlDB)
		return nil, nil, err
	}
	return store, sqlDB, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	cfg := app.Config
	now := func() time.Time { return time.Now().UTC() }

	jobRepo := jobs.NewKVRepo(app.KV)
	formRepo := forms.NewKVRepo(app.KV)
	appRepo := applications.NewKVRepo(app.KV)

	app.Stages = stages.NewCatalog(app.KV)
	app.Jobs = &jobs.Service{Repo: jobRepo, Now: now}
	app.Forms = &forms.Service{Repo: formRepo, Jobs: app.Jobs, Now: now}
	app.Applications = &applications.Service{
		Repo:     appRepo,
		Stages:   app.Stages,
		Jobs:     app.Jobs,
		Notifier: notify.New(cfg.DiscordBotToken, cfg.DiscordChannelID),
		Now:      now,
	}
	app.Uploads = &uploads.Service{Store: app.Store, Repo: uploads.NewKVRepo(app.KV), Jobs: app.Jobs, Now: now}
	app.Jobs.OnDelete = []jobs.DeleteHook{app.Forms, app.Applications, app.Uploads}

	app.Intake = &intake.Engine{
		Jobs:            app.Jobs,
		Forms:           app.Forms,
		Apps:            app.Applications,
		Stages:          app.Stages,
		Uploads:         app.Uploads,
		Inferrer:        intake.DefaultInferrer(),
		Scorer:          intake.NewScorer(cfg.EligibilityThreshold),
		AutoRejectBelow: cfg.AutoRejectBelow,
	}
	app.Auth = auth.NewService(app.KV)
	app.Dashboard = &dashboard.Service{Jobs: app.Jobs, Apps: app.Applications, Stages: app.Stages}
	app.Seed = seed.Targets{
		Jobs:         jobRepo.Collection(),
		Applications: appRepo.Collection(),
		Forms:        formRepo.Collection(),
		Stages:       app.Stages.Collection(),
	}
}

// SeedDemo writes demo content and the demo recruiter into absent keys.
func (a *App) SeedDemo(ctx context.Context) error {
	if _, err := seed.Apply(ctx, a.Seed, seed.Demo(time.Now())); err != nil {
		return err
	}
	if _, err := a.Auth.SeedDemo(ctx); err != nil {
		return fmt.Errorf("seed demo recruiter: %w", err)
	}
	return nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
