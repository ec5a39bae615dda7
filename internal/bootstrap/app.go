package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "counsel-backend/internal/auth"
	"counsel-backend/internal/llm"
	"counsel-backend/internal/llm/gemini"
	"counsel-backend/internal/report"
	"counsel-backend/internal/resumes"
	"counsel-backend/internal/sessions"
	"counsel-backend/internal/shared/config"
	"counsel-backend/internal/shared/server"
	"counsel-backend/internal/shared/storage/db"
	"counsel-backend/internal/shared/storage/object"
	localstore "counsel-backend/internal/shared/storage/object/local"
	s3store "counsel-backend/internal/shared/storage/object/s3"
	"counsel-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	SessionsRepo    sessions.Repo
	ResumesRepo     resumes.Repo
	UsersRepo       users.Repo
	ResumesService  *resumes.Service
	SessionsService *sessions.Service
	UsersService    *users.Service
	Generator       *report.Generator
	SessionsHandler *sessions.Handler
	ResumesHandler  *resumes.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		SessionsHandler: app.SessionsHandler,
		ResumesHandler:  app.ResumesHandler,
		UsersHandler:    app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var sessionRepo sessions.Repo
	var resumeRepo resumes.Repo
	var userRepo users.Repo

	if app.DB != nil {
		sessionRepo = &sessions.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		sessionRepo = sessions.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "gemini" {
		geminiClient, err := gemini.NewClient(os.Getenv("GEMINI_API_KEY"))
		if err != nil {
			if isDevLike(app.Config.Env) {
				log.Printf("bootstrap: gemini client not configured; report generation disabled: %v", err)
			} else {
				return err
			}
		} else {
			llmClient = geminiClient
		}
	}

	resumeSvc := &resumes.Service{Repo: resumeRepo, Store: app.Store}
	generator := report.NewGenerator(llmClient, app.Config.LLMModels)
	sessionSvc := &sessions.Service{
		Repo:      sessionRepo,
		Resumes:   resumeSvc,
		Generator: generator,
	}
	userSvc := users.NewService(userRepo)

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.SessionsRepo = sessionRepo
	app.ResumesRepo = resumeRepo
	app.UsersRepo = userRepo
	app.ResumesService = resumeSvc
	app.SessionsService = sessionSvc
	app.UsersService = userSvc
	app.Generator = generator
	app.SessionsHandler = sessions.NewHandler(sessionSvc)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
