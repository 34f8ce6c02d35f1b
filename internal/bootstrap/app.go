// Package bootstrap wires shared dependencies for the entrypoints.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"codereview-backend/internal/llm"
	"codereview-backend/internal/llm/ollama"
	"codereview-backend/internal/reviews"
	"codereview-backend/internal/shared/auth"
	"codereview-backend/internal/shared/config"
	"codereview-backend/internal/shared/server"
	"codereview-backend/internal/shared/server/middleware"
	"codereview-backend/internal/shared/storage/db"
	"codereview-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ReviewsRepo reviews.Repo
	UsersRepo   users.Repo

	ReviewsService  *reviews.Service
	ProgressService *users.Service
	LLM             llm.Client
	Verifier        middleware.TokenVerifier

	ReviewHandler *reviews.Handler
	UserHandler   *users.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		ReviewHandler: app.ReviewHandler,
		UserHandler:   app.UserHandler,
		LLM:           app.LLM,
		Verifier:      app.Verifier,
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

func buildServices(app *App) error {
	if app.DB != nil {
		app.ReviewsRepo = &reviews.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ReviewsRepo = reviews.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	ollamaClient, err := ollama.NewClient(app.Config.OllamaHost, app.Config.LLMModel, llm.Options{
		Temperature: app.Config.LLMTemperature,
		MaxTokens:   app.Config.LLMMaxTokens,
	})
	if err != nil {
		log.Printf("bootstrap: ollama client unavailable, analyses will use the fallback result: %v", err)
	} else {
		llmClient = ollamaClient
	}
	app.LLM = llmClient

	if app.Config.AuthSecret != "" {
		app.Verifier = auth.SharedSecret{Secret: app.Config.AuthSecret}
	}

	app.ProgressService = &users.Service{Repo: app.UsersRepo}
	app.ReviewsService = &reviews.Service{
		Repo:     app.ReviewsRepo,
		Progress: app.ProgressService,
		LLM:      app.LLM,
		Model:    app.Config.LLMModel,
	}

	app.ReviewHandler = reviews.NewHandler(app.ReviewsService, app.ProgressService)
	app.UserHandler = users.NewHandler(app.UsersRepo)
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
