package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/analysis"
	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/feedback"
	"feedback-backend/internal/llm"
	openai "feedback-backend/internal/llm/openai"
	"feedback-backend/internal/shared/config"
	"feedback-backend/internal/shared/server"
	"feedback-backend/internal/shared/storage/db"
	"feedback-backend/internal/shared/storage/object"
	localstore "feedback-backend/internal/shared/storage/object/local"
	s3store "feedback-backend/internal/shared/storage/object/s3"
	"feedback-backend/internal/summaries"
	"feedback-backend/internal/transcription"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	CampaignsRepo campaigns.Repo
	FeedbackRepo  feedback.Repo
	AnalysisRepo  analysis.Repo
	SummariesRepo summaries.Repo

	FeedbackService *feedback.Service
	AnalysisService *analysis.Service
	SummaryService  *summaries.Service
	Transcriber     *transcription.Service

	CampaignHandler *campaigns.Handler
	FeedbackHandler *feedback.Handler
	AnalysisHandler *analysis.Handler
	SummaryHandler  *summaries.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
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
		CampaignHandler: app.CampaignHandler,
		FeedbackHandler: app.FeedbackHandler,
		AnalysisHandler: app.AnalysisHandler,
		SummaryHandler:  app.SummaryHandler,
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

func buildServices(app *App) error {
	if app.DB != nil {
		app.CampaignsRepo = &campaigns.PGRepo{DB: app.DB}
		app.FeedbackRepo = &feedback.PGRepo{DB: app.DB}
		app.AnalysisRepo = &analysis.PGRepo{DB: app.DB}
		app.SummariesRepo = &summaries.PGRepo{DB: app.DB}
	} else {
		app.CampaignsRepo = campaigns.NewMemoryRepo()
		app.FeedbackRepo = feedback.NewMemoryRepo()
		app.AnalysisRepo = analysis.NewMemoryRepo()
		app.SummariesRepo = summaries.NewMemoryRepo()
	}

	// The LLM credential is validated once here, not at call sites.
	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	extractor := &analysis.Extractor{
		LLM:     llmClient,
		Timeout: app.Config.AnalysisTimeout,
	}

	app.Transcriber = &transcription.Service{
		Store:     app.Store,
		PollEvery: app.Config.TranscribePollEvery,
		MaxPolls:  app.Config.TranscribeMaxPolls,
	}

	app.FeedbackService = &feedback.Service{
		Campaigns: app.CampaignsRepo,
		Repo:      app.FeedbackRepo,
		Store:     app.Store,
	}
	if app.Transcriber.Jobs != nil {
		app.FeedbackService.Transcriber = app.Transcriber
	}

	app.AnalysisService = &analysis.Service{
		Campaigns: app.CampaignsRepo,
		Feedback:  app.FeedbackRepo,
		Sampler:   analysis.NewSamplerWithSource(app.Config.SampleCap, rand.NewSource(time.Now().UnixNano())),
		Extractor: extractor,
		Repo:      app.AnalysisRepo,
	}
	app.SummaryService = &summaries.Service{
		Campaigns: app.CampaignsRepo,
		Feedback:  app.FeedbackRepo,
		Extractor: extractor,
		Sampler:   analysis.NewSamplerWithSource(app.Config.SummaryMaxRecords, rand.NewSource(time.Now().UnixNano())),
		Repo:      app.SummariesRepo,
	}

	app.CampaignHandler = campaigns.NewHandler(app.CampaignsRepo)
	app.FeedbackHandler = feedback.NewHandler(app.FeedbackService)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService)
	app.SummaryHandler = summaries.NewHandler(app.SummaryService)
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
