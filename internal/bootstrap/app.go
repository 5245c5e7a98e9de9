package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"libramind-backend/internal/books"
	"libramind-backend/internal/chat"
	"libramind-backend/internal/documents"
	"libramind-backend/internal/llm"
	"libramind-backend/internal/llm/gemini"
	"libramind-backend/internal/llm/openai"
	"libramind-backend/internal/shared/config"
	"libramind-backend/internal/shared/server"
	"libramind-backend/internal/shared/storage/db"
	"libramind-backend/internal/shared/storage/object"
	localstore "libramind-backend/internal/shared/storage/object/local"
	miniostore "libramind-backend/internal/shared/storage/object/minio"
	s3store "libramind-backend/internal/shared/storage/object/s3"
	"libramind-backend/internal/summarize"
)

// App holds the resolved capabilities and wired services. Optional
// capabilities (object store, LLM) are decided here once, at startup,
// instead of being re-checked per request.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	DocumentsRepo    documents.Repo
	ChatRepo         chat.Repo
	DocumentsService *documents.Service
	ChatService      *chat.Service
	BooksClient      *books.Client

	DocumentsHandler *documents.Handler
	ChatHandler      *chat.Handler
	BooksHandler     *books.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		ChatHandler:     app.ChatHandler,
		BookHandler:     app.BooksHandler,
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
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

// buildStore resolves the optional binary-persistence capability. A nil store
// means uploads keep only extracted text.
func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	case "minio":
		if strings.TrimSpace(cfg.MinioEndpoint) == "" || strings.TrimSpace(cfg.MinioBucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=minio requires STORAGE_ENDPOINT and STORAGE_BUCKET")
		}
		return miniostore.New(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}

// buildLLM resolves the generative-model capability. Without a key the
// placeholder client makes summarization fall back and chat return 502.
func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			log.Printf("bootstrap: GEMINI_API_KEY empty; assistant disabled")
			return llm.PlaceholderClient{}, nil
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			log.Printf("bootstrap: OPENAI_API_KEY empty; assistant disabled")
			return llm.PlaceholderClient{}, nil
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func buildServices(app *App) {
	var docRepo documents.Repo
	var chatRepo chat.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		chatRepo = &chat.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		chatRepo = chat.NewMemoryRepo()
	}

	summarizer := summarize.New(app.LLM)
	summarizer.InputMaxChars = app.Config.SummaryInputMaxChars
	summarizer.FallbackMaxChars = app.Config.FallbackSummaryMaxChars
	summarizer.FallbackSentences = app.Config.FallbackSummarySentences

	docSvc := &documents.Service{
		Repo:         docRepo,
		Store:        app.Store,
		Summarizer:   summarizer,
		PreviewChars: app.Config.ContentPreviewChars,
	}

	chatSvc := &chat.Service{
		Repo: chatRepo,
		LLM:  app.LLM,
		Docs: docRepo,
	}

	booksClient := books.NewClient(app.Config.GoogleBooksAPIKey)

	app.DocumentsRepo = docRepo
	app.ChatRepo = chatRepo
	app.DocumentsService = docSvc
	app.ChatService = chatSvc
	app.BooksClient = booksClient
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.ChatHandler = chat.NewHandler(chatSvc)
	app.BooksHandler = books.NewHandler(booksClient)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
