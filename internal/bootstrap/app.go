package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "property-backend/internal/auth"
	"property-backend/internal/documents"
	"property-backend/internal/ocr"
	"property-backend/internal/properties"
	"property-backend/internal/shared/config"
	"property-backend/internal/shared/server"
	"property-backend/internal/shared/storage/db"
	"property-backend/internal/shared/storage/object"
	localstore "property-backend/internal/shared/storage/object/local"
	s3store "property-backend/internal/shared/storage/object/s3"
	"property-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	OCR               ocr.Client
	PropertiesRepo    properties.Repo
	UsersRepo         users.Repo
	PropertiesService *properties.Service
	DocumentsService  *documents.Service
	UsersService      *users.Service
	PropertiesHandler *properties.Handler
	DocumentsHandler  *documents.Handler
	UsersHandler      *users.Handler
	OCRStatusHandler  *ocr.StatusHandler
	GoogleAuth        *googleauth.GoogleService
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

	ocrClient, err := buildOCR(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		OCR:    ocrClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		PropertiesHandler: app.PropertiesHandler,
		DocumentsHandler:  app.DocumentsHandler,
		UsersHandler:      app.UsersHandler,
		OCRStatusHandler:  app.OCRStatusHandler,
		GoogleAuth:        app.GoogleAuth,
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

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildOCR(ctx context.Context, cfg config.Config) (ocr.Client, error) {
	switch cfg.OCRProvider {
	case "textract":
		return ocr.NewTextract(ctx, cfg.AWSRegion)
	case "pdftext":
		return ocr.PDFText{}, nil
	default:
		return ocr.Disabled{}, nil
	}
}

func buildServices(app *App) {
	var propRepo properties.Repo
	var userRepo users.Repo
	if app.DB != nil {
		propRepo = &properties.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		propRepo = properties.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	propSvc := &properties.Service{Repo: propRepo}
	docSvc := &documents.Service{
		Props:      propRepo,
		Store:      app.Store,
		OCR:        app.OCR,
		OCRTimeout: app.Config.OCRTimeout,
	}
	userSvc := users.NewService(userRepo)

	app.PropertiesRepo = propRepo
	app.UsersRepo = userRepo
	app.PropertiesService = propSvc
	app.DocumentsService = docSvc
	app.UsersService = userSvc
	app.PropertiesHandler = properties.NewHandler(propSvc)
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.OCRStatusHandler = ocr.NewStatusHandler(app.Config.OCRProvider, app.Config.AWSRegion)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
