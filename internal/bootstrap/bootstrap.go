package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/campusnet/internal/app/controllers"
	appMigrations "github.com/yigit/campusnet/internal/app/migrations"
	appRepos "github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/app/repositories/memory"
	appRoutes "github.com/yigit/campusnet/internal/app/routes"
	appServices "github.com/yigit/campusnet/internal/app/services"
	"github.com/yigit/campusnet/internal/config"
	"github.com/yigit/campusnet/internal/db"
	appMiddleware "github.com/yigit/campusnet/internal/middleware"
	pkgAuth "github.com/yigit/campusnet/internal/pkg/auth"
	"github.com/yigit/campusnet/internal/pkg/filestorage"
	"github.com/yigit/campusnet/internal/pkg/logger"
	"github.com/yigit/campusnet/internal/pkg/metrics"
	"github.com/yigit/campusnet/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	DB             *db.PostgresDB // nil with the in-memory driver
	Redis          *redis.Client  // nil without redis.url
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    filestorage.FileStorage
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// Close releases the connections held by deps
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and applies migrations.
// The returned PostgresDB is nil for the in-memory driver.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store; data is lost on restart")
		return memory.NewRepositories(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewRepositories(database), database, nil
}

// setupRevocations picks the Redis-backed revocation list when redis.url is set
func setupRevocations(ctx context.Context, cfg *config.Config, m *metrics.Metrics, lgr zerolog.Logger) (pkgAuth.RevocationList, *redis.Client, error) {
	if cfg.Redis.URL == "" {
		lgr.Info().Msg("Redis not configured; token revocations are kept in process")
		return pkgAuth.NewMemoryRevocationList(), nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	lgr.Info().Str("addr", opts.Addr).Msg("Token revocation list backed by redis")
	return pkgAuth.NewRedisRevocationList(client, m), client, nil
}

// setupFileStorage builds the configured blob storage backend
func setupFileStorage(cfg *config.Config) (filestorage.FileStorage, error) {
	if cfg.Storage.Driver == config.StorageCloudinary {
		return filestorage.NewCloudinaryStorage(cfg.Storage.CloudinaryURL, cfg.Storage.Folder)
	}
	baseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	return filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, DB: database, Logger: lgr}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.New(deps.Registry)

	var err error
	deps.FileStorage, err = setupFileStorage(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	revocations, redisClient, err := setupRevocations(ctx, cfg, deps.Metrics, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize token revocation list")
		return nil, err
	}
	deps.Redis = redisClient

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:       repos,
		Storage:     deps.FileStorage,
		JWT:         deps.JWTService,
		Revocations: revocations,
		Metrics:     deps.Metrics,
		Logger:      logger.Component("services"),
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, revocations)

	var pinger appControllers.Pinger
	if database != nil {
		pinger = database
	}
	deps.Controllers = appRoutes.Controllers{
		Home:         appControllers.NewHomeController(pinger),
		Auth:         appControllers.NewAuthController(deps.Services.Auth, logger.Component("auth")),
		Users:        appControllers.NewUserController(deps.Services.Users, logger.Component("users")),
		Educations:   appControllers.NewEducationController(deps.Services.Educations),
		Certificates: appControllers.NewCertificateController(deps.Services.Certificates),
		Achievements: appControllers.NewAchievementController(deps.Services.Achievements),
		Resumes:      appControllers.NewResumeController(deps.Services.Resumes),
		Posts:        appControllers.NewPostController(deps.Services.Posts, deps.Services.Comments),
		Connections:  appControllers.NewConnectionController(deps.Services.Connections),
	}

	if cfg.Seed.DemoData {
		if err := seed.CreateDemoData(ctx, deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidation()

	router := gin.New()
	router.MaxMultipartMemory = filestorage.MaxUploadSize
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(), appMiddleware.Metrics(deps.Metrics))

	appRoutes.SetupSwagger(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	if cfg.Storage.Driver == config.StorageLocal {
		router.Static("/uploads", cfg.Server.StoragePath)
		lgr.Info().Str("path", cfg.Server.StoragePath).Msg("Static file serving configured for uploads directory")
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
