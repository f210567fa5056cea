package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telesalud-admin/config"
	deliveryHttp "telesalud-admin/internal/delivery/http"
	"telesalud-admin/internal/delivery/http/handler"
	"telesalud-admin/internal/delivery/http/middleware"
	"telesalud-admin/internal/domain/entity"
	domainRepo "telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/domain/schema"
	"telesalud-admin/internal/infrastructure/cache"
	"telesalud-admin/internal/infrastructure/database"
	"telesalud-admin/internal/infrastructure/memory"
	"telesalud-admin/internal/infrastructure/reniec"
	"telesalud-admin/internal/infrastructure/supabase"
	"telesalud-admin/internal/repository"
	"telesalud-admin/internal/service"
	"telesalud-admin/internal/usecase"
	"telesalud-admin/pkg/jwt"
	"telesalud-admin/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// Infrastructure is the set of outbound adapters the HTTP layer is built on.
// Which implementation backs each one depends on the store driver and on
// whether Redis is configured.
type Infrastructure struct {
	Tables     domainRepo.TableClient
	Auth       domainRepo.AuthProvider
	Identity   domainRepo.IdentityLookup
	QueryCache domainRepo.QueryCache
	Sessions   domainRepo.SessionStore
	// Tokens verifies access tokens handed in by the browser. Nil when the
	// hosted backend's signing secret is not configured.
	Tokens *jwt.JWTService
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = NewLogger(cfg.App.LogLevel)
	app.Log.WithField("driver", cfg.Store.Driver).Info("Configuration loaded successfully")

	infra, err := app.connect(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHandler(cfg, app.Log, infra),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// NewLogger configures a logrus logger; unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// connect opens the store and cache selected by configuration.
func (app *App) connect(ctx context.Context) (*Infrastructure, error) {
	cfg := app.Config
	infra := &Infrastructure{
		Identity: reniec.NewClient(cfg.Reniec, cfg.App.HTTPClientTimeout, app.Log),
	}

	switch cfg.Store.Driver {
	case config.StoreDriverSupabase:
		client := supabase.NewClient(cfg.Supabase, cfg.App.HTTPClientTimeout, app.Log)
		infra.Tables = supabase.NewRestClient(client)
		infra.Auth = supabase.NewAuthClient(client)
		if cfg.Supabase.JWTSecret != "" {
			infra.Tokens = jwt.NewJWTService(config.JWTConfig{Secret: cfg.Supabase.JWTSecret})
		}
		app.Log.WithField("url", cfg.Supabase.URL).Info("Using hosted store")

	case config.StoreDriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.IsDevelopment())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		app.Log.Info("Database connected successfully")

		infra.Tables = database.NewTableClient(db)
		infra.Tokens = jwt.NewJWTService(cfg.JWT)
		infra.Auth = service.NewLocalAuthService(app.Log, repository.NewUserRepository(db), infra.Tokens)

	case config.StoreDriverMemory:
		tables, err := NewMemoryTables()
		if err != nil {
			return nil, err
		}
		infra.Tables = tables
		infra.Tokens = jwt.NewJWTService(cfg.JWT)
		infra.Auth = service.NewLocalAuthService(app.Log, memory.NewUserRepository(), infra.Tokens)
		app.Log.Warn("Using in-memory store, data is lost on restart")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.RedisClient = redisClient
		infra.QueryCache = cache.NewRedisQueryCache(redisClient, cfg.Cache.QueryTTL, app.Log)
		infra.Sessions = cache.NewRedisSessionStore(redisClient, cfg.Session.TTL)
	} else {
		app.Log.Info("REDIS_HOST not set, keeping sessions and query cache in memory")
		infra.QueryCache = cache.NewMemoryQueryCache(cfg.Cache.QueryTTL)
		infra.Sessions = cache.NewMemorySessionStore(cfg.Session.TTL)
	}

	return infra, nil
}

// NewMemoryTables returns an in-process store holding the reference
// equipment types the migrations seed.
func NewMemoryTables() (*memory.TableClient, error) {
	tables := memory.NewTableClient()
	err := tables.Seed(schema.TableEquipmentType,
		entity.EquipmentType{ID: 1, Name: "Monitoreo"},
		entity.EquipmentType{ID: 2, Name: "Diagnostico"},
		entity.EquipmentType{ID: 3, Name: "Movilidad"},
		entity.EquipmentType{ID: 4, Name: "Terapia respiratoria"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to seed equipment types: %w", err)
	}
	return tables, nil
}

// NewHandler wires repositories, usecases, handlers and middleware on top
// of infra and returns the root HTTP handler.
func NewHandler(cfg *config.Config, log *logrus.Logger, infra *Infrastructure) http.Handler {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(infra.Tables)
	equipmentRepo := repository.NewEquipmentRepository(infra.Tables)
	equipmentTypeRepo := repository.NewEquipmentTypeRepository(infra.Tables)
	assignmentRepo := repository.NewAssignmentRepository(infra.Tables)

	// Initialize per-session stores
	userStore := service.NewUserStore(infra.Sessions)
	patientEditStore := service.NewPatientEditStore(infra.Sessions)
	equipmentEditStore := service.NewEquipmentEditStore(infra.Sessions)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, infra.Auth, userStore, infra.Tokens, cfg.App.CORSAllowedOrigin+usecase.RedirectAdmin)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, infra.Identity, infra.QueryCache)
	equipmentUsecase := usecase.NewEquipmentUsecase(log, equipmentRepo, infra.QueryCache)
	equipmentTypeUsecase := usecase.NewEquipmentTypeUsecase(log, equipmentTypeRepo, infra.QueryCache)
	assignmentUsecase := usecase.NewAssignmentUsecase(log, assignmentRepo, infra.QueryCache)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(log, patientUsecase, patientEditStore, customValidator)
	equipmentHandler := handler.NewEquipmentHandler(log, equipmentUsecase, equipmentTypeUsecase, equipmentEditStore, customValidator)
	assignmentHandler := handler.NewAssignmentHandler(assignmentUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authUsecase)
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL, !cfg.IsDevelopment())
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		equipmentHandler,
		assignmentHandler,
		authMiddleware,
		sessionMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)
	return router.Setup()
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
