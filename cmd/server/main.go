package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"salon_backend/internal/appstate"
	"salon_backend/internal/config"
	"salon_backend/internal/database"
	"salon_backend/internal/middleware"
	"salon_backend/internal/repositories"
	"salon_backend/internal/router"
	"salon_backend/internal/services"
	"salon_backend/internal/storage"
	"salon_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)
	if cfg.JWTSecretGenerated {
		utils.LogWarn(nil, "JWT_SECRET not set, using a random per-process secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, db, err := openBackend(ctx, cfg)
	if err != nil {
		utils.LogError(err, "Failed to open storage")
		log.Fatalf("storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}
	utils.LogInfo("Storage initialized", map[string]interface{}{"driver": cfg.StorageDriver})

	store := storage.New(backend)
	records := repositories.NewRecordStore(store)
	records.Initialize(ctx)

	session := services.NewSessionManager(ctx, repositories.NewAuthRepository(records.Users), store, services.SessionConfig{
		AdminCode:  cfg.AdminCode,
		Latency:    cfg.AuthLatency,
		BcryptCost: cfg.BcryptCost,
	})
	state := appstate.New(services.NewFacade(records, cfg.APILatency), session)
	go func() {
		// failure is recorded on state and can be retried via POST /state/reload
		_ = state.Load(ctx)
	}()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, router.Dependencies{
		State:       state,
		Session:     session,
		Issuer:      utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration),
		Assistant:   services.NewGeminiAssistant(nil, cfg.Gemini),
		AuthLimiter: middleware.NewRateLimiter(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
		utils.LogInfo("Frontend should be configured to make API calls", map[string]interface{}{"url": "http://localhost:" + cfg.Port + "/api/v1"})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}
}

// openBackend builds the configured storage backend. The returned *sql.DB is
// non-nil only for the postgres driver.
func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, *sql.DB, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return storage.NewMemoryBackend(), nil, nil
	case config.DriverFile:
		b, err := storage.NewFileBackend(cfg.StorageDir)
		return b, nil, err
	case config.DriverPostgres:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = cfg.DB.DSN()
		}
		db, err := database.Open(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		b := storage.NewPostgresBackend(db, storage.DefaultTable)
		if err := b.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return b, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
