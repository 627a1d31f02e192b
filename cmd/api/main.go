package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/go-sql-driver/mysql"

	"github.com/streamhive/videos-ms-go/internal/config"
	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/handler"
	"github.com/streamhive/videos-ms-go/internal/handler/api"
	"github.com/streamhive/videos-ms-go/internal/logger"
	cMiddleware "github.com/streamhive/videos-ms-go/internal/middleware"
	"github.com/streamhive/videos-ms-go/internal/port"
	"github.com/streamhive/videos-ms-go/internal/progress"
	"github.com/streamhive/videos-ms-go/internal/repository/mariadb"
	"github.com/streamhive/videos-ms-go/internal/storage"
	"github.com/streamhive/videos-ms-go/internal/task"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, cfg.Buckets())

	videoRepo := mariadb.NewVideoRepository(database.DB)

	policy := task.PolicyFromSettings(cfg)
	var dispatcher port.TaskDispatcher
	var inspector port.JobInspector
	var prog port.ProgressStore
	if cfg.RedisAddr != "" {
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, policy)
		inspector = task.NewInspector(cfg.RedisAddr, cfg.RedisPassword)
		prog = progress.NewStore(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis queue enabled")
	} else {
		dispatcher = task.NewNoopDispatcher()
		inspector = task.NewNoopInspector()
		prog = progress.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured — jobs will not be queued")
	}

	r.Post("/videos", api.CreateVideoHandler(videoRepo))

	r.With(cMiddleware.WithVideoID()).
		Post("/videos/{id}/process", api.EnqueueProcessHandler(videoRepo, dispatcher))

	r.With(cMiddleware.WithVideoID()).
		Get("/videos/{id}/processing_status", api.ProcessingStatusHandler(inspector, prog))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
