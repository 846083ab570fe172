package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/codereg/api/swagger"
	"github.com/noah-isme/codereg/internal/handler"
	internalmiddleware "github.com/noah-isme/codereg/internal/middleware"
	"github.com/noah-isme/codereg/internal/repository"
	"github.com/noah-isme/codereg/internal/service"
	"github.com/noah-isme/codereg/internal/web"
	"github.com/noah-isme/codereg/pkg/cache"
	"github.com/noah-isme/codereg/pkg/config"
	"github.com/noah-isme/codereg/pkg/export"
	"github.com/noah-isme/codereg/pkg/jobs"
	"github.com/noah-isme/codereg/pkg/logger"
	corsmiddleware "github.com/noah-isme/codereg/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/codereg/pkg/middleware/requestid"
	"github.com/noah-isme/codereg/pkg/middleware/session"
)

const shutdownTimeout = 5 * time.Second

type workspaceStore interface {
	service.StateRepository
	Close() error
}

// @title CodeReg API
// @version 1.0.0
// @description Student registration, hackathon enrolment and random team generation.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, ready, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open workspace store", "store", cfg.Session.Store, "error", err)
	}
	defer store.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := service.NewValidator()
	ids := service.NewClockIDGenerator()
	workspace := service.NewWorkspaceService(
		store,
		service.NewStudentService(validate, ids, logr),
		service.NewHackathonService(validate, ids, logr),
		service.NewTeamService(cfg.Teams.Size, nil, logr),
		metrics,
		service.WorkspaceConfig{SessionTTL: cfg.Session.TTL, NotificationTTL: cfg.Notification.TTL},
		logr,
	)
	clears := jobs.NewQueue("notification-clear", workspace.HandleClear, jobs.QueueConfig{
		Workers:    cfg.Notification.Workers,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		Logger:     logr,
	})
	clears.Start(ctx)
	defer clears.Stop()
	workspace.SetClearScheduler(clears.EnqueueAfter)

	views := service.NewDashboardService()
	exports := service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), logr)

	tmpl, err := web.Templates()
	if err != nil {
		logr.Sugar().Fatalw("failed to parse templates", "error", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(session.Middleware(session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Env == config.EnvProduction,
	}))
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	handler.RegisterRoutes(r, handler.Handlers{
		Pages:     handler.NewPageHandler(workspace, views, cfg.APIPrefix, cfg.Notification.TTL, logr),
		Workspace: handler.NewWorkspaceHandler(workspace, views, exports),
		Metrics:   handler.NewMetricsHandler(metrics, ready),
	}, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env, "store", cfg.Session.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
}

// openStore picks the workspace backend. The memory store gets a sweeper that
// runs until ctx is cancelled.
func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (workspaceStore, handler.ReadinessCheck, error) {
	if cfg.Session.Store == config.StoreRedis {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		ready := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return repository.NewRedisStateRepository(client), ready, nil
	}

	store := repository.NewMemoryStateRepository()
	go sweep(ctx, store, cfg.Session.SweepInterval, logr)
	return store, nil, nil
}

func sweep(ctx context.Context, store *repository.MemoryStateRepository, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(); removed > 0 {
				logr.Debug("expired workspaces swept", zap.Int("removed", removed), zap.Int("remaining", store.Len()))
			}
		}
	}
}
