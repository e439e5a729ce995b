package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/julija05/kidseducation-guard/internal/infrastructure/di"
	"github.com/julija05/kidseducation-guard/internal/interface/middleware"
	"github.com/julija05/kidseducation-guard/internal/interface/router"
	"github.com/julija05/kidseducation-guard/internal/interface/server"
	"github.com/julija05/kidseducation-guard/internal/interface/validator"
	"github.com/julija05/kidseducation-guard/pkg/config"
	"github.com/julija05/kidseducation-guard/pkg/logger"
)

func main() {
	// Logger setup
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Initialize UseCases, Handlers, and Middlewares
	container.InitGuardUseCases()
	handlers, err := di.NewHandlers(container)
	if err != nil {
		slog.Error("failed to initialize handlers", "error", err)
		os.Exit(1)
	}
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	serverConfig.TrustProxy = cfg.Server.TrustProxy
	srv := server.NewServer(serverConfig)
	e := srv.Echo()

	// Setup validator and error handler
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Metrics())
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	securityConfig.EnableHSTS = cfg.Security.EnableHSTS
	e.Use(middleware.SecurityHeadersWithConfig(securityConfig))
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig(cfg.Security.CORSOrigins)))
	e.Use(echomw.BodyLimit(serverConfig.BodyLimit))

	// Setup Router
	router.NewRouter(e, handlers, middlewares).Setup()

	// Start background workers
	workerMgr := di.NewWorkers(container)
	workerMgr.Start()

	// Start server
	slog.Info("starting server",
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"upstream", cfg.Upstream.ContentURL,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config().ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
