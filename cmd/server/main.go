package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hostel_complaints/internal/config"
	"hostel_complaints/internal/handler"
	"hostel_complaints/internal/metrics"
	"hostel_complaints/internal/middleware"
	"hostel_complaints/internal/repository"
	"hostel_complaints/internal/service"
	"hostel_complaints/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if envErr != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		os.Exit(1)
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	// --- Initialize Repositories ---
	store := repository.NewStore(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(store, jwtUtil, logger)
	identityService := service.NewIdentityService(store, jwtUtil, logger, m)
	complaintService := service.NewComplaintService(store.Complaints)
	userService := service.NewUserService(store.Users, store.Blocks)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, logger)
	complaintHandler := handler.NewComplaintHandler(complaintService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	healthHandler := handler.NewHealthHandler(dbPool, logger)

	// --- Setup Gin Router ---
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	// --- Initialize Middlewares ---
	authMW := middleware.AuthMiddleware(identityService, logger)
	studentMW := middleware.StudentMiddleware()
	wardenMW := middleware.WardenMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup)
	complaintHandler.RegisterComplaintRoutes(apiGroup, authMW, studentMW, wardenMW)
	userHandler.RegisterUserRoutes(apiGroup, authMW)

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}
