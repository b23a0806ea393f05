package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/hotelmind/backend/internal/apierrors"
	"github.com/hotelmind/backend/internal/auth"
	"github.com/hotelmind/backend/internal/config"
	"github.com/hotelmind/backend/internal/container"
	"github.com/hotelmind/backend/internal/correlation"
	"github.com/hotelmind/backend/internal/handler"
)

func main() {
	// Local development convenience; ignored when no .env exists.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	// Initialize dependency container
	ctr, err := container.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(correlation.Middleware(correlation.NewGenerator()))
	r.Use(middleware.Logger)
	r.Use(apierrors.ErrorHandler)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.hotelmind.io"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := ctr.DB().PingContext(ctx); err != nil {
			handler.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": "unavailable",
			})
			return
		}

		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Initialize auth
	jwtMgr, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	if err != nil {
		logger.Error("failed to initialize JWT manager", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(jwtMgr, ctr.UserRepository(), ctr.PropertyRepository())
	costHandler := handler.NewCostHandler(ctr.CostRepository())
	revenueHandler := handler.NewRevenueHandler(ctr.RevenueRepository())
	loader := handler.NewWindowLoader(
		ctr.PropertyRepository(), ctr.CostRepository(), ctr.RevenueRepository(),
		cfg.Analytics.HistoryMonths,
	)
	analysisHandler := handler.NewAnalysisHandler(loader, ctr.Thresholds(), cfg.Analytics)
	reportHandler := handler.NewReportHandler(analysisHandler, ctr.SnapshotRepository())
	exportHandler := handler.NewExportHandler(ctr.CostRepository(), ctr.RevenueRepository())
	settingsHandler := handler.NewSettingsHandler(ctr.PropertyRepository(), cfg.Crypto.EncryptionKey)

	// Auth middleware
	requireAuth := auth.Middleware(jwtMgr, ctr.UserRepository())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			// Auth
			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/api-keys", authHandler.CreateAPIKey)

			// Costs
			r.Get("/costs", costHandler.List)
			r.Get("/costs/summary", costHandler.Summary)
			r.Get("/costs/export", exportHandler.ExportCostsCSV)

			// Revenue
			r.Get("/revenue/periods", revenueHandler.ListPeriods)
			r.Get("/revenue/export", exportHandler.ExportRevenueCSV)

			// Data entry requires editor rights; viewers stay read-only.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleEditor))

				r.Post("/costs", costHandler.Create)
				r.Post("/costs/import", costHandler.Import)
				r.Delete("/costs/{id}", costHandler.Delete)

				r.Put("/revenue/periods", revenueHandler.UpsertPeriod)
				r.Post("/revenue/import", revenueHandler.Import)
				r.Post("/revenue/daily", revenueHandler.ImportDaily)
				r.Delete("/revenue/periods/{period}", revenueHandler.DeletePeriod)
			})

			// Analytics
			r.Get("/analysis/kpi", analysisHandler.KPIs)
			r.Get("/analysis/anomalies", analysisHandler.Anomalies)
			r.Post("/analysis/anomalies/detect", analysisHandler.DetectAnomalies)
			r.Get("/analysis/forecast", analysisHandler.Forecast)
			r.Post("/analysis/forecast", analysisHandler.GenerateForecast)
			r.Get("/analysis/context", analysisHandler.Context)
			r.Get("/analysis/recommendations", analysisHandler.Recommendations)
			r.Get("/analysis/alerts", analysisHandler.Alerts)
			r.Get("/analysis/insights", analysisHandler.Insights)

			// Reports
			r.Get("/reports/executive-summary", reportHandler.ExecutiveSummary)
			r.Get("/reports/history", reportHandler.History)

			// Property and settings
			r.Get("/property", settingsHandler.GetProperty)
			r.Put("/property/profile", settingsHandler.UpdateProfile)
			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
			r.Put("/settings/rate-shopper", settingsHandler.SetRateShopperCredential)
			r.Get("/settings/rate-shopper", settingsHandler.RateShopperCredentialStatus)
		})
	})

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctr.Start(ctx); err != nil {
		logger.Error("failed to start background jobs", "error", err)
	}

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := ctr.Stop(shutdownCtx); err != nil {
			logger.Error("container shutdown error", "error", err)
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	// Start server
	logger.Info("HotelMind API server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
