// Package container provides dependency injection.
package container

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hotelmind/backend/internal/analytics"
	"github.com/hotelmind/backend/internal/config"
	"github.com/hotelmind/backend/internal/jobs"
	"github.com/hotelmind/backend/internal/notification"
	"github.com/hotelmind/backend/internal/repository"
)

// Container holds all application dependencies.
type Container struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *sql.DB
	scheduler *jobs.Scheduler
	runner    *jobs.AnalysisRunner

	// Repositories
	costRepo     repository.CostRepository
	revenueRepo  repository.RevenueRepository
	propertyRepo repository.PropertyRepository
	snapshotRepo repository.SnapshotRepository
	userRepo     repository.UserRepository

	notifService *notification.Service
	thresholds   analytics.Thresholds
}

// New creates a new dependency container.
func New(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		cfg:        cfg,
		logger:     logger,
		thresholds: analytics.DefaultThresholds(),
	}

	// Initialize database
	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c.db = db
	logger.Info("database connected", "host", cfg.Database.Host, "database", cfg.Database.Name)

	// Initialize repositories
	c.costRepo = repository.NewPostgresCostRepository(db)
	c.revenueRepo = repository.NewPostgresRevenueRepository(db)
	c.propertyRepo = repository.NewPostgresPropertyRepository(db)
	c.userRepo = repository.NewPostgresUserRepository(db)

	// Initialize snapshot repository and ensure table exists
	snapshotRepo := repository.NewPostgresSnapshotRepository(db)
	if err := snapshotRepo.EnsureTable(ctx); err != nil {
		logger.Warn("failed to ensure snapshots table", "error", err)
	}
	c.snapshotRepo = snapshotRepo

	// Initialize notification service
	var webhookURLs []string
	if cfg.Notification.WebhookURLs != "" {
		webhookURLs = strings.Split(cfg.Notification.WebhookURLs, ",")
	}
	c.notifService = notification.NewService(notification.Config{
		SlackWebhookURL: cfg.Notification.SlackWebhookURL,
		EmailSMTPHost:   cfg.Notification.EmailSMTPHost,
		EmailSMTPPort:   cfg.Notification.EmailSMTPPort,
		EmailFrom:       cfg.Notification.EmailFrom,
		EmailPassword:   cfg.Notification.EmailPassword,
		WebhookURLs:     webhookURLs,
	}, logger)
	logger.Info("notification service initialized")

	// Initialize scheduler and the analysis runner behind it
	c.scheduler = jobs.NewScheduler(logger)
	c.runner = jobs.NewAnalysisRunner(
		c.propertyRepo,
		c.costRepo,
		c.revenueRepo,
		c.snapshotRepo,
		c.notifService,
		c.thresholds,
		cfg.Analytics,
		logger,
	)

	return c, nil
}

// Start registers and starts background jobs.
func (c *Container) Start(ctx context.Context) error {
	c.scheduler.Register("nightly-analysis", c.cfg.Jobs.NightlyAnalysisSchedule, c.runner.RunNightlyAnalysis)
	c.scheduler.Register("alert-check", c.cfg.Jobs.AlertCheckSchedule, c.runner.RunAlertCheck)
	c.scheduler.Register("snapshot-prune", c.cfg.Jobs.SnapshotPruneSchedule, c.runner.RunSnapshotPrune)

	return c.scheduler.Start()
}

// Stop gracefully stops all components.
func (c *Container) Stop(ctx context.Context) error {
	c.logger.Info("stopping container components")

	if c.scheduler != nil {
		c.scheduler.Stop()
	}
	if c.db != nil {
		c.db.Close()
	}
	return nil
}

// Accessors

func (c *Container) Config() *config.Config                            { return c.cfg }
func (c *Container) Logger() *slog.Logger                              { return c.logger }
func (c *Container) DB() *sql.DB                                       { return c.db }
func (c *Container) Thresholds() analytics.Thresholds                  { return c.thresholds }
func (c *Container) CostRepository() repository.CostRepository         { return c.costRepo }
func (c *Container) RevenueRepository() repository.RevenueRepository   { return c.revenueRepo }
func (c *Container) PropertyRepository() repository.PropertyRepository { return c.propertyRepo }
func (c *Container) SnapshotRepository() repository.SnapshotRepository { return c.snapshotRepo }
func (c *Container) UserRepository() repository.UserRepository         { return c.userRepo }
func (c *Container) NotificationService() *notification.Service        { return c.notifService }
func (c *Container) AnalysisRunner() *jobs.AnalysisRunner              { return c.runner }
