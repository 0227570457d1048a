package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/unihelp-app/backend/internal/router"
	"github.com/unihelp-app/backend/pkg/config"
	"github.com/unihelp-app/backend/pkg/logger"
	"github.com/unihelp-app/backend/pkg/mail"
	"github.com/unihelp-app/backend/validators"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zap.L().Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresURL)
	if err != nil {
		zap.L().Fatal("initializing database failed", zap.Error(err))
	}
	defer config.CloseDB(db)

	// Redis is optional; without it the feed cache is disabled
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	// Mail is optional; without SMTP configuration verification mails are dropped
	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		zap.L().Warn("SMTP not configured, verification mails will be dropped")
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db, rdb, mailer, cfg); err != nil {
		zap.L().Fatal("setting up routes failed", zap.Error(err))
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
