// Package main runs the giveaway registration HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hotend/giveaway-backend/config"
	"github.com/hotend/giveaway-backend/internal/admin"
	"github.com/hotend/giveaway-backend/internal/emaillogs"
	"github.com/hotend/giveaway-backend/internal/mailer"
	"github.com/hotend/giveaway-backend/internal/middleware"
	"github.com/hotend/giveaway-backend/internal/registrations"
	"github.com/hotend/giveaway-backend/pkg/database"
	"github.com/hotend/giveaway-backend/pkg/queue"
	"github.com/hotend/giveaway-backend/pkg/redis"
	"github.com/hotend/giveaway-backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	emailLogRepo := emaillogs.NewRepository(pool)
	templates := mailer.NewTemplates(cfg.Contest)
	postmark := mailer.NewClient(cfg.Postmark)
	mailService := mailer.NewService(postmark, templates, emailLogRepo, logger)

	// With redis configured, registrations only enqueue the confirmation
	// email and cmd/worker delivers it; otherwise delivery is inline.
	var notifier registrations.Notifier = mailService
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		notifier = mailer.NewQueuedNotifier(queue.NewQueue(rdb.Client, logger), logger)
		logger.Info("email dispatch via queue")
	}

	registrationRepo := registrations.NewRepository(pool)
	registrationService := registrations.NewService(registrationRepo, notifier, logger)
	registrationHandler := registrations.NewHandler(registrationService, logger)
	adminHandler := admin.NewHandler(registrationRepo, emailLogRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	router.POST("/api/register", registrationHandler.Register)

	adminGate := middleware.AdminSecret(cfg.Admin.Secret)
	router.GET("/api/stats", adminGate, adminHandler.Stats)
	router.GET("/api/export", adminGate, adminHandler.Export)
	router.GET("/api/participants", adminGate, adminHandler.Participants)
	router.GET("/api/emails", adminGate, adminHandler.Emails)

	if dir := cfg.Server.StaticDir; dir != "" {
		router.Static("/static", dir)
		router.StaticFile("/", filepath.Join(dir, "index.html"))
		router.StaticFile("/wheel", filepath.Join(dir, "wheel.html"))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
