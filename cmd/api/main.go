package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edumarket/edumarket-backend/internal/api"
	"github.com/edumarket/edumarket-backend/internal/auth"
	"github.com/edumarket/edumarket-backend/internal/config"
	"github.com/edumarket/edumarket-backend/internal/db"
	"github.com/edumarket/edumarket-backend/internal/logger"
	"github.com/edumarket/edumarket-backend/internal/metrics"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/money"
	"github.com/edumarket/edumarket-backend/internal/notify"
	"github.com/edumarket/edumarket-backend/internal/repository/postgres"
	"github.com/edumarket/edumarket-backend/internal/services"
	"github.com/edumarket/edumarket-backend/internal/storage"
	"github.com/edumarket/edumarket-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)
	uploader, err := storage.NewLocalUploader(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir", "err", err)
		os.Exit(1)
	}
	pricing := money.NewPricing(cfg.CommissionPercent, cfg.PaymentPercent, cfg.FixedFeeCents)

	userSvc := services.NewUserService(repos.Users, tm)
	balanceSvc := services.NewBalanceService(repos.Balances, cfg.ProfitPercent)
	noteSvc := services.NewNoteService(repos.Notes, repos.Purchases, repos.Reviews, uploader)
	purchaseSvc := services.NewPurchaseService(repos.Notes, repos.Purchases, repos.Sales, repos.AuditLogs, pricing)
	withdrawalSvc := services.NewWithdrawalService(repos.Withdrawals, repos.Balances, repos.Outbox, repos.AuditLogs)
	courseSvc := services.NewCourseService(repos.Courses)
	ratingSvc := services.NewRatingService(repos.Ratings, repos.Users)
	announcementSvc := services.NewAnnouncementService(repos.Announcements)
	notificationSvc := services.NewNotificationService(repos.Notifications)

	dispatcher := notify.NewDispatcher(repos.Outbox, notify.NewStoreNotifier(repos.Notifications), wp, time.Second)
	go dispatcher.Run(ctx)

	metrics.Init()
	r := api.NewRouter(api.Deps{
		Cfg:           cfg,
		Auth:          middleware.NewAuthMiddleware(tm),
		Users:         userSvc,
		Balances:      balanceSvc,
		Notes:         noteSvc,
		Purchases:     purchaseSvc,
		Withdrawals:   withdrawalSvc,
		Courses:       courseSvc,
		Ratings:       ratingSvc,
		Announcements: announcementSvc,
		Notifications: notificationSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
