package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/danielcastillo/dealerdesk-backend/api/routes"
	"github.com/danielcastillo/dealerdesk-backend/internal/analytics"
	"github.com/danielcastillo/dealerdesk-backend/internal/approvals"
	"github.com/danielcastillo/dealerdesk-backend/internal/dashboard"
	"github.com/danielcastillo/dealerdesk-backend/internal/notifications"
	"github.com/danielcastillo/dealerdesk-backend/internal/payroll"
	"github.com/danielcastillo/dealerdesk-backend/internal/sales"
	"github.com/danielcastillo/dealerdesk-backend/internal/shares"
	"github.com/danielcastillo/dealerdesk-backend/internal/spiffs"
	"github.com/danielcastillo/dealerdesk-backend/internal/tradeins"
	"github.com/danielcastillo/dealerdesk-backend/internal/users"
	"github.com/danielcastillo/dealerdesk-backend/pkg/config"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
	"github.com/danielcastillo/dealerdesk-backend/pkg/metrics"
	"github.com/danielcastillo/dealerdesk-backend/pkg/migrate"
	"github.com/danielcastillo/dealerdesk-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	saleRepo := sales.NewRepository(gormDB)
	spiffRepo := spiffs.NewRepository(gormDB)
	tradeInRepo := tradeins.NewRepository(gormDB)
	approvalRepo := approvals.NewRepository(gormDB)

	summaryCache := analytics.NewCache(redisClient, cfg.Cache.AnalyticsTTL)

	notificationsSvc, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		logg.Error(ctx, "failed to create notifications service", err)
		os.Exit(1)
	}

	salesSvc, err := sales.NewService(sales.ServiceParams{
		SaleRepo:      saleRepo,
		UserRepo:      userRepo,
		Notifications: notificationsSvc,
		Cache:         summaryCache,
	})
	if err != nil {
		logg.Error(ctx, "failed to create sales service", err)
		os.Exit(1)
	}

	spiffsSvc, err := spiffs.NewService(spiffRepo, summaryCache)
	if err != nil {
		logg.Error(ctx, "failed to create spiffs service", err)
		os.Exit(1)
	}

	tradeInsSvc, err := tradeins.NewService(tradeInRepo, summaryCache)
	if err != nil {
		logg.Error(ctx, "failed to create trade-ins service", err)
		os.Exit(1)
	}

	sharesSvc, err := shares.NewService(shares.ServiceParams{
		SaleRepo:      saleRepo,
		Notifications: notificationsSvc,
		Cache:         summaryCache,
	})
	if err != nil {
		logg.Error(ctx, "failed to create shares service", err)
		os.Exit(1)
	}

	dashboardSvc, err := dashboard.NewService(dashboard.ServiceParams{
		SaleRepo:    saleRepo,
		SpiffRepo:   spiffRepo,
		TradeInRepo: tradeInRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}

	analyticsSvc, err := analytics.NewService(analytics.ServiceParams{
		SaleRepo:    saleRepo,
		SpiffRepo:   spiffRepo,
		TradeInRepo: tradeInRepo,
		UserRepo:    userRepo,
		Cache:       summaryCache,
	})
	if err != nil {
		logg.Error(ctx, "failed to create analytics service", err)
		os.Exit(1)
	}

	approvalsSvc, err := approvals.NewService(approvals.ServiceParams{
		ApprovalRepo: approvalRepo,
		SaleRepo:     saleRepo,
		SpiffRepo:    spiffRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create approvals service", err)
		os.Exit(1)
	}

	payrollSvc, err := payroll.NewService(payroll.ServiceParams{
		ApprovalRepo: approvalRepo,
		UserRepo:     userRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create payroll service", err)
		os.Exit(1)
	}

	promReg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promReg)

	handler := routes.NewRouter(routes.Deps{
		Config:  cfg,
		Logger:  logg,
		DB:      dbClient,
		Redis:   redisClient,
		Metrics: httpMetrics,
		PromReg: promReg,

		UserRepo:      userRepo,
		Sales:         salesSvc,
		Spiffs:        spiffsSvc,
		TradeIns:      tradeInsSvc,
		Shares:        sharesSvc,
		Notifications: notificationsSvc,
		Dashboard:     dashboardSvc,
		Analytics:     analyticsSvc,
		Approvals:     approvalsSvc,
		Payroll:       payrollSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(runCtx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		err = multierr.Append(err, redisClient.Close())
		err = multierr.Append(err, dbClient.Close())
		if err != nil {
			logg.Error(runCtx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(runCtx, "shutdown complete")
	}
}
