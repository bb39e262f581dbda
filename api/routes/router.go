package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielcastillo/dealerdesk-backend/api/controllers"
	"github.com/danielcastillo/dealerdesk-backend/api/middleware"
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
	"github.com/danielcastillo/dealerdesk-backend/pkg/redis"
)

// Deps carries everything the route tree needs. Nil optional members degrade
// to 500s on the routes that need them rather than panics.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics
	PromReg *prometheus.Registry

	UserRepo      *users.Repository
	Sales         sales.Service
	Spiffs        spiffs.Service
	TradeIns      tradeins.Service
	Shares        shares.Service
	Notifications notifications.Service
	Dashboard     dashboard.Service
	Analytics     analytics.Service
	Approvals     approvals.Service
	Payroll       payroll.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	// Keep a nil *redis.Client from turning into a non-nil interface value.
	var revoked middleware.RevocationChecker
	var revoker controllers.TokenRevoker
	var redisPinger redis.Pinger
	if d.Redis != nil {
		revoked = d.Redis
		revoker = d.Redis
		redisPinger = d.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(middleware.CORS(cfg.CORS))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, redisPinger))
	})

	if d.PromReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.PromReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, revoked, logg))

		r.Get("/me", controllers.Me())
		r.Post("/auth/logout", controllers.AuthLogout(cfg.JWT, revoker, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.CreateSale(d.Sales, logg))
			r.Get("/", controllers.ListSalesMonth(d.Sales, logg))
			r.Get("/page", controllers.ListSalesPage(d.Sales, logg))
			r.Get("/{id}", controllers.GetSale(d.Sales, logg))
			r.Put("/{id}", controllers.UpdateSale(d.Sales, logg))
			r.Delete("/{id}", controllers.DeleteSale(d.Sales, logg))
		})

		r.Route("/spiffs", func(r chi.Router) {
			r.Post("/", controllers.CreateSpiff(d.Spiffs, logg))
			r.Get("/", controllers.ListSpiffsMonth(d.Spiffs, logg))
			r.Put("/{id}", controllers.UpdateSpiff(d.Spiffs, logg))
			r.Delete("/{id}", controllers.DeleteSpiff(d.Spiffs, logg))
		})

		r.Route("/trade-ins", func(r chi.Router) {
			r.Post("/", controllers.CreateTradeIn(d.TradeIns, logg))
			r.Get("/", controllers.ListTradeInsMonth(d.TradeIns, logg))
			r.Put("/{id}", controllers.UpdateTradeIn(d.TradeIns, logg))
			r.Delete("/{id}", controllers.DeleteTradeIn(d.TradeIns, logg))
		})

		r.Route("/shares", func(r chi.Router) {
			r.Get("/pending", controllers.ListPendingShares(d.Shares, logg))
			r.Post("/{id}/respond", controllers.RespondToShare(d.Shares, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(d.Notifications, logg))
			r.Post("/{id}/read", controllers.MarkNotificationRead(d.Notifications, logg))
		})

		r.Get("/dashboard", controllers.DashboardStats(d.Dashboard, logg))

		r.Route("/approvals", func(r chi.Router) {
			// Entry owners can check where their payout stands; decisions
			// and the backlog stay with managers.
			r.Get("/{kind}/{id}", controllers.ApprovalStatus(d.Approvals, logg))
			r.With(middleware.RequireManager(logg)).Get("/pending", controllers.PendingApprovals(d.Approvals, logg))
			r.With(middleware.RequireManager(logg)).Post("/{kind}/{id}", controllers.DecideApproval(d.Approvals, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager(logg))

			r.Get("/users", controllers.ListUsers(d.UserRepo, logg))

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/sales", controllers.SalesAnalytics(d.Analytics, logg))
				r.Get("/team", controllers.TeamPerformance(d.Analytics, logg))
				r.Get("/users/{id}", controllers.IndividualReport(d.Analytics, logg))
			})

			r.Get("/payroll", controllers.PayrollReport(d.Payroll, logg))
		})
	})

	return r
}
