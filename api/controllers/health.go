package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielcastillo/dealerdesk-backend/api/responses"
	"github.com/danielcastillo/dealerdesk-backend/pkg/config"
	"github.com/danielcastillo/dealerdesk-backend/pkg/db"
	pkgerrors "github.com/danielcastillo/dealerdesk-backend/pkg/errors"
	"github.com/danielcastillo/dealerdesk-backend/pkg/logger"
	"github.com/danielcastillo/dealerdesk-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DealerDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DealerDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if dbP == nil {
			checks["db"] = "unavailable"
			healthy = false
		} else if err := dbP.Ping(ctx); err != nil {
			logg.Error(logg.WithField(ctx, "component", "db"), "readiness check failed", err)
			checks["db"] = "down"
			healthy = false
		}

		if redisP == nil {
			checks["redis"] = "unavailable"
			healthy = false
		} else if err := redisP.Ping(ctx); err != nil {
			logg.Error(logg.WithField(ctx, "component", "redis"), "readiness check failed", err)
			checks["redis"] = "down"
			healthy = false
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
