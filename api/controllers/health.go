package controllers

import (
	"net/http"

	"github.com/gameden/gameden-backend/api/responses"
	"github.com/gameden/gameden-backend/pkg/config"
	"github.com/gameden/gameden-backend/pkg/db"
	"github.com/gameden/gameden-backend/pkg/logger"
	pkgredis "github.com/gameden/gameden-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GameDen-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every backing dependency answers a
// ping. Failures are reported per dependency so operators can tell which one
// is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *pkgredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GameDen-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP == nil {
			checks["database"] = "not configured"
			healthy = false
		} else if err := dbP.Ping(r.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
			if logg != nil {
				logg.Error(r.Context(), "health.database", err)
			}
		} else {
			checks["database"] = "ok"
		}

		if redisClient == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := redisClient.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
			if logg != nil {
				logg.Error(r.Context(), "health.redis", err)
			}
		} else {
			checks["redis"] = "ok"
		}

		status := "ready"
		httpStatus := http.StatusOK
		if !healthy {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
