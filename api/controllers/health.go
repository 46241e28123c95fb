package controllers

import (
	"net/http"

	"github.com/orlecare/storefront-backend/api/responses"
	"github.com/orlecare/storefront-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Orle-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The storefront has no backing stores to
// probe; readiness means the catalog loaded and the router is serving.
func HealthReady(cfg *config.Config, catalogSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Orle-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{
			"status":   "ready",
			"products": catalogSize,
		})
	}
}
