package rest

import (
	"log/slog"
	"net/http"

	"github.com/contractwatch/riskengine/pkg/auth"
)

// publicPaths are served without a token even when auth is enabled.
var publicPaths = []string{"/healthz", "/readyz", "/metrics"}

// NewRouter assembles the HTTP surface: health checks, the risk API and,
// when metrics is non-nil, the Prometheus scrape endpoint. A nil jwtService
// leaves every route unauthenticated and a nil limiter disables rate limiting.
func NewRouter(api *Handler, health *HealthHandler, metrics http.Handler, jwtService *auth.JWTService, limiter *ClientRateLimiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	api.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	var h http.Handler = mux
	if jwtService != nil {
		h = auth.HTTPMiddleware(jwtService, publicPaths)(h)
	}
	if limiter != nil {
		h = RateLimit(limiter, publicPaths)(h)
	}
	return RequestLogger(logger)(h)
}
