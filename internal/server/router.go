package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltaire-systems/govproxy/internal/handlers"
	"github.com/voltaire-systems/govproxy/pkg/middleware"
)

// RouterConfig holds dependencies needed to configure routes.
type RouterConfig struct {
	Bootstrap *handlers.BootstrapHandler
	Gemini    *handlers.GeminiHandler
	Treasury  *handlers.PassthroughHandler
	Committee *handlers.PassthroughHandler

	AllowedOrigins  []string
	PreflightStatus int
}

// NewRouter constructs the route table. The read-only dashboard routes
// are wrapped in permissive CORS that answers preflight directly; the
// Gemini relay is not, so its own method gate sees every request
// (a non-POST, OPTIONS included, gets the relay's 405).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	readCORS := middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.AllowedOrigins,
		AllowedMethods:  []string{"GET", "OPTIONS"},
		AllowedHeaders:  []string{"Content-Type"},
		PreflightStatus: cfg.PreflightStatus,
	})

	// Dashboard bootstrap: any non-OPTIONS method is served the same
	// way, so no method pattern here.
	mux.Handle("/api/governance/bootstrap", readCORS(http.HandlerFunc(cfg.Bootstrap.Handle)))

	// Koios passthrough views
	mux.Handle("/api/treasury", readCORS(http.HandlerFunc(cfg.Treasury.Handle)))
	mux.Handle("/api/committee", readCORS(http.HandlerFunc(cfg.Committee.Handle)))

	// Gemini relay
	mux.HandleFunc("/api/gemini/generate", cfg.Gemini.Generate)

	// Operational endpoints
	mux.HandleFunc("GET /healthz", handlers.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
