package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"supplierwatch/internal/httpapi/middleware"
	"supplierwatch/internal/service"
)

// RouterConfig bundles the dependencies NewRouter wires together.
type RouterConfig struct {
	Services      *service.Services
	Logger        *slog.Logger
	RateLimiter   *middleware.RateLimiter
	Observability *middleware.Observability
	CORSOrigins   []string
}

// NewRouter builds the full HTTP surface. Static path segments are
// registered before any route carrying a dynamic {id} capture, so that
// e.g. /suppliers/ranking never falls into the /suppliers/{id} handler.
func NewRouter(cfg RouterConfig) http.Handler {
	h := &handlers{svc: cfg.Services}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(cfg.RateLimiter.Middleware)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	route := func(pattern string, fn http.HandlerFunc) {
		r.With(cfg.Observability.Middleware(pattern)).Get(pattern, fn)
	}

	r.Get("/metrics", cfg.Observability.MetricsHandler().ServeHTTP)

	route("/api/stats", h.stats)
	route("/api/search", h.search)
	route("/api/contracts", h.contracts)
	route("/api/alerts", h.alerts)
	route("/api/alerts/{kind}", h.alertsByKind)
	route("/api/suppliers/ranking", h.ranking)
	route("/api/suppliers/{id}", h.supplierByID)
	route("/api/suppliers/{id}/graph", h.supplierGraph)
	route("/api/suppliers/{id}/export", h.supplierExport)
	route("/api/orgs/{orgCode}/dashboard", h.orgDashboard)

	return r
}
