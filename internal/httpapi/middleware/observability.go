package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"supplierwatch/internal/logging"
	"supplierwatch/internal/telemetry"
)

// RequestIDHeader is the header a correlation id is propagated under, both
// inbound (if already set by a caller) and outbound.
const RequestIDHeader = "X-Request-Id"

// Observability mounts per-route span creation, Prometheus counters, and a
// structured access log line for the named route.
type Observability struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	registry  *prometheus.Registry
}

// NewObservability builds an Observability instance, registering its own
// Prometheus collectors on a fresh registry exposed via MetricsHandler.
func NewObservability(serviceName string, logger *slog.Logger) *Observability {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "supplierwatch",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"route", "method", "status"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "supplierwatch",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	registry.MustRegister(requests, durations)
	return &Observability{
		logger:    logger,
		tracer:    otel.Tracer(serviceName),
		requests:  requests,
		durations: durations,
		registry:  registry,
	}
}

// Middleware wraps next with span creation, metrics, and an access log
// line for the named route.
func (o *Observability) Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ctx, span := o.tracer.Start(r.Context(), route,
				trace.WithAttributes(telemetry.RouteAttributes(route, r.Method)...))
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(ctx))
			elapsed := time.Since(start)
			span.SetAttributes(attribute.Int("http.status_code", recorder.status))
			span.End()

			status := http.StatusText(recorder.status)
			o.requests.WithLabelValues(route, r.Method, status).Inc()
			o.durations.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

			o.logger.Info("request",
				logging.MaskField("route", route),
				logging.MaskField("method", r.Method),
				slog.Int("status", recorder.status),
				slog.String("requestId", requestID),
				slog.Float64("latencyMs", float64(elapsed.Microseconds())/1000),
			)
		})
	}
}

// MetricsHandler exposes the registry for a /metrics scrape endpoint.
func (o *Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
