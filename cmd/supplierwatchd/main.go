// Command supplierwatchd serves the read-only HTTP surface over a
// pre-built analytical store. It does not ingest data; ingestion is an
// out-of-process pipeline that produces the sqlite file and the
// per-source parquet freshness files this daemon only reads.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supplierwatch/internal/config"
	"supplierwatch/internal/httpapi"
	"supplierwatch/internal/httpapi/middleware"
	"supplierwatch/internal/logging"
	"supplierwatch/internal/ruleengine"
	"supplierwatch/internal/service"
	"supplierwatch/internal/store/sqlite"
	"supplierwatch/internal/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "supplierwatchd"

func main() {
	configPath := flag.String("config", "./supplierwatchd.toml", "path to the TOML settings file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var sink io.Writer
	if cfg.LogFilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
		}
		defer lj.Close()
		sink = lj
	}
	logger := logging.Setup(serviceName, cfg.LogLevel, sink)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    true,
	})
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	store, err := sqlite.Open(cfg.StorePath, true, cfg.ParquetDir)
	if err != nil {
		return err
	}
	defer store.Close()

	lookup, err := config.LoadActivityLookup(cfg.ActivityLookupPath)
	if err != nil {
		return err
	}

	svc := service.New(service.Config{
		Repo:       store,
		Lookup:     lookup,
		Strawman:   ruleengine.DefaultStrawmanConfig(),
		Disclaimer: cfg.DisclaimerText,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitCap, cfg.RateLimitWindow(), nil)
	obs := middleware.NewObservability(serviceName, logger)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Services:      svc,
		Logger:        logger,
		RateLimiter:   limiter,
		Observability: obs,
		CORSOrigins:   cfg.CORSAllowOrigins,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           otelhttp.NewHandler(deadlineHandler(router, cfg.RequestDeadline()), serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "address", cfg.ListenAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// deadlineHandler bounds every request to deadline: a handler that would
// otherwise block forever on a slow query instead sees its context
// cancelled and maps that to a 504.
func deadlineHandler(next http.Handler, deadline time.Duration) http.Handler {
	if deadline <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), deadline)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
