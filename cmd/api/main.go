package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/asset-registry/internal/config"
	"github.com/crucial707/asset-registry/internal/handlers"
	"github.com/crucial707/asset-registry/internal/logger"
	"github.com/crucial707/asset-registry/internal/metrics"
	"github.com/crucial707/asset-registry/internal/middleware"
	"github.com/crucial707/asset-registry/internal/registry"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; zap's example logger writes the failure to stdout.
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log := logger.Must(logger.New(cfg.LogFormat, cfg.LogLevel))
	defer log.Sync()

	reg := registry.New()
	audit := registry.NewAuditLog(cfg.AuditCapacity)
	metrics.SetAssetsStored(reg.Len())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(reg, audit, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.Bool("tls", cfg.TLSEnabled()),
			zap.Strings("cors_origins", cfg.CORSAllowedOrigins))
		if cfg.TLSEnabled() {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown", zap.Error(err))
		}
	}
}

// newRouter wires middleware and routes around an injected registry and audit log.
func newRouter(reg *registry.Registry, audit *registry.AuditLog, cfg config.Config, log *zap.Logger) http.Handler {
	assetHandler := &handlers.AssetHandler{
		Registry: reg,
		Audit:    audit,
		Logger:   logger.Named(log, "assets"),
	}
	auditHandler := &handlers.AuditHandler{Log: audit}
	healthHandler := &handlers.HealthHandler{Registry: reg}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(logger.Named(log, "http")))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.RateLimitPerMinute > 0 {
		limiter := middleware.NewIPRateLimiter(middleware.PerMinute(cfg.RateLimitPerMinute), cfg.RateLimitBurst)
		r.Use(limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", assetHandler.ListAssets)
		r.With(middleware.MaxBytes(cfg.MaxBodyBytes)).Post("/", assetHandler.CreateAsset)
		r.Get("/{id}", assetHandler.GetAsset)
		r.With(middleware.MaxBytes(cfg.MaxBodyBytes)).Put("/{id}", assetHandler.UpdateAsset)
		r.Delete("/{id}", assetHandler.DeleteAsset)
	})
	r.Get("/audit", auditHandler.ListAudit)

	return r
}
