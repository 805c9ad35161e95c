package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regnet/internal/platform/metrics"
	"regnet/internal/platform/middleware"
	"regnet/internal/registry/handler"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/platform/httputil"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

type routerDeps struct {
	service  handler.Service
	health   healthChecker
	tokens   middleware.TokenValidator
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.logger))
	r.Use(middleware.Logger(d.logger))
	r.Use(d.metrics.Instrument)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := d.health.Health(r.Context()); err != nil {
			d.logger.ErrorContext(r.Context(), "ledger backend unhealthy", "error", err)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger backend unavailable"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity(d.tokens, d.logger))
		handler.New(d.service, d.logger).Register(r)
	})
	return r
}
