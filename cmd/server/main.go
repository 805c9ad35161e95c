package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"regnet/internal/identity"
	"regnet/internal/ledger"
	"regnet/internal/platform/config"
	"regnet/internal/platform/httpserver"
	"regnet/internal/platform/logger"
	platformmetrics "regnet/internal/platform/metrics"
	"regnet/internal/registry/authz"
	"regnet/internal/registry/events"
	registrymetrics "regnet/internal/registry/metrics"
	"regnet/internal/registry/service"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("regnet exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := openPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	l := ledger.New(store,
		ledger.WithLogger(log),
		ledger.WithTimeout(cfg.Ledger.TxTimeout),
		ledger.WithMaxRetries(cfg.Ledger.MaxRetries),
	)
	svc := service.New(l,
		service.WithLogger(log),
		service.WithMetrics(registrymetrics.New(reg)),
		service.WithPublisher(publisher),
		service.WithPublishTimeout(cfg.Kafka.DeliveryTimeout),
		service.WithRoleMapper(authz.RoleMapper{RegistrarMSP: cfg.Auth.RegistrarMSP, UserMSP: cfg.Auth.UserMSP}),
	)

	router := newRouter(routerDeps{
		service:  svc,
		health:   l,
		tokens:   identity.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer),
		metrics:  platformmetrics.New(reg),
		gatherer: reg,
		logger:   log,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting regnet", "addr", cfg.Addr, "ledger_backend", cfg.Ledger.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down regnet")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openPublisher(ctx context.Context, cfg config.Server, log *slog.Logger) (events.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("kafka not configured, ledger events go to the log")
		return events.NewLogPublisher(log), func() {}, nil
	}
	pub, err := events.NewKafkaPublisher(cfg.Kafka, log)
	if err != nil {
		return nil, nil, err
	}
	ensureCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := pub.EnsureTopic(ensureCtx); err != nil {
		pub.Close()
		return nil, nil, err
	}
	return pub, pub.Close, nil
}
