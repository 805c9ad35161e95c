// Package service implements the registry state machine. Every operation is
// one ledger invocation gated by the invoker's role.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"regnet/internal/ledger"
	"regnet/internal/registry/authz"
	"regnet/internal/registry/events"
	"regnet/internal/registry/metrics"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/requestcontext"
)

const defaultPublishTimeout = 5 * time.Second

// Ledger runs one invocation against the world state.
type Ledger interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stub ledger.Stub) error) error
}

// Service is the registry state machine.
type Service struct {
	ledger    Ledger
	roles     authz.RoleMapper
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	publishTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithPublishTimeout bounds how long an operation waits on event delivery
// after its invocation committed.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

func WithRoleMapper(m authz.RoleMapper) Option {
	return func(s *Service) {
		s.roles = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(l Ledger, opts ...Option) *Service {
	s := &Service{
		ledger:    l,
		roles:     authz.DefaultRoleMapper,
		publisher: events.NopPublisher{},
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer("regnet/internal/registry/service"),

		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// invoke authorizes the caller, then runs fn as one ledger invocation. It
// returns the tx id of the committed attempt.
func (s *Service) invoke(ctx context.Context, op string, required authz.Requirement, fn func(ctx context.Context, stub ledger.Stub) error) (txID string, err error) {
	ctx, span := s.tracer.Start(ctx, "registry."+op,
		trace.WithAttributes(attribute.String("registry.operation", op)))
	start := time.Now()
	defer func() {
		code := "ok"
		if err != nil {
			code = string(dErrors.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, code)
		}
		span.SetAttributes(attribute.String("registry.code", code), attribute.String("ledger.tx_id", txID))
		span.End()
		s.metrics.ObserveOperation(op, code, time.Since(start))
	}()

	inv := requestcontext.InvokerFrom(ctx)
	role := s.roles.RoleOf(inv)
	if err = authz.Authorize(role, required); err != nil {
		s.logger.WarnContext(ctx, "registry operation denied",
			"operation", op,
			"msp_id", inv.MSPID,
			"role", role.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", err
	}

	err = s.ledger.RunInTx(ctx, func(ctx context.Context, stub ledger.Stub) error {
		txID = stub.TxID()
		return fn(ctx, stub)
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

// emit publishes a post-commit event. Failures are logged and never change
// the operation result.
func (s *Service) emit(ctx context.Context, typ events.Type, txID string, data any) {
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		TxID:       txID,
		Invoker:    requestcontext.InvokerFrom(ctx).Subject,
		OccurredAt: requestcontext.Now(ctx),
		Data:       data,
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	err := s.publisher.Publish(pubCtx, event)
	s.metrics.IncrementEvent(err == nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish ledger event",
			"event_type", string(typ),
			"tx_id", txID,
			"error", err,
		)
	}
}
