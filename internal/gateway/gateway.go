// Package gateway is a typed façade over the Stripe Connect API. Every
// operation validates its input locally, builds exactly one request (or a
// fixed small number of them), issues the remote call and returns the raw
// response or the remote failure unchanged in kind. Nothing is persisted and
// nothing is retried here.
package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/creatorhub/paygate/internal/observability/telemetry"
	"github.com/creatorhub/paygate/pkg/config"
)

const productionEnv = "production"

type Gateway struct {
	cfg     *config.Config
	api     stripe.Backend
	uploads stripe.Backend
	tracer  trace.Tracer
	log     *zap.Logger
}

// New builds a gateway against the real Stripe endpoints.
func New(cfg *config.Config, log *zap.Logger) *Gateway {
	return NewWithBackends(cfg,
		stripe.GetBackend(stripe.APIBackend),
		stripe.GetBackend(stripe.UploadsBackend),
		log,
	)
}

// NewWithBackends injects the transport. Tests point both backends at a fake
// server.
func NewWithBackends(cfg *config.Config, api, uploads stripe.Backend, log *zap.Logger) *Gateway {
	return &Gateway{
		cfg:     cfg,
		api:     api,
		uploads: uploads,
		tracer:  otel.Tracer("paygate/gateway"),
		log:     log,
	}
}

// key selects the per-environment secret. Only the exact "production" marker
// selects the live key; there is no fallback and no emptiness check, an empty
// key simply fails remotely with an authentication error.
func (g *Gateway) key() string {
	if g.cfg.App.Environment == productionEnv {
		return g.cfg.Stripe.LiveKey
	}
	return g.cfg.Stripe.TestKey
}

func (g *Gateway) currency(c string) string {
	if c == "" {
		return g.cfg.Stripe.Currency
	}
	return c
}

// idempotencyKey returns the caller's key, or a fresh one so retries of the
// same logical mutation by an intermediary cannot double-charge.
func idempotencyKey(key string) *string {
	if key == "" {
		key = uuid.New().String()
	}
	return stripe.String(key)
}

// startOp opens a span for one remote round trip. The returned func records
// the outcome in metrics and the error log.
func (g *Gateway) startOp(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := g.tracer.Start(ctx, "stripe."+op)
	start := time.Now()
	return ctx, func(err error) {
		telemetry.ObserveRequest(op, start, err)
		if err != nil {
			span.RecordError(err)
			g.log.Error("Stripe call failed",
				zap.String("operation", op),
				zap.Error(err),
			)
		}
		span.End()
	}
}
