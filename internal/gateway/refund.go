package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"

	"github.com/creatorhub/paygate/internal/domain"
)

// RefundCharge refunds a charge, fully when amountMajor is zero or partially
// otherwise. The reason code is passed through when supplied; the processor
// constrains its values.
func (g *Gateway) RefundCharge(ctx context.Context, chargeID string, amountMajor float64, reason string) (*stripe.Refund, error) {
	if chargeID == "" {
		return nil, domain.MissingField("charge id")
	}

	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	if amountMajor != 0 {
		amount, err := domain.ToMinorUnits(amountMajor)
		if err != nil {
			return nil, err
		}
		params.Amount = stripe.Int64(amount)
	}
	if reason != "" {
		params.Reason = stripe.String(reason)
	}
	params.IdempotencyKey = idempotencyKey("")

	ctx, done := g.startOp(ctx, "refund_create")
	params.Context = ctx

	rc := &refund.Client{B: g.api, Key: g.key()}
	r, err := rc.New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe refund: %w", err)
	}
	return r, nil
}
