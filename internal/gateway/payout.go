package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/balance"
	"github.com/stripe/stripe-go/v76/payout"
	"go.uber.org/zap"

	"github.com/creatorhub/paygate/internal/domain"
)

const payoutPageSize = 100

// CreatePayout moves funds from a connected account's balance to its external
// bank destination, instant or standard rail.
func (g *Gateway) CreatePayout(ctx context.Context, vendorID string, amountMajor float64, currency string, instant bool, destination string) (*stripe.Payout, error) {
	if vendorID == "" {
		return nil, domain.MissingField("vendor id")
	}
	amount, err := domain.ToMinorUnits(amountMajor)
	if err != nil {
		return nil, err
	}

	method := "standard"
	if instant {
		method = "instant"
	}

	params := &stripe.PayoutParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.currency(currency)),
		Method:   stripe.String(method),
	}
	if destination != "" {
		params.Destination = stripe.String(destination)
	}
	params.SetStripeAccount(vendorID)
	params.IdempotencyKey = idempotencyKey("")

	ctx, done := g.startOp(ctx, "payout_create")
	params.Context = ctx

	pc := &payout.Client{B: g.api, Key: g.key()}
	p, err := pc.New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe payout: %w", err)
	}

	g.log.Info("Payout created",
		zap.String("payout_id", p.ID),
		zap.String("vendor_id", vendorID),
		zap.Int64("amount", p.Amount),
		zap.String("method", method),
	)
	return p, nil
}

// Balance retrieves the balance of a connected account.
func (g *Gateway) Balance(ctx context.Context, vendorID string) (*stripe.Balance, error) {
	if vendorID == "" {
		return nil, domain.MissingField("vendor id")
	}

	params := &stripe.BalanceParams{}
	params.SetStripeAccount(vendorID)

	ctx, done := g.startOp(ctx, "balance_retrieve")
	params.Context = ctx

	bc := &balance.Client{B: g.api, Key: g.key()}
	b, err := bc.Get(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe balance: %w", err)
	}
	return b, nil
}

// ListPayouts returns one page of payouts for a connected account. The caller
// follows HasMore with the last id as startingAfter; nothing loops here.
func (g *Gateway) ListPayouts(ctx context.Context, vendorID, startingAfter, status string) (*stripe.PayoutList, error) {
	if vendorID == "" {
		return nil, domain.MissingField("vendor id")
	}

	params := &stripe.PayoutListParams{}
	params.Limit = stripe.Int64(payoutPageSize)
	params.Single = true
	params.SetStripeAccount(vendorID)
	if startingAfter != "" {
		params.StartingAfter = stripe.String(startingAfter)
	}
	if status != "" {
		params.Status = stripe.String(status)
	}

	ctx, done := g.startOp(ctx, "payout_list")
	params.Context = ctx

	pc := &payout.Client{B: g.api, Key: g.key()}
	iter := pc.List(params)
	for iter.Next() {
		// drain the page so the list object is fully populated
	}
	done(iter.Err())
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe payout list: %w", err)
	}
	return iter.PayoutList(), nil
}
