package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"github.com/creatorhub/paygate/internal/domain"
)

func (g *Gateway) charges() *charge.Client {
	return &charge.Client{B: g.api, Key: g.key()}
}

// Charge captures funds directly from a customer's default source. When split
// payments are enabled and a vendor is named, the vendor's share rides along
// as a same-call destination.
func (g *Gateway) Charge(ctx context.Context, req domain.ChargeRequest) (*stripe.Charge, error) {
	if req.CustomerID == "" {
		return nil, domain.MissingField("customer id")
	}
	amount, err := domain.ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	params := &stripe.ChargeParams{
		Customer:            stripe.String(req.CustomerID),
		Amount:              stripe.Int64(amount),
		Currency:            stripe.String(g.currency(req.Currency)),
		Capture:             stripe.Bool(!req.NoCapture),
		StatementDescriptor: stripe.String(g.statementDescriptor(req.StatementDescriptor)),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if req.TransferGroup != "" {
		params.TransferGroup = stripe.String(req.TransferGroup)
	}
	if g.cfg.Stripe.SplitPayments && req.VendorID != "" {
		vendorAmount, err := domain.ToMinorUnits(req.VendorAmount)
		if err != nil {
			return nil, err
		}
		// Legacy destination-charge parameter; the generated params no longer
		// model it, so it goes in as an extra.
		params.AddExtra("destination[account]", req.VendorID)
		params.AddExtra("destination[amount]", strconv.FormatInt(vendorAmount, 10))
	}
	params.IdempotencyKey = idempotencyKey(req.IdempotencyKey)

	ctx, done := g.startOp(ctx, "charge_create")
	params.Context = ctx

	ch, err := g.charges().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe charge: %w", err)
	}

	g.log.Info("Charge created",
		zapChargeFields(ch)...,
	)
	return ch, nil
}

// ChargeSource charges an arbitrary payment source rather than a customer's
// default. Used to pull funds off a vendor's own card.
func (g *Gateway) ChargeSource(ctx context.Context, sourceID string, amountMajor float64, currency string) (*stripe.Charge, error) {
	if sourceID == "" {
		return nil, domain.MissingField("source id")
	}
	amount, err := domain.ToMinorUnits(amountMajor)
	if err != nil {
		return nil, err
	}

	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.currency(currency)),
	}
	if err := params.SetSource(sourceID); err != nil {
		return nil, fmt.Errorf("invalid charge source: %w", err)
	}
	params.IdempotencyKey = idempotencyKey("")

	ctx, done := g.startOp(ctx, "charge_source")
	params.Context = ctx

	ch, err := g.charges().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe source charge: %w", err)
	}
	return ch, nil
}

// ChargeWithIntent runs the payment through a payment intent, requesting
// 3-D Secure step-up whenever the card supports it. When splitting, the funds
// are held on behalf of the vendor instead of using a same-call destination.
func (g *Gateway) ChargeWithIntent(ctx context.Context, req domain.ChargeRequest) (*stripe.PaymentIntent, error) {
	if req.CustomerID == "" {
		return nil, domain.MissingField("customer id")
	}
	amount, err := domain.ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Customer:            stripe.String(req.CustomerID),
		Amount:              stripe.Int64(amount),
		Currency:            stripe.String(g.currency(req.Currency)),
		StatementDescriptor: stripe.String(g.statementDescriptor(req.StatementDescriptor)),
		PaymentMethodOptions: &stripe.PaymentIntentPaymentMethodOptionsParams{
			Card: &stripe.PaymentIntentPaymentMethodOptionsCardParams{
				RequestThreeDSecure: stripe.String("any"),
			},
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	if g.cfg.Stripe.SplitPayments && req.VendorID != "" {
		vendorAmount, err := domain.ToMinorUnits(req.VendorAmount)
		if err != nil {
			return nil, err
		}
		params.TransferData = &stripe.PaymentIntentTransferDataParams{
			Amount:      stripe.Int64(vendorAmount),
			Destination: stripe.String(req.VendorID),
		}
		params.OnBehalfOf = stripe.String(req.VendorID)
	}
	params.IdempotencyKey = idempotencyKey(req.IdempotencyKey)

	ctx, done := g.startOp(ctx, "payment_intent_create")
	params.Context = ctx

	pc := &paymentintent.Client{B: g.api, Key: g.key()}
	pi, err := pc.New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi, nil
}

func zapChargeFields(ch *stripe.Charge) []zap.Field {
	return []zap.Field{
		zap.String("charge_id", ch.ID),
		zap.Int64("amount", ch.Amount),
		zap.String("currency", string(ch.Currency)),
	}
}

func (g *Gateway) statementDescriptor(override string) string {
	if override != "" {
		return override
	}
	return g.cfg.Stripe.ProductName
}
