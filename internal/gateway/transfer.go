package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/transfer"
	"github.com/stripe/stripe-go/v76/transferreversal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/creatorhub/paygate/internal/domain"
)

// MultiTransferResult is the captured charge plus the caller's transfer
// descriptors joined with their remote transfer ids, in input order.
type MultiTransferResult struct {
	Charge    *stripe.Charge          `json:"charge"`
	Transfers []domain.TransferResult `json:"transfers"`
}

func (g *Gateway) transfers() *transfer.Client {
	return &transfer.Client{B: g.api, Key: g.key()}
}

// CreateTransfer moves already-captured platform funds to a connected account.
func (g *Gateway) CreateTransfer(ctx context.Context, amountMajor float64, destination, transferGroup, currency string) (*stripe.Transfer, error) {
	if destination == "" {
		return nil, domain.MissingField("destination")
	}
	amount, err := domain.ToMinorUnits(amountMajor)
	if err != nil {
		return nil, err
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(g.currency(currency)),
		Destination: stripe.String(destination),
	}
	if transferGroup != "" {
		params.TransferGroup = stripe.String(transferGroup)
	}
	params.IdempotencyKey = idempotencyKey("")

	ctx, done := g.startOp(ctx, "transfer_create")
	params.Context = ctx

	t, err := g.transfers().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe transfer: %w", err)
	}
	return t, nil
}

// ReverseTransfer pulls funds back from a connected account. The amount is an
// explicit minor-unit value, matching the remote transfer's own unit.
func (g *Gateway) ReverseTransfer(ctx context.Context, transferID string, amountMinor int64) (*stripe.TransferReversal, error) {
	if transferID == "" {
		return nil, domain.MissingField("transfer id")
	}
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: reversal amount %d", domain.ErrInvalidAmount, amountMinor)
	}

	params := &stripe.TransferReversalParams{
		ID:     stripe.String(transferID),
		Amount: stripe.Int64(amountMinor),
	}
	params.IdempotencyKey = idempotencyKey("")

	ctx, done := g.startOp(ctx, "transfer_reverse")
	params.Context = ctx

	rc := &transferreversal.Client{B: g.api, Key: g.key()}
	r, err := rc.New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe transfer reversal: %w", err)
	}
	return r, nil
}

// MultiTransferPayment captures one charge, then fans the proceeds out to
// every destination in req under one correlation group. All amounts are
// validated before any money moves. The charge is never reversed here: if a
// transfer fails, the error enumerates what did complete so the caller can
// compensate deliberately.
func (g *Gateway) MultiTransferPayment(ctx context.Context, chargeReq domain.ChargeRequest, instructions []domain.TransferInstruction) (*MultiTransferResult, error) {
	if len(instructions) == 0 {
		return nil, domain.ErrNoTransfers
	}
	if chargeReq.TransferGroup == "" {
		return nil, domain.MissingField("transfer group")
	}

	amounts := make([]int64, len(instructions))
	for i, ins := range instructions {
		if ins.AccountID == "" {
			return nil, domain.MissingField(fmt.Sprintf("transfer[%d] account id", i))
		}
		amount, err := domain.ToMinorUnits(ins.Amount)
		if err != nil {
			return nil, fmt.Errorf("transfer[%d]: %w", i, err)
		}
		amounts[i] = amount
	}

	// The split happens through the transfer group, not a charge destination.
	chargeReq.VendorID = ""
	ch, err := g.Charge(ctx, chargeReq)
	if err != nil {
		return nil, err
	}

	currency := g.currency(chargeReq.Currency)
	results := make([]domain.TransferResult, len(instructions))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, ins := range instructions {
		i, ins := i, ins
		eg.Go(func() error {
			params := &stripe.TransferParams{
				Amount:        stripe.Int64(amounts[i]),
				Currency:      stripe.String(currency),
				Destination:   stripe.String(ins.AccountID),
				TransferGroup: stripe.String(chargeReq.TransferGroup),
			}
			params.IdempotencyKey = idempotencyKey("")

			opCtx, done := g.startOp(egCtx, "transfer_create")
			params.Context = opCtx

			t, err := g.transfers().New(params)
			done(err)
			if err != nil {
				return fmt.Errorf("stripe transfer to %s: %w", ins.AccountID, err)
			}
			results[i] = domain.TransferResult{
				TransferInstruction: ins,
				TransferID:          t.ID,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		completed := make([]domain.TransferResult, 0, len(results))
		for _, r := range results {
			if r.TransferID != "" {
				completed = append(completed, r)
			}
		}
		g.log.Error("Multi-transfer payment failed after charge capture",
			zap.String("charge_id", ch.ID),
			zap.String("transfer_group", chargeReq.TransferGroup),
			zap.Int("completed_transfers", len(completed)),
			zap.Error(err),
		)
		return nil, &domain.PartialTransferError{
			ChargeID:  ch.ID,
			Completed: completed,
			Err:       err,
		}
	}

	g.log.Info("Multi-transfer payment completed",
		zap.String("charge_id", ch.ID),
		zap.String("transfer_group", chargeReq.TransferGroup),
		zap.Int("transfers", len(results)),
	)
	return &MultiTransferResult{Charge: ch, Transfers: results}, nil
}
