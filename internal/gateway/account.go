package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/account"

	"github.com/creatorhub/paygate/internal/domain"
)

func (g *Gateway) accounts() *account.Client {
	return &account.Client{B: g.api, Key: g.key()}
}

// CreateVendor provisions a custom connected account for a payee. Payouts are
// forced to a manual schedule so the platform controls when funds move.
func (g *Gateway) CreateVendor(ctx context.Context, email, country string) (*stripe.Account, error) {
	if email == "" {
		return nil, domain.MissingField("email")
	}
	if country == "" {
		return nil, domain.MissingField("country")
	}

	ctx, done := g.startOp(ctx, "vendor_create")
	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeCustom)),
		Email:   stripe.String(email),
		Country: stripe.String(country),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
		Settings: manualPayoutSettings(),
	}
	params.Context = ctx

	a, err := g.accounts().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe vendor create: %w", err)
	}
	return a, nil
}

// RetrieveVendor fetches a connected account.
func (g *Gateway) RetrieveVendor(ctx context.Context, accountID string) (*stripe.Account, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "vendor_retrieve")
	params := &stripe.AccountParams{}
	params.Context = ctx

	a, err := g.accounts().GetByID(accountID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe vendor retrieve: %w", err)
	}
	return a, nil
}

// DeleteVendor removes a connected account. Not idempotent: a second delete
// comes back as the processor's not-found rejection.
func (g *Gateway) DeleteVendor(ctx context.Context, accountID string) (*stripe.Account, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "vendor_delete")
	params := &stripe.AccountParams{}
	params.Context = ctx

	a, err := g.accounts().Del(accountID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe vendor delete: %w", err)
	}
	return a, nil
}

// SetManualPayoutSchedule re-applies the manual payout schedule. Some older
// vendor records predate the create-time default.
func (g *Gateway) SetManualPayoutSchedule(ctx context.Context, accountID string) (*stripe.Account, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "vendor_payout_schedule")
	params := &stripe.AccountParams{
		Settings: manualPayoutSettings(),
	}
	params.Context = ctx

	a, err := g.accounts().Update(accountID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe vendor payout schedule: %w", err)
	}
	return a, nil
}

// UpdateBusinessType switches an account between individual and company.
func (g *Gateway) UpdateBusinessType(ctx context.Context, accountID, businessType string) (*stripe.Account, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}
	if businessType == "" {
		return nil, domain.MissingField("business type")
	}

	ctx, done := g.startOp(ctx, "vendor_business_type")
	params := &stripe.AccountParams{
		BusinessType: stripe.String(businessType),
	}
	params.Context = ctx

	a, err := g.accounts().Update(accountID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe vendor business type: %w", err)
	}
	return a, nil
}

func manualPayoutSettings() *stripe.AccountSettingsParams {
	return &stripe.AccountSettingsParams{
		Payouts: &stripe.AccountSettingsPayoutsParams{
			Schedule: &stripe.AccountSettingsPayoutsScheduleParams{
				Interval: stripe.String("manual"),
			},
		},
	}
}
