package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/token"

	"github.com/creatorhub/paygate/internal/domain"
)

func (g *Gateway) customers() *customer.Client {
	return &customer.Client{B: g.api, Key: g.key()}
}

// CreateCustomer registers a payer by email and returns the processor's
// customer record. The id in it is the only handle this code ever keeps.
func (g *Gateway) CreateCustomer(ctx context.Context, email string) (*stripe.Customer, error) {
	if email == "" {
		return nil, domain.MissingField("email")
	}

	ctx, done := g.startOp(ctx, "customer_create")
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx

	c, err := g.customers().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe customer create: %w", err)
	}
	return c, nil
}

// UpdateCustomer replaces whatever profile fields are supplied. No deep merge;
// absent fields are left untouched remotely.
func (g *Gateway) UpdateCustomer(ctx context.Context, customerID, name string, address *domain.Address) (*stripe.Customer, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}

	ctx, done := g.startOp(ctx, "customer_update")
	params := &stripe.CustomerParams{}
	if name != "" {
		params.Name = stripe.String(name)
	}
	if address != nil {
		params.Address = addressParams(address)
	}
	params.Context = ctx

	c, err := g.customers().Update(customerID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe customer update: %w", err)
	}
	return c, nil
}

// RetrieveCustomer fetches the customer record, default source included.
func (g *Gateway) RetrieveCustomer(ctx context.Context, customerID string) (*stripe.Customer, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}

	ctx, done := g.startOp(ctx, "customer_retrieve")
	params := &stripe.CustomerParams{}
	params.Context = ctx

	c, err := g.customers().Get(customerID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe customer retrieve: %w", err)
	}
	return c, nil
}

// CreateToken tokenizes raw card or bank details so they never transit the
// rest of the system.
func (g *Gateway) CreateToken(ctx context.Context, params *stripe.TokenParams) (*stripe.Token, error) {
	if params == nil {
		return nil, domain.MissingField("token params")
	}

	ctx, done := g.startOp(ctx, "token_create")
	params.Context = ctx

	tc := &token.Client{B: g.api, Key: g.key()}
	t, err := tc.New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe token create: %w", err)
	}
	return t, nil
}

func addressParams(a *domain.Address) *stripe.AddressParams {
	p := &stripe.AddressParams{}
	if a.Line1 != "" {
		p.Line1 = stripe.String(a.Line1)
	}
	if a.Line2 != "" {
		p.Line2 = stripe.String(a.Line2)
	}
	if a.City != "" {
		p.City = stripe.String(a.City)
	}
	if a.State != "" {
		p.State = stripe.String(a.State)
	}
	if a.PostalCode != "" {
		p.PostalCode = stripe.String(a.PostalCode)
	}
	if a.Country != "" {
		p.Country = stripe.String(a.Country)
	}
	return p
}
