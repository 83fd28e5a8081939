package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/card"
	"golang.org/x/sync/errgroup"

	"github.com/creatorhub/paygate/internal/domain"
)

// Card is the processor's card record annotated with whether it is the
// customer's current default source. The flag is derived locally; the list
// endpoint does not return it.
type Card struct {
	*stripe.Card
	IsDefault bool `json:"is_default"`
}

func (g *Gateway) cards() *card.Client {
	return &card.Client{B: g.api, Key: g.key()}
}

// AddCard attaches a tokenized card to a customer.
func (g *Gateway) AddCard(ctx context.Context, customerID, cardToken string) (*stripe.Card, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}
	if cardToken == "" {
		return nil, domain.MissingField("card token")
	}

	ctx, done := g.startOp(ctx, "card_add")
	params := &stripe.CardParams{
		Customer: stripe.String(customerID),
		Token:    stripe.String(cardToken),
	}
	params.Context = ctx

	c, err := g.cards().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe card add: %w", err)
	}
	return c, nil
}

// ListCards reads the customer's cards and the customer record concurrently,
// then marks the card whose id equals the account's default source. Exactly
// one card can come back marked, regardless of list order.
func (g *Gateway) ListCards(ctx context.Context, customerID string) ([]Card, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}

	var (
		cards []*stripe.Card
		cust  *stripe.Customer
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		listCtx, done := g.startOp(egCtx, "card_list")
		params := &stripe.CardListParams{
			Customer: stripe.String(customerID),
		}
		params.Context = listCtx

		iter := g.cards().List(params)
		for iter.Next() {
			cards = append(cards, iter.Card())
		}
		done(iter.Err())
		if err := iter.Err(); err != nil {
			return fmt.Errorf("stripe card list: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		cust, err = g.RetrieveCustomer(egCtx, customerID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	defaultSource := ""
	if cust.DefaultSource != nil {
		defaultSource = cust.DefaultSource.ID
	}

	annotated := make([]Card, 0, len(cards))
	for _, c := range cards {
		annotated = append(annotated, Card{
			Card:      c,
			IsDefault: c.ID == defaultSource,
		})
	}
	return annotated, nil
}

// SetDefaultCard makes the card the customer's default source for charges.
func (g *Gateway) SetDefaultCard(ctx context.Context, customerID, cardID string) (*stripe.Customer, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}
	if cardID == "" {
		return nil, domain.MissingField("card id")
	}

	ctx, done := g.startOp(ctx, "card_set_default")
	params := &stripe.CustomerParams{
		DefaultSource: stripe.String(cardID),
	}
	params.Context = ctx

	c, err := g.customers().Update(customerID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe set default card: %w", err)
	}
	return c, nil
}

// DeleteCard detaches a card from a customer.
func (g *Gateway) DeleteCard(ctx context.Context, customerID, cardID string) (*stripe.Card, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}
	if cardID == "" {
		return nil, domain.MissingField("card id")
	}

	ctx, done := g.startOp(ctx, "card_delete")
	params := &stripe.CardParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	c, err := g.cards().Del(cardID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe card delete: %w", err)
	}
	return c, nil
}
