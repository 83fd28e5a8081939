package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/bankaccount"

	"github.com/creatorhub/paygate/internal/domain"
)

// Currencies whose banking rails have no routing-number concept; the field
// must be omitted from the payload entirely, not sent empty.
var noRoutingNumberCurrencies = map[string]bool{
	"eur": true,
	"nok": true,
}

func (g *Gateway) bankAccounts() *bankaccount.Client {
	return &bankaccount.Client{B: g.api, Key: g.key()}
}

// AddBankAccount attaches an external bank account to a connected account.
// Holder name is included only when supplied.
func (g *Gateway) AddBankAccount(ctx context.Context, req domain.BankAccountRequest) (*stripe.BankAccount, error) {
	if req.AccountID == "" {
		return nil, domain.MissingField("account id")
	}
	if req.AccountNumber == "" {
		return nil, domain.MissingField("account number")
	}
	if req.Country == "" {
		return nil, domain.MissingField("country")
	}

	currency := g.currency(req.Currency)

	ctx, done := g.startOp(ctx, "bank_account_add")
	params := &stripe.BankAccountParams{
		Account:       stripe.String(req.AccountID),
		Country:       stripe.String(req.Country),
		Currency:      stripe.String(currency),
		AccountNumber: stripe.String(req.AccountNumber),
	}
	if !noRoutingNumberCurrencies[currency] && req.RoutingNumber != "" {
		params.RoutingNumber = stripe.String(req.RoutingNumber)
	}
	if req.AccountHolderName != "" {
		params.AccountHolderName = stripe.String(req.AccountHolderName)
	}
	params.Context = ctx

	ba, err := g.bankAccounts().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe bank account add: %w", err)
	}
	return ba, nil
}

// AddPayoutCard attaches a tokenized debit card as an external account so
// instant payouts can land on it.
func (g *Gateway) AddPayoutCard(ctx context.Context, accountID, cardToken string) (*stripe.BankAccount, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}
	if cardToken == "" {
		return nil, domain.MissingField("card token")
	}

	ctx, done := g.startOp(ctx, "payout_card_add")
	params := &stripe.BankAccountParams{
		Account: stripe.String(accountID),
		Token:   stripe.String(cardToken),
	}
	params.Context = ctx

	ba, err := g.bankAccounts().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe payout card add: %w", err)
	}
	return ba, nil
}

// ListExternalAccounts returns all external accounts on a connected account.
func (g *Gateway) ListExternalAccounts(ctx context.Context, accountID string) ([]*stripe.BankAccount, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "external_account_list")
	params := &stripe.BankAccountListParams{
		Account: stripe.String(accountID),
	}
	params.Context = ctx

	var out []*stripe.BankAccount
	iter := g.bankAccounts().List(params)
	for iter.Next() {
		out = append(out, iter.BankAccount())
	}
	done(iter.Err())
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe external account list: %w", err)
	}
	return out, nil
}

// DeleteExternalAccount removes an external account from a connected account.
func (g *Gateway) DeleteExternalAccount(ctx context.Context, accountID, externalID string) (*stripe.BankAccount, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}
	if externalID == "" {
		return nil, domain.MissingField("external account id")
	}

	ctx, done := g.startOp(ctx, "external_account_delete")
	params := &stripe.BankAccountParams{
		Account: stripe.String(accountID),
	}
	params.Context = ctx

	ba, err := g.bankAccounts().Del(externalID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe external account delete: %w", err)
	}
	return ba, nil
}

// SetDefaultExternalAccount marks an external account as the default payout
// destination for its currency.
func (g *Gateway) SetDefaultExternalAccount(ctx context.Context, accountID, externalID string) (*stripe.BankAccount, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}
	if externalID == "" {
		return nil, domain.MissingField("external account id")
	}

	ctx, done := g.startOp(ctx, "external_account_set_default")
	params := &stripe.BankAccountParams{
		Account:            stripe.String(accountID),
		DefaultForCurrency: stripe.Bool(true),
	}
	params.Context = ctx

	ba, err := g.bankAccounts().Update(externalID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe external account set default: %w", err)
	}
	return ba, nil
}

type bankVerifyParams struct {
	stripe.Params `form:"*"`
	Amounts       []int64 `form:"amounts"`
}

// VerifyBankAccount submits the two micro-deposit probe amounts against a
// pending customer bank source. The SDK has no wrapper for this endpoint, so
// it goes through the backend directly.
func (g *Gateway) VerifyBankAccount(ctx context.Context, customerID, sourceID string, amounts []int64) (*stripe.BankAccount, error) {
	if customerID == "" {
		return nil, domain.MissingField("customer id")
	}
	if sourceID == "" {
		return nil, domain.MissingField("source id")
	}
	if len(amounts) != 2 {
		return nil, domain.ErrBadProbeCount
	}

	ctx, done := g.startOp(ctx, "bank_account_verify")
	params := &bankVerifyParams{Amounts: amounts}
	params.Context = ctx

	path := fmt.Sprintf("/v1/customers/%s/sources/%s/verify", customerID, sourceID)
	ba := &stripe.BankAccount{}
	err := g.api.Call(http.MethodPost, path, g.key(), params, ba)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe bank account verify: %w", err)
	}
	return ba, nil
}
