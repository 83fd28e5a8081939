package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/accountlink"

	"github.com/creatorhub/paygate/internal/domain"
)

// SubmitKYC pushes the identity payload onto a connected account. The payload
// is country-conditional: US gets ssn_last_4 / id_number when supplied, IN gets
// a PAN-tagged id number and no payout settings block, and business accounts
// carry no individual sub-object at all. Terms-of-service acceptance is stamped
// with the current time and the caller's originating address, which is assumed
// not to sit behind a proxy.
func (g *Gateway) SubmitKYC(ctx context.Context, req domain.KYCRequest) (*stripe.Account, error) {
	if req.AccountID == "" {
		return nil, domain.MissingField("account id")
	}
	if req.Address.Country == "" {
		return nil, domain.MissingField("country")
	}
	if req.Address.Country == "IN" && req.PersonalIDNumber == "" {
		return nil, domain.MissingField("personal id number (PAN)")
	}

	params := &stripe.AccountParams{
		BusinessProfile: g.businessProfile(),
		TOSAcceptance: &stripe.AccountTOSAcceptanceParams{
			Date: stripe.Int64(time.Now().Unix()),
			IP:   stripe.String(req.RemoteIP),
		},
		Settings: manualPayoutSettings(),
	}

	if req.Category == domain.CategoryBusiness {
		params.BusinessType = stripe.String(string(stripe.AccountBusinessTypeCompany))
	} else {
		params.BusinessType = stripe.String(string(stripe.AccountBusinessTypeIndividual))
		params.Individual = individualParams(req)
	}

	switch req.Address.Country {
	case "IN":
		// India rejects platform-managed payout settings on this call.
		params.Settings = nil
		if params.Individual != nil {
			params.Individual.IDNumber = stripe.String(req.PersonalIDNumber)
			params.AddExtra("individual[id_number_type]", "PAN")
		}
	case "US":
		if params.Individual != nil {
			if req.SSNLast4 != "" {
				params.Individual.SSNLast4 = stripe.String(req.SSNLast4)
			}
			if req.PersonalIDNumber != "" {
				params.Individual.IDNumber = stripe.String(req.PersonalIDNumber)
			}
		}
	}

	ctx, done := g.startOp(ctx, "kyc_submit")
	params.Context = ctx

	a, err := g.accounts().Update(req.AccountID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe kyc submit: %w", err)
	}
	return a, nil
}

// AcceptTOS stamps terms-of-service acceptance without touching identity
// fields. Used when onboarding collected everything else already.
func (g *Gateway) AcceptTOS(ctx context.Context, accountID, remoteIP string) (*stripe.Account, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "tos_accept")
	params := &stripe.AccountParams{
		BusinessType:    stripe.String(string(stripe.AccountBusinessTypeIndividual)),
		BusinessProfile: g.businessProfile(),
		TOSAcceptance: &stripe.AccountTOSAcceptanceParams{
			Date: stripe.Int64(time.Now().Unix()),
			IP:   stripe.String(remoteIP),
		},
	}
	params.Context = ctx

	a, err := g.accounts().Update(accountID, params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe tos accept: %w", err)
	}
	return a, nil
}

// OnboardingLink produces a single-use hosted onboarding URL collecting the
// eventually-due requirement set.
func (g *Gateway) OnboardingLink(ctx context.Context, accountID, overrideURL string) (*stripe.AccountLink, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "onboarding_link")
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(g.onboardingURL(overrideURL)),
		ReturnURL:  stripe.String(g.onboardingURL(overrideURL)),
		Type:       stripe.String("account_onboarding"),
		Collect:    stripe.String("eventually_due"),
	}
	params.Context = ctx

	l, err := g.accountLinks().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe onboarding link: %w", err)
	}
	return l, nil
}

// FreshOnboardingLink is the newer variant that also surfaces future
// requirements, so vendors see upcoming disclosure obligations up front.
func (g *Gateway) FreshOnboardingLink(ctx context.Context, accountID, overrideURL string) (*stripe.AccountLink, error) {
	if accountID == "" {
		return nil, domain.MissingField("account id")
	}

	ctx, done := g.startOp(ctx, "onboarding_link_fresh")
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(g.onboardingURL(overrideURL)),
		ReturnURL:  stripe.String(g.onboardingURL(overrideURL)),
		Type:       stripe.String("account_onboarding"),
		CollectionOptions: &stripe.AccountLinkCollectionOptionsParams{
			Fields:             stripe.String("eventually_due"),
			FutureRequirements: stripe.String("include"),
		},
	}
	params.Context = ctx

	l, err := g.accountLinks().New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe onboarding link: %w", err)
	}
	return l, nil
}

func (g *Gateway) accountLinks() *accountlink.Client {
	return &accountlink.Client{B: g.api, Key: g.key()}
}

func (g *Gateway) businessProfile() *stripe.AccountBusinessProfileParams {
	return &stripe.AccountBusinessProfileParams{
		URL: stripe.String(g.cfg.Stripe.ProductURL),
		MCC: stripe.String("7299"),
	}
}

func (g *Gateway) onboardingURL(override string) string {
	if override != "" {
		return override
	}
	return g.cfg.Stripe.OnboardingURL
}

func individualParams(req domain.KYCRequest) *stripe.PersonParams {
	return &stripe.PersonParams{
		FirstName: stripe.String(req.Name.First),
		LastName:  stripe.String(req.Name.Last),
		Email:     stripe.String(req.Email),
		Phone:     stripe.String(req.Phone),
		Address:   addressParams(&req.Address),
		DOB: &stripe.PersonDOBParams{
			Day:   stripe.Int64(req.DOB.Day),
			Month: stripe.Int64(req.DOB.Month),
			Year:  stripe.Int64(req.DOB.Year),
		},
		Verification: verificationParams(req.Docs),
	}
}

func verificationParams(docs *domain.VerificationDocs) *stripe.PersonVerificationParams {
	if docs == nil {
		return nil
	}
	doc := &stripe.PersonVerificationDocumentParams{}
	if docs.FrontFileID != "" {
		doc.Front = stripe.String(docs.FrontFileID)
	}
	if docs.BackFileID != "" {
		doc.Back = stripe.String(docs.BackFileID)
	}
	return &stripe.PersonVerificationParams{Document: doc}
}
