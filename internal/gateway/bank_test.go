package gateway

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorhub/paygate/internal/domain"
)

func bankHandler(w http.ResponseWriter, r recordedRequest) {
	writeJSON(w, `{"id":"ba_1","object":"bank_account"}`)
}

func TestAddBankAccountIncludesRoutingNumber(t *testing.T) {
	g, rec := newTestGateway(t, bankHandler)

	_, err := g.AddBankAccount(context.Background(), domain.BankAccountRequest{
		AccountID:     "acct_1",
		Country:       "US",
		Currency:      "usd",
		AccountNumber: "000123456789",
		RoutingNumber: "110000000",
	})
	require.NoError(t, err)

	last := rec.last()
	require.Equal(t, "/v1/accounts/acct_1/external_accounts", last.Path)
	form := last.Form
	require.Equal(t, "000123456789", form.Get("external_account[account_number]"))
	require.Equal(t, "110000000", form.Get("external_account[routing_number]"))
	require.Empty(t, form.Get("external_account[account_holder_name]"))
}

func TestAddBankAccountOmitsRoutingNumberForSEPA(t *testing.T) {
	for _, currency := range []string{"eur", "nok"} {
		g, rec := newTestGateway(t, bankHandler)

		_, err := g.AddBankAccount(context.Background(), domain.BankAccountRequest{
			AccountID:         "acct_1",
			Country:           "NO",
			Currency:          currency,
			AccountNumber:     "NO9386011117947",
			RoutingNumber:     "should-be-dropped",
			AccountHolderName: "Ola Nordmann",
		})
		require.NoError(t, err)

		form := rec.last().Form
		require.Empty(t, form.Get("external_account[routing_number]"), "currency %s", currency)
		require.Equal(t, "Ola Nordmann", form.Get("external_account[account_holder_name]"))
	}
}

func TestSetDefaultExternalAccount(t *testing.T) {
	g, rec := newTestGateway(t, bankHandler)

	_, err := g.SetDefaultExternalAccount(context.Background(), "acct_1", "ba_1")
	require.NoError(t, err)

	last := rec.last()
	require.Equal(t, "/v1/accounts/acct_1/external_accounts/ba_1", last.Path)
	require.Equal(t, "true", last.Form.Get("default_for_currency"))
}

func TestVerifyBankAccount(t *testing.T) {
	g, rec := newTestGateway(t, bankHandler)

	_, err := g.VerifyBankAccount(context.Background(), "cus_1", "ba_1", []int64{32, 45})
	require.NoError(t, err)

	last := rec.last()
	require.Equal(t, "/v1/customers/cus_1/sources/ba_1/verify", last.Path)
	require.Equal(t, "32", last.Form.Get("amounts[0]"))
	require.Equal(t, "45", last.Form.Get("amounts[1]"))
}

func TestVerifyBankAccountProbeCount(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		t.Fatal("no remote call expected")
	})

	_, err := g.VerifyBankAccount(context.Background(), "cus_1", "ba_1", []int64{32})
	require.ErrorIs(t, err, domain.ErrBadProbeCount)
}
