package gateway

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorhub/paygate/internal/domain"
)

func TestCreateVendor(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, `{"id":"acct_new","object":"account"}`)
	})

	a, err := g.CreateVendor(context.Background(), "vendor@example.com", "US")
	require.NoError(t, err)
	require.Equal(t, "acct_new", a.ID)

	form := rec.last().Form
	require.Equal(t, "custom", form.Get("type"))
	require.Equal(t, "US", form.Get("country"))
	require.Equal(t, "true", form.Get("capabilities[card_payments][requested]"))
	require.Equal(t, "true", form.Get("capabilities[transfers][requested]"))
	// payout control stays with the platform from day one
	require.Equal(t, "manual", form.Get("settings[payouts][schedule][interval]"))
}

func TestCreateCustomer(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, `{"id":"cus_new","object":"customer","email":"payer@example.com"}`)
	})

	c, err := g.CreateCustomer(context.Background(), "payer@example.com")
	require.NoError(t, err)
	require.Equal(t, "cus_new", c.ID)
	require.Equal(t, "payer@example.com", rec.last().Form.Get("email"))
}

func TestUpdateCustomerReplacesSuppliedFieldsOnly(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, `{"id":"cus_1","object":"customer"}`)
	})

	_, err := g.UpdateCustomer(context.Background(), "cus_1", "New Name", &domain.Address{
		Line1:   "2 Side St",
		Country: "US",
	})
	require.NoError(t, err)

	form := rec.last().Form
	require.Equal(t, "New Name", form.Get("name"))
	require.Equal(t, "2 Side St", form.Get("address[line1]"))
	require.Empty(t, form.Get("address[city]"))
}

func TestDeleteVendorSecondCallSurfacesNotFound(t *testing.T) {
	deleted := false
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		if deleted {
			writeStripeError(w, http.StatusNotFound, "resource_missing", "No such account")
			return
		}
		deleted = true
		writeJSON(w, `{"id":"acct_1","object":"account","deleted":true}`)
	})

	_, err := g.DeleteVendor(context.Background(), "acct_1")
	require.NoError(t, err)

	_, err = g.DeleteVendor(context.Background(), "acct_1")
	require.Error(t, err)
}

func TestSetManualPayoutSchedule(t *testing.T) {
	g, rec := newTestGateway(t, accountHandler)

	_, err := g.SetManualPayoutSchedule(context.Background(), "acct_1")
	require.NoError(t, err)
	require.Equal(t, "manual", rec.last().Form.Get("settings[payouts][schedule][interval]"))
}

func TestUpdateBusinessType(t *testing.T) {
	g, rec := newTestGateway(t, accountHandler)

	_, err := g.UpdateBusinessType(context.Background(), "acct_1", "company")
	require.NoError(t, err)
	require.Equal(t, "company", rec.last().Form.Get("business_type"))
}
