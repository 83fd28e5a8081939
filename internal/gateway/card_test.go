package gateway

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListCardsAnnotatesDefault(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		switch r.Path {
		case "/v1/customers/cus_1/sources":
			writeJSON(w, `{"object":"list","url":"/v1/customers/cus_1/sources","has_more":false,"data":[
				{"id":"card_c1","object":"card","last4":"1111"},
				{"id":"card_c2","object":"card","last4":"2222"}
			]}`)
		case "/v1/customers/cus_1":
			writeJSON(w, `{"id":"cus_1","object":"customer","default_source":"card_c2"}`)
		default:
			http.NotFound(w, nil)
		}
	})

	cards, err := g.ListCards(context.Background(), "cus_1")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	defaults := map[string]bool{}
	for _, c := range cards {
		defaults[c.ID] = c.IsDefault
	}
	require.False(t, defaults["card_c1"])
	require.True(t, defaults["card_c2"])

	// two reads, no more
	require.Equal(t, 1, rec.count(http.MethodGet, "/v1/customers/cus_1/sources"))
	require.Equal(t, 1, rec.count(http.MethodGet, "/v1/customers/cus_1"))
}

func TestListCardsNoDefaultSource(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		switch r.Path {
		case "/v1/customers/cus_1/sources":
			writeJSON(w, `{"object":"list","url":"/v1/customers/cus_1/sources","has_more":false,"data":[
				{"id":"card_c1","object":"card"}
			]}`)
		case "/v1/customers/cus_1":
			writeJSON(w, `{"id":"cus_1","object":"customer"}`)
		default:
			http.NotFound(w, nil)
		}
	})

	cards, err := g.ListCards(context.Background(), "cus_1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.False(t, cards[0].IsDefault)
}

func TestAddCard(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, `{"id":"card_new","object":"card"}`)
	})

	c, err := g.AddCard(context.Background(), "cus_1", "tok_visa")
	require.NoError(t, err)
	require.Equal(t, "card_new", c.ID)

	last := rec.last()
	require.Equal(t, http.MethodPost, last.Method)
	require.Equal(t, "tok_visa", last.Form.Get("source"))
}

func TestSetDefaultCard(t *testing.T) {
	g, rec := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		writeJSON(w, `{"id":"cus_1","object":"customer","default_source":"card_c2"}`)
	})

	_, err := g.SetDefaultCard(context.Background(), "cus_1", "card_c2")
	require.NoError(t, err)

	last := rec.last()
	require.Equal(t, "/v1/customers/cus_1", last.Path)
	require.Equal(t, "card_c2", last.Form.Get("default_source"))
}

func TestCardValidation(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r recordedRequest) {
		t.Fatal("no remote call expected for invalid input")
	})

	_, err := g.AddCard(context.Background(), "", "tok_visa")
	require.Error(t, err)
	_, err = g.AddCard(context.Background(), "cus_1", "")
	require.Error(t, err)
	_, err = g.ListCards(context.Background(), "")
	require.Error(t, err)
}
