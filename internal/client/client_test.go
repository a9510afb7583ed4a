package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-ordering/internal/configurator"
)

const pizzaJSON = `{
  "id": "pizza",
  "categoryId": "cat-1",
  "name": "Margherita",
  "description": "",
  "imageUrl": "",
  "basePrice": 50,
  "isActive": true,
  "typesWithOptions": [
    {"id": "size", "name": "Size", "canSelectMultipleOptions": false, "isSelectionRequired": true,
     "menuItemOptions": [{"id": "small", "name": "Small", "price": 0}, {"id": "large", "name": "Large", "price": 10}]},
    {"id": "extras", "name": "Extras", "canSelectMultipleOptions": true, "isSelectionRequired": false,
     "menuItemOptions": [{"id": "basil", "name": "Basil", "price": "1.50"}, {"id": "truffle", "name": "Truffle", "price": 12, "isActive": false}]}
  ],
  "itemOffer": {"isEnabled": true, "isPercentage": false, "discountValue": 5}
}`

type fakeAPI struct {
	t          *testing.T
	category   string
	addStatus  int
	submission configurator.CartSubmission
	authHeader string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/menu-items/pizza", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, pizzaJSON)
	})
	mux.HandleFunc("/categories/cat-1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, f.category)
	})
	mux.HandleFunc("/carts/cart-1/line-items", func(w http.ResponseWriter, r *http.Request) {
		f.authHeader = r.Header.Get("Authorization")
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&f.submission))
		if f.addStatus != 0 {
			w.WriteHeader(f.addStatus)
			_, _ = io.WriteString(w, `{"error":"invalid selection","missingRequired":["Size"]}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"cart-1","customerId":"c","currency":"EUR","cartState":"active","totalPrice":55,"lineItems":[]}`)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"access_token":"tok-123","token_type":"Bearer","expires_in":60}`)
	})
	return mux
}

func newFake(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{t: t, category: `{"id":"cat-1","isActive":true}`}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, srv
}

func TestFetchMenuItem_ConvertsContract(t *testing.T) {
	_, srv := newFake(t)
	c := New(srv.URL)

	item, err := c.FetchMenuItem(context.Background(), "pizza")
	require.NoError(t, err)

	assert.Equal(t, "Margherita", item.Name)
	assert.Equal(t, "50", item.BasePrice.String())
	require.Len(t, item.AddonTypes, 2)
	assert.Equal(t, "Size", item.AddonTypes[0].Title)
	assert.True(t, item.AddonTypes[0].IsSelectionRequired)
	assert.True(t, item.AddonTypes[1].AllowsMultipleOptions)
	assert.Equal(t, "1.5", item.AddonTypes[1].Options[0].PriceDelta.String())
	assert.True(t, item.AddonTypes[1].Options[0].IsActive, "missing isActive means active")
	assert.False(t, item.AddonTypes[1].Options[1].IsActive)
	assert.True(t, item.IsAvailable)
	assert.False(t, item.IsPriceBasedOnRequest)
	require.NotNil(t, item.Offer)
	assert.Equal(t, "5", item.Offer.DiscountValue.String())
}

func TestFetchMenuItem_NotFound(t *testing.T) {
	_, srv := newFake(t)
	c := New(srv.URL)

	_, err := c.FetchMenuItem(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	var upstream *UpstreamRequestError
	require.ErrorAs(t, err, &upstream)
	assert.True(t, upstream.NotFound())
}

func TestOrderable_UsesCategoryState(t *testing.T) {
	f, srv := newFake(t)
	c := New(srv.URL)
	ctx := context.Background()
	item, err := c.FetchMenuItem(ctx, "pizza")
	require.NoError(t, err)

	ok, err := c.Orderable(ctx, *item)
	require.NoError(t, err)
	assert.True(t, ok)

	f.category = `{"id":"cat-1","isActive":false}`
	ok, err = c.Orderable(ctx, *item)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionSubmitThroughClient(t *testing.T) {
	f, srv := newFake(t)
	c := New(srv.URL, WithToken("secret"))
	ctx := context.Background()
	item, err := c.FetchMenuItem(ctx, "pizza")
	require.NoError(t, err)

	session := configurator.NewSession(configurator.NewCatalog(*item))
	require.NoError(t, session.Toggle("size", "large"))
	require.NoError(t, session.Toggle("extras", "basil"))
	require.NoError(t, session.SetNote("extra crispy"))
	assert.Equal(t, "56.5", configurator.ComputeTotal(session.Catalog(), session.Selection()).String())

	require.NoError(t, session.Submit(ctx, c.CartSubmitter("cart-1")))

	assert.Equal(t, configurator.StateCommitted, session.State())
	assert.Equal(t, "Bearer secret", f.authHeader)
	assert.Equal(t, "pizza", f.submission.MenuItemID)
	assert.Equal(t, []string{"large", "basil"}, f.submission.Options)
	assert.Equal(t, "extra crispy", f.submission.Note)
	assert.Equal(t, 1, f.submission.Quantity)
}

func TestSessionSubmitFailureKeepsSelection(t *testing.T) {
	f, srv := newFake(t)
	f.addStatus = http.StatusBadRequest
	c := New(srv.URL)
	ctx := context.Background()
	item, err := c.FetchMenuItem(ctx, "pizza")
	require.NoError(t, err)

	session := configurator.NewSession(configurator.NewCatalog(*item))
	require.NoError(t, session.Toggle("size", "small"))

	err = session.Submit(ctx, c.CartSubmitter("cart-1"))
	require.Error(t, err)

	var subErr *configurator.SubmissionError
	require.ErrorAs(t, err, &subErr)
	var upstream *UpstreamRequestError
	require.True(t, errors.As(err, &upstream))
	require.NotNil(t, upstream.Detail)
	assert.Equal(t, []string{"Size"}, upstream.Detail.MissingRequired)
	assert.Equal(t, configurator.StateFailed, session.State())
	assert.True(t, session.Selection().IsSelected("size", "small"))
}

func TestLoginStoresToken(t *testing.T) {
	f, srv := newFake(t)
	c := New(srv.URL)
	ctx := context.Background()

	token, err := c.Login(ctx, "a@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	_, err = c.AddToCart(ctx, "cart-1", configurator.CartSubmission{MenuItemID: "pizza", Quantity: 1, Options: []string{"small"}})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", f.authHeader)
}

func TestUpstreamRequestError_Message(t *testing.T) {
	err := &UpstreamRequestError{Method: "GET", URL: "http://x/menu-items/1", StatusCode: 500, Body: "boom\n  failed"}
	assert.Equal(t, `ordering api request failed; status=500; GET http://x/menu-items/1; body="boom failed"`, err.Error())
}
