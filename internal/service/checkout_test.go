package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurpreet/minishop/internal/api"
	"github.com/gurpreet/minishop/internal/config"
	"github.com/gurpreet/minishop/internal/storage"
	"github.com/gurpreet/minishop/internal/store"
)

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

func newCart(t *testing.T) *store.CartStore {
	t.Helper()
	st, err := storage.Open(config.StorageConfig{Backend: "file", Path: t.TempDir()})
	require.NoError(t, err)
	return store.NewCartStore(st.Slot(store.CartSlotName), nopNotifier{})
}

func TestStartRejectsEmptyCart(t *testing.T) {
	svc := &CheckoutService{API: api.New("http://unused.invalid", time.Second), Cart: newCart(t)}
	_, err := svc.Start(context.Background(), "u1")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestStartCreatesSessionAndKeepsCart(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t)
	require.True(t, cart.Add(ctx, store.Product{ID: "p1", Name: "Phone", PriceCents: 1000, Inventory: 5}, 2))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/create-checkout-session", r.URL.Path)
		var body struct {
			Items  []api.CheckoutItem `json:"items"`
			UserID string             `json:"userId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, 2, body.Items[0].Quantity)
		assert.InDelta(t, 10.0, body.Items[0].Price, 0.001)
		assert.InDelta(t, 20.0, body.Items[0].Total, 0.001)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "cs_1", "url": "https://pay.example/cs_1", "orderId": "o1"})
	}))
	defer srv.Close()

	svc := &CheckoutService{API: api.New(srv.URL, time.Second), Cart: cart}
	started, err := svc.Start(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", started.SessionID)
	assert.Equal(t, "o1", started.OrderID)
	// cart is untouched until the payment completes
	assert.Equal(t, 1, cart.Len())
}

func TestCompleteConfirmsOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t)
	require.True(t, cart.Add(ctx, store.Product{ID: "p1", Name: "Phone", PriceCents: 1000, Inventory: 5}, 1))

	var confirmed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/update-order", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cs_1", body["sessionId"])
		assert.Equal(t, "o1", body["orderId"])
		confirmed = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := &CheckoutService{API: api.New(srv.URL, time.Second), Cart: cart}
	require.NoError(t, svc.Complete(ctx, "cs_1", "o1"))
	assert.True(t, confirmed)
	assert.Zero(t, cart.Len())
}

func TestCompleteKeepsCartOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	cart := newCart(t)
	require.True(t, cart.Add(ctx, store.Product{ID: "p1", Name: "Phone", PriceCents: 1000, Inventory: 5}, 1))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := &CheckoutService{API: api.New(srv.URL, time.Second), Cart: cart}
	require.Error(t, svc.Complete(ctx, "cs_1", "o1"))
	assert.Equal(t, 1, cart.Len())
}
