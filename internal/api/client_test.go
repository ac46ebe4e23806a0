package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "gur@shop.test", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"user":    map[string]any{"id": "u1", "username": "gur", "email": "gur@shop.test", "isAdmin": true},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	user, msg, err := c.Login(context.Background(), "gur@shop.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", msg)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.IsAdmin)
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, _, err := c.Login(context.Background(), "gur@shop.test", "wrong")
	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.Equal(t, "Invalid credentials", statusErr.Error())
}

func TestProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "p1", "name": "Phone", "price": 10.0, "inventory": 2},
			{"_id": "p2", "name": "Monitor", "price": 249.99, "inventory": 5},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1000), products[0].PriceCents())
	assert.Equal(t, int64(24999), products[1].PriceCents())
}

func TestProductsFlightSurvivesCallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "p1", "name": "Phone", "price": 10.0, "inventory": 2},
		})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, time.Second)
	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestProductAverageRating(t *testing.T) {
	p := Product{Reviews: []Review{{Star: 5}, {Star: 4}, {Star: 3}}}
	assert.InDelta(t, 4.0, p.AverageRating(), 0.001)
	assert.Zero(t, Product{}.AverageRating())
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/create-checkout-session", r.URL.Path)
		var body struct {
			Items  []CheckoutItem `json:"items"`
			UserID string         `json:"userId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		require.Equal(t, "u1", body.UserID)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "cs_123", "url": "https://pay.example/cs_123", "orderId": "o1",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	session, err := c.CreateCheckoutSession(context.Background(), []CheckoutItem{
		{ID: "p1", Name: "Phone", Quantity: 2, Price: 10, Total: 20},
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "o1", session.OrderID)
}

func TestDeleteProduct(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	require.NoError(t, c.DeleteProduct(context.Background(), "p9"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/products/p9", gotPath)
}
