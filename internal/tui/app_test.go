package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurpreet/minishop/internal/api"
	"github.com/gurpreet/minishop/internal/config"
	"github.com/gurpreet/minishop/internal/service"
	"github.com/gurpreet/minishop/internal/storage"
	"github.com/gurpreet/minishop/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	st, err := storage.Open(config.StorageConfig{Backend: "file", Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	notifier := store.NewChannelNotifier(8)
	session := store.NewSessionStore(st.Slot(store.SessionSlotName))
	cart := store.NewCartStore(st.Slot(store.CartSlotName), notifier)
	client := api.New("http://unused.invalid", time.Second)
	return New(context.Background(), config.Config{}, client,
		Stores{Session: session, Cart: cart},
		Services{Checkout: &service.CheckoutService{API: client, Cart: cart}},
		notifier.C())
}

func TestFreshAppStartsAtLogin(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, viewLogin, a.view)
}

func TestLoginDoneAdoptsSessionAndLands(t *testing.T) {
	a := newTestApp(t)
	_, _ = a.Update(loginDoneMsg{user: api.User{ID: "u1", Username: "amrita", Email: "a@example.com"}})
	assert.Equal(t, viewHome, a.view)
	current := a.stores.Session.Current()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)

	b := newTestApp(t)
	_, _ = b.Update(loginDoneMsg{user: api.User{ID: "a1", IsAdmin: true}})
	assert.Equal(t, viewAdminProducts, b.view)
}

func TestSessionChangedLogoutRedirectsToLogin(t *testing.T) {
	a := newTestApp(t)
	a.view = viewShop
	_, _ = a.Update(SessionChanged{User: nil})
	assert.Equal(t, viewLogin, a.view)
}

func TestSessionChangedDemotionLeavesAdminViews(t *testing.T) {
	a := newTestApp(t)
	a.view = viewAdminUsers
	_, _ = a.Update(SessionChanged{User: &store.Identity{ID: "u1", IsAdmin: false}})
	assert.Equal(t, viewHome, a.view)
}

func TestProductsMsgPopulatesShopListing(t *testing.T) {
	a := newTestApp(t)
	_, _ = a.Update(productsMsg{
		{ID: "p1", Name: "Phone", Category: "Electronics", Price: 10},
		{ID: "p2", Name: "Mug", Category: "Kitchen", Price: 5},
	})
	assert.Len(t, a.filtered, 2)
	assert.Equal(t, []string{"Electronics", "Kitchen"}, a.categories)
}

func TestNotificationBecomesToast(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(notifMsg{Err: true, Text: "Cannot add more than 3 of Phone."})
	require.NotNil(t, cmd)
	require.NotNil(t, a.toast)
	assert.Equal(t, toastError, a.toast.kind)
	assert.Equal(t, "Cannot add more than 3 of Phone.", a.toast.text)
}

func TestStaleToastExpiryIsIgnored(t *testing.T) {
	a := newTestApp(t)
	_ = a.showToast(toastSuccess, "first")
	stale := a.toast.seq
	_ = a.showToast(toastSuccess, "second")

	_, _ = a.Update(toastExpiredMsg{seq: stale})
	require.NotNil(t, a.toast)
	assert.Equal(t, "second", a.toast.text)

	_, _ = a.Update(toastExpiredMsg{seq: a.toast.seq})
	assert.Nil(t, a.toast)
}

func TestCheckoutDoneClearsPendingAndReturnsToShop(t *testing.T) {
	a := newTestApp(t)
	a.pending = &service.CheckoutStart{SessionID: "cs_1", OrderID: "o1"}
	a.view = viewSuccess
	_, cmd := a.Update(checkoutDoneMsg{})
	assert.Nil(t, a.pending)
	assert.Equal(t, viewShop, a.view)
	require.NotNil(t, cmd)
	require.NotNil(t, a.toast)
	assert.Equal(t, toastSuccess, a.toast.kind)
}
