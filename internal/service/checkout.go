package service

import (
	"context"
	"errors"

	"github.com/gurpreet/minishop/internal/api"
	"github.com/gurpreet/minishop/internal/store"
)

// ErrEmptyCart rejects checkout before any remote call is made.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService drives the two-phase checkout contract: Start creates the
// payment session against the current cart (the cart stays intact so a
// failed or abandoned payment can be retried), Complete confirms the order
// after the hosted payment page redirects back and only then clears the cart.
type CheckoutService struct {
	API  *api.Client
	Cart *store.CartStore
}

// CheckoutStart is everything the UI needs to hand the user to the provider.
type CheckoutStart struct {
	SessionID string
	OrderID   string
	URL       string
}

func (s *CheckoutService) Start(ctx context.Context, userID string) (CheckoutStart, error) {
	lines := s.Cart.Lines()
	if len(lines) == 0 {
		return CheckoutStart{}, ErrEmptyCart
	}
	items := make([]api.CheckoutItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, api.CheckoutItem{
			ID:       l.ProductID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    float64(l.PriceCents) / 100,
			Total:    float64(l.TotalCents) / 100,
		})
	}
	session, err := s.API.CreateCheckoutSession(ctx, items, userID)
	if err != nil {
		return CheckoutStart{}, err
	}
	return CheckoutStart{SessionID: session.ID, OrderID: session.OrderID, URL: session.URL}, nil
}

func (s *CheckoutService) Complete(ctx context.Context, sessionID, orderID string) error {
	if err := s.API.UpdateOrder(ctx, sessionID, orderID); err != nil {
		return err
	}
	s.Cart.Clear(ctx)
	return nil
}
