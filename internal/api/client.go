// Package api is the client for the remote shop API. The client owns no
// business logic: it shapes requests, decodes responses and reports non-2xx
// statuses as StatusError for the page views to surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// StatusError is a non-success response, carrying the server's message when
// one was provided.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client calls the remote shop API.
type Client struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do runs one JSON round trip. out may be nil when the body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &StatusError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// auth

// Login exchanges credentials for the identity record. The server message
// rides along for the success toast.
func (c *Client) Login(ctx context.Context, email, password string) (User, string, error) {
	var resp struct {
		Message string `json:"message"`
		User    User   `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return User{}, "", err
	}
	return resp.User, resp.Message, nil
}

func (c *Client) Signup(ctx context.Context, username, email, password string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email, newPassword string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email":       email,
		"newPassword": newPassword,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// catalog

// Products fetches the catalog. Concurrent callers share one in-flight
// request; the flight runs detached from the first caller's context so its
// cancellation cannot fail everyone it was collapsed with. The client
// timeout still bounds the request.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("products", func() (any, error) {
		var products []Product
		if err := c.do(flightCtx, http.MethodGet, "/api/products", nil, &products); err != nil {
			return nil, err
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Product), nil
}

func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("product:"+id, func() (any, error) {
		var p Product
		if err := c.do(flightCtx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &p); err != nil {
			return Product{}, err
		}
		return p, nil
	})
	if err != nil {
		return Product{}, err
	}
	return v.(Product), nil
}

func (c *Client) CreateProduct(ctx context.Context, p Product) error {
	return c.do(ctx, http.MethodPost, "/api/products", p, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, p Product) error {
	return c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(p.ID), p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// reviews

func (c *Client) AddReview(ctx context.Context, productID string, review Review) error {
	return c.do(ctx, http.MethodPost, "/api/reviews/"+url.PathEscape(productID)+"/reviews", review, nil)
}

// profile

func (c *Client) Profile(ctx context.Context, email string) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(email), nil, &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, profile Profile) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(profile.Email), profile, &p)
	return p, err
}

func (c *Client) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(email)+"/reset-password", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}, nil)
}

// orders

func (c *Client) UserOrders(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/api/orders/user/"+url.PathEscape(userID), nil, &orders)
	return orders, err
}

func (c *Client) AllOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders)
	return orders, err
}

// payment

func (c *Client) CreateCheckoutSession(ctx context.Context, items []CheckoutItem, userID string) (CheckoutSession, error) {
	var session CheckoutSession
	err := c.do(ctx, http.MethodPost, "/api/payment/create-checkout-session", map[string]any{
		"items":  items,
		"userId": userID,
	}, &session)
	return session, err
}

func (c *Client) UpdateOrder(ctx context.Context, sessionID, orderID string) error {
	return c.do(ctx, http.MethodPost, "/api/payment/update-order", map[string]string{
		"sessionId": sessionID,
		"orderId":   orderID,
	}, nil)
}

// admin users

func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	err := c.do(ctx, http.MethodGet, "/api/adminUsers/getAll", nil, &users)
	return users, err
}

func (c *Client) CreateUser(ctx context.Context, u AdminUser) (AdminUser, error) {
	var created AdminUser
	err := c.do(ctx, http.MethodPost, "/api/adminUsers/create", u, &created)
	return created, err
}

func (c *Client) UpdateUser(ctx context.Context, u AdminUser) error {
	return c.do(ctx, http.MethodPut, "/api/adminUsers/"+url.PathEscape(u.ID), u, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/adminUsers/"+url.PathEscape(id), nil, nil)
}
