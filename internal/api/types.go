package api

import (
	"math"
	"time"
)

// Product is a catalog entry as the shop API returns it. Prices travel as
// dollar floats on the wire; PriceCents converts once at this boundary.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount,omitempty"`
	Inventory   int      `json:"inventory"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
}

// PriceCents is the integer-cents form used everywhere past the API boundary.
func (p Product) PriceCents() int64 {
	return int64(math.Round(p.Price * 100))
}

// AverageRating derives the star average from the attached reviews.
func (p Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var total int
	for _, r := range p.Reviews {
		total += r.Star
	}
	return float64(total) / float64(len(p.Reviews))
}

// Review is one product review.
type Review struct {
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	Star      int       `json:"star"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// User is the identity record auth and admin endpoints exchange.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AdminUser is a managed account row; Password is only set on create.
type AdminUser struct {
	ID       string `json:"_id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Profile is the editable account record.
type Profile struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`
}

// Order is a placed order with its line snapshot.
type Order struct {
	ID         string      `json:"_id"`
	UserID     string      `json:"userId,omitempty"`
	IsPaid     bool        `json:"isPaid"`
	TotalPrice float64     `json:"totalPrice"`
	CartItems  []OrderItem `json:"cartItems"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
	Price   float64 `json:"price"`
}

// CheckoutItem is a cart line as the payment endpoint expects it.
type CheckoutItem struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// CheckoutSession points at the provider's hosted checkout page.
type CheckoutSession struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
}
