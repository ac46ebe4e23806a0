package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gurpreet/minishop/internal/api"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	strongStyle = lipgloss.NewStyle().Bold(true)
)

func (a *App) View() string {
	var body string
	switch a.view {
	case viewLogin:
		body = a.renderLogin()
	case viewSignup:
		body = a.renderSignup()
	case viewForgot:
		body = a.renderForgot()
	case viewHome:
		body = a.renderHome()
	case viewShop:
		body = a.renderShop()
	case viewProduct:
		body = a.renderProduct()
	case viewCart:
		body = a.renderCart()
	case viewSuccess:
		body = a.renderSuccess()
	case viewOrders:
		body = a.renderOrders("My Orders")
	case viewAccount:
		body = a.renderAccount()
	case viewAdminProducts:
		body = a.renderAdminProducts()
	case viewAdminOrders:
		body = a.renderOrders("All Orders")
	case viewAdminUsers:
		body = a.renderAdminUsers()
	}
	if toast := a.renderToast(); toast != "" {
		body += "\n" + toast + "\n"
	}
	return body
}

func (a *App) money(cents int64) string {
	return fmt.Sprintf("%s%.2f", a.currency, float64(cents)/100)
}

func (a *App) moneyf(dollars float64) string {
	return fmt.Sprintf("%s%.2f", a.currency, dollars)
}

func legend(pairs ...string) string {
	return dimStyle.Render(strings.Join(pairs, "  "))
}

// auth

func (a *App) renderLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mini Shop / Sign In") + "\n\n")
	b.WriteString(a.loginForm.View())
	b.WriteString("\n" + legend("enter submit", "ctrl+s sign up", "ctrl+f forgot password", "esc quit") + "\n")
	return b.String()
}

func (a *App) renderSignup() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mini Shop / Create Account") + "\n\n")
	b.WriteString(a.signupForm.View())
	b.WriteString("\n" + legend("enter submit", "esc back to sign in") + "\n")
	return b.String()
}

func (a *App) renderForgot() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mini Shop / Forgot Password") + "\n\n")
	b.WriteString(a.forgotForm.View())
	b.WriteString("\n" + legend("enter submit", "esc back to sign in") + "\n")
	return b.String()
}

// shopper

func (a *App) renderHome() string {
	var b strings.Builder
	name := "there"
	if user := a.stores.Session.Current(); user != nil && user.Username != "" {
		name = user.Username
	}
	b.WriteString(titleStyle.Render("Mini Shop") + "\n\n")
	fmt.Fprintf(&b, "Welcome back, %s. Big sale going on, up to 50%% off!\n\n", name)
	featured := a.featured(6)
	if len(featured) > 0 {
		b.WriteString(strongStyle.Render("Featured products") + "\n")
		for _, p := range featured {
			fmt.Fprintf(&b, "  %-28s %10s  %s\n", clip(p.Name, 28), a.moneyf(p.Price), ratingLabel(p.AverageRating()))
		}
		b.WriteString("\n")
	}
	b.WriteString(legend("s shop", "c cart", "o orders", "m account", "l log out", "q quit") + "\n")
	return b.String()
}

// featured picks the highest rated products for the home page.
func (a *App) featured(n int) []api.Product {
	out := make([]api.Product, len(a.products))
	copy(out, a.products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageRating() > out[j].AverageRating()
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (a *App) renderShop() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Shop") + "\n\n")
	if a.searching {
		b.WriteString(a.searchInput.View() + "\n")
	} else if q := a.searchInput.Value(); q != "" {
		fmt.Fprintf(&b, "search: %q\n", q)
	}
	category := "all"
	if a.catIndex > 0 && a.catIndex <= len(a.categories) {
		category = a.categories[a.catIndex-1]
	}
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf("category: %s   price: %s", category, priceRanges[a.priceIndex].label)))
	if len(a.filtered) == 0 {
		b.WriteString("No products match.\n")
	}
	for i, p := range a.filtered {
		cursor := "  "
		if i == a.shopCursor {
			cursor = "▶ "
		}
		line := fmt.Sprintf("%s%-28s %10s  %-14s %s", cursor, clip(p.Name, 28), a.moneyf(p.Price), p.Category, stockLabel(p.Inventory))
		if i == a.shopCursor {
			line = strongStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + legend("enter details", "a add to cart", "/ search", "f category", "p price", "c cart", "h home", "q quit") + "\n")
	return b.String()
}

func (a *App) renderProduct() string {
	var b strings.Builder
	if a.product == nil {
		return "Loading...\n"
	}
	p := a.product
	b.WriteString(titleStyle.Render(p.Name) + "\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	fmt.Fprintf(&b, "Price:     %s\n", a.moneyf(p.Price))
	fmt.Fprintf(&b, "Category:  %s\n", p.Category)
	fmt.Fprintf(&b, "In stock:  %d\n", p.Inventory)
	fmt.Fprintf(&b, "Rating:    %s (%d reviews)\n", ratingLabel(p.AverageRating()), len(p.Reviews))
	fmt.Fprintf(&b, "\nQuantity:  %d\n", a.qty)
	if len(p.Reviews) > 0 {
		b.WriteString("\n" + strongStyle.Render("Reviews") + "\n")
		for _, r := range p.Reviews {
			fmt.Fprintf(&b, "  %s (%d/5): %s\n", r.Username, r.Star, r.Comment)
		}
	}
	if a.reviewOpen {
		b.WriteString("\n" + strongStyle.Render("Write a review") + "\n")
		fmt.Fprintf(&b, "Stars: %s\n", strings.Repeat("*", a.reviewStar))
		b.WriteString(a.reviewForm.View())
		b.WriteString("\n" + legend("left/right stars", "enter submit", "esc cancel") + "\n")
		return b.String()
	}
	b.WriteString("\n" + legend("a add to cart", "+/- quantity", "r review", "esc back", "c cart") + "\n")
	return b.String()
}

func (a *App) renderCart() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Cart") + "\n\n")
	lines := a.stores.Cart.Lines()
	if len(lines) == 0 {
		b.WriteString("Your cart is empty.\n")
		b.WriteString("\n" + legend("s shop", "esc back", "q quit") + "\n")
		return b.String()
	}
	for i, l := range lines {
		cursor := "  "
		if i == a.cartCursor {
			cursor = "▶ "
		}
		row := fmt.Sprintf("%s%-28s %3d x %10s = %10s", cursor, clip(l.Name, 28), l.Quantity, a.money(l.PriceCents), a.money(l.TotalCents))
		if i == a.cartCursor {
			row = strongStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	fmt.Fprintf(&b, "\n%s %s\n", strongStyle.Render("Subtotal:"), a.money(a.stores.Cart.SubtotalCents()))
	b.WriteString("\n" + legend("+/- quantity", "x remove", "enter checkout", "esc back") + "\n")
	return b.String()
}

func (a *App) renderSuccess() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Checkout") + "\n\n")
	if a.pending == nil {
		b.WriteString("No payment in progress.\n")
		return b.String()
	}
	b.WriteString("Complete your payment in the browser:\n\n")
	b.WriteString("  " + a.pending.URL + "\n\n")
	fmt.Fprintf(&b, "Order %s is waiting for confirmation.\n", a.pending.OrderID)
	b.WriteString("\n" + legend("enter confirm payment", "esc back to cart") + "\n")
	return b.String()
}

func (a *App) renderOrders(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	if len(a.orders) == 0 {
		b.WriteString("No orders yet.\n")
	}
	for _, o := range a.orders {
		status := "pending"
		if o.IsPaid {
			status = "paid"
		}
		items := 0
		for _, it := range o.CartItems {
			items += it.Qty
		}
		fmt.Fprintf(&b, "  %-26s %-8s %3d items %12s\n", o.ID, status, items, a.moneyf(o.TotalPrice))
	}
	b.WriteString("\n" + legend("esc back", "q quit") + "\n")
	return b.String()
}

func (a *App) renderAccount() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Account") + "\n\n")
	tabs := []string{"Personal Info", "Change Password"}
	for i, tab := range tabs {
		if i == a.accountTab {
			b.WriteString(strongStyle.Render("[" + tab + "]"))
		} else {
			b.WriteString(dimStyle.Render(" " + tab + " "))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
	if a.accountTab == 0 {
		b.WriteString(a.profileForm.View())
	} else {
		b.WriteString(a.passwordForm.View())
	}
	b.WriteString("\n" + legend("ctrl+t switch tab", "enter save", "esc home") + "\n")
	return b.String()
}

// admin

func (a *App) renderAdminProducts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin / Products") + "\n\n")
	if a.productFormOpen {
		header := "Edit product"
		if a.editingProductID == "" {
			header = "New product"
		}
		b.WriteString(strongStyle.Render(header) + "\n\n")
		b.WriteString(a.productForm.View())
		b.WriteString("\n" + legend("enter save", "esc cancel") + "\n")
		return b.String()
	}
	if len(a.products) == 0 {
		b.WriteString("No products.\n")
	}
	for i, p := range a.products {
		cursor := "  "
		if i == a.adminCursor {
			cursor = "▶ "
		}
		row := fmt.Sprintf("%s%-28s %10s  %-14s stock %d", cursor, clip(p.Name, 28), a.moneyf(p.Price), p.Category, p.Inventory)
		if i == a.adminCursor {
			row = strongStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + legend("n new", "enter edit", "x delete", "o orders", "u users", "l log out", "q quit") + "\n")
	return b.String()
}

func (a *App) renderAdminUsers() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin / Users") + "\n\n")
	if a.userFormOpen {
		header := "Edit user"
		if a.editingUserID == "" {
			header = "New user"
		}
		b.WriteString(strongStyle.Render(header) + "\n\n")
		b.WriteString(a.userForm.View())
		role := "shopper"
		if a.userIsAdmin {
			role = "admin"
		}
		fmt.Fprintf(&b, "%-18s %s\n", "Role:", role)
		b.WriteString("\n" + legend("ctrl+a toggle role", "enter save", "esc cancel") + "\n")
		return b.String()
	}
	if len(a.users) == 0 {
		b.WriteString("No users.\n")
	}
	for i, u := range a.users {
		cursor := "  "
		if i == a.userCursor {
			cursor = "▶ "
		}
		role := "shopper"
		if u.IsAdmin {
			role = "admin"
		}
		row := fmt.Sprintf("%s%-20s %-30s %s", cursor, clip(u.Username, 20), clip(u.Email, 30), role)
		if i == a.userCursor {
			row = strongStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + legend("n new", "enter edit", "x delete", "p products", "o orders", "l log out", "q quit") + "\n")
	return b.String()
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}

func stockLabel(inventory int) string {
	if inventory <= 0 {
		return "out of stock"
	}
	return fmt.Sprintf("stock %d", inventory)
}

func ratingLabel(avg float64) string {
	if avg == 0 {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/5", avg)
}
