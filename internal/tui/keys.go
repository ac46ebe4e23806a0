package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurpreet/minishop/internal/api"
)

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.view {
	case viewLogin:
		return a.loginKeys(m)
	case viewSignup:
		return a.signupKeys(m)
	case viewForgot:
		return a.forgotKeys(m)
	case viewHome:
		return a.homeKeys(m)
	case viewShop:
		return a.shopKeys(m)
	case viewProduct:
		return a.productKeys(m)
	case viewCart:
		return a.cartKeys(m)
	case viewSuccess:
		return a.successKeys(m)
	case viewOrders:
		return a.ordersKeys(m)
	case viewAccount:
		return a.accountKeys(m)
	case viewAdminProducts:
		return a.adminProductKeys(m)
	case viewAdminOrders:
		return a.adminOrderKeys(m)
	case viewAdminUsers:
		return a.adminUserKeys(m)
	}
	return a, nil
}

// shopperNav handles the keys shared by every signed-in shopper view.
func (a *App) shopperNav(key string) (tea.Cmd, bool) {
	switch key {
	case "h":
		return a.navigate(viewHome), true
	case "s":
		return a.navigate(viewShop), true
	case "c":
		return a.navigate(viewCart), true
	case "o":
		return a.navigate(viewOrders), true
	case "m":
		return a.navigate(viewAccount), true
	case "l":
		return a.logout(), true
	case "q":
		return tea.Quit, true
	}
	return nil, false
}

// adminNav handles the keys shared by the admin views.
func (a *App) adminNav(key string) (tea.Cmd, bool) {
	switch key {
	case "p":
		return a.navigate(viewAdminProducts), true
	case "o":
		return a.navigate(viewAdminOrders), true
	case "u":
		return a.navigate(viewAdminUsers), true
	case "l":
		return a.logout(), true
	case "q":
		return tea.Quit, true
	}
	return nil, false
}

func (a *App) logout() tea.Cmd {
	if err := a.stores.Session.Logout(a.ctx); err != nil {
		return a.showToast(toastError, "Failed to clear session: "+err.Error())
	}
	a.view = viewLogin
	a.resetAuthForms()
	return a.showToast(toastSuccess, "Logged out.")
}

// auth views

func (a *App) loginKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.loginForm.Next()
	case "shift+tab", "up":
		a.loginForm.Prev()
	case "enter":
		if !a.loginForm.AtLast() {
			a.loginForm.Next()
			return a, nil
		}
		email, password := a.loginForm.Value(0), a.loginForm.Value(1)
		if email == "" || password == "" {
			return a, a.showToast(toastError, "Email and password are required.")
		}
		return a, a.loginCmd(email, password)
	case "ctrl+s":
		a.view = viewSignup
	case "ctrl+f":
		a.view = viewForgot
	case "esc":
		return a, tea.Quit
	default:
		return a, a.loginForm.Update(m)
	}
	return a, nil
}

func (a *App) signupKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.signupForm.Next()
	case "shift+tab", "up":
		a.signupForm.Prev()
	case "enter":
		if !a.signupForm.AtLast() {
			a.signupForm.Next()
			return a, nil
		}
		username := a.signupForm.Value(0)
		email := a.signupForm.Value(1)
		password := a.signupForm.Value(2)
		if username == "" || email == "" || password == "" {
			return a, a.showToast(toastError, "All fields are required.")
		}
		if password != a.signupForm.Value(3) {
			return a, a.showToast(toastError, "Passwords do not match.")
		}
		return a, a.signupCmd(username, email, password)
	case "esc":
		a.view = viewLogin
	default:
		return a, a.signupForm.Update(m)
	}
	return a, nil
}

func (a *App) forgotKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.forgotForm.Next()
	case "shift+tab", "up":
		a.forgotForm.Prev()
	case "enter":
		if !a.forgotForm.AtLast() {
			a.forgotForm.Next()
			return a, nil
		}
		email, newPassword := a.forgotForm.Value(0), a.forgotForm.Value(1)
		if email == "" || newPassword == "" {
			return a, a.showToast(toastError, "Email and new password are required.")
		}
		return a, a.forgotCmd(email, newPassword)
	case "esc":
		a.view = viewLogin
	default:
		return a, a.forgotForm.Update(m)
	}
	return a, nil
}

// shopper views

func (a *App) homeKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "enter" {
		return a, a.navigate(viewShop)
	}
	if cmd, ok := a.shopperNav(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) shopKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		switch m.String() {
		case "enter", "esc":
			a.searching = false
			a.searchInput.Blur()
			a.applyFilter()
		default:
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(m)
			a.applyFilter()
			return a, cmd
		}
		return a, nil
	}
	switch m.String() {
	case "up", "k":
		if a.shopCursor > 0 {
			a.shopCursor--
		}
	case "down", "j":
		if a.shopCursor < len(a.filtered)-1 {
			a.shopCursor++
		}
	case "/":
		a.searching = true
		return a, a.searchInput.Focus()
	case "f":
		a.catIndex = (a.catIndex + 1) % (len(a.categories) + 1)
		a.applyFilter()
	case "p":
		a.priceIndex = (a.priceIndex + 1) % len(priceRanges)
		a.applyFilter()
	case "a":
		if len(a.filtered) > 0 {
			p := a.filtered[a.shopCursor]
			if a.stores.Cart.Add(a.ctx, cartSnapshot(p), 1) {
				return a, a.showToast(toastSuccess, p.Name+" added to cart.")
			}
		}
	case "enter":
		if len(a.filtered) > 0 {
			p := a.filtered[a.shopCursor]
			a.view = viewProduct
			a.qty = 1
			a.reviewOpen = false
			a.product = &p
			return a, a.loadProduct(p.ID)
		}
	default:
		if cmd, ok := a.shopperNav(m.String()); ok {
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) productKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.reviewOpen {
		switch m.String() {
		case "esc":
			a.reviewOpen = false
		case "tab", "down":
			a.reviewForm.Next()
		case "shift+tab", "up":
			a.reviewForm.Prev()
		case "left":
			if a.reviewStar > 1 {
				a.reviewStar--
			}
		case "right":
			if a.reviewStar < 5 {
				a.reviewStar++
			}
		case "enter":
			comment := a.reviewForm.Value(0)
			if comment == "" {
				return a, a.showToast(toastError, "Write a comment first.")
			}
			user := a.stores.Session.Current()
			if user == nil || a.product == nil {
				return a, nil
			}
			return a, a.addReviewCmd(a.product.ID, api.Review{
				Username: user.Username,
				Comment:  comment,
				Star:     a.reviewStar,
			})
		default:
			return a, a.reviewForm.Update(m)
		}
		return a, nil
	}
	switch m.String() {
	case "esc":
		return a, a.navigate(viewShop)
	case "+", "=":
		if a.product != nil && a.qty < a.product.Inventory {
			a.qty++
		}
	case "-":
		if a.qty > 1 {
			a.qty--
		}
	case "a", "enter":
		if a.product != nil {
			if a.stores.Cart.Add(a.ctx, cartSnapshot(*a.product), a.qty) {
				return a, a.showToast(toastSuccess, fmt.Sprintf("%d x %s added to cart.", a.qty, a.product.Name))
			}
		}
	case "r":
		a.reviewOpen = true
		a.reviewStar = 5
		a.reviewForm = newForm(field{label: "Comment", placeholder: "what did you think?"})
	default:
		if cmd, ok := a.shopperNav(m.String()); ok {
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) cartKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := a.stores.Cart.Lines()
	switch m.String() {
	case "up", "k":
		if a.cartCursor > 0 {
			a.cartCursor--
		}
	case "down", "j":
		if a.cartCursor < len(lines)-1 {
			a.cartCursor++
		}
	case "+", "=":
		if a.cartCursor < len(lines) {
			a.stores.Cart.Increment(a.ctx, lines[a.cartCursor].ProductID)
		}
	case "-":
		if a.cartCursor < len(lines) {
			a.stores.Cart.Decrement(a.ctx, lines[a.cartCursor].ProductID)
		}
	case "x":
		if a.cartCursor < len(lines) {
			a.stores.Cart.Remove(a.ctx, lines[a.cartCursor].ProductID)
			if a.cartCursor > 0 {
				a.cartCursor--
			}
		}
	case "enter":
		user := a.stores.Session.Current()
		if user == nil {
			return a, nil
		}
		if a.stores.Cart.Len() == 0 {
			return a, a.showToast(toastError, "Your cart is empty.")
		}
		return a, a.startCheckoutCmd(user.ID)
	case "esc":
		return a, a.navigate(viewShop)
	default:
		if cmd, ok := a.shopperNav(m.String()); ok {
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) successKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		if a.pending != nil {
			return a, a.completeCheckoutCmd(a.pending.SessionID, a.pending.OrderID)
		}
	case "esc":
		// abandon confirmation; the session can be retried from the cart
		a.pending = nil
		return a, a.navigate(viewCart)
	}
	return a, nil
}

func (a *App) ordersKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "esc" {
		return a, a.navigate(viewHome)
	}
	if cmd, ok := a.shopperNav(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) accountKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &a.profileForm
	if a.accountTab == 1 {
		f = &a.passwordForm
	}
	switch m.String() {
	case "esc":
		return a, a.navigate(viewHome)
	case "ctrl+t":
		a.accountTab = 1 - a.accountTab
	case "tab", "down":
		f.Next()
	case "shift+tab", "up":
		f.Prev()
	case "enter":
		if !f.AtLast() {
			f.Next()
			return a, nil
		}
		if a.accountTab == 0 {
			p := a.profile
			p.FirstName = f.Value(1)
			p.LastName = f.Value(2)
			p.Phone = f.Value(3)
			p.Country = f.Value(4)
			p.Address = f.Value(5)
			p.City = f.Value(6)
			p.ZipCode = f.Value(7)
			return a, a.saveProfileCmd(p)
		}
		oldPassword, newPassword := f.Value(0), f.Value(1)
		if newPassword == "" || newPassword != f.Value(2) {
			return a, a.showToast(toastError, "Passwords do not match.")
		}
		user := a.stores.Session.Current()
		if user == nil {
			return a, nil
		}
		return a, a.changePasswordCmd(user.Email, oldPassword, newPassword)
	default:
		return a, f.Update(m)
	}
	return a, nil
}

// admin views

func (a *App) adminProductKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.productFormOpen {
		switch m.String() {
		case "esc":
			a.productFormOpen = false
		case "tab", "down":
			a.productForm.Next()
		case "shift+tab", "up":
			a.productForm.Prev()
		case "enter":
			if !a.productForm.AtLast() {
				a.productForm.Next()
				return a, nil
			}
			name := a.productForm.Value(0)
			if name == "" {
				return a, a.showToast(toastError, "Name is required.")
			}
			price, err := strconv.ParseFloat(a.productForm.Value(2), 64)
			if err != nil || price < 0 {
				return a, a.showToast(toastError, "Enter a valid price.")
			}
			inventory, err := strconv.Atoi(a.productForm.Value(5))
			if err != nil || inventory < 0 {
				return a, a.showToast(toastError, "Enter a valid inventory count.")
			}
			p := api.Product{
				ID:          a.editingProductID,
				Name:        name,
				Description: a.productForm.Value(1),
				Price:       price,
				Category:    a.productForm.Value(3),
				Image:       a.productForm.Value(4),
				Inventory:   inventory,
			}
			return a, a.saveProductCmd(p, a.editingProductID == "")
		default:
			return a, a.productForm.Update(m)
		}
		return a, nil
	}
	switch m.String() {
	case "up", "k":
		if a.adminCursor > 0 {
			a.adminCursor--
		}
	case "down", "j":
		if a.adminCursor < len(a.products)-1 {
			a.adminCursor++
		}
	case "n":
		a.editingProductID = ""
		a.productForm = newProductForm(nil)
		a.productFormOpen = true
	case "enter", "e":
		if len(a.products) > 0 {
			p := a.products[a.adminCursor]
			a.editingProductID = p.ID
			a.productForm = newProductForm(&p)
			a.productFormOpen = true
		}
	case "x":
		if len(a.products) > 0 {
			return a, a.deleteProductCmd(a.products[a.adminCursor].ID)
		}
	default:
		if cmd, ok := a.adminNav(m.String()); ok {
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) adminOrderKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.adminNav(m.String()); ok {
		return a, cmd
	}
	return a, nil
}

func (a *App) adminUserKeys(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.userFormOpen {
		switch m.String() {
		case "esc":
			a.userFormOpen = false
		case "tab", "down":
			a.userForm.Next()
		case "shift+tab", "up":
			a.userForm.Prev()
		case "ctrl+a":
			a.userIsAdmin = !a.userIsAdmin
		case "enter":
			if !a.userForm.AtLast() {
				a.userForm.Next()
				return a, nil
			}
			username, email := a.userForm.Value(0), a.userForm.Value(1)
			if username == "" || email == "" {
				return a, a.showToast(toastError, "Username and email are required.")
			}
			u := api.AdminUser{
				ID:       a.editingUserID,
				Username: username,
				Email:    email,
				IsAdmin:  a.userIsAdmin,
			}
			creating := a.editingUserID == ""
			if creating {
				u.Password = a.userForm.Value(2)
				if u.Password == "" {
					return a, a.showToast(toastError, "Password is required.")
				}
			}
			return a, a.saveUserCmd(u, creating)
		default:
			return a, a.userForm.Update(m)
		}
		return a, nil
	}
	switch m.String() {
	case "up", "k":
		if a.userCursor > 0 {
			a.userCursor--
		}
	case "down", "j":
		if a.userCursor < len(a.users)-1 {
			a.userCursor++
		}
	case "n":
		a.editingUserID = ""
		a.userIsAdmin = false
		a.userForm = newUserForm(nil)
		a.userFormOpen = true
	case "enter", "e":
		if len(a.users) > 0 {
			u := a.users[a.userCursor]
			a.editingUserID = u.ID
			a.userIsAdmin = u.IsAdmin
			a.userForm = newUserForm(&u)
			a.userFormOpen = true
		}
	case "x":
		if len(a.users) > 0 {
			return a, a.deleteUserCmd(a.users[a.userCursor].ID)
		}
	default:
		if cmd, ok := a.adminNav(m.String()); ok {
			return a, cmd
		}
	}
	return a, nil
}
