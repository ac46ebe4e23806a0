// Package tui is the storefront's page layer: one Bubble Tea model whose
// views mirror the shop's pages, gated by the route guard and backed by the
// session and cart stores.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurpreet/minishop/internal/api"
	"github.com/gurpreet/minishop/internal/config"
	"github.com/gurpreet/minishop/internal/service"
	"github.com/gurpreet/minishop/internal/store"
)

type view string

const (
	viewLogin   view = "login"
	viewSignup  view = "signup"
	viewForgot  view = "forgot"
	viewHome    view = "home"
	viewShop    view = "shop"
	viewProduct view = "product"
	viewCart    view = "cart"
	viewSuccess view = "success"
	viewAccount view = "account"
	viewOrders  view = "orders"

	viewAdminProducts view = "adminProducts"
	viewAdminOrders   view = "adminOrders"
	viewAdminUsers    view = "adminUsers"
)

// SessionChanged is sent into the program when the session store notifies a
// change, including ones adopted from another process.
type SessionChanged struct{ User *store.Identity }

type Stores struct {
	Session *store.SessionStore
	Cart    *store.CartStore
}

type Services struct {
	Checkout *service.CheckoutService
}

// price range presets for the shop filter.
var priceRanges = []struct {
	label    string
	min, max int64
}{
	{"any price", 0, 0},
	{"under $50", 0, 5000},
	{"$50 to $250", 5000, 25000},
	{"over $250", 25000, 0},
}

// App ties together views.
type App struct {
	ctx           context.Context
	cfg           config.Config
	api           *api.Client
	stores        Stores
	services      Services
	notifications <-chan store.Notification

	view     view
	currency string

	// catalog
	products    []api.Product
	filtered    []api.Product
	shopCursor  int
	searchInput textinput.Model
	searching   bool
	categories  []string
	catIndex    int // 0 = all categories
	priceIndex  int

	// product detail
	product    *api.Product
	qty        int
	reviewOpen bool
	reviewForm form
	reviewStar int

	// cart / checkout
	cartCursor int
	pending    *service.CheckoutStart

	// auth forms
	loginForm  form
	signupForm form
	forgotForm form

	// account
	accountTab   int // 0 personal info, 1 change password
	profile      api.Profile
	profileForm  form
	passwordForm form

	// orders
	orders []api.Order

	// admin: product management
	adminCursor      int
	productFormOpen  bool
	productForm      form
	editingProductID string

	// admin: user management
	users         []api.AdminUser
	userCursor    int
	userFormOpen  bool
	userForm      form
	editingUserID string
	userIsAdmin   bool

	toast    *toastModel
	toastSeq int
}

func New(ctx context.Context, cfg config.Config, client *api.Client, stores Stores, services Services, notifications <-chan store.Notification) *App {
	a := &App{
		ctx:           ctx,
		cfg:           cfg,
		api:           client,
		stores:        stores,
		services:      services,
		notifications: notifications,
		currency:      cfg.UI.CurrencySymbol,
		qty:           1,
		reviewStar:    5,
	}
	if a.currency == "" {
		a.currency = "$"
	}
	a.searchInput = textinput.New()
	a.searchInput.Prompt = "/"
	a.searchInput.Placeholder = "search products"
	a.searchInput.CharLimit = 64
	a.resetAuthForms()
	a.view = landing(stores.Session.Current())
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.listenNotifications(), textinput.Blink}
	if cmd := a.entryCmd(a.view); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// entryCmd loads whatever the view shows on entry.
func (a *App) entryCmd(v view) tea.Cmd {
	switch v {
	case viewHome, viewShop, viewAdminProducts:
		return a.loadProducts()
	case viewOrders:
		return a.loadOrders()
	case viewAdminOrders:
		return a.loadAllOrders()
	case viewAdminUsers:
		return a.loadUsers()
	case viewAccount:
		return a.loadProfile()
	}
	return nil
}

// navigate runs the guard and switches to the resolved view.
func (a *App) navigate(v view) tea.Cmd {
	target, _ := Resolve(v, a.stores.Session.Current())
	a.view = target
	if target == viewLogin {
		a.resetAuthForms()
	}
	return a.entryCmd(target)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)

	case SessionChanged:
		// re-run the guard for the current view; a logout in another
		// process lands here too.
		if target, redirected := Resolve(a.view, m.User); redirected {
			a.view = target
			if target == viewLogin {
				a.resetAuthForms()
			}
			return a, a.entryCmd(target)
		}

	case notifMsg:
		kind := toastSuccess
		if m.Err {
			kind = toastError
		}
		return a, tea.Batch(a.showToast(kind, m.Text), a.listenNotifications())

	case toastExpiredMsg:
		if a.toast != nil && a.toast.seq == m.seq {
			a.toast = nil
		}

	case productsMsg:
		a.products = []api.Product(m)
		a.categories = service.Categories(a.products)
		if a.catIndex > len(a.categories) {
			a.catIndex = 0
		}
		a.applyFilter()
		if a.adminCursor >= len(a.products) {
			a.adminCursor = 0
		}

	case productMsg:
		p := api.Product(m)
		a.product = &p

	case loginDoneMsg:
		identity := store.Identity{ID: m.user.ID, Username: m.user.Username, Email: m.user.Email, IsAdmin: m.user.IsAdmin}
		if err := a.stores.Session.Login(a.ctx, identity); err != nil {
			return a, a.showToast(toastError, "Failed to save session: "+err.Error())
		}
		a.view = landing(&identity)
		text := m.message
		if text == "" {
			text = "Login successful."
		}
		return a, tea.Batch(a.showToast(toastSuccess, text), a.entryCmd(a.view))

	case signupDoneMsg:
		a.view = viewLogin
		a.resetAuthForms()
		text := string(m)
		if text == "" {
			text = "Account created."
		}
		return a, a.showToast(toastSuccess, text)

	case forgotDoneMsg:
		a.view = viewLogin
		a.resetAuthForms()
		text := string(m)
		if text == "" {
			text = "Password updated."
		}
		return a, a.showToast(toastSuccess, text)

	case ordersMsg:
		a.orders = []api.Order(m)

	case usersMsg:
		a.users = []api.AdminUser(m)
		if a.userCursor >= len(a.users) {
			a.userCursor = 0
		}

	case profileMsg:
		a.profile = api.Profile(m)
		a.profileForm = profileFormFrom(a.profile)

	case profileSavedMsg:
		a.profile = api.Profile(m)
		a.profileForm = profileFormFrom(a.profile)
		return a, a.showToast(toastSuccess, "Profile updated successfully")

	case passwordChangedMsg:
		a.passwordForm = newPasswordForm()
		return a, a.showToast(toastSuccess, "Password updated successfully")

	case reviewDoneMsg:
		a.reviewOpen = false
		return a, tea.Batch(a.showToast(toastSuccess, "Review added successfully!"), a.loadProduct(string(m)))

	case productSavedMsg:
		a.productFormOpen = false
		text := "Product updated successfully!"
		if m.created {
			text = "Product added successfully!"
		}
		return a, tea.Batch(a.showToast(toastSuccess, text), a.loadProducts())

	case productDeletedMsg:
		return a, tea.Batch(a.showToast(toastSuccess, "Product deleted successfully!"), a.loadProducts())

	case userSavedMsg:
		a.userFormOpen = false
		text := "User updated."
		if m.created {
			text = "User added."
		}
		return a, tea.Batch(a.showToast(toastSuccess, text), a.loadUsers())

	case userDeletedMsg:
		return a, tea.Batch(a.showToast(toastSuccess, "User deleted."), a.loadUsers())

	case checkoutStartedMsg:
		start := m.start
		a.pending = &start
		a.view = viewSuccess

	case checkoutDoneMsg:
		a.pending = nil
		a.view = viewShop
		return a, tea.Batch(
			a.showToast(toastSuccess, "Payment Done! Thank you for completing your secure online payment."),
			a.loadProducts(),
		)

	case errMsg:
		return a, a.showToast(toastError, m.Error())
	}
	return a, nil
}

// applyFilter recomputes the shop listing from the current query, category
// and price range.
func (a *App) applyFilter() {
	f := service.Filter{Query: a.searchInput.Value()}
	if a.catIndex > 0 && a.catIndex <= len(a.categories) {
		f.Category = a.categories[a.catIndex-1]
	}
	pr := priceRanges[a.priceIndex]
	f.MinCents, f.MaxCents = pr.min, pr.max
	a.filtered = service.FilterProducts(a.products, f)
	if a.shopCursor >= len(a.filtered) {
		a.shopCursor = 0
	}
}

func (a *App) resetAuthForms() {
	a.loginForm = newForm(
		field{label: "Email", placeholder: "you@example.com"},
		field{label: "Password", secret: true},
	)
	a.signupForm = newForm(
		field{label: "Username"},
		field{label: "Email", placeholder: "you@example.com"},
		field{label: "Password", secret: true},
		field{label: "Confirm Password", secret: true},
	)
	a.forgotForm = newForm(
		field{label: "Email", placeholder: "you@example.com"},
		field{label: "New Password", secret: true},
	)
}

func newPasswordForm() form {
	return newForm(
		field{label: "Previous Password", secret: true},
		field{label: "New Password", secret: true},
		field{label: "Confirm Password", secret: true},
	)
}

func profileFormFrom(p api.Profile) form {
	return newForm(
		field{label: "Email", value: p.Email, readonly: true},
		field{label: "First Name", value: p.FirstName},
		field{label: "Last Name", value: p.LastName},
		field{label: "Phone Number", value: p.Phone},
		field{label: "Country", value: p.Country},
		field{label: "Address", value: p.Address},
		field{label: "City", value: p.City},
		field{label: "Zip Code", value: p.ZipCode},
	)
}

func newProductForm(p *api.Product) form {
	var name, desc, price, category, image, inventory string
	if p != nil {
		name, desc, category, image = p.Name, p.Description, p.Category, p.Image
		price = strconv.FormatFloat(p.Price, 'f', -1, 64)
		inventory = strconv.Itoa(p.Inventory)
	}
	return newForm(
		field{label: "Name", value: name},
		field{label: "Description", value: desc},
		field{label: "Price", value: price, placeholder: "0.00"},
		field{label: "Category", value: category, placeholder: "Electronics"},
		field{label: "Image URL", value: image},
		field{label: "Inventory", value: inventory, placeholder: "0"},
	)
}

func newUserForm(u *api.AdminUser) form {
	if u == nil {
		return newForm(
			field{label: "User Name"},
			field{label: "Email"},
			field{label: "Password", secret: true},
		)
	}
	return newForm(
		field{label: "User Name", value: u.Username},
		field{label: "Email", value: u.Email},
	)
}

// cartSnapshot converts a catalog product into the cart's add-time snapshot.
func cartSnapshot(p api.Product) store.Product {
	return store.Product{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents(),
		Image:      p.Image,
		Inventory:  p.Inventory,
	}
}

// messages
type productsMsg []api.Product

type productMsg api.Product

type loginDoneMsg struct {
	user    api.User
	message string
}

type signupDoneMsg string

type forgotDoneMsg string

type ordersMsg []api.Order

type usersMsg []api.AdminUser

type profileMsg api.Profile

type profileSavedMsg api.Profile

type passwordChangedMsg struct{}

type reviewDoneMsg string

type productSavedMsg struct{ created bool }

type productDeletedMsg struct{}

type userSavedMsg struct{ created bool }

type userDeletedMsg struct{}

type checkoutStartedMsg struct{ start service.CheckoutStart }

type checkoutDoneMsg struct{}

type notifMsg store.Notification

type errMsg struct{ error }
