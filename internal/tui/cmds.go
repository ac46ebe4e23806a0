package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurpreet/minishop/internal/api"
)

// listenNotifications blocks on the store notification channel and re-arms
// itself from Update after each delivery.
func (a *App) listenNotifications() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-a.notifications
		if !ok {
			return nil
		}
		return notifMsg(n)
	}
}

func (a *App) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, message, err := a.api.Login(a.ctx, email, password)
		if err != nil {
			return errMsg{err}
		}
		return loginDoneMsg{user: user, message: message}
	}
}

func (a *App) signupCmd(username, email, password string) tea.Cmd {
	return func() tea.Msg {
		message, err := a.api.Signup(a.ctx, username, email, password)
		if err != nil {
			return errMsg{err}
		}
		return signupDoneMsg(message)
	}
}

func (a *App) forgotCmd(email, newPassword string) tea.Cmd {
	return func() tea.Msg {
		message, err := a.api.ForgotPassword(a.ctx, email, newPassword)
		if err != nil {
			return errMsg{err}
		}
		return forgotDoneMsg(message)
	}
}

func (a *App) loadProducts() tea.Cmd {
	return func() tea.Msg {
		products, err := a.api.Products(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return productsMsg(products)
	}
}

func (a *App) loadProduct(id string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.api.Product(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return productMsg(p)
	}
}

func (a *App) addReviewCmd(productID string, review api.Review) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.AddReview(a.ctx, productID, review); err != nil {
			return errMsg{err}
		}
		return reviewDoneMsg(productID)
	}
}

func (a *App) loadOrders() tea.Cmd {
	user := a.stores.Session.Current()
	if user == nil {
		return nil
	}
	return func() tea.Msg {
		orders, err := a.api.UserOrders(a.ctx, user.ID)
		if err != nil {
			return errMsg{err}
		}
		return ordersMsg(orders)
	}
}

func (a *App) loadAllOrders() tea.Cmd {
	return func() tea.Msg {
		orders, err := a.api.AllOrders(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return ordersMsg(orders)
	}
}

func (a *App) loadUsers() tea.Cmd {
	return func() tea.Msg {
		users, err := a.api.AdminUsers(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return usersMsg(users)
	}
}

func (a *App) loadProfile() tea.Cmd {
	user := a.stores.Session.Current()
	if user == nil {
		return nil
	}
	return func() tea.Msg {
		profile, err := a.api.Profile(a.ctx, user.Email)
		if err != nil {
			return errMsg{err}
		}
		return profileMsg(profile)
	}
}

func (a *App) saveProfileCmd(p api.Profile) tea.Cmd {
	return func() tea.Msg {
		saved, err := a.api.UpdateProfile(a.ctx, p)
		if err != nil {
			return errMsg{err}
		}
		return profileSavedMsg(saved)
	}
}

func (a *App) changePasswordCmd(email, oldPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.ResetPassword(a.ctx, email, oldPassword, newPassword); err != nil {
			return errMsg{err}
		}
		return passwordChangedMsg{}
	}
}

func (a *App) saveProductCmd(p api.Product, creating bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if creating {
			err = a.api.CreateProduct(a.ctx, p)
		} else {
			err = a.api.UpdateProduct(a.ctx, p)
		}
		if err != nil {
			return errMsg{err}
		}
		return productSavedMsg{created: creating}
	}
}

func (a *App) deleteProductCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.DeleteProduct(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return productDeletedMsg{}
	}
}

func (a *App) saveUserCmd(u api.AdminUser, creating bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if creating {
			_, err = a.api.CreateUser(a.ctx, u)
		} else {
			err = a.api.UpdateUser(a.ctx, u)
		}
		if err != nil {
			return errMsg{err}
		}
		return userSavedMsg{created: creating}
	}
}

func (a *App) deleteUserCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.api.DeleteUser(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return userDeletedMsg{}
	}
}

func (a *App) startCheckoutCmd(userID string) tea.Cmd {
	return func() tea.Msg {
		started, err := a.services.Checkout.Start(a.ctx, userID)
		if err != nil {
			return errMsg{err}
		}
		return checkoutStartedMsg{start: started}
	}
}

func (a *App) completeCheckoutCmd(sessionID, orderID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Checkout.Complete(a.ctx, sessionID, orderID); err != nil {
			return errMsg{err}
		}
		return checkoutDoneMsg{}
	}
}
