package tui

import "github.com/gurpreet/minishop/internal/store"

// access classes for views. Public views need no session; shopper views need
// a non-elevated session; admin views need the elevated role flag.
type access int

const (
	accessPublic access = iota
	accessShopper
	accessAdmin
)

func viewAccess(v view) access {
	switch v {
	case viewLogin, viewSignup, viewForgot:
		return accessPublic
	case viewAdminProducts, viewAdminOrders, viewAdminUsers:
		return accessAdmin
	default:
		return accessShopper
	}
}

// Resolve gates v against the current identity. It returns the view that
// actually renders and whether the request was redirected: no session goes
// to login; an elevated session asking for a shopper view lands on product
// management; a shopper asking for an admin view lands on the shop home.
func Resolve(v view, user *store.Identity) (view, bool) {
	switch viewAccess(v) {
	case accessPublic:
		return v, false
	case accessShopper:
		if user == nil {
			return viewLogin, true
		}
		if user.IsAdmin {
			return viewAdminProducts, true
		}
	case accessAdmin:
		if user == nil {
			return viewLogin, true
		}
		if !user.IsAdmin {
			return viewHome, true
		}
	}
	return v, false
}

// landing is where a fresh session starts, by role.
func landing(user *store.Identity) view {
	switch {
	case user == nil:
		return viewLogin
	case user.IsAdmin:
		return viewAdminProducts
	default:
		return viewHome
	}
}
