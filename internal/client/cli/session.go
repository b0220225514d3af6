package cli

import (
	"context"

	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/common"
)

func (a *App) WhoAmI(ctx context.Context) error {
	creds, ok := a.session.Current()
	if !ok {
		printlnFn("Not signed in.")
		return common.ErrNoSession
	}
	printlnFn(creds.User.Name, "<"+creds.User.Email+">")
	return nil
}

// Logout drops the stored session and reloads on the login page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		printlnFn("Could not log out. Please try again.")
		return err
	}
	printlnFn("Logged out.")
	a.history.NavigateTo(common.RouteLogin, nav.Options{Reload: true})
	return nil
}
