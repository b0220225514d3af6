package cli

import (
	"context"

	"github.com/dmitrijs2005/spabook/internal/client/password"
)

const routeForgotPassword = "/forgot-password"

func (a *App) Forgot(ctx context.Context, args []string) error {
	ctrl := password.New(a.api, a.log)
	a.mount(routeForgotPassword, nopPage{})

	email, err := a.argOrPrompt(args, "Enter your email")
	if err != nil {
		return err
	}

	v, err := ctrl.Submit(ctx, email)
	printlnFn(v.Message)
	return err
}

// nopPage is a page without anything to tear down.
type nopPage struct{}

func (nopPage) Close() {}
