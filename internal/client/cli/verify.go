package cli

import (
	"context"

	"github.com/dmitrijs2005/spabook/internal/client/verification"
	"github.com/dmitrijs2005/spabook/internal/common"
)

// Verify opens the verification page for a link or bare token and runs the
// token exchange. The outcome is rendered as it arrives.
func (a *App) Verify(ctx context.Context, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	ctrl := verification.New(verification.Deps{
		Client:    a.api,
		Session:   a.session,
		Events:    a.bus,
		Navigator: a.history,
		Scheduler: a.scheduler,
		Logger:    a.log,
		OnChange:  renderVerification,
	})
	a.mount(common.RouteVerifyEmail, ctrl)

	printlnFn("Verifying your email...")
	return ctrl.Start(ctx, path)
}

// Resend is only offered on a failed verification page.
func (a *App) Resend(ctx context.Context, args []string) error {
	ctrl, ok := a.currentPage().(*verification.Controller)
	if !ok || ctrl.Snapshot().State != verification.StateError {
		printlnFn("Nothing to resend here. Open your verification link with 'verify' first.")
		return common.ErrWrongState
	}

	email, err := a.argOrPrompt(args, "Enter your email")
	if err != nil {
		return err
	}

	msg, err := ctrl.Resend(ctx, email)
	if msg != "" {
		printlnFn(msg)
	}
	return err
}

func renderVerification(v verification.View) {
	switch v.State {
	case verification.StateSuccess:
		printlnFn(v.Message)
	case verification.StateConfirmed:
		if v.Message != "" {
			printlnFn(v.Message)
		}
		printlnFn("Welcome, " + v.User.Name + "! Type 'home' or 'booking' to continue.")
	case verification.StateAlreadyVerified:
		printlnFn(v.Message)
		printlnFn("Redirecting to login...")
	case verification.StateError:
		printlnFn(v.Message)
		printlnFn("Type 'resend' to get a new verification email.")
	}
}
