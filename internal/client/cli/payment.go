package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spabook/internal/client/payment"
)

const routePaymentSuccess = "/payment/success"

func (a *App) Paid(ctx context.Context) error {
	ctrl := payment.New(payment.Deps{
		Events:    a.bus,
		Navigator: a.history,
		Scheduler: a.scheduler,
		Logger:    a.log,
		OnTick: func(left int) {
			if left > 0 {
				printlnFn(fmt.Sprintf("Redirecting to your bookings in %d...", left))
			}
		},
	})
	a.mount(routePaymentSuccess, ctrl)

	printlnFn("Payment successful! Type 'bookings' or 'home' to leave now.")
	return ctrl.Mount(ctx)
}
