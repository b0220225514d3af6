package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/client/payment"
	"github.com/dmitrijs2005/spabook/internal/client/verification"
	"github.com/dmitrijs2005/spabook/internal/common"
)

// Home, Booking and Bookings let the mounted page handle the action when it
// offers one and fall back to a plain navigation otherwise.

func (a *App) Home(ctx context.Context) error {
	switch p := a.currentPage().(type) {
	case *verification.Controller:
		if err := p.GoHome(); !errors.Is(err, common.ErrWrongState) {
			return err
		}
	case *payment.Controller:
		if err := p.GoHome(); !errors.Is(err, common.ErrWrongState) {
			return err
		}
	}
	a.history.NavigateTo(common.RouteHome, nav.Options{})
	return nil
}

func (a *App) Booking(ctx context.Context) error {
	if p, ok := a.currentPage().(*verification.Controller); ok {
		if err := p.GoBooking(); !errors.Is(err, common.ErrWrongState) {
			return err
		}
	}
	a.history.NavigateTo(common.RouteBooking, nav.Options{})
	return nil
}

func (a *App) Bookings(ctx context.Context) error {
	if p, ok := a.currentPage().(*payment.Controller); ok {
		if err := p.ViewBookings(); !errors.Is(err, common.ErrWrongState) {
			return err
		}
	}
	a.history.NavigateTo(common.RouteAppointments, nav.Options{})
	return nil
}
