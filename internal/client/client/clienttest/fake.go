// Package clienttest provides an in-memory client.Client for view and
// service tests.
package clienttest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/client/models"
)

// Fake answers with the configured functions and records every call.
// A nil function returns the zero value and no error.
type Fake struct {
	VerifyEmailFn    func(ctx context.Context, token string) (models.VerificationOutcome, error)
	ResendFn         func(ctx context.Context, email string) (string, error)
	ForgotPasswordFn func(ctx context.Context, email string) (string, error)
	ListServicesFn   func(ctx context.Context) ([]models.CatalogItem, error)
	ListFAQsFn       func(ctx context.Context) ([]models.FAQ, error)
	PingErr          error
	CloseErr         error

	mu    sync.Mutex
	calls map[string][]string
}

var _ client.Client = (*Fake)(nil)

func (f *Fake) record(method, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string][]string)
	}
	f.calls[method] = append(f.calls[method], arg)
}

// Calls returns the arguments of every call made to method, in order.
func (f *Fake) Calls(method string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls[method]...)
}

func (f *Fake) VerifyEmail(ctx context.Context, token string) (models.VerificationOutcome, error) {
	f.record("VerifyEmail", token)
	if f.VerifyEmailFn == nil {
		return models.PlainSuccess{}, nil
	}
	return f.VerifyEmailFn(ctx, token)
}

func (f *Fake) ResendVerificationEmail(ctx context.Context, email string) (string, error) {
	f.record("ResendVerificationEmail", email)
	if f.ResendFn == nil {
		return "", nil
	}
	return f.ResendFn(ctx, email)
}

func (f *Fake) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.record("ForgotPassword", email)
	if f.ForgotPasswordFn == nil {
		return "", nil
	}
	return f.ForgotPasswordFn(ctx, email)
}

func (f *Fake) ListServices(ctx context.Context) ([]models.CatalogItem, error) {
	f.record("ListServices", "")
	if f.ListServicesFn == nil {
		return nil, nil
	}
	return f.ListServicesFn(ctx)
}

func (f *Fake) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	f.record("ListFAQs", "")
	if f.ListFAQsFn == nil {
		return nil, nil
	}
	return f.ListFAQsFn(ctx)
}

func (f *Fake) Ping(ctx context.Context) error {
	f.record("Ping", "")
	return f.PingErr
}

func (f *Fake) Close() error {
	f.record("Close", "")
	return f.CloseErr
}
