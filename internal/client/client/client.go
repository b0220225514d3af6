package client

import (
	"context"

	"github.com/dmitrijs2005/spabook/internal/client/models"
)

// Client is the booking API as seen by the views.
type Client interface {
	VerifyEmail(ctx context.Context, token string) (models.VerificationOutcome, error)
	ResendVerificationEmail(ctx context.Context, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ListServices(ctx context.Context) ([]models.CatalogItem, error)
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	Ping(ctx context.Context) error
	Close() error
}
