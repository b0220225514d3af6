// Package password drives the forgot-password page.
package password

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/common"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

type State int

const (
	StateIdle State = iota
	StateSent
)

const (
	MsgEmailRequired = "Please enter your email address."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgSendFailed    = "Could not send reset link. Please try again."
	MsgSent          = "If an account exists for that address, a reset link is on its way."
)

type View struct {
	State   State
	Message string
}

// ResetRequester is the part of the API the page needs.
type ResetRequester interface {
	ForgotPassword(ctx context.Context, email string) (string, error)
}

type Controller struct {
	api      ResetRequester
	log      logging.Logger
	validate *validator.Validate

	mu   sync.Mutex
	view View
}

func New(api ResetRequester, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop{}
	}
	return &Controller{api: api, log: log.With("view", "forgot-password"), validate: validator.New()}
}

// Submit requests a reset link for email. Local validation failures never
// reach the API. A failed request leaves the page in StateIdle so the user
// can try again.
func (c *Controller) Submit(ctx context.Context, email string) (View, error) {
	email = strings.TrimSpace(email)

	if err := c.validate.Var(email, "required"); err != nil {
		return c.message(MsgEmailRequired), common.ErrEmailRequired
	}
	if err := c.validate.Var(email, "email"); err != nil {
		return c.message(MsgInvalidEmail), common.ErrInvalidEmail
	}

	msg, err := c.api.ForgotPassword(ctx, email)
	if err != nil {
		c.log.Warn(ctx, "reset link request failed", "error", err)
		return c.message(client.MessageOf(err, MsgSendFailed)), err
	}
	if msg == "" {
		msg = MsgSent
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = View{State: StateSent, Message: msg}
	return c.view, nil
}

// message keeps the state and replaces the inline message.
func (c *Controller) message(msg string) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Message = msg
	return c.view
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}
