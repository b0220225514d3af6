package verification

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/client/events"
	"github.com/dmitrijs2005/spabook/internal/client/models"
	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/client/services"
	"github.com/dmitrijs2005/spabook/internal/client/timer"
	"github.com/dmitrijs2005/spabook/internal/common"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

type State int

const (
	StateLoading State = iota
	StateSuccess
	StateConfirmed
	StateAlreadyVerified
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateConfirmed:
		return "confirmed"
	case StateAlreadyVerified:
		return "already_verified"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	// LoginRedirectDelay is how long the already-verified notice stays up.
	LoginRedirectDelay = 2000 * time.Millisecond
	// ReloadDelay separates the confirmation click from the reload.
	ReloadDelay = 100 * time.Millisecond
)

const (
	MsgInvalidToken  = "Invalid verification token."
	MsgVerifyFailed  = "Could not verify email. Please try again."
	MsgSessionFailed = "Your email is verified, but we could not sign you in. Please log in."
	MsgEmailRequired = "Please enter your email address."
	MsgResendFailed  = "Could not resend verification email. Please try again."
	MsgResendSent    = "Verification email sent. Please check your inbox."
)

// View is what the page renders.
type View struct {
	State   State
	Message string
	// User is set in StateConfirmed.
	User models.User
}

type Deps struct {
	Client    client.Client
	Session   services.SessionStore
	Events    events.Publisher
	Navigator nav.Navigator
	Scheduler timer.Scheduler
	Logger    logging.Logger

	// OnChange, when set, is called with every new view.
	OnChange func(View)
}

type Controller struct {
	client   client.Client
	session  services.SessionStore
	events   events.Publisher
	nav      nav.Navigator
	timers   *timer.Group
	log      logging.Logger
	onChange func(View)
	validate *validator.Validate

	mu      sync.Mutex
	view    View
	started bool
	closed  bool
	cancel  context.CancelFunc
}

func New(d Deps) *Controller {
	log := d.Logger
	if log == nil {
		log = logging.Nop{}
	}
	return &Controller{
		client:   d.Client,
		session:  d.Session,
		events:   d.Events,
		nav:      d.Navigator,
		timers:   timer.NewGroup(d.Scheduler),
		log:      log.With("view", "verify-email"),
		onChange: d.OnChange,
		validate: validator.New(),
		view:     View{State: StateLoading},
	}
}

// Start exchanges the token found in path. It blocks until the exchange
// finishes or the controller is closed. The outcome is reported through
// the view, not the returned error, which only signals misuse.
func (c *Controller) Start(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return common.ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return common.ErrAlreadyStarted
	}
	c.started = true
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	token := TokenFromPath(path)
	if token == "" {
		c.log.Warn(ctx, "verification link without token", "path", path)
		c.set(View{State: StateError, Message: MsgInvalidToken})
		return nil
	}

	outcome, err := c.client.VerifyEmail(ctx, token)
	if err != nil {
		c.log.Warn(ctx, "email verification failed", "error", err)
		c.set(View{State: StateError, Message: client.MessageOf(err, MsgVerifyFailed)})
		return nil
	}

	switch o := outcome.(type) {
	case models.AlreadyVerified:
		c.alreadyVerified(o)
	case models.Verified:
		c.verified(ctx, o)
	case models.PlainSuccess:
		c.set(View{State: StateSuccess, Message: o.Message})
	default:
		c.log.Error(ctx, "unexpected verification outcome", "outcome", outcome)
		c.set(View{State: StateError, Message: MsgVerifyFailed})
	}
	return nil
}

func (c *Controller) alreadyVerified(o models.AlreadyVerified) {
	if !c.set(View{State: StateAlreadyVerified, Message: o.Message}) {
		return
	}
	c.timers.After(LoginRedirectDelay, func() {
		c.nav.NavigateTo(common.RouteLogin, nav.Options{})
	})
}

func (c *Controller) verified(ctx context.Context, o models.Verified) {
	if c.isClosed() {
		return
	}
	if err := c.session.Save(ctx, o.Credentials); err != nil {
		c.log.Error(ctx, "could not persist session", "error", err)
		c.set(View{State: StateError, Message: MsgSessionFailed})
		return
	}

	// Torn down while saving: keep the session, skip the page reaction.
	if c.isClosed() {
		return
	}
	c.events.Publish(ctx, events.Event{Topic: events.TopicUserVerified, Payload: o.Credentials.User})
	c.log.Info(ctx, "email verified", "user_id", o.Credentials.User.ID)
	c.set(View{State: StateConfirmed, Message: o.Message, User: o.Credentials.User})
}

// GoHome reloads the application on the home page.
func (c *Controller) GoHome() error {
	return c.reloadTo(common.RouteHome)
}

// GoBooking reloads the application on the booking page.
func (c *Controller) GoBooking() error {
	return c.reloadTo(common.RouteBooking)
}

func (c *Controller) reloadTo(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return common.ErrClosed
	}
	if c.view.State != StateConfirmed {
		return common.ErrWrongState
	}
	c.timers.After(ReloadDelay, func() {
		c.nav.NavigateTo(path, nav.Options{Reload: true})
	})
	return nil
}

// Resend asks for a new verification email. It returns the text to show
// next to the form. The controller stays in StateError whatever happens.
func (c *Controller) Resend(ctx context.Context, email string) (string, error) {
	c.mu.Lock()
	closed, state := c.closed, c.view.State
	c.mu.Unlock()
	if closed {
		return "", common.ErrClosed
	}
	if state != StateError {
		return "", common.ErrWrongState
	}

	email = strings.TrimSpace(email)
	if err := c.validate.Var(email, "required"); err != nil {
		return MsgEmailRequired, common.ErrEmailRequired
	}

	msg, err := c.client.ResendVerificationEmail(ctx, email)
	if err != nil {
		c.log.Warn(ctx, "resend verification failed", "error", err)
		return client.MessageOf(err, MsgResendFailed), err
	}
	if msg == "" {
		msg = MsgResendSent
	}
	return msg, nil
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Close tears the page down: pending redirects are cancelled, an exchange in
// flight is abandoned, and later updates are ignored. It is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.timers.Close()
}

// set replaces the view unless the controller was closed. It reports
// whether the update was applied.
func (c *Controller) set(v View) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.view = v
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(v)
	}
	return true
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
