package verification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/client/client/clienttest"
	"github.com/dmitrijs2005/spabook/internal/client/events"
	"github.com/dmitrijs2005/spabook/internal/client/models"
	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/client/timer/timertest"
	"github.com/dmitrijs2005/spabook/internal/common"
)

type fakeSession struct {
	mu    sync.Mutex
	saved []models.Credentials
	err   error
}

func (s *fakeSession) Save(_ context.Context, c models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, c)
	return nil
}

type harness struct {
	ctrl    *Controller
	api     *clienttest.Fake
	session *fakeSession
	sched   *timertest.Scheduler
	history *nav.History
	events  []events.Event
	views   []View
}

func newHarness(t *testing.T, api *clienttest.Fake) *harness {
	t.Helper()
	h := &harness{
		api:     api,
		session: &fakeSession{},
		sched:   timertest.New(),
		history: nav.NewHistory(nil),
	}
	bus := events.NewBus()
	bus.Subscribe(events.TopicUserVerified, func(_ context.Context, e events.Event) {
		h.events = append(h.events, e)
	})
	h.ctrl = New(Deps{
		Client:    api,
		Session:   h.session,
		Events:    bus,
		Navigator: h.history,
		Scheduler: h.sched,
		OnChange:  func(v View) { h.views = append(h.views, v) },
	})
	t.Cleanup(h.ctrl.Close)
	return h
}

func respond(o models.VerificationOutcome, err error) *clienttest.Fake {
	return &clienttest.Fake{
		VerifyEmailFn: func(context.Context, string) (models.VerificationOutcome, error) {
			return o, err
		},
	}
}

func TestStart_EmptyTokenNeverCallsAPI(t *testing.T) {
	for _, path := range []string{"", "   ", "/verify-email/", "/verify-email/%20", "\t\n", "/verify-emailabc"} {
		t.Run(path, func(t *testing.T) {
			h := newHarness(t, &clienttest.Fake{})

			require.NoError(t, h.ctrl.Start(context.Background(), path))

			v := h.ctrl.Snapshot()
			assert.Equal(t, StateError, v.State)
			assert.Equal(t, MsgInvalidToken, v.Message)
			assert.Empty(t, h.api.Calls("VerifyEmail"))
		})
	}
}

func TestStart_ExchangesOnce(t *testing.T) {
	h := newHarness(t, respond(models.PlainSuccess{Message: "ok"}, nil))
	ctx := context.Background()

	require.NoError(t, h.ctrl.Start(ctx, "/verify-email/abc123"))
	require.ErrorIs(t, h.ctrl.Start(ctx, "/verify-email/abc123"), common.ErrAlreadyStarted)

	assert.Equal(t, []string{"abc123"}, h.api.Calls("VerifyEmail"))
}

func TestStart_AlreadyVerifiedRedirectsOnce(t *testing.T) {
	h := newHarness(t, respond(models.AlreadyVerified{Message: "Email already verified"}, nil))

	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))

	v := h.ctrl.Snapshot()
	assert.Equal(t, StateAlreadyVerified, v.State)
	assert.Equal(t, "Email already verified", v.Message)
	assert.Equal(t, []time.Duration{LoginRedirectDelay}, h.sched.Pending())

	h.sched.Advance(LoginRedirectDelay - time.Millisecond)
	assert.Empty(t, h.history.Visits())

	h.sched.Advance(time.Millisecond)
	assert.Equal(t, []nav.Visit{{Path: common.RouteLogin}}, h.history.Visits())

	h.sched.Advance(time.Hour)
	assert.Len(t, h.history.Visits(), 1)
}

func TestStart_AlreadyVerifiedTornDownBeforeRedirect(t *testing.T) {
	h := newHarness(t, respond(models.AlreadyVerified{Message: "done"}, nil))

	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))
	h.sched.Advance(time.Second)
	h.ctrl.Close()
	h.sched.Advance(time.Hour)

	assert.Empty(t, h.history.Visits())
	assert.Empty(t, h.sched.Pending())
}

func TestStart_VerifiedScenario(t *testing.T) {
	user := models.User{Name: "Mai", Email: "mai@x.com"}
	h := newHarness(t, respond(models.Verified{
		Message:     "Verified",
		Credentials: models.Credentials{Token: "tok1", User: user},
	}, nil))

	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc123"))

	v := h.ctrl.Snapshot()
	assert.Equal(t, StateConfirmed, v.State)
	assert.Equal(t, "Verified", v.Message)
	assert.Equal(t, user, v.User)

	assert.Equal(t, []models.Credentials{{Token: "tok1", User: user}}, h.session.saved)
	require.Len(t, h.events, 1)
	assert.Equal(t, events.TopicUserVerified, h.events[0].Topic)
	assert.Equal(t, user, h.events[0].Payload)

	assert.Zero(t, h.sched.Scheduled(), "no automatic redirect")
	assert.Empty(t, h.history.Visits())
}

func TestStart_VerifiedButSessionWriteFails(t *testing.T) {
	h := newHarness(t, respond(models.Verified{
		Message:     "Verified",
		Credentials: models.Credentials{Token: "tok1", User: models.User{Name: "Mai"}},
	}, nil))
	h.session.err = errors.New("disk full")

	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc123"))

	v := h.ctrl.Snapshot()
	assert.Equal(t, StateError, v.State)
	assert.Equal(t, MsgSessionFailed, v.Message)
	assert.Empty(t, h.events)
}

func TestStart_PlainSuccessIsTerminal(t *testing.T) {
	h := newHarness(t, respond(models.PlainSuccess{Message: "Email verified"}, nil))

	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))

	assert.Equal(t, View{State: StateSuccess, Message: "Email verified"}, h.ctrl.Snapshot())
	assert.Zero(t, h.sched.Scheduled())
	assert.Empty(t, h.session.saved)
	assert.Empty(t, h.events)
	require.ErrorIs(t, h.ctrl.GoHome(), common.ErrWrongState)
}

func TestStart_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.APIError{Status: 400, Message: "Token expired"}, "Token expired"},
		{"no message", &client.APIError{Status: 500}, MsgVerifyFailed},
		{"transport", client.ErrUnavailable, MsgVerifyFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, respond(nil, tt.err))

			require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/expired"))

			assert.Equal(t, View{State: StateError, Message: tt.want}, h.ctrl.Snapshot())
			assert.Len(t, h.api.Calls("VerifyEmail"), 1)
		})
	}
}

func TestGoHomeAndGoBooking(t *testing.T) {
	verified := models.Verified{
		Message:     "Verified",
		Credentials: models.Credentials{Token: "tok1", User: models.User{Name: "Mai"}},
	}

	for name, tc := range map[string]struct {
		act  func(*Controller) error
		path string
	}{
		"home":    {(*Controller).GoHome, common.RouteHome},
		"booking": {(*Controller).GoBooking, common.RouteBooking},
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, respond(verified, nil))
			require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))

			require.NoError(t, tc.act(h.ctrl))
			assert.Empty(t, h.history.Visits())

			h.sched.Advance(ReloadDelay)
			assert.Equal(t, []nav.Visit{{Path: tc.path, Reload: true}}, h.history.Visits())
		})
	}
}

func TestGoHome_CancelledByClose(t *testing.T) {
	h := newHarness(t, respond(models.Verified{
		Credentials: models.Credentials{Token: "tok1", User: models.User{Name: "Mai"}},
	}, nil))
	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))
	require.NoError(t, h.ctrl.GoHome())

	h.ctrl.Close()
	h.sched.Advance(time.Second)

	assert.Empty(t, h.history.Visits())
	require.ErrorIs(t, h.ctrl.GoBooking(), common.ErrClosed)
}

func TestResend(t *testing.T) {
	api := respond(nil, &client.APIError{Status: 400, Message: "Token expired"})
	api.ResendFn = func(_ context.Context, email string) (string, error) {
		if email == "bad@x.com" {
			return "", &client.APIError{Status: 404, Message: "No such user"}
		}
		return "Verification email sent", nil
	}
	h := newHarness(t, api)
	ctx := context.Background()
	require.NoError(t, h.ctrl.Start(ctx, "/verify-email/expired"))

	msg, err := h.ctrl.Resend(ctx, "   ")
	require.ErrorIs(t, err, common.ErrEmailRequired)
	assert.Equal(t, MsgEmailRequired, msg)
	assert.Empty(t, api.Calls("ResendVerificationEmail"))

	msg, err = h.ctrl.Resend(ctx, "mai@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Verification email sent", msg)

	msg, err = h.ctrl.Resend(ctx, "bad@x.com")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "No such user", msg)

	msg, err = h.ctrl.Resend(ctx, "mai@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Verification email sent", msg)

	assert.Equal(t, []string{"mai@x.com", "bad@x.com", "mai@x.com"}, api.Calls("ResendVerificationEmail"))
	assert.Equal(t, StateError, h.ctrl.Snapshot().State)
}

func TestResend_OnlyFromError(t *testing.T) {
	h := newHarness(t, respond(models.PlainSuccess{Message: "ok"}, nil))
	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))

	_, err := h.ctrl.Resend(context.Background(), "mai@x.com")
	require.ErrorIs(t, err, common.ErrWrongState)
	assert.Empty(t, h.api.Calls("ResendVerificationEmail"))
}

func TestResend_DefaultMessages(t *testing.T) {
	api := respond(nil, errors.New("boom"))
	fail := false
	api.ResendFn = func(context.Context, string) (string, error) {
		if fail {
			return "", client.ErrUnavailable
		}
		return "", nil
	}
	h := newHarness(t, api)
	require.NoError(t, h.ctrl.Start(context.Background(), "/verify-email/abc"))

	msg, err := h.ctrl.Resend(context.Background(), "mai@x.com")
	require.NoError(t, err)
	assert.Equal(t, MsgResendSent, msg)

	fail = true
	msg, err = h.ctrl.Resend(context.Background(), "mai@x.com")
	require.Error(t, err)
	assert.Equal(t, MsgResendFailed, msg)
}

func TestClose_DropsLateResult(t *testing.T) {
	release := make(chan struct{})
	api := &clienttest.Fake{
		VerifyEmailFn: func(ctx context.Context, _ string) (models.VerificationOutcome, error) {
			<-release
			return models.AlreadyVerified{Message: "late"}, nil
		},
	}
	h := newHarness(t, api)

	done := make(chan error, 1)
	go func() { done <- h.ctrl.Start(context.Background(), "/verify-email/abc") }()

	require.Eventually(t, func() bool { return len(api.Calls("VerifyEmail")) == 1 }, time.Second, time.Millisecond)
	h.ctrl.Close()
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, StateLoading, h.ctrl.Snapshot().State)
	assert.Zero(t, h.sched.Scheduled())
	assert.Empty(t, h.views)
}

func TestClose_CancelsExchangeContext(t *testing.T) {
	api := &clienttest.Fake{
		VerifyEmailFn: func(ctx context.Context, _ string) (models.VerificationOutcome, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	h := newHarness(t, api)

	done := make(chan error, 1)
	go func() { done <- h.ctrl.Start(context.Background(), "/verify-email/abc") }()

	require.Eventually(t, func() bool { return len(api.Calls("VerifyEmail")) == 1 }, time.Second, time.Millisecond)
	h.ctrl.Close()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("exchange was not cancelled")
	}
	assert.Equal(t, StateLoading, h.ctrl.Snapshot().State)
}

func TestStart_AfterClose(t *testing.T) {
	h := newHarness(t, &clienttest.Fake{})
	h.ctrl.Close()
	h.ctrl.Close()

	require.ErrorIs(t, h.ctrl.Start(context.Background(), "/verify-email/abc"), common.ErrClosed)
	assert.Empty(t, h.api.Calls("VerifyEmail"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "already_verified", StateAlreadyVerified.String())
	assert.Equal(t, "unknown", State(42).String())
}
