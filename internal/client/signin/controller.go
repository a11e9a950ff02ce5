package signin

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/firflight/firflight/internal/client/analytics"
	"github.com/firflight/firflight/internal/client/client"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/i18n"
	"github.com/firflight/firflight/internal/logging"
)

type eventKind int

const (
	emailChanged eventKind = iota
	passwordChanged
	submitPressed
	responseReceived
	teardown
)

type event struct {
	kind  eventKind
	value string
	user  *models.User
	err   error
}

// Controller drives the sign-in screen. All view, navigator and tracker calls
// happen on the goroutine running Run; the input methods only post events and
// may be called from any goroutine.
type Controller struct {
	auth    Authenticator
	view    View
	nav     Navigator
	tracker analytics.Tracker
	msgs    Translator
	logger  logging.Logger

	events   chan event
	done     chan struct{}
	doneOnce sync.Once
	state    atomic.Int32

	// owned by the loop
	email    string
	password string
	cancel   context.CancelFunc
}

// NewController wires a controller to its ports. Nothing happens until Run is
// called.
func NewController(auth Authenticator, view View, nav Navigator, tracker analytics.Tracker, msgs Translator, logger logging.Logger) *Controller {
	return &Controller{
		auth:    auth,
		view:    view,
		nav:     nav,
		tracker: tracker,
		msgs:    msgs,
		logger:  logger.With("module", "signin"),
		events:  make(chan event, 16),
		done:    make(chan struct{}),
	}
}

// State returns the current state. Safe to call from any goroutine.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Done is closed once the screen is torn down, either by Teardown, by a
// successful sign-in or by cancelling the Run context.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// EmailChanged reports new email field contents.
func (c *Controller) EmailChanged(v string) { c.post(event{kind: emailChanged, value: v}) }

// PasswordChanged reports new password field contents.
func (c *Controller) PasswordChanged(v string) { c.post(event{kind: passwordChanged, value: v}) }

// Submit presses the submit button. It is ignored while the form is invalid
// or a request is in flight.
func (c *Controller) Submit() { c.post(event{kind: submitPressed}) }

// Teardown closes the screen. An in-flight request is cancelled and its
// result dropped.
func (c *Controller) Teardown() { c.post(event{kind: teardown}) }

// post delivers ev to the loop. Events sent after teardown are dropped.
func (c *Controller) post(ev event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// Run processes events until the screen is torn down.
func (c *Controller) Run(ctx context.Context) {
	defer c.finish()

	c.setSubmitEnabled(false)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.events:
			if ctx.Err() != nil || !c.handle(ctx, ev) {
				return
			}
		}
	}
}

func (c *Controller) finish() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.doneOnce.Do(func() { close(c.done) })
}

// handle applies ev and reports whether the loop should keep running.
func (c *Controller) handle(ctx context.Context, ev event) bool {
	switch ev.kind {
	case emailChanged, passwordChanged:
		c.fieldChanged(ev)
	case submitPressed:
		c.submit(ctx)
	case responseReceived:
		return c.respond(ctx, ev)
	case teardown:
		if c.State() == Submitting {
			c.logger.Debug(ctx, "torn down while submitting")
		}
		return false
	}
	return true
}

// fieldChanged ignores input while submitting; the progress indicator is
// modal.
func (c *Controller) fieldChanged(ev event) {
	if c.State() == Submitting {
		return
	}
	if ev.kind == emailChanged {
		c.email = ev.value
	} else {
		c.password = ev.value
	}
	c.setState(Validating)
	c.setSubmitEnabled(FormValid(c.email, c.password))
}

func (c *Controller) submit(ctx context.Context) {
	if c.State() == Submitting || !FormValid(c.email, c.password) {
		return
	}

	c.setState(Submitting)
	c.setSubmitEnabled(false)
	c.view.ShowProgress()

	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	email, password := c.email, c.password

	go func() {
		user, err := c.auth.SignIn(reqCtx, email, password)
		c.post(event{kind: responseReceived, user: user, err: err})
	}()
}

func (c *Controller) respond(ctx context.Context, ev event) bool {
	if c.State() != Submitting {
		return true
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.view.HideProgress()
	signIn := analytics.NewEvent(analytics.EventSignIn).With(analytics.KeyEmail, c.email)

	if ev.err != nil {
		c.tracker.Track(ctx, signIn.WithSuccess(false))
		c.setState(Failed)
		c.setSubmitEnabled(FormValid(c.email, c.password))
		c.view.ShowError(c.errorMessage(ev.err))
		c.logger.Info(ctx, "sign in failed", "email", c.email, "error", ev.err)
		return true
	}

	c.tracker.Track(ctx, signIn.WithSuccess(true))
	c.setState(Success)
	c.nav.ReplaceWithMain()
	c.logger.Info(ctx, "sign in succeeded", "email", c.email)
	return false
}

func (c *Controller) errorMessage(err error) string {
	if errors.Is(err, client.ErrUnauthorized) {
		return c.msgs.T(i18n.MsgWrongCredentials)
	}
	return err.Error()
}

func (c *Controller) setState(s State) {
	c.state.Store(int32(s))
}

func (c *Controller) setSubmitEnabled(enabled bool) {
	c.view.SetSubmitEnabled(enabled)
}
