package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/signin"
	"github.com/firflight/firflight/internal/i18n"
)

// signInScreen renders the sign-in controller's output on the terminal.
type signInScreen struct {
	out  io.Writer
	msgs *i18n.Messages

	errs     chan string
	main     chan struct{}
	mainOnce sync.Once
}

func newSignInScreen(out io.Writer, msgs *i18n.Messages) *signInScreen {
	return &signInScreen{out: out, msgs: msgs, errs: make(chan string, 1), main: make(chan struct{})}
}

// SetSubmitEnabled is a no-op: the terminal submits after the password
// prompt, and the form is checked before that.
func (s *signInScreen) SetSubmitEnabled(bool) {}

func (s *signInScreen) ShowProgress() {
	fmt.Fprintln(s.out, s.msgs.T(i18n.MsgSigningIn))
}

func (s *signInScreen) HideProgress() {}

func (s *signInScreen) ShowError(msg string) {
	s.errs <- msg
}

func (s *signInScreen) ReplaceWithMain() {
	s.mainOnce.Do(func() { close(s.main) })
}

// signIn runs the sign-in screen until the user signs in, leaves it with an
// empty email (nil user) or input ends.
func (a *App) signIn(ctx context.Context) (*models.User, error) {
	screen := newSignInScreen(a.out, a.msgs)
	ctrl := signin.NewController(a.session, screen, screen, a.tracker, a.msgs, a.logger)
	go ctrl.Run(ctx)
	defer ctrl.Teardown()

	a.println(a.msgs.T(i18n.MsgSignInTitle))
	for {
		email, err := GetSimpleText(a.in, a.msgs.T(i18n.MsgEmailPrompt), a.out)
		if err != nil {
			return nil, err
		}
		if email == "" {
			return nil, nil
		}
		password, err := GetPassword(a.in, a.msgs.T(i18n.MsgPasswordPrompt), a.out)
		if err != nil {
			return nil, err
		}

		ctrl.EmailChanged(email)
		ctrl.PasswordChanged(password)
		if !signin.FormValid(email, password) {
			a.println(a.msgs.T(i18n.MsgInvalidForm))
			continue
		}
		ctrl.Submit()

		select {
		case msg := <-screen.errs:
			a.println(msg)
		case <-screen.main:
			return a.session.Current(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (a *App) signUp(ctx context.Context) error {
	email, err := GetSimpleText(a.in, a.msgs.T(i18n.MsgEmailPrompt), a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.in, a.msgs.T(i18n.MsgPasswordPrompt), a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.in, a.msgs.T(i18n.MsgNamePrompt), a.out)
	if err != nil {
		return err
	}

	if !signin.FormValid(email, password) {
		a.println(a.msgs.T(i18n.MsgInvalidForm))
		return nil
	}

	u, err := a.session.SignUp(ctx, email, password, name)
	if err != nil {
		a.println(err.Error())
		return nil
	}
	a.println(a.msgs.T(i18n.MsgSignedUp, "Email", u.Email))
	return nil
}

// guest shows the sign-in screen, then a small menu for users who left it.
// It returns a nil user when the user exits.
func (a *App) guest(ctx context.Context) (*models.User, error) {
	user, err := a.signIn(ctx)
	if err != nil || user != nil {
		return user, err
	}

	for {
		fmt.Fprint(a.out, "firflight> ")
		line, err := readLine(a.in)
		if err != nil {
			return nil, err
		}

		switch line {
		case "":
		case "signin":
			user, err := a.signIn(ctx)
			if err != nil || user != nil {
				return user, err
			}
		case "signup":
			if err := a.signUp(ctx); err != nil {
				return nil, err
			}
		case "help":
			fmt.Fprint(a.out, a.msgs.T(i18n.MsgGuestHelp))
		case "exit", "quit":
			return nil, nil
		default:
			a.println(a.msgs.T(i18n.MsgUnknownCommand, "Command", line))
		}
	}
}
