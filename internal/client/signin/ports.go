package signin

import (
	"context"

	"github.com/firflight/firflight/internal/client/models"
)

// Authenticator signs a user in. It is called from a background goroutine
// and must honor ctx cancellation.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
}

// View is the screen surface. Methods are called from the controller loop
// only.
type View interface {
	SetSubmitEnabled(enabled bool)
	ShowProgress()
	HideProgress()
	ShowError(msg string)
}

// Navigator replaces the sign-in screen with the main screen, leaving no
// way back to sign-in.
type Navigator interface {
	ReplaceWithMain()
}

// Translator looks up user-facing messages by id.
type Translator interface {
	T(id string, args ...any) string
}
