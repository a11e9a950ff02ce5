// Package i18n translates user-facing client messages. Translations are
// YAML files embedded from the locales directory.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Message ids used across the client.
const (
	MsgWrongCredentials = "signin.wrong_credentials"
	MsgSignInTitle      = "signin.title"
	MsgEmailPrompt      = "signin.email"
	MsgPasswordPrompt   = "signin.password"
	MsgInvalidForm      = "signin.invalid_form"
	MsgSigningIn        = "signin.progress"
	MsgWelcome          = "main.welcome"
	MsgOffline          = "main.offline"
	MsgOnline           = "main.online"
	MsgOfflineResults   = "main.offline_results"
	MsgNoFlights        = "main.no_flights"
	MsgNoBookings       = "main.no_bookings"
	MsgBooked           = "main.booked"
	MsgTicketSaved      = "main.ticket_saved"
	MsgSignedOut        = "main.signed_out"
	MsgUnknownCommand   = "main.unknown_command"
	MsgHelp             = "main.help"
	MsgSessionExpired   = "main.session_expired"
	MsgUsage            = "main.usage"
	MsgGuestHelp        = "guest.help"
	MsgSignedUp         = "guest.signed_up"
	MsgNamePrompt       = "guest.name"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Messages is a localizer bound to one language.
type Messages struct {
	localizer *i18n.Localizer
}

// New loads every embedded locale and returns messages for lang, falling
// back to English for unknown languages and missing translations.
func New(lang string) (*Messages, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", f.Name(), err)
		}
	}

	return &Messages{localizer: i18n.NewLocalizer(bundle, lang, language.English.String())}, nil
}

// T translates id. args are key/value pairs for the message template. If
// id is unknown the id itself is returned.
func (m *Messages) T(id string, args ...any) string {
	var data map[string]any
	if len(args) > 0 {
		data = make(map[string]any, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			data[fmt.Sprint(args[i])] = args[i+1]
		}
	}

	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}
