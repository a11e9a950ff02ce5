package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/firflight/firflight/internal/client/client"
	"github.com/firflight/firflight/internal/i18n"
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	min   int
	max   int
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"flights":  {"flights <from> <to> [yyyy-mm-dd]", 2, 3, (*App).searchFlights},
	"flight":   {"flight <id>", 1, 1, (*App).showFlight},
	"book":     {"book <id> [seats]", 1, 2, (*App).book},
	"bookings": {"bookings", 0, 0, (*App).listBookings},
	"ticket":   {"ticket <booking-id>", 1, 1, (*App).downloadTicket},
}

func (a *App) prompt() string {
	name := ""
	if u := a.session.Current(); u != nil {
		name = u.Email + " "
	}
	return fmt.Sprintf("firflight (%s%s)> ", name, a.Mode())
}

// mainScreen runs the main REPL. It returns signedOut=true when the user
// signed out or the session expired, and false on exit.
func (a *App) mainScreen(ctx context.Context) (bool, error) {
	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := readLine(a.in)
		if err != nil {
			return false, err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprint(a.out, a.msgs.T(i18n.MsgHelp))
			continue
		case "exit", "quit":
			return false, nil
		case "signout":
			if err := a.session.SignOut(ctx); err != nil {
				a.println(err.Error())
				continue
			}
			a.println(a.msgs.T(i18n.MsgSignedOut))
			return true, nil
		}

		c, ok := commands[cmd]
		if !ok {
			a.println(a.msgs.T(i18n.MsgUnknownCommand, "Command", cmd))
			continue
		}

		err = errUsage
		if len(args) >= c.min && len(args) <= c.max {
			err = c.run(a, ctx, args)
		}

		switch {
		case err == nil:
		case errors.Is(err, errUsage):
			a.println(a.msgs.T(i18n.MsgUsage, "Usage", c.usage))
		case errors.Is(err, client.ErrUnauthorized):
			a.println(a.msgs.T(i18n.MsgSessionExpired))
			if err := a.session.SignOut(ctx); err != nil {
				a.logger.Warn(ctx, "sign out failed", "error", err)
			}
			return true, nil
		default:
			a.println(err.Error())
		}
	}
}

func (a *App) searchFlights(ctx context.Context, args []string) error {
	var day time.Time
	if len(args) == 3 {
		d, err := time.Parse(time.DateOnly, args[2])
		if err != nil {
			return errUsage
		}
		day = d
	}

	fs, offline, err := a.flights.Search(ctx, args[0], args[1], day)
	if err != nil {
		return err
	}
	if offline {
		a.println(a.msgs.T(i18n.MsgOfflineResults))
	}
	if len(fs) == 0 {
		a.println(a.msgs.T(i18n.MsgNoFlights))
		return nil
	}
	return writeFlights(a.out, fs)
}

func (a *App) showFlight(ctx context.Context, args []string) error {
	f, offline, err := a.flights.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if offline {
		a.println(a.msgs.T(i18n.MsgOfflineResults))
	}
	return writeFlight(a.out, *f)
}

func (a *App) book(ctx context.Context, args []string) error {
	seats := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errUsage
		}
		seats = n
	}

	b, err := a.flights.Book(ctx, args[0], seats)
	if err != nil {
		return err
	}
	flight := b.FlightNumber
	if flight == "" {
		flight = b.FlightID
	}
	a.println(a.msgs.T(i18n.MsgBooked, "Seats", b.Seats, "Flight", flight, "ID", b.ID))
	return nil
}

func (a *App) listBookings(ctx context.Context, _ []string) error {
	bs, offline, err := a.flights.Bookings(ctx)
	if err != nil {
		return err
	}
	if offline {
		a.println(a.msgs.T(i18n.MsgOfflineResults))
	}
	if len(bs) == 0 {
		a.println(a.msgs.T(i18n.MsgNoBookings))
		return nil
	}
	return writeBookings(a.out, bs)
}

func (a *App) downloadTicket(ctx context.Context, args []string) error {
	path, err := a.flights.DownloadTicket(ctx, args[0])
	if err != nil {
		return err
	}
	a.println(a.msgs.T(i18n.MsgTicketSaved, "Path", path))
	return nil
}
