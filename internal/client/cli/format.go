package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/firflight/firflight/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func price(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}

func writeFlights(w io.Writer, fs []models.Flight) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLIGHT\tFROM\tTO\tDEPARTS (UTC)\tARRIVES (UTC)\tPRICE\tSEATS")
	for _, f := range fs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			f.ID, f.Number, f.Origin, f.Destination,
			f.DepartsAt.Format(timeLayout), f.ArrivesAt.Format(timeLayout),
			price(f.PriceCents, f.Currency), f.SeatsLeft)
	}
	return tw.Flush()
}

func writeFlight(w io.Writer, f models.Flight) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "Flight:\t%s (%s)\n", f.Number, f.Airline)
	fmt.Fprintf(tw, "Route:\t%s -> %s\n", f.Origin, f.Destination)
	fmt.Fprintf(tw, "Departs:\t%s UTC\n", f.DepartsAt.Format(timeLayout))
	fmt.Fprintf(tw, "Arrives:\t%s UTC\n", f.ArrivesAt.Format(timeLayout))
	fmt.Fprintf(tw, "Price:\t%s\n", price(f.PriceCents, f.Currency))
	fmt.Fprintf(tw, "Seats left:\t%d\n", f.SeatsLeft)
	if f.Aircraft != "" {
		fmt.Fprintf(tw, "Aircraft:\t%s\n", f.Aircraft)
	}
	return tw.Flush()
}

func writeBookings(w io.Writer, bs []models.Booking) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLIGHT\tSEATS\tSTATUS\tTICKET\tBOOKED (UTC)")
	for _, b := range bs {
		flight := b.FlightNumber
		if flight == "" {
			flight = b.FlightID
		}
		ticket := "-"
		if b.HasTicket {
			ticket = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			b.ID, flight, b.Seats, b.Status, ticket, b.CreatedAt.Format(timeLayout))
	}
	return tw.Flush()
}
