// Package cli provides the interactive firflight terminal client.
//
// It wires configuration, local storage, API services and two screens: the
// sign-in screen (a thin adapter over the signin state machine) and the main
// screen, a REPL for searching and booking flights. A background watcher
// pings the server and switches between online and offline mode; offline,
// searches and bookings are answered from the local cache.
//
// The client is started via App.Run(ctx), which blocks until the user exits.
package cli
