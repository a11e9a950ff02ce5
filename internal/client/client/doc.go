// Package client talks to the firflight backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the API:
//     SignIn/SignUp/Me, flight search, bookings, tickets, analytics upload
//     and Ping.
//  2. HTTPClient, a JSON-over-HTTP implementation that sends the access
//     token as a bearer header and maps failures to the errors below.
//     Ping uses the gRPC health service exposed next to the HTTP API.
//
// # Error Handling
//
// A non-2xx response becomes *HTTPError carrying the status code and the
// server's message. Callers match conditions with errors.Is:
// ErrUnauthorized (401), ErrUnavailable (network failure or 502/503/504).
// Error messages are kept as produced by the server or the network stack so
// they can be shown to the user as they are.
package client
