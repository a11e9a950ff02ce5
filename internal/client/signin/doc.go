// Package signin implements the sign-in screen as a state machine that does
// not depend on any UI toolkit.
//
// A Controller owns the form state and runs an event loop (Run). The UI
// adapter feeds it events through EmailChanged, PasswordChanged, Submit and
// Teardown, and receives updates through the View and Navigator ports. All
// port calls happen on the loop goroutine. The sign-in request runs on its
// own goroutine and posts its result back to the loop, which applies it only
// while the screen is still alive: after Teardown no port is called again.
//
// States:
//
//	Idle -> Validating -> Submitting -> Success
//	                          |
//	                          +-------> Failed -> Validating | Submitting
package signin
