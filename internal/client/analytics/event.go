// Package analytics records product events on the client. Events are
// queued in the local database and uploaded in batches, so tracking never
// blocks on or fails because of the network.
package analytics

import "context"

const (
	EventSignIn = "sign_in"

	KeyEmail   = "email"
	KeySuccess = "success"
)

// Event is a named set of attributes. Attribute values should be JSON
// scalars.
type Event struct {
	Name       string
	Attributes map[string]any
}

func NewEvent(name string) Event {
	return Event{Name: name, Attributes: map[string]any{}}
}

// With returns a copy of e with k set to v.
func (e Event) With(k string, v any) Event {
	attrs := make(map[string]any, len(e.Attributes)+1)
	for key, val := range e.Attributes {
		attrs[key] = val
	}
	attrs[k] = v
	return Event{Name: e.Name, Attributes: attrs}
}

func (e Event) WithSuccess(ok bool) Event {
	return e.With(KeySuccess, ok)
}

// Tracker records events. Implementations must not block for long and
// report their own failures; Track never fails the caller's flow.
type Tracker interface {
	Track(ctx context.Context, e Event)
}

// Multi sends every event to each tracker in order.
type Multi []Tracker

func (m Multi) Track(ctx context.Context, e Event) {
	for _, t := range m {
		t.Track(ctx, e)
	}
}
