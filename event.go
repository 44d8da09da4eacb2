package uml

import (
	"time"

	"github.com/google/uuid"
)

// Event wraps a dispatched message. It is a tagged union of "a user
// payload arrived" and "a state just completed" rather than the
// teacher's catch-all data field: the design notes call for a generic
// message type parameter over a dynamically-typed one, and for an
// explicit completion marker instead of self == state identity
// comparison.
type Event[M any] struct {
	id         string
	timestamp  time.Time
	payload    M
	completion bool
	completed  Vertex[M]
}

// NewEvent wraps a user payload for dispatch via Evaluate.
func NewEvent[M any](payload M) Event[M] {
	return Event[M]{id: uuid.New().String(), timestamp: time.Now(), payload: payload}
}

func completionEvent[M any](v Vertex[M]) Event[M] {
	return Event[M]{id: uuid.New().String(), timestamp: time.Now(), completion: true, completed: v}
}

// ID is a correlation id stamped on every event for log lines.
func (e Event[M]) ID() string { return e.id }

// Timestamp is when the event was constructed.
func (e Event[M]) Timestamp() time.Time { return e.timestamp }

// Payload returns the user message. It is the zero value of M for
// completion events.
func (e Event[M]) Payload() M { return e.payload }

// IsCompletion reports whether this event is the engine's internal
// completion self-message rather than a user-dispatched one.
func (e Event[M]) IsCompletion() bool { return e.completion }

// CompletionSource returns the vertex that completed, for completion
// events; nil otherwise.
func (e Event[M]) CompletionSource() Vertex[M] { return e.completed }
