// Package realtime pushes booking events to UI subscribers. Delivery is
// fire-once: nothing is queued or retried.
package realtime

import (
	"context"
	"encoding/json"
)

const EventNewBooking = "new_booking"

// Envelope is the wire shape shared by every transport.
type Envelope struct {
	Topic   string `json:"topic,omitempty"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Noop drops every event. Used when no channel is configured.
type Noop struct{}

func (Noop) Broadcast(context.Context, string, any) error { return nil }

func encode(topic, event string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{Topic: topic, Event: event, Payload: payload})
}
