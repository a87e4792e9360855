package events

import "time"

type Type string

const (
	BookingRequested Type = "booking_requested"
	BookingConfirmed Type = "booking_confirmed"
	RidePosted       Type = "ride_posted"
)

// Event is the wire shape published for every booking lifecycle change.
type Event struct {
	Type   Type      `json:"type"`
	RideID int64     `json:"ride_id"`
	At     time.Time `json:"at"`
}

// Publisher delivers marketplace events to interested consumers.
// Delivery is best-effort; the marketplace never blocks on it.
type Publisher interface {
	Publish(ev Event) error
	Close() error
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }
func (Nop) Close() error        { return nil }
