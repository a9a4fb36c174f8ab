package models

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusAbsent    BookingStatus = "Absent"
	StatusCancelled BookingStatus = "Cancelled"
)

// Booking links a client to a session and, when one was consumed, to the
// subscription it was debited from. The primary cancel flow deletes the row
// outright, so StatusCancelled is never written by this service.
type Booking struct {
	ID             string        `json:"id"`
	ClientID       string        `json:"id_client"`
	SessionID      string        `json:"id_schedule"`
	SubscriptionID string        `json:"id_subscription,omitempty"`
	Status         BookingStatus `json:"status"`
	BookingDate    time.Time     `json:"booking_date"`
}

// Active reports whether the booking still occupies a seat.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}
