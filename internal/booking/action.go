package booking

import "github.com/fitbook/gym-service/internal/models"

// Action is the discriminated tag the UI maps to a button state.
type Action string

const (
	ActionRequireLogin Action = "login"
	ActionClientsOnly  Action = "clients_only"
	ActionNotOpen      Action = "not_open"
	ActionCancel       Action = "cancel"
	ActionFull         Action = "full"
	ActionBook         Action = "book"
)

// ActionFor decides what a viewer may do with a session, from a bookings
// snapshot. Pure; no store access.
//
// The Cancel check runs before the session-status check: a client whose
// booking predates a Closed/Cancelled status change must still be able to
// cancel it.
func ActionFor(actor *models.User, session models.Session, bookings []models.Booking) Action {
	if actor == nil {
		return ActionRequireLogin
	}
	if actor.Role != models.RoleClient {
		return ActionClientsOnly
	}

	for _, b := range bookings {
		if b.SessionID == session.ID && b.ClientID == actor.ID && b.Active() {
			return ActionCancel
		}
	}

	if session.Status != models.SessionOpen {
		return ActionNotOpen
	}

	booked := 0
	for _, b := range bookings {
		if b.SessionID == session.ID && b.Active() {
			booked++
		}
	}
	if booked >= session.MaxParticipants {
		return ActionFull
	}

	return ActionBook
}
