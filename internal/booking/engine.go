// Package booking owns the rules for capacity checks, duplicate prevention,
// booking creation and cancellation, and their coupling to the subscription
// ledger.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/ledger"
	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
)

var (
	ErrPermissionDenied = errors.New("only clients can book sessions")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFull      = errors.New("no seats left for this session")
	ErrAlreadyBooked    = errors.New("client is already booked for this session")
	ErrLedgerWrite      = errors.New("could not provision a subscription")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidStatus    = errors.New("attendance status must be Confirmed or Absent")
)

// EventPublisher receives booking lifecycle events. A nil publisher is valid
// and turns publishing off.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// BookResult reports a successful booking plus the soft outcomes the caller
// should surface: whether a gift subscription was granted and whether the
// ledger debit failed (the booking is kept either way).
type BookResult struct {
	Booking      *models.Booking
	Subscription *models.Subscription
	GiftIssued   bool
	DebitFailed  bool
}

// CancelResult reports a successful cancellation. CreditFailed means the
// session credit could not be returned; the deletion is not undone.
type CancelResult struct {
	CreditFailed bool
}

type Service interface {
	Book(ctx context.Context, actor *models.User, sessionID string) (*BookResult, error)
	Cancel(ctx context.Context, actor *models.User, sessionID string) (*CancelResult, error)
	CapacityRemaining(ctx context.Context, sessionID string) (int, error)
	UpdateAttendance(ctx context.Context, actor *models.User, bookingID string, status models.BookingStatus) error
}

type engine struct {
	store     *store.Client
	catalog   *catalog.Catalog
	ledger    *ledger.Ledger
	publisher EventPublisher
	now       func() time.Time
}

func NewEngine(st *store.Client, cat *catalog.Catalog, led *ledger.Ledger, pub EventPublisher) Service {
	return &engine{
		store:     st,
		catalog:   cat,
		ledger:    led,
		publisher: pub,
		now:       time.Now,
	}
}

// Book runs the precondition chain in order (first failure wins), creates the
// booking and then debits the subscription best-effort. The capacity check
// and the booking write are not atomic: two uncoordinated writers can both
// pass the check and overshoot capacity. That race is accepted; the store
// offers no transactions to close it.
func (e *engine) Book(ctx context.Context, actor *models.User, sessionID string) (*BookResult, error) {
	if actor == nil || actor.Role != models.RoleClient {
		return nil, ErrPermissionDenied
	}

	session := e.catalog.SessionByID(ctx, sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}

	booked := countActive(e.store.BookingsBySchedule(ctx, sessionID))
	if booked >= session.MaxParticipants {
		return nil, ErrSessionFull
	}

	result := &BookResult{}
	sub := e.ledger.FindActive(ctx, actor.ID, e.now())
	if sub == nil {
		gift, err := e.ledger.IssueGift(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLedgerWrite, err)
		}
		sub = gift
		result.GiftIssued = true
	}

	if activeBooking(e.store.BookingsByScheduleAndClient(ctx, sessionID, actor.ID)) != nil {
		return nil, ErrAlreadyBooked
	}

	created, err := e.store.CreateBooking(ctx, models.Booking{
		ClientID:       actor.ID,
		SessionID:      sessionID,
		SubscriptionID: sub.ID,
		Status:         models.StatusConfirmed,
		BookingDate:    e.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	result.Booking = created

	// Best-effort debit: a failure here leaves the counts stale but keeps
	// the booking. Availability over strict accounting.
	updated, err := e.ledger.Debit(ctx, sub)
	if err != nil {
		log.Printf("[Booking] debit after booking %s failed: %v", created.ID, err)
		result.DebitFailed = true
		result.Subscription = sub
	} else {
		result.Subscription = updated
	}

	e.publish("booking.created", created)
	if result.GiftIssued {
		e.publish("subscription.gifted", result.Subscription)
	}
	return result, nil
}

// Cancel hard-deletes the caller's booking and returns the session credit.
// The Cancelled status exists in the model but the primary flow never writes
// it; deletion keeps the (client, session) pair free for rebooking.
func (e *engine) Cancel(ctx context.Context, actor *models.User, sessionID string) (*CancelResult, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}

	booking := activeBooking(e.store.BookingsByScheduleAndClient(ctx, sessionID, actor.ID))
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if err := e.store.DeleteBooking(ctx, booking.ID); err != nil {
		return nil, fmt.Errorf("delete booking %s: %w", booking.ID, err)
	}

	result := &CancelResult{}
	if booking.SubscriptionID != "" {
		if _, err := e.ledger.Credit(ctx, booking.SubscriptionID); err != nil {
			log.Printf("[Booking] credit after cancelling %s failed: %v", booking.ID, err)
			result.CreditFailed = true
		}
	}

	e.publish("booking.cancelled", booking)
	return result, nil
}

// CapacityRemaining may go negative when concurrent writers overshoot; the
// display layer clamps, the arithmetic does not.
func (e *engine) CapacityRemaining(ctx context.Context, sessionID string) (int, error) {
	session := e.catalog.SessionByID(ctx, sessionID)
	if session == nil {
		return 0, ErrSessionNotFound
	}
	return session.MaxParticipants - countActive(e.store.BookingsBySchedule(ctx, sessionID)), nil
}

// UpdateAttendance is the trainer-driven path that makes StatusAbsent
// reachable. Client cancellation never goes through here.
func (e *engine) UpdateAttendance(ctx context.Context, actor *models.User, bookingID string, status models.BookingStatus) error {
	if actor == nil || (actor.Role != models.RoleTrainer && actor.Role != models.RoleAdmin) {
		return ErrPermissionDenied
	}
	if status != models.StatusConfirmed && status != models.StatusAbsent {
		return ErrInvalidStatus
	}
	if e.store.BookingByID(ctx, bookingID) == nil {
		return ErrBookingNotFound
	}
	if err := e.store.UpdateBooking(ctx, bookingID, map[string]any{"status": status}); err != nil {
		return fmt.Errorf("update attendance for %s: %w", bookingID, err)
	}
	return nil
}

func (e *engine) publish(key string, payload any) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(key, payload); err != nil {
		log.Printf("[Booking] publish %s: %v", key, err)
	}
}

func countActive(bookings []models.Booking) int {
	count := 0
	for _, b := range bookings {
		if b.Active() {
			count++
		}
	}
	return count
}

func activeBooking(bookings []models.Booking) *models.Booking {
	for _, b := range bookings {
		if b.Active() {
			return &b
		}
	}
	return nil
}
