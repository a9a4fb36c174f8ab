package dto

import (
	"time"

	"github.com/fitbook/gym-service/internal/booking"
	"github.com/fitbook/gym-service/internal/models"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	ClientID       string               `json:"client_id"`
	SessionID      string               `json:"session_id"`
	SubscriptionID string               `json:"subscription_id,omitempty"`
	Status         models.BookingStatus `json:"status"`
	BookingDate    time.Time            `json:"booking_date"`
	GiftIssued     bool                 `json:"gift_issued,omitempty"`
	DebitFailed    bool                 `json:"debit_failed,omitempty"`
	SessionsLeft   *int                 `json:"sessions_left,omitempty"`
}

func ToBookingResponse(r *booking.BookResult) BookingResponse {
	resp := BookingResponse{
		ID:             r.Booking.ID,
		ClientID:       r.Booking.ClientID,
		SessionID:      r.Booking.SessionID,
		SubscriptionID: r.Booking.SubscriptionID,
		Status:         r.Booking.Status,
		BookingDate:    r.Booking.BookingDate,
		GiftIssued:     r.GiftIssued,
		DebitFailed:    r.DebitFailed,
	}
	if r.Subscription != nil && !r.Subscription.Unlimited() {
		left := r.Subscription.SessionsLeft
		resp.SessionsLeft = &left
	}
	return resp
}

type SessionStatusResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	DateTime        time.Time            `json:"date_time"`
	Level           models.Level         `json:"level"`
	MaxParticipants int                  `json:"max_participants"`
	Booked          int                  `json:"booked"`
	SeatsAvailable  int                  `json:"seats_available"`
	Status          models.SessionStatus `json:"status"`
}

// ScheduleItemResponse is one card of the filtered schedule: the session
// denormalized with its trainer name, seats left (clamped for display) and
// the viewer's action tag.
type ScheduleItemResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	DateTime        time.Time            `json:"date_time"`
	Duration        int                  `json:"duration"`
	Level           models.Level         `json:"level"`
	TrainerID       string               `json:"id_trainer"`
	TrainerName     string               `json:"trainer_name"`
	MaxParticipants int                  `json:"max_participants"`
	SeatsLeft       int                  `json:"seats_left"`
	Status          models.SessionStatus `json:"status"`
	Action          booking.Action       `json:"action"`
}

type SchedulePageResponse struct {
	Items      []ScheduleItemResponse `json:"items"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"total_pages"`
	Total      int                    `json:"total"`
}

// UserResponse leaves the password out.
type UserResponse struct {
	ID    string      `json:"id"`
	Login string      `json:"login"`
	Role  models.Role `json:"role"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Login: u.Login,
		Role:  u.Role,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
