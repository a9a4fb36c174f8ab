package dto

import (
	"time"

	"github.com/fitbook/gym-service/internal/models"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type CreateBookingRequest struct {
	ClientID string `json:"client_id"`
}

type AttendanceRequest struct {
	ActorID string               `json:"actor_id"`
	Status  models.BookingStatus `json:"status"`
}

type CreateSessionRequest struct {
	ActorID         string               `json:"actor_id"`
	Title           string               `json:"title"`
	DateTime        time.Time            `json:"date_time"`
	Duration        int                  `json:"duration"`
	Level           models.Level         `json:"level"`
	MaxParticipants int                  `json:"max_participants"`
	TrainerID       string               `json:"id_trainer"`
	Status          models.SessionStatus `json:"status"`
}

// UpdateSessionRequest carries a partial update; nil fields are left as-is.
type UpdateSessionRequest struct {
	ActorID         string                `json:"actor_id"`
	Title           *string               `json:"title"`
	DateTime        *time.Time            `json:"date_time"`
	Duration        *int                  `json:"duration"`
	Level           *models.Level         `json:"level"`
	MaxParticipants *int                  `json:"max_participants"`
	TrainerID       *string               `json:"id_trainer"`
	Status          *models.SessionStatus `json:"status"`
}

type PurchaseRequest struct {
	TypeID string `json:"type_id"`
}

type SubscriptionTypeRequest struct {
	ActorID  string  `json:"actor_id"`
	Name     string  `json:"name"`
	Sessions *int    `json:"sessions"`
	Price    float64 `json:"price"`
}

type FeedbackRequest struct {
	ClientID string `json:"client_id"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type BroadcastRequest struct {
	ActorID string `json:"actor_id"`
	Message string `json:"message"`
}
