package models

import "time"

type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "Pending"
	FeedbackAnswered FeedbackStatus = "Answered"
)

// Feedback is a message a client leaves for the staff.
type Feedback struct {
	ID       string         `json:"id"`
	ClientID string         `json:"id_client"`
	Subject  string         `json:"subject"`
	Message  string         `json:"message"`
	Status   FeedbackStatus `json:"status"`
	DateSent time.Time      `json:"date_sent"`
	Answer   string         `json:"answer,omitempty"`
}

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Message     string    `json:"message"`
	DateSent    time.Time `json:"date_sent"`
	Read        bool      `json:"read"`
}
