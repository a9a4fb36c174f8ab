package models

import "time"

type SessionStatus string

const (
	SessionOpen      SessionStatus = "Open"
	SessionClosed    SessionStatus = "Closed"
	SessionCancelled SessionStatus = "Cancelled"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Session is a scheduled class occurrence, stored in the "schedules" collection.
type Session struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	DateTime        time.Time     `json:"date_time"`
	Duration        int           `json:"duration"` // minutes
	Level           Level         `json:"level"`
	MaxParticipants int           `json:"max_participants"`
	TrainerID       string        `json:"id_trainer"`
	Status          SessionStatus `json:"status"`
}
